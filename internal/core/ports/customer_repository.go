package ports

import (
	"context"

	"parcel/internal/core/domain/model/customer"
	"parcel/internal/core/domain/model/kernel"
)

// CustomerRepository stores customers together with their bills.
type CustomerRepository interface {
	// Add persists a new customer. The email must not be registered yet.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists profile changes, the bill counter and every bill.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get loads a customer with its bills.
	Get(ctx context.Context, id kernel.CustomerID) (*customer.Customer, error)

	// GetByEmail looks a customer up through the unique email index.
	// The lookup is case-insensitive.
	GetByEmail(ctx context.Context, email string) (*customer.Customer, error)

	// ListWithOpenMonthlyBills returns customers holding at least one monthly
	// bill that has not been issued.
	ListWithOpenMonthlyBills(ctx context.Context) ([]*customer.Customer, error)

	// Count returns the number of registered customers.
	Count(ctx context.Context) (int64, error)
}
