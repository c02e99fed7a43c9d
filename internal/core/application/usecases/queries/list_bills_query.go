package queries

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrListBillsQueryIsNotConstructed = errors.New(
	"ListBillsQuery must be created via NewListBillsQuery constructor",
)

// ListBillsQuery lists a customer's bills in creation order.
//
// Example:
//
//	query, _ := NewListBillsQuery("C00001")
//	bills, err := NewListBillsQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("list bills: %w", err)
//	}
//	for _, b := range bills {
//	    fmt.Printf("%s %.2f paid=%t\n", b.ID, b.Amount, b.Paid)
//	}
type ListBillsQuery struct {
	customerID kernel.CustomerID

	guard guard.ConstructorGuard
}

func NewListBillsQuery(customerID kernel.CustomerID) (ListBillsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ListBillsQuery{}, err
	}
	return ListBillsQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListBillsQuery) Validate() error {
	return q.guard.Validate(ErrListBillsQueryIsNotConstructed)
}

func (q ListBillsQuery) CustomerID() kernel.CustomerID {
	return q.customerID
}

// BillView is the read model of a bill. DueDate is empty until the bill has
// one; the payment fields are empty until it is paid.
type BillView struct {
	ID            kernel.BillID
	Kind          string
	Amount        float64
	Issued        bool
	DueDate       string
	Paid          bool
	Manifest      []kernel.OrderID
	TransactionID string
	Method        string
}
