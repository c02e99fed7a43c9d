// Package ports defines the contracts between the application core and its
// adapters: repositories for every aggregate, the unit of work that binds them
// to one transaction, and the security event log.
package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
)

// OrderRepository is the durable index of orders.
// Every order is stored together with its full history.
type OrderRepository interface {
	// Add persists a new order. Adding an ID that already exists fails.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order's current status, bill reference and any
	// history entries not stored yet.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with its history.
	// Returns ObjectNotFoundError when the ID is unknown.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// ListIDs returns every stored order ID in ascending order.
	ListIDs(ctx context.Context) ([]kernel.OrderID, error)

	// Count returns the number of stored orders.
	Count(ctx context.Context) (int64, error)
}
