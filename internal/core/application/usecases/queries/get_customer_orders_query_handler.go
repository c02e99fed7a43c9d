package queries

import (
	"context"
	"time"

	"parcel/internal/core/application/registry"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/ports"
)

// farFuture bounds open date ranges.
var farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

type GetCustomerOrdersQueryHandler struct {
	customers ports.CustomerRepository
	orders    *registry.Orders
}

func NewGetCustomerOrdersQueryHandler(
	customers ports.CustomerRepository,
	orders *registry.Orders,
) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{
		customers: customers,
		orders:    orders,
	}
}

// Handle returns the customer's orders sorted by ID.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.customers.Get(ctx, query.CustomerID()); err != nil {
		return nil, err
	}

	mine, err := h.orders.FilterByCustomer(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}

	from, to := query.Range()
	return toSummaries(dueWithin(mine, from, to)), nil
}

func dueWithin(orders []*order.Order, from *time.Time, to *time.Time) []*order.Order {
	if from == nil && to == nil {
		return orders
	}

	start, end := time.Time{}, farFuture
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}

	kept := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if registry.DueBetween(o, start, end) {
			kept = append(kept, o)
		}
	}
	return kept
}
