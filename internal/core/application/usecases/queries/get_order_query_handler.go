package queries

import (
	"context"

	"parcel/internal/core/application/registry"
	"parcel/internal/core/ports"
)

// GetOrderQueryHandler returns an order with its full history. Customers
// only see the orders they pay for.
type GetOrderQueryHandler struct {
	customers ports.CustomerRepository
	orders    *registry.Orders
}

func NewGetOrderQueryHandler(customers ports.CustomerRepository, orders *registry.Orders) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		customers: customers,
		orders:    orders,
	}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	c, err := h.customers.Get(ctx, query.CustomerID())
	if err != nil {
		return OrderDetails{}, err
	}
	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderDetails{}, err
	}
	if err = c.CheckAccess(o); err != nil {
		return OrderDetails{}, err
	}

	return toDetails(o), nil
}
