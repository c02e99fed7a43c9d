package queries

import (
	"context"

	"parcel/internal/core/ports"
)

type GetCustomerQueryHandler struct {
	customers ports.CustomerRepository
}

func NewGetCustomerQueryHandler(customers ports.CustomerRepository) GetCustomerQueryHandler {
	return GetCustomerQueryHandler{customers: customers}
}

func (h GetCustomerQueryHandler) Handle(ctx context.Context, query GetCustomerQuery) (CustomerView, error) {
	if err := query.Validate(); err != nil {
		return CustomerView{}, err
	}

	c, err := h.customers.Get(ctx, query.CustomerID())
	if err != nil {
		return CustomerView{}, err
	}
	return toCustomerView(c), nil
}
