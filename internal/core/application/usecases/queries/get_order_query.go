package queries

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order on behalf of the customer who pays for it.
type GetOrderQuery struct {
	customerID kernel.CustomerID
	orderID    kernel.OrderID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(customerID kernel.CustomerID, orderID kernel.OrderID) (GetOrderQuery, error) {
	if err := errors.Join(customerID.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		customerID: customerID,
		orderID:    orderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) CustomerID() kernel.CustomerID {
	return q.customerID
}

func (q GetOrderQuery) OrderID() kernel.OrderID {
	return q.orderID
}
