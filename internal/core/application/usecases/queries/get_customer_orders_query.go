package queries

import (
	"errors"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery lists the orders a customer pays for, optionally
// limited to those due between From and To (both days included).
type GetCustomerOrdersQuery struct {
	customerID kernel.CustomerID
	from       *time.Time
	to         *time.Time

	guard guard.ConstructorGuard
}

func NewGetCustomerOrdersQuery(customerID kernel.CustomerID, from *time.Time, to *time.Time) (GetCustomerOrdersQuery, error) {
	if err := errors.Join(customerID.Validate(), validateRange(from, to)); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return GetCustomerOrdersQuery{
		customerID: customerID,
		from:       from,
		to:         to,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

func (q GetCustomerOrdersQuery) CustomerID() kernel.CustomerID {
	return q.customerID
}

// Range returns the due date bounds; a missing bound is open.
func (q GetCustomerOrdersQuery) Range() (*time.Time, *time.Time) {
	return q.from, q.to
}

func validateRange(from *time.Time, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return errs.NewValueIsInvalidErrorWithCause("date range",
			fmt.Errorf("%s is before %s", to.Format(time.DateOnly), from.Format(time.DateOnly)))
	}
	return nil
}
