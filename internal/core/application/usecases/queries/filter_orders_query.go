package queries

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrFilterOrdersQueryIsNotConstructed = errors.New(
	"FilterOrdersQuery must be created via NewFilterOrdersQuery constructor",
)

// OrderFilter selects orders for staff. Set criteria are combined; at least
// one is required.
type OrderFilter struct {
	Customer kernel.CustomerID
	From     *time.Time
	To       *time.Time
	// Delayed keeps orders flagged delayed or overdue at the query time.
	Delayed bool
}

func (f OrderFilter) isEmpty() bool {
	return f.Customer == "" && f.From == nil && f.To == nil && !f.Delayed
}

// FilterOrdersQuery is run by customer service and management staff.
type FilterOrdersQuery struct {
	staffID kernel.StaffID
	filter  OrderFilter
	at      time.Time

	guard guard.ConstructorGuard
}

func NewFilterOrdersQuery(staffID kernel.StaffID, filter OrderFilter, at time.Time) (FilterOrdersQuery, error) {
	var filterErr, customerErr, timeErr error
	if filter.isEmpty() {
		filterErr = errs.NewValueIsRequiredError("order filter")
	}
	if filter.Customer != "" {
		customerErr = filter.Customer.Validate()
	}
	if at.IsZero() {
		timeErr = errs.NewValueIsRequiredError("query time")
	}

	if err := errors.Join(
		staffID.Validate(),
		filterErr,
		customerErr,
		validateRange(filter.From, filter.To),
		timeErr,
	); err != nil {
		return FilterOrdersQuery{}, err
	}

	return FilterOrdersQuery{
		staffID: staffID,
		filter:  filter,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q FilterOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFilterOrdersQueryIsNotConstructed)
}

func (q FilterOrdersQuery) StaffID() kernel.StaffID {
	return q.staffID
}

func (q FilterOrdersQuery) Filter() OrderFilter {
	return q.filter
}

func (q FilterOrdersQuery) At() time.Time {
	return q.at
}
