package commands

import (
	"errors"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PackageDetails describes the parcel handed over at collection.
type PackageDetails struct {
	Size        order.Size
	Weight      float64
	Value       float64
	Description string
	Dangerous   bool
	Fragile     bool
}

// PlaceOrderCommand registers a parcel collected by a repository clerk on
// behalf of a customer. The order's billing timing is the customer's
// preference at placement.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand("C00001", "S00002", "Repo0", "Main St 1",
//	    order.Express, false, PackageDetails{Size: order.Size{10, 10, 10}, Weight: 1.5},
//	    time.Now())
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.CustomerID
	collectorID   kernel.StaffID
	origin        string
	destination   string
	service       order.Service
	international bool
	pkg           PackageDetails
	collectedAt   time.Time

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	customerID kernel.CustomerID,
	collectorID kernel.StaffID,
	origin string,
	destination string,
	service order.Service,
	international bool,
	pkg PackageDetails,
	collectedAt time.Time,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		customerID:    customerID,
		collectorID:   collectorID,
		origin:        strings.TrimSpace(origin),
		destination:   strings.TrimSpace(destination),
		service:       service,
		international: international,
		pkg:           pkg,
		collectedAt:   collectedAt,
		guard:         guard.NewConstructorGuard(),
	}

	var timeErr error
	if collectedAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("collection time")
	}

	if err := errors.Join(
		customerID.Validate(),
		collectorID.Validate(),
		required("origin repository", cmd.origin),
		required("destination", cmd.destination),
		service.Validate(),
		timeErr,
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

func (c PlaceOrderCommand) CollectorID() kernel.StaffID {
	return c.collectorID
}

// Origin returns the name of the repository where the parcel was collected.
func (c PlaceOrderCommand) Origin() string {
	return c.origin
}

// Destination returns the delivery address.
func (c PlaceOrderCommand) Destination() string {
	return c.destination
}

func (c PlaceOrderCommand) Service() order.Service {
	return c.service
}

func (c PlaceOrderCommand) IsInternational() bool {
	return c.international
}

func (c PlaceOrderCommand) Package() PackageDetails {
	return c.pkg
}

func (c PlaceOrderCommand) CollectedAt() time.Time {
	return c.collectedAt
}
