package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrReportEventCommandIsNotConstructed = errors.New(
	"ReportEventCommand must be created via NewReportEventCommand constructor",
)

// OrderEvent is a report a staff member files about an order.
type OrderEvent string

const (
	EventArrival   OrderEvent = "arrival"
	EventTransit   OrderEvent = "transit"
	EventDelivered OrderEvent = "delivered"
	EventDamage    OrderEvent = "damage"
	EventLoss      OrderEvent = "loss"
)

func ParseOrderEvent(s string) (OrderEvent, error) {
	e := OrderEvent(strings.ToLower(strings.TrimSpace(s)))
	switch e {
	case EventArrival, EventTransit, EventDelivered, EventDamage, EventLoss:
		return e, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("order event", fmt.Errorf("unknown event %q", s))
}

// ReportEventCommand files a staff report about an order.
//
// Events:
//   - arrival: the order reached the reporter's repository
//   - transit: the order left on the reporter's vehicle; From names the
//     repository it was loaded at, if any
//   - delivered: the order reached its destination
//   - damage, loss: Description tells what happened
type ReportEventCommand struct { //nolint:recvcheck //using for validation
	staffID     kernel.StaffID
	orderID     kernel.OrderID
	event       OrderEvent
	from        string
	description string
	reportedAt  time.Time

	guard guard.ConstructorGuard
}

func NewReportEventCommand(
	staffID kernel.StaffID,
	orderID kernel.OrderID,
	event OrderEvent,
	from string,
	description string,
	reportedAt time.Time,
) (ReportEventCommand, error) {
	cmd := ReportEventCommand{
		staffID:     staffID,
		orderID:     orderID,
		from:        strings.TrimSpace(from),
		description: strings.TrimSpace(description),
		reportedAt:  reportedAt,
		guard:       guard.NewConstructorGuard(),
	}

	parsed, eventErr := ParseOrderEvent(string(event))
	cmd.event = parsed

	var timeErr error
	if reportedAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("report time")
	}

	if err := errors.Join(
		staffID.Validate(),
		orderID.Validate(),
		eventErr,
		timeErr,
	); err != nil {
		return ReportEventCommand{}, err
	}

	return cmd, nil
}

func (c ReportEventCommand) Validate() error {
	return c.guard.Validate(ErrReportEventCommandIsNotConstructed)
}

func (c ReportEventCommand) StaffID() kernel.StaffID {
	return c.staffID
}

func (c ReportEventCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c ReportEventCommand) Event() OrderEvent {
	return c.event
}

// From returns the repository a transit left from, or "".
func (c ReportEventCommand) From() string {
	return c.from
}

func (c ReportEventCommand) Description() string {
	return c.description
}

func (c ReportEventCommand) ReportedAt() time.Time {
	return c.reportedAt
}
