package services

import (
	"fmt"
	"time"

	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/domain/model/vehicle"
	"parcel/internal/pkg/errs"
)

const (
	// SystemSignature signs entries logged by scheduled jobs.
	SystemSignature = "system"

	damageSummary  = "Damage Reported"
	lossSummary    = "Loss Reported"
	delayedSummary = "Delivery Delayed"
)

// DeliveryTracker turns staff reports into order history entries and keeps
// repository inventories and vehicle cargo in step with them.
//
// Business rules:
//   - The reporting member's role must allow the report
//   - Repository staff report arrivals only at their own repository
//   - Drivers report transit and delivery only for their own vehicle
//   - A delivery can only be reported for an order on board
//
// Example usage:
//
//	tracker := services.NewDeliveryTracker()
//	if err := tracker.ReportTransit(driver, o, van, hub, time.Now()); err != nil {
//	    return err
//	}
type DeliveryTracker struct{}

func NewDeliveryTracker() DeliveryTracker {
	return DeliveryTracker{}
}

// ReportArrival logs the order's arrival at the member's repository and adds
// it to the repository's inventory.
func (t DeliveryTracker) ReportArrival(member *staff.Staff, o *order.Order, repo *location.Repository, now time.Time) error {
	if err := t.authorize(member, o, staff.ReportArrival); err != nil {
		return err
	}
	if err := repo.Validate(); err != nil {
		return err
	}
	if name, _ := member.Repository(); name != repo.Name() {
		return errs.NewAccessDeniedErrorWithCause("repository", repo.Name(),
			fmt.Errorf("%s works at %q", member.ID(), name))
	}

	if _, err := o.NewLog(order.LogArrival, member.ID().String(), now, order.LogArgs{
		Destination: repo.Location(),
	}); err != nil {
		return err
	}

	repo.Receive(o.ID())
	return nil
}

// ReportTransit logs the order leaving on the driver's vehicle and loads it.
// When from is not nil the order is also shipped out of that repository.
func (t DeliveryTracker) ReportTransit(member *staff.Staff, o *order.Order, v *vehicle.Vehicle, from *location.Repository, now time.Time) error {
	if err := t.authorizeDriver(member, o, v, staff.ReportTransit); err != nil {
		return err
	}

	if _, err := o.NewLog(order.LogTransit, member.ID().String(), now, order.LogArgs{
		Vehicle:     v.Carrier(),
		Origin:      o.Origin(),
		Destination: o.Destination(),
	}); err != nil {
		return err
	}

	v.PickUp(o.ID())
	if from != nil {
		from.Ship(o.ID())
	}
	return nil
}

// ReportDelivered logs the order's arrival at its destination, which marks it
// delivered, and unloads it from the driver's vehicle.
func (t DeliveryTracker) ReportDelivered(member *staff.Staff, o *order.Order, v *vehicle.Vehicle, now time.Time) error {
	if err := t.authorizeDriver(member, o, v, staff.ReportDelivered); err != nil {
		return err
	}
	if !v.Carries(o.ID()) {
		return errs.NewObjectNotFoundErrorWithCause("cargo", o.ID(),
			fmt.Errorf("order is not on board of %s", v))
	}

	if _, err := o.NewLog(order.LogArrival, member.ID().String(), now, order.LogArgs{
		Destination: o.Destination(),
	}); err != nil {
		return err
	}

	return v.Deliver(o.ID())
}

// ReportDamage marks the order broken.
func (t DeliveryTracker) ReportDamage(member *staff.Staff, o *order.Order, description string, now time.Time) error {
	if err := t.authorize(member, o, staff.ReportDamage); err != nil {
		return err
	}
	_, err := o.NewLog(order.LogBroken, member.ID().String(), now, order.LogArgs{
		Summary: damageSummary,
		Detail:  description,
	})
	return err
}

// ReportLoss marks the order missing.
func (t DeliveryTracker) ReportLoss(member *staff.Staff, o *order.Order, description string, now time.Time) error {
	if err := t.authorize(member, o, staff.ReportLoss); err != nil {
		return err
	}
	_, err := o.NewLog(order.LogMissing, member.ID().String(), now, order.LogArgs{
		Summary: lossSummary,
		Detail:  description,
	})
	return err
}

// FlagDelayed marks an overdue order delayed. It reports whether the order was flagged.
func (t DeliveryTracker) FlagDelayed(o *order.Order, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if !o.IsOverdue(now) {
		return false, nil
	}
	_, err := o.NewLog(order.LogDelayed, SystemSignature, now, order.LogArgs{
		Summary: delayedSummary,
		Detail:  "Due " + o.DueAt().Format(time.DateOnly),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t DeliveryTracker) authorize(member *staff.Staff, o *order.Order, action staff.Action) error {
	if err := member.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	return member.Authorize(action)
}

func (t DeliveryTracker) authorizeDriver(member *staff.Staff, o *order.Order, v *vehicle.Vehicle, action staff.Action) error {
	if err := t.authorize(member, o, action); err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if plate, _ := member.Vehicle(); plate != v.Plate() {
		return errs.NewAccessDeniedErrorWithCause("vehicle", v.Plate(),
			fmt.Errorf("%s drives %q", member.ID(), plate))
	}
	return nil
}
