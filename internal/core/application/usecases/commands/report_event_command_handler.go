package commands

import (
	"context"

	"parcel/internal/core/application/registry"
	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/domain/services"
	"parcel/internal/pkg/metrics"
)

// ReportEventCommandHandler applies staff reports to orders, keeps the fleet's
// reference sets in step and bills on-delivery orders once delivered.
type ReportEventCommandHandler struct {
	uowFactory UoWFactory
	orders     *registry.Orders
	tracker    services.DeliveryTracker
	policy     services.BillingPolicy
}

func NewReportEventCommandHandler(
	uowFactory UoWFactory,
	orders *registry.Orders,
	tracker services.DeliveryTracker,
	policy services.BillingPolicy,
) ReportEventCommandHandler {
	return ReportEventCommandHandler{
		uowFactory: uowFactory,
		orders:     orders,
		tracker:    tracker,
		policy:     policy,
	}
}

// Handle files the report and returns the order's resulting status.
func (h ReportEventCommandHandler) Handle(ctx context.Context, cmd ReportEventCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Unknown, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	change := h.orders.Begin(uow.OrderRepository())
	defer change.Rollback()

	member, err := uow.StaffRepository().Get(ctx, cmd.StaffID())
	if err != nil {
		return order.Unknown, err
	}

	switch cmd.Event() {
	case EventArrival:
		err = h.arrival(ctx, uow, change, member, cmd)
	case EventTransit:
		err = h.transit(ctx, uow, change, member, cmd)
	case EventDelivered:
		err = h.delivered(ctx, uow, change, member, cmd)
	case EventDamage:
		err = change.Update(ctx, cmd.OrderID(), func(o *order.Order) error {
			return h.tracker.ReportDamage(member, o, cmd.Description(), cmd.ReportedAt())
		})
	case EventLoss:
		err = change.Update(ctx, cmd.OrderID(), func(o *order.Order) error {
			return h.tracker.ReportLoss(member, o, cmd.Description(), cmd.ReportedAt())
		})
	}
	if err != nil {
		return order.Unknown, err
	}

	if err = change.Save(ctx); err != nil {
		return order.Unknown, err
	}
	if err = uow.Commit(ctx); err != nil {
		return order.Unknown, err
	}
	change.Commit()

	metrics.OrderEventsTotal.WithLabelValues(string(cmd.Event())).Inc()

	o, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Unknown, err
	}
	return o.Status(), nil
}

func (h ReportEventCommandHandler) arrival(
	ctx context.Context,
	uow UoW,
	change *registry.Change,
	member *staff.Staff,
	cmd ReportEventCommand,
) error {
	if err := member.Authorize(staff.ReportArrival); err != nil {
		return err
	}
	name, _ := member.Repository()
	fleet := uow.FleetRepository()
	repo, err := fleet.GetRepository(ctx, name)
	if err != nil {
		return err
	}

	err = change.Update(ctx, cmd.OrderID(), func(o *order.Order) error {
		return h.tracker.ReportArrival(member, o, repo, cmd.ReportedAt())
	})
	if err != nil {
		return err
	}
	return fleet.UpdateRepository(ctx, repo)
}

func (h ReportEventCommandHandler) transit(
	ctx context.Context,
	uow UoW,
	change *registry.Change,
	member *staff.Staff,
	cmd ReportEventCommand,
) error {
	if err := member.Authorize(staff.ReportTransit); err != nil {
		return err
	}
	plate, _ := member.Vehicle()
	fleet := uow.FleetRepository()
	v, err := fleet.GetVehicle(ctx, plate)
	if err != nil {
		return err
	}

	var from *location.Repository
	if cmd.From() != "" {
		if from, err = fleet.GetRepository(ctx, cmd.From()); err != nil {
			return err
		}
	}

	err = change.Update(ctx, cmd.OrderID(), func(o *order.Order) error {
		return h.tracker.ReportTransit(member, o, v, from, cmd.ReportedAt())
	})
	if err != nil {
		return err
	}

	if err = fleet.UpdateVehicle(ctx, v); err != nil {
		return err
	}
	if from != nil {
		return fleet.UpdateRepository(ctx, from)
	}
	return nil
}

func (h ReportEventCommandHandler) delivered(
	ctx context.Context,
	uow UoW,
	change *registry.Change,
	member *staff.Staff,
	cmd ReportEventCommand,
) error {
	if err := member.Authorize(staff.ReportDelivered); err != nil {
		return err
	}
	plate, _ := member.Vehicle()
	fleet := uow.FleetRepository()
	v, err := fleet.GetVehicle(ctx, plate)
	if err != nil {
		return err
	}

	err = change.Update(ctx, cmd.OrderID(), func(o *order.Order) error {
		return h.tracker.ReportDelivered(member, o, v, cmd.ReportedAt())
	})
	if err != nil {
		return err
	}
	if err = fleet.UpdateVehicle(ctx, v); err != nil {
		return err
	}

	return h.billOnDelivery(ctx, uow, change, cmd)
}

func (h ReportEventCommandHandler) billOnDelivery(ctx context.Context, uow UoW, change *registry.Change, cmd ReportEventCommand) error {
	o, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if o.BillingTiming() != order.OnDelivery {
		return nil
	}

	customers := uow.CustomerRepository()
	c, err := customers.Get(ctx, o.Payer())
	if err != nil {
		return err
	}

	var issued *bill.Bill
	err = change.Update(ctx, cmd.OrderID(), func(o *order.Order) error {
		var billErr error
		issued, billErr = h.policy.OnDelivery(c, o, cmd.ReportedAt())
		return billErr
	})
	if err != nil {
		return err
	}
	if issued != nil {
		metrics.BillsIssuedTotal.WithLabelValues(issued.Kind().String()).Inc()
	}
	return customers.Update(ctx, c)
}
