package commands

import (
	"context"
	"fmt"

	"parcel/internal/core/application/registry"
	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/domain/services"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/metrics"
)

// PlaceOrderResult reports the new order and, for orders billed at placement,
// the bill that covers it.
type PlaceOrderResult struct {
	OrderID kernel.OrderID
	Fee     float64
	DueAt   string
	BillID  *kernel.BillID
}

// PlaceOrderCommandHandler creates the order in the registry, stocks it in the
// origin repository and applies the customer's billing timing.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	orders     *registry.Orders
	policy     services.BillingPolicy
}

func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	orders *registry.Orders,
	policy services.BillingPolicy,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		orders:     orders,
		policy:     policy,
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	details := cmd.Package()
	pkg, err := order.NewPackage(details.Size, details.Weight, details.Value, details.Description, details.Dangerous, details.Fragile)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	destination, err := location.NewDestination(cmd.Destination())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	change := h.orders.Begin(uow.OrderRepository())
	defer change.Rollback()

	c, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return PlaceOrderResult{}, err
	}
	collector, err := uow.StaffRepository().Get(ctx, cmd.CollectorID())
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if err = collector.Authorize(staff.ReportArrival); err != nil {
		return PlaceOrderResult{}, err
	}
	if name, _ := collector.Repository(); name != cmd.Origin() {
		return PlaceOrderResult{}, errs.NewAccessDeniedErrorWithCause("repository", cmd.Origin(),
			fmt.Errorf("%s works at %q", collector.ID(), name))
	}

	fleet := uow.FleetRepository()
	origin, err := fleet.GetRepository(ctx, cmd.Origin())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	o, err := change.Add(ctx, registry.NewOrderArgs{
		Payer:         c.ID(),
		Timing:        c.BillingPreference(),
		Service:       cmd.Service(),
		Origin:        origin.Location(),
		Destination:   destination,
		CollectorID:   collector.ID().String(),
		International: cmd.IsInternational(),
		Package:       pkg,
		CollectedAt:   cmd.CollectedAt(),
	})
	if err != nil {
		return PlaceOrderResult{}, err
	}

	origin.Receive(o.ID())
	if err = fleet.UpdateRepository(ctx, origin); err != nil {
		return PlaceOrderResult{}, err
	}

	var covering *bill.Bill
	err = change.Update(ctx, o.ID(), func(o *order.Order) error {
		var billErr error
		covering, billErr = h.policy.OnPlacement(c, o, cmd.CollectedAt())
		return billErr
	})
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.CustomerRepository().Update(ctx, c); err != nil {
		return PlaceOrderResult{}, err
	}
	if err = change.Save(ctx); err != nil {
		return PlaceOrderResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}
	change.Commit()

	metrics.OrdersPlacedTotal.WithLabelValues(o.Service().String(), o.BillingTiming().String()).Inc()

	result := PlaceOrderResult{
		OrderID: o.ID(),
		Fee:     o.Fee(),
		DueAt:   o.DueAt().Format(bill.DateLayout),
	}
	if covering != nil {
		id := covering.ID()
		result.BillID = &id
		if covering.IsIssued() {
			metrics.BillsIssuedTotal.WithLabelValues(covering.Kind().String()).Inc()
		}
	}
	return result, nil
}
