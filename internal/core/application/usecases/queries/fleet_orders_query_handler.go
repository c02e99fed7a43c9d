package queries

import (
	"context"

	"parcel/internal/core/application/registry"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/ports"
)

// FleetOrdersQueryHandler resolves a vehicle's cargo or a repository's
// inventory into orders. Only management may look at the fleet.
type FleetOrdersQueryHandler struct {
	staff  ports.StaffRepository
	fleet  ports.FleetRepository
	orders *registry.Orders
}

func NewFleetOrdersQueryHandler(
	staff ports.StaffRepository,
	fleet ports.FleetRepository,
	orders *registry.Orders,
) FleetOrdersQueryHandler {
	return FleetOrdersQueryHandler{
		staff:  staff,
		fleet:  fleet,
		orders: orders,
	}
}

func (h FleetOrdersQueryHandler) Handle(ctx context.Context, query FleetOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	member, err := h.staff.Get(ctx, query.StaffID())
	if err != nil {
		return nil, err
	}
	if err = member.Authorize(staff.FilterFleet); err != nil {
		return nil, err
	}

	var found []*order.Order
	if query.Plate() != "" {
		v, getErr := h.fleet.GetVehicle(ctx, query.Plate())
		if getErr != nil {
			return nil, getErr
		}
		found, err = h.orders.FilterByVehicle(ctx, v)
	} else {
		repo, getErr := h.fleet.GetRepository(ctx, query.Repository())
		if getErr != nil {
			return nil, getErr
		}
		found, err = h.orders.FilterByRepository(ctx, repo)
	}
	if err != nil {
		return nil, err
	}

	return toSummaries(found), nil
}
