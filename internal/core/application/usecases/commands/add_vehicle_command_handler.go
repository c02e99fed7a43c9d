package commands

import (
	"context"

	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/domain/model/vehicle"
)

type AddVehicleCommandHandler struct {
	uowFactory StaffUoWFactory
}

func NewAddVehicleCommandHandler(uowFactory StaffUoWFactory) AddVehicleCommandHandler {
	return AddVehicleCommandHandler{uowFactory: uowFactory}
}

// Handle registers the vehicle on behalf of a member allowed to manage the
// fleet and returns its carrier description.
func (h AddVehicleCommandHandler) Handle(ctx context.Context, cmd AddVehicleCommand) (vehicle.Carrier, error) {
	if err := cmd.Validate(); err != nil {
		return vehicle.Carrier{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return vehicle.Carrier{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	member, err := uow.StaffRepository().Get(ctx, cmd.StaffID())
	if err != nil {
		return vehicle.Carrier{}, err
	}
	if err = member.Authorize(staff.ManageFleet); err != nil {
		return vehicle.Carrier{}, err
	}

	v, err := vehicle.NewVehicle(vehicle.KindFromTypeName(cmd.TypeName()), cmd.Plate())
	if err != nil {
		return vehicle.Carrier{}, err
	}
	if err = uow.FleetRepository().AddVehicle(ctx, v); err != nil {
		return vehicle.Carrier{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return vehicle.Carrier{}, err
	}

	return v.Carrier(), nil
}
