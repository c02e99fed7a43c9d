package commands

import (
	"errors"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrAddVehicleCommandIsNotConstructed = errors.New(
	"AddVehicleCommand must be created via NewAddVehicleCommand constructor",
)

// AddVehicleCommand registers a vehicle. The type name is matched loosely:
// names mentioning both "mini" and "truck" give a mini truck, other names
// mentioning "truck" give a truck, everything else a minivan.
type AddVehicleCommand struct { //nolint:recvcheck //using for validation
	staffID  kernel.StaffID
	typeName string
	plate    string

	guard guard.ConstructorGuard
}

func NewAddVehicleCommand(staffID kernel.StaffID, typeName string, plate string) (AddVehicleCommand, error) {
	cmd := AddVehicleCommand{
		staffID:  staffID,
		typeName: strings.TrimSpace(typeName),
		plate:    strings.TrimSpace(plate),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		staffID.Validate(),
		required("license plate", cmd.plate),
	); err != nil {
		return AddVehicleCommand{}, err
	}

	return cmd, nil
}

func (c AddVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAddVehicleCommandIsNotConstructed)
}

func (c AddVehicleCommand) StaffID() kernel.StaffID {
	return c.staffID
}

func (c AddVehicleCommand) TypeName() string {
	return c.typeName
}

func (c AddVehicleCommand) Plate() string {
	return c.plate
}
