// Package vehicle models the carriers that move packages between locations.
package vehicle

import (
	"errors"
	"fmt"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

// ErrVehicleIsNotConstructed is returned by Validate for a zero-value Vehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

// Kind discriminates the vehicle variants.
type Kind int

const (
	UnknownKind Kind = iota
	Minivan
	MiniTruck
	Truck
)

func (k Kind) String() string {
	switch k {
	case Minivan:
		return "minivan"
	case MiniTruck:
		return "mini truck"
	case Truck:
		return "truck"
	case UnknownKind:
	}
	return "unknown"
}

func (k Kind) Validate() error {
	switch k {
	case Minivan, MiniTruck, Truck:
		return nil
	case UnknownKind:
	}
	return errs.NewValueIsInvalidErrorWithCause("vehicle kind", fmt.Errorf("%d is not a vehicle kind", k))
}

// ParseKind accepts the rendered kind ("mini truck") as well as the type names
// used by management tooling ("MiniTruck", "mini_truck"), case-insensitively.
func ParseKind(s string) (Kind, error) {
	normalized := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(s))
	switch normalized {
	case "minivan":
		return Minivan, nil
	case "minitruck":
		return MiniTruck, nil
	case "truck":
		return Truck, nil
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("vehicle kind", fmt.Errorf("%q is not a vehicle kind", s))
}

// Carrier identifies a vehicle inside a transit entry: its kind and plate.
type Carrier struct {
	kind  Kind
	plate string
}

// NewCarrier validates a kind and plate pair.
func NewCarrier(kind Kind, plate string) (Carrier, error) {
	plate = strings.TrimSpace(plate)
	var err error
	if kindErr := kind.Validate(); kindErr != nil {
		err = errors.Join(err, kindErr)
	}
	if plate == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("license plate"))
	}
	if err != nil {
		return Carrier{}, err
	}
	return Carrier{kind: kind, plate: plate}, nil
}

func (c Carrier) Kind() Kind {
	return c.kind
}

func (c Carrier) Plate() string {
	return c.plate
}

func (c Carrier) Validate() error {
	_, err := NewCarrier(c.kind, c.plate)
	return err
}

// String renders the carrier as it appears in an order history, e.g. "mini truck (ABC-1234)".
func (c Carrier) String() string {
	return fmt.Sprintf("%s (%s)", c.kind, c.plate)
}

// Vehicle is a minivan, mini truck or truck identified by its license plate.
// Its cargo is the set of orders currently on board.
type Vehicle struct {
	carrier Carrier
	cargo   kernel.OrderSet
	guard   guard.ConstructorGuard
}

// NewVehicle creates an empty vehicle.
//
// Parameters:
//   - kind: Minivan, MiniTruck or Truck
//   - plate: license plate, the vehicle's identity
//
// Returns:
//   - *Vehicle: the vehicle with no cargo
//   - error: joined validation errors
func NewVehicle(kind Kind, plate string) (*Vehicle, error) {
	carrier, err := NewCarrier(kind, plate)
	if err != nil {
		return nil, err
	}
	return &Vehicle{
		carrier: carrier,
		cargo:   kernel.NewOrderSet(),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreVehicle rebuilds a vehicle and its cargo from persistence.
func RestoreVehicle(kind Kind, plate string, cargo []kernel.OrderID) (*Vehicle, error) {
	v, err := NewVehicle(kind, plate)
	if err != nil {
		return nil, err
	}
	for _, id := range cargo {
		if err = id.Validate(); err != nil {
			return nil, err
		}
	}
	v.cargo.Add(cargo...)
	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) Kind() Kind {
	return v.carrier.kind
}

func (v *Vehicle) Plate() string {
	return v.carrier.plate
}

// Carrier returns the value recorded in transit entries.
func (v *Vehicle) Carrier() Carrier {
	return v.carrier
}

// PickUp loads orders onto the vehicle. Loading is a set union, so orders
// already on board are not duplicated.
func (v *Vehicle) PickUp(ids ...kernel.OrderID) {
	v.cargo.Add(ids...)
}

// Deliver unloads a single order. Unloading an order that is not on board is
// an error and leaves the cargo unchanged.
func (v *Vehicle) Deliver(id kernel.OrderID) error {
	if !v.cargo.Has(id) {
		return errs.NewObjectNotFoundErrorWithCause("cargo", id,
			fmt.Errorf("order is not on board of %s", v.carrier))
	}
	v.cargo.Remove(id)
	return nil
}

func (v *Vehicle) Carries(id kernel.OrderID) bool {
	return v.cargo.Has(id)
}

// Cargo returns the identifiers of the orders on board in ascending order.
func (v *Vehicle) Cargo() []kernel.OrderID {
	return v.cargo.Sorted()
}

func (v *Vehicle) String() string {
	return v.carrier.String()
}

// KindFromTypeName maps a free-form vehicle type name to a kind the way fleet
// management enters it: a name mentioning both "mini" and "truck" is a mini
// truck, any other name mentioning "truck" is a truck, and everything else is
// a minivan.
func KindFromTypeName(name string) Kind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "truck") && strings.Contains(lower, "mini"):
		return MiniTruck
	case strings.Contains(lower, "truck"):
		return Truck
	default:
		return Minivan
	}
}
