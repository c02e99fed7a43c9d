package ports

import (
	"context"

	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/vehicle"
)

// FleetRepository stores vehicles and repositories together with the order
// IDs they currently hold.
type FleetRepository interface {
	// AddVehicle registers a vehicle. Plates are unique.
	AddVehicle(ctx context.Context, v *vehicle.Vehicle) error
	UpdateVehicle(ctx context.Context, v *vehicle.Vehicle) error
	GetVehicle(ctx context.Context, plate string) (*vehicle.Vehicle, error)

	// AddRepository registers a repository. Names are unique.
	AddRepository(ctx context.Context, r *location.Repository) error
	UpdateRepository(ctx context.Context, r *location.Repository) error
	GetRepository(ctx context.Context, name string) (*location.Repository, error)
}
