// Package fleetrepo persists vehicles and repositories. The order IDs they hold
// are stored as JSON arrays.
package fleetrepo

import (
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/vehicle"
)

type VehicleDTO struct {
	Plate string   `gorm:"type:varchar(32);primaryKey"`
	Kind  int      `gorm:"type:smallint;not null"`
	Cargo []string `gorm:"type:jsonb;serializer:json;not null"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

type RepositoryDTO struct {
	Name      string   `gorm:"type:varchar(255);primaryKey"`
	Address   string   `gorm:"type:varchar(255);not null"`
	Inventory []string `gorm:"type:jsonb;serializer:json;not null"`
}

func (RepositoryDTO) TableName() string {
	return "repositories"
}

func vehicleFromDomain(v *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		Plate: v.Plate(),
		Kind:  int(v.Kind()),
		Cargo: idsFromDomain(v.Cargo()),
	}
}

func vehicleToDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	return vehicle.RestoreVehicle(vehicle.Kind(dto.Kind), dto.Plate, idsToDomain(dto.Cargo))
}

func repositoryFromDomain(r *location.Repository) RepositoryDTO {
	return RepositoryDTO{
		Name:      r.Name(),
		Address:   r.Address(),
		Inventory: idsFromDomain(r.Inventory()),
	}
}

func repositoryToDomain(dto RepositoryDTO) (*location.Repository, error) {
	return location.RestoreRepository(dto.Address, dto.Name, idsToDomain(dto.Inventory))
}

func idsFromDomain(ids []kernel.OrderID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func idsToDomain(raw []string) []kernel.OrderID {
	out := make([]kernel.OrderID, 0, len(raw))
	for _, id := range raw {
		out = append(out, kernel.OrderID(id))
	}
	return out
}
