package fleetrepo

import (
	"context"
	"errors"
	"strings"

	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/vehicle"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFleetRepository implements ports.FleetRepository using GORM.
type GormFleetRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormFleetRepository(db *gorm.DB, tracker aggregateTracker) *GormFleetRepository {
	return &GormFleetRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddVehicle saves a new vehicle. A plate that is already registered is
// reported as invalid.
func (r *GormFleetRepository) AddVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := vehicleFromDomain(v)
	if err := r.create(ctx, &dto, "license plate"); err != nil {
		return err
	}

	r.track("vehicle:"+dto.Plate, v)
	return nil
}

func (r *GormFleetRepository) UpdateVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := vehicleFromDomain(v)
	result := r.db.WithContext(ctx).Model(&VehicleDTO{}).
		Where("plate = ?", dto.Plate).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vehicle", dto.Plate)
	}

	r.track("vehicle:"+dto.Plate, v)
	return nil
}

func (r *GormFleetRepository) GetVehicle(ctx context.Context, plate string) (*vehicle.Vehicle, error) {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return nil, errs.NewValueIsRequiredError("license plate")
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "plate = ?", plate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", plate)
		}
		return nil, err
	}

	return vehicleToDomain(dto)
}

// AddRepository saves a new repository. Names are unique.
func (r *GormFleetRepository) AddRepository(ctx context.Context, repo *location.Repository) error {
	if err := repo.Validate(); err != nil {
		return err
	}

	dto := repositoryFromDomain(repo)
	if err := r.create(ctx, &dto, "repository name"); err != nil {
		return err
	}

	r.track("repository:"+dto.Name, repo)
	return nil
}

func (r *GormFleetRepository) UpdateRepository(ctx context.Context, repo *location.Repository) error {
	if err := repo.Validate(); err != nil {
		return err
	}

	dto := repositoryFromDomain(repo)
	result := r.db.WithContext(ctx).Model(&RepositoryDTO{}).
		Where("name = ?", dto.Name).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("repository", dto.Name)
	}

	r.track("repository:"+dto.Name, repo)
	return nil
}

func (r *GormFleetRepository) GetRepository(ctx context.Context, name string) (*location.Repository, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValueIsRequiredError("repository name")
	}

	var dto RepositoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("repository", name)
		}
		return nil, err
	}

	return repositoryToDomain(dto)
}

func (r *GormFleetRepository) create(ctx context.Context, dto any, param string) error {
	err := r.db.WithContext(ctx).Create(dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return err
}

func (r *GormFleetRepository) track(key string, aggregate any) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(key, aggregate)
	}
}
