// Package staffrepo persists staff members.
package staffrepo

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
)

type StaffDTO struct {
	ID           string `gorm:"type:varchar(6);primaryKey"`
	FirstName    string `gorm:"type:varchar(255);not null"`
	LastName     string `gorm:"type:varchar(255);not null"`
	Role         int    `gorm:"type:smallint;not null"`
	PasswordHash string `gorm:"type:varchar(72);not null"`
	Assignment   string `gorm:"type:varchar(255)"`
}

func (StaffDTO) TableName() string {
	return "staff"
}

func fromDomain(s *staff.Staff) StaffDTO {
	return StaffDTO{
		ID:           s.ID().String(),
		FirstName:    s.FirstName(),
		LastName:     s.LastName(),
		Role:         int(s.Role()),
		PasswordHash: string(s.Password()),
		Assignment:   s.Assignment(),
	}
}

func toDomain(dto StaffDTO) (*staff.Staff, error) {
	password, err := kernel.RestorePasswordHash(dto.PasswordHash)
	if err != nil {
		return nil, err
	}
	return staff.NewStaff(kernel.StaffID(dto.ID), dto.FirstName, dto.LastName,
		staff.Role(dto.Role), password, dto.Assignment)
}

// GormStaffRepository implements ports.StaffRepository using GORM.
type GormStaffRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormStaffRepository(db *gorm.DB, tracker aggregateTracker) *GormStaffRepository {
	return &GormStaffRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormStaffRepository) Add(ctx context.Context, member *staff.Staff) error {
	if err := member.Validate(); err != nil {
		return err
	}

	dto := fromDomain(member)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("staff id", err)
		}
		return err
	}

	if r.tracker != nil {
		r.tracker.TrackAggregate(dto.ID, member)
	}
	return nil
}

func (r *GormStaffRepository) Get(ctx context.Context, id kernel.StaffID) (*staff.Staff, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StaffDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staff", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormStaffRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&StaffDTO{}).Count(&n).Error
	return n, err
}
