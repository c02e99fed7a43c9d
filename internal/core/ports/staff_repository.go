package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/staff"
)

// StaffRepository stores staff members.
type StaffRepository interface {
	Add(ctx context.Context, member *staff.Staff) error
	Get(ctx context.Context, id kernel.StaffID) (*staff.Staff, error)
	Count(ctx context.Context) (int64, error)
}
