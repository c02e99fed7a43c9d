package customerrepo

import (
	"context"
	"errors"
	"strings"

	"parcel/internal/core/domain/model/customer"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db        *gorm.DB
	tracker   aggregateTracker
	forUpdate bool
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{
		db:      db,
		tracker: tracker,
	}
}

// WithRowLocks returns a copy whose reads take a row lock on the customer
// until the surrounding transaction ends. Two commands billing the same
// customer are serialized this way. Only meaningful on a transaction.
func (r *GormCustomerRepository) WithRowLocks() *GormCustomerRepository {
	locked := *r
	locked.forUpdate = true
	return &locked
}

// Add saves a new customer. A registered email is reported as invalid.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("email", err)
		}
		return err
	}

	r.track(aggregate)
	return nil
}

// Update overwrites the customer row and upserts every bill.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&CustomerDTO{}).
			Where("id = ?", dto.ID).
			Select("*").
			Omit(clause.Associations).
			Updates(&dto)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return errs.NewValueIsInvalidErrorWithCause("email", result.Error)
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("customer", dto.ID)
		}

		if len(dto.Bills) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Bills).Error; err != nil {
				return err
			}
		}

		r.track(aggregate)
		return nil
	})
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.CustomerID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id, "id = ?", id.String())
}

func (r *GormCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	return r.first(ctx, email, "email = ?", email)
}

func (r *GormCustomerRepository) ListWithOpenMonthlyBills(ctx context.Context) ([]*customer.Customer, error) {
	open := r.db.Model(&BillDTO{}).
		Select("customer_id").
		Where("monthly AND NOT issued")

	var dtos []CustomerDTO
	err := r.withBills(r.locking(r.db.WithContext(ctx))).
		Where("id IN (?)", open).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	customers := make([]*customer.Customer, 0, len(dtos))
	for _, dto := range dtos {
		c, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func (r *GormCustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&CustomerDTO{}).Count(&n).Error
	return n, err
}

func (r *GormCustomerRepository) first(ctx context.Context, key any, query string, args ...any) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.withBills(r.locking(r.db.WithContext(ctx))).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", key)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormCustomerRepository) locking(db *gorm.DB) *gorm.DB {
	if r.forUpdate {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// withBills preloads bills in creation order; bill IDs sort by sequence.
func (r *GormCustomerRepository) withBills(db *gorm.DB) *gorm.DB {
	return db.Preload("Bills", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func (r *GormCustomerRepository) track(aggregate *customer.Customer) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	}
}
