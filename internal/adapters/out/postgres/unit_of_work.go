// Package postgres binds the gorm repositories to one database transaction.
//
// A unit of work is created per command:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.CustomerRepository().Update(ctx, c); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin, or after Commit, use the plain
// connection and write immediately.
package postgres

import (
	"context"

	"parcel/internal/adapters/out/postgres/customerrepo"
	"parcel/internal/adapters/out/postgres/fleetrepo"
	"parcel/internal/adapters/out/postgres/orderrepo"
	"parcel/internal/adapters/out/postgres/staffrepo"
	"parcel/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the current transaction.
type trackedAggregate struct {
	Key       string
	Aggregate any
}

// GormUnitOfWorkFactory creates unit of work instances on one connection pool.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewGormUnitOfWorkFactory(db *gorm.DB, logger *zap.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWorkFactory{db: db, logger: logger}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm returns the concrete type, for callers that need more than
// ports.UnitOfWork.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:     f.db,
		logger: f.logger,
	}
}

// GormUnitOfWork coordinates one transaction and remembers which aggregates
// were written in it. The list is logged on commit and cleared on rollback.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	tracked []trackedAggregate
	logger  *zap.Logger
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	uow.tracked = nil
	return nil
}

// Commit returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	if len(uow.tracked) > 0 {
		uow.logger.Debug("transaction committed", zap.Strings("aggregates", uow.TrackedKeys()))
	}
	return nil
}

// Rollback returns gorm.ErrInvalidTransaction if no transaction is open, which
// is the case after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// CustomerRepository locks every customer it reads while a transaction is
// open, so concurrent bill writes for one customer do not overwrite each other.
func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	repo := customerrepo.NewGormCustomerRepository(uow.conn(), uow)
	if uow.tx != nil {
		return repo.WithRowLocks()
	}
	return repo
}

func (uow *GormUnitOfWork) StaffRepository() ports.StaffRepository {
	return staffrepo.NewGormStaffRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) FleetRepository() ports.FleetRepository {
	return fleetrepo.NewGormFleetRepository(uow.conn(), uow)
}

// TrackAggregate is called by the repositories after every write. Writes
// outside a transaction are not tracked.
func (uow *GormUnitOfWork) TrackAggregate(key string, aggregate any) {
	if uow.tx == nil {
		return
	}
	uow.tracked = append(uow.tracked, trackedAggregate{Key: key, Aggregate: aggregate})
}

// TrackedKeys lists the keys of the aggregates written in the open
// transaction, in write order.
func (uow *GormUnitOfWork) TrackedKeys() []string {
	keys := make([]string, 0, len(uow.tracked))
	for _, t := range uow.tracked {
		keys = append(keys, t.Key)
	}
	return keys
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
