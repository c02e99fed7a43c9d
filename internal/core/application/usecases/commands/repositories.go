// Package commands contains the operations that change system state.
// Every command is built through a validating constructor and executed by a
// handler that owns one unit of work per call.
package commands

import (
	"context"

	"parcel/internal/core/ports"
)

// Unit of work views used by the handlers. Each handler asks only for the
// repositories it touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	StaffRepoFactory interface {
		StaffRepository() ports.StaffRepository
	}

	FleetRepoFactory interface {
		FleetRepository() ports.FleetRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CustomerUoW is used by commands that only modify customers and bills.
	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
	}

	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	// StaffUoW is used by staff registration and fleet management.
	StaffUoW interface {
		TxManager
		StaffRepoFactory
		FleetRepoFactory
	}

	StaffUoWFactory interface {
		Create() StaffUoW
	}

	// UoW spans customers, staff, the fleet and orders. Orders live in the
	// registry; a registry change writes them through OrderRepository.
	//
	// Example:
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//	change := orders.Begin(uow.OrderRepository())
	//	defer change.Rollback()
	//
	//	c, err := uow.CustomerRepository().Get(ctx, id)
	//	// ...
	//	if err := change.Save(ctx); err != nil {
	//	    return err
	//	}
	//	if err := uow.Commit(ctx); err != nil {
	//	    return err
	//	}
	//	change.Commit()
	UoW interface {
		TxManager
		CustomerRepoFactory
		StaffRepoFactory
		FleetRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
