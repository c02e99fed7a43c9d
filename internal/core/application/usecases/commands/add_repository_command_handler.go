package commands

import (
	"context"

	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/staff"
)

type AddRepositoryCommandHandler struct {
	uowFactory StaffUoWFactory
}

func NewAddRepositoryCommandHandler(uowFactory StaffUoWFactory) AddRepositoryCommandHandler {
	return AddRepositoryCommandHandler{uowFactory: uowFactory}
}

func (h AddRepositoryCommandHandler) Handle(ctx context.Context, cmd AddRepositoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	member, err := uow.StaffRepository().Get(ctx, cmd.StaffID())
	if err != nil {
		return err
	}
	if err = member.Authorize(staff.ManageFleet); err != nil {
		return err
	}

	repo, err := location.NewRepository(cmd.Address(), cmd.Name())
	if err != nil {
		return err
	}
	if err = uow.FleetRepository().AddRepository(ctx, repo); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
