package commands

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

type RegisterStaffCommandHandler struct {
	uowFactory   StaffUoWFactory
	securityLog  ports.SecurityLog
	passwordCost int
}

func NewRegisterStaffCommandHandler(
	uowFactory StaffUoWFactory,
	securityLog ports.SecurityLog,
	passwordCost int,
) RegisterStaffCommandHandler {
	return RegisterStaffCommandHandler{
		uowFactory:   uowFactory,
		securityLog:  securityLog,
		passwordCost: passwordCost,
	}
}

// Handle registers the member and returns its new ID. Repository staff and
// drivers must be assigned to a repository or vehicle that exists.
func (h RegisterStaffCommandHandler) Handle(ctx context.Context, cmd RegisterStaffCommand) (kernel.StaffID, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	hash, err := kernel.HashPassword(cmd.Password(), h.passwordCost)
	if err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StaffRepository()
	count, err := repo.Count(ctx)
	if err != nil {
		return "", err
	}
	if err = h.authorizeRegistrar(ctx, repo, cmd, count); err != nil {
		return "", err
	}
	if err = checkAssignment(ctx, uow.FleetRepository(), cmd.Role(), cmd.Assignment()); err != nil {
		return "", err
	}

	id, err := kernel.NewStaffID(int(count) + 1)
	if err != nil {
		return "", err
	}
	member, err := staff.NewStaff(id, cmd.FirstName(), cmd.LastName(), cmd.Role(), hash, cmd.Assignment())
	if err != nil {
		return "", err
	}

	if err = repo.Add(ctx, member); err != nil {
		return "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.securityLog.Record(ports.EventStaffRegister, id.String(), member.Role().String())
	return id, nil
}

func (h RegisterStaffCommandHandler) authorizeRegistrar(
	ctx context.Context,
	repo ports.StaffRepository,
	cmd RegisterStaffCommand,
	count int64,
) error {
	if cmd.RegistrarID() == "" {
		if count > 0 {
			return errs.NewValueIsRequiredError("registrar")
		}
		if cmd.Role() != staff.Management {
			return errs.NewAccessDeniedErrorWithCause("role", cmd.Role(),
				errors.New("the first member must be management"))
		}
		return nil
	}

	registrar, err := repo.Get(ctx, cmd.RegistrarID())
	if err != nil {
		return err
	}
	return registrar.Authorize(staff.ManageStaff)
}

func checkAssignment(ctx context.Context, fleet ports.FleetRepository, role staff.Role, assignment string) error {
	switch {
	case (role.NeedsRepository() || role.NeedsVehicle()) && assignment == "":
		return errs.NewValueIsRequiredError("assignment")
	case role.NeedsRepository():
		_, err := fleet.GetRepository(ctx, assignment)
		return err
	case role.NeedsVehicle():
		_, err := fleet.GetVehicle(ctx, assignment)
		return err
	default:
		return nil
	}
}
