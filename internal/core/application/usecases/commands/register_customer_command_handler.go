package commands

import (
	"context"
	"errors"
	"fmt"

	"parcel/internal/core/domain/model/customer"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// RegisterCustomerCommandHandler creates customers. Emails are unique across
// the system; the next customer ID follows the number of registered customers.
type RegisterCustomerCommandHandler struct {
	uowFactory   CustomerUoWFactory
	securityLog  ports.SecurityLog
	passwordCost int
}

func NewRegisterCustomerCommandHandler(
	uowFactory CustomerUoWFactory,
	securityLog ports.SecurityLog,
	passwordCost int,
) RegisterCustomerCommandHandler {
	return RegisterCustomerCommandHandler{
		uowFactory:   uowFactory,
		securityLog:  securityLog,
		passwordCost: passwordCost,
	}
}

// Handle registers the customer and returns its new ID.
func (h RegisterCustomerCommandHandler) Handle(ctx context.Context, cmd RegisterCustomerCommand) (kernel.CustomerID, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	home, err := location.NewDestination(cmd.Address())
	if err != nil {
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

	repo := uow.CustomerRepository()
	if err = ensureEmailIsFree(ctx, repo, cmd.Email()); err != nil {
		return "", err
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return "", err
	}
	id, err := kernel.NewCustomerID(int(count) + 1)
	if err != nil {
		return "", err
	}

	c, err := customer.NewCustomer(
		id,
		cmd.FirstName(),
		cmd.LastName(),
		home,
		cmd.Phone(),
		cmd.Email(),
		hash,
		cmd.BillingPreference(),
	)
	if err != nil {
		return "", err
	}

	if err = repo.Add(ctx, c); err != nil {
		return "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.securityLog.Record(ports.EventRegister, id.String(), c.Email())
	return id, nil
}

func ensureEmailIsFree(ctx context.Context, repo ports.CustomerRepository, email string) error {
	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%s is already registered", email))
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return err
	}
}
