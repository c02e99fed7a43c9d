package commands

import (
	"context"
	"errors"
	"strings"

	"parcel/internal/core/domain/model/customer"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/ports"
)

type UpdateProfileCommandHandler struct {
	uowFactory  CustomerUoWFactory
	securityLog ports.SecurityLog
}

func NewUpdateProfileCommandHandler(uowFactory CustomerUoWFactory, securityLog ports.SecurityLog) UpdateProfileCommandHandler {
	return UpdateProfileCommandHandler{
		uowFactory:  uowFactory,
		securityLog: securityLog,
	}
}

// Handle applies every requested change or none of them.
func (h UpdateProfileCommandHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) error {
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

	repo := uow.CustomerRepository()
	c, err := repo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	changed, err := applyProfile(c, cmd)
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, c); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.securityLog.Record(ports.EventProfileUpdate, c.ID().String(), strings.Join(changed, ","))
	return nil
}

func applyProfile(c *customer.Customer, cmd UpdateProfileCommand) ([]string, error) {
	var (
		changed []string
		errList []error
	)

	if cmd.Address() != "" {
		home, err := location.NewDestination(cmd.Address())
		if err == nil {
			err = c.SetAddress(home)
		}
		errList = append(errList, err)
		changed = append(changed, "address")
	}
	if cmd.Phone() != "" {
		errList = append(errList, c.SetPhone(cmd.Phone()))
		changed = append(changed, "phone")
	}
	if cmd.BillingPreference() != order.UnknownTiming {
		errList = append(errList, c.SetBillingPreference(cmd.BillingPreference()))
		changed = append(changed, "billing_preference")
	}

	return changed, errors.Join(errList...)
}
