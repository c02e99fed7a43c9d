package commands

import (
	"errors"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrUpdateProfileCommandIsNotConstructed = errors.New(
	"UpdateProfileCommand must be created via NewUpdateProfileCommand constructor",
)

// UpdateProfileCommand changes a customer's contact details or billing
// preference. An empty address or phone and UnknownTiming leave the field
// unchanged; at least one field must change.
type UpdateProfileCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.CustomerID
	address     string
	phone       string
	billingPref order.BillingTiming

	guard guard.ConstructorGuard
}

func NewUpdateProfileCommand(
	customerID kernel.CustomerID,
	address string,
	phone string,
	billingPref order.BillingTiming,
) (UpdateProfileCommand, error) {
	cmd := UpdateProfileCommand{
		address:     strings.TrimSpace(address),
		phone:       strings.TrimSpace(phone),
		billingPref: billingPref,
		guard:       guard.NewConstructorGuard(),
	}

	if err := customerID.Validate(); err != nil {
		return UpdateProfileCommand{}, err
	}
	cmd.customerID = customerID

	if cmd.address == "" && cmd.phone == "" && billingPref == order.UnknownTiming {
		return UpdateProfileCommand{}, errs.NewValueIsRequiredError("profile change")
	}
	if billingPref != order.UnknownTiming {
		if err := billingPref.Validate(); err != nil {
			return UpdateProfileCommand{}, err
		}
	}

	return cmd, nil
}

func (c UpdateProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProfileCommandIsNotConstructed)
}

func (c UpdateProfileCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

// Address returns the new address, or "" when unchanged.
func (c UpdateProfileCommand) Address() string {
	return c.address
}

// Phone returns the new phone number, or "" when unchanged.
func (c UpdateProfileCommand) Phone() string {
	return c.phone
}

// BillingPreference returns the new preference, or UnknownTiming when unchanged.
func (c UpdateProfileCommand) BillingPreference() order.BillingTiming {
	return c.billingPref
}
