package commands

import (
	"errors"
	"strings"

	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrRegisterCustomerCommandIsNotConstructed = errors.New(
	"RegisterCustomerCommand must be created via NewRegisterCustomerCommand constructor",
)

// RegisterCustomerCommand signs a new customer up. Field contents are
// validated again by the customer aggregate; the constructor only rejects
// missing values.
//
// Example:
//
//	cmd, err := NewRegisterCustomerCommand("Samuel", "Lai", "5th Avenue 1",
//	    "0912 345 678", "samuel@example.com", "secret", order.Monthly)
type RegisterCustomerCommand struct { //nolint:recvcheck //using for validation
	firstName   string
	lastName    string
	address     string
	phone       string
	email       string
	password    string
	billingPref order.BillingTiming

	guard guard.ConstructorGuard
}

func NewRegisterCustomerCommand(
	firstName string,
	lastName string,
	address string,
	phone string,
	email string,
	password string,
	billingPref order.BillingTiming,
) (RegisterCustomerCommand, error) {
	cmd := RegisterCustomerCommand{
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		address:   strings.TrimSpace(address),
		phone:     strings.TrimSpace(phone),
		email:     strings.TrimSpace(email),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		required("first name", cmd.firstName),
		required("last name", cmd.lastName),
		required("address", cmd.address),
		required("phone number", cmd.phone),
		required("email", cmd.email),
		cmd.setPassword(password),
		cmd.setBillingPref(billingPref),
	); err != nil {
		return RegisterCustomerCommand{}, err
	}

	return cmd, nil
}

func (c RegisterCustomerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCustomerCommandIsNotConstructed)
}

func (c RegisterCustomerCommand) FirstName() string {
	return c.firstName
}

func (c RegisterCustomerCommand) LastName() string {
	return c.lastName
}

func (c RegisterCustomerCommand) Address() string {
	return c.address
}

func (c RegisterCustomerCommand) Phone() string {
	return c.phone
}

func (c RegisterCustomerCommand) Email() string {
	return c.email
}

// Password returns the plaintext password; the handler hashes it.
func (c RegisterCustomerCommand) Password() string {
	return c.password
}

func (c RegisterCustomerCommand) BillingPreference() order.BillingTiming {
	return c.billingPref
}

func (c *RegisterCustomerCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	c.password = password
	return nil
}

func (c *RegisterCustomerCommand) setBillingPref(pref order.BillingTiming) error {
	if err := pref.Validate(); err != nil {
		return err
	}
	c.billingPref = pref
	return nil
}

func required(param string, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
