package commands

import (
	"errors"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrRegisterStaffCommandIsNotConstructed = errors.New(
	"RegisterStaffCommand must be created via NewRegisterStaffCommand constructor",
)

// RegisterStaffCommand hires a member. The registrar must be allowed to
// manage staff. An empty registrar is only accepted while no staff exists,
// for the first management account.
type RegisterStaffCommand struct { //nolint:recvcheck //using for validation
	registrarID kernel.StaffID
	firstName   string
	lastName    string
	role        staff.Role
	password    string
	assignment  string

	guard guard.ConstructorGuard
}

func NewRegisterStaffCommand(
	registrarID kernel.StaffID,
	firstName string,
	lastName string,
	role staff.Role,
	password string,
	assignment string,
) (RegisterStaffCommand, error) {
	cmd := RegisterStaffCommand{
		registrarID: registrarID,
		firstName:   strings.TrimSpace(firstName),
		lastName:    strings.TrimSpace(lastName),
		role:        role,
		password:    password,
		assignment:  strings.TrimSpace(assignment),
		guard:       guard.NewConstructorGuard(),
	}

	var registrarErr error
	if registrarID != "" {
		registrarErr = registrarID.Validate()
	}
	var passwordErr error
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}

	if err := errors.Join(
		registrarErr,
		required("first name", cmd.firstName),
		required("last name", cmd.lastName),
		role.Validate(),
		passwordErr,
	); err != nil {
		return RegisterStaffCommand{}, err
	}

	return cmd, nil
}

func (c RegisterStaffCommand) Validate() error {
	return c.guard.Validate(ErrRegisterStaffCommandIsNotConstructed)
}

// RegistrarID returns the registering member, or "" for the first account.
func (c RegisterStaffCommand) RegistrarID() kernel.StaffID {
	return c.registrarID
}

func (c RegisterStaffCommand) FirstName() string {
	return c.firstName
}

func (c RegisterStaffCommand) LastName() string {
	return c.lastName
}

func (c RegisterStaffCommand) Role() staff.Role {
	return c.role
}

func (c RegisterStaffCommand) Password() string {
	return c.password
}

// Assignment returns the repository name or vehicle plate of the new member.
func (c RegisterStaffCommand) Assignment() string {
	return c.assignment
}
