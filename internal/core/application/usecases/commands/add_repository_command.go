package commands

import (
	"errors"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrAddRepositoryCommandIsNotConstructed = errors.New(
	"AddRepositoryCommand must be created via NewAddRepositoryCommand constructor",
)

// AddRepositoryCommand registers a repository (warehouse) by unique name.
type AddRepositoryCommand struct { //nolint:recvcheck //using for validation
	staffID kernel.StaffID
	address string
	name    string

	guard guard.ConstructorGuard
}

func NewAddRepositoryCommand(staffID kernel.StaffID, address string, name string) (AddRepositoryCommand, error) {
	cmd := AddRepositoryCommand{
		staffID: staffID,
		address: strings.TrimSpace(address),
		name:    strings.TrimSpace(name),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		staffID.Validate(),
		required("address", cmd.address),
		required("name", cmd.name),
	); err != nil {
		return AddRepositoryCommand{}, err
	}

	return cmd, nil
}

func (c AddRepositoryCommand) Validate() error {
	return c.guard.Validate(ErrAddRepositoryCommandIsNotConstructed)
}

func (c AddRepositoryCommand) StaffID() kernel.StaffID {
	return c.staffID
}

func (c AddRepositoryCommand) Address() string {
	return c.address
}

func (c AddRepositoryCommand) Name() string {
	return c.name
}
