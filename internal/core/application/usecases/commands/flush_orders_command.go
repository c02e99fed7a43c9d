package commands

import (
	"errors"

	"parcel/internal/pkg/guard"
)

var ErrFlushOrdersCommandIsNotConstructed = errors.New(
	"FlushOrdersCommand must be created via NewFlushOrdersCommand constructor",
)

// FlushOrdersCommand writes every modified cached order back to storage.
type FlushOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewFlushOrdersCommand() FlushOrdersCommand {
	return FlushOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c FlushOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFlushOrdersCommandIsNotConstructed)
}
