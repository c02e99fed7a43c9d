package commands

import (
	"errors"
	"time"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrFlagDelayedOrdersCommandIsNotConstructed = errors.New(
	"FlagDelayedOrdersCommand must be created via NewFlagDelayedOrdersCommand constructor",
)

// FlagDelayedOrdersCommand marks every normal order past its due date as delayed.
type FlagDelayedOrdersCommand struct {
	at time.Time

	guard guard.ConstructorGuard
}

func NewFlagDelayedOrdersCommand(at time.Time) (FlagDelayedOrdersCommand, error) {
	if at.IsZero() {
		return FlagDelayedOrdersCommand{}, errs.NewValueIsRequiredError("check time")
	}
	return FlagDelayedOrdersCommand{at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c FlagDelayedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFlagDelayedOrdersCommandIsNotConstructed)
}

func (c FlagDelayedOrdersCommand) At() time.Time {
	return c.at
}
