package commands

import (
	"errors"
	"time"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrIssueMonthlyBillsCommandIsNotConstructed = errors.New(
	"IssueMonthlyBillsCommand must be created via NewIssueMonthlyBillsCommand constructor",
)

// IssueMonthlyBillsCommand issues every open monthly bill as of a point in time.
type IssueMonthlyBillsCommand struct {
	at time.Time

	guard guard.ConstructorGuard
}

func NewIssueMonthlyBillsCommand(at time.Time) (IssueMonthlyBillsCommand, error) {
	if at.IsZero() {
		return IssueMonthlyBillsCommand{}, errs.NewValueIsRequiredError("issue time")
	}
	return IssueMonthlyBillsCommand{at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c IssueMonthlyBillsCommand) Validate() error {
	return c.guard.Validate(ErrIssueMonthlyBillsCommandIsNotConstructed)
}

func (c IssueMonthlyBillsCommand) At() time.Time {
	return c.at
}
