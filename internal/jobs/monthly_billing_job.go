package jobs

import (
	"context"
	"time"

	"parcel/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// DefaultMonthlyBillingSchedule runs at midnight on the first of every month.
const DefaultMonthlyBillingSchedule = "0 0 0 1 * *"

type monthlyBillsIssuer interface {
	Handle(ctx context.Context, cmd commands.IssueMonthlyBillsCommand) (int, error)
}

// MonthlyBillingJob issues the open monthly bills of every customer.
type MonthlyBillingJob struct {
	*scheduledJob
}

func NewMonthlyBillingJob(handler monthlyBillsIssuer, schedule string, now func() time.Time, logger *zap.Logger) *MonthlyBillingJob {
	run := func(ctx context.Context, at time.Time) (int, error) {
		cmd, err := commands.NewIssueMonthlyBillsCommand(at)
		if err != nil {
			return 0, err
		}
		return handler.Handle(ctx, cmd)
	}
	return &MonthlyBillingJob{newScheduledJob("monthly_billing_job", schedule, run, now, logger)}
}
