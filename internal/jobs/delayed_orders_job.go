package jobs

import (
	"context"
	"time"

	"parcel/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// DefaultDelayedOrdersSchedule runs at the top of every hour.
const DefaultDelayedOrdersSchedule = "0 0 * * * *"

type delayedOrdersFlagger interface {
	Handle(ctx context.Context, cmd commands.FlagDelayedOrdersCommand) (int, error)
}

// DelayedOrdersJob logs a delay on every normal order past its due date.
type DelayedOrdersJob struct {
	*scheduledJob
}

func NewDelayedOrdersJob(handler delayedOrdersFlagger, schedule string, now func() time.Time, logger *zap.Logger) *DelayedOrdersJob {
	run := func(ctx context.Context, at time.Time) (int, error) {
		cmd, err := commands.NewFlagDelayedOrdersCommand(at)
		if err != nil {
			return 0, err
		}
		return handler.Handle(ctx, cmd)
	}
	return &DelayedOrdersJob{newScheduledJob("delayed_orders_job", schedule, run, now, logger)}
}
