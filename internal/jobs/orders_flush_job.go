package jobs

import (
	"context"
	"time"

	"parcel/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// DefaultOrdersFlushSchedule runs every thirty seconds.
const DefaultOrdersFlushSchedule = "*/30 * * * * *"

type ordersFlusher interface {
	Handle(ctx context.Context, cmd commands.FlushOrdersCommand) (int, error)
}

// OrdersFlushJob writes orders changed in the registry back to the database.
type OrdersFlushJob struct {
	*scheduledJob
}

func NewOrdersFlushJob(handler ordersFlusher, schedule string, logger *zap.Logger) *OrdersFlushJob {
	run := func(ctx context.Context, _ time.Time) (int, error) {
		return handler.Handle(ctx, commands.NewFlushOrdersCommand())
	}
	return &OrdersFlushJob{newScheduledJob("orders_flush_job", schedule, run, nil, logger)}
}
