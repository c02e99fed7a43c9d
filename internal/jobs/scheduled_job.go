package jobs

import (
	"context"
	"time"

	"parcel/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// runFunc performs one run of a job at the given time and reports how many
// items it touched.
type runFunc func(ctx context.Context, at time.Time) (int, error)

// scheduledJob runs a runFunc on its own cron schedule. Overlapping runs are
// skipped.
type scheduledJob struct {
	name     string
	schedule string
	run      runFunc
	now      func() time.Time
	cron     *cron.Cron
	logger   *zap.Logger
}

func newScheduledJob(name string, schedule string, run runFunc, now func() time.Time, logger *zap.Logger) *scheduledJob {
	if now == nil {
		now = time.Now
	}
	return &scheduledJob{
		name:     name,
		schedule: schedule,
		run:      run,
		now:      now,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With(zap.String("component", name)),
	}
}

// Start registers the job and starts its scheduler.
func (j *scheduledJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("job started", zap.String("schedule", j.schedule))
	return nil
}

// RunOnce runs the job immediately and returns the number of items touched.
// Failures are logged and counted; the next scheduled run retries.
func (j *scheduledJob) RunOnce(ctx context.Context) int {
	n, err := j.run(ctx, j.now().UTC())
	metrics.JobRunsTotal.WithLabelValues(j.name, metrics.Result(err)).Inc()
	if err != nil {
		j.logger.Error("job run failed", zap.Error(err), zap.Int("processed", n))
		return n
	}
	if n > 0 {
		j.logger.Info("job run finished", zap.Int("processed", n))
	}
	return n
}

// Stop stops the scheduler and waits for a running job to return.
func (j *scheduledJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("job stopped")
}
