package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Schedules holds the cron expressions of the jobs, seconds field first.
// Empty fields fall back to the defaults.
type Schedules struct {
	MonthlyBilling string
	DelayedOrders  string
	OrdersFlush    string
}

func (s Schedules) withDefaults() Schedules {
	if s.MonthlyBilling == "" {
		s.MonthlyBilling = DefaultMonthlyBillingSchedule
	}
	if s.DelayedOrders == "" {
		s.DelayedOrders = DefaultDelayedOrdersSchedule
	}
	if s.OrdersFlush == "" {
		s.OrdersFlush = DefaultOrdersFlushSchedule
	}
	return s
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	monthlyBillingJob *MonthlyBillingJob
	delayedOrdersJob  *DelayedOrdersJob
	ordersFlushJob    *OrdersFlushJob
}

func NewJobManager(
	monthlyBills monthlyBillsIssuer,
	delayedOrders delayedOrdersFlagger,
	flush ordersFlusher,
	schedules Schedules,
	logger *zap.Logger,
) *JobManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	schedules = schedules.withDefaults()
	return &JobManager{
		monthlyBillingJob: NewMonthlyBillingJob(monthlyBills, schedules.MonthlyBilling, time.Now, logger),
		delayedOrdersJob:  NewDelayedOrdersJob(delayedOrders, schedules.DelayedOrders, time.Now, logger),
		ordersFlushJob:    NewOrdersFlushJob(flush, schedules.OrdersFlush, logger),
	}
}

// StartAll starts all scheduled jobs. If one fails to start, the jobs
// already started are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.ordersFlushJob.Start(); err != nil {
		return fmt.Errorf("failed to start orders flush job: %w", err)
	}

	if err := jm.delayedOrdersJob.Start(); err != nil {
		jm.ordersFlushJob.Stop()
		return fmt.Errorf("failed to start delayed orders job: %w", err)
	}

	if err := jm.monthlyBillingJob.Start(); err != nil {
		jm.delayedOrdersJob.Stop()
		jm.ordersFlushJob.Stop()
		return fmt.Errorf("failed to start monthly billing job: %w", err)
	}

	return nil
}

// StopAll stops all jobs, then flushes the registry one last time so no
// order change is lost on shutdown.
func (jm *JobManager) StopAll(ctx context.Context) {
	jm.monthlyBillingJob.Stop()
	jm.delayedOrdersJob.Stop()
	jm.ordersFlushJob.Stop()
	jm.ordersFlushJob.RunOnce(ctx)
}
