// Package jobs provides the scheduled background tasks of the parcel service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and log through zap.
//
// # Available Jobs
//
//  1. MonthlyBillingJob - on the first of the month, issues every open monthly bill
//  2. DelayedOrdersJob - hourly, logs a delay on normal orders past their due date
//  3. OrdersFlushJob - every thirty seconds, writes changed orders from the registry
//     back to the database
//
// # Usage
//
//	jobManager := jobs.NewJobManager(issueMonthlyBillsHandler, flagDelayedOrdersHandler,
//		flushOrdersHandler, jobs.Schedules{}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll(context.Background())
//
// # Error Handling
//
// A failed run is logged and counted in parcel_job_runs_total; the next run
// retries. Runs of the same job never overlap. StopAll waits for running jobs
// and finishes with a final flush.
package jobs
