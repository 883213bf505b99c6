// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. DelayMonitorJob - Periodically reconciles delay status across all in-transit orders
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileDelaysHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The delay monitor uses a six-field cron expression with seconds, configured
// through DELAY_SWEEP_SCHEDULE. The default "0 * * * * *" runs once a minute,
// matching the minute granularity of delay classification.
//
// # Error Handling
//
// The delay monitor logs sweep failures and keeps running; per-order failures
// inside a sweep are handled by the reconciliation handler itself and never
// abort the remaining orders.
package jobs
