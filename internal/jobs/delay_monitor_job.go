package jobs

import (
	"context"
	"log/slog"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DelayMonitorJob periodically reconciles delay status across all in-transit
// orders. The sweep marks orders DELAYED once their elapsed transit time
// exceeds the estimate and reverts them when a raised estimate covers the
// elapsed time again.
type DelayMonitorJob struct {
	handler  commands.ReconcileDelaysCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDelayMonitorJob creates a job that runs the delay sweep on the given
// cron schedule (with seconds field, e.g. "0 * * * * *" for every minute).
func NewDelayMonitorJob(
	handler commands.ReconcileDelaysCommandHandler,
	schedule string,
	logger *slog.Logger,
) *DelayMonitorJob {
	return &DelayMonitorJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "delay_monitor_job"),
	}
}

// Start begins the delay monitor sweep on its configured schedule.
func (j *DelayMonitorJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileDelaysCommand()

		started := time.Now()
		transitions, handleErr := j.handler.Handle(ctx, cmd)
		metrics.DelaySweepDuration.Observe(time.Since(started).Seconds())

		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Delay monitor sweep failed", "error", handleErr)
			return
		}

		if transitions > 0 {
			j.logger.InfoContext(ctx, "Delay monitor sweep completed", "transitions", transitions)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delay monitor job started", "schedule", j.schedule)
	return nil
}

// Stop stops the delay monitor job.
func (j *DelayMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delay monitor job stopped")
}
