package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// maxBatchesPerRun bounds one tick so a slow run cannot overlap the next one forever.
const maxBatchesPerRun = 50

type overdueFlagger interface {
	Handle(ctx context.Context, command commands.FlagOverdueOrdersCommand) (int, error)
}

// OverdueOrdersJob periodically flags orders whose delivery date has passed.
type OverdueOrdersJob struct {
	handler   overdueFlagger
	cron      *cron.Cron
	logger    *slog.Logger
	schedule  string
	batchSize int
}

// NewOverdueOrdersJob creates a job that runs the overdue scan on schedule,
// a six-field cron expression with seconds.
func NewOverdueOrdersJob(handler overdueFlagger, schedule string, batchSize int, logger *slog.Logger) *OverdueOrdersJob {
	return &OverdueOrdersJob{
		handler:   handler,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "overdue_orders_job"),
		schedule:  schedule,
		batchSize: batchSize,
	}
}

// Start registers the scan and starts the scheduler.
func (j *OverdueOrdersJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue orders job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running scan to finish.
func (j *OverdueOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue orders job stopped")
}

// run keeps taking batches while they come back full.
func (j *OverdueOrdersJob) run(ctx context.Context) int {
	cmd, err := commands.NewFlagOverdueOrdersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue orders job misconfigured", "error", err)
		return 0
	}

	total := 0
	for range maxBatchesPerRun {
		flagged, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue orders job failed", "error", err, "flagged", total)
			return total
		}
		total += flagged
		if flagged < j.batchSize {
			break
		}
	}

	if total > 0 {
		j.logger.InfoContext(ctx, "Flagged overdue orders", "count", total)
	}
	return total
}
