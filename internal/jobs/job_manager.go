package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	overdueOrdersJob *OverdueOrdersJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	flagOverdueHandler commands.FlagOverdueOrdersCommandHandler,
	overdueSchedule string,
	overdueBatchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		overdueOrdersJob: NewOverdueOrdersJob(flagOverdueHandler, overdueSchedule, overdueBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue orders job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueOrdersJob.Stop()
}
