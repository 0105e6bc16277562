package jobs

import (
	"fmt"
	"log/slog"

	"freightflow/internal/core/application/usecases/commands"
	"freightflow/internal/core/application/workflow"
	"freightflow/internal/core/ports"
	"freightflow/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	tenderDeadlineJob *TenderDeadlineJob
	tenderReminderJob *TenderReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	orchestrator *workflow.Orchestrator,
	remindHandler commands.RemindSuppliersCommandHandler,
	tenders ports.TenderRepository,
	clock ports.Clock,
	registry *metrics.Registry,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		tenderDeadlineJob: NewTenderDeadlineJob(orchestrator, tenders, clock, logger),
		tenderReminderJob: NewTenderReminderJob(remindHandler, tenders, clock, registry, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.tenderReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start tender reminder job: %w", err)
	}

	if err := jm.tenderDeadlineJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.tenderReminderJob.Stop()
		return fmt.Errorf("failed to start tender deadline job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.tenderDeadlineJob.Stop()
	jm.tenderReminderJob.Stop()
}
