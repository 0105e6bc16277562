package jobs

import (
	"context"
	"errors"
	"log/slog"

	"freightflow/internal/core/application/usecases/commands"
	"freightflow/internal/core/ports"
	"freightflow/internal/pkg/errs"
	"freightflow/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// TenderReminderJob nudges non-responding suppliers. Every minute it lists
// active tenders whose reminder time has passed and runs the reminder command
// for each; the command's reminded flag guarantees at most one reminder per
// tender even across replicas.
type TenderReminderJob struct {
	handler commands.RemindSuppliersCommandHandler
	tenders ports.TenderRepository
	clock   ports.Clock
	metrics *metrics.Registry
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTenderReminderJob creates a job that reminds non-responding suppliers.
// The metrics registry may be nil, disabling instrumentation.
func NewTenderReminderJob(
	handler commands.RemindSuppliersCommandHandler,
	tenders ports.TenderRepository,
	clock ports.Clock,
	registry *metrics.Registry,
	logger *slog.Logger,
) *TenderReminderJob {
	return &TenderReminderJob{
		handler: handler,
		tenders: tenders,
		clock:   clock,
		metrics: registry,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "tender_reminder_job"),
	}
}

// Start begins the reminder job to run every minute.
func (j *TenderReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tender reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder job.
func (j *TenderReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tender reminder job stopped")
}

func (j *TenderReminderJob) run(ctx context.Context) {
	due, err := j.tenders.GetActiveDueForReminder(ctx, j.clock.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Listing tenders due for reminder failed", "error", err)
		return
	}

	for _, t := range due {
		command, err := commands.NewRemindSuppliersCommand(t.TenantID(), t.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Building reminder command failed",
				"tender_id", t.ID().String(), "error", err)
			continue
		}

		result, err := j.handler.Handle(ctx, command)
		if err != nil {
			// Another replica won the race for this tender.
			if errors.Is(err, errs.ErrVersionIsInvalid) {
				continue
			}

			j.logger.ErrorContext(ctx, "Reminder command failed",
				"tender_id", t.ID().String(), "error", err)
			continue
		}

		if result.Skipped {
			continue
		}

		if j.metrics != nil {
			j.metrics.RemindersSent.Add(float64(result.RemindersSent))
		}

		for _, failure := range result.FailedSideEffects {
			j.logger.WarnContext(ctx, "Reminder notification failed",
				"tender_id", t.ID().String(), "failure", failure)
		}
	}
}
