package jobs

import (
	"context"
	"errors"
	"log/slog"

	"freightflow/internal/core/application/workflow"
	"freightflow/internal/core/ports"
	"freightflow/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// TenderDeadlineJob advances tenders whose bid window has closed. Every
// minute it lists active tenders past their deadline and triggers the quote
// evaluation workflow for each, the same entry point the HTTP API uses.
type TenderDeadlineJob struct {
	orchestrator *workflow.Orchestrator
	tenders      ports.TenderRepository
	clock        ports.Clock
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewTenderDeadlineJob creates a job that evaluates expired tenders.
func NewTenderDeadlineJob(
	orchestrator *workflow.Orchestrator,
	tenders ports.TenderRepository,
	clock ports.Clock,
	logger *slog.Logger,
) *TenderDeadlineJob {
	return &TenderDeadlineJob{
		orchestrator: orchestrator,
		tenders:      tenders,
		clock:        clock,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "tender_deadline_job"),
	}
}

// Start begins the deadline job to run every minute.
func (j *TenderDeadlineJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tender deadline job started (running every minute)")
	return nil
}

// Stop stops the deadline job.
func (j *TenderDeadlineJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tender deadline job stopped")
}

func (j *TenderDeadlineJob) run(ctx context.Context) {
	expired, err := j.tenders.GetActivePastDeadline(ctx, j.clock.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Listing expired tenders failed", "error", err)
		return
	}

	for _, t := range expired {
		trigger, err := workflow.NewTrigger(t.TenantID(), workflow.TypeQuoteCollection, t.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Building evaluation trigger failed",
				"tender_id", t.ID().String(), "error", err)
			continue
		}

		result, err := j.orchestrator.Trigger(ctx, trigger)
		if err != nil {
			// Another replica won the race for this tender.
			if errors.Is(err, errs.ErrVersionIsInvalid) {
				continue
			}

			j.logger.ErrorContext(ctx, "Quote evaluation trigger failed",
				"tender_id", t.ID().String(), "error", err)
			continue
		}

		if result.AutomationLevel == workflow.AutomationWaiting {
			j.logger.InfoContext(ctx, "Tender past deadline with no quotes, awaiting manual handling",
				"tender_id", t.ID().String())
		}
	}
}
