package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"freightflow/internal/adapters/in/http"
	"freightflow/internal/adapters/out/docgen"
	"freightflow/internal/adapters/out/postgres"
	"freightflow/internal/adapters/out/postgres/tenderrepo"
	"freightflow/internal/adapters/out/webhook"
	"freightflow/internal/core/application/usecases/commands"
	"freightflow/internal/core/application/usecases/queries"
	"freightflow/internal/core/application/workflow"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/services"
	"freightflow/internal/core/ports"
	"freightflow/internal/jobs"
	"freightflow/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	policy    commands.WorkflowPolicy
	notifier  ports.Notifier
	documents ports.DocumentGenerator
	clock     ports.Clock
	metrics   *metrics.Registry
	logger    *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	policy, err := policyFromConfig(config)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
		notifier:   webhook.NewNotifier(config.NotifierWebhookURL, logger),
		documents:  docgen.NewGenerator(logger),
		clock:      systemClock{},
		metrics:    metrics.NewRegistry(),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateIssueTenderCommandHandler() commands.IssueTenderCommandHandler {
	matcher := services.NewSupplierMatcher(services.NewFixedGeoCoverage(), c.policy.MaxSuppliers)
	return commands.NewIssueTenderCommandHandler(c.createUoWFactory(), matcher, c.notifier, c.clock, c.policy)
}

func (c *CompositionRoot) CreateEvaluateQuotesCommandHandler() (commands.EvaluateQuotesCommandHandler, error) {
	gate, err := services.NewDecisionGate(c.policy.AutoSelectThreshold, c.policy.MarkupPercent)
	if err != nil {
		return commands.EvaluateQuotesCommandHandler{}, err
	}

	return commands.NewEvaluateQuotesCommandHandler(
		c.createUoWFactory(), services.NewQuoteEvaluator(), gate, c.notifier, c.clock, c.policy), nil
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() commands.ProcessOrderCommandHandler {
	return commands.NewProcessOrderCommandHandler(c.createUoWFactory(), c.documents, c.notifier, c.clock, c.policy)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.createUoWFactory(), c.documents, c.notifier, c.clock, c.policy)
}

func (c *CompositionRoot) CreateSelectQuoteCommandHandler() (commands.SelectQuoteCommandHandler, error) {
	gate, err := services.NewDecisionGate(c.policy.AutoSelectThreshold, c.policy.MarkupPercent)
	if err != nil {
		return commands.SelectQuoteCommandHandler{}, err
	}

	return commands.NewSelectQuoteCommandHandler(c.createUoWFactory(), gate, c.notifier, c.clock, c.policy), nil
}

func (c *CompositionRoot) CreateRemindSuppliersCommandHandler() commands.RemindSuppliersCommandHandler {
	return commands.NewRemindSuppliersCommandHandler(c.createUoWFactory(), c.notifier, c.clock, c.policy)
}

func (c *CompositionRoot) CreateGetWorkflowStatusQueryHandler() queries.GetWorkflowStatusQueryHandler {
	return queries.NewGetWorkflowStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardMetricsQueryHandler() queries.GetDashboardMetricsQueryHandler {
	return queries.NewGetDashboardMetricsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrchestrator() (*workflow.Orchestrator, error) {
	evaluateQuotes, err := c.CreateEvaluateQuotesCommandHandler()
	if err != nil {
		return nil, err
	}

	return workflow.NewOrchestrator(
		c.CreateIssueTenderCommandHandler(),
		evaluateQuotes,
		c.CreateProcessOrderCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.metrics,
	), nil
}

func (c *CompositionRoot) CreateJobManager(orchestrator *workflow.Orchestrator) *jobs.JobManager {
	return jobs.NewJobManager(
		orchestrator,
		c.CreateRemindSuppliersCommandHandler(),
		c.createTenderReader(),
		c.clock,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateHTTPServer(orchestrator *workflow.Orchestrator) (*http.Server, error) {
	selectQuote, err := c.CreateSelectQuoteCommandHandler()
	if err != nil {
		return nil, err
	}

	return http.NewServer(
		orchestrator,
		selectQuote,
		c.CreateGetWorkflowStatusQueryHandler(),
		c.CreateGetDashboardMetricsQueryHandler(),
		c.metrics,
	), nil
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// createTenderReader returns a tender repository outside any unit of work.
// The scheduled jobs use it for listing only; all writes still go through a
// unit of work.
func (c *CompositionRoot) createTenderReader() ports.TenderRepository {
	return tenderrepo.NewGormTenderRepository(c.gormDB, noopTracker{})
}

func policyFromConfig(config Config) (commands.WorkflowPolicy, error) {
	policy := commands.DefaultWorkflowPolicy()

	if err := overrideHours(&policy.BidWindow, config.TenderBidWindowHours, "TENDER_BID_WINDOW_HOURS"); err != nil {
		return commands.WorkflowPolicy{}, err
	}

	if err := overrideHours(&policy.EvaluationWindow, config.TenderEvaluationWindowHours, "TENDER_EVALUATION_WINDOW_HOURS"); err != nil {
		return commands.WorkflowPolicy{}, err
	}

	if err := overrideHours(&policy.ReminderLead, config.TenderReminderLeadHours, "TENDER_REMINDER_LEAD_HOURS"); err != nil {
		return commands.WorkflowPolicy{}, err
	}

	if config.MaxMatchedSuppliers != "" {
		limit, err := strconv.Atoi(config.MaxMatchedSuppliers)
		if err != nil {
			return commands.WorkflowPolicy{}, fmt.Errorf("MAX_MATCHED_SUPPLIERS: %w", err)
		}
		policy.MaxSuppliers = limit
	}

	if config.AutoSelectThreshold != "" {
		threshold, err := strconv.ParseFloat(config.AutoSelectThreshold, 64)
		if err != nil {
			return commands.WorkflowPolicy{}, fmt.Errorf("AUTO_SELECT_THRESHOLD: %w", err)
		}
		policy.AutoSelectThreshold = threshold
	}

	if config.OrderMarkupPercent != "" {
		markup, err := strconv.ParseFloat(config.OrderMarkupPercent, 64)
		if err != nil {
			return commands.WorkflowPolicy{}, fmt.Errorf("ORDER_MARKUP_PERCENT: %w", err)
		}
		policy.MarkupPercent = markup
	}

	if config.SideEffectTimeoutSeconds != "" {
		seconds, err := strconv.Atoi(config.SideEffectTimeoutSeconds)
		if err != nil {
			return commands.WorkflowPolicy{}, fmt.Errorf("SIDE_EFFECT_TIMEOUT_SECONDS: %w", err)
		}
		policy.SideEffectTimeout = time.Duration(seconds) * time.Second
	}

	return policy, nil
}

func overrideHours(target *time.Duration, value string, name string) error {
	if value == "" {
		return nil
	}

	hours, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	*target = time.Duration(hours) * time.Hour
	return nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// noopTracker satisfies the repositories' aggregate tracking outside a unit
// of work. Used only for read paths.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// systemClock is the production wall-clock time source.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
