package workflow

import (
	"context"
	"fmt"
	"time"

	"freightflow/internal/core/application/usecases/commands"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/metrics"
)

// Trigger outcomes recorded in metrics.
const (
	outcomeCompleted = "completed"
	outcomeWaiting   = "waiting"
	outcomeNoop      = "noop"
	outcomeFailed    = "failed"
)

// AutomationLevel reports how far automation carried a triggered stage.
type AutomationLevel string

const (
	// AutomationHigh means the stage ran to completion automatically.
	AutomationHigh AutomationLevel = "HIGH"

	// AutomationWaiting means the stage is blocked on external input (for
	// example, no quotes submitted yet) and should be re-triggered later.
	AutomationWaiting AutomationLevel = "WAITING"
)

// Result is the uniform report of one trigger. Stage-specific fields are set
// only for the stage that ran; the rest stay zero.
type Result struct {
	WorkflowType Type
	EntityID     kernel.UUID

	// AutomationLevel reports whether the stage completed or is waiting.
	AutomationLevel AutomationLevel

	// Noop reports an idempotent re-trigger: the stage had already run and
	// nothing changed.
	Noop bool

	// Tender issuance.
	TenderID           *kernel.UUID
	SuppliersContacted int
	BidDeadline        time.Time

	// Quote evaluation.
	QuotesAnalyzed     int
	ComparisonID       *kernel.UUID
	RecommendedQuoteID *kernel.UUID
	Confidence         float64
	AutoSelected       bool
	OrderID            *kernel.UUID

	// Order processing.
	TrackingNumber    string
	EstimatedDelivery time.Time

	// Delivery completion.
	InvoiceReference string
	InvoiceGenerated bool

	// FailedSideEffects lists external side effects (notifications, document
	// generations) that failed. The stage's state transition committed
	// regardless; these are retried out of band.
	FailedSideEffects []string
}

// Orchestrator is the single entry point of the procurement pipeline. It maps
// each workflow type to its stage handler through a dispatch table and
// annotates every failure with the workflow type and entity, so callers and
// logs always see which stage of which entity failed.
type Orchestrator struct {
	dispatch map[Type]func(ctx context.Context, trigger Trigger) (Result, error)
	metrics  *metrics.Registry
}

// NewOrchestrator wires the dispatch table over the four stage handlers.
// The metrics registry may be nil, disabling instrumentation.
func NewOrchestrator(
	issueTender commands.IssueTenderCommandHandler,
	evaluateQuotes commands.EvaluateQuotesCommandHandler,
	processOrder commands.ProcessOrderCommandHandler,
	completeDelivery commands.CompleteDeliveryCommandHandler,
	registry *metrics.Registry,
) *Orchestrator {
	o := &Orchestrator{metrics: registry}
	o.dispatch = map[Type]func(ctx context.Context, trigger Trigger) (Result, error){
		TypeTransportRequest: func(ctx context.Context, trigger Trigger) (Result, error) {
			return o.issueTender(ctx, issueTender, trigger)
		},
		TypeQuoteCollection: func(ctx context.Context, trigger Trigger) (Result, error) {
			return o.evaluateQuotes(ctx, evaluateQuotes, trigger)
		},
		TypeOrderProcessing: func(ctx context.Context, trigger Trigger) (Result, error) {
			return o.processOrder(ctx, processOrder, trigger)
		},
		TypeDeliveryNotification: func(ctx context.Context, trigger Trigger) (Result, error) {
			return o.completeDelivery(ctx, completeDelivery, trigger)
		},
	}
	return o
}

// Trigger advances the pipeline by one stage for the trigger's entity.
//
// Errors are annotated with the workflow type and entity identifier; the
// underlying typed error remains reachable through errors.Is/As.
func (o *Orchestrator) Trigger(ctx context.Context, trigger Trigger) (Result, error) {
	if err := trigger.Validate(); err != nil {
		return Result{}, err
	}

	handle, ok := o.dispatch[trigger.WorkflowType()]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownWorkflowType, string(trigger.WorkflowType()))
	}

	started := time.Now()

	result, err := handle(ctx, trigger)
	if err != nil {
		o.observe(trigger, outcomeFailed, started, 0)
		return Result{}, fmt.Errorf("%s workflow for entity %s: %w",
			trigger.WorkflowType(), trigger.EntityID(), err)
	}

	result.WorkflowType = trigger.WorkflowType()
	result.EntityID = trigger.EntityID()

	o.observe(trigger, resultOutcome(result), started, len(result.FailedSideEffects))
	return result, nil
}

func (o *Orchestrator) observe(trigger Trigger, outcome string, started time.Time, failedSideEffects int) {
	if o.metrics == nil {
		return
	}

	o.metrics.ObserveTrigger(string(trigger.WorkflowType()), outcome, time.Since(started), failedSideEffects)
}

func resultOutcome(result Result) string {
	switch {
	case result.AutomationLevel == AutomationWaiting:
		return outcomeWaiting
	case result.Noop:
		return outcomeNoop
	default:
		return outcomeCompleted
	}
}

func (o *Orchestrator) issueTender(
	ctx context.Context,
	handler commands.IssueTenderCommandHandler,
	trigger Trigger,
) (Result, error) {
	command, err := commands.NewIssueTenderCommand(trigger.TenantID(), trigger.EntityID())
	if err != nil {
		return Result{}, err
	}

	stage, err := handler.Handle(ctx, command)
	if err != nil {
		return Result{}, err
	}

	tenderID := stage.TenderID
	return Result{
		AutomationLevel:    AutomationHigh,
		Noop:               stage.AlreadyIssued,
		TenderID:           &tenderID,
		SuppliersContacted: stage.SuppliersContacted,
		BidDeadline:        stage.Deadline,
		FailedSideEffects:  stage.FailedSideEffects,
	}, nil
}

func (o *Orchestrator) evaluateQuotes(
	ctx context.Context,
	handler commands.EvaluateQuotesCommandHandler,
	trigger Trigger,
) (Result, error) {
	command, err := commands.NewEvaluateQuotesCommand(trigger.TenantID(), trigger.EntityID())
	if err != nil {
		return Result{}, err
	}

	stage, err := handler.Handle(ctx, command)
	if err != nil {
		return Result{}, err
	}

	level := AutomationHigh
	if stage.Waiting {
		level = AutomationWaiting
	}

	return Result{
		AutomationLevel:    level,
		Noop:               stage.AlreadyDecided,
		QuotesAnalyzed:     stage.QuotesAnalyzed,
		ComparisonID:       stage.ComparisonID,
		RecommendedQuoteID: stage.RecommendedQuoteID,
		Confidence:         stage.Confidence,
		AutoSelected:       stage.AutoSelected,
		OrderID:            stage.OrderID,
		FailedSideEffects:  stage.FailedSideEffects,
	}, nil
}

func (o *Orchestrator) processOrder(
	ctx context.Context,
	handler commands.ProcessOrderCommandHandler,
	trigger Trigger,
) (Result, error) {
	command, err := commands.NewProcessOrderCommand(trigger.TenantID(), trigger.EntityID())
	if err != nil {
		return Result{}, err
	}

	stage, err := handler.Handle(ctx, command)
	if err != nil {
		return Result{}, err
	}

	return Result{
		AutomationLevel:   AutomationHigh,
		Noop:              stage.AlreadyProcessed,
		TrackingNumber:    stage.TrackingNumber,
		EstimatedDelivery: stage.EstimatedDelivery,
		FailedSideEffects: stage.FailedSideEffects,
	}, nil
}

func (o *Orchestrator) completeDelivery(
	ctx context.Context,
	handler commands.CompleteDeliveryCommandHandler,
	trigger Trigger,
) (Result, error) {
	verified := true
	if payload, ok := trigger.Payload().(DeliveryNotificationPayload); ok && payload.VerificationOverride != nil {
		verified = *payload.VerificationOverride
	}

	command, err := commands.NewCompleteDeliveryCommandWithVerification(trigger.TenantID(), trigger.EntityID(), verified)
	if err != nil {
		return Result{}, err
	}

	stage, err := handler.Handle(ctx, command)
	if err != nil {
		return Result{}, err
	}

	return Result{
		AutomationLevel:   AutomationHigh,
		Noop:              stage.AlreadyDelivered,
		InvoiceReference:  stage.InvoiceReference,
		InvoiceGenerated:  stage.InvoiceGenerated,
		FailedSideEffects: stage.FailedSideEffects,
	}, nil
}
