package commands

import (
	"context"
	"errors"
	"fmt"

	"freightflow/internal/core/domain/model/comparison"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/quote"
	"freightflow/internal/core/domain/model/tender"
	"freightflow/internal/core/domain/services"
	"freightflow/internal/core/ports"
	"freightflow/internal/pkg/errs"
)

// EvaluateQuotesResult reports the outcome of the quote evaluation stage.
type EvaluateQuotesResult struct {
	// QuotesAnalyzed is how many submitted quotes entered the comparison.
	QuotesAnalyzed int

	// ComparisonID identifies the persisted comparison record, if one was created.
	ComparisonID *kernel.UUID

	// RecommendedQuoteID is the evaluator's recommended winner, if any.
	RecommendedQuoteID *kernel.UUID

	// Confidence is how decisively the winner beat the runner-up, in [0,1].
	Confidence float64

	// AutoSelected reports that the recommendation cleared the decision gate
	// and an order was created.
	AutoSelected bool

	// OrderID identifies the created order when AutoSelected is true, or the
	// pre-existing order when the evaluation found a selection already made.
	OrderID *kernel.UUID

	// Waiting reports that no quotes have been submitted yet. Nothing was
	// evaluated or persisted; the caller retries after more quotes arrive.
	Waiting bool

	// AlreadyDecided reports that a quote was already selected for the
	// request and the stage was a no-op.
	AlreadyDecided bool

	// FailedSideEffects lists notifications that could not be delivered.
	FailedSideEffects []string
}

// EvaluateQuotesCommandHandler orchestrates the quote evaluation stage: it
// scores the tender's submitted quotes against its frozen criteria weights,
// persists an immutable comparison record, annotates the request with the
// recommendation, and finalizes the winner automatically when the confidence
// clears the decision gate within the tender's evaluation window.
//
// Zero submitted quotes is a waiting outcome, not an error: the stage reports
// it and leaves all state untouched. A request whose quote was already
// selected yields an idempotent no-op reporting the existing order.
type EvaluateQuotesCommandHandler struct {
	uowFactory UoWFactory
	evaluator  services.QuoteEvaluator
	gate       services.DecisionGate
	notifier   ports.Notifier
	clock      ports.Clock
	policy     WorkflowPolicy
}

// NewEvaluateQuotesCommandHandler creates a handler for quote evaluation.
func NewEvaluateQuotesCommandHandler(
	uowFactory UoWFactory,
	evaluator services.QuoteEvaluator,
	gate services.DecisionGate,
	notifier ports.Notifier,
	clock ports.Clock,
	policy WorkflowPolicy,
) EvaluateQuotesCommandHandler {
	return EvaluateQuotesCommandHandler{
		uowFactory: uowFactory,
		evaluator:  evaluator,
		gate:       gate,
		notifier:   notifier,
		clock:      clock,
		policy:     policy,
	}
}

// Handle processes the quote evaluation command.
func (h EvaluateQuotesCommandHandler) Handle(ctx context.Context, command EvaluateQuotesCommand) (EvaluateQuotesResult, error) {
	if err := command.Validate(); err != nil {
		return EvaluateQuotesResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return EvaluateQuotesResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenderRepo := uow.TenderRepository()

	evaluatedTender, err := tenderRepo.Get(ctx, command.TenantID(), command.TenderID())
	if err != nil {
		return EvaluateQuotesResult{}, err
	}

	if err = uow.LockRequest(ctx, command.TenantID(), evaluatedTender.RequestID()); err != nil {
		return EvaluateQuotesResult{}, err
	}

	quoteRepo := uow.QuoteRepository()

	allQuotes, err := quoteRepo.GetByRequest(ctx, command.TenantID(), evaluatedTender.RequestID())
	if err != nil {
		return EvaluateQuotesResult{}, err
	}

	for _, q := range allQuotes {
		if q.Status() == quote.Selected {
			return h.reportExistingSelection(ctx, uow, command.TenantID(), evaluatedTender.RequestID(), q)
		}
	}

	submitted, err := quoteRepo.GetSubmittedByTender(ctx, command.TenantID(), command.TenderID())
	if err != nil {
		return EvaluateQuotesResult{}, err
	}

	if len(submitted) == 0 {
		return EvaluateQuotesResult{Waiting: true}, nil
	}

	reliability, err := h.reliabilityBySupplier(ctx, uow.SupplierRepository(), command.TenantID(), submitted)
	if err != nil {
		return EvaluateQuotesResult{}, err
	}

	evaluation, err := h.evaluator.Evaluate(submitted, reliability, evaluatedTender.Weights())
	if err != nil {
		return EvaluateQuotesResult{}, err
	}

	now := h.clock.Now()

	record, err := comparison.NewQuotationComparison(
		kernel.NewUUID(),
		command.TenantID(),
		evaluatedTender.ID(),
		evaluatedTender.RequestID(),
		evaluatedTender.Weights(),
		evaluation.Matrix,
		evaluation.Winner.ID(),
		evaluation.Recommendation,
		evaluation.Reasoning,
		evaluation.Confidence,
		now,
	)
	if err != nil {
		return EvaluateQuotesResult{}, err
	}

	if err = uow.ComparisonRepository().Add(ctx, record); err != nil {
		return EvaluateQuotesResult{}, err
	}

	requestRepo := uow.RequestRepository()

	req, err := requestRepo.Get(ctx, command.TenantID(), evaluatedTender.RequestID())
	if err != nil {
		return EvaluateQuotesResult{}, err
	}

	if err = req.AnnotateRecommendation(evaluation.Winner.ID(), evaluation.Recommendation); err != nil {
		return EvaluateQuotesResult{}, err
	}

	// Auto-selection requires both a confident recommendation and an
	// evaluation run inside the tender's window; past it, selection is left
	// to manual review.
	autoSelect := h.gate.ShouldAutoSelect(evaluation.Confidence) && !now.After(evaluatedTender.EvaluationUntil())

	result := EvaluateQuotesResult{
		QuotesAnalyzed: len(submitted),
		Confidence:     evaluation.Confidence,
	}

	comparisonID := record.ID()
	winnerID := evaluation.Winner.ID()
	result.ComparisonID = &comparisonID
	result.RecommendedQuoteID = &winnerID

	var createdOrderID kernel.UUID
	if autoSelect {
		createdOrderID, err = h.selectWinner(ctx, uow, evaluatedTender, evaluation, submitted)
		if err != nil {
			return EvaluateQuotesResult{}, err
		}

		result.AutoSelected = true
		result.OrderID = &createdOrderID
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return EvaluateQuotesResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return EvaluateQuotesResult{}, err
	}

	if autoSelect {
		effects := newSideEffectRecorder(h.policy.SideEffectTimeout)
		h.notifySelection(ctx, effects, createdOrderID, evaluation.Winner, submitted)
		result.FailedSideEffects = effects.Failed()
	}

	return result, nil
}

// reportExistingSelection handles the idempotent re-invocation path: the
// request already has a selected quote, so the stage reports the existing
// decision and its order without mutating anything.
func (h EvaluateQuotesCommandHandler) reportExistingSelection(
	ctx context.Context,
	uow UoW,
	tenantID kernel.UUID,
	requestID kernel.UUID,
	selected *quote.TransportQuote,
) (EvaluateQuotesResult, error) {
	result := EvaluateQuotesResult{
		AutoSelected:   true,
		AlreadyDecided: true,
	}

	selectedID := selected.ID()
	result.RecommendedQuoteID = &selectedID

	existingOrder, err := uow.OrderRepository().GetByRequest(ctx, tenantID, requestID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return EvaluateQuotesResult{}, err
	}
	if existingOrder != nil {
		orderID := existingOrder.ID()
		result.OrderID = &orderID
	}

	prior, err := uow.ComparisonRepository().GetLatestByRequest(ctx, tenantID, requestID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return EvaluateQuotesResult{}, err
	}
	if prior != nil {
		comparisonID := prior.ID()
		result.ComparisonID = &comparisonID
		result.Confidence = prior.Confidence()
		result.QuotesAnalyzed = len(prior.Matrix())
	}

	return result, nil
}

// reliabilityBySupplier loads the reliability score of each quoting supplier.
// A supplier missing from the repository scores 0 on the reliability
// component instead of failing the evaluation.
func (h EvaluateQuotesCommandHandler) reliabilityBySupplier(
	ctx context.Context,
	supplierRepo ports.SupplierRepository,
	tenantID kernel.UUID,
	quotes []*quote.TransportQuote,
) (map[kernel.UUID]float64, error) {
	reliability := make(map[kernel.UUID]float64, len(quotes))
	for _, q := range quotes {
		if _, seen := reliability[q.SupplierID()]; seen {
			continue
		}

		s, err := supplierRepo.Get(ctx, tenantID, q.SupplierID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			reliability[q.SupplierID()] = 0
			continue
		}
		if err != nil {
			return nil, err
		}

		reliability[q.SupplierID()] = s.Profile().ReliabilityScore
	}

	return reliability, nil
}

// selectWinner finalizes the recommended quote inside the current
// transaction: winner selected, siblings rejected, order created, tender
// closed.
func (h EvaluateQuotesCommandHandler) selectWinner(
	ctx context.Context,
	uow UoW,
	evaluatedTender *tender.TenderRequest,
	evaluation services.Evaluation,
	submitted []*quote.TransportQuote,
) (kernel.UUID, error) {
	newOrder, err := h.gate.SelectWinner(kernel.NewUUID(), evaluation.Winner, submitted, h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return kernel.UUID{}, err
	}

	quoteRepo := uow.QuoteRepository()
	for _, q := range submitted {
		if err = quoteRepo.Update(ctx, q); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = evaluatedTender.Close(); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.TenderRepository().Update(ctx, evaluatedTender); err != nil {
		return kernel.UUID{}, err
	}

	return newOrder.ID(), nil
}

func (h EvaluateQuotesCommandHandler) notifySelection(
	ctx context.Context,
	effects *sideEffectRecorder,
	orderID kernel.UUID,
	winner *quote.TransportQuote,
	submitted []*quote.TransportQuote,
) {
	customer := ports.Audience{Kind: ports.AudienceCustomer, RecipientID: winner.TenantID().String()}
	effects.Run(ctx, "confirm order to customer", func(ctx context.Context) error {
		_, err := h.notifier.Notify(ctx, customer, ports.TemplateOrderConfirmed, map[string]any{
			"order_id":    orderID.String(),
			"quote_id":    winner.ID().String(),
			"supplier_id": winner.SupplierID().String(),
			"price":       winner.Price().String(),
		})
		return err
	})

	for _, q := range submitted {
		if q.IsEqual(winner) {
			continue
		}

		audience := ports.Audience{Kind: ports.AudienceSupplier, RecipientID: q.SupplierID().String()}
		quoteID := q.ID()
		effects.Run(ctx, fmt.Sprintf("notify rejected supplier %s", q.SupplierID()), func(ctx context.Context) error {
			_, err := h.notifier.Notify(ctx, audience, ports.TemplateQuoteRejected, map[string]any{
				"quote_id": quoteID.String(),
			})
			return err
		})
	}
}
