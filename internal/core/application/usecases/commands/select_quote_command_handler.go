package commands

import (
	"context"
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/quote"
	"freightflow/internal/core/domain/services"
	"freightflow/internal/core/ports"
	"freightflow/internal/pkg/errs"
)

// SelectQuoteResult reports the outcome of a manual quote selection.
type SelectQuoteResult struct {
	// OrderID identifies the created order.
	OrderID kernel.UUID

	// QuotesRejected is how many sibling quotes were rejected.
	QuotesRejected int

	// FailedSideEffects lists notifications that could not be delivered.
	FailedSideEffects []string
}

// SelectQuoteCommandHandler finalizes a manually chosen quote. It shares the
// selection routine with the automated path (services.DecisionGate), so the
// at-most-one-selected invariant holds regardless of which path decides:
// the winner is selected, all sibling quotes are rejected, an order is
// created, and the active tender is closed in one transaction.
type SelectQuoteCommandHandler struct {
	uowFactory UoWFactory
	gate       services.DecisionGate
	notifier   ports.Notifier
	clock      ports.Clock
	policy     WorkflowPolicy
}

// NewSelectQuoteCommandHandler creates a handler for manual quote selection.
func NewSelectQuoteCommandHandler(
	uowFactory UoWFactory,
	gate services.DecisionGate,
	notifier ports.Notifier,
	clock ports.Clock,
	policy WorkflowPolicy,
) SelectQuoteCommandHandler {
	return SelectQuoteCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		notifier:   notifier,
		clock:      clock,
		policy:     policy,
	}
}

// Handle processes the manual selection command.
//
// Returns services.ErrQuoteAlreadySelected if another quote was already
// selected for the request; the conflicting selection is never overwritten.
func (h SelectQuoteCommandHandler) Handle(ctx context.Context, command SelectQuoteCommand) (SelectQuoteResult, error) {
	if err := command.Validate(); err != nil {
		return SelectQuoteResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SelectQuoteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.LockRequest(ctx, command.TenantID(), command.RequestID()); err != nil {
		return SelectQuoteResult{}, err
	}

	quoteRepo := uow.QuoteRepository()

	allQuotes, err := quoteRepo.GetByRequest(ctx, command.TenantID(), command.RequestID())
	if err != nil {
		return SelectQuoteResult{}, err
	}

	var winner *quote.TransportQuote
	siblings := make([]*quote.TransportQuote, 0, len(allQuotes))
	for _, q := range allQuotes {
		if q.ID().IsEqual(command.QuoteID()) {
			winner = q
		}

		// Rejected quotes are terminal losers already; only live quotes take
		// part in the selection routine.
		if q.Status() != quote.Rejected {
			siblings = append(siblings, q)
		}
	}

	if winner == nil {
		return SelectQuoteResult{}, errs.NewObjectNotFoundError("quote", command.QuoteID())
	}

	now := h.clock.Now()

	newOrder, err := h.gate.SelectWinner(kernel.NewUUID(), winner, siblings, now)
	if err != nil {
		return SelectQuoteResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return SelectQuoteResult{}, err
	}

	rejected := 0
	for _, q := range siblings {
		if err = quoteRepo.Update(ctx, q); err != nil {
			return SelectQuoteResult{}, err
		}

		if q.Status() == quote.Rejected {
			rejected++
		}
	}

	if err = h.closeActiveTender(ctx, uow, command.TenantID(), command.RequestID()); err != nil {
		return SelectQuoteResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SelectQuoteResult{}, err
	}

	effects := newSideEffectRecorder(h.policy.SideEffectTimeout)
	customer := ports.Audience{Kind: ports.AudienceCustomer, RecipientID: command.TenantID().String()}
	effects.Run(ctx, "confirm order to customer", func(ctx context.Context) error {
		_, notifyErr := h.notifier.Notify(ctx, customer, ports.TemplateOrderConfirmed, map[string]any{
			"order_id":    newOrder.ID().String(),
			"quote_id":    winner.ID().String(),
			"supplier_id": winner.SupplierID().String(),
			"price":       winner.Price().String(),
		})
		return notifyErr
	})

	return SelectQuoteResult{
		OrderID:           newOrder.ID(),
		QuotesRejected:    rejected,
		FailedSideEffects: effects.Failed(),
	}, nil
}

// closeActiveTender closes the request's active tender if one is still open.
// Manual selection can happen after the tender was already closed by an
// automated evaluation attempt, so a missing active tender is not an error.
func (h SelectQuoteCommandHandler) closeActiveTender(
	ctx context.Context,
	uow UoW,
	tenantID kernel.UUID,
	requestID kernel.UUID,
) error {
	tenderRepo := uow.TenderRepository()

	activeTender, err := tenderRepo.GetActiveByRequest(ctx, tenantID, requestID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = activeTender.Close(); err != nil {
		return err
	}

	return tenderRepo.Update(ctx, activeTender)
}
