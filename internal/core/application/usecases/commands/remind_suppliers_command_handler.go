package commands

import (
	"context"
	"fmt"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/ports"
)

// RemindSuppliersResult reports the outcome of one reminder run.
type RemindSuppliersResult struct {
	// Skipped reports that the tender was not due for a reminder: it is
	// closed, the reminder time has not arrived, or the reminder was already
	// sent.
	Skipped bool

	// RemindersSent is how many non-responding suppliers were notified.
	RemindersSent int

	// FailedSideEffects lists reminder notifications that could not be
	// delivered. The reminder is still marked sent; a tender reminds at most
	// once.
	FailedSideEffects []string
}

// RemindSuppliersCommandHandler sends the one-time bid reminder to invited
// suppliers that have not submitted a quote yet. The reminded flag flips
// inside the same transaction that holds the request lock, so concurrent runs
// never double-send.
type RemindSuppliersCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
	policy     WorkflowPolicy
}

// NewRemindSuppliersCommandHandler creates a handler for tender reminders.
func NewRemindSuppliersCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	policy WorkflowPolicy,
) RemindSuppliersCommandHandler {
	return RemindSuppliersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		policy:     policy,
	}
}

// Handle processes the reminder command.
func (h RemindSuppliersCommandHandler) Handle(ctx context.Context, command RemindSuppliersCommand) (RemindSuppliersResult, error) {
	if err := command.Validate(); err != nil {
		return RemindSuppliersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RemindSuppliersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenderRepo := uow.TenderRepository()

	t, err := tenderRepo.Get(ctx, command.TenantID(), command.TenderID())
	if err != nil {
		return RemindSuppliersResult{}, err
	}

	if err = uow.LockRequest(ctx, command.TenantID(), t.RequestID()); err != nil {
		return RemindSuppliersResult{}, err
	}

	// Re-read under the lock; a concurrent run may have reminded or closed
	// the tender before we acquired it.
	t, err = tenderRepo.Get(ctx, command.TenantID(), command.TenderID())
	if err != nil {
		return RemindSuppliersResult{}, err
	}

	if !t.ShouldRemind(h.clock.Now()) {
		return RemindSuppliersResult{Skipped: true}, nil
	}

	pending, err := h.pendingSuppliers(ctx, uow, t.TenantID(), t.RequestID(), t.InvitedSuppliers())
	if err != nil {
		return RemindSuppliersResult{}, err
	}

	if err = t.MarkReminded(); err != nil {
		return RemindSuppliersResult{}, err
	}

	if err = tenderRepo.Update(ctx, t); err != nil {
		return RemindSuppliersResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RemindSuppliersResult{}, err
	}

	effects := newSideEffectRecorder(h.policy.SideEffectTimeout)
	payload := map[string]any{
		"tender_id": t.ID().String(),
		"deadline":  t.Deadline(),
	}

	for _, supplierID := range pending {
		audience := ports.Audience{Kind: ports.AudienceSupplier, RecipientID: supplierID.String()}
		effects.Run(ctx, fmt.Sprintf("remind supplier %s", supplierID), func(ctx context.Context) error {
			_, notifyErr := h.notifier.Notify(ctx, audience, ports.TemplateTenderReminder, payload)
			return notifyErr
		})
	}

	return RemindSuppliersResult{
		RemindersSent:     len(pending),
		FailedSideEffects: effects.Failed(),
	}, nil
}

// pendingSuppliers returns the invited suppliers that have not submitted any
// quote for the request yet.
func (h RemindSuppliersCommandHandler) pendingSuppliers(
	ctx context.Context,
	uow UoW,
	tenantID kernel.UUID,
	requestID kernel.UUID,
	invited []kernel.UUID,
) ([]kernel.UUID, error) {
	quotes, err := uow.QuoteRepository().GetByRequest(ctx, tenantID, requestID)
	if err != nil {
		return nil, err
	}

	responded := make(map[kernel.UUID]bool, len(quotes))
	for _, q := range quotes {
		responded[q.SupplierID()] = true
	}

	pending := make([]kernel.UUID, 0, len(invited))
	for _, supplierID := range invited {
		if !responded[supplierID] {
			pending = append(pending, supplierID)
		}
	}

	return pending, nil
}
