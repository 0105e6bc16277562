package commands

import (
	"context"
	"errors"
	"fmt"

	"freightflow/internal/core/domain/model/order"
	"freightflow/internal/core/ports"
	"freightflow/internal/pkg/errs"
)

// ErrDeliveryNotVerified is returned when the delivery completion stage is
// triggered with a failed verification. The order stays in Processing until a
// verified completion arrives.
var ErrDeliveryNotVerified = errors.New("delivery verification failed")

// CompleteDeliveryResult reports the outcome of the delivery completion stage.
type CompleteDeliveryResult struct {
	// DeliveryConfirmationRef is the generated delivery confirmation's
	// document reference, if generation succeeded.
	DeliveryConfirmationRef string

	// InvoiceReference is the generated invoice's document reference. Empty
	// when invoice generation failed; a later re-trigger retries it.
	InvoiceReference string

	// InvoiceGenerated reports whether the invoice has been generated, on
	// this run or a previous one. The invoice is generated exactly once.
	InvoiceGenerated bool

	// AlreadyDelivered reports that the order was already Delivered and the
	// stage at most retried a missing invoice.
	AlreadyDelivered bool

	// FailedSideEffects lists document generations or notifications that
	// failed. The status transition is committed regardless.
	FailedSideEffects []string
}

// CompleteDeliveryCommandHandler orchestrates the final pipeline stage: it
// verifies the delivery, attaches the delivery confirmation, generates the
// invoice exactly once, moves the order to Delivered, and propagates
// completion to the transport request.
//
// The stage is idempotent: re-invoking it for a delivered order re-attempts
// only a still-missing invoice and never duplicates documents or the invoice.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	documents  ports.DocumentGenerator
	notifier   ports.Notifier
	clock      ports.Clock
	policy     WorkflowPolicy
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	documents ports.DocumentGenerator,
	notifier ports.Notifier,
	clock ports.Clock,
	policy WorkflowPolicy,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
		notifier:   notifier,
		clock:      clock,
		policy:     policy,
	}
}

// Handle processes the delivery completion command.
//
// Returns ErrDeliveryNotVerified when the command carries a failed
// verification; no state changes in that case.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) (CompleteDeliveryResult, error) {
	if err := command.Validate(); err != nil {
		return CompleteDeliveryResult{}, err
	}

	if !command.IsVerified() {
		return CompleteDeliveryResult{}, ErrDeliveryNotVerified
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	deliveredOrder, err := orderRepo.Get(ctx, command.TenantID(), command.OrderID())
	if err != nil {
		return CompleteDeliveryResult{}, err
	}

	if err = uow.LockRequest(ctx, command.TenantID(), deliveredOrder.RequestID()); err != nil {
		return CompleteDeliveryResult{}, err
	}

	// Re-read under the lock so a concurrent completion run is observed.
	deliveredOrder, err = orderRepo.Get(ctx, command.TenantID(), command.OrderID())
	if err != nil {
		return CompleteDeliveryResult{}, err
	}

	switch deliveredOrder.Status() {
	case order.Delivered:
		return h.retryMissingInvoice(ctx, uow, deliveredOrder)
	case order.Confirmed:
		return CompleteDeliveryResult{}, errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("order %s has not been processed yet", deliveredOrder.ID()))
	}

	effects := newSideEffectRecorder(h.policy.SideEffectTimeout)
	now := h.clock.Now()

	result := CompleteDeliveryResult{}

	effects.Run(ctx, "generate delivery confirmation", func(ctx context.Context) error {
		reference, genErr := h.documents.Generate(ctx, order.DocumentKindDeliveryConfirmation, deliveredOrder)
		if genErr != nil {
			return genErr
		}

		if attachErr := deliveredOrder.AttachDocument(order.Document{
			Kind:      order.DocumentKindDeliveryConfirmation,
			Reference: string(reference),
			IssuedAt:  now,
		}); attachErr != nil {
			return attachErr
		}

		result.DeliveryConfirmationRef = string(reference)
		return nil
	})

	effects.Run(ctx, "generate invoice", func(ctx context.Context) error {
		reference, genErr := h.generateInvoice(ctx, deliveredOrder)
		if genErr != nil {
			return genErr
		}

		result.InvoiceReference = string(reference)
		result.InvoiceGenerated = true
		return nil
	})

	if err = deliveredOrder.CompleteDelivery(); err != nil {
		return CompleteDeliveryResult{}, err
	}

	requestRepo := uow.RequestRepository()

	req, err := requestRepo.Get(ctx, command.TenantID(), deliveredOrder.RequestID())
	if err != nil {
		return CompleteDeliveryResult{}, err
	}

	if err = req.MarkDelivered(); err != nil {
		return CompleteDeliveryResult{}, err
	}

	if err = orderRepo.Update(ctx, deliveredOrder); err != nil {
		return CompleteDeliveryResult{}, err
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return CompleteDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteDeliveryResult{}, err
	}

	customer := ports.Audience{Kind: ports.AudienceCustomer, RecipientID: command.TenantID().String()}
	effects.Run(ctx, "notify customer of delivery", func(ctx context.Context) error {
		_, notifyErr := h.notifier.Notify(ctx, customer, ports.TemplateDeliveryCompleted, map[string]any{
			"order_id":        command.OrderID().String(),
			"tracking_number": deliveredOrder.TrackingNumber(),
		})
		return notifyErr
	})

	result.FailedSideEffects = effects.Failed()
	return result, nil
}

// retryMissingInvoice handles re-invocation for an already delivered order.
// A missing invoice (a previous run's generation failed) is retried; an
// existing one makes the whole stage a no-op.
func (h CompleteDeliveryCommandHandler) retryMissingInvoice(
	ctx context.Context,
	uow UoW,
	deliveredOrder *order.TransportOrder,
) (CompleteDeliveryResult, error) {
	result := CompleteDeliveryResult{
		AlreadyDelivered:        true,
		InvoiceGenerated:        deliveredOrder.IsInvoiceGenerated(),
		DeliveryConfirmationRef: documentReference(deliveredOrder, order.DocumentKindDeliveryConfirmation),
		InvoiceReference:        documentReference(deliveredOrder, order.DocumentKindInvoice),
	}

	if deliveredOrder.IsInvoiceGenerated() {
		return result, nil
	}

	effects := newSideEffectRecorder(h.policy.SideEffectTimeout)
	effects.Run(ctx, "generate invoice", func(ctx context.Context) error {
		reference, genErr := h.generateInvoice(ctx, deliveredOrder)
		if genErr != nil {
			return genErr
		}

		result.InvoiceReference = string(reference)
		result.InvoiceGenerated = true
		return nil
	})

	if result.InvoiceGenerated {
		if err := uow.OrderRepository().Update(ctx, deliveredOrder); err != nil {
			return CompleteDeliveryResult{}, err
		}

		if err := uow.Commit(ctx); err != nil {
			return CompleteDeliveryResult{}, err
		}
	}

	result.FailedSideEffects = effects.Failed()
	return result, nil
}

// generateInvoice generates the invoice document and records it on the order.
// The invoice flag is marked only after successful generation, so a failed
// generation leaves the flag unset and a later retry possible.
func (h CompleteDeliveryCommandHandler) generateInvoice(
	ctx context.Context,
	deliveredOrder *order.TransportOrder,
) (ports.DocumentReference, error) {
	reference, err := h.documents.Generate(ctx, order.DocumentKindInvoice, deliveredOrder)
	if err != nil {
		return "", err
	}

	if err = deliveredOrder.AttachDocument(order.Document{
		Kind:      order.DocumentKindInvoice,
		Reference: string(reference),
		IssuedAt:  h.clock.Now(),
	}); err != nil {
		return "", err
	}

	if err = deliveredOrder.MarkInvoiceGenerated(); err != nil {
		return "", err
	}

	return reference, nil
}

// documentReference returns the reference of the first attached document of
// the given kind, or empty if none is attached.
func documentReference(o *order.TransportOrder, kind order.DocumentKind) string {
	for _, doc := range o.Documents() {
		if doc.Kind == kind {
			return doc.Reference
		}
	}
	return ""
}
