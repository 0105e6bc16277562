package commands

import (
	"context"
	"strings"
	"time"

	"freightflow/internal/core/domain/model/order"
	"freightflow/internal/core/ports"
)

// ProcessOrderResult reports the outcome of the order processing stage.
type ProcessOrderResult struct {
	// TrackingNumber is the allocated shipment tracking identifier.
	TrackingNumber string

	// EstimatedDelivery is the predicted delivery timestamp, derived from the
	// original request's delivery date.
	EstimatedDelivery time.Time

	// PredictionRefreshAt is when the delivery estimate should be
	// re-predicted. The stage computes the value; scheduling the refresh is
	// the caller's responsibility.
	PredictionRefreshAt time.Time

	// AlreadyProcessed reports that the order was past Confirmed status and
	// the stage was a no-op.
	AlreadyProcessed bool

	// FailedSideEffects lists document generations or notifications that
	// failed. The status transition is committed regardless.
	FailedSideEffects []string
}

// ProcessOrderCommandHandler orchestrates the order processing stage: it
// attaches the generated order confirmation, allocates a tracking number
// derived from the order identifier, records the delivery estimate from the
// request's delivery date, and moves the order to Processing.
//
// Re-invoking the stage for an order already in or past Processing is a no-op
// reporting the existing tracking data.
type ProcessOrderCommandHandler struct {
	uowFactory UoWFactory
	documents  ports.DocumentGenerator
	notifier   ports.Notifier
	clock      ports.Clock
	policy     WorkflowPolicy
}

// NewProcessOrderCommandHandler creates a handler for order processing.
func NewProcessOrderCommandHandler(
	uowFactory UoWFactory,
	documents ports.DocumentGenerator,
	notifier ports.Notifier,
	clock ports.Clock,
	policy WorkflowPolicy,
) ProcessOrderCommandHandler {
	return ProcessOrderCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
		notifier:   notifier,
		clock:      clock,
		policy:     policy,
	}
}

// Handle processes the order processing command.
func (h ProcessOrderCommandHandler) Handle(ctx context.Context, command ProcessOrderCommand) (ProcessOrderResult, error) {
	if err := command.Validate(); err != nil {
		return ProcessOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ProcessOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	processedOrder, err := orderRepo.Get(ctx, command.TenantID(), command.OrderID())
	if err != nil {
		return ProcessOrderResult{}, err
	}

	if err = uow.LockRequest(ctx, command.TenantID(), processedOrder.RequestID()); err != nil {
		return ProcessOrderResult{}, err
	}

	// Re-read under the lock: another stage run may have advanced the order
	// between the first read and lock acquisition.
	processedOrder, err = orderRepo.Get(ctx, command.TenantID(), command.OrderID())
	if err != nil {
		return ProcessOrderResult{}, err
	}

	if processedOrder.Status() != order.Confirmed {
		return ProcessOrderResult{
			TrackingNumber:    processedOrder.TrackingNumber(),
			EstimatedDelivery: processedOrder.EstimatedDelivery(),
			AlreadyProcessed:  true,
		}, nil
	}

	req, err := uow.RequestRepository().Get(ctx, command.TenantID(), processedOrder.RequestID())
	if err != nil {
		return ProcessOrderResult{}, err
	}

	now := h.clock.Now()
	estimatedDelivery := req.Route().DeliveryDate

	effects := newSideEffectRecorder(h.policy.SideEffectTimeout)

	effects.Run(ctx, "generate order confirmation", func(ctx context.Context) error {
		reference, genErr := h.documents.Generate(ctx, order.DocumentKindOrderConfirmation, processedOrder)
		if genErr != nil {
			return genErr
		}

		return processedOrder.AttachDocument(order.Document{
			Kind:      order.DocumentKindOrderConfirmation,
			Reference: string(reference),
			IssuedAt:  now,
		})
	})

	tracking := trackingNumber(processedOrder)
	if err = processedOrder.StartProcessing(tracking, estimatedDelivery); err != nil {
		return ProcessOrderResult{}, err
	}

	if err = orderRepo.Update(ctx, processedOrder); err != nil {
		return ProcessOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ProcessOrderResult{}, err
	}

	customer := ports.Audience{Kind: ports.AudienceCustomer, RecipientID: command.TenantID().String()}
	effects.Run(ctx, "notify customer of processing", func(ctx context.Context) error {
		_, notifyErr := h.notifier.Notify(ctx, customer, ports.TemplateOrderProcessing, map[string]any{
			"order_id":           command.OrderID().String(),
			"tracking_number":    tracking,
			"estimated_delivery": estimatedDelivery,
		})
		return notifyErr
	})

	return ProcessOrderResult{
		TrackingNumber:      tracking,
		EstimatedDelivery:   estimatedDelivery,
		PredictionRefreshAt: predictionRefreshAt(now, estimatedDelivery),
		FailedSideEffects:   effects.Failed(),
	}, nil
}

// trackingNumber derives the tracking identifier from the order ID so that a
// retried processing stage always allocates the same number.
func trackingNumber(o *order.TransportOrder) string {
	return "TRK-" + strings.ToUpper(o.ID().String()[:8])
}

// predictionRefreshAt places the delivery estimate refresh halfway between
// now and the estimated delivery. A past estimate refreshes immediately.
func predictionRefreshAt(now time.Time, estimatedDelivery time.Time) time.Time {
	if !estimatedDelivery.After(now) {
		return now
	}
	return now.Add(estimatedDelivery.Sub(now) / 2)
}
