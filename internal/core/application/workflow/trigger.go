// Package workflow exposes the single entry point of the procurement
// pipeline: triggering a workflow stage for an entity. It dispatches typed
// triggers to the stage command handlers and folds their results into one
// uniform report.
package workflow

import (
	"errors"
	"fmt"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/errs"
	"freightflow/internal/pkg/guard"
)

// ErrUnknownWorkflowType is returned for a trigger naming a workflow type the
// dispatcher does not know.
var ErrUnknownWorkflowType = errors.New("unknown workflow type")

var ErrTriggerIsNotConstructed = errors.New(
	"Trigger must be created via NewTrigger constructor",
)

// Type identifies a workflow stage of the procurement pipeline.
type Type string

const (
	// TypeTransportRequest issues a tender for a transport request.
	TypeTransportRequest Type = "TRANSPORT_REQUEST"

	// TypeQuoteCollection evaluates the quotes submitted against a tender.
	TypeQuoteCollection Type = "QUOTE_COLLECTION"

	// TypeOrderProcessing processes a confirmed order.
	TypeOrderProcessing Type = "ORDER_PROCESSING"

	// TypeDeliveryNotification completes an order's delivery.
	TypeDeliveryNotification Type = "DELIVERY_NOTIFICATION"
)

// Validate checks the type is one of the four known workflow stages.
func (t Type) Validate() error {
	switch t {
	case TypeTransportRequest, TypeQuoteCollection, TypeOrderProcessing, TypeDeliveryNotification:
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownWorkflowType, string(t))
}

// Payload carries stage-specific trigger data. Each workflow type has its own
// payload shape; a trigger is rejected when the payload does not match its
// type.
type Payload interface {
	workflowType() Type
}

// TransportRequestPayload triggers tender issuance. The entity is the
// transport request; no extra data is needed.
type TransportRequestPayload struct{}

func (TransportRequestPayload) workflowType() Type { return TypeTransportRequest }

// QuoteCollectionPayload triggers quote evaluation. The entity is the tender.
type QuoteCollectionPayload struct{}

func (QuoteCollectionPayload) workflowType() Type { return TypeQuoteCollection }

// OrderProcessingPayload triggers order processing. The entity is the order.
type OrderProcessingPayload struct{}

func (OrderProcessingPayload) workflowType() Type { return TypeOrderProcessing }

// DeliveryNotificationPayload triggers delivery completion. The entity is the
// order. Verification defaults to automatic; VerificationOverride forces a
// specific outcome when set.
type DeliveryNotificationPayload struct {
	VerificationOverride *bool
}

func (DeliveryNotificationPayload) workflowType() Type { return TypeDeliveryNotification }

func defaultPayload(t Type) Payload {
	switch t {
	case TypeTransportRequest:
		return TransportRequestPayload{}
	case TypeQuoteCollection:
		return QuoteCollectionPayload{}
	case TypeOrderProcessing:
		return OrderProcessingPayload{}
	case TypeDeliveryNotification:
		return DeliveryNotificationPayload{}
	}
	return nil
}

// Trigger is one request to advance the pipeline: a workflow type, the entity
// it applies to, and the tenant scope. The entity a trigger names depends on
// its type: the transport request for TRANSPORT_REQUEST, the tender for
// QUOTE_COLLECTION, and the order for the two order stages.
type Trigger struct {
	tenantID     kernel.UUID
	workflowType Type
	entityID     kernel.UUID
	payload      Payload

	guard guard.ConstructorGuard
}

// NewTrigger creates a trigger with the default payload for its type.
func NewTrigger(tenantID kernel.UUID, workflowType Type, entityID kernel.UUID) (Trigger, error) {
	return NewTriggerWithPayload(tenantID, workflowType, entityID, defaultPayload(workflowType))
}

// NewTriggerWithPayload creates a trigger carrying stage-specific data.
// The payload's type must match the workflow type.
func NewTriggerWithPayload(tenantID kernel.UUID, workflowType Type, entityID kernel.UUID, payload Payload) (Trigger, error) {
	if err := workflowType.Validate(); err != nil {
		return Trigger{}, err
	}

	if err := tenantID.Validate(); err != nil {
		return Trigger{}, err
	}

	if err := entityID.Validate(); err != nil {
		return Trigger{}, err
	}

	if payload == nil || payload.workflowType() != workflowType {
		return Trigger{}, errs.NewValueIsInvalidErrorWithCause("trigger payload",
			fmt.Errorf("payload does not match workflow type %s", workflowType))
	}

	return Trigger{
		tenantID:     tenantID,
		workflowType: workflowType,
		entityID:     entityID,
		payload:      payload,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scoping this trigger.
func (t *Trigger) TenantID() kernel.UUID {
	return t.tenantID
}

// WorkflowType returns the triggered workflow stage.
func (t *Trigger) WorkflowType() Type {
	return t.workflowType
}

// EntityID returns the entity the stage applies to.
func (t *Trigger) EntityID() kernel.UUID {
	return t.entityID
}

// Payload returns the stage-specific trigger data.
func (t *Trigger) Payload() Payload {
	return t.payload
}

// Validate ensures the trigger was created through a constructor.
func (t *Trigger) Validate() error {
	return t.guard.Validate(
		ErrTriggerIsNotConstructed,
	)
}
