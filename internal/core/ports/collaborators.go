package ports

import (
	"context"
	"time"

	"freightflow/internal/core/domain/model/order"
)

// AudienceKind distinguishes who a notification is addressed to.
type AudienceKind string

const (
	AudienceSupplier AudienceKind = "SUPPLIER"
	AudienceCustomer AudienceKind = "CUSTOMER"
)

// Audience identifies the recipient of a notification.
type Audience struct {
	Kind AudienceKind

	// RecipientID is the supplier or customer identifier as known to the
	// surrounding system.
	RecipientID string
}

// Notification templates used by the pipeline. The notifier resolves them to
// concrete emails/webhooks; the pipeline only names them.
const (
	TemplateTenderInvitation     = "tender_invitation"
	TemplateTenderReminder       = "tender_reminder"
	TemplateOrderConfirmed       = "order_confirmed"
	TemplateOrderProcessing      = "order_processing"
	TemplateDeliveryCompleted    = "delivery_completed"
	TemplateQuoteRejected        = "quote_rejected"
)

// DeliveryReceipt is the notifier's acknowledgment of an accepted notification.
type DeliveryReceipt struct {
	MessageID string
	SentAt    time.Time
}

// Notifier delivers notifications to suppliers and customers. Implemented by
// the surrounding system (email, webhooks); the pipeline treats delivery as a
// bounded, best-effort side effect. A failed send never blocks a stage's
// state transition.
type Notifier interface {
	Notify(ctx context.Context, audience Audience, template string, payload map[string]any) (DeliveryReceipt, error)
}

// DocumentReference is the external identifier of a generated document.
type DocumentReference string

// DocumentGenerator produces order paperwork (confirmations, invoices).
// Implemented by the surrounding system; the pipeline stores only the
// returned reference on the order.
type DocumentGenerator interface {
	Generate(ctx context.Context, kind order.DocumentKind, o *order.TransportOrder) (DocumentReference, error)
}

// Clock is the injectable time source. All deadline, reminder, and
// idempotency computations go through it so they are testable without
// wall-clock dependence.
type Clock interface {
	Now() time.Time
}
