package order

import (
	"errors"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when a TransportOrder instance was not
	// created through the NewTransportOrder factory method.
	ErrOrderIsNotConstructed = errors.New("TransportOrder must be created via NewTransportOrder constructor")

	// ErrInvoiceAlreadyGenerated is returned when a second invoice generation is
	// recorded for the same order. The invoice flag is set exactly once.
	ErrInvoiceAlreadyGenerated = errors.New("invoice was already generated for this order")
)

// TransportOrder is the post-selection aggregate: it exists only after exactly
// one quote has been selected for a transport request and carries the agreed
// pricing, tracking, and generated documents through to delivery.
//
// TransportOrder follows these invariants:
//   - Cannot exist without exactly one selected quote (enforced at creation:
//     the selection routine creates the order in the same transaction that
//     selects the quote)
//   - Pricing (final price, customer price, margin) is fixed at creation
//   - Status transitions are monotonic (Confirmed -> Processing -> Delivered)
//   - The invoice-generated flag is set exactly once
//   - The document list is append-only and free of duplicates
type TransportOrder struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	requestID  kernel.UUID
	quoteID    kernel.UUID
	supplierID kernel.UUID

	finalPrice    kernel.Money
	customerPrice kernel.Money
	margin        kernel.Money

	trackingNumber    string
	estimatedDelivery time.Time

	documents        []Document
	invoiceGenerated bool

	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewTransportOrder creates an order in Confirmed status from a selected quote.
//
// Pricing policy is applied here: the customer price is the supplier's price
// plus the configured markup, and the margin is the markup amount. The markup
// is tenant business policy supplied by the caller, not a constant.
//
// Parameters:
//   - id: unique order identifier
//   - tenantID, requestID, quoteID, supplierID: ownership and linkage
//   - finalPrice: the selected quote's price
//   - markupPercent: markup as a fraction, e.g. 0.10 for 10%
//   - createdAt: creation time from the injected clock
func NewTransportOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	requestID kernel.UUID,
	quoteID kernel.UUID,
	supplierID kernel.UUID,
	finalPrice kernel.Money,
	markupPercent float64,
	createdAt time.Time,
) (*TransportOrder, error) {
	o := &TransportOrder{
		status:        Confirmed,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setIDs(id, tenantID, requestID, quoteID, supplierID),
		o.setPricing(finalPrice, markupPercent),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreTransportOrder reconstructs an order from persistence, including its
// status, tracking, documents, and invoice flag. Used only by repository
// implementations.
func RestoreTransportOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	requestID kernel.UUID,
	quoteID kernel.UUID,
	supplierID kernel.UUID,
	finalPrice kernel.Money,
	customerPrice kernel.Money,
	margin kernel.Money,
	trackingNumber string,
	estimatedDelivery time.Time,
	documents []Document,
	invoiceGenerated bool,
	status Status,
	createdAt time.Time,
) (*TransportOrder, error) {
	o := &TransportOrder{
		trackingNumber:    trackingNumber,
		estimatedDelivery: estimatedDelivery,
		invoiceGenerated:  invoiceGenerated,
		createdAt:         createdAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setIDs(id, tenantID, requestID, quoteID, supplierID),
		finalPrice.Validate(),
		customerPrice.Validate(),
		margin.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, doc := range documents {
		if err := doc.Validate(); err != nil {
			return nil, err
		}
	}

	o.finalPrice = finalPrice
	o.customerPrice = customerPrice
	o.margin = margin
	o.documents = make([]Document, len(documents))
	copy(o.documents, documents)
	o.status = status
	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *TransportOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *TransportOrder) IsEqual(other *TransportOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *TransportOrder) ID() kernel.UUID {
	return o.id
}

// TenantID returns the owning tenant's identifier.
func (o *TransportOrder) TenantID() kernel.UUID {
	return o.tenantID
}

// RequestID returns the underlying transport request's identifier.
func (o *TransportOrder) RequestID() kernel.UUID {
	return o.requestID
}

// QuoteID returns the selected quote's identifier.
func (o *TransportOrder) QuoteID() kernel.UUID {
	return o.quoteID
}

// SupplierID returns the winning supplier's identifier.
func (o *TransportOrder) SupplierID() kernel.UUID {
	return o.supplierID
}

// FinalPrice returns the supplier's agreed price.
func (o *TransportOrder) FinalPrice() kernel.Money {
	return o.finalPrice
}

// CustomerPrice returns the price charged to the customer (final price plus markup).
func (o *TransportOrder) CustomerPrice() kernel.Money {
	return o.customerPrice
}

// Margin returns the markup amount retained.
func (o *TransportOrder) Margin() kernel.Money {
	return o.margin
}

// TrackingNumber returns the allocated tracking identifier.
// Empty until the processing stage has run.
func (o *TransportOrder) TrackingNumber() string {
	return o.trackingNumber
}

// EstimatedDelivery returns the predicted delivery timestamp.
// Zero until the processing stage has run.
func (o *TransportOrder) EstimatedDelivery() time.Time {
	return o.estimatedDelivery
}

// Documents returns a copy of the attached document list.
func (o *TransportOrder) Documents() []Document {
	docs := make([]Document, len(o.documents))
	copy(docs, o.documents)
	return docs
}

// IsInvoiceGenerated reports whether the invoice has been generated.
func (o *TransportOrder) IsInvoiceGenerated() bool {
	return o.invoiceGenerated
}

// Status returns the current lifecycle status.
func (o *TransportOrder) Status() Status {
	return o.status
}

// CreatedAt returns the order creation time.
func (o *TransportOrder) CreatedAt() time.Time {
	return o.createdAt
}

// StartProcessing records tracking allocation and the delivery estimate and
// moves the order to Processing. Only valid from Confirmed.
func (o *TransportOrder) StartProcessing(trackingNumber string, estimatedDelivery time.Time) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	newStatus, err := o.status.StartProcessing()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.trackingNumber = trackingNumber
	o.estimatedDelivery = estimatedDelivery
	return nil
}

// CompleteDelivery moves the order to Delivered. Only valid from Processing.
func (o *TransportOrder) CompleteDelivery() error {
	newStatus, err := o.status.CompleteDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AttachDocument appends a document reference to the order. Previously
// attached documents are always preserved; attaching a document with a
// reference that is already present is a no-op, so retried stages never
// produce duplicate entries.
func (o *TransportOrder) AttachDocument(doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	for _, existing := range o.documents {
		if existing.Kind == doc.Kind && existing.Reference == doc.Reference {
			return nil
		}
	}

	o.documents = append(o.documents, doc)
	return nil
}

// MarkInvoiceGenerated sets the invoice flag. The flag is set exactly once;
// a second call returns ErrInvoiceAlreadyGenerated so duplicate billing is
// impossible even under retried delivery stages.
func (o *TransportOrder) MarkInvoiceGenerated() error {
	if o.invoiceGenerated {
		return ErrInvoiceAlreadyGenerated
	}

	o.invoiceGenerated = true
	return nil
}

func (o *TransportOrder) setIDs(id, tenantID, requestID, quoteID, supplierID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		requestID.Validate(),
		quoteID.Validate(),
		supplierID.Validate(),
	); err != nil {
		return err
	}

	o.id = id
	o.tenantID = tenantID
	o.requestID = requestID
	o.quoteID = quoteID
	o.supplierID = supplierID
	return nil
}

func (o *TransportOrder) setPricing(finalPrice kernel.Money, markupPercent float64) error {
	if err := finalPrice.Validate(); err != nil {
		return err
	}

	if markupPercent < 0 {
		return errs.NewValueIsOutOfRangeError("markup percent", markupPercent, 0, "unbounded")
	}

	customerPrice, err := finalPrice.MultiplyBy(1 + markupPercent)
	if err != nil {
		return err
	}

	margin, err := finalPrice.MultiplyBy(markupPercent)
	if err != nil {
		return err
	}

	o.finalPrice = finalPrice
	o.customerPrice = customerPrice
	o.margin = margin
	return nil
}
