package quote

import (
	"errors"
	"fmt"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/errs"
)

var (
	// ErrQuoteIsNotConstructed is returned when a TransportQuote instance was not
	// created through the NewTransportQuote factory method.
	ErrQuoteIsNotConstructed = errors.New("TransportQuote must be created via NewTransportQuote constructor")
)

// TransportQuote is a supplier's priced, timed bid against a tender.
//
// TransportQuote follows these invariants:
//   - Price and transit time are immutable after submission
//   - Status moves Submitted -> Selected or Submitted -> Rejected, both terminal
//   - At most one quote per transport request is ever Selected
type TransportQuote struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	tenderID   kernel.UUID
	requestID  kernel.UUID
	supplierID kernel.UUID

	price        kernel.Money
	transitHours int
	submittedAt  time.Time

	status Status

	isConstructed bool
}

// NewTransportQuote creates a quote in Submitted status.
//
// Parameters:
//   - id: unique quote identifier
//   - tenantID, tenderID, requestID, supplierID: ownership and linkage
//   - price: the bid price (validated Money)
//   - transitHours: promised transit time in hours (must be positive)
//   - submittedAt: submission timestamp, used as the deterministic tie-breaker
//     during evaluation (earlier submissions win ties)
func NewTransportQuote(
	id kernel.UUID,
	tenantID kernel.UUID,
	tenderID kernel.UUID,
	requestID kernel.UUID,
	supplierID kernel.UUID,
	price kernel.Money,
	transitHours int,
	submittedAt time.Time,
) (*TransportQuote, error) {
	q := &TransportQuote{
		submittedAt:   submittedAt,
		status:        Submitted,
		isConstructed: true,
	}

	if err := errors.Join(
		q.setID(id),
		q.setTenantID(tenantID),
		q.setTenderID(tenderID),
		q.setRequestID(requestID),
		q.setSupplierID(supplierID),
		q.setPrice(price),
		q.setTransitHours(transitHours),
	); err != nil {
		return nil, err
	}

	return q, nil
}

// RestoreTransportQuote reconstructs a quote from persistence, including its
// current status. Used only by repository implementations.
func RestoreTransportQuote(
	id kernel.UUID,
	tenantID kernel.UUID,
	tenderID kernel.UUID,
	requestID kernel.UUID,
	supplierID kernel.UUID,
	price kernel.Money,
	transitHours int,
	submittedAt time.Time,
	status Status,
) (*TransportQuote, error) {
	q, err := NewTransportQuote(id, tenantID, tenderID, requestID, supplierID, price, transitHours, submittedAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	q.status = status
	return q, nil
}

// Validate ensures the quote was created through a constructor.
func (q *TransportQuote) Validate() error {
	if q == nil || !q.isConstructed {
		return ErrQuoteIsNotConstructed
	}

	return nil
}

// IsEqual compares two quotes by their unique identifiers.
func (q *TransportQuote) IsEqual(other *TransportQuote) bool {
	return other != nil && q.id.IsEqual(other.id)
}

// ID returns the quote's unique identifier.
func (q *TransportQuote) ID() kernel.UUID {
	return q.id
}

// TenantID returns the owning tenant's identifier.
func (q *TransportQuote) TenantID() kernel.UUID {
	return q.tenantID
}

// TenderID returns the tender this quote bids on.
func (q *TransportQuote) TenderID() kernel.UUID {
	return q.tenderID
}

// RequestID returns the underlying transport request's identifier.
func (q *TransportQuote) RequestID() kernel.UUID {
	return q.requestID
}

// SupplierID returns the bidding supplier's identifier.
func (q *TransportQuote) SupplierID() kernel.UUID {
	return q.supplierID
}

// Price returns the bid price.
func (q *TransportQuote) Price() kernel.Money {
	return q.price
}

// TransitHours returns the promised transit time in hours.
func (q *TransportQuote) TransitHours() int {
	return q.transitHours
}

// SubmittedAt returns the submission timestamp.
func (q *TransportQuote) SubmittedAt() time.Time {
	return q.submittedAt
}

// Status returns the current lifecycle status.
func (q *TransportQuote) Status() Status {
	return q.status
}

// Select marks this quote as the winner. Only valid from Submitted.
// Callers must reject all sibling quotes in the same transaction to uphold
// the at-most-one-selected invariant.
func (q *TransportQuote) Select() error {
	newStatus, err := q.status.Select()
	if err != nil {
		return err
	}

	q.status = newStatus
	return nil
}

// Reject marks this quote as lost. Only valid from Submitted.
func (q *TransportQuote) Reject() error {
	newStatus, err := q.status.Reject()
	if err != nil {
		return err
	}

	q.status = newStatus
	return nil
}

func (q *TransportQuote) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.id = id
	return nil
}

func (q *TransportQuote) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.tenantID = id
	return nil
}

func (q *TransportQuote) setTenderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.tenderID = id
	return nil
}

func (q *TransportQuote) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.requestID = id
	return nil
}

func (q *TransportQuote) setSupplierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.supplierID = id
	return nil
}

func (q *TransportQuote) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	q.price = price
	return nil
}

func (q *TransportQuote) setTransitHours(hours int) error {
	if hours <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("transit hours",
			fmt.Errorf("%d is not greater than 0", hours))
	}
	q.transitHours = hours
	return nil
}
