package tender

import (
	"errors"
	"fmt"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/pkg/errs"
)

var (
	// ErrTenderIsNotConstructed is returned when a TenderRequest instance was not
	// created through the NewTenderRequest factory method.
	ErrTenderIsNotConstructed = errors.New("TenderRequest must be created via NewTenderRequest constructor")
)

// Requirements is the frozen snapshot of the transport request's terms at the
// moment the tender was issued. Suppliers bid against this snapshot, so later
// changes to the request never retroactively alter tender terms.
type Requirements struct {
	Cargo request.Cargo
	Route request.Route
}

// TenderRequest is a time-boxed solicitation for bids derived from one
// TransportRequest.
//
// TenderRequest follows these invariants:
//   - The invited supplier list is fixed at creation and never changes
//   - The requirements snapshot is immutable
//   - Criteria weights are frozen at creation
//   - Exactly one tender is created per automation cycle
//   - Closed is terminal
type TenderRequest struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	requestID kernel.UUID

	requirements Requirements
	weights      CriteriaWeights

	invitedSupplierIDs []kernel.UUID

	// deadline is when quote submission closes.
	deadline time.Time

	// evaluationUntil bounds the window in which evaluation runs may still
	// auto-select; after it, selection requires manual review.
	evaluationUntil time.Time

	// reminderAt is when non-responding suppliers get a reminder notice.
	reminderAt time.Time

	// reminded guards the reminder notification against duplicate sends.
	reminded bool

	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewTenderRequest creates an Active tender for the given request.
//
// Parameters:
//   - id: unique tender identifier
//   - req: the transport request being tendered; its tenant, cargo, and route
//     are captured into the tender
//   - invitedSupplierIDs: the matched suppliers to solicit (fixed hereafter)
//   - weights: evaluation criteria weights (frozen hereafter)
//   - now: current time from the injected clock
//   - bidWindow: how long suppliers may submit quotes (deadline = now + bidWindow)
//   - evaluationWindow: how long after now auto-selection remains allowed
//   - reminderLead: how long before the deadline the reminder fires
//
// Returns a validation error if the request is invalid, no suppliers were
// invited, or the windows are not positive.
func NewTenderRequest(
	id kernel.UUID,
	req *request.TransportRequest,
	invitedSupplierIDs []kernel.UUID,
	weights CriteriaWeights,
	now time.Time,
	bidWindow time.Duration,
	evaluationWindow time.Duration,
	reminderLead time.Duration,
) (*TenderRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := &TenderRequest{
		requestID: req.ID(),
		requirements: Requirements{
			Cargo: req.Cargo(),
			Route: req.Route(),
		},
		status:        Active,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setTenantID(req.TenantID()),
		t.setInvitedSuppliers(invitedSupplierIDs),
		t.setWeights(weights),
		t.setWindows(now, bidWindow, evaluationWindow, reminderLead),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTenderRequest reconstructs a tender from persistence.
// Used only by repository implementations.
func RestoreTenderRequest(
	id kernel.UUID,
	tenantID kernel.UUID,
	requestID kernel.UUID,
	requirements Requirements,
	weights CriteriaWeights,
	invitedSupplierIDs []kernel.UUID,
	deadline time.Time,
	evaluationUntil time.Time,
	reminderAt time.Time,
	reminded bool,
	status Status,
	createdAt time.Time,
) (*TenderRequest, error) {
	t := &TenderRequest{
		requirements:  requirements,
		deadline:      deadline,
		evaluationUntil: evaluationUntil,
		reminderAt:    reminderAt,
		reminded:      reminded,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setTenantID(tenantID),
		t.setInvitedSuppliers(invitedSupplierIDs),
		t.setWeights(weights),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	t.requestID = requestID
	t.status = status
	return t, nil
}

// Validate ensures the tender was created through a constructor.
func (t *TenderRequest) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTenderIsNotConstructed
	}

	return nil
}

// IsEqual compares two tenders by their unique identifiers.
func (t *TenderRequest) IsEqual(other *TenderRequest) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the tender's unique identifier.
func (t *TenderRequest) ID() kernel.UUID {
	return t.id
}

// TenantID returns the owning tenant's identifier.
func (t *TenderRequest) TenantID() kernel.UUID {
	return t.tenantID
}

// RequestID returns the identifier of the underlying transport request.
func (t *TenderRequest) RequestID() kernel.UUID {
	return t.requestID
}

// Requirements returns the frozen request snapshot suppliers bid against.
func (t *TenderRequest) Requirements() Requirements {
	return t.requirements
}

// Weights returns the frozen evaluation criteria weights.
func (t *TenderRequest) Weights() CriteriaWeights {
	return t.weights
}

// InvitedSuppliers returns a copy of the fixed invited supplier list.
func (t *TenderRequest) InvitedSuppliers() []kernel.UUID {
	ids := make([]kernel.UUID, len(t.invitedSupplierIDs))
	copy(ids, t.invitedSupplierIDs)
	return ids
}

// Deadline returns the quote submission deadline.
func (t *TenderRequest) Deadline() time.Time {
	return t.deadline
}

// EvaluationUntil returns the end of the auto-selection window.
func (t *TenderRequest) EvaluationUntil() time.Time {
	return t.evaluationUntil
}

// ReminderAt returns the reminder notification time.
func (t *TenderRequest) ReminderAt() time.Time {
	return t.reminderAt
}

// WasReminded reports whether the reminder notification has been sent.
func (t *TenderRequest) WasReminded() bool {
	return t.reminded
}

// Status returns the current lifecycle status.
func (t *TenderRequest) Status() Status {
	return t.status
}

// CreatedAt returns the tender creation time.
func (t *TenderRequest) CreatedAt() time.Time {
	return t.createdAt
}

// IsPastDeadline reports whether quote submission has closed as of now.
func (t *TenderRequest) IsPastDeadline(now time.Time) bool {
	return now.After(t.deadline)
}

// ShouldRemind reports whether the reminder is due and has not been sent yet.
func (t *TenderRequest) ShouldRemind(now time.Time) bool {
	return t.status == Active && !t.reminded && now.After(t.reminderAt)
}

// MarkReminded records that the reminder notification was sent.
// Safe to call once; a second call is rejected so duplicate sends surface.
func (t *TenderRequest) MarkReminded() error {
	if t.reminded {
		return errs.NewValueIsInvalidError("tender reminder already sent")
	}

	t.reminded = true
	return nil
}

// Close transitions the tender to Closed. Only valid from Active.
func (t *TenderRequest) Close() error {
	newStatus, err := t.status.Close()
	if err != nil {
		return err
	}

	t.status = newStatus
	return nil
}

func (t *TenderRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *TenderRequest) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	t.tenantID = tenantID
	return nil
}

func (t *TenderRequest) setInvitedSuppliers(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("invited suppliers")
	}

	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	t.invitedSupplierIDs = make([]kernel.UUID, len(ids))
	copy(t.invitedSupplierIDs, ids)
	return nil
}

func (t *TenderRequest) setWeights(weights CriteriaWeights) error {
	if err := weights.Validate(); err != nil {
		return err
	}
	t.weights = weights
	return nil
}

func (t *TenderRequest) setWindows(now time.Time, bidWindow, evaluationWindow, reminderLead time.Duration) error {
	if bidWindow <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("bid window",
			fmt.Errorf("%s is not positive", bidWindow))
	}

	if evaluationWindow < bidWindow {
		return errs.NewValueIsInvalidErrorWithCause("evaluation window",
			fmt.Errorf("%s is shorter than the bid window %s", evaluationWindow, bidWindow))
	}

	if reminderLead <= 0 || reminderLead >= bidWindow {
		return errs.NewValueIsInvalidErrorWithCause("reminder lead",
			fmt.Errorf("%s must be positive and shorter than the bid window %s", reminderLead, bidWindow))
	}

	t.deadline = now.Add(bidWindow)
	t.evaluationUntil = now.Add(evaluationWindow)
	t.reminderAt = t.deadline.Add(-reminderLead)
	return nil
}
