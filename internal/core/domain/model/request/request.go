package request

import (
	"errors"
	"fmt"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/errs"
)

var (
	// ErrRequestIsNotConstructed is returned when a TransportRequest instance was not
	// created through the NewTransportRequest factory method.
	ErrRequestIsNotConstructed = errors.New("TransportRequest must be created via NewTransportRequest constructor")
)

// Cargo describes what is being shipped. It is a value captured at request
// creation and never modified by the orchestrator.
type Cargo struct {
	// Type classifies the handling the shipment needs.
	Type kernel.TransportType

	// WeightKg is the total cargo weight in kilograms (must be positive).
	WeightKg float64

	// VolumeM3 is the total cargo volume in cubic meters (must be positive).
	VolumeM3 float64

	// Hazardous marks dangerous goods requiring certified carriers.
	Hazardous bool

	// Instructions carries free-form special handling notes.
	Instructions string
}

// Route describes where and when the shipment moves. Captured at request
// creation; the tender embeds a frozen snapshot of it so later edits never
// retroactively change tender terms.
type Route struct {
	PickupAddress   string
	DeliveryAddress string
	PickupDate      time.Time
	DeliveryDate    time.Time
}

// TransportRequest is the aggregate root of the procurement pipeline: one
// customer shipment need that the orchestrator drives from creation to
// delivery.
//
// TransportRequest follows these invariants:
//   - Owned by exactly one tenant; cross-tenant access is a not-found condition
//   - Cargo and route are immutable after creation
//   - Only status and recommendation annotations are written by the orchestrator
//   - Status transitions are monotonic (Created -> Quoted -> Delivered)
//   - Can only be created through NewTransportRequest or RestoreTransportRequest
//
// The version field carries the optimistic concurrency token used by the
// persistence layer; two concurrent stage handlers for the same request
// cannot both commit a status change.
type TransportRequest struct {
	id       kernel.UUID
	tenantID kernel.UUID
	cargo    Cargo
	route    Route
	status   Status

	// recommendedQuoteID is the quote the evaluator last recommended, if any.
	recommendedQuoteID *kernel.UUID

	// recommendationNote is the human-readable evaluation summary.
	recommendationNote string

	// version is the optimistic concurrency token, bumped on every update.
	version int

	isConstructed bool
}

// NewTransportRequest creates a new TransportRequest in Created status.
//
// Parameters:
//   - id: unique identifier for the request
//   - tenantID: owning tenant
//   - cargo: shipment contents (validated: known type, positive weight and volume)
//   - route: pickup/delivery addresses and dates (validated: non-empty addresses,
//     delivery not before pickup)
//
// Returns a validation error if any parameter is invalid.
func NewTransportRequest(id kernel.UUID, tenantID kernel.UUID, cargo Cargo, route Route) (*TransportRequest, error) {
	r := &TransportRequest{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setTenantID(tenantID),
		r.setCargo(cargo),
		r.setRoute(route),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreTransportRequest reconstructs a request from persistence, including
// its current status, recommendation annotations, and version token.
// Used only by repository implementations.
func RestoreTransportRequest(
	id kernel.UUID,
	tenantID kernel.UUID,
	cargo Cargo,
	route Route,
	status Status,
	recommendedQuoteID *kernel.UUID,
	recommendationNote string,
	version int,
) (*TransportRequest, error) {
	r, err := NewTransportRequest(id, tenantID, cargo, route)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	r.status = status
	r.recommendedQuoteID = recommendedQuoteID
	r.recommendationNote = recommendationNote
	r.version = version
	return r, nil
}

// Validate ensures the request was created through a constructor.
func (r *TransportRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}

	return nil
}

// IsEqual compares two requests by their unique identifiers.
func (r *TransportRequest) IsEqual(other *TransportRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *TransportRequest) ID() kernel.UUID {
	return r.id
}

// TenantID returns the owning tenant's identifier.
func (r *TransportRequest) TenantID() kernel.UUID {
	return r.tenantID
}

// Cargo returns the shipment contents.
func (r *TransportRequest) Cargo() Cargo {
	return r.cargo
}

// Route returns the pickup/delivery route.
func (r *TransportRequest) Route() Route {
	return r.route
}

// Status returns the current lifecycle status.
func (r *TransportRequest) Status() Status {
	return r.status
}

// RecommendedQuote returns the quote ID the evaluator last recommended.
// Returns nil if no evaluation has produced a recommendation yet.
func (r *TransportRequest) RecommendedQuote() *kernel.UUID {
	return r.recommendedQuoteID
}

// RecommendationNote returns the evaluation summary annotation.
func (r *TransportRequest) RecommendationNote() string {
	return r.recommendationNote
}

// Version returns the optimistic concurrency token.
func (r *TransportRequest) Version() int {
	return r.version
}

// MarkQuoted records that a tender has been issued for this request.
// Only valid from Created status.
func (r *TransportRequest) MarkQuoted() error {
	newStatus, err := r.status.MarkQuoted()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// MarkDelivered records completion of the full pipeline.
// Only valid from Quoted status; Delivered is final.
func (r *TransportRequest) MarkDelivered() error {
	newStatus, err := r.status.MarkDelivered()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// AnnotateRecommendation records the evaluator's recommendation on the request.
// This is the only mutation besides status the orchestrator performs; re-running
// an evaluation overwrites the previous annotation.
func (r *TransportRequest) AnnotateRecommendation(quoteID kernel.UUID, note string) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}

	r.recommendedQuoteID = &quoteID
	r.recommendationNote = note
	return nil
}

func (r *TransportRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *TransportRequest) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	r.tenantID = tenantID
	return nil
}

func (r *TransportRequest) setCargo(cargo Cargo) error {
	if err := cargo.Type.Validate(); err != nil {
		return err
	}

	if cargo.WeightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("cargo weight is invalid",
			fmt.Errorf("%f is not greater than 0", cargo.WeightKg))
	}

	if cargo.VolumeM3 <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("cargo volume is invalid",
			fmt.Errorf("%f is not greater than 0", cargo.VolumeM3))
	}

	r.cargo = cargo
	return nil
}

func (r *TransportRequest) setRoute(route Route) error {
	if route.PickupAddress == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}

	if route.DeliveryAddress == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}

	if route.PickupDate.IsZero() || route.DeliveryDate.IsZero() {
		return errs.NewValueIsRequiredError("pickup and delivery dates")
	}

	if route.DeliveryDate.Before(route.PickupDate) {
		return errs.NewValueIsInvalidErrorWithCause("route is invalid",
			fmt.Errorf("delivery date %s is before pickup date %s", route.DeliveryDate, route.PickupDate))
	}

	r.route = route
	return nil
}
