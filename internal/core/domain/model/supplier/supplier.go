package supplier

import (
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/errs"
)

var (
	// ErrSupplierIsNotConstructed is returned when a LogisticsSupplier instance was
	// not created through the NewLogisticsSupplier factory method.
	ErrSupplierIsNotConstructed = errors.New("LogisticsSupplier must be created via NewLogisticsSupplier constructor")
)

// PerformanceProfile groups the supplier metrics the scoring engine consumes.
// All metrics are maintained by the surrounding system (portal feedback,
// historic performance); the orchestrator only reads them.
type PerformanceProfile struct {
	// Rating is the customer rating on a 0-5 scale.
	Rating float64

	// ReliabilityScore is the historic fulfilment reliability in [0,1].
	ReliabilityScore float64

	// ResponseTimeMinutes is the average quote turnaround; lower is better.
	ResponseTimeMinutes int

	// AIPerformanceScore is the learned performance estimate in [0,1].
	AIPerformanceScore float64
}

// LogisticsSupplier is a bidding party that can be invited to tenders.
// It is read-only from the orchestrator's perspective: the pipeline selects
// and ranks suppliers but never mutates them.
type LogisticsSupplier struct {
	id             kernel.UUID
	tenantID       kernel.UUID
	name           string
	profile        PerformanceProfile
	transportTypes []kernel.TransportType
	active         bool
	portalAccess   bool

	isConstructed bool
}

// NewLogisticsSupplier creates a supplier entity with validated metrics.
//
// Validation rules:
//   - id and tenantID must be valid UUIDs
//   - name must be non-empty
//   - rating must be in [0,5]; reliability and AI scores in [0,1]
//   - response time must be non-negative
//   - at least one supported transport type, each valid
func NewLogisticsSupplier(
	id kernel.UUID,
	tenantID kernel.UUID,
	name string,
	profile PerformanceProfile,
	transportTypes []kernel.TransportType,
	active bool,
	portalAccess bool,
) (*LogisticsSupplier, error) {
	s := &LogisticsSupplier{
		active:        active,
		portalAccess:  portalAccess,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTenantID(tenantID),
		s.setName(name),
		s.setProfile(profile),
		s.setTransportTypes(transportTypes),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the supplier was created through the constructor.
func (s *LogisticsSupplier) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSupplierIsNotConstructed
	}

	return nil
}

// IsEqual compares two suppliers by their unique identifiers.
func (s *LogisticsSupplier) IsEqual(other *LogisticsSupplier) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the supplier's unique identifier.
func (s *LogisticsSupplier) ID() kernel.UUID {
	return s.id
}

// TenantID returns the owning tenant's identifier.
func (s *LogisticsSupplier) TenantID() kernel.UUID {
	return s.tenantID
}

// Name returns the supplier's display name.
func (s *LogisticsSupplier) Name() string {
	return s.name
}

// Profile returns the scoring metrics for this supplier.
func (s *LogisticsSupplier) Profile() PerformanceProfile {
	return s.profile
}

// TransportTypes returns the supported transport types.
func (s *LogisticsSupplier) TransportTypes() []kernel.TransportType {
	return s.transportTypes
}

// IsActive reports whether the supplier is currently active.
func (s *LogisticsSupplier) IsActive() bool {
	return s.active
}

// HasPortalAccess reports whether the supplier can receive and answer tenders
// through the portal.
func (s *LogisticsSupplier) HasPortalAccess() bool {
	return s.portalAccess
}

// IsEligible reports whether the supplier may be invited to tenders at all:
// it must be active and have portal access.
func (s *LogisticsSupplier) IsEligible() bool {
	return s.active && s.portalAccess
}

// Supports reports whether the supplier handles the given transport type.
func (s *LogisticsSupplier) Supports(t kernel.TransportType) bool {
	for _, supported := range s.transportTypes {
		if supported == t {
			return true
		}
	}
	return false
}

func (s *LogisticsSupplier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *LogisticsSupplier) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	s.tenantID = tenantID
	return nil
}

func (s *LogisticsSupplier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("supplier name")
	}
	s.name = name
	return nil
}

func (s *LogisticsSupplier) setProfile(profile PerformanceProfile) error {
	if profile.Rating < 0 || profile.Rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", profile.Rating, 0, 5)
	}

	if profile.ReliabilityScore < 0 || profile.ReliabilityScore > 1 {
		return errs.NewValueIsOutOfRangeError("reliability score", profile.ReliabilityScore, 0, 1)
	}

	if profile.AIPerformanceScore < 0 || profile.AIPerformanceScore > 1 {
		return errs.NewValueIsOutOfRangeError("ai performance score", profile.AIPerformanceScore, 0, 1)
	}

	if profile.ResponseTimeMinutes < 0 {
		return errs.NewValueIsOutOfRangeError("response time", profile.ResponseTimeMinutes, 0, "unbounded")
	}

	s.profile = profile
	return nil
}

func (s *LogisticsSupplier) setTransportTypes(transportTypes []kernel.TransportType) error {
	if len(transportTypes) == 0 {
		return errs.NewValueIsRequiredError("transport types")
	}

	for _, t := range transportTypes {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	s.transportTypes = transportTypes
	return nil
}
