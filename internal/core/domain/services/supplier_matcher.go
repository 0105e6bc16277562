package services

import (
	"errors"
	"sort"

	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/core/domain/model/supplier"
)

// ErrNoSuppliersFound is returned when no eligible supplier supports the
// request's transport type. This is a business outcome, not a system fault:
// automation cannot proceed for the request, and the caller decides whether
// to retry later or fall back to manual sourcing.
var ErrNoSuppliersFound = errors.New("no eligible suppliers found for request")

// defaultMatchLimit bounds how many suppliers one tender invites.
const defaultMatchLimit = 10

// RankedSupplier pairs a candidate supplier with its computed fit score.
type RankedSupplier struct {
	Supplier *supplier.LogisticsSupplier
	FitScore float64
}

// SupplierMatcher is the domain service that selects and ranks candidate
// suppliers for a transport request.
//
// Business rules:
//   - Only active suppliers with portal access are considered
//   - The supplier must support the request's transport type
//   - Candidates are ranked by SupplierFitScore, highest first
//   - Score ties break by supplier ID so ranking is deterministic
//   - At most limit suppliers are returned (10 by default)
type SupplierMatcher struct {
	geo   GeoCoverageScorer
	limit int
}

// NewSupplierMatcher creates a matcher with the given geographic scorer and
// invitation limit. A non-positive limit falls back to the default of 10.
func NewSupplierMatcher(geo GeoCoverageScorer, limit int) SupplierMatcher {
	if limit <= 0 {
		limit = defaultMatchLimit
	}
	return SupplierMatcher{geo: geo, limit: limit}
}

// Match filters, scores, and ranks the given suppliers for the request.
//
// Returns ErrNoSuppliersFound if the filtered candidate set is empty. The
// error is reported to the caller rather than swallowed because it decides
// whether automation can proceed at all.
func (m SupplierMatcher) Match(
	req *request.TransportRequest,
	suppliers []*supplier.LogisticsSupplier,
) ([]RankedSupplier, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]RankedSupplier, 0, len(suppliers))
	for _, s := range suppliers {
		if err := s.Validate(); err != nil {
			return nil, err
		}

		if !s.IsEligible() || !s.Supports(req.Cargo().Type) {
			continue
		}

		ranked = append(ranked, RankedSupplier{
			Supplier: s,
			FitScore: SupplierFitScore(s, req, m.geo),
		})
	}

	if len(ranked) == 0 {
		return nil, ErrNoSuppliersFound
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FitScore != ranked[j].FitScore {
			return ranked[i].FitScore > ranked[j].FitScore
		}
		return ranked[i].Supplier.ID().String() < ranked[j].Supplier.ID().String()
	})

	if len(ranked) > m.limit {
		ranked = ranked[:m.limit]
	}

	return ranked, nil
}
