package services_test

import (
	"testing"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/supplier"
	"freightflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supplierWithFlags(t *testing.T, profile supplier.PerformanceProfile, active, portalAccess bool, types ...kernel.TransportType) *supplier.LogisticsSupplier {
	t.Helper()

	s, err := supplier.NewLogisticsSupplier(
		kernel.NewUUID(), kernel.NewUUID(), "Carrier", profile, types, active, portalAccess,
	)
	require.NoError(t, err)
	return s
}

func TestSupplierMatcher_FiltersIneligibleCandidates(t *testing.T) {
	req := buildRequest(t, kernel.TransportTypePallet)
	profile := supplier.PerformanceProfile{Rating: 4, ReliabilityScore: 0.9, ResponseTimeMinutes: 30}

	eligible := supplierWithFlags(t, profile, true, true, kernel.TransportTypePallet)
	inactive := supplierWithFlags(t, profile, false, true, kernel.TransportTypePallet)
	noPortal := supplierWithFlags(t, profile, true, false, kernel.TransportTypePallet)
	wrongType := supplierWithFlags(t, profile, true, true, kernel.TransportTypeBulk)

	matcher := services.NewSupplierMatcher(services.NewFixedGeoCoverage(), 10)
	ranked, err := matcher.Match(req, []*supplier.LogisticsSupplier{inactive, eligible, noPortal, wrongType})

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.True(t, ranked[0].Supplier.IsEqual(eligible))
}

func TestSupplierMatcher_RanksByFitScoreDescending(t *testing.T) {
	req := buildRequest(t, kernel.TransportTypeContainer)

	weak := supplierWithFlags(t, supplier.PerformanceProfile{Rating: 1, ReliabilityScore: 0.3, ResponseTimeMinutes: 90}, true, true, kernel.TransportTypeContainer)
	strong := supplierWithFlags(t, supplier.PerformanceProfile{Rating: 5, ReliabilityScore: 0.95, ResponseTimeMinutes: 10}, true, true, kernel.TransportTypeContainer)
	middling := supplierWithFlags(t, supplier.PerformanceProfile{Rating: 3, ReliabilityScore: 0.6, ResponseTimeMinutes: 45}, true, true, kernel.TransportTypeContainer)

	matcher := services.NewSupplierMatcher(services.NewFixedGeoCoverage(), 10)
	ranked, err := matcher.Match(req, []*supplier.LogisticsSupplier{weak, strong, middling})

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.True(t, ranked[0].Supplier.IsEqual(strong))
	assert.True(t, ranked[1].Supplier.IsEqual(middling))
	assert.True(t, ranked[2].Supplier.IsEqual(weak))
	assert.GreaterOrEqual(t, ranked[0].FitScore, ranked[1].FitScore)
	assert.GreaterOrEqual(t, ranked[1].FitScore, ranked[2].FitScore)
}

func TestSupplierMatcher_TiesBreakBySupplierID(t *testing.T) {
	req := buildRequest(t, kernel.TransportTypeExpress)
	profile := supplier.PerformanceProfile{Rating: 3, ReliabilityScore: 0.5, ResponseTimeMinutes: 50}

	a := supplierWithFlags(t, profile, true, true, kernel.TransportTypeExpress)
	b := supplierWithFlags(t, profile, true, true, kernel.TransportTypeExpress)

	matcher := services.NewSupplierMatcher(services.NewFixedGeoCoverage(), 10)
	ranked, err := matcher.Match(req, []*supplier.LogisticsSupplier{a, b})
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, ranked[0].FitScore, ranked[1].FitScore)
	assert.Less(t, ranked[0].Supplier.ID().String(), ranked[1].Supplier.ID().String())

	// The ranking does not depend on input order
	reversed, err := matcher.Match(req, []*supplier.LogisticsSupplier{b, a})
	require.NoError(t, err)
	assert.True(t, ranked[0].Supplier.IsEqual(reversed[0].Supplier))
}

func TestSupplierMatcher_TruncatesToLimit(t *testing.T) {
	req := buildRequest(t, kernel.TransportTypePallet)

	candidates := make([]*supplier.LogisticsSupplier, 0, 12)
	for i := 0; i < 12; i++ {
		profile := supplier.PerformanceProfile{
			Rating:              float64(i%5) + 0.5,
			ReliabilityScore:    0.5,
			ResponseTimeMinutes: 10 * i,
		}
		candidates = append(candidates, supplierWithFlags(t, profile, true, true, kernel.TransportTypePallet))
	}

	matcher := services.NewSupplierMatcher(services.NewFixedGeoCoverage(), 0)
	ranked, err := matcher.Match(req, candidates)

	require.NoError(t, err)
	assert.Len(t, ranked, 10)
}

func TestSupplierMatcher_NoCandidates(t *testing.T) {
	req := buildRequest(t, kernel.TransportTypeRefrigerated)
	profile := supplier.PerformanceProfile{Rating: 4, ReliabilityScore: 0.8}

	onlyWrongType := supplierWithFlags(t, profile, true, true, kernel.TransportTypeBulk)

	matcher := services.NewSupplierMatcher(services.NewFixedGeoCoverage(), 10)

	_, err := matcher.Match(req, []*supplier.LogisticsSupplier{onlyWrongType})
	require.ErrorIs(t, err, services.ErrNoSuppliersFound)

	_, err = matcher.Match(req, nil)
	require.ErrorIs(t, err, services.ErrNoSuppliersFound)
}
