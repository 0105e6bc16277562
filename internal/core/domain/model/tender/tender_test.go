package tender_test

import (
	"testing"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/core/domain/model/tender"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(t *testing.T) *request.TransportRequest {
	t.Helper()

	pickup := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	r, err := request.NewTransportRequest(
		kernel.NewUUID(),
		kernel.NewUUID(),
		request.Cargo{Type: kernel.TransportTypeContainer, WeightKg: 4000, VolumeM3: 30},
		request.Route{
			PickupAddress:   "Pier 3, Antwerpen",
			DeliveryAddress: "Via Roma 1, Milano",
			PickupDate:      pickup,
			DeliveryDate:    pickup.Add(72 * time.Hour),
		},
	)
	require.NoError(t, err)
	return r
}

func invitedSuppliers(n int) []kernel.UUID {
	ids := make([]kernel.UUID, n)
	for i := range ids {
		ids[i] = kernel.NewUUID()
	}
	return ids
}

func TestNewTenderRequest_Windows(t *testing.T) {
	req := testRequest(t)
	now := time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)

	tr, err := tender.NewTenderRequest(
		kernel.NewUUID(), req, invitedSuppliers(3), tender.DefaultCriteriaWeights(),
		now, 24*time.Hour, 48*time.Hour, 2*time.Hour,
	)

	require.NoError(t, err)
	assert.Equal(t, tender.Active, tr.Status())
	assert.Equal(t, req.ID(), tr.RequestID())
	assert.Equal(t, req.TenantID(), tr.TenantID())
	assert.Equal(t, now.Add(24*time.Hour), tr.Deadline())
	assert.Equal(t, now.Add(48*time.Hour), tr.EvaluationUntil())
	assert.Equal(t, now.Add(22*time.Hour), tr.ReminderAt())
	assert.False(t, tr.WasReminded())

	// Requirements are a frozen snapshot of the request
	assert.Equal(t, req.Cargo(), tr.Requirements().Cargo)
	assert.Equal(t, req.Route(), tr.Requirements().Route)
}

func TestNewTenderRequest_InvalidWindows(t *testing.T) {
	req := testRequest(t)
	now := time.Now()
	invited := invitedSuppliers(2)
	weights := tender.DefaultCriteriaWeights()

	testCases := []struct {
		name             string
		bidWindow        time.Duration
		evaluationWindow time.Duration
		reminderLead     time.Duration
	}{
		{"zero bid window", 0, 48 * time.Hour, 2 * time.Hour},
		{"evaluation shorter than bidding", 24 * time.Hour, 12 * time.Hour, 2 * time.Hour},
		{"zero reminder lead", 24 * time.Hour, 48 * time.Hour, 0},
		{"reminder lead exceeds bid window", 24 * time.Hour, 48 * time.Hour, 30 * time.Hour},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tender.NewTenderRequest(
				kernel.NewUUID(), req, invited, weights,
				now, tc.bidWindow, tc.evaluationWindow, tc.reminderLead,
			)
			require.Error(t, err)
		})
	}
}

func TestNewTenderRequest_RequiresInvitedSuppliers(t *testing.T) {
	req := testRequest(t)

	_, err := tender.NewTenderRequest(
		kernel.NewUUID(), req, nil, tender.DefaultCriteriaWeights(),
		time.Now(), 24*time.Hour, 48*time.Hour, 2*time.Hour,
	)

	require.Error(t, err)
}

func TestTenderRequest_InvitedSuppliersAreCopied(t *testing.T) {
	req := testRequest(t)
	invited := invitedSuppliers(3)

	tr, err := tender.NewTenderRequest(
		kernel.NewUUID(), req, invited, tender.DefaultCriteriaWeights(),
		time.Now(), 24*time.Hour, 48*time.Hour, 2*time.Hour,
	)
	require.NoError(t, err)

	returned := tr.InvitedSuppliers()
	returned[0] = kernel.NewUUID()
	assert.Equal(t, invited[0], tr.InvitedSuppliers()[0])
}

func TestTenderRequest_ReminderLifecycle(t *testing.T) {
	req := testRequest(t)
	now := time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)

	tr, err := tender.NewTenderRequest(
		kernel.NewUUID(), req, invitedSuppliers(2), tender.DefaultCriteriaWeights(),
		now, 24*time.Hour, 48*time.Hour, 2*time.Hour,
	)
	require.NoError(t, err)

	assert.False(t, tr.ShouldRemind(now))
	assert.False(t, tr.ShouldRemind(now.Add(21*time.Hour)))
	assert.True(t, tr.ShouldRemind(now.Add(23*time.Hour)))

	require.NoError(t, tr.MarkReminded())
	assert.True(t, tr.WasReminded())
	assert.False(t, tr.ShouldRemind(now.Add(23*time.Hour)))

	// A second reminder must surface as an error, not a silent double send
	require.Error(t, tr.MarkReminded())
}

func TestTenderRequest_DeadlineAndClose(t *testing.T) {
	req := testRequest(t)
	now := time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)

	tr, err := tender.NewTenderRequest(
		kernel.NewUUID(), req, invitedSuppliers(2), tender.DefaultCriteriaWeights(),
		now, 24*time.Hour, 48*time.Hour, 2*time.Hour,
	)
	require.NoError(t, err)

	assert.False(t, tr.IsPastDeadline(now.Add(24*time.Hour)))
	assert.True(t, tr.IsPastDeadline(now.Add(24*time.Hour+time.Second)))

	require.NoError(t, tr.Close())
	assert.Equal(t, tender.Closed, tr.Status())

	// Closed is terminal
	require.Error(t, tr.Close())
}

func TestRestoreTenderRequest_RoundTrip(t *testing.T) {
	req := testRequest(t)
	now := time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)

	original, err := tender.NewTenderRequest(
		kernel.NewUUID(), req, invitedSuppliers(2), tender.DefaultCriteriaWeights(),
		now, 24*time.Hour, 48*time.Hour, 2*time.Hour,
	)
	require.NoError(t, err)

	restored, err := tender.RestoreTenderRequest(
		original.ID(),
		original.TenantID(),
		original.RequestID(),
		original.Requirements(),
		original.Weights(),
		original.InvitedSuppliers(),
		original.Deadline(),
		original.EvaluationUntil(),
		original.ReminderAt(),
		original.WasReminded(),
		original.Status(),
		original.CreatedAt(),
	)

	require.NoError(t, err)
	assert.True(t, restored.IsEqual(original))
	assert.Equal(t, original.Deadline(), restored.Deadline())
	assert.Equal(t, original.Status(), restored.Status())
}
