package request_test

import (
	"testing"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCargo() request.Cargo {
	return request.Cargo{
		Type:     kernel.TransportTypePallet,
		WeightKg: 1200,
		VolumeM3: 8,
	}
}

func validRoute() request.Route {
	pickup := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return request.Route{
		PickupAddress:   "Industrieweg 4, Rotterdam",
		DeliveryAddress: "Hafenstrasse 12, Hamburg",
		PickupDate:      pickup,
		DeliveryDate:    pickup.Add(48 * time.Hour),
	}
}

func TestNewTransportRequest_Success(t *testing.T) {
	id := kernel.NewUUID()
	tenantID := kernel.NewUUID()

	r, err := request.NewTransportRequest(id, tenantID, validCargo(), validRoute())

	require.NoError(t, err)
	assert.Equal(t, id, r.ID())
	assert.Equal(t, tenantID, r.TenantID())
	assert.Equal(t, request.Created, r.Status())
	assert.Nil(t, r.RecommendedQuote())
	assert.Equal(t, 0, r.Version())
}

func TestNewTransportRequest_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name  string
		cargo request.Cargo
		route request.Route
	}{
		{
			name:  "invalid transport type",
			cargo: request.Cargo{Type: "TELEPORT", WeightKg: 100, VolumeM3: 1},
			route: validRoute(),
		},
		{
			name:  "non-positive weight",
			cargo: request.Cargo{Type: kernel.TransportTypePallet, WeightKg: 0, VolumeM3: 1},
			route: validRoute(),
		},
		{
			name:  "non-positive volume",
			cargo: request.Cargo{Type: kernel.TransportTypePallet, WeightKg: 100, VolumeM3: -1},
			route: validRoute(),
		},
		{
			name:  "missing pickup address",
			cargo: validCargo(),
			route: request.Route{
				DeliveryAddress: "somewhere",
				PickupDate:      time.Now(),
				DeliveryDate:    time.Now().Add(time.Hour),
			},
		},
		{
			name:  "delivery before pickup",
			cargo: validCargo(),
			route: request.Route{
				PickupAddress:   "a",
				DeliveryAddress: "b",
				PickupDate:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
				DeliveryDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := request.NewTransportRequest(kernel.NewUUID(), kernel.NewUUID(), tc.cargo, tc.route)
			require.Error(t, err)
		})
	}
}

func TestTransportRequest_StatusTransitions(t *testing.T) {
	r, err := request.NewTransportRequest(kernel.NewUUID(), kernel.NewUUID(), validCargo(), validRoute())
	require.NoError(t, err)

	// Delivered straight from Created is not allowed
	require.Error(t, r.MarkDelivered())
	assert.Equal(t, request.Created, r.Status())

	require.NoError(t, r.MarkQuoted())
	assert.Equal(t, request.Quoted, r.Status())

	// Quoted twice is rejected
	require.Error(t, r.MarkQuoted())

	require.NoError(t, r.MarkDelivered())
	assert.Equal(t, request.Delivered, r.Status())

	// Delivered is terminal
	require.Error(t, r.MarkDelivered())
	require.Error(t, r.MarkQuoted())
}

func TestTransportRequest_AnnotateRecommendation(t *testing.T) {
	r, err := request.NewTransportRequest(kernel.NewUUID(), kernel.NewUUID(), validCargo(), validRoute())
	require.NoError(t, err)

	quoteID := kernel.NewUUID()
	require.NoError(t, r.AnnotateRecommendation(quoteID, "best value"))
	require.NotNil(t, r.RecommendedQuote())
	assert.Equal(t, quoteID, *r.RecommendedQuote())
	assert.Equal(t, "best value", r.RecommendationNote())

	// Re-evaluation overwrites the previous annotation
	secondQuoteID := kernel.NewUUID()
	require.NoError(t, r.AnnotateRecommendation(secondQuoteID, "re-evaluated"))
	assert.Equal(t, secondQuoteID, *r.RecommendedQuote())
	assert.Equal(t, "re-evaluated", r.RecommendationNote())

	require.Error(t, r.AnnotateRecommendation(kernel.UUID{}, "invalid"))
}

func TestTransportRequest_Validate_NotConstructed(t *testing.T) {
	var r *request.TransportRequest
	require.ErrorIs(t, r.Validate(), request.ErrRequestIsNotConstructed)

	empty := &request.TransportRequest{}
	require.ErrorIs(t, empty.Validate(), request.ErrRequestIsNotConstructed)
}

func TestRestoreTransportRequest_CarriesStateAndVersion(t *testing.T) {
	quoteID := kernel.NewUUID()

	r, err := request.RestoreTransportRequest(
		kernel.NewUUID(), kernel.NewUUID(), validCargo(), validRoute(),
		request.Quoted, &quoteID, "note", 3,
	)

	require.NoError(t, err)
	assert.Equal(t, request.Quoted, r.Status())
	assert.Equal(t, quoteID, *r.RecommendedQuote())
	assert.Equal(t, "note", r.RecommendationNote())
	assert.Equal(t, 3, r.Version())
}

func TestRestoreTransportRequest_InvalidStatus(t *testing.T) {
	_, err := request.RestoreTransportRequest(
		kernel.NewUUID(), kernel.NewUUID(), validCargo(), validRoute(),
		request.Unknown, nil, "", 0,
	)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
