package workflow_test

import (
	"context"
	"testing"
	"time"

	"freightflow/internal/core/application/usecases/commands"
	"freightflow/internal/core/application/workflow"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/services"
	"freightflow/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingUoW fails on Begin; every other method is unreachable in these tests.
type failingUoW struct {
	commands.UoW
}

func (failingUoW) Begin(_ context.Context) error {
	return assert.AnError
}

func (failingUoW) Rollback(_ context.Context) error {
	return nil
}

type stubUoWFactory struct {
	uow commands.UoW
}

func (f stubUoWFactory) Create() commands.UoW {
	return f.uow
}

type stubClock struct{}

func (stubClock) Now() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newOrchestrator(t *testing.T, factory commands.UoWFactory, registry *metrics.Registry) *workflow.Orchestrator {
	t.Helper()

	gate, err := services.NewDecisionGate(0.9, 0.10)
	require.NoError(t, err)

	policy := commands.DefaultWorkflowPolicy()
	matcher := services.NewSupplierMatcher(services.NewFixedGeoCoverage(), policy.MaxSuppliers)

	return workflow.NewOrchestrator(
		commands.NewIssueTenderCommandHandler(factory, matcher, nil, stubClock{}, policy),
		commands.NewEvaluateQuotesCommandHandler(factory, services.NewQuoteEvaluator(), gate, nil, stubClock{}, policy),
		commands.NewProcessOrderCommandHandler(factory, nil, nil, stubClock{}, policy),
		commands.NewCompleteDeliveryCommandHandler(factory, nil, nil, stubClock{}, policy),
		registry,
	)
}

func TestOrchestrator_Trigger_RejectsUnconstructedTrigger(t *testing.T) {
	orchestrator := newOrchestrator(t, stubUoWFactory{uow: failingUoW{}}, nil)

	var trigger workflow.Trigger
	_, err := orchestrator.Trigger(t.Context(), trigger)

	require.ErrorIs(t, err, workflow.ErrTriggerIsNotConstructed)
}

func TestOrchestrator_Trigger_AnnotatesStageErrors(t *testing.T) {
	registry := metrics.NewRegistry()
	orchestrator := newOrchestrator(t, stubUoWFactory{uow: failingUoW{}}, registry)

	entityID := kernel.NewUUID()
	trigger, err := workflow.NewTrigger(kernel.NewUUID(), workflow.TypeTransportRequest, entityID)
	require.NoError(t, err)

	_, err = orchestrator.Trigger(t.Context(), trigger)

	// The annotation names the stage and entity without hiding the cause
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "TRANSPORT_REQUEST workflow for entity "+entityID.String())

	failed := testutil.ToFloat64(registry.TriggersTotal.WithLabelValues("TRANSPORT_REQUEST", "failed"))
	assert.Equal(t, 1.0, failed)
}

func TestOrchestrator_Trigger_DeliveryVerificationOverride(t *testing.T) {
	registry := metrics.NewRegistry()
	orchestrator := newOrchestrator(t, stubUoWFactory{uow: failingUoW{}}, registry)

	notVerified := false
	trigger, err := workflow.NewTriggerWithPayload(
		kernel.NewUUID(), workflow.TypeDeliveryNotification, kernel.NewUUID(),
		workflow.DeliveryNotificationPayload{VerificationOverride: &notVerified},
	)
	require.NoError(t, err)

	_, err = orchestrator.Trigger(t.Context(), trigger)

	require.ErrorIs(t, err, commands.ErrDeliveryNotVerified)

	failed := testutil.ToFloat64(registry.TriggersTotal.WithLabelValues("DELIVERY_NOTIFICATION", "failed"))
	assert.Equal(t, 1.0, failed)
}
