package commands_test

import (
	"strings"
	"testing"
	"time"

	"freightflow/internal/core/application/usecases/commands"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/order"
	"freightflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func confirmedOrder(t *testing.T, tenantID kernel.UUID, requestID kernel.UUID, now time.Time) *order.TransportOrder {
	t.Helper()

	price, err := kernel.NewMoney(1200, "EUR")
	require.NoError(t, err)

	o, err := order.NewTransportOrder(
		kernel.NewUUID(), tenantID, requestID, kernel.NewUUID(), kernel.NewUUID(), price, 0.10, now,
	)
	require.NoError(t, err)
	return o
}

func newProcessOrderHandler(factory *MockUoWFactory, documents *MockDocumentGenerator, notifier *MockNotifier, now time.Time) commands.ProcessOrderCommandHandler {
	return commands.NewProcessOrderCommandHandler(factory, documents, notifier, fixedClock{now: now}, commands.DefaultWorkflowPolicy())
}

func TestProcessOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)

	tenantID := kernel.NewUUID()
	req := createdRequest(t, tenantID)
	o := confirmedOrder(t, tenantID, req.ID(), now)

	uow := NewMockUoW()
	factory := &MockUoWFactory{}
	documents := &MockDocumentGenerator{}
	notifier := &MockNotifier{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Twice(),
		uow.On("LockRequest", ctx, tenantID, req.ID()).Return(nil).Once(),
		uow.requests.On("Get", ctx, tenantID, req.ID()).Return(req, nil).Once(),
		documents.On("Generate", mock.Anything, order.DocumentKindOrderConfirmation, o).
			Return(ports.DocumentReference("CONF-12345678"), nil).Once(),
		uow.orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", mock.Anything, mock.Anything, ports.TemplateOrderProcessing, mock.Anything).
			Return(ports.DeliveryReceipt{MessageID: "m", SentAt: now}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newProcessOrderHandler(factory, documents, notifier, now)

	command, err := commands.NewProcessOrderCommand(tenantID, o.ID())
	require.NoError(t, err)

	result, err := handler.Handle(ctx, command)

	require.NoError(t, err)
	assert.False(t, result.AlreadyProcessed)
	assert.Equal(t, "TRK-"+strings.ToUpper(o.ID().String()[:8]), result.TrackingNumber)
	assert.Equal(t, req.Route().DeliveryDate, result.EstimatedDelivery)
	assert.Empty(t, result.FailedSideEffects)

	// The refresh point sits halfway between now and the delivery estimate
	expectedRefresh := now.Add(result.EstimatedDelivery.Sub(now) / 2)
	assert.Equal(t, expectedRefresh, result.PredictionRefreshAt)

	assert.Equal(t, order.Processing, o.Status())
	assert.Len(t, o.Documents(), 1)
	assert.Equal(t, order.DocumentKindOrderConfirmation, o.Documents()[0].Kind)

	uow.AssertExpectationsForAll(t)
	documents.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestProcessOrderCommandHandler_Handle_AlreadyProcessed(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)

	tenantID := kernel.NewUUID()
	req := createdRequest(t, tenantID)
	o := confirmedOrder(t, tenantID, req.ID(), now)

	eta := now.Add(36 * time.Hour)
	require.NoError(t, o.StartProcessing("TRK-EXISTING", eta))

	uow := NewMockUoW()
	factory := &MockUoWFactory{}
	documents := &MockDocumentGenerator{}
	notifier := &MockNotifier{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Twice(),
		uow.On("LockRequest", ctx, tenantID, req.ID()).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newProcessOrderHandler(factory, documents, notifier, now)

	command, err := commands.NewProcessOrderCommand(tenantID, o.ID())
	require.NoError(t, err)

	result, err := handler.Handle(ctx, command)

	require.NoError(t, err)
	assert.True(t, result.AlreadyProcessed)
	assert.Equal(t, "TRK-EXISTING", result.TrackingNumber)
	assert.Equal(t, eta, result.EstimatedDelivery)

	uow.AssertNotCalled(t, "Commit", mock.Anything)
	documents.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectationsForAll(t)
}

func TestProcessOrderCommandHandler_Handle_ConfirmationFailureDoesNotBlock(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)

	tenantID := kernel.NewUUID()
	req := createdRequest(t, tenantID)
	o := confirmedOrder(t, tenantID, req.ID(), now)

	uow := NewMockUoW()
	factory := &MockUoWFactory{}
	documents := &MockDocumentGenerator{}
	notifier := &MockNotifier{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Twice(),
		uow.On("LockRequest", ctx, tenantID, req.ID()).Return(nil).Once(),
		uow.requests.On("Get", ctx, tenantID, req.ID()).Return(req, nil).Once(),
		documents.On("Generate", mock.Anything, order.DocumentKindOrderConfirmation, o).
			Return(ports.DocumentReference(""), assert.AnError).Once(),
		uow.orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", mock.Anything, mock.Anything, ports.TemplateOrderProcessing, mock.Anything).
			Return(ports.DeliveryReceipt{MessageID: "m", SentAt: now}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newProcessOrderHandler(factory, documents, notifier, now)

	command, err := commands.NewProcessOrderCommand(tenantID, o.ID())
	require.NoError(t, err)

	result, err := handler.Handle(ctx, command)

	require.NoError(t, err)
	assert.Equal(t, order.Processing, o.Status())
	assert.Empty(t, o.Documents())
	require.Len(t, result.FailedSideEffects, 1)
	assert.Contains(t, result.FailedSideEffects[0], "generate order confirmation")

	uow.AssertExpectationsForAll(t)
}
