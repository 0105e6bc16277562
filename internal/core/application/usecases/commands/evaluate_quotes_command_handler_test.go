package commands_test

import (
	"testing"
	"time"

	"freightflow/internal/core/application/usecases/commands"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/order"
	"freightflow/internal/core/domain/model/quote"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/core/domain/model/supplier"
	"freightflow/internal/core/domain/model/tender"
	"freightflow/internal/core/domain/services"
	"freightflow/internal/core/ports"
	"freightflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeTender(t *testing.T, req *request.TransportRequest, now time.Time) *tender.TenderRequest {
	t.Helper()

	tr, err := tender.NewTenderRequest(
		kernel.NewUUID(), req, []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()},
		tender.DefaultCriteriaWeights(), now.Add(-time.Hour), 24*time.Hour, 48*time.Hour, 2*time.Hour,
	)
	require.NoError(t, err)
	return tr
}

func submittedQuote(t *testing.T, tr *tender.TenderRequest, supplierID kernel.UUID, amount float64, transitHours int, submittedAt time.Time) *quote.TransportQuote {
	t.Helper()

	price, err := kernel.NewMoney(amount, "EUR")
	require.NoError(t, err)

	q, err := quote.NewTransportQuote(
		kernel.NewUUID(), tr.TenantID(), tr.ID(), tr.RequestID(), supplierID,
		price, transitHours, submittedAt,
	)
	require.NoError(t, err)
	return q
}

func reliabilitySupplier(t *testing.T, tenantID kernel.UUID, reliability float64) *supplier.LogisticsSupplier {
	t.Helper()

	s, err := supplier.NewLogisticsSupplier(
		kernel.NewUUID(), tenantID, "Carrier",
		supplier.PerformanceProfile{Rating: 3, ReliabilityScore: reliability, ResponseTimeMinutes: 30},
		[]kernel.TransportType{kernel.TransportTypePallet}, true, true,
	)
	require.NoError(t, err)
	return s
}

func newEvaluateQuotesHandler(t *testing.T, factory *MockUoWFactory, notifier *MockNotifier, now time.Time) commands.EvaluateQuotesCommandHandler {
	t.Helper()

	gate, err := services.NewDecisionGate(0.9, 0.10)
	require.NoError(t, err)

	return commands.NewEvaluateQuotesCommandHandler(
		factory, services.NewQuoteEvaluator(), gate, notifier, fixedClock{now: now}, commands.DefaultWorkflowPolicy(),
	)
}

func TestEvaluateQuotesCommandHandler_Handle_WaitingOnZeroQuotes(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	tenantID := kernel.NewUUID()
	req := createdRequest(t, tenantID)
	tr := activeTender(t, req, now)

	uow := NewMockUoW()
	factory := &MockUoWFactory{}
	notifier := &MockNotifier{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.tenders.On("Get", ctx, tenantID, tr.ID()).Return(tr, nil).Once(),
		uow.On("LockRequest", ctx, tenantID, req.ID()).Return(nil).Once(),
		uow.quotes.On("GetByRequest", ctx, tenantID, req.ID()).Return([]*quote.TransportQuote{}, nil).Once(),
		uow.quotes.On("GetSubmittedByTender", ctx, tenantID, tr.ID()).Return([]*quote.TransportQuote{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newEvaluateQuotesHandler(t, factory, notifier, now)

	command, err := commands.NewEvaluateQuotesCommand(tenantID, tr.ID())
	require.NoError(t, err)

	result, err := handler.Handle(ctx, command)

	require.NoError(t, err)
	assert.True(t, result.Waiting)
	assert.Zero(t, result.QuotesAnalyzed)
	assert.Nil(t, result.ComparisonID)
	uow.AssertNotCalled(t, "Commit", mock.Anything)

	uow.AssertExpectationsForAll(t)
}

func TestEvaluateQuotesCommandHandler_Handle_AutoSelectsConfidentWinner(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	tenantID := kernel.NewUUID()
	req := createdRequest(t, tenantID)
	require.NoError(t, req.MarkQuoted())
	tr := activeTender(t, req, now)

	strongSupplier := reliabilitySupplier(t, tenantID, 1.0)
	weakSupplier := reliabilitySupplier(t, tenantID, 0.0)

	// The first quote dominates on every component, so the confidence is 1.0
	// and the decision gate auto-selects.
	winner := submittedQuote(t, tr, strongSupplier.ID(), 500, 24, now.Add(-30*time.Minute))
	loser := submittedQuote(t, tr, weakSupplier.ID(), 1500, 96, now.Add(-20*time.Minute))
	submitted := []*quote.TransportQuote{winner, loser}

	uow := NewMockUoW()
	factory := &MockUoWFactory{}
	notifier := &MockNotifier{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.tenders.On("Get", ctx, tenantID, tr.ID()).Return(tr, nil).Once(),
		uow.On("LockRequest", ctx, tenantID, req.ID()).Return(nil).Once(),
		uow.quotes.On("GetByRequest", ctx, tenantID, req.ID()).Return(submitted, nil).Once(),
		uow.quotes.On("GetSubmittedByTender", ctx, tenantID, tr.ID()).Return(submitted, nil).Once(),
		uow.suppliers.On("Get", ctx, tenantID, strongSupplier.ID()).Return(strongSupplier, nil).Once(),
		uow.suppliers.On("Get", ctx, tenantID, weakSupplier.ID()).Return(weakSupplier, nil).Once(),
		uow.comparisons.On("Add", ctx, mock.AnythingOfType("*comparison.QuotationComparison")).Return(nil).Once(),
		uow.requests.On("Get", ctx, tenantID, req.ID()).Return(req, nil).Once(),
		uow.orders.On("Add", ctx, mock.AnythingOfType("*order.TransportOrder")).Return(nil).Once(),
		uow.quotes.On("Update", ctx, winner).Return(nil).Once(),
		uow.quotes.On("Update", ctx, loser).Return(nil).Once(),
		uow.tenders.On("Update", ctx, tr).Return(nil).Once(),
		uow.requests.On("Update", ctx, req).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", mock.Anything, mock.Anything, ports.TemplateOrderConfirmed, mock.Anything).
			Return(ports.DeliveryReceipt{MessageID: "m1", SentAt: now}, nil).Once(),
		notifier.On("Notify", mock.Anything, mock.Anything, ports.TemplateQuoteRejected, mock.Anything).
			Return(ports.DeliveryReceipt{MessageID: "m2", SentAt: now}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newEvaluateQuotesHandler(t, factory, notifier, now)

	command, err := commands.NewEvaluateQuotesCommand(tenantID, tr.ID())
	require.NoError(t, err)

	result, err := handler.Handle(ctx, command)

	require.NoError(t, err)
	assert.Equal(t, 2, result.QuotesAnalyzed)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
	assert.True(t, result.AutoSelected)
	assert.False(t, result.AlreadyDecided)
	require.NotNil(t, result.RecommendedQuoteID)
	assert.Equal(t, winner.ID(), *result.RecommendedQuoteID)
	require.NotNil(t, result.OrderID)

	assert.Equal(t, quote.Selected, winner.Status())
	assert.Equal(t, quote.Rejected, loser.Status())
	assert.Equal(t, tender.Closed, tr.Status())
	require.NotNil(t, req.RecommendedQuote())
	assert.Equal(t, winner.ID(), *req.RecommendedQuote())

	uow.AssertExpectationsForAll(t)
	notifier.AssertExpectations(t)
}

func TestEvaluateQuotesCommandHandler_Handle_AlreadyDecided(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	tenantID := kernel.NewUUID()
	req := createdRequest(t, tenantID)
	tr := activeTender(t, req, now)

	selected := submittedQuote(t, tr, kernel.NewUUID(), 700, 36, now.Add(-time.Hour))
	require.NoError(t, selected.Select())

	price, err := kernel.NewMoney(700, "EUR")
	require.NoError(t, err)
	existingOrder, err := order.NewTransportOrder(
		kernel.NewUUID(), tenantID, req.ID(), selected.ID(), selected.SupplierID(), price, 0.10, now.Add(-time.Hour),
	)
	require.NoError(t, err)

	uow := NewMockUoW()
	factory := &MockUoWFactory{}
	notifier := &MockNotifier{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.tenders.On("Get", ctx, tenantID, tr.ID()).Return(tr, nil).Once(),
		uow.On("LockRequest", ctx, tenantID, req.ID()).Return(nil).Once(),
		uow.quotes.On("GetByRequest", ctx, tenantID, req.ID()).Return([]*quote.TransportQuote{selected}, nil).Once(),
		uow.orders.On("GetByRequest", ctx, tenantID, req.ID()).Return(existingOrder, nil).Once(),
		uow.comparisons.On("GetLatestByRequest", ctx, tenantID, req.ID()).
			Return(nil, errs.NewObjectNotFoundError("comparison", req.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newEvaluateQuotesHandler(t, factory, notifier, now)

	command, err := commands.NewEvaluateQuotesCommand(tenantID, tr.ID())
	require.NoError(t, err)

	result, err := handler.Handle(ctx, command)

	require.NoError(t, err)
	assert.True(t, result.AlreadyDecided)
	assert.True(t, result.AutoSelected)
	require.NotNil(t, result.RecommendedQuoteID)
	assert.Equal(t, selected.ID(), *result.RecommendedQuoteID)
	require.NotNil(t, result.OrderID)
	assert.Equal(t, existingOrder.ID(), *result.OrderID)
	uow.AssertNotCalled(t, "Commit", mock.Anything)

	uow.AssertExpectationsForAll(t)
}
