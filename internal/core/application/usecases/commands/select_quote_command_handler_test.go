package commands_test

import (
	"testing"
	"time"

	"freightflow/internal/core/application/usecases/commands"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/quote"
	"freightflow/internal/core/domain/model/tender"
	"freightflow/internal/core/domain/services"
	"freightflow/internal/core/ports"
	"freightflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSelectQuoteHandler(t *testing.T, factory *MockUoWFactory, notifier *MockNotifier, now time.Time) commands.SelectQuoteCommandHandler {
	t.Helper()

	gate, err := services.NewDecisionGate(0.9, 0.10)
	require.NoError(t, err)

	return commands.NewSelectQuoteCommandHandler(factory, gate, notifier, fixedClock{now: now}, commands.DefaultWorkflowPolicy())
}

func TestSelectQuoteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 4, 11, 0, 0, 0, time.UTC)

	tenantID := kernel.NewUUID()
	req := createdRequest(t, tenantID)
	tr := activeTender(t, req, now)

	chosen := submittedQuote(t, tr, kernel.NewUUID(), 1100, 48, now.Add(-2*time.Hour))
	other := submittedQuote(t, tr, kernel.NewUUID(), 900, 36, now.Add(-time.Hour))
	all := []*quote.TransportQuote{chosen, other}

	uow := NewMockUoW()
	factory := &MockUoWFactory{}
	notifier := &MockNotifier{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LockRequest", ctx, tenantID, req.ID()).Return(nil).Once(),
		uow.quotes.On("GetByRequest", ctx, tenantID, req.ID()).Return(all, nil).Once(),
		uow.orders.On("Add", ctx, mock.AnythingOfType("*order.TransportOrder")).Return(nil).Once(),
		uow.quotes.On("Update", ctx, chosen).Return(nil).Once(),
		uow.quotes.On("Update", ctx, other).Return(nil).Once(),
		uow.tenders.On("GetActiveByRequest", ctx, tenantID, req.ID()).Return(tr, nil).Once(),
		uow.tenders.On("Update", ctx, tr).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", mock.Anything, mock.Anything, ports.TemplateOrderConfirmed, mock.Anything).
			Return(ports.DeliveryReceipt{MessageID: "m", SentAt: now}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newSelectQuoteHandler(t, factory, notifier, now)

	command, err := commands.NewSelectQuoteCommand(tenantID, req.ID(), chosen.ID())
	require.NoError(t, err)

	result, err := handler.Handle(ctx, command)

	require.NoError(t, err)
	assert.Equal(t, 1, result.QuotesRejected)
	assert.Empty(t, result.FailedSideEffects)

	// Manual override selects the chosen quote even though a cheaper one exists
	assert.Equal(t, quote.Selected, chosen.Status())
	assert.Equal(t, quote.Rejected, other.Status())
	assert.Equal(t, tender.Closed, tr.Status())

	uow.AssertExpectationsForAll(t)
	notifier.AssertExpectations(t)
}

func TestSelectQuoteCommandHandler_Handle_TenderAlreadyClosed(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 4, 11, 0, 0, 0, time.UTC)

	tenantID := kernel.NewUUID()
	req := createdRequest(t, tenantID)
	tr := activeTender(t, req, now)

	chosen := submittedQuote(t, tr, kernel.NewUUID(), 1100, 48, now.Add(-2*time.Hour))

	uow := NewMockUoW()
	factory := &MockUoWFactory{}
	notifier := &MockNotifier{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LockRequest", ctx, tenantID, req.ID()).Return(nil).Once(),
		uow.quotes.On("GetByRequest", ctx, tenantID, req.ID()).Return([]*quote.TransportQuote{chosen}, nil).Once(),
		uow.orders.On("Add", ctx, mock.AnythingOfType("*order.TransportOrder")).Return(nil).Once(),
		uow.quotes.On("Update", ctx, chosen).Return(nil).Once(),
		uow.tenders.On("GetActiveByRequest", ctx, tenantID, req.ID()).
			Return(nil, errs.NewObjectNotFoundError("tender", req.ID())).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", mock.Anything, mock.Anything, ports.TemplateOrderConfirmed, mock.Anything).
			Return(ports.DeliveryReceipt{MessageID: "m", SentAt: now}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newSelectQuoteHandler(t, factory, notifier, now)

	command, err := commands.NewSelectQuoteCommand(tenantID, req.ID(), chosen.ID())
	require.NoError(t, err)

	result, err := handler.Handle(ctx, command)

	require.NoError(t, err)
	assert.Zero(t, result.QuotesRejected)
	assert.Equal(t, quote.Selected, chosen.Status())

	uow.AssertExpectationsForAll(t)
}

func TestSelectQuoteCommandHandler_Handle_ConflictingSelection(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 4, 11, 0, 0, 0, time.UTC)

	tenantID := kernel.NewUUID()
	req := createdRequest(t, tenantID)
	tr := activeTender(t, req, now)

	chosen := submittedQuote(t, tr, kernel.NewUUID(), 1100, 48, now.Add(-2*time.Hour))
	alreadySelected := submittedQuote(t, tr, kernel.NewUUID(), 900, 36, now.Add(-time.Hour))
	require.NoError(t, alreadySelected.Select())

	uow := NewMockUoW()
	factory := &MockUoWFactory{}
	notifier := &MockNotifier{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LockRequest", ctx, tenantID, req.ID()).Return(nil).Once(),
		uow.quotes.On("GetByRequest", ctx, tenantID, req.ID()).
			Return([]*quote.TransportQuote{chosen, alreadySelected}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newSelectQuoteHandler(t, factory, notifier, now)

	command, err := commands.NewSelectQuoteCommand(tenantID, req.ID(), chosen.ID())
	require.NoError(t, err)

	_, err = handler.Handle(ctx, command)

	require.ErrorIs(t, err, services.ErrQuoteAlreadySelected)
	assert.Equal(t, quote.Submitted, chosen.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectationsForAll(t)
}

func TestSelectQuoteCommandHandler_Handle_QuoteNotFound(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 4, 11, 0, 0, 0, time.UTC)

	tenantID := kernel.NewUUID()
	req := createdRequest(t, tenantID)
	tr := activeTender(t, req, now)

	other := submittedQuote(t, tr, kernel.NewUUID(), 900, 36, now.Add(-time.Hour))

	uow := NewMockUoW()
	factory := &MockUoWFactory{}
	notifier := &MockNotifier{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LockRequest", ctx, tenantID, req.ID()).Return(nil).Once(),
		uow.quotes.On("GetByRequest", ctx, tenantID, req.ID()).Return([]*quote.TransportQuote{other}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := newSelectQuoteHandler(t, factory, notifier, now)

	command, err := commands.NewSelectQuoteCommand(tenantID, req.ID(), kernel.NewUUID())
	require.NoError(t, err)

	_, err = handler.Handle(ctx, command)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectationsForAll(t)
}
