package commands_test

import (
	"context"
	"time"

	"freightflow/internal/core/application/usecases/commands"
	"freightflow/internal/core/domain/model/comparison"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/order"
	"freightflow/internal/core/domain/model/quote"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/core/domain/model/supplier"
	"freightflow/internal/core/domain/model/tender"
	"freightflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Add(ctx context.Context, aggregate *request.TransportRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, aggregate *request.TransportRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*request.TransportRequest, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.TransportRequest), args.Error(1)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*supplier.LogisticsSupplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.LogisticsSupplier), args.Error(1)
}

func (m *MockSupplierRepository) GetAllEligible(ctx context.Context, tenantID kernel.UUID) ([]*supplier.LogisticsSupplier, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*supplier.LogisticsSupplier), args.Error(1)
}

type MockTenderRepository struct {
	mock.Mock
}

func (m *MockTenderRepository) Add(ctx context.Context, aggregate *tender.TenderRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTenderRepository) Update(ctx context.Context, aggregate *tender.TenderRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTenderRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*tender.TenderRequest, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tender.TenderRequest), args.Error(1)
}

func (m *MockTenderRepository) GetActiveByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) (*tender.TenderRequest, error) {
	args := m.Called(ctx, tenantID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tender.TenderRequest), args.Error(1)
}

func (m *MockTenderRepository) GetActivePastDeadline(ctx context.Context, now time.Time) ([]*tender.TenderRequest, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tender.TenderRequest), args.Error(1)
}

func (m *MockTenderRepository) GetActiveDueForReminder(ctx context.Context, now time.Time) ([]*tender.TenderRequest, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tender.TenderRequest), args.Error(1)
}

type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Add(ctx context.Context, aggregate *quote.TransportQuote) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockQuoteRepository) Update(ctx context.Context, aggregate *quote.TransportQuote) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockQuoteRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*quote.TransportQuote, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.TransportQuote), args.Error(1)
}

func (m *MockQuoteRepository) GetSubmittedByTender(ctx context.Context, tenantID kernel.UUID, tenderID kernel.UUID) ([]*quote.TransportQuote, error) {
	args := m.Called(ctx, tenantID, tenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*quote.TransportQuote), args.Error(1)
}

func (m *MockQuoteRepository) GetByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) ([]*quote.TransportQuote, error) {
	args := m.Called(ctx, tenantID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*quote.TransportQuote), args.Error(1)
}

type MockComparisonRepository struct {
	mock.Mock
}

func (m *MockComparisonRepository) Add(ctx context.Context, aggregate *comparison.QuotationComparison) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockComparisonRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*comparison.QuotationComparison, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comparison.QuotationComparison), args.Error(1)
}

func (m *MockComparisonRepository) GetLatestByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) (*comparison.QuotationComparison, error) {
	args := m.Called(ctx, tenantID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comparison.QuotationComparison), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.TransportOrder) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.TransportOrder) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*order.TransportOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.TransportOrder), args.Error(1)
}

func (m *MockOrderRepository) GetByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) (*order.TransportOrder, error) {
	args := m.Called(ctx, tenantID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.TransportOrder), args.Error(1)
}

// MockUoW is the unit-of-work test double. The repository accessors are not
// part of the ordered expectations because handlers call them at arbitrary
// points; only the transaction lifecycle and the lock are order-sensitive.
type MockUoW struct {
	mock.Mock

	requests    *MockRequestRepository
	suppliers   *MockSupplierRepository
	tenders     *MockTenderRepository
	quotes      *MockQuoteRepository
	comparisons *MockComparisonRepository
	orders      *MockOrderRepository
}

func NewMockUoW() *MockUoW {
	return &MockUoW{
		requests:    &MockRequestRepository{},
		suppliers:   &MockSupplierRepository{},
		tenders:     &MockTenderRepository{},
		quotes:      &MockQuoteRepository{},
		comparisons: &MockComparisonRepository{},
		orders:      &MockOrderRepository{},
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) LockRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) error {
	args := m.Called(ctx, tenantID, requestID)
	return args.Error(0)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	return m.requests
}

func (m *MockUoW) SupplierRepository() ports.SupplierRepository {
	return m.suppliers
}

func (m *MockUoW) TenderRepository() ports.TenderRepository {
	return m.tenders
}

func (m *MockUoW) QuoteRepository() ports.QuoteRepository {
	return m.quotes
}

func (m *MockUoW) ComparisonRepository() ports.ComparisonRepository {
	return m.comparisons
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.orders
}

func (m *MockUoW) AssertExpectationsForAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.requests.AssertExpectations(t)
	m.suppliers.AssertExpectations(t)
	m.tenders.AssertExpectations(t)
	m.quotes.AssertExpectations(t)
	m.comparisons.AssertExpectations(t)
	m.orders.AssertExpectations(t)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, audience ports.Audience, template string, payload map[string]any) (ports.DeliveryReceipt, error) {
	args := m.Called(ctx, audience, template, payload)
	return args.Get(0).(ports.DeliveryReceipt), args.Error(1)
}

type MockDocumentGenerator struct {
	mock.Mock
}

func (m *MockDocumentGenerator) Generate(ctx context.Context, kind order.DocumentKind, o *order.TransportOrder) (ports.DocumentReference, error) {
	args := m.Called(ctx, kind, o)
	return args.Get(0).(ports.DocumentReference), args.Error(1)
}

// fixedClock pins time for deterministic deadline and idempotency assertions.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
