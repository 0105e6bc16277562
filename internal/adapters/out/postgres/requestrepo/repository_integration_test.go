package requestrepo_test

import (
	"context"
	"testing"
	"time"

	"freightflow/internal/adapters/out/postgres/requestrepo"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type RequestRepositorySuite struct {
	suite.Suite

	container *postgres.PostgresContainer
	db        *gorm.DB
	tracker   *MockAggregateTracker
	repo      *requestrepo.GormRequestRepository
}

func TestRequestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RequestRepositorySuite))
}

func (s *RequestRepositorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(db.AutoMigrate(&requestrepo.RequestDTO{}))
}

func (s *RequestRepositorySuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *RequestRepositorySuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE TABLE requests").Error)

	s.tracker = &MockAggregateTracker{}
	s.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	s.repo = requestrepo.NewGormRequestRepository(s.db, s.tracker)
}

func (s *RequestRepositorySuite) newRequest(tenantID kernel.UUID) *request.TransportRequest {
	pickup := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	req, err := request.NewTransportRequest(
		kernel.NewUUID(), tenantID,
		request.Cargo{Type: kernel.TransportTypeContainer, WeightKg: 8000, VolumeM3: 40, Hazardous: true, Instructions: "keep upright"},
		request.Route{
			PickupAddress:   "Terminal 2, Hamburg",
			DeliveryAddress: "Zona Franca, Barcelona",
			PickupDate:      pickup,
			DeliveryDate:    pickup.Add(72 * time.Hour),
		},
	)
	s.Require().NoError(err)
	return req
}

func (s *RequestRepositorySuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	req := s.newRequest(tenantID)

	s.Require().NoError(s.repo.Add(ctx, req))

	loaded, err := s.repo.Get(ctx, tenantID, req.ID())
	s.Require().NoError(err)

	s.True(loaded.IsEqual(req))
	s.Equal(request.Created, loaded.Status())
	s.Equal(req.Cargo().Type, loaded.Cargo().Type)
	s.InDelta(req.Cargo().WeightKg, loaded.Cargo().WeightKg, 1e-9)
	s.True(loaded.Cargo().Hazardous)
	s.Equal("keep upright", loaded.Cargo().Instructions)
	s.Equal(req.Route().PickupAddress, loaded.Route().PickupAddress)
	s.WithinDuration(req.Route().DeliveryDate, loaded.Route().DeliveryDate, time.Second)
	s.Nil(loaded.RecommendedQuote())
	s.Equal(0, loaded.Version())
}

func (s *RequestRepositorySuite) TestUpdate_PersistsStateAndBumpsVersion() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	req := s.newRequest(tenantID)
	s.Require().NoError(s.repo.Add(ctx, req))

	loaded, err := s.repo.Get(ctx, tenantID, req.ID())
	s.Require().NoError(err)

	quoteID := kernel.NewUUID()
	s.Require().NoError(loaded.MarkQuoted())
	s.Require().NoError(loaded.AnnotateRecommendation(quoteID, "best value"))
	s.Require().NoError(s.repo.Update(ctx, loaded))

	reloaded, err := s.repo.Get(ctx, tenantID, req.ID())
	s.Require().NoError(err)

	s.Equal(request.Quoted, reloaded.Status())
	s.Require().NotNil(reloaded.RecommendedQuote())
	s.Equal(quoteID, *reloaded.RecommendedQuote())
	s.Equal("best value", reloaded.RecommendationNote())
	s.Equal(1, reloaded.Version())
}

func (s *RequestRepositorySuite) TestUpdate_StaleVersionIsRejected() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	req := s.newRequest(tenantID)
	s.Require().NoError(s.repo.Add(ctx, req))

	// Two stages load the same version concurrently
	first, err := s.repo.Get(ctx, tenantID, req.ID())
	s.Require().NoError(err)
	second, err := s.repo.Get(ctx, tenantID, req.ID())
	s.Require().NoError(err)

	s.Require().NoError(first.MarkQuoted())
	s.Require().NoError(s.repo.Update(ctx, first))

	s.Require().NoError(second.MarkQuoted())
	err = s.repo.Update(ctx, second)

	s.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	// The race loser's write left no trace
	reloaded, err := s.repo.Get(ctx, tenantID, req.ID())
	s.Require().NoError(err)
	s.Equal(1, reloaded.Version())
}

func (s *RequestRepositorySuite) TestGet_IsTenantScoped() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	req := s.newRequest(tenantID)
	s.Require().NoError(s.repo.Add(ctx, req))

	_, err := s.repo.Get(ctx, kernel.NewUUID(), req.ID())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *RequestRepositorySuite) TestGet_NotFound() {
	_, err := s.repo.Get(context.Background(), kernel.NewUUID(), kernel.NewUUID())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
