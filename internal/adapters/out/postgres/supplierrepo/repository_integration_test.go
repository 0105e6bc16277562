package supplierrepo_test

import (
	"context"
	"testing"
	"time"

	"freightflow/internal/adapters/out/postgres/supplierrepo"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type SupplierRepositorySuite struct {
	suite.Suite

	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *supplierrepo.GormSupplierRepository
}

func TestSupplierRepositorySuite(t *testing.T) {
	suite.Run(t, new(SupplierRepositorySuite))
}

func (s *SupplierRepositorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	s.Require().NoError(db.AutoMigrate(&supplierrepo.SupplierDTO{}))
}

func (s *SupplierRepositorySuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *SupplierRepositorySuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE TABLE suppliers").Error)
	s.repo = supplierrepo.NewGormSupplierRepository(s.db)
}

// seedSupplier writes a supplier row directly: the pipeline never creates
// suppliers, the surrounding system does.
func (s *SupplierRepositorySuite) seedSupplier(tenantID kernel.UUID, name string, active, portal bool) uuid.UUID {
	id := uuid.New()
	dto := supplierrepo.SupplierDTO{
		ID:                  id,
		TenantID:            tenantID.Bytes(),
		Name:                name,
		Rating:              4.2,
		ReliabilityScore:    0.85,
		ResponseTimeMinutes: 45,
		AIPerformanceScore:  0.7,
		TransportTypes:      pq.StringArray{"PALLET", "CONTAINER"},
		Active:              active,
		PortalAccess:        portal,
	}
	s.Require().NoError(s.db.Create(&dto).Error)
	return id
}

func (s *SupplierRepositorySuite) TestGet_RoundTrip() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	rawID := s.seedSupplier(tenantID, "Nordfracht GmbH", true, true)

	id, err := kernel.UUIDFromBytes(rawID[:])
	s.Require().NoError(err)

	loaded, err := s.repo.Get(ctx, tenantID, id)
	s.Require().NoError(err)

	s.Equal("Nordfracht GmbH", loaded.Name())
	s.InDelta(4.2, loaded.Profile().Rating, 1e-9)
	s.InDelta(0.85, loaded.Profile().ReliabilityScore, 1e-9)
	s.Equal(45, loaded.Profile().ResponseTimeMinutes)
	s.InDelta(0.7, loaded.Profile().AIPerformanceScore, 1e-9)
	s.Equal([]kernel.TransportType{kernel.TransportTypePallet, kernel.TransportTypeContainer}, loaded.TransportTypes())
	s.True(loaded.IsEligible())
}

func (s *SupplierRepositorySuite) TestGet_IsTenantScoped() {
	ctx := context.Background()
	rawID := s.seedSupplier(kernel.NewUUID(), "Nordfracht GmbH", true, true)

	id, err := kernel.UUIDFromBytes(rawID[:])
	s.Require().NoError(err)

	_, err = s.repo.Get(ctx, kernel.NewUUID(), id)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *SupplierRepositorySuite) TestGetAllEligible_FiltersAndOrders() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()

	first := s.seedSupplier(tenantID, "Alpha Cargo", true, true)
	second := s.seedSupplier(tenantID, "Beta Logistics", true, true)
	s.seedSupplier(tenantID, "Inactive Haulage", false, true)
	s.seedSupplier(tenantID, "No Portal Freight", true, false)
	s.seedSupplier(kernel.NewUUID(), "Other Tenant Trans", true, true)

	eligible, err := s.repo.GetAllEligible(ctx, tenantID)
	s.Require().NoError(err)

	s.Require().Len(eligible, 2)
	for _, sup := range eligible {
		s.True(sup.IsEligible())
	}

	got := []string{eligible[0].ID().String(), eligible[1].ID().String()}
	want := []string{first.String(), second.String()}
	if want[0] > want[1] {
		want[0], want[1] = want[1], want[0]
	}
	s.Equal(want, got)
}

func (s *SupplierRepositorySuite) TestGetAllEligible_Empty() {
	eligible, err := s.repo.GetAllEligible(context.Background(), kernel.NewUUID())
	s.Require().NoError(err)
	s.Empty(eligible)
}
