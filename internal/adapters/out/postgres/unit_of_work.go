// Package postgres provides the GORM-based Unit of Work implementation that
// backs every pipeline stage: one transaction per stage, repositories bound
// to that transaction, and the per-request row lock that makes stage
// transitions linearizable per transport request.
package postgres

import (
	"context"
	"errors"

	"freightflow/internal/adapters/out/postgres/comparisonrepo"
	"freightflow/internal/adapters/out/postgres/orderrepo"
	"freightflow/internal/adapters/out/postgres/quoterepo"
	"freightflow/internal/adapters/out/postgres/requestrepo"
	"freightflow/internal/adapters/out/postgres/supplierrepo"
	"freightflow/internal/adapters/out/postgres/tenderrepo"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/ports"
	"freightflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each stage invocation gets a fresh unit of work, isolating
// concurrent stage executions from one another.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one stage's transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one stage's database transaction across the
// pipeline's repositories and exposes the per-request lock.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Multiple calls on the same
// instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// LockRequest takes the per-request mutual exclusion lock: a SELECT ... FOR
// UPDATE on the request row inside the current transaction. The lock is held
// until commit or rollback, so two concurrent stage handlers for the same
// request serialize here and the second one always observes the first one's
// committed state.
//
// Returns errs.ErrObjectNotFound if the request does not exist for the
// tenant.
func (uow *GormUnitOfWork) LockRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := tenantID.Validate(); err != nil {
		return err
	}

	if err := requestID.Validate(); err != nil {
		return err
	}

	var locked requestrepo.RequestDTO
	err := uow.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("id").
		Take(&locked, "tenant_id = ? AND id = ?", tenantID.Bytes(), requestID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("request", requestID.String())
	}

	return err
}

// RequestRepository returns a RequestRepository bound to the current transaction.
func (uow *GormUnitOfWork) RequestRepository() ports.RequestRepository {
	return requestrepo.NewGormRequestRepository(uow.conn(), uow)
}

// SupplierRepository returns a SupplierRepository bound to the current transaction.
func (uow *GormUnitOfWork) SupplierRepository() ports.SupplierRepository {
	return supplierrepo.NewGormSupplierRepository(uow.conn())
}

// TenderRepository returns a TenderRepository bound to the current transaction.
func (uow *GormUnitOfWork) TenderRepository() ports.TenderRepository {
	return tenderrepo.NewGormTenderRepository(uow.conn(), uow)
}

// QuoteRepository returns a QuoteRepository bound to the current transaction.
func (uow *GormUnitOfWork) QuoteRepository() ports.QuoteRepository {
	return quoterepo.NewGormQuoteRepository(uow.conn(), uow)
}

// ComparisonRepository returns a ComparisonRepository bound to the current transaction.
func (uow *GormUnitOfWork) ComparisonRepository() ports.ComparisonRepository {
	return comparisonrepo.NewGormComparisonRepository(uow.conn(), uow)
}

// OrderRepository returns an OrderRepository bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by repository implementations on every add or update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
