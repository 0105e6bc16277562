package orderrepo

import (
	"context"
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/order"
	"freightflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database. A second order for the same request
// violates the unique index on request_id and fails with
// errs.ErrVersionIsInvalid, the same conflict class a losing optimistic
// update gets.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.TransportOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewVersionIsInvalidError("order for request", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.TransportOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by tenant and ID.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*order.TransportOrder, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID.Bytes(), id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetByRequest retrieves the order created for a request, if any.
func (r *GormOrderRepository) GetByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) (*order.TransportOrder, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND request_id = ?", tenantID.Bytes(), requestID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("order for request", requestID.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}
