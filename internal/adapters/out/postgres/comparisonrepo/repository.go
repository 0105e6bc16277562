package comparisonrepo

import (
	"context"
	"errors"

	"freightflow/internal/core/domain/model/comparison"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormComparisonRepository implements ports.ComparisonRepository using GORM.
// There is no Update: comparison records are immutable.
type GormComparisonRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormComparisonRepository creates a new GORM comparison repository.
func NewGormComparisonRepository(db *gorm.DB, tracker aggregateTracker) *GormComparisonRepository {
	return &GormComparisonRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new comparison record to the database.
func (r *GormComparisonRepository) Add(ctx context.Context, aggregate *comparison.QuotationComparison) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a comparison by tenant and ID.
func (r *GormComparisonRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*comparison.QuotationComparison, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ComparisonDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID.Bytes(), id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("comparison", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetLatestByRequest retrieves the most recent comparison for a request.
func (r *GormComparisonRepository) GetLatestByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) (*comparison.QuotationComparison, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dto ComparisonDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND request_id = ?", tenantID.Bytes(), requestID.Bytes()).
		Order("created_at DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("comparison for request", requestID.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}
