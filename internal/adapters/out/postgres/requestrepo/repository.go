package requestrepo

import (
	"context"
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRequestRepository implements ports.RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRequestRepository creates a new GORM transport request repository.
func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new transport request to the database.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.TransportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing request, guarded by its optimistic version token.
// The update applies only when the stored version still matches the loaded
// one; a mismatch means another stage committed in between and surfaces as
// errs.ErrVersionIsInvalid so the caller can retry on fresh state.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.TransportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?", dto.ID, dto.TenantID, dto.Version).
		Updates(map[string]any{
			"status":               dto.Status,
			"recommended_quote_id": dto.RecommendedQuoteID,
			"recommendation_note":  dto.RecommendationNote,
			"version":              dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("request version")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a request by tenant and ID. A request owned by another tenant
// is reported as not found.
func (r *GormRequestRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*request.TransportRequest, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID.Bytes(), id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("request", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}
