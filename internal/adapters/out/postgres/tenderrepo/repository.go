package tenderrepo

import (
	"context"
	"errors"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/tender"
	"freightflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTenderRepository implements ports.TenderRepository using GORM.
type GormTenderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTenderRepository creates a new GORM tender repository.
func NewGormTenderRepository(db *gorm.DB, tracker aggregateTracker) *GormTenderRepository {
	return &GormTenderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tender to the database.
func (r *GormTenderRepository) Add(ctx context.Context, aggregate *tender.TenderRequest) error {
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

// Update saves an existing tender to the database.
func (r *GormTenderRepository) Update(ctx context.Context, aggregate *tender.TenderRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

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

// Get retrieves a tender by tenant and ID.
func (r *GormTenderRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*tender.TenderRequest, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TenderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID.Bytes(), id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("tender", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByRequest retrieves the request's active tender. There is at most
// one: tender issuance is idempotent per request and closing is final.
func (r *GormTenderRepository) GetActiveByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) (*tender.TenderRequest, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dto TenderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND request_id = ? AND status = ?",
			tenantID.Bytes(), requestID.Bytes(), int(tender.Active)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("active tender for request", requestID.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetActivePastDeadline retrieves all active tenders whose bid deadline has
// passed, across tenants. Used by the background evaluation job.
func (r *GormTenderRepository) GetActivePastDeadline(ctx context.Context, now time.Time) ([]*tender.TenderRequest, error) {
	var dtos []TenderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND deadline < ?", int(tender.Active), now).
		Order("deadline").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// GetActiveDueForReminder retrieves all active tenders whose reminder time
// has passed and whose reminder has not been sent yet.
func (r *GormTenderRepository) GetActiveDueForReminder(ctx context.Context, now time.Time) ([]*tender.TenderRequest, error) {
	var dtos []TenderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND NOT reminded AND reminder_at < ? AND deadline >= ?",
			int(tender.Active), now, now).
		Order("reminder_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func toDomainList(dtos []TenderDTO) ([]*tender.TenderRequest, error) {
	tenders := make([]*tender.TenderRequest, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, t)
	}
	return tenders, nil
}
