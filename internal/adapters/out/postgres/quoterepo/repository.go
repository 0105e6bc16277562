package quoterepo

import (
	"context"
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/quote"
	"freightflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormQuoteRepository implements ports.QuoteRepository using GORM.
type GormQuoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormQuoteRepository creates a new GORM quote repository.
func NewGormQuoteRepository(db *gorm.DB, tracker aggregateTracker) *GormQuoteRepository {
	return &GormQuoteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new quote to the database.
func (r *GormQuoteRepository) Add(ctx context.Context, aggregate *quote.TransportQuote) error {
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

// Update saves an existing quote to the database.
func (r *GormQuoteRepository) Update(ctx context.Context, aggregate *quote.TransportQuote) error {
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

// Get retrieves a quote by tenant and ID.
func (r *GormQuoteRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*quote.TransportQuote, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto QuoteDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID.Bytes(), id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("quote", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetSubmittedByTender retrieves a tender's quotes still in Submitted status,
// ordered by submission time so evaluation input is deterministic.
func (r *GormQuoteRepository) GetSubmittedByTender(ctx context.Context, tenantID kernel.UUID, tenderID kernel.UUID) ([]*quote.TransportQuote, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := tenderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []QuoteDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND tender_id = ? AND status = ?",
			tenantID.Bytes(), tenderID.Bytes(), int(quote.Submitted)).
		Order("submitted_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// GetByRequest retrieves all quotes ever submitted for a request, in any
// status.
func (r *GormQuoteRepository) GetByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) ([]*quote.TransportQuote, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dtos []QuoteDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND request_id = ?", tenantID.Bytes(), requestID.Bytes()).
		Order("submitted_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func toDomainList(dtos []QuoteDTO) ([]*quote.TransportQuote, error) {
	quotes := make([]*quote.TransportQuote, 0, len(dtos))
	for _, dto := range dtos {
		q, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
