// Package quoterepo persists TransportQuote aggregates.
package quoterepo

import (
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/quote"

	"github.com/google/uuid"
)

// QuoteDTO is the database representation of a transport quote.
type QuoteDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	TenderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null"`

	PriceAmount   float64 `gorm:"type:numeric;not null"`
	PriceCurrency string  `gorm:"type:varchar(3);not null"`
	TransitHours  int     `gorm:"type:int;not null"`

	SubmittedAt time.Time `gorm:"not null"`
	Status      int       `gorm:"type:int;not null"`
}

// TableName overrides GORM's default naming to use "quotes".
func (QuoteDTO) TableName() string {
	return "quotes"
}

func fromDomain(aggregate *quote.TransportQuote) QuoteDTO {
	return QuoteDTO{
		ID:            aggregate.ID().Bytes(),
		TenantID:      aggregate.TenantID().Bytes(),
		TenderID:      aggregate.TenderID().Bytes(),
		RequestID:     aggregate.RequestID().Bytes(),
		SupplierID:    aggregate.SupplierID().Bytes(),
		PriceAmount:   aggregate.Price().Amount(),
		PriceCurrency: aggregate.Price().Currency(),
		TransitHours:  aggregate.TransitHours(),
		SubmittedAt:   aggregate.SubmittedAt(),
		Status:        int(aggregate.Status()),
	}
}

func toDomain(dto QuoteDTO) (*quote.TransportQuote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	tenderID, err := kernel.UUIDFromBytes(dto.TenderID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceAmount, dto.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return quote.RestoreTransportQuote(
		id,
		tenantID,
		tenderID,
		requestID,
		supplierID,
		price,
		dto.TransitHours,
		dto.SubmittedAt,
		quote.Status(dto.Status),
	)
}
