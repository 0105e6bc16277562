// Package requestrepo persists TransportRequest aggregates, including the
// optimistic concurrency version that protects request status updates.
package requestrepo

import (
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// RequestDTO is the database representation of a transport request.
type RequestDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`

	Cargo CargoDTO `gorm:"embedded;embeddedPrefix:cargo_"`
	Route RouteDTO `gorm:"embedded;embeddedPrefix:route_"`

	Status             int        `gorm:"type:int;not null"`
	RecommendedQuoteID *uuid.UUID `gorm:"type:uuid"`
	RecommendationNote string     `gorm:"type:text;not null;default:''"`

	// Version is the optimistic concurrency token; every update must match
	// the loaded version and bumps it by one.
	Version int `gorm:"type:int;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides GORM's default naming to use "requests".
func (RequestDTO) TableName() string {
	return "requests"
}

// CargoDTO holds the embedded cargo columns of the request row.
type CargoDTO struct {
	Type         string  `gorm:"type:varchar(32);not null"`
	WeightKg     float64 `gorm:"type:numeric;not null"`
	VolumeM3     float64 `gorm:"type:numeric;not null"`
	Hazardous    bool    `gorm:"type:boolean;not null"`
	Instructions string  `gorm:"type:text;not null;default:''"`
}

// RouteDTO holds the embedded route columns of the request row.
type RouteDTO struct {
	PickupAddress   string    `gorm:"type:text;not null"`
	DeliveryAddress string    `gorm:"type:text;not null"`
	PickupDate      time.Time `gorm:"not null"`
	DeliveryDate    time.Time `gorm:"not null"`
}

func fromDomain(aggregate *request.TransportRequest) RequestDTO {
	var recommendedQuoteID *uuid.UUID
	if aggregate.RecommendedQuote() != nil {
		raw := aggregate.RecommendedQuote().Bytes()
		recommendedQuoteID = &raw
	}

	return RequestDTO{
		ID:       aggregate.ID().Bytes(),
		TenantID: aggregate.TenantID().Bytes(),
		Cargo: CargoDTO{
			Type:         string(aggregate.Cargo().Type),
			WeightKg:     aggregate.Cargo().WeightKg,
			VolumeM3:     aggregate.Cargo().VolumeM3,
			Hazardous:    aggregate.Cargo().Hazardous,
			Instructions: aggregate.Cargo().Instructions,
		},
		Route: RouteDTO{
			PickupAddress:   aggregate.Route().PickupAddress,
			DeliveryAddress: aggregate.Route().DeliveryAddress,
			PickupDate:      aggregate.Route().PickupDate,
			DeliveryDate:    aggregate.Route().DeliveryDate,
		},
		Status:             int(aggregate.Status()),
		RecommendedQuoteID: recommendedQuoteID,
		RecommendationNote: aggregate.RecommendationNote(),
		Version:            aggregate.Version(),
	}
}

func toDomain(dto RequestDTO) (*request.TransportRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	var recommendedQuoteID *kernel.UUID
	if dto.RecommendedQuoteID != nil {
		quoteID, quoteErr := kernel.UUIDFromBytes((*dto.RecommendedQuoteID)[:])
		if quoteErr != nil {
			return nil, quoteErr
		}
		recommendedQuoteID = &quoteID
	}

	return request.RestoreTransportRequest(
		id,
		tenantID,
		request.Cargo{
			Type:         kernel.TransportType(dto.Cargo.Type),
			WeightKg:     dto.Cargo.WeightKg,
			VolumeM3:     dto.Cargo.VolumeM3,
			Hazardous:    dto.Cargo.Hazardous,
			Instructions: dto.Cargo.Instructions,
		},
		request.Route{
			PickupAddress:   dto.Route.PickupAddress,
			DeliveryAddress: dto.Route.DeliveryAddress,
			PickupDate:      dto.Route.PickupDate,
			DeliveryDate:    dto.Route.DeliveryDate,
		},
		request.Status(dto.Status),
		recommendedQuoteID,
		dto.RecommendationNote,
		dto.Version,
	)
}
