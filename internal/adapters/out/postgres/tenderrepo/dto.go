// Package tenderrepo persists TenderRequest aggregates, including the frozen
// requirements snapshot and the fixed invited supplier list.
package tenderrepo

import (
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/core/domain/model/tender"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TenderDTO is the database representation of a tender request.
type TenderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index"`

	Cargo CargoDTO `gorm:"embedded;embeddedPrefix:cargo_"`
	Route RouteDTO `gorm:"embedded;embeddedPrefix:route_"`

	WeightPrice       float64 `gorm:"type:numeric;not null"`
	WeightSpeed       float64 `gorm:"type:numeric;not null"`
	WeightReliability float64 `gorm:"type:numeric;not null"`

	InvitedSupplierIDs pq.StringArray `gorm:"type:text[];not null"`

	Deadline        time.Time `gorm:"not null"`
	EvaluationUntil time.Time `gorm:"not null"`
	ReminderAt      time.Time `gorm:"not null"`
	Reminded        bool      `gorm:"type:boolean;not null"`

	Status    int       `gorm:"type:int;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "tenders".
func (TenderDTO) TableName() string {
	return "tenders"
}

// CargoDTO holds the embedded frozen cargo snapshot columns.
type CargoDTO struct {
	Type         string  `gorm:"type:varchar(32);not null"`
	WeightKg     float64 `gorm:"type:numeric;not null"`
	VolumeM3     float64 `gorm:"type:numeric;not null"`
	Hazardous    bool    `gorm:"type:boolean;not null"`
	Instructions string  `gorm:"type:text;not null;default:''"`
}

// RouteDTO holds the embedded frozen route snapshot columns.
type RouteDTO struct {
	PickupAddress   string    `gorm:"type:text;not null"`
	DeliveryAddress string    `gorm:"type:text;not null"`
	PickupDate      time.Time `gorm:"not null"`
	DeliveryDate    time.Time `gorm:"not null"`
}

func fromDomain(aggregate *tender.TenderRequest) TenderDTO {
	invited := make(pq.StringArray, 0, len(aggregate.InvitedSuppliers()))
	for _, id := range aggregate.InvitedSuppliers() {
		invited = append(invited, id.String())
	}

	requirements := aggregate.Requirements()

	return TenderDTO{
		ID:        aggregate.ID().Bytes(),
		TenantID:  aggregate.TenantID().Bytes(),
		RequestID: aggregate.RequestID().Bytes(),
		Cargo: CargoDTO{
			Type:         string(requirements.Cargo.Type),
			WeightKg:     requirements.Cargo.WeightKg,
			VolumeM3:     requirements.Cargo.VolumeM3,
			Hazardous:    requirements.Cargo.Hazardous,
			Instructions: requirements.Cargo.Instructions,
		},
		Route: RouteDTO{
			PickupAddress:   requirements.Route.PickupAddress,
			DeliveryAddress: requirements.Route.DeliveryAddress,
			PickupDate:      requirements.Route.PickupDate,
			DeliveryDate:    requirements.Route.DeliveryDate,
		},
		WeightPrice:        aggregate.Weights().Price(),
		WeightSpeed:        aggregate.Weights().Speed(),
		WeightReliability:  aggregate.Weights().Reliability(),
		InvitedSupplierIDs: invited,
		Deadline:           aggregate.Deadline(),
		EvaluationUntil:    aggregate.EvaluationUntil(),
		ReminderAt:         aggregate.ReminderAt(),
		Reminded:           aggregate.WasReminded(),
		Status:             int(aggregate.Status()),
		CreatedAt:          aggregate.CreatedAt(),
	}
}

func toDomain(dto TenderDTO) (*tender.TenderRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}

	weights, err := tender.NewCriteriaWeights(dto.WeightPrice, dto.WeightSpeed, dto.WeightReliability)
	if err != nil {
		return nil, err
	}

	invited := make([]kernel.UUID, 0, len(dto.InvitedSupplierIDs))
	for _, raw := range dto.InvitedSupplierIDs {
		supplierID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		invited = append(invited, supplierID)
	}

	return tender.RestoreTenderRequest(
		id,
		tenantID,
		requestID,
		tender.Requirements{
			Cargo: request.Cargo{
				Type:         kernel.TransportType(dto.Cargo.Type),
				WeightKg:     dto.Cargo.WeightKg,
				VolumeM3:     dto.Cargo.VolumeM3,
				Hazardous:    dto.Cargo.Hazardous,
				Instructions: dto.Cargo.Instructions,
			},
			Route: request.Route{
				PickupAddress:   dto.Route.PickupAddress,
				DeliveryAddress: dto.Route.DeliveryAddress,
				PickupDate:      dto.Route.PickupDate,
				DeliveryDate:    dto.Route.DeliveryDate,
			},
		},
		weights,
		invited,
		dto.Deadline,
		dto.EvaluationUntil,
		dto.ReminderAt,
		dto.Reminded,
		tender.Status(dto.Status),
		dto.CreatedAt,
	)
}
