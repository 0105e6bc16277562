// Package supplierrepo persists LogisticsSupplier entities. Suppliers are
// read-only from the pipeline's perspective; writes come from the surrounding
// system's supplier management.
package supplierrepo

import (
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/supplier"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SupplierDTO is the database representation of a logistics supplier.
type SupplierDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`

	Rating              float64 `gorm:"type:numeric;not null"`
	ReliabilityScore    float64 `gorm:"type:numeric;not null"`
	ResponseTimeMinutes int     `gorm:"type:int;not null"`
	AIPerformanceScore  float64 `gorm:"column:ai_performance_score;type:numeric;not null"`

	TransportTypes pq.StringArray `gorm:"type:text[];not null"`

	Active       bool `gorm:"type:boolean;not null"`
	PortalAccess bool `gorm:"type:boolean;not null"`
}

// TableName overrides GORM's default naming to use "suppliers".
func (SupplierDTO) TableName() string {
	return "suppliers"
}

func fromDomain(aggregate *supplier.LogisticsSupplier) SupplierDTO {
	types := make(pq.StringArray, 0, len(aggregate.TransportTypes()))
	for _, t := range aggregate.TransportTypes() {
		types = append(types, string(t))
	}

	return SupplierDTO{
		ID:                  aggregate.ID().Bytes(),
		TenantID:            aggregate.TenantID().Bytes(),
		Name:                aggregate.Name(),
		Rating:              aggregate.Profile().Rating,
		ReliabilityScore:    aggregate.Profile().ReliabilityScore,
		ResponseTimeMinutes: aggregate.Profile().ResponseTimeMinutes,
		AIPerformanceScore:  aggregate.Profile().AIPerformanceScore,
		TransportTypes:      types,
		Active:              aggregate.IsActive(),
		PortalAccess:        aggregate.HasPortalAccess(),
	}
}

func toDomain(dto SupplierDTO) (*supplier.LogisticsSupplier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	types := make([]kernel.TransportType, 0, len(dto.TransportTypes))
	for _, t := range dto.TransportTypes {
		types = append(types, kernel.TransportType(t))
	}

	return supplier.NewLogisticsSupplier(
		id,
		tenantID,
		dto.Name,
		supplier.PerformanceProfile{
			Rating:              dto.Rating,
			ReliabilityScore:    dto.ReliabilityScore,
			ResponseTimeMinutes: dto.ResponseTimeMinutes,
			AIPerformanceScore:  dto.AIPerformanceScore,
		},
		types,
		dto.Active,
		dto.PortalAccess,
	)
}
