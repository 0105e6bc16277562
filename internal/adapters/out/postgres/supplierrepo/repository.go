package supplierrepo

import (
	"context"
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/supplier"
	"freightflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSupplierRepository implements ports.SupplierRepository using GORM.
// It only reads; supplier rows are written by the surrounding system.
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GORM supplier repository.
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// Get retrieves a supplier by tenant and ID.
func (r *GormSupplierRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*supplier.LogisticsSupplier, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SupplierDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID.Bytes(), id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("supplier", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetAllEligible retrieves the tenant's active suppliers with portal access,
// ordered by ID for deterministic results.
func (r *GormSupplierRepository) GetAllEligible(ctx context.Context, tenantID kernel.UUID) ([]*supplier.LogisticsSupplier, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SupplierDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active AND portal_access", tenantID.Bytes()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	suppliers := make([]*supplier.LogisticsSupplier, 0, len(dtos))
	for _, dto := range dtos {
		s, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		suppliers = append(suppliers, s)
	}

	return suppliers, nil
}
