package ports

import (
	"context"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/supplier"
)

// SupplierRepository defines the read-only persistence contract for logistics
// suppliers. The orchestrator never mutates suppliers; their metrics are
// maintained by the surrounding system.
type SupplierRepository interface {
	// Get retrieves a supplier by tenant and identifier.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*supplier.LogisticsSupplier, error)

	// GetAllEligible retrieves the tenant's active suppliers with portal
	// access. Transport-type filtering is the supplier matcher's concern;
	// this query only applies the eligibility flags.
	GetAllEligible(ctx context.Context, tenantID kernel.UUID) ([]*supplier.LogisticsSupplier, error)
}
