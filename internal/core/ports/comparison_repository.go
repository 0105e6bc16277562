package ports

import (
	"context"

	"freightflow/internal/core/domain/model/comparison"
	"freightflow/internal/core/domain/model/kernel"
)

// ComparisonRepository defines the persistence contract for quotation
// comparisons. Comparisons are immutable: there is no update operation, and
// every evaluation run appends a new record.
type ComparisonRepository interface {
	// Add persists a new comparison record.
	Add(ctx context.Context, aggregate *comparison.QuotationComparison) error

	// Get retrieves a comparison by tenant and identifier.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*comparison.QuotationComparison, error)

	// GetLatestByRequest retrieves the most recent comparison for a request,
	// if any. Used to report prior evaluation results on re-invocation.
	GetLatestByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) (*comparison.QuotationComparison, error)
}
