package ports

import (
	"context"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/tender"
)

// TenderRepository defines the persistence contract for tenders.
type TenderRepository interface {
	// Add persists a new tender.
	Add(ctx context.Context, aggregate *tender.TenderRequest) error

	// Update persists changes to an existing tender.
	Update(ctx context.Context, aggregate *tender.TenderRequest) error

	// Get retrieves a tender by tenant and identifier.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*tender.TenderRequest, error)

	// GetActiveByRequest retrieves the active tender for a request, if any.
	// Used by the tender-issuing stage to detect an already issued tender and
	// no-op instead of soliciting suppliers twice.
	GetActiveByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) (*tender.TenderRequest, error)

	// GetActivePastDeadline retrieves active tenders across all tenants whose
	// bid deadline has passed as of now. Used by the scheduled job that
	// re-triggers quote collection.
	GetActivePastDeadline(ctx context.Context, now time.Time) ([]*tender.TenderRequest, error)

	// GetActiveDueForReminder retrieves active tenders across all tenants whose
	// reminder time has passed and whose reminder has not been sent yet.
	GetActiveDueForReminder(ctx context.Context, now time.Time) ([]*tender.TenderRequest, error)
}
