// Package ports defines the contracts between the domain core and the
// infrastructure adapters: per-aggregate repositories, the unit of work with
// its per-request lock, and the external collaborators (notifier, document
// generator, clock) the pipeline consumes but never implements.
package ports

import (
	"context"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for transport requests.
// All reads are tenant-scoped: asking for another tenant's request yields the
// same not-found error as a missing one, so existence never leaks across
// tenants.
type RequestRepository interface {
	// Add persists a new transport request.
	Add(ctx context.Context, aggregate *request.TransportRequest) error

	// Update persists changes to an existing request. The write is guarded by
	// the aggregate's optimistic version token: if the stored version no longer
	// matches, Update fails with errs.ErrVersionIsInvalid and nothing is written.
	Update(ctx context.Context, aggregate *request.TransportRequest) error

	// Get retrieves a request by tenant and identifier.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*request.TransportRequest, error)
}
