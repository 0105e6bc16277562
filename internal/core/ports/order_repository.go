package ports

import (
	"context"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for transport orders.
type OrderRepository interface {
	// Add persists a new order. The order row carries a unique constraint on
	// its request ID, so a second order for the same request can never be
	// committed even if two selection runs race.
	Add(ctx context.Context, aggregate *order.TransportOrder) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.TransportOrder) error

	// Get retrieves an order by tenant and identifier.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*order.TransportOrder, error)

	// GetByRequest retrieves the order created for a request, if any.
	GetByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) (*order.TransportOrder, error)
}
