package ports

import (
	"context"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/quote"
)

// QuoteRepository defines the persistence contract for transport quotes.
// Quotes are created by the surrounding system when suppliers answer a
// tender; the pipeline only reads them and moves them to their terminal
// Selected/Rejected status.
type QuoteRepository interface {
	// Add persists a new quote.
	Add(ctx context.Context, aggregate *quote.TransportQuote) error

	// Update persists changes to an existing quote (status transitions).
	Update(ctx context.Context, aggregate *quote.TransportQuote) error

	// Get retrieves a quote by tenant and identifier.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*quote.TransportQuote, error)

	// GetSubmittedByTender retrieves all quotes still in Submitted status for
	// the given tender, ordered by submission time.
	GetSubmittedByTender(ctx context.Context, tenantID kernel.UUID, tenderID kernel.UUID) ([]*quote.TransportQuote, error)

	// GetByRequest retrieves every quote for the given transport request
	// regardless of status. Used by the selection routine to reject siblings
	// and verify the at-most-one-selected invariant.
	GetByRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) ([]*quote.TransportQuote, error)
}
