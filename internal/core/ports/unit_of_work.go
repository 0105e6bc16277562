package ports

import (
	"context"

	"freightflow/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each workflow
// trigger. Each trigger gets a fresh unit of work, isolating concurrent
// stage executions from one another.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents one stage's transaction boundary. A stage handler
// begins a transaction, takes the per-request lock, performs its
// read-modify-write, and commits; any error rolls everything back so a stage
// either fully applies or leaves no trace.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// LockRequest takes the per-request mutual exclusion lock inside the
	// current transaction. All stage handlers that mutate state for a request
	// must acquire this lock before reading status fields: it is what makes
	// stage transitions linearizable per request, so two concurrent selection
	// runs can never both observe "not yet selected".
	//
	// Returns errs.ErrObjectNotFound if the request does not exist for the
	// tenant. Lock contention that cannot be resolved surfaces as
	// errs.ErrVersionIsInvalid and the caller should retry.
	LockRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) error

	// RequestRepository returns a RequestRepository bound to the current transaction.
	RequestRepository() RequestRepository

	// SupplierRepository returns a SupplierRepository bound to the current transaction.
	SupplierRepository() SupplierRepository

	// TenderRepository returns a TenderRepository bound to the current transaction.
	TenderRepository() TenderRepository

	// QuoteRepository returns a QuoteRepository bound to the current transaction.
	QuoteRepository() QuoteRepository

	// ComparisonRepository returns a ComparisonRepository bound to the current transaction.
	ComparisonRepository() ComparisonRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository
}
