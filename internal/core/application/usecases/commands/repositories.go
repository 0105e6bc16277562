// Package commands contains the write-side stage handlers of the procurement
// pipeline. Each workflow stage is a command processed by a handler following
// a consistent shape: validate the command, begin a unit of work, take the
// per-request lock, perform the guarded state transition, commit, and only
// then run bounded external side effects whose failures are recorded in the
// result instead of aborting the stage.
package commands

import (
	"context"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestLocker takes the per-request mutual exclusion lock inside the
	// current transaction. Every stage that mutates state for a request goes
	// through it; see ports.UnitOfWork.LockRequest.
	RequestLocker interface {
		LockRequest(ctx context.Context, tenantID kernel.UUID, requestID kernel.UUID) error
	}

	// UoW manages one stage's transaction across the pipeline's repositories.
	// All stage handlers share this single unit-of-work shape because every
	// stage reads the request row (for the lock) plus at least one other
	// aggregate.
	UoW interface {
		TxManager
		RequestLocker

		RequestRepository() ports.RequestRepository
		SupplierRepository() ports.SupplierRepository
		TenderRepository() ports.TenderRepository
		QuoteRepository() ports.QuoteRepository
		ComparisonRepository() ports.ComparisonRepository
		OrderRepository() ports.OrderRepository
	}

	// UoWFactory creates a fresh unit of work per stage invocation.
	UoWFactory interface {
		Create() UoW
	}
)

// WorkflowPolicy carries the tenant-configurable business policy of the
// pipeline. None of these values are hard-coded in the stage handlers; they
// arrive from configuration at composition time.
type WorkflowPolicy struct {
	// BidWindow is how long suppliers may submit quotes after tender creation.
	BidWindow time.Duration

	// EvaluationWindow bounds how long after tender creation an evaluation run
	// may still auto-select; past it, selection requires manual review.
	EvaluationWindow time.Duration

	// ReminderLead is how long before the bid deadline the supplier reminder fires.
	ReminderLead time.Duration

	// MaxSuppliers bounds how many suppliers one tender invites.
	MaxSuppliers int

	// AutoSelectThreshold is the confidence a recommendation must strictly
	// exceed to be finalized without review.
	AutoSelectThreshold float64

	// MarkupPercent is the order markup as a fraction (0.10 means 10%).
	MarkupPercent float64

	// SideEffectTimeout bounds each external notification or document
	// generation call. Side effects must never block a stage indefinitely.
	SideEffectTimeout time.Duration
}

// DefaultWorkflowPolicy returns the standard policy: 24h bidding, 48h
// evaluation, 2h reminder lead, 10 invited suppliers, 0.9 auto-selection
// threshold, 10% markup, and 10s side-effect timeout.
func DefaultWorkflowPolicy() WorkflowPolicy {
	return WorkflowPolicy{
		BidWindow:           24 * time.Hour,
		EvaluationWindow:    48 * time.Hour,
		ReminderLead:        2 * time.Hour,
		MaxSuppliers:        10,
		AutoSelectThreshold: 0.9,
		MarkupPercent:       0.10,
		SideEffectTimeout:   10 * time.Second,
	}
}
