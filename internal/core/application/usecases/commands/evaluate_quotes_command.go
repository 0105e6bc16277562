package commands

import (
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/guard"
)

var ErrEvaluateQuotesCommandIsNotConstructed = errors.New(
	"EvaluateQuotesCommand must be created via NewEvaluateQuotesCommand constructor",
)

// EvaluateQuotesCommand triggers the quote evaluation stage for a tender:
// scoring the submitted quotes, recording a comparison, and auto-selecting
// the winner when the recommendation is confident enough.
type EvaluateQuotesCommand struct {
	tenantID kernel.UUID
	tenderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEvaluateQuotesCommand creates a command to evaluate the given tender's
// quotes. Both identifiers must be valid UUIDs.
func NewEvaluateQuotesCommand(tenantID kernel.UUID, tenderID kernel.UUID) (EvaluateQuotesCommand, error) {
	if err := tenantID.Validate(); err != nil {
		return EvaluateQuotesCommand{}, err
	}

	if err := tenderID.Validate(); err != nil {
		return EvaluateQuotesCommand{}, err
	}

	return EvaluateQuotesCommand{
		tenantID: tenantID,
		tenderID: tenderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scoping this command.
func (c *EvaluateQuotesCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// TenderID returns the tender whose quotes are evaluated.
func (c *EvaluateQuotesCommand) TenderID() kernel.UUID {
	return c.tenderID
}

// Validate ensures the command was created through the constructor.
func (c *EvaluateQuotesCommand) Validate() error {
	return c.guard.Validate(
		ErrEvaluateQuotesCommandIsNotConstructed,
	)
}
