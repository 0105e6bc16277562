package commands

import (
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/guard"
)

var ErrSelectQuoteCommandIsNotConstructed = errors.New(
	"SelectQuoteCommand must be created via NewSelectQuoteCommand constructor",
)

// SelectQuoteCommand finalizes a quote manually, bypassing the confidence
// gate. Used when an evaluation's confidence was too low for auto-selection
// and a human reviewer picked the winner.
type SelectQuoteCommand struct {
	tenantID  kernel.UUID
	requestID kernel.UUID
	quoteID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewSelectQuoteCommand creates a command to select the given quote for the
// given request. All identifiers must be valid UUIDs.
func NewSelectQuoteCommand(tenantID kernel.UUID, requestID kernel.UUID, quoteID kernel.UUID) (SelectQuoteCommand, error) {
	if err := tenantID.Validate(); err != nil {
		return SelectQuoteCommand{}, err
	}

	if err := requestID.Validate(); err != nil {
		return SelectQuoteCommand{}, err
	}

	if err := quoteID.Validate(); err != nil {
		return SelectQuoteCommand{}, err
	}

	return SelectQuoteCommand{
		tenantID:  tenantID,
		requestID: requestID,
		quoteID:   quoteID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scoping this command.
func (c *SelectQuoteCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// RequestID returns the transport request being decided.
func (c *SelectQuoteCommand) RequestID() kernel.UUID {
	return c.requestID
}

// QuoteID returns the quote to select.
func (c *SelectQuoteCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

// Validate ensures the command was created through the constructor.
func (c *SelectQuoteCommand) Validate() error {
	return c.guard.Validate(
		ErrSelectQuoteCommandIsNotConstructed,
	)
}
