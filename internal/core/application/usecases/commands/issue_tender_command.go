package commands

import (
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/guard"
)

var ErrIssueTenderCommandIsNotConstructed = errors.New(
	"IssueTenderCommand must be created via NewIssueTenderCommand constructor",
)

// IssueTenderCommand triggers the tender issuance stage for a transport
// request: matching suppliers, creating a time-boxed tender, and inviting the
// matched suppliers to bid.
type IssueTenderCommand struct {
	tenantID  kernel.UUID
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueTenderCommand creates a command to issue a tender for the given
// request. Both identifiers must be valid UUIDs.
func NewIssueTenderCommand(tenantID kernel.UUID, requestID kernel.UUID) (IssueTenderCommand, error) {
	if err := tenantID.Validate(); err != nil {
		return IssueTenderCommand{}, err
	}

	if err := requestID.Validate(); err != nil {
		return IssueTenderCommand{}, err
	}

	return IssueTenderCommand{
		tenantID:  tenantID,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scoping this command.
func (c *IssueTenderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// RequestID returns the transport request to tender.
func (c *IssueTenderCommand) RequestID() kernel.UUID {
	return c.requestID
}

// Validate ensures the command was created through the constructor.
func (c *IssueTenderCommand) Validate() error {
	return c.guard.Validate(
		ErrIssueTenderCommandIsNotConstructed,
	)
}
