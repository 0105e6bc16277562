package commands

import (
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/guard"
)

var ErrProcessOrderCommandIsNotConstructed = errors.New(
	"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
)

// ProcessOrderCommand triggers the order processing stage: generating the
// order confirmation, allocating a tracking number, and estimating delivery.
type ProcessOrderCommand struct {
	tenantID kernel.UUID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewProcessOrderCommand creates a command to process the given order.
// Both identifiers must be valid UUIDs.
func NewProcessOrderCommand(tenantID kernel.UUID, orderID kernel.UUID) (ProcessOrderCommand, error) {
	if err := tenantID.Validate(); err != nil {
		return ProcessOrderCommand{}, err
	}

	if err := orderID.Validate(); err != nil {
		return ProcessOrderCommand{}, err
	}

	return ProcessOrderCommand{
		tenantID: tenantID,
		orderID:  orderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scoping this command.
func (c *ProcessOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderID returns the order to process.
func (c *ProcessOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c *ProcessOrderCommand) Validate() error {
	return c.guard.Validate(
		ErrProcessOrderCommandIsNotConstructed,
	)
}
