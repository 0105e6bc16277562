package commands

import (
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand triggers the delivery completion stage: verifying
// the delivery, generating the delivery confirmation and invoice, and closing
// out the order and its transport request.
//
// Delivery verification is automatic by default; use
// NewCompleteDeliveryCommandWithVerification to override it when the
// surrounding system flags a disputed delivery.
type CompleteDeliveryCommand struct {
	tenantID kernel.UUID
	orderID  kernel.UUID
	verified bool

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete the given order's
// delivery with automatic verification.
func NewCompleteDeliveryCommand(tenantID kernel.UUID, orderID kernel.UUID) (CompleteDeliveryCommand, error) {
	return NewCompleteDeliveryCommandWithVerification(tenantID, orderID, true)
}

// NewCompleteDeliveryCommandWithVerification creates a delivery completion
// command with an explicit verification outcome.
func NewCompleteDeliveryCommandWithVerification(
	tenantID kernel.UUID,
	orderID kernel.UUID,
	verified bool,
) (CompleteDeliveryCommand, error) {
	if err := tenantID.Validate(); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	if err := orderID.Validate(); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		tenantID: tenantID,
		orderID:  orderID,
		verified: verified,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scoping this command.
func (c *CompleteDeliveryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderID returns the order whose delivery is completed.
func (c *CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// IsVerified reports whether the delivery passed verification.
func (c *CompleteDeliveryCommand) IsVerified() bool {
	return c.verified
}

// Validate ensures the command was created through a constructor.
func (c *CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(
		ErrCompleteDeliveryCommandIsNotConstructed,
	)
}
