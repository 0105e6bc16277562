package commands

import (
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/guard"
)

var ErrRemindSuppliersCommandIsNotConstructed = errors.New(
	"RemindSuppliersCommand must be created via NewRemindSuppliersCommand constructor",
)

// RemindSuppliersCommand nudges the non-responding suppliers of an active
// tender before its bid deadline closes.
type RemindSuppliersCommand struct {
	tenantID kernel.UUID
	tenderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemindSuppliersCommand creates a command to remind a tender's
// non-responding suppliers.
func NewRemindSuppliersCommand(tenantID kernel.UUID, tenderID kernel.UUID) (RemindSuppliersCommand, error) {
	if err := tenantID.Validate(); err != nil {
		return RemindSuppliersCommand{}, err
	}

	if err := tenderID.Validate(); err != nil {
		return RemindSuppliersCommand{}, err
	}

	return RemindSuppliersCommand{
		tenantID: tenantID,
		tenderID: tenderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scoping this command.
func (c *RemindSuppliersCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// TenderID returns the tender whose suppliers are reminded.
func (c *RemindSuppliersCommand) TenderID() kernel.UUID {
	return c.tenderID
}

// Validate ensures the command was created through the constructor.
func (c *RemindSuppliersCommand) Validate() error {
	return c.guard.Validate(
		ErrRemindSuppliersCommandIsNotConstructed,
	)
}
