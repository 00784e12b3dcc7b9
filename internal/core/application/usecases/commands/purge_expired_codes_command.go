package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrPurgeExpiredCodesCommandIsNotConstructed = errors.New(
	"PurgeExpiredCodesCommand must be created via NewPurgeExpiredCodesCommand constructor",
)

// PurgeExpiredCodesCommand triggers removal of dead handoff codes, the
// consumed and the expired ones. Fired periodically by the cleanup job.
type PurgeExpiredCodesCommand struct {
	guard guard.ConstructorGuard
}

// NewPurgeExpiredCodesCommand creates a command to purge dead handoff codes.
func NewPurgeExpiredCodesCommand() PurgeExpiredCodesCommand {
	return PurgeExpiredCodesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *PurgeExpiredCodesCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredCodesCommandIsNotConstructed)
}
