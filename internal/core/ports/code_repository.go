package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/model/kernel"
)

// CodeRepository defines the persistence contract for one-time handoff codes.
type CodeRepository interface {
	// Add persists a new code.
	Add(ctx context.Context, code *handoff.OneTimeCode) error

	// Update persists state changes of an existing code, such as attempt
	// counts and consumption.
	Update(ctx context.Context, code *handoff.OneTimeCode) error

	// GetActiveByOrderAndPhase retrieves the unconsumed code for an order
	// and phase, holding a row lock until the transaction ends so the
	// attempt counter's read-modify-write cannot race a concurrent guess.
	// Returns errs.ObjectNotFoundError when none exists.
	GetActiveByOrderAndPhase(ctx context.Context, orderID kernel.UUID, phase handoff.Phase) (*handoff.OneTimeCode, error)

	// PurgeDead deletes consumed and expired codes and returns the number
	// of rows removed. Used by the periodic cleanup job.
	PurgeDead(ctx context.Context, now time.Time) (int64, error)
}
