package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignments.
// The store enforces at most one active assignment per order and per
// courier; Add surfaces errs.ErrConflict when a duplicate active row is
// attempted.
type AssignmentRepository interface {
	// Add persists a new assignment.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetActiveByOrder retrieves the single non-terminal assignment for an
	// order. Returns errs.ObjectNotFoundError when none exists.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// GetActiveByOrderForUpdate is GetActiveByOrder with a row lock held
	// until the transaction ends. Handlers that mutate the assignment
	// read it through this variant.
	GetActiveByOrderForUpdate(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// GetActiveByCourier retrieves the single non-terminal assignment held
	// by a courier. Returns errs.ObjectNotFoundError when none exists.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) (*assignment.Assignment, error)
}
