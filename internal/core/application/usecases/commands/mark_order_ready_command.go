package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
	"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
)

// MarkOrderReadyCommand records that the restaurant finished preparing an
// order. A ready order enters its city's claim pool and receives the pickup
// code the restaurant will later read out to the courier.
type MarkOrderReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderReadyCommand creates a command to mark an order ready for pickup.
func NewMarkOrderReadyCommand(orderID kernel.UUID) (MarkOrderReadyCommand, error) {
	cmd := MarkOrderReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return MarkOrderReadyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c MarkOrderReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkOrderReadyCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}
