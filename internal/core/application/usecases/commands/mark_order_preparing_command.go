package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkOrderPreparingCommandIsNotConstructed = errors.New(
	"MarkOrderPreparingCommand must be created via NewMarkOrderPreparingCommand constructor",
)

// MarkOrderPreparingCommand records that the restaurant accepted an order
// and started cooking.
type MarkOrderPreparingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderPreparingCommand creates a command to start order preparation.
func NewMarkOrderPreparingCommand(orderID kernel.UUID) (MarkOrderPreparingCommand, error) {
	cmd := MarkOrderPreparingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return MarkOrderPreparingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderPreparingCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderPreparingCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c MarkOrderPreparingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkOrderPreparingCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}
