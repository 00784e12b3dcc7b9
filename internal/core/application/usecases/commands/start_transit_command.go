package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartTransitCommandIsNotConstructed = errors.New(
	"StartTransitCommand must be created via NewStartTransitCommand constructor",
)

// StartTransitCommand records that the courier left the restaurant with
// the order. Starting transit mints the delivery code that the customer
// will receive and read back at the door.
type StartTransitCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartTransitCommand creates a command to start the delivery leg.
func NewStartTransitCommand(orderID, courierID kernel.UUID) (StartTransitCommand, error) {
	cmd := StartTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return StartTransitCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

// OrderID returns the order entering transit.
func (c StartTransitCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier carrying the order.
func (c StartTransitCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *StartTransitCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *StartTransitCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
