package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRequeueOrderCommandIsNotConstructed = errors.New(
	"RequeueOrderCommand must be created via NewRequeueOrderCommand constructor",
)

// RequeueOrderCommand returns a claimed order to the claim pool instead of
// cancelling it: the dispatcher's remedy for a courier no-show when the
// food is still worth delivering.
type RequeueOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequeueOrderCommand creates a command to requeue an order.
func NewRequeueOrderCommand(orderID, courierID kernel.UUID) (RequeueOrderCommand, error) {
	cmd := RequeueOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return RequeueOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequeueOrderCommand) Validate() error {
	return c.guard.Validate(ErrRequeueOrderCommandIsNotConstructed)
}

// OrderID returns the order to requeue.
func (c RequeueOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier being released.
func (c RequeueOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *RequeueOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *RequeueOrderCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
