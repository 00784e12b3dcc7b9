package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrFailDeliveryCommandIsNotConstructed = errors.New(
	"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
)

// FailDeliveryCommand represents a courier giving up on an in-flight order.
// The order is cancelled, the courier walks away without credit, and the
// reason travels with the failure notification. No code is verified.
type FailDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewFailDeliveryCommand creates a command to abandon a delivery. The reason
// is advisory and may be empty.
func NewFailDeliveryCommand(orderID, courierID kernel.UUID, reason string) (FailDeliveryCommand, error) {
	cmd := FailDeliveryCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return FailDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryCommandIsNotConstructed)
}

// OrderID returns the abandoned order.
func (c FailDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the abandoning courier.
func (c FailDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Reason returns the advisory failure reason.
func (c FailDeliveryCommand) Reason() string {
	return c.reason
}

func (c *FailDeliveryCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *FailDeliveryCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
