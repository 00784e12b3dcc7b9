package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRecordDeliveryCommandIsNotConstructed = errors.New(
	"RecordDeliveryCommand must be created via NewRecordDeliveryCommand constructor",
)

// RecordDeliveryCommand represents the courier presenting the customer's
// delivery code at the door to close out the order.
type RecordDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	code      string

	guard guard.ConstructorGuard
}

// NewRecordDeliveryCommand creates a command to verify a delivery handoff.
func NewRecordDeliveryCommand(orderID, courierID kernel.UUID, code string) (RecordDeliveryCommand, error) {
	cmd := RecordDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setCode(code),
	); err != nil {
		return RecordDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c RecordDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier presenting the code.
func (c RecordDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Code returns the submitted code value.
func (c RecordDeliveryCommand) Code() string {
	return c.code
}

func (c *RecordDeliveryCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *RecordDeliveryCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *RecordDeliveryCommand) setCode(code string) error {
	if code == "" {
		return ErrCodeValueIsRequired
	}

	c.code = code
	return nil
}
