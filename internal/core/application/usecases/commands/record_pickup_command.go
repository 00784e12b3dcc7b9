package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRecordPickupCommandIsNotConstructed = errors.New(
		"RecordPickupCommand must be created via NewRecordPickupCommand constructor",
	)
	ErrCodeValueIsRequired = errors.New("code value is required")
)

// RecordPickupCommand represents the courier presenting the restaurant's
// pickup code to prove the physical handoff happened.
type RecordPickupCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	code      string

	guard guard.ConstructorGuard
}

// NewRecordPickupCommand creates a command to verify a pickup handoff.
func NewRecordPickupCommand(orderID, courierID kernel.UUID, code string) (RecordPickupCommand, error) {
	cmd := RecordPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setCode(code),
	); err != nil {
		return RecordPickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPickupCommand) Validate() error {
	return c.guard.Validate(ErrRecordPickupCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c RecordPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier presenting the code.
func (c RecordPickupCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Code returns the submitted code value.
func (c RecordPickupCommand) Code() string {
	return c.code
}

func (c *RecordPickupCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *RecordPickupCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *RecordPickupCommand) setCode(code string) error {
	if code == "" {
		return ErrCodeValueIsRequired
	}

	c.code = code
	return nil
}
