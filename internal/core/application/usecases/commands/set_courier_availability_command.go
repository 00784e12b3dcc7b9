package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
		"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
	)
	ErrTargetAvailabilityIsInvalid = errors.New("target availability must be Online or Offline")
)

// SetCourierAvailabilityCommand represents a courier toggling their duty
// state. Only Online and Offline are valid targets; Busy is set and cleared
// exclusively by the claim and delivery flows.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	target    courier.Availability

	guard guard.ConstructorGuard
}

// NewSetCourierAvailabilityCommand creates a command to change a courier's
// availability.
func NewSetCourierAvailabilityCommand(
	courierID kernel.UUID, target courier.Availability,
) (SetCourierAvailabilityCommand, error) {
	cmd := SetCourierAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setTarget(target),
	); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

// CourierID returns the courier changing state.
func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Target returns the requested availability.
func (c SetCourierAvailabilityCommand) Target() courier.Availability {
	return c.target
}

func (c *SetCourierAvailabilityCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *SetCourierAvailabilityCommand) setTarget(target courier.Availability) error {
	if target != courier.Online && target != courier.Offline {
		return ErrTargetAvailabilityIsInvalid
	}

	c.target = target
	return nil
}
