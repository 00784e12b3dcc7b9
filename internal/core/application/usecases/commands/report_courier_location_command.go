package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReportCourierLocationCommandIsNotConstructed = errors.New(
	"ReportCourierLocationCommand must be created via NewReportCourierLocationCommand constructor",
)

// ReportCourierLocationCommand carries a courier's self-reported GPS
// position. The location lock decides how much of it is kept.
type ReportCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	location  kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewReportCourierLocationCommand creates a command to record a location update.
func NewReportCourierLocationCommand(
	courierID kernel.UUID, location kernel.GeoPoint,
) (ReportCourierLocationCommand, error) {
	cmd := ReportCourierLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setLocation(location),
	); err != nil {
		return ReportCourierLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportCourierLocationCommandIsNotConstructed)
}

// CourierID returns the reporting courier.
func (c ReportCourierLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the reported position.
func (c ReportCourierLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *ReportCourierLocationCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *ReportCourierLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
