package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when using an improperly
// initialized Assignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment constructors")

// Assignment binds one order to one courier for the duration of a delivery.
// It is created the moment a claim succeeds and advances through the handoff
// state machine until it reaches a terminal status, after which it is
// immutable.
//
// The aggregate records a timestamp per transition so the engine can audit
// how long each handoff phase took.
type Assignment struct {
	id          kernel.UUID
	orderID     kernel.UUID
	courierID   kernel.UUID
	status      Status
	createdAt   time.Time
	acceptedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	rejectedAt  *time.Time
	guard       guard.ConstructorGuard
}

// NewAssignment creates an Assignment in the initial Assigned status.
// The claim protocol accepts it in the same transaction.
func NewAssignment(id, orderID, courierID kernel.UUID, createdAt time.Time) (*Assignment, error) {
	a := &Assignment{
		status:    Assigned,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setCourierID(courierID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs an Assignment aggregate from persistent storage.
func RestoreAssignment(
	id, orderID, courierID kernel.UUID,
	status Status,
	createdAt time.Time,
	acceptedAt, pickedUpAt, deliveredAt, rejectedAt *time.Time,
) (*Assignment, error) {
	a := &Assignment{
		createdAt:   createdAt,
		acceptedAt:  acceptedAt,
		pickedUpAt:  pickedUpAt,
		deliveredAt: deliveredAt,
		rejectedAt:  rejectedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setCourierID(courierID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	a.status = status
	return a, nil
}

// Validate ensures the Assignment instance was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// IsEqual compares two assignments by their unique identifiers.
func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the bound order's identifier.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// CourierID returns the bound courier's identifier.
func (a *Assignment) CourierID() kernel.UUID {
	return a.courierID
}

// Status returns the current handoff status.
func (a *Assignment) Status() Status {
	return a.status
}

// CreatedAt returns the claim timestamp.
func (a *Assignment) CreatedAt() time.Time {
	return a.createdAt
}

// AcceptedAt returns the acceptance timestamp, or nil before acceptance.
func (a *Assignment) AcceptedAt() *time.Time {
	return a.acceptedAt
}

// PickedUpAt returns the pickup timestamp, or nil before pickup.
func (a *Assignment) PickedUpAt() *time.Time {
	return a.pickedUpAt
}

// DeliveredAt returns the delivery timestamp, or nil before delivery.
func (a *Assignment) DeliveredAt() *time.Time {
	return a.deliveredAt
}

// RejectedAt returns the rejection timestamp, or nil unless rejected.
func (a *Assignment) RejectedAt() *time.Time {
	return a.rejectedAt
}

// IsActive reports whether the assignment is still in a non-terminal status.
// A courier with an active assignment cannot claim another order.
func (a *Assignment) IsActive() bool {
	return !a.status.IsTerminal()
}

// Accept records the courier's commitment to the delivery.
func (a *Assignment) Accept(at time.Time) error {
	newStatus, err := a.status.Accept()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.acceptedAt = &at
	return nil
}

// MarkPickedUp records the verified pickup handoff.
func (a *Assignment) MarkPickedUp(at time.Time) error {
	newStatus, err := a.status.PickUp()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.pickedUpAt = &at
	return nil
}

// StartTransit records that the courier left the restaurant.
func (a *Assignment) StartTransit() error {
	newStatus, err := a.status.StartTransit()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// MarkDelivered records the verified delivery handoff. Terminal.
func (a *Assignment) MarkDelivered(at time.Time) error {
	newStatus, err := a.status.Deliver()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.deliveredAt = &at
	return nil
}

// Reject abandons the assignment from any non-terminal status. Terminal.
func (a *Assignment) Reject(at time.Time) error {
	newStatus, err := a.status.Reject()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.rejectedAt = &at
	return nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.orderID = id
	return nil
}

func (a *Assignment) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.courierID = id
	return nil
}
