package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Availability represents a courier's duty state.
//
// State transitions:
//
//	Offline <──> Online ──> Busy
//	               ^         │
//	               └─────────┘
//
// Busy is entered only through a successful claim and left only when the
// assignment reaches a terminal status. A Busy courier may not go Offline.
type Availability int

const (
	// AvailabilityUnknown represents an invalid or undefined availability.
	AvailabilityUnknown Availability = iota

	// Offline means the courier is off duty and invisible to dispatch.
	Offline

	// Online means the courier is on duty and may claim eligible orders.
	Online

	// Busy means the courier is bound to an active assignment.
	Busy
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "Unknown",
		Offline:             "Offline",
		Online:              "Online",
		Busy:                "Busy",
	}
}

// String returns the human-readable name of the availability.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Availability value is valid.
func (a Availability) Validate() error {
	if a < Offline || a > Busy {
		return errs.NewValueIsInvalidErrorWithCause("availability",
			fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}

// availabilityTransitionError builds the taxonomy error for a disallowed
// availability transition.
func availabilityTransitionError(from, to Availability) error {
	return fmt.Errorf("%w: courier %s -> %s", errs.ErrInvalidTransition, from, to)
}
