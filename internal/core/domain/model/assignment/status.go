package assignment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the handoff progress of an assignment.
//
// State transitions:
//
//	Assigned ──> Accepted ──> PickedUp ──> OnTheWay ──> Delivered (terminal)
//	    │            │            │            │
//	    └────────────┴────────────┴────────────┴──> Rejected (terminal)
//
// No transition may be skipped.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Assigned is the initial status the moment a claim binds order and courier.
	Assigned

	// Accepted indicates the courier committed to the delivery.
	// The claim protocol moves a fresh assignment here immediately.
	Accepted

	// PickedUp indicates the pickup handoff was verified.
	PickedUp

	// OnTheWay indicates the courier started transit to the customer.
	OnTheWay

	// Delivered indicates the delivery handoff was verified. Terminal.
	Delivered

	// Rejected indicates the assignment was abandoned or failed. Terminal.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Assigned:  "Assigned",
		Accepted:  "Accepted",
		PickedUp:  "PickedUp",
		OnTheWay:  "OnTheWay",
		Delivered: "Delivered",
		Rejected:  "Rejected",
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s < Assigned || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid assignment status", s))
	}
	return nil
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Rejected
}

func transitionError(from, to Status) error {
	return fmt.Errorf("%w: assignment %s -> %s", errs.ErrInvalidTransition, from, to)
}

// Accept transitions the status to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Assigned {
		return 0, transitionError(s, Accepted)
	}
	return Accepted, nil
}

// PickUp transitions the status to PickedUp.
func (s Status) PickUp() (Status, error) {
	if s != Accepted {
		return 0, transitionError(s, PickedUp)
	}
	return PickedUp, nil
}

// StartTransit transitions the status to OnTheWay.
func (s Status) StartTransit() (Status, error) {
	if s != PickedUp {
		return 0, transitionError(s, OnTheWay)
	}
	return OnTheWay, nil
}

// Deliver transitions the status to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != OnTheWay {
		return 0, transitionError(s, Delivered)
	}
	return Delivered, nil
}

// Reject transitions the status to Rejected.
// Allowed from any non-terminal status.
func (s Status) Reject() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, transitionError(s, Rejected)
	}
	return Rejected, nil
}
