package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so that orders
// follow the delivery workflow and no step can be skipped.
//
// State transitions:
//
//	Confirmed ──> Preparing ──> Ready ──┐
//	     │            │           │     │
//	     └────────────┴───────────┴──> Assigned ──> PickedUp ──> OnTheWay ──> Delivered
//	                                                                            (terminal)
//
// Cancelled is reachable from any non-terminal status. A claim may bind a
// courier while the order is Confirmed, Preparing, or Ready; the kitchen and
// the claim race independently up to that point.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Confirmed is the initial status once checkout finalizes the order.
	Confirmed

	// Preparing indicates the restaurant accepted the order and is cooking.
	Preparing

	// Ready indicates the restaurant finished preparation; the order is
	// waiting for courier pickup and is broadcast to the service city.
	Ready

	// Assigned indicates a courier claimed the order.
	Assigned

	// PickedUp indicates the courier collected the order from the restaurant
	// after pickup-code verification.
	PickedUp

	// OnTheWay indicates the courier is moving toward the delivery address.
	OnTheWay

	// Delivered indicates the handoff to the customer completed.
	// This is a terminal status.
	Delivered

	// Cancelled indicates the order failed or was withdrawn.
	// This is a terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		OnTheWay:  "OnTheWay",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Status value is valid.
// Unknown (0) and values outside the enumeration are invalid.
func (s Status) Validate() error {
	if s < Confirmed || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsEligibleForClaim reports whether an order in this status may still be
// claimed by a courier. Eligibility additionally requires that no courier is
// bound yet; that part is checked by the Order aggregate.
func (s Status) IsEligibleForClaim() bool {
	return s == Confirmed || s == Preparing || s == Ready
}

// transitionError builds the taxonomy error for a disallowed transition.
func transitionError(from, to Status) error {
	return fmt.Errorf("%w: order %s -> %s", errs.ErrInvalidTransition, from, to)
}

// Prepare transitions the status to Preparing.
// Only Confirmed orders may start preparation.
func (s Status) Prepare() (Status, error) {
	if s != Confirmed {
		return 0, transitionError(s, Preparing)
	}
	return Preparing, nil
}

// MakeReady transitions the status to Ready.
// Only Preparing orders may become ready.
func (s Status) MakeReady() (Status, error) {
	if s != Preparing {
		return 0, transitionError(s, Ready)
	}
	return Ready, nil
}

// Assign advances a Ready status to Assigned. A claim that lands while the
// order is still Confirmed or Preparing leaves the status alone: the courier
// binding lives on the Order aggregate and the kitchen keeps progressing;
// MakeReady completes the move once cooking is done.
func (s Status) Assign() (Status, error) {
	if !s.IsEligibleForClaim() {
		return 0, transitionError(s, Assigned)
	}
	if s == Ready {
		return Assigned, nil
	}
	return s, nil
}

// PickUp transitions the status to PickedUp.
// Only Assigned orders may be picked up.
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return 0, transitionError(s, PickedUp)
	}
	return PickedUp, nil
}

// StartTransit transitions the status to OnTheWay.
// Only PickedUp orders may start transit.
func (s Status) StartTransit() (Status, error) {
	if s != PickedUp {
		return 0, transitionError(s, OnTheWay)
	}
	return OnTheWay, nil
}

// Deliver transitions the status to Delivered.
// Only OnTheWay orders may complete delivery.
func (s Status) Deliver() (Status, error) {
	if s != OnTheWay {
		return 0, transitionError(s, Delivered)
	}
	return Delivered, nil
}

// Requeue transitions the status back to Ready when a claim is unwound.
// An early claim whose kitchen never finished keeps its kitchen status; the
// unwind only releases the courier binding.
func (s Status) Requeue() (Status, error) {
	switch s {
	case Assigned, PickedUp, OnTheWay:
		return Ready, nil
	case Confirmed, Preparing:
		return s, nil
	default:
		return 0, transitionError(s, Ready)
	}
}

// Cancel transitions the status to Cancelled.
// Allowed from any non-terminal status.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, transitionError(s, Cancelled)
	}
	return Cancelled, nil
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier binding. A Confirmed or Preparing order may carry a courier (an
// early claim), but a Ready one never does: MarkReady promotes a claimed
// order straight to Assigned. Every status from Assigned onward (Delivered
// included) must have a courier. Cancelled orders may or may not carry one
// depending on when they failed.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s == Ready {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}

	if !courier && (s == Assigned || s == PickedUp || s == OnTheWay || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}

	return nil
}
