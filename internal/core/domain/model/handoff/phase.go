package handoff

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Phase identifies which handoff a code verifies.
type Phase int

const (
	// PhaseUnknown represents an invalid or undefined phase.
	PhaseUnknown Phase = iota

	// PhasePickup guards the restaurant-to-courier handoff.
	PhasePickup

	// PhaseDelivery guards the courier-to-customer handoff.
	PhaseDelivery
)

func getPhaseStrings() map[Phase]string {
	return map[Phase]string{
		PhaseUnknown:  "Unknown",
		PhasePickup:   "Pickup",
		PhaseDelivery: "Delivery",
	}
}

// String returns the human-readable name of the phase.
func (p Phase) String() string {
	if str, ok := getPhaseStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Phase value is valid.
func (p Phase) Validate() error {
	if p != PhasePickup && p != PhaseDelivery {
		return errs.NewValueIsInvalidErrorWithCause("phase",
			fmt.Errorf("%d is not a valid handoff phase", p))
	}
	return nil
}
