package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentStatus represents the payment outcome of an order. Payment capture
// itself happens outside this core; the status here only records the result
// the delivery flow is allowed to produce: a successful handoff flips the
// order to paid in the same transaction.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending is the initial payment status of every order.
	PaymentPending

	// PaymentPaid indicates the order was settled on successful delivery.
	PaymentPaid

	// PaymentRefunded indicates the order was refunded after cancellation.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "Unknown",
		PaymentPending:  "Pending",
		PaymentPaid:     "Paid",
		PaymentRefunded: "Refunded",
	}
}

// String returns the human-readable name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s < PaymentPending || s > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
