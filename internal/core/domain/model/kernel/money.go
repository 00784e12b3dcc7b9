package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value. Money must be created via NewMoney or ZeroMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or ZeroMoney constructors")

// Money represents a non-negative monetary amount in minor currency units
// (e.g., paise). Money is an immutable value object; arithmetic returns new
// instances and never mutates the receiver.
//
// Example:
//
//	fee, _ := kernel.NewMoney(5000)
//	balance := kernel.ZeroMoney().Add(fee)
//	fmt.Println(balance.Amount()) // 5000
type Money struct { //nolint:recvcheck //using for validation
	amount int64
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in minor currency units.
// Negative amounts are rejected: the ledger models corrections as additive
// adjustment rows, never as negative balances.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// ZeroMoney returns a valid Money value of zero.
func ZeroMoney() Money {
	return Money{guard: guard.NewConstructorGuard()}
}

// Amount returns the amount in minor currency units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{
		amount: m.amount + other.amount,
		guard:  guard.NewConstructorGuard(),
	}
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String returns a human-readable representation of the amount.
func (m Money) String() string {
	return fmt.Sprintf("Money(%d)", m.amount)
}

// Validate ensures the Money value was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
