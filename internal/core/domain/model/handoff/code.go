package handoff

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// CodeLength is the number of digits in a handoff code.
const CodeLength = 6

var (
	// ErrCodeIsNotConstructed is returned when using an improperly initialized OneTimeCode.
	ErrCodeIsNotConstructed = errors.New(
		"OneTimeCode must be created via GenerateCode or RestoreCode constructors")
	// ErrValueIsRequiredForCode is returned when restoring a code with an empty value.
	ErrValueIsRequiredForCode = errs.NewValueIsRequiredError("code value")

	codeUpperBound = big.NewInt(1_000_000)
)

// OneTimeCode is a short-lived verification secret scoped to one
// (order, phase) pair. It is single-use: the first successful verification
// consumes it, and so does expiry or attempt exhaustion - whichever comes
// first. A consumed code never verifies again.
type OneTimeCode struct {
	id          kernel.UUID
	orderID     kernel.UUID
	phase       Phase
	value       string
	expiresAt   time.Time
	attempts    int
	maxAttempts int
	consumed    bool
	verifiedAt  *time.Time
	guard       guard.ConstructorGuard
}

// GenerateCode mints a fresh random numeric code for the given order and
// phase. The value is drawn from crypto/rand and zero-padded to CodeLength
// digits. The code expires ttl after now and tolerates maxAttempts wrong
// guesses before it permanently invalidates itself.
func GenerateCode(
	id, orderID kernel.UUID,
	phase Phase,
	now time.Time,
	ttl time.Duration,
	maxAttempts int,
) (*OneTimeCode, error) {
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("ttl", fmt.Errorf("%s is not positive", ttl))
	}
	if maxAttempts <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("max attempts",
			fmt.Errorf("%d is not positive", maxAttempts))
	}

	n, err := rand.Int(rand.Reader, codeUpperBound)
	if err != nil {
		return nil, fmt.Errorf("generate code value: %w", err)
	}

	c := &OneTimeCode{
		phase:       phase,
		value:       fmt.Sprintf("%06d", n.Int64()),
		expiresAt:   now.Add(ttl),
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setOrderID(orderID),
		phase.Validate(),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCode reconstructs a OneTimeCode from persistent storage.
func RestoreCode(
	id, orderID kernel.UUID,
	phase Phase,
	value string,
	expiresAt time.Time,
	attempts, maxAttempts int,
	consumed bool,
	verifiedAt *time.Time,
) (*OneTimeCode, error) {
	c := &OneTimeCode{
		expiresAt:   expiresAt,
		attempts:    attempts,
		maxAttempts: maxAttempts,
		consumed:    consumed,
		verifiedAt:  verifiedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if value == "" {
		return nil, ErrValueIsRequiredForCode
	}

	if err := errors.Join(
		c.setID(id),
		c.setOrderID(orderID),
		phase.Validate(),
	); err != nil {
		return nil, err
	}

	c.phase = phase
	c.value = value
	return c, nil
}

// Validate ensures the OneTimeCode was properly constructed.
func (c *OneTimeCode) Validate() error {
	if c == nil {
		return ErrCodeIsNotConstructed
	}
	return c.guard.Validate(ErrCodeIsNotConstructed)
}

// ID returns the code's unique identifier.
func (c *OneTimeCode) ID() kernel.UUID {
	return c.id
}

// OrderID returns the identifier of the order the code is scoped to.
func (c *OneTimeCode) OrderID() kernel.UUID {
	return c.orderID
}

// Phase returns the handoff phase the code verifies.
func (c *OneTimeCode) Phase() Phase {
	return c.phase
}

// Value returns the secret code value. It is exposed so the issuing side can
// reveal it to the verifying party (restaurant or customer), never to the
// courier.
func (c *OneTimeCode) Value() string {
	return c.value
}

// ExpiresAt returns the expiry deadline.
func (c *OneTimeCode) ExpiresAt() time.Time {
	return c.expiresAt
}

// Attempts returns the number of wrong guesses recorded so far.
func (c *OneTimeCode) Attempts() int {
	return c.attempts
}

// MaxAttempts returns the attempt ceiling.
func (c *OneTimeCode) MaxAttempts() int {
	return c.maxAttempts
}

// IsConsumed reports whether the code has been used up, successfully or not.
func (c *OneTimeCode) IsConsumed() bool {
	return c.consumed
}

// VerifiedAt returns the successful verification timestamp, or nil.
func (c *OneTimeCode) VerifiedAt() *time.Time {
	return c.verifiedAt
}

// IsDead reports whether the code can never verify again: consumed, or past
// expiry at the given instant. Dead codes are what the cleanup job purges.
func (c *OneTimeCode) IsDead(now time.Time) bool {
	return c.consumed || now.After(c.expiresAt)
}

// Submit checks a guess against the code and mutates the record accordingly.
//
// Failure modes, all surfacing as errs.ErrInvalidCode with no further detail:
//   - the code is already consumed
//   - the code expired (consumed on the way out to prevent resurrection)
//   - the attempt ceiling was reached (likewise consumed)
//   - the guess does not match (attempt counter incremented; reaching the
//     ceiling consumes the record)
//
// On a match the code is marked consumed and verified. Submit is
// idempotent-safe: a second call after success fails.
func (c *OneTimeCode) Submit(value string, now time.Time) error {
	if c.consumed {
		return errs.ErrInvalidCode
	}

	if now.After(c.expiresAt) {
		c.consumed = true
		return errs.ErrInvalidCode
	}

	if c.attempts >= c.maxAttempts {
		c.consumed = true
		return errs.ErrInvalidCode
	}

	if value != c.value {
		c.attempts++
		if c.attempts >= c.maxAttempts {
			c.consumed = true
		}
		return errs.ErrInvalidCode
	}

	c.consumed = true
	c.verifiedAt = &now
	return nil
}

// Revoke consumes the code without verifying it. Used when a fresh code is
// issued for the same order and phase, so only the newest code can verify.
func (c *OneTimeCode) Revoke() {
	c.consumed = true
}

func (c *OneTimeCode) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *OneTimeCode) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}
