package services

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// CodeStore is the persistence surface the verifier needs. Satisfied by
// ports.CodeRepository.
type CodeStore interface {
	Add(ctx context.Context, code *handoff.OneTimeCode) error
	Update(ctx context.Context, code *handoff.OneTimeCode) error
	GetActiveByOrderAndPhase(ctx context.Context, orderID kernel.UUID, phase handoff.Phase) (*handoff.OneTimeCode, error)
}

// HandoffVerifier issues and checks the one-time codes that gate physical
// handoffs: the restaurant's pickup code and the customer's delivery code.
//
// Business rules:
//   - at most one live code exists per (order, phase); issuing a new one
//     revokes the previous
//   - verification is fail closed: a missing, expired, consumed or
//     exhausted code reads the same as a wrong guess
//   - every submission, right or wrong, is persisted before the verdict
//     is returned
type HandoffVerifier struct {
	ttl         time.Duration
	maxAttempts int
}

// NewHandoffVerifier creates a verifier with the given code lifetime and
// wrong-guess ceiling.
func NewHandoffVerifier(ttl time.Duration, maxAttempts int) (HandoffVerifier, error) {
	if ttl <= 0 {
		return HandoffVerifier{}, errs.NewValueIsRequiredError("ttl")
	}
	if maxAttempts <= 0 {
		return HandoffVerifier{}, errs.NewValueIsRequiredError("maxAttempts")
	}

	return HandoffVerifier{
		ttl:         ttl,
		maxAttempts: maxAttempts,
	}, nil
}

// Issue mints a fresh code for the order and phase and persists it. Any
// previous live code for the same pair is revoked first, so only the newest
// code can ever verify.
func (v HandoffVerifier) Issue(
	ctx context.Context,
	codes CodeStore,
	orderID kernel.UUID,
	phase handoff.Phase,
	now time.Time,
) (*handoff.OneTimeCode, error) {
	prior, err := codes.GetActiveByOrderAndPhase(ctx, orderID, phase)
	switch {
	case err == nil:
		prior.Revoke()
		if err := codes.Update(ctx, prior); err != nil {
			return nil, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// no live code to supersede
	default:
		return nil, err
	}

	code, err := handoff.GenerateCode(kernel.NewUUID(), orderID, phase, now, v.ttl, v.maxAttempts)
	if err != nil {
		return nil, err
	}

	if err := codes.Add(ctx, code); err != nil {
		return nil, err
	}

	return code, nil
}

// Verify checks a submitted value against the live code for the order and
// phase. The resulting state change, consumed flag and attempt counter
// included, is persisted regardless of the verdict. Returns
// errs.ErrInvalidCode on any failure without distinguishing the cause.
func (v HandoffVerifier) Verify(
	ctx context.Context,
	codes CodeStore,
	orderID kernel.UUID,
	phase handoff.Phase,
	value string,
	now time.Time,
) error {
	code, err := codes.GetActiveByOrderAndPhase(ctx, orderID, phase)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.ErrInvalidCode
	}
	if err != nil {
		return err
	}

	submitErr := code.Submit(value, now)

	if err := codes.Update(ctx, code); err != nil {
		return err
	}

	return submitErr
}
