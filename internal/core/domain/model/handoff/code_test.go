package handoff_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxAttempts = 5

func generateTestCode(t *testing.T, now time.Time) *handoff.OneTimeCode {
	t.Helper()

	code, err := handoff.GenerateCode(
		kernel.NewUUID(), kernel.NewUUID(), handoff.PhasePickup,
		now, 10*time.Minute, testMaxAttempts,
	)
	require.NoError(t, err)
	return code
}

func TestGenerateCode(t *testing.T) {
	t.Run("valid_code", func(t *testing.T) {
		now := time.Now()
		code := generateTestCode(t, now)

		require.NoError(t, code.Validate())
		assert.Len(t, code.Value(), handoff.CodeLength)
		assert.Regexp(t, `^\d{6}$`, code.Value())
		assert.Equal(t, handoff.PhasePickup, code.Phase())
		assert.Equal(t, now.Add(10*time.Minute), code.ExpiresAt())
		assert.Equal(t, 0, code.Attempts())
		assert.False(t, code.IsConsumed())
		assert.Nil(t, code.VerifiedAt())
	})

	t.Run("invalid_phase", func(t *testing.T) {
		_, err := handoff.GenerateCode(
			kernel.NewUUID(), kernel.NewUUID(), handoff.PhaseUnknown,
			time.Now(), time.Minute, testMaxAttempts,
		)
		require.Error(t, err)
	})

	t.Run("non_positive_ttl", func(t *testing.T) {
		_, err := handoff.GenerateCode(
			kernel.NewUUID(), kernel.NewUUID(), handoff.PhasePickup,
			time.Now(), 0, testMaxAttempts,
		)
		require.Error(t, err)
	})

	t.Run("non_positive_attempt_limit", func(t *testing.T) {
		_, err := handoff.GenerateCode(
			kernel.NewUUID(), kernel.NewUUID(), handoff.PhaseDelivery,
			time.Now(), time.Minute, 0,
		)
		require.Error(t, err)
	})
}

func TestOneTimeCode_Submit(t *testing.T) {
	t.Run("correct_value_verifies_and_consumes", func(t *testing.T) {
		now := time.Now()
		code := generateTestCode(t, now)

		require.NoError(t, code.Submit(code.Value(), now))

		assert.True(t, code.IsConsumed())
		require.NotNil(t, code.VerifiedAt())
		assert.Equal(t, now, *code.VerifiedAt())
	})

	t.Run("single_use_second_submit_fails", func(t *testing.T) {
		now := time.Now()
		code := generateTestCode(t, now)
		value := code.Value()

		require.NoError(t, code.Submit(value, now))
		require.ErrorIs(t, code.Submit(value, now), errs.ErrInvalidCode)
	})

	t.Run("wrong_value_increments_attempts", func(t *testing.T) {
		now := time.Now()
		code := generateTestCode(t, now)

		err := code.Submit("------", now)

		require.ErrorIs(t, err, errs.ErrInvalidCode)
		assert.Equal(t, 1, code.Attempts())
		assert.False(t, code.IsConsumed())

		// Correct value still works before the ceiling.
		require.NoError(t, code.Submit(code.Value(), now))
	})

	t.Run("attempt_ceiling_permanently_invalidates", func(t *testing.T) {
		now := time.Now()
		code := generateTestCode(t, now)

		for range testMaxAttempts {
			require.ErrorIs(t, code.Submit("------", now), errs.ErrInvalidCode)
		}
		assert.True(t, code.IsConsumed())

		// Even the correct value fails once exhausted.
		require.ErrorIs(t, code.Submit(code.Value(), now), errs.ErrInvalidCode)
		assert.Nil(t, code.VerifiedAt())
	})

	t.Run("expired_code_fails_closed_and_is_consumed", func(t *testing.T) {
		now := time.Now()
		code := generateTestCode(t, now)
		late := now.Add(11 * time.Minute)

		require.ErrorIs(t, code.Submit(code.Value(), late), errs.ErrInvalidCode)
		assert.True(t, code.IsConsumed())

		// The window cannot reopen even if the clock runs backwards.
		require.ErrorIs(t, code.Submit(code.Value(), now), errs.ErrInvalidCode)
	})
}

func TestOneTimeCode_IsDead(t *testing.T) {
	now := time.Now()
	code := generateTestCode(t, now)

	assert.False(t, code.IsDead(now))
	assert.True(t, code.IsDead(now.Add(11*time.Minute)))

	require.NoError(t, code.Submit(code.Value(), now))
	assert.True(t, code.IsDead(now))
}

func TestRestoreCode(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		now := time.Now()
		original := generateTestCode(t, now)
		require.ErrorIs(t, original.Submit("------", now), errs.ErrInvalidCode)

		restored, err := handoff.RestoreCode(
			original.ID(),
			original.OrderID(),
			original.Phase(),
			original.Value(),
			original.ExpiresAt(),
			original.Attempts(),
			testMaxAttempts,
			original.IsConsumed(),
			original.VerifiedAt(),
		)

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.Equal(t, 1, restored.Attempts())
		require.NoError(t, restored.Submit(original.Value(), now))
	})

	t.Run("empty_value_rejected", func(t *testing.T) {
		_, err := handoff.RestoreCode(
			kernel.NewUUID(), kernel.NewUUID(), handoff.PhasePickup,
			"", time.Now(), 0, testMaxAttempts, false, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestPhase(t *testing.T) {
	assert.Equal(t, "Pickup", handoff.PhasePickup.String())
	assert.Equal(t, "Delivery", handoff.PhaseDelivery.String())
	assert.Equal(t, "Unknown", handoff.PhaseUnknown.String())

	require.NoError(t, handoff.PhasePickup.Validate())
	require.NoError(t, handoff.PhaseDelivery.Validate())
	require.Error(t, handoff.PhaseUnknown.Validate())
}
