package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "Unknown"},
		{order.Confirmed, "Confirmed"},
		{order.Preparing, "Preparing"},
		{order.Ready, "Ready"},
		{order.Assigned, "Assigned"},
		{order.PickedUp, "PickedUp"},
		{order.OnTheWay, "OnTheWay"},
		{order.Delivered, "Delivered"},
		{order.Cancelled, "Cancelled"},
		{order.Status(42), "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Confirmed, order.Preparing, order.Ready, order.Assigned,
			order.PickedUp, order.OnTheWay, order.Delivered, order.Cancelled,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatus_IsEligibleForClaim(t *testing.T) {
	assert.True(t, order.Confirmed.IsEligibleForClaim())
	assert.True(t, order.Preparing.IsEligibleForClaim())
	assert.True(t, order.Ready.IsEligibleForClaim())

	assert.False(t, order.Assigned.IsEligibleForClaim())
	assert.False(t, order.PickedUp.IsEligibleForClaim())
	assert.False(t, order.OnTheWay.IsEligibleForClaim())
	assert.False(t, order.Delivered.IsEligibleForClaim())
	assert.False(t, order.Cancelled.IsEligibleForClaim())
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("happy_path", func(t *testing.T) {
		s := order.Confirmed

		s, err := s.Prepare()
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, s)

		s, err = s.MakeReady()
		require.NoError(t, err)
		assert.Equal(t, order.Ready, s)

		s, err = s.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, s)

		s, err = s.PickUp()
		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, s)

		s, err = s.StartTransit()
		require.NoError(t, err)
		assert.Equal(t, order.OnTheWay, s)

		s, err = s.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, s)
	})

	t.Run("assign_before_ready_keeps_kitchen_status", func(t *testing.T) {
		s, err := order.Confirmed.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, s)

		s, err = order.Preparing.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, s)
	})

	t.Run("skipping_a_step_is_rejected", func(t *testing.T) {
		testCases := []struct {
			name       string
			transition func() (order.Status, error)
		}{
			{"confirmed_cannot_pick_up", func() (order.Status, error) { return order.Confirmed.PickUp() }},
			{"assigned_cannot_deliver", func() (order.Status, error) { return order.Assigned.Deliver() }},
			{"ready_cannot_start_transit", func() (order.Status, error) { return order.Ready.StartTransit() }},
			{"picked_up_cannot_deliver", func() (order.Status, error) { return order.PickedUp.Deliver() }},
			{"delivered_cannot_assign", func() (order.Status, error) { return order.Delivered.Assign() }},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.transition()
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			})
		}
	})

	t.Run("cancel_from_non_terminal", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Confirmed, order.Preparing, order.Ready,
			order.Assigned, order.PickedUp, order.OnTheWay,
		} {
			cancelled, err := s.Cancel()
			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, cancelled)
		}
	})

	t.Run("cancel_from_terminal_is_rejected", func(t *testing.T) {
		_, err := order.Delivered.Cancel()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = order.Cancelled.Cancel()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	t.Run("kitchen_statuses_accept_early_claims", func(t *testing.T) {
		for _, s := range []order.Status{order.Confirmed, order.Preparing} {
			require.NoError(t, s.ValidateCanHaveCourier(false))
			require.NoError(t, s.ValidateCanHaveCourier(true))
		}
	})

	t.Run("ready_must_have_no_courier", func(t *testing.T) {
		require.NoError(t, order.Ready.ValidateCanHaveCourier(false))
		require.Error(t, order.Ready.ValidateCanHaveCourier(true))
	})

	t.Run("in_progress_statuses_require_courier", func(t *testing.T) {
		for _, s := range []order.Status{order.Assigned, order.PickedUp, order.OnTheWay, order.Delivered} {
			require.NoError(t, s.ValidateCanHaveCourier(true))
			require.Error(t, s.ValidateCanHaveCourier(false))
		}
	})

	t.Run("cancelled_accepts_both", func(t *testing.T) {
		require.NoError(t, order.Cancelled.ValidateCanHaveCourier(true))
		require.NoError(t, order.Cancelled.ValidateCanHaveCourier(false))
	})
}

func TestPaymentStatus(t *testing.T) {
	t.Run("string_representations", func(t *testing.T) {
		assert.Equal(t, "Pending", order.PaymentPending.String())
		assert.Equal(t, "Paid", order.PaymentPaid.String())
		assert.Equal(t, "Refunded", order.PaymentRefunded.String())
		assert.Equal(t, "Unknown", order.PaymentUnknown.String())
	})

	t.Run("validate", func(t *testing.T) {
		require.NoError(t, order.PaymentPending.Validate())
		require.NoError(t, order.PaymentPaid.Validate())
		require.Error(t, order.PaymentUnknown.Validate())
		require.Error(t, order.PaymentStatus(99).Validate())
	})
}
