package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

type MockCodeStore struct{ mock.Mock }

func (m *MockCodeStore) Add(ctx context.Context, code *handoff.OneTimeCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockCodeStore) Update(ctx context.Context, code *handoff.OneTimeCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockCodeStore) GetActiveByOrderAndPhase(
	ctx context.Context, orderID kernel.UUID, phase handoff.Phase,
) (*handoff.OneTimeCode, error) {
	args := m.Called(ctx, orderID, phase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*handoff.OneTimeCode), args.Error(1)
}

func newVerifier(t *testing.T) services.HandoffVerifier {
	t.Helper()
	v, err := services.NewHandoffVerifier(10*time.Minute, 5)
	require.NoError(t, err)
	return v
}

func Test_NewHandoffVerifier_RejectsInvalidConfig(t *testing.T) {
	_, err := services.NewHandoffVerifier(0, 5)
	assert.Error(t, err)

	_, err = services.NewHandoffVerifier(time.Minute, 0)
	assert.Error(t, err)
}

func Test_HandoffVerifier_Issue_NoPriorCode(t *testing.T) {
	ctx := t.Context()
	verifier := newVerifier(t)
	orderID := kernel.NewUUID()
	now := time.Now().UTC()

	store := new(MockCodeStore)
	mock.InOrder(
		store.On("GetActiveByOrderAndPhase", ctx, orderID, handoff.PhasePickup).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID.String())).Once(),
		store.On("Add", ctx, mock.AnythingOfType("*handoff.OneTimeCode")).Return(nil).Once(),
	)

	code, err := verifier.Issue(ctx, store, orderID, handoff.PhasePickup, now)

	require.NoError(t, err)
	assert.Equal(t, orderID, code.OrderID())
	assert.Equal(t, handoff.PhasePickup, code.Phase())
	assert.Len(t, code.Value(), handoff.CodeLength)
	assert.Equal(t, now.Add(10*time.Minute), code.ExpiresAt())
	store.AssertExpectations(t)
}

func Test_HandoffVerifier_Issue_RevokesPriorCode(t *testing.T) {
	ctx := t.Context()
	verifier := newVerifier(t)
	orderID := kernel.NewUUID()
	now := time.Now().UTC()

	prior, err := handoff.GenerateCode(kernel.NewUUID(), orderID, handoff.PhaseDelivery, now, time.Minute, 3)
	require.NoError(t, err)

	store := new(MockCodeStore)
	mock.InOrder(
		store.On("GetActiveByOrderAndPhase", ctx, orderID, handoff.PhaseDelivery).
			Return(prior, nil).Once(),
		store.On("Update", ctx, prior).Return(nil).Once(),
		store.On("Add", ctx, mock.AnythingOfType("*handoff.OneTimeCode")).Return(nil).Once(),
	)

	fresh, err := verifier.Issue(ctx, store, orderID, handoff.PhaseDelivery, now)

	require.NoError(t, err)
	assert.True(t, prior.IsConsumed())
	assert.False(t, fresh.IsConsumed())
	assert.NotEqual(t, prior.ID(), fresh.ID())
	store.AssertExpectations(t)
}

func Test_HandoffVerifier_Issue_StoreError(t *testing.T) {
	ctx := t.Context()
	verifier := newVerifier(t)
	orderID := kernel.NewUUID()

	store := new(MockCodeStore)
	store.On("GetActiveByOrderAndPhase", ctx, orderID, handoff.PhasePickup).
		Return(nil, errors.New("connection reset")).Once()

	code, err := verifier.Issue(ctx, store, orderID, handoff.PhasePickup, time.Now().UTC())

	require.Error(t, err)
	assert.Nil(t, code)
	store.AssertNotCalled(t, "Add")
}

func Test_HandoffVerifier_Verify_Success(t *testing.T) {
	ctx := t.Context()
	verifier := newVerifier(t)
	orderID := kernel.NewUUID()
	now := time.Now().UTC()

	code, err := handoff.GenerateCode(kernel.NewUUID(), orderID, handoff.PhasePickup, now, time.Minute, 3)
	require.NoError(t, err)

	store := new(MockCodeStore)
	mock.InOrder(
		store.On("GetActiveByOrderAndPhase", ctx, orderID, handoff.PhasePickup).
			Return(code, nil).Once(),
		store.On("Update", ctx, code).Return(nil).Once(),
	)

	err = verifier.Verify(ctx, store, orderID, handoff.PhasePickup, code.Value(), now)

	require.NoError(t, err)
	assert.True(t, code.IsConsumed())
	require.NotNil(t, code.VerifiedAt())
	store.AssertExpectations(t)
}

func Test_HandoffVerifier_Verify_WrongGuessIsPersisted(t *testing.T) {
	ctx := t.Context()
	verifier := newVerifier(t)
	orderID := kernel.NewUUID()
	now := time.Now().UTC()

	code, err := handoff.GenerateCode(kernel.NewUUID(), orderID, handoff.PhaseDelivery, now, time.Minute, 3)
	require.NoError(t, err)

	store := new(MockCodeStore)
	mock.InOrder(
		store.On("GetActiveByOrderAndPhase", ctx, orderID, handoff.PhaseDelivery).
			Return(code, nil).Once(),
		store.On("Update", ctx, code).Return(nil).Once(),
	)

	err = verifier.Verify(ctx, store, orderID, handoff.PhaseDelivery, "000000", now.Add(time.Second))
	if err == nil {
		// one-in-a-million collision with the generated value
		t.Skip("guess matched the generated code")
	}

	require.ErrorIs(t, err, errs.ErrInvalidCode)
	assert.Equal(t, 1, code.Attempts())
	store.AssertExpectations(t)
}

func Test_HandoffVerifier_Verify_NoLiveCode(t *testing.T) {
	ctx := t.Context()
	verifier := newVerifier(t)
	orderID := kernel.NewUUID()

	store := new(MockCodeStore)
	store.On("GetActiveByOrderAndPhase", ctx, orderID, handoff.PhasePickup).
		Return(nil, errs.NewObjectNotFoundError("orderID", orderID.String())).Once()

	err := verifier.Verify(ctx, store, orderID, handoff.PhasePickup, "123456", time.Now().UTC())

	require.ErrorIs(t, err, errs.ErrInvalidCode)
	store.AssertNotCalled(t, "Update")
}
