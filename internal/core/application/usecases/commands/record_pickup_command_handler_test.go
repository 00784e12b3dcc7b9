package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

type pickupFixture struct {
	order      *order.Order
	courier    *courier.Courier
	assignment *assignment.Assignment
	code       *handoff.OneTimeCode
}

// newPickupFixture builds a claimed order waiting at the restaurant counter
// with a live pickup code.
func newPickupFixture(t *testing.T) pickupFixture {
	t.Helper()
	now := time.Now().UTC()

	o := newClaimableOrder(t)
	c := newOnlineCourier(t)
	require.NoError(t, c.MarkBusy())
	require.NoError(t, o.Assign(c.ID(), now))

	a, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), c.ID(), now)
	require.NoError(t, err)
	require.NoError(t, a.Accept(now))

	code, err := handoff.GenerateCode(kernel.NewUUID(), o.ID(), handoff.PhasePickup, now, 10*time.Minute, 5)
	require.NoError(t, err)

	return pickupFixture{order: o, courier: c, assignment: a, code: code}
}

func TestRecordPickupCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	fx := newPickupFixture(t)

	cmd, err := commands.NewRecordPickupCommand(fx.order.ID(), fx.courier.ID(), fx.code.Value())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	codeRepo := new(MockCodeRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("CodeRepository").Return(codeRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("GetForUpdate", ctx, fx.order.ID()).Return(fx.order, nil).Once()
	assignmentRepo.On("GetActiveByOrderForUpdate", ctx, fx.order.ID()).Return(fx.assignment, nil).Once()
	codeRepo.On("GetActiveByOrderAndPhase", ctx, fx.order.ID(), handoff.PhasePickup).
		Return(fx.code, nil).Once()
	codeRepo.On("Update", ctx, fx.code).Return(nil).Once()
	orderRepo.On("Update", ctx, fx.order).Return(nil).Once()
	assignmentRepo.On("Update", ctx, fx.assignment).Return(nil).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewRecordPickupCommandHandler(
		FuncHandoffUoWFactory(func() commands.HandoffUoW { return uow }),
		newTestVerifier(t), publisher)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, fx.order.Status())
	assert.Equal(t, assignment.PickedUp, fx.assignment.Status())
	assert.True(t, fx.code.IsConsumed())

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "order:"+fx.order.ID().String(), events[0].Topic)
	uow.AssertExpectations(t)
}

func TestRecordPickupCommandHandler_Handle_WrongCodeCommitsAttempt(t *testing.T) {
	ctx := t.Context()
	fx := newPickupFixture(t)

	cmd, err := commands.NewRecordPickupCommand(fx.order.ID(), fx.courier.ID(), "wrong-guess")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	codeRepo := new(MockCodeRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("CodeRepository").Return(codeRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("GetForUpdate", ctx, fx.order.ID()).Return(fx.order, nil).Once()
	assignmentRepo.On("GetActiveByOrderForUpdate", ctx, fx.order.ID()).Return(fx.assignment, nil).Once()
	codeRepo.On("GetActiveByOrderAndPhase", ctx, fx.order.ID(), handoff.PhasePickup).
		Return(fx.code, nil).Once()
	codeRepo.On("Update", ctx, fx.code).Return(nil).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewRecordPickupCommandHandler(
		FuncHandoffUoWFactory(func() commands.HandoffUoW { return uow }),
		newTestVerifier(t), publisher)

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidCode)
	uow.AssertCalled(t, "Commit", ctx)
	assert.Equal(t, 1, fx.code.Attempts())
	assert.Equal(t, order.Assigned, fx.order.Status(), "order must not advance on a bad code")
	assert.Empty(t, publisher.Events())
	orderRepo.AssertNotCalled(t, "Update", ctx, fx.order)
}

func TestRecordPickupCommandHandler_Handle_WrongCourier(t *testing.T) {
	ctx := t.Context()
	fx := newPickupFixture(t)
	impostor := kernel.NewUUID()

	cmd, err := commands.NewRecordPickupCommand(fx.order.ID(), impostor, fx.code.Value())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("GetForUpdate", ctx, fx.order.ID()).Return(fx.order, nil).Once()
	assignmentRepo.On("GetActiveByOrderForUpdate", ctx, fx.order.ID()).Return(fx.assignment, nil).Once()

	handler := commands.NewRecordPickupCommandHandler(
		FuncHandoffUoWFactory(func() commands.HandoffUoW { return uow }),
		newTestVerifier(t), new(RecordingPublisher))

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.False(t, fx.code.IsConsumed(), "impostor must not burn an attempt")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestRecordPickupCommandHandler_Handle_NoLiveCode(t *testing.T) {
	ctx := t.Context()
	fx := newPickupFixture(t)

	cmd, err := commands.NewRecordPickupCommand(fx.order.ID(), fx.courier.ID(), fx.code.Value())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	codeRepo := new(MockCodeRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("CodeRepository").Return(codeRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("GetForUpdate", ctx, fx.order.ID()).Return(fx.order, nil).Once()
	assignmentRepo.On("GetActiveByOrderForUpdate", ctx, fx.order.ID()).Return(fx.assignment, nil).Once()
	codeRepo.On("GetActiveByOrderAndPhase", ctx, fx.order.ID(), handoff.PhasePickup).
		Return(nil, errs.NewObjectNotFoundError("orderID", fx.order.ID().String())).Once()

	handler := commands.NewRecordPickupCommandHandler(
		FuncHandoffUoWFactory(func() commands.HandoffUoW { return uow }),
		newTestVerifier(t), new(RecordingPublisher))

	err = handler.Handle(ctx, cmd)

	// fails closed: a missing code reads the same as a wrong one
	require.ErrorIs(t, err, errs.ErrInvalidCode)
	assert.Equal(t, order.Assigned, fx.order.Status())
}
