package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RecordPickupCommandHandler verifies the restaurant's pickup code and
// advances the order and assignment past the pickup handoff.
type RecordPickupCommandHandler struct {
	uowFactory HandoffUoWFactory
	verifier   services.HandoffVerifier
	publisher  ports.EventPublisher
}

// NewRecordPickupCommandHandler creates a handler for pickup verification.
func NewRecordPickupCommandHandler(
	uowFactory HandoffUoWFactory,
	verifier services.HandoffVerifier,
	publisher ports.EventPublisher,
) RecordPickupCommandHandler {
	return RecordPickupCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		publisher:  publisher,
	}
}

// Handle checks that the courier holds the order's active assignment,
// verifies the submitted code and, on success, marks the order and the
// assignment picked up in one transaction.
//
// A wrong guess returns errs.ErrInvalidCode but still commits, so the
// burned attempt survives. The order and assignment are untouched in that
// branch. Rows are locked in the order -> assignment -> code sequence
// shared by every handler that touches more than one of them.
func (h RecordPickupCommandHandler) Handle(ctx context.Context, cmd RecordPickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	assignmentRepo := uow.AssignmentRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	activeAssignment, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !activeAssignment.CourierID().IsEqual(cmd.CourierID()) {
		return fmt.Errorf("%w: courier %s does not hold the assignment for order %s",
			errs.ErrConflict, cmd.CourierID(), cmd.OrderID())
	}

	now := time.Now().UTC()

	verifyErr := h.verifier.Verify(
		ctx, uow.CodeRepository(), cmd.OrderID(), handoff.PhasePickup, cmd.Code(), now)
	if errors.Is(verifyErr, errs.ErrInvalidCode) {
		if err := uow.Commit(ctx); err != nil {
			return err
		}
		return verifyErr
	}
	if verifyErr != nil {
		return verifyErr
	}

	if err = aggregate.MarkPickedUp(now); err != nil {
		return err
	}
	if err = activeAssignment.MarkPickedUp(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = assignmentRepo.Update(ctx, activeAssignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ports.Event{
		Topic: ports.OrderTopic(aggregate.ID()),
		Kind:  ports.EventOrderPickedUp,
		Payload: map[string]any{
			"order_id": aggregate.ID().String(),
			"status":   aggregate.Status().String(),
		},
	})

	return nil
}
