package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// StartTransitCommandHandler moves the order onto the road and mints the
// delivery code for the final handoff.
type StartTransitCommandHandler struct {
	uowFactory HandoffUoWFactory
	verifier   services.HandoffVerifier
	publisher  ports.EventPublisher
}

// NewStartTransitCommandHandler creates a handler for the transit transition.
func NewStartTransitCommandHandler(
	uowFactory HandoffUoWFactory,
	verifier services.HandoffVerifier,
	publisher ports.EventPublisher,
) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		publisher:  publisher,
	}
}

// Handle advances the order and assignment to the in-transit state and
// issues the delivery code in the same transaction. The code value is
// pushed to the customer's stream after commit, never to the courier.
// Rows are locked in the order -> assignment -> code sequence shared by
// every handler that touches more than one of them.
func (h StartTransitCommandHandler) Handle(ctx context.Context, cmd StartTransitCommand) error {
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

	if err = aggregate.StartTransit(); err != nil {
		return err
	}
	if err = activeAssignment.StartTransit(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = assignmentRepo.Update(ctx, activeAssignment); err != nil {
		return err
	}

	code, err := h.verifier.Issue(
		ctx, uow.CodeRepository(), aggregate.ID(), handoff.PhaseDelivery, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ports.Event{
		Topic: ports.OrderTopic(aggregate.ID()),
		Kind:  ports.EventOrderInTransit,
		Payload: map[string]any{
			"order_id": aggregate.ID().String(),
			"status":   aggregate.Status().String(),
		},
	})
	h.publisher.Publish(ports.Event{
		Topic: ports.UserTopic(aggregate.CustomerID()),
		Kind:  ports.EventOrderInTransit,
		Payload: map[string]any{
			"order_id":      aggregate.ID().String(),
			"delivery_code": code.Value(),
		},
	})

	return nil
}
