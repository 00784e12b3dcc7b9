package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// FailDeliveryCommandHandler unwinds an in-flight delivery. The assignment
// is rejected, the order reaches its terminal Cancelled status, and the
// courier is released without credit. The reason is advisory; it is carried
// on the failure notification and never gates the unwind.
type FailDeliveryCommandHandler struct {
	uowFactory ClaimUoWFactory
	publisher  ports.EventPublisher
}

// NewFailDeliveryCommandHandler creates a handler for delivery failures.
func NewFailDeliveryCommandHandler(
	uowFactory ClaimUoWFactory, publisher ports.EventPublisher,
) FailDeliveryCommandHandler {
	return FailDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle rejects the courier's assignment and cancels the order.
//
// Rows are locked in the order -> assignment -> courier sequence shared by
// every handler that touches more than one of them, so two unwinding
// transactions cannot deadlock each other.
func (h FailDeliveryCommandHandler) Handle(ctx context.Context, cmd FailDeliveryCommand) error {
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
	courierRepo := uow.CourierRepository()
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
	claimant, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	if err = activeAssignment.Reject(now); err != nil {
		return err
	}
	if err = aggregate.Cancel(); err != nil {
		return err
	}
	if err = claimant.Release(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = assignmentRepo.Update(ctx, activeAssignment); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, claimant); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"order_id": aggregate.ID().String(),
		"city":     aggregate.City(),
		"status":   aggregate.Status().String(),
		"reason":   cmd.Reason(),
	}
	h.publisher.Publish(ports.Event{
		Topic:   ports.OrderTopic(aggregate.ID()),
		Kind:    ports.EventOrderFailed,
		Payload: payload,
	})
	h.publisher.Publish(ports.Event{
		Topic:   ports.UserTopic(aggregate.CustomerID()),
		Kind:    ports.EventOrderFailed,
		Payload: payload,
	})

	return nil
}
