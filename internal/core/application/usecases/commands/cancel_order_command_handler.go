package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CancelOrderCommandHandler withdraws an order. If a courier already
// claimed it, the assignment is rejected and the courier goes back online;
// earnings are never credited for a cancelled order.
type CancelOrderCommandHandler struct {
	uowFactory ClaimUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory ClaimUoWFactory, publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle locks the order, moves it to Cancelled and unwinds the active
// assignment when one exists. Cancelling a terminal order surfaces as
// errs.ErrInvalidTransition. Rows are locked in the order -> assignment ->
// courier sequence shared by every handler that touches more than one of
// them.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	wasClaimable := aggregate.Status() == order.Ready

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	activeAssignment, err := uow.AssignmentRepository().GetActiveByOrderForUpdate(ctx, cmd.OrderID())
	switch {
	case err == nil:
		now := time.Now().UTC()
		if err = activeAssignment.Reject(now); err != nil {
			return err
		}

		claimant, courierErr := uow.CourierRepository().GetForUpdate(ctx, activeAssignment.CourierID())
		if courierErr != nil {
			return courierErr
		}
		if err = claimant.Release(); err != nil {
			return err
		}

		if err = uow.AssignmentRepository().Update(ctx, activeAssignment); err != nil {
			return err
		}
		if err = uow.CourierRepository().Update(ctx, claimant); err != nil {
			return err
		}
	case isNotFound(err):
		// Not claimed yet; nothing to unwind.
	default:
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"order_id": aggregate.ID().String(),
		"city":     aggregate.City(),
		"status":   aggregate.Status().String(),
	}
	h.publisher.Publish(ports.Event{
		Topic:   ports.OrderTopic(aggregate.ID()),
		Kind:    ports.EventOrderCancelled,
		Payload: payload,
	})
	if wasClaimable {
		// Couriers watching the city saw this order advertised; tell them
		// it is gone.
		h.publisher.Publish(ports.Event{
			Topic:   ports.CityTopic(aggregate.City()),
			Kind:    ports.EventOrderCancelled,
			Payload: payload,
		})
	}

	return nil
}

func isNotFound(err error) bool {
	var notFound *errs.ObjectNotFoundError
	return errors.As(err, &notFound)
}
