package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// MarkOrderPreparingCommandHandler transitions an order from Confirmed to
// Preparing and notifies the order's subscribers.
type MarkOrderPreparingCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewMarkOrderPreparingCommandHandler creates a handler for the preparation transition.
func NewMarkOrderPreparingCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) MarkOrderPreparingCommandHandler {
	return MarkOrderPreparingCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle loads the order, applies the Preparing transition and persists it.
// An invalid starting status surfaces as errs.ErrInvalidTransition.
func (h MarkOrderPreparingCommandHandler) Handle(ctx context.Context, cmd MarkOrderPreparingCommand) error {
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

	if err = aggregate.StartPreparing(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ports.Event{
		Topic: ports.OrderTopic(aggregate.ID()),
		Kind:  ports.EventOrderPreparing,
		Payload: map[string]any{
			"order_id": aggregate.ID().String(),
			"status":   aggregate.Status().String(),
		},
	})

	return nil
}
