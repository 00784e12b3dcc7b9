package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in Confirmed status with payment pending and notify the
// customer's stream once committed.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Uses a transaction to ensure the order is properly persisted or rolled
// back on error.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.RestaurantID(),
		cmd.City(), cmd.Address(), time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"order_id": newOrder.ID().String(),
		"status":   newOrder.Status().String(),
	}
	h.publisher.Publish(ports.Event{
		Topic:   ports.UserTopic(newOrder.CustomerID()),
		Kind:    ports.EventOrderConfirmed,
		Payload: payload,
	})
	h.publisher.Publish(ports.Event{
		Topic:   ports.OrderTopic(newOrder.ID()),
		Kind:    ports.EventOrderConfirmed,
		Payload: payload,
	})

	return nil
}
