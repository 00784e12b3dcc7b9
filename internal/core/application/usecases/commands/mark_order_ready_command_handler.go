package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// MarkOrderReadyCommandHandler transitions an order to Ready, mints its
// pickup code and announces the order to the city's claim pool.
//
// The pickup code is persisted in the same transaction as the status
// change: either the order is ready and has a code, or neither happened.
type MarkOrderReadyCommandHandler struct {
	uowFactory ReadyUoWFactory
	verifier   services.HandoffVerifier
	publisher  ports.EventPublisher
}

// NewMarkOrderReadyCommandHandler creates a handler for the ready transition.
func NewMarkOrderReadyCommandHandler(
	uowFactory ReadyUoWFactory,
	verifier services.HandoffVerifier,
	publisher ports.EventPublisher,
) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		publisher:  publisher,
	}
}

// Handle loads the order under a row lock, applies the Ready transition,
// mints the pickup code and commits. After commit the city topic is
// notified so online couriers see the new claimable order, unless an early
// claim already bound a courier.
//
// The returned value is the pickup code. It goes back to the restaurant,
// which hands it to the courier at the counter; RecordPickup closes the loop.
func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}

	if err = aggregate.MarkReady(); err != nil {
		return "", err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return "", err
	}

	code, err := h.verifier.Issue(
		ctx, uow.CodeRepository(), aggregate.ID(), handoff.PhasePickup, time.Now().UTC())
	if err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	payload := map[string]any{
		"order_id": aggregate.ID().String(),
		"city":     aggregate.City(),
		"status":   aggregate.Status().String(),
	}
	if aggregate.Courier() == nil {
		// A claim may have landed while the kitchen was cooking; such an
		// order never enters the eligible pool, so the city stays quiet.
		h.publisher.Publish(ports.Event{
			Topic:   ports.CityTopic(aggregate.City()),
			Kind:    ports.EventOrderReady,
			Payload: payload,
		})
	}
	h.publisher.Publish(ports.Event{
		Topic:   ports.OrderTopic(aggregate.ID()),
		Kind:    ports.EventOrderReady,
		Payload: payload,
	})

	return code.Value(), nil
}
