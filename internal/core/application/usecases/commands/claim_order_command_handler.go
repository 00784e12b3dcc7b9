package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ClaimOrderCommandHandler settles the race for an order.
//
// The protocol takes a row lock on the order before re-checking
// eligibility, so concurrent claims serialize at the database: the first
// transaction to commit binds the courier, every later one sees the order
// already claimed and fails with errs.ErrConflict. The losing courier's
// state is untouched because the whole transaction rolls back.
type ClaimOrderCommandHandler struct {
	uowFactory ClaimUoWFactory
	publisher  ports.EventPublisher
}

// NewClaimOrderCommandHandler creates a handler for order claims.
func NewClaimOrderCommandHandler(uowFactory ClaimUoWFactory, publisher ports.EventPublisher) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes a claim attempt.
//
// Within one transaction: lock the order row, re-check claim eligibility,
// lock and busy the courier, bind the courier to the order and record the
// accepted assignment. Losing a race surfaces as errs.ErrConflict; an
// offline or already busy courier surfaces as errs.ErrInvalidTransition.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	claimedOrder, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// The listing that advertised this order is stale by now. Only the
	// answer under the row lock counts.
	if !claimedOrder.CanBeClaimed() {
		return fmt.Errorf("%w: order %s is already claimed or not claimable",
			errs.ErrConflict, claimedOrder.ID())
	}

	claimant, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = claimant.MarkBusy(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = claimedOrder.Assign(claimant.ID(), now); err != nil {
		return err
	}

	newAssignment, err := assignment.NewAssignment(
		kernel.NewUUID(), claimedOrder.ID(), claimant.ID(), now)
	if err != nil {
		return err
	}
	if err = newAssignment.Accept(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, claimedOrder); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, claimant); err != nil {
		return err
	}
	if err = uow.AssignmentRepository().Add(ctx, newAssignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"order_id":   claimedOrder.ID().String(),
		"courier_id": claimant.ID().String(),
		"status":     claimedOrder.Status().String(),
	}
	h.publisher.Publish(ports.Event{
		Topic:   ports.OrderTopic(claimedOrder.ID()),
		Kind:    ports.EventOrderClaimed,
		Payload: payload,
	})
	// The city broadcast retracts the order from every courier's feed; the
	// customer gets their own echo.
	h.publisher.Publish(ports.Event{
		Topic:   ports.CityTopic(claimedOrder.City()),
		Kind:    ports.EventOrderClaimed,
		Payload: payload,
	})
	h.publisher.Publish(ports.Event{
		Topic:   ports.UserTopic(claimedOrder.CustomerID()),
		Kind:    ports.EventOrderClaimed,
		Payload: payload,
	})

	return nil
}
