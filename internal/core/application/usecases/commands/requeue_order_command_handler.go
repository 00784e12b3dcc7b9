package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RequeueOrderCommandHandler releases a courier from an order without
// cancelling it. The assignment is rejected, the order returns to the claim
// pool (or to its kitchen status if the claim came in early), and the
// courier goes back online without credit.
type RequeueOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
	verifier   services.HandoffVerifier
	publisher  ports.EventPublisher
}

// NewRequeueOrderCommandHandler creates a handler for order requeues.
func NewRequeueOrderCommandHandler(
	uowFactory DeliveryUoWFactory,
	verifier services.HandoffVerifier,
	publisher ports.EventPublisher,
) RequeueOrderCommandHandler {
	return RequeueOrderCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		publisher:  publisher,
	}
}

// Handle rejects the courier's assignment and puts the order back up for
// grabs. A fresh pickup code is minted when the order lands in Ready; the
// previous courier may already have consumed the old one.
//
// Rows are locked in the order -> assignment -> courier -> code sequence
// shared by every handler that touches more than one of them.
func (h RequeueOrderCommandHandler) Handle(ctx context.Context, cmd RequeueOrderCommand) error {
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
	if err = aggregate.Requeue(); err != nil {
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

	backInPool := aggregate.Status() == order.Ready
	if backInPool {
		if _, err = h.verifier.Issue(
			ctx, uow.CodeRepository(), aggregate.ID(), handoff.PhasePickup, now); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ports.Event{
		Topic: ports.OrderTopic(aggregate.ID()),
		Kind:  ports.EventOrderReady,
		Payload: map[string]any{
			"order_id": aggregate.ID().String(),
			"status":   aggregate.Status().String(),
		},
	})
	if backInPool {
		h.publisher.Publish(ports.Event{
			Topic: ports.CityTopic(aggregate.City()),
			Kind:  ports.EventOrderReady,
			Payload: map[string]any{
				"order_id": aggregate.ID().String(),
				"city":     aggregate.City(),
			},
		})
	}

	return nil
}
