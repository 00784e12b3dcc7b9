package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RecordDeliveryCommandHandler completes a delivery. It is the widest
// transaction in the system: the order reaches Delivered, the assignment
// closes, the courier is released and credited, and the earnings ledger
// gains a row. All of it commits together or none of it does.
type RecordDeliveryCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	verifier    services.HandoffVerifier
	publisher   ports.EventPublisher
	deliveryFee kernel.Money
}

// NewRecordDeliveryCommandHandler creates a handler for delivery completion.
// The delivery fee is the fixed amount credited to the courier per order.
func NewRecordDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	verifier services.HandoffVerifier,
	publisher ports.EventPublisher,
	deliveryFee kernel.Money,
) RecordDeliveryCommandHandler {
	return RecordDeliveryCommandHandler{
		uowFactory:  uowFactory,
		verifier:    verifier,
		publisher:   publisher,
		deliveryFee: deliveryFee,
	}
}

// Handle verifies the delivery code and closes out the order.
//
// A wrong guess returns errs.ErrInvalidCode but still commits so the
// burned attempt survives; everything else stays untouched in that branch.
// Rows are locked in the order -> assignment -> courier -> code sequence
// shared by every handler that touches more than one of them.
func (h RecordDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryCommand) error {
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

	verifyErr := h.verifier.Verify(
		ctx, uow.CodeRepository(), cmd.OrderID(), handoff.PhaseDelivery, cmd.Code(), now)
	if errors.Is(verifyErr, errs.ErrInvalidCode) {
		if err := uow.Commit(ctx); err != nil {
			return err
		}
		return verifyErr
	}
	if verifyErr != nil {
		return verifyErr
	}

	if err = aggregate.MarkDelivered(now); err != nil {
		return err
	}
	if err = activeAssignment.MarkDelivered(now); err != nil {
		return err
	}
	if err = claimant.Release(); err != nil {
		return err
	}
	if err = claimant.Credit(h.deliveryFee); err != nil {
		return err
	}

	row, err := earning.NewEarning(
		kernel.NewUUID(), claimant.ID(), aggregate.ID(),
		h.deliveryFee, earning.CategoryDelivery, now)
	if err != nil {
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
	if err = uow.EarningRepository().Add(ctx, row); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"order_id": aggregate.ID().String(),
		"status":   aggregate.Status().String(),
	}
	h.publisher.Publish(ports.Event{
		Topic:   ports.OrderTopic(aggregate.ID()),
		Kind:    ports.EventOrderDelivered,
		Payload: payload,
	})
	h.publisher.Publish(ports.Event{
		Topic:   ports.UserTopic(aggregate.CustomerID()),
		Kind:    ports.EventOrderDelivered,
		Payload: payload,
	})
	h.publisher.Publish(ports.Event{
		Topic: ports.UserTopic(claimant.ID()),
		Kind:  ports.EventCourierCredited,
		Payload: map[string]any{
			"order_id": aggregate.ID().String(),
			"amount":   h.deliveryFee.Amount(),
			"wallet":   claimant.Wallet().Amount(),
		},
	})

	return nil
}
