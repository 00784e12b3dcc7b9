package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/ports"
)

// SetCourierAvailabilityCommandHandler toggles a courier between Offline
// and Online duty states.
type SetCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
	publisher  ports.EventPublisher
}

// NewSetCourierAvailabilityCommandHandler creates a handler for availability changes.
func NewSetCourierAvailabilityCommandHandler(
	uowFactory CourierUoWFactory, publisher ports.EventPublisher,
) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle loads the courier under a row lock and applies the transition.
// Going online snaps the courier to their city centroid per the location
// lock. A Busy courier going offline surfaces errs.ErrActiveAssignment.
func (h SetCourierAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetCourierAvailabilityCommand) error {
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

	courierRepo := uow.CourierRepository()

	aggregate, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	switch cmd.Target() {
	case courier.Online:
		if err = aggregate.GoOnline(); err != nil {
			return err
		}
		if err = aggregate.ReportLocation(aggregate.Location(), courier.CentroidLock()); err != nil {
			return err
		}
	case courier.Offline:
		if err = aggregate.GoOffline(); err != nil {
			return err
		}
	default:
		return ErrTargetAvailabilityIsInvalid
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ports.Event{
		Topic: ports.UserTopic(aggregate.ID()),
		Kind:  ports.EventCourierAvailable,
		Payload: map[string]any{
			"courier_id":   aggregate.ID().String(),
			"availability": aggregate.Availability().String(),
		},
	})

	return nil
}
