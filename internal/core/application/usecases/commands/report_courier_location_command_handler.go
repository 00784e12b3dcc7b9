package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// ReportCourierLocationCommandHandler records courier GPS updates, filtered
// through the city centroid lock: an Online courier's reported position is
// replaced by their city's centroid, while Busy and Offline couriers keep
// their real coordinates.
type ReportCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewReportCourierLocationCommandHandler creates a handler for location updates.
func NewReportCourierLocationCommandHandler(uowFactory CourierUoWFactory) ReportCourierLocationCommandHandler {
	return ReportCourierLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the location update through the centroid lock and persists it.
func (h ReportCourierLocationCommandHandler) Handle(ctx context.Context, cmd ReportCourierLocationCommand) error {
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

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.ReportLocation(cmd.Location(), courier.CentroidLock()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
