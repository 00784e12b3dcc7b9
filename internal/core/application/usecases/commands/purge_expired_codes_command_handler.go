package commands

import (
	"context"
	"time"
)

// PurgeExpiredCodesCommandHandler deletes dead handoff codes from storage.
type PurgeExpiredCodesCommandHandler struct {
	uowFactory CodeUoWFactory
}

// NewPurgeExpiredCodesCommandHandler creates a handler for code cleanup.
func NewPurgeExpiredCodesCommandHandler(uowFactory CodeUoWFactory) PurgeExpiredCodesCommandHandler {
	return PurgeExpiredCodesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle purges consumed and expired codes and returns how many rows were removed.
func (h PurgeExpiredCodesCommandHandler) Handle(ctx context.Context, cmd PurgeExpiredCodesCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.CodeRepository().PurgeDead(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
