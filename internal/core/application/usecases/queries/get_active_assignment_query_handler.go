package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// GetActiveAssignmentQueryHandler reads a courier's in-flight delivery.
type GetActiveAssignmentQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveAssignmentQueryHandler creates a handler for active assignment lookups.
func NewGetActiveAssignmentQueryHandler(db *gorm.DB) GetActiveAssignmentQueryHandler {
	return GetActiveAssignmentQueryHandler{db: db}
}

// Handle returns the courier's single active assignment joined with its
// order, or errs.ObjectNotFoundError when the courier is idle.
func (h GetActiveAssignmentQueryHandler) Handle(
	ctx context.Context,
	query GetActiveAssignmentQuery,
) (GetActiveAssignmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveAssignmentQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.order_id,
			a.status,
			o.status,
			o.city,
			o.address,
			a.created_at
		FROM assignments a
		JOIN orders o ON o.id = a.order_id
		WHERE a.courier_id = ?
		  AND a.active
	`, query.CourierID().String()).Row()

	var resp GetActiveAssignmentQueryResponse
	var id, orderID uuid.UUID
	var status, orderStatus int

	err := row.Scan(
		&id,
		&orderID,
		&status,
		&orderStatus,
		&resp.City,
		&resp.Address,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetActiveAssignmentQueryResponse{},
			errs.NewObjectNotFoundError("courierID", query.CourierID().String())
	}
	if err != nil {
		return GetActiveAssignmentQueryResponse{}, err
	}

	assignmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetActiveAssignmentQueryResponse{}, err
	}
	resp.AssignmentID = assignmentID

	oID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return GetActiveAssignmentQueryResponse{}, err
	}
	resp.OrderID = oID

	resp.Status = assignment.Status(status).String()
	resp.OrderStatus = order.Status(orderStatus).String()
	return resp, nil
}
