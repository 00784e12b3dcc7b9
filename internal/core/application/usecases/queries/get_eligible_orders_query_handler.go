package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// GetEligibleOrdersQueryHandler reads a city's claim pool from the database.
type GetEligibleOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetEligibleOrdersQueryHandler creates a handler for claim pool listings.
// Requires a GORM database connection for query execution.
func NewGetEligibleOrdersQueryHandler(db *gorm.DB) GetEligibleOrdersQueryHandler {
	return GetEligibleOrdersQueryHandler{db: db}
}

// Handle returns the unclaimed orders in a claim-eligible status for the
// query's city, newest first with the ID as a stable tie-break.
func (h GetEligibleOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetEligibleOrdersQuery,
) ([]GetEligibleOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetEligibleOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			city,
			address,
			status,
			placed_at
		FROM orders
		WHERE city = ?
		  AND courier_id IS NULL
		  AND status IN (?, ?, ?)
		ORDER BY placed_at DESC, id
	`, query.City(), order.Confirmed, order.Preparing, order.Ready).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetEligibleOrdersQueryResponse
		var id, restaurantID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&restaurantID,
			&resp.City,
			&resp.Address,
			&status,
			&resp.PlacedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		rID, idErr := kernel.UUIDFromBytes(restaurantID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.RestaurantID = rID

		resp.Status = order.Status(status).String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
