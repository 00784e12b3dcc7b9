package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
)

// GetCourierEarningsQueryHandler reads a courier's ledger from the database.
type GetCourierEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierEarningsQueryHandler creates a handler for ledger queries.
func NewGetCourierEarningsQueryHandler(db *gorm.DB) GetCourierEarningsQueryHandler {
	return GetCourierEarningsQueryHandler{db: db}
}

// Handle returns the courier's ledger rows, newest first, and their sum.
// The sum is computed over the rows rather than read from the wallet
// column; the two agree because credits and rows are written in the same
// transaction.
func (h GetCourierEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierEarningsQuery,
) (GetCourierEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierEarningsQueryResponse{}, err
	}

	response := GetCourierEarningsQueryResponse{
		Rows: make([]CourierEarningRow, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			amount,
			category,
			created_at
		FROM earnings
		WHERE courier_id = ?
		ORDER BY created_at DESC, id
	`, query.CourierID().String()).Rows()
	if err != nil {
		return GetCourierEarningsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var row CourierEarningRow
		var id, orderID uuid.UUID
		var category int

		err = rows.Scan(
			&id,
			&orderID,
			&row.Amount,
			&category,
			&row.CreatedAt,
		)
		if err != nil {
			return GetCourierEarningsQueryResponse{}, err
		}

		rowID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetCourierEarningsQueryResponse{}, idErr
		}
		row.ID = rowID

		oID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return GetCourierEarningsQueryResponse{}, idErr
		}
		row.OrderID = oID

		row.Category = earning.Category(category).String()
		response.Rows = append(response.Rows, row)
		response.Total += row.Amount
	}

	if err = rows.Err(); err != nil {
		return GetCourierEarningsQueryResponse{}, err
	}

	return response, nil
}
