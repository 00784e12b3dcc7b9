package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierEarningsQueryIsNotConstructed = errors.New(
	"GetCourierEarningsQuery must be created via NewGetCourierEarningsQuery constructor",
)

// GetCourierEarningsQuery retrieves a courier's earnings ledger and wallet
// total.
type GetCourierEarningsQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierEarningsQuery creates a query for a courier's ledger.
func NewGetCourierEarningsQuery(courierID kernel.UUID) (GetCourierEarningsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierEarningsQuery{}, err
	}

	return GetCourierEarningsQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierEarningsQueryIsNotConstructed)
}

// CourierID returns the courier whose ledger is requested.
func (q GetCourierEarningsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// CourierEarningRow is one ledger entry in the response.
type CourierEarningRow struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Amount    int64
	Category  string
	CreatedAt time.Time
}

// GetCourierEarningsQueryResponse carries the ledger rows, newest first,
// and the sum over all of them.
type GetCourierEarningsQueryResponse struct {
	Rows  []CourierEarningRow
	Total int64
}
