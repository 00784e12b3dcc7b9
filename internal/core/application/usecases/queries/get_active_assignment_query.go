package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetActiveAssignmentQueryIsNotConstructed = errors.New(
	"GetActiveAssignmentQuery must be created via NewGetActiveAssignmentQuery constructor",
)

// GetActiveAssignmentQuery retrieves the delivery a courier is currently
// working on, if any.
type GetActiveAssignmentQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveAssignmentQuery creates a query for a courier's active work.
func NewGetActiveAssignmentQuery(courierID kernel.UUID) (GetActiveAssignmentQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetActiveAssignmentQuery{}, err
	}

	return GetActiveAssignmentQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveAssignmentQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveAssignmentQueryIsNotConstructed)
}

// CourierID returns the courier whose active assignment is requested.
func (q GetActiveAssignmentQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetActiveAssignmentQueryResponse describes the courier's in-flight
// delivery joined with the order it serves.
type GetActiveAssignmentQueryResponse struct {
	AssignmentID kernel.UUID
	OrderID      kernel.UUID
	Status       string
	OrderStatus  string
	City         string
	Address      string
	CreatedAt    time.Time
}
