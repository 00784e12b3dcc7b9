// Package assignmentrepo provides data transfer objects and mapping
// functions for assignment persistence.
//
// The table carries an active flag mirroring the assignment's non-terminal
// status, with partial unique indexes over it. The database therefore
// enforces at most one active assignment per order and per courier even if
// application-level checks are bypassed.
package assignmentrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentDTO represents the database structure for persisting assignments.
type AssignmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;uniqueIndex:uniq_active_assignment_order,where:active"`
	CourierID   uuid.UUID `gorm:"type:uuid;uniqueIndex:uniq_active_assignment_courier,where:active"`
	Status      int
	Active      bool `gorm:"index"`
	CreatedAt   time.Time
	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	RejectedAt  *time.Time
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment to its database representation.
func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		CourierID:   aggregate.CourierID().Bytes(),
		Status:      int(aggregate.Status()),
		Active:      aggregate.IsActive(),
		CreatedAt:   aggregate.CreatedAt(),
		AcceptedAt:  aggregate.AcceptedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		RejectedAt:  aggregate.RejectedAt(),
	}
}

// toDomain converts a database row to an assignment using RestoreAssignment.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, orderID, courierID,
		assignment.Status(dto.Status),
		dto.CreatedAt, dto.AcceptedAt, dto.PickedUpAt, dto.DeliveredAt, dto.RejectedAt,
	)
}
