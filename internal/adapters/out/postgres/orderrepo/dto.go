// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The city and courier columns are indexed because the claim pool listing
// filters on both.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID  uuid.UUID  `gorm:"type:uuid"`
	CourierID     *uuid.UUID `gorm:"type:uuid;index"`
	City          string     `gorm:"index"`
	Address       string
	Status        int `gorm:"index"`
	PaymentStatus int
	PlacedAt      time.Time
	AssignedAt    *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		RestaurantID:  aggregate.RestaurantID().Bytes(),
		CourierID:     courierID,
		City:          aggregate.City(),
		Address:       aggregate.Address(),
		Status:        int(aggregate.Status()),
		PaymentStatus: int(aggregate.PaymentStatus()),
		PlacedAt:      aggregate.PlacedAt(),
		AssignedAt:    aggregate.AssignedAt(),
		PickedUpAt:    aggregate.PickedUpAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
	}
}

// toDomain converts a database row to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	return order.RestoreOrder(
		id, customerID, restaurantID, courierID,
		dto.City, dto.Address,
		order.Status(dto.Status), order.PaymentStatus(dto.PaymentStatus),
		dto.PlacedAt, dto.AssignedAt, dto.PickedUpAt, dto.DeliveredAt,
	)
}
