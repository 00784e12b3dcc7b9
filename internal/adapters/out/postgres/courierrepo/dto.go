// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence.
package courierrepo

import (
	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. The wallet is stored in minor currency units.
type CourierDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	City         string `gorm:"index"`
	Availability int    `gorm:"index"`
	Wallet       int64
	Latitude     float64
	Longitude    float64
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		City:         aggregate.City(),
		Availability: int(aggregate.Availability()),
		Wallet:       aggregate.Wallet().Amount(),
		Latitude:     aggregate.Location().Latitude(),
		Longitude:    aggregate.Location().Longitude(),
	}
}

// toDomain converts a database row to a courier aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	wallet, err := kernel.NewMoney(dto.Wallet)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id, dto.Name, dto.City,
		courier.Availability(dto.Availability), wallet, location,
	)
}
