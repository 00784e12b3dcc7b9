package earningrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/earning"
)

// EarningDTO is the database representation of earning.Earning. Rows are
// written through the domain model and read back only by the query side,
// hence no reverse mapping here.
type EarningDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID uuid.UUID `gorm:"type:uuid;index"`
	OrderID   uuid.UUID `gorm:"type:uuid"`
	Amount    int64
	Category  int
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for GORM.
func (EarningDTO) TableName() string {
	return "earnings"
}

func fromDomain(e *earning.Earning) EarningDTO {
	return EarningDTO{
		ID:        e.ID().Bytes(),
		CourierID: e.CourierID().Bytes(),
		OrderID:   e.OrderID().Bytes(),
		Amount:    e.Amount().Amount(),
		Category:  int(e.Category()),
		CreatedAt: e.CreatedAt(),
	}
}
