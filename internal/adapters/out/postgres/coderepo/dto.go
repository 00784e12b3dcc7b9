package coderepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/model/kernel"
)

// CodeDTO is the database representation of handoff.OneTimeCode.
type CodeDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index:idx_codes_order_phase"`
	Phase       int       `gorm:"index:idx_codes_order_phase"`
	Value       string
	ExpiresAt   time.Time `gorm:"index"`
	Attempts    int
	MaxAttempts int
	Consumed    bool `gorm:"index"`
	VerifiedAt  *time.Time
}

// TableName specifies the database table name for GORM.
func (CodeDTO) TableName() string {
	return "handoff_codes"
}

func fromDomain(code *handoff.OneTimeCode) CodeDTO {
	return CodeDTO{
		ID:          code.ID().Bytes(),
		OrderID:     code.OrderID().Bytes(),
		Phase:       int(code.Phase()),
		Value:       code.Value(),
		ExpiresAt:   code.ExpiresAt(),
		Attempts:    code.Attempts(),
		MaxAttempts: code.MaxAttempts(),
		Consumed:    code.IsConsumed(),
		VerifiedAt:  code.VerifiedAt(),
	}
}

func toDomain(dto CodeDTO) (*handoff.OneTimeCode, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return handoff.RestoreCode(
		id, orderID,
		handoff.Phase(dto.Phase),
		dto.Value,
		dto.ExpiresAt,
		dto.Attempts, dto.MaxAttempts,
		dto.Consumed,
		dto.VerifiedAt,
	)
}
