package earningrepo

import (
	"context"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/earning"
)

// GormEarningRepository implements ports.EarningRepository using GORM.
// The ledger is append-only, so the repository exposes Add and nothing else.
type GormEarningRepository struct {
	db *gorm.DB
}

// NewGormEarningRepository creates a new GORM earning repository.
func NewGormEarningRepository(db *gorm.DB) *GormEarningRepository {
	return &GormEarningRepository{db: db}
}

// Add appends a new earning row to the ledger.
func (r *GormEarningRepository) Add(ctx context.Context, e *earning.Earning) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	return r.db.WithContext(ctx).Create(&dto).Error
}
