package coderepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GormCodeRepository implements ports.CodeRepository using GORM.
// Codes are not tracked aggregates: they live and die inside the same
// transaction that touches the order they belong to.
type GormCodeRepository struct {
	db *gorm.DB
}

// NewGormCodeRepository creates a new GORM handoff code repository.
func NewGormCodeRepository(db *gorm.DB) *GormCodeRepository {
	return &GormCodeRepository{db: db}
}

// Add saves a new code to the database.
func (r *GormCodeRepository) Add(ctx context.Context, code *handoff.OneTimeCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	dto := fromDomain(code)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing code to the database.
func (r *GormCodeRepository) Update(ctx context.Context, code *handoff.OneTimeCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	dto := fromDomain(code)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetActiveByOrderAndPhase retrieves the live (not yet consumed) code for an
// order and phase. The row is locked until the transaction ends: two
// concurrent wrong guesses must serialize, or both would read the same
// attempt count and one increment would be lost. Expiry is judged by the
// caller, not the query: a stale but unconsumed code is still returned so
// its verification failure is recorded.
func (r *GormCodeRepository) GetActiveByOrderAndPhase(
	ctx context.Context, orderID kernel.UUID, phase handoff.Phase,
) (*handoff.OneTimeCode, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := phase.Validate(); err != nil {
		return nil, err
	}

	var dto CodeDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "order_id = ? AND phase = ? AND NOT consumed", orderID.Bytes(), int(phase)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active code for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// PurgeDead deletes consumed and expired codes and reports how many rows went.
func (r *GormCodeRepository) PurgeDead(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("consumed OR expires_at < ?", now).
		Delete(&CodeDTO{})
	return result.RowsAffected, result.Error
}
