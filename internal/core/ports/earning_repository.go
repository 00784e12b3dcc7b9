package ports

import (
	"context"

	"dispatch/internal/core/domain/model/earning"
)

// EarningRepository defines the persistence contract for the earnings ledger.
// The ledger is append only; there are no update or delete operations.
type EarningRepository interface {
	// Add appends a new ledger row.
	Add(ctx context.Context, row *earning.Earning) error
}
