package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
)

func TestNewGetCourierEarningsQuery(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		courierID := kernel.NewUUID()
		query, err := queries.NewGetCourierEarningsQuery(courierID)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, courierID.IsEqual(query.CourierID()))
	})

	t.Run("empty_courier_id", func(t *testing.T) {
		_, err := queries.NewGetCourierEarningsQuery(kernel.UUID{})
		require.Error(t, err)
	})
}

func TestNewGetActiveAssignmentQuery(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		query, err := queries.NewGetActiveAssignmentQuery(kernel.NewUUID())
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
	})

	t.Run("empty_courier_id", func(t *testing.T) {
		_, err := queries.NewGetActiveAssignmentQuery(kernel.UUID{})
		require.Error(t, err)
	})
}
