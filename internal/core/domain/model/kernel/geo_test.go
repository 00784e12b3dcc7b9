package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid_coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(23.5880, 72.3693)

		require.NoError(t, err)
		require.NoError(t, point.Validate())
		assert.InDelta(t, 23.5880, point.Latitude(), 0.0001)
		assert.InDelta(t, 72.3693, point.Longitude(), 0.0001)
	})

	t.Run("boundary_coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(kernel.LatitudeMax, kernel.LongitudeMin)

		require.NoError(t, err)
		require.NoError(t, point.Validate())
	})

	t.Run("latitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91.0, 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("longitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var point kernel.GeoPoint

		require.Error(t, point.Validate())
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, err := kernel.NewGeoPoint(23.5880, 72.3693)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(23.5880, 72.3693)
	require.NoError(t, err)
	c, err := kernel.NewGeoPoint(23.0225, 72.5714)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestGeoPoint_String(t *testing.T) {
	point, err := kernel.NewGeoPoint(1.5, -2.25)
	require.NoError(t, err)

	assert.Equal(t, "GeoPoint(1.500000,-2.250000)", point.String())
}
