package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("success_normalizes_city", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"  Ahmadabad ", "12 CG Road")

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "ahmedabad", cmd.City())
		assert.Equal(t, "12 CG Road", cmd.Address())
	})

	t.Run("fuzzy_city_spelling", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Mehsna", "3 Station Road")

		require.NoError(t, err)
		assert.Equal(t, "mehsana", cmd.City())
	})

	t.Run("empty_address", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"rajkot", "")

		require.ErrorIs(t, err, commands.ErrAddressIsRequired)
	})

	t.Run("empty_city", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"   ", "12 CG Road")

		require.ErrorIs(t, err, commands.ErrCityIsRequired)
	})

	t.Run("empty_ids", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
			"rajkot", "12 CG Road")

		require.Error(t, err)
	})

	t.Run("zero_value_fails_validate", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
