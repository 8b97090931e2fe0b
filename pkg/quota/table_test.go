package quota_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/pkg/quota"
)

func TestTable(t *testing.T) {
	t.Parallel()

	t.Run("default table", func(t *testing.T) {
		t.Parallel()
		table := quota.DefaultTable()

		limit, err := table.Cap("trainer")
		require.NoError(t, err)
		assert.Equal(t, 4, limit)

		limit, err = table.Cap("staff")
		require.NoError(t, err)
		assert.Equal(t, 16, limit)

		_, err = table.Cap("student")
		assert.ErrorIs(t, err, quota.ErrUnknownRole)
		assert.Equal(t, []string{"staff", "trainer"}, table.Roles())
	})

	t.Run("copies the input map", func(t *testing.T) {
		t.Parallel()
		caps := map[string]int{"trainer": 2}
		table, err := quota.NewTable(caps)
		require.NoError(t, err)

		caps["trainer"] = 100
		limit, err := table.Cap("trainer")
		require.NoError(t, err)
		assert.Equal(t, 2, limit)
	})

	t.Run("rejects invalid tables", func(t *testing.T) {
		t.Parallel()
		_, err := quota.NewTable(nil)
		assert.ErrorIs(t, err, quota.ErrInvalidTable)
		_, err = quota.NewTable(map[string]int{"staff": -1})
		assert.ErrorIs(t, err, quota.ErrInvalidTable)
	})
}

func TestLoadTable(t *testing.T) {
	t.Parallel()

	t.Run("from reader", func(t *testing.T) {
		t.Parallel()
		table, err := quota.LoadTable(strings.NewReader("daily_limits:\n  trainer: 1\n  admin: 64\n"))
		require.NoError(t, err)

		limit, err := table.Cap("admin")
		require.NoError(t, err)
		assert.Equal(t, 64, limit)
	})

	t.Run("from file via config", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "quota.yaml")
		require.NoError(t, os.WriteFile(path, []byte("daily_limits:\n  staff: 3\n"), 0o600))

		table, err := quota.TableFromConfig(quota.Config{
			DailyLimits: map[string]int{"staff": 16},
			TableFile:   path,
		})
		require.NoError(t, err)

		limit, err := table.Cap("staff")
		require.NoError(t, err)
		assert.Equal(t, 3, limit)
	})

	t.Run("config map without file", func(t *testing.T) {
		t.Parallel()
		table, err := quota.TableFromConfig(quota.Config{DailyLimits: map[string]int{"trainer": 4}})
		require.NoError(t, err)
		assert.Equal(t, []string{"trainer"}, table.Roles())
	})

	t.Run("broken yaml", func(t *testing.T) {
		t.Parallel()
		_, err := quota.LoadTable(strings.NewReader("daily_limits: [1, 2"))
		assert.ErrorIs(t, err, quota.ErrInvalidTable)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := quota.LoadTableFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, quota.ErrInvalidTable)
	})
}
