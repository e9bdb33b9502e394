package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates up and down files", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "Create Bookings", "booking lifecycle table")
		require.NoError(t, err)

		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
		assert.Contains(t, filepath.Base(mf.UpPath), "create_bookings.up.sql")

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "booking lifecycle table")
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Create Bookings", "create_bookings"},
		{"add-invoice-index", "add_invoice_index"},
		{"  spaced  out  ", "spaced_out"},
		{"Already_Snake_Case", "already_snake_case"},
		{"trailing-", "trailing"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.input), tt.input)
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("lists unique base names", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"001_create_bookings.up.sql",
			"001_create_bookings.down.sql",
			"002_create_invoices.up.sql",
			"002_create_invoices.down.sql",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"001_create_bookings", "002_create_invoices"}, migrations)
	})

	t.Run("missing directory yields empty list", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
