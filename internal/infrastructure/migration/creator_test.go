package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/marketplace/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add quote ratings", "add_quote_ratings"},
		{"Add-Quote-Ratings", "add_quote_ratings"},
		{"add__quote__ratings", "add_quote_ratings"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_shipping.up.sql":   {},
		"000002_shipping.down.sql": {},
		"000001_init.up.sql":       {},
		"000001_init.down.sql":     {},
		"notes.md":                 {},
		"draft.up.sql":             {},
		"nested":                   {Mode: os.ModeDir},
	}

	list, err := ListMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint(1), list[0].Version)
	assert.Equal(t, "init", list[0].Name)
	assert.Equal(t, "000001_init.down.sql", list[0].DownPath)
	assert.Equal(t, uint(2), list[1].Version)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	list, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	for i, mf := range list {
		assert.Equal(t, uint(i+1), mf.Version, "versions must be contiguous")
		_, err := migrations.FS.Open(mf.DownPath)
		assert.NoError(t, err, "missing down migration for %s", mf.UpPath)
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "Add quote ratings", "ratings per delivered quote")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_quote_ratings.up.sql"), first.UpPath)

	content, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- add_quote_ratings")
	assert.Contains(t, string(content), "-- ratings per delivered quote")
	assert.FileExists(t, first.DownPath)

	second, err := CreateMigration(dir, "drop legacy column", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)
	assert.Equal(t, filepath.Join(dir, "000002_drop_legacy_column.down.sql"), second.DownPath)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}
