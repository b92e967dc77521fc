package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Sales Report Indexes")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_sales_report_indexes.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_sales_report_indexes.down.sql"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Sales Report Indexes")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "rollback")
}

func TestCreateMigrationMissingDir(t *testing.T) {
	dir := t.TempDir() + "/nested/migrations"

	_, err := CreateMigration(dir, "initial schema")
	require.NoError(t, err)

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.True(t, strings.HasSuffix(names[0], "_initial_schema"))
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"create products table", "create_products_table"},
		{"Add-Outstanding--Invoices", "add_outstanding_invoices"},
		{"trailing separator ", "trailing_separator"},
		{"MixedCase123", "mixedcase123"},
		{"!!weird??chars", "weirdchars"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), tt.in)
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(dir+"/000001_init.up.sql", []byte("--"), 0644))
	require.NoError(t, os.WriteFile(dir+"/000001_init.down.sql", []byte("--"), 0644))
	require.NoError(t, os.WriteFile(dir+"/000002_indexes.up.sql", []byte("--"), 0644))
	require.NoError(t, os.WriteFile(dir+"/000002_indexes.down.sql", []byte("--"), 0644))
	require.NoError(t, os.WriteFile(dir+"/README.md", []byte("#"), 0644))

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init", "000002_indexes"}, names)
}

func TestListMigrationsMissingDir(t *testing.T) {
	names, err := ListMigrations(t.TempDir() + "/does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, names)
}
