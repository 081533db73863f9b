package migrate

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsContainSchema(t *testing.T) {
	checks := map[string][]string{
		"*_create_admins_table.sql": {
			"CREATE TABLE IF NOT EXISTS admins",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_username",
			"price_multiplier numeric(6,3)",
		},
		"*_create_brands_table.sql": {
			"CREATE TABLE IF NOT EXISTS brands",
			"tagline text NOT NULL DEFAULT 'powering lives'",
			"category text NOT NULL DEFAULT 'HR-FR'",
		},
		"*_create_products_table.sql": {
			"CREATE TABLE IF NOT EXISTS products",
			"brand_id uuid NOT NULL REFERENCES brands (id)",
		},
		"*_create_quotations_table.sql": {
			"CREATE TABLE IF NOT EXISTS quotations",
			"customername text NOT NULL",
			"contactinfo jsonb",
			"createdat timestamptz",
			"idx_quotations_paid_createdat",
		},
	}

	for pattern, statements := range checks {
		matches, err := fs.Glob(Migrations, EmbeddedDir+"/"+pattern)
		require.NoError(t, err)
		require.Len(t, matches, 1, pattern)

		data, err := fs.ReadFile(Migrations, matches[0])
		require.NoError(t, err)
		for _, stmt := range statements {
			assert.Contains(t, string(data), stmt, matches[0])
		}
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir(EmbeddedDir))
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	err := ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid migration filename")
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Quotation Notes!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_quotation_notes.sql"), path)
	require.NoError(t, ValidateDir(dir))
}

func TestCreateSQLMigrationTableSkeleton(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "create invoices table")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_create_invoices_table.sql"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS invoices")
	assert.Contains(t, string(data), "DROP TABLE IF EXISTS invoices;")
	require.NoError(t, ValidateDir(dir))
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	_, err := CreateSQLMigration(t.TempDir(), " !! ")
	assert.Error(t, err)
}

func TestValidateDirRequiresDropForCreatedTable(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Up\nCREATE TABLE IF NOT EXISTS price_lists (id uuid);\n-- +goose Down\n-- nothing\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250701000000_create_price_lists_table.sql"), []byte(body), 0o644))

	err := ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price_lists")
}

func TestValidateDirRejectsDownBeforeUp(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Down\nDROP TABLE brands;\n-- +goose Up\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250701000000_swap.sql"), []byte(body), 0o644))
	assert.Error(t, ValidateDir(dir))
}

func TestMaybeRunDevSkipsOutsideDev(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "prod"}, FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: true}}
	require.NoError(t, MaybeRunDev(context.Background(), cfg, nil, nil))
}

func TestMaybeRunDevAutoMigratesSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		App:          config.AppConfig{Env: "dev"},
		DB:           config.DBConfig{Driver: config.DriverSQLite},
		FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: true},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	require.NoError(t, MaybeRunDev(context.Background(), cfg, logg, db.Wrap(conn)))
	for _, table := range []string{"admins", "brands", "products", "quotations"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
	assert.True(t, conn.Migrator().HasColumn("quotations", "customername"))
}
