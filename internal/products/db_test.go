package product

import (
	"testing"

	"github.com/angelmondragon/coilbill-backend/internal/brands"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const createCatalogTablesSQL = `
CREATE TABLE brands (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	logo TEXT,
	tagline TEXT NOT NULL DEFAULT 'powering lives',
	category TEXT NOT NULL DEFAULT 'HR-FR',
	is_active BOOLEAN NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE products (
	id TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	brand_id TEXT NOT NULL REFERENCES brands (id),
	list_price NUMERIC NOT NULL DEFAULT 0,
	coil_price NUMERIC NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME
);
`

type testCatalog struct {
	conn     *gorm.DB
	products *Repository
	brands   *brands.Repository
}

func newTestCatalog(t *testing.T) *testCatalog {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(createCatalogTablesSQL).Error)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	client := db.Wrap(conn)
	return &testCatalog{conn: conn, products: NewRepository(client), brands: brands.NewRepository(client)}
}

func (c *testCatalog) seedBrand(t *testing.T, name string) *models.Brand {
	t.Helper()
	b := &models.Brand{Name: name, Tagline: models.DefaultBrandTagline, Category: models.DefaultBrandCategory, IsActive: true}
	require.NoError(t, c.conn.Create(b).Error)
	return b
}
