package brands

import (
	"testing"

	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const createBrandsTableSQL = `
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
`

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(createBrandsTableSQL).Error)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewRepository(db.Wrap(conn))
}
