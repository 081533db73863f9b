package quotations

import (
	"testing"

	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const createQuotationsTableSQL = `
CREATE TABLE quotations (
	id TEXT PRIMARY KEY,
	brand TEXT NOT NULL,
	customername TEXT NOT NULL,
	date DATETIME NOT NULL,
	products TEXT NOT NULL DEFAULT '[]',
	subtotal NUMERIC NOT NULL DEFAULT 0,
	gst NUMERIC NOT NULL DEFAULT 0,
	total NUMERIC NOT NULL DEFAULT 0,
	paid BOOLEAN NOT NULL DEFAULT 0,
	terms TEXT,
	contactinfo TEXT,
	createdat DATETIME,
	updatedat DATETIME
);
`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(createQuotationsTableSQL).Error)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func newTestRepository(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	return NewRepository(db.Wrap(conn)), conn
}
