package quotations

import (
	"sync"
	"testing"

	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestFieldMappingsCoverEveryColumn(t *testing.T) {
	s, err := schema.Parse(&models.Quotation{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	columns := map[string]bool{}
	for _, name := range s.DBNames {
		columns[name] = true
	}

	seen := map[string]bool{}
	for _, m := range Fields() {
		assert.True(t, columns[m.Column], "mapping references unknown column %q", m.Column)
		assert.False(t, seen[m.Column], "column %q mapped twice", m.Column)
		seen[m.Column] = true
	}
	for col := range columns {
		assert.True(t, seen[col], "column %q has no API mapping", col)
	}
}

func TestFieldMappingsAreInverse(t *testing.T) {
	for _, m := range Fields() {
		col, ok := ColumnFor(m.API)
		require.True(t, ok, m.API)
		assert.Equal(t, m.Column, col)

		api, ok := APINameFor(col)
		require.True(t, ok, col)
		assert.Equal(t, m.API, api)
	}
}

func TestFieldMappingsCaseTranslation(t *testing.T) {
	cases := map[string]string{
		"customerName": "customername",
		"contactInfo":  "contactinfo",
		"createdAt":    "createdat",
		"updatedAt":    "updatedat",
		"_id":          "id",
	}
	for api, want := range cases {
		got, ok := ColumnFor(api)
		require.True(t, ok, api)
		assert.Equal(t, want, got)
	}

	_, ok := ColumnFor("customer_name")
	assert.False(t, ok)
	_, ok = APINameFor("customerName")
	assert.False(t, ok)
}

func TestReadOnlyFields(t *testing.T) {
	readOnly := map[string]bool{}
	for _, m := range Fields() {
		if !m.Writable {
			readOnly[m.API] = true
		}
	}
	assert.Equal(t, map[string]bool{"id": true, "paid": true, "createdAt": true, "updatedAt": true}, readOnly)

	alias, ok := lookupAPI("_id")
	require.True(t, ok)
	assert.False(t, alias.Writable)
}
