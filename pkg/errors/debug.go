package errors

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrorDump is the log-side view of a failed request. Resource and Field name
// the billing table and API field behind a constraint failure.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGColumn     string `json:"pg_column,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`

	Resource string `json:"resource,omitempty"`
	Field    string `json:"field,omitempty"`
}

type constraintTarget struct {
	resource string
	field    string
}

// constraintTargets covers the named indexes and foreign keys in pkg/migrate/migrations.
var constraintTargets = map[string]constraintTarget{
	"idx_admins_username":    {resource: "admin", field: "username"},
	"idx_brands_name":        {resource: "brand", field: "name"},
	"products_brand_id_fkey": {resource: "product", field: "brand"},
}

// columnTargets maps table.column, as SQLite reports it, onto the same names.
var columnTargets = map[string]constraintTarget{
	"admins.username":   {resource: "admin", field: "username"},
	"brands.name":       {resource: "brand", field: "name"},
	"products.brand_id": {resource: "product", field: "brand"},
}

var sqliteConstraintRe = regexp.MustCompile(`(?:UNIQUE|NOT NULL) constraint failed: ([a-z_]+\.[a-z_]+)`)

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		d.PGCode, d.PGConstraint, d.PGTable = pgxErr.Code, pgxErr.ConstraintName, pgxErr.TableName
		d.PGColumn, d.PGDetail, d.PGMessage = pgxErr.ColumnName, pgxErr.Detail, pgxErr.Message
	case errors.As(err, &pqErr):
		d.PGCode, d.PGConstraint, d.PGTable = string(pqErr.Code), pqErr.Constraint, pqErr.Table
		d.PGColumn, d.PGDetail, d.PGMessage = pqErr.Column, pqErr.Detail, pqErr.Message
	}

	if target, ok := constraintTargets[d.PGConstraint]; ok {
		d.Resource, d.Field = target.resource, target.field
	} else if m := sqliteConstraintRe.FindStringSubmatch(d.TopMessage); m != nil {
		if target, ok := columnTargets[m[1]]; ok {
			d.Resource, d.Field = target.resource, target.field
		}
	}
	return d
}
