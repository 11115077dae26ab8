package database

import (
	"database/sql"

	"github.com/rohinthram/sanskrita-saarathi/internal/schema"
)

// scanHolders returns one sql.Null* destination per column, chosen by the
// column's declared type.
func scanHolders(cols []schema.Column) []any {
	holders := make([]any, len(cols))
	for i, col := range cols {
		holders[i] = newHolder(col.Type)
	}
	return holders
}

func newHolder(t schema.ColumnType) any {
	switch t {
	case schema.Integer:
		return &sql.NullInt64{}
	case schema.Float:
		return &sql.NullFloat64{}
	case schema.Boolean:
		return &sql.NullBool{}
	case schema.Timestamp:
		return &sql.NullTime{}
	default:
		return &sql.NullString{}
	}
}

// holderValue unwraps a scanned holder into a plain value, nil when the
// column was NULL.
func holderValue(holder any) any {
	switch h := holder.(type) {
	case *sql.NullInt64:
		if h.Valid {
			return h.Int64
		}
	case *sql.NullFloat64:
		if h.Valid {
			return h.Float64
		}
	case *sql.NullBool:
		if h.Valid {
			return h.Bool
		}
	case *sql.NullTime:
		if h.Valid {
			return h.Time
		}
	case *sql.NullString:
		if h.Valid {
			return h.String
		}
	}
	return nil
}

// rowFromHolders assembles a Row from scanned holders in column order.
func rowFromHolders(cols []schema.Column, holders []any) Row {
	row := make(Row, len(cols))
	for i, col := range cols {
		row[col.Name] = holderValue(holders[i])
	}
	return row
}
