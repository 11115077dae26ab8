package database

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rohinthram/sanskrita-saarathi/internal/schema"
)

// Condition is one (column, operator, value) clause for ReadWithConditions.
type Condition struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

var comparisonOperators = map[string]string{
	"eq":  "=",
	"ne":  "!=",
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// buildEquality turns an equality filter map into a WHERE clause. Keys the
// schema does not know are dropped, not rejected, and reported back so the
// caller can see what was ignored. An empty clause (no filters, or nothing
// recognized) returns "".
func buildEquality(tbl schema.Table, filters map[string]any, useOr bool) (clause string, args []any, ignored []string, err error) {
	var parts []string

	// Walk the schema's column order so the generated SQL is deterministic.
	for _, col := range tbl.Columns {
		raw, ok := filters[col.Name]
		if !ok {
			continue
		}
		if raw == nil {
			parts = append(parts, fmt.Sprintf("%s IS NULL", col.Name))
			continue
		}
		v, cerr := schema.Coerce(col.Type, raw)
		if cerr != nil {
			return "", nil, nil, fmt.Errorf("filter %s: %w", col.Name, cerr)
		}
		parts = append(parts, fmt.Sprintf("%s = ?", col.Name))
		args = append(args, v.Driver())
	}

	for key := range filters {
		if _, ok := tbl.Column(key); !ok {
			ignored = append(ignored, key)
		}
	}
	sort.Strings(ignored)

	if len(parts) == 0 {
		return "", nil, ignored, nil
	}

	joiner := " AND "
	if useOr {
		joiner = " OR "
	}
	return strings.Join(parts, joiner), args, ignored, nil
}

// buildConditions turns a condition list into an AND-combined WHERE clause.
// Unknown columns are skipped like equality filters; an unknown operator is
// a validation error rather than a silent no-op.
func buildConditions(tbl schema.Table, conds []Condition) (clause string, args []any, ignored []string, err error) {
	var parts []string

	for _, c := range conds {
		col, ok := tbl.Column(c.Column)
		if !ok {
			ignored = append(ignored, c.Column)
			continue
		}

		switch c.Operator {
		case "eq", "ne", "gt", "gte", "lt", "lte":
			v, cerr := schema.Coerce(col.Type, c.Value)
			if cerr != nil {
				return "", nil, nil, fmt.Errorf("condition %s: %w", c.Column, cerr)
			}
			parts = append(parts, fmt.Sprintf("%s %s ?", col.Name, comparisonOperators[c.Operator]))
			args = append(args, v.Driver())

		case "like":
			parts = append(parts, fmt.Sprintf("%s LIKE ?", col.Name))
			args = append(args, fmt.Sprintf("%%%v%%", c.Value))

		case "in":
			members, ok := c.Value.([]any)
			if !ok {
				return "", nil, nil, fmt.Errorf("condition %s: 'in' requires a list value, got %T", c.Column, c.Value)
			}
			if len(members) == 0 {
				// IN over an empty set matches nothing.
				parts = append(parts, "1 = 0")
				continue
			}
			placeholders := make([]string, len(members))
			for i, member := range members {
				v, cerr := schema.Coerce(col.Type, member)
				if cerr != nil {
					return "", nil, nil, fmt.Errorf("condition %s: %w", c.Column, cerr)
				}
				placeholders[i] = "?"
				args = append(args, v.Driver())
			}
			parts = append(parts, fmt.Sprintf("%s IN (%s)", col.Name, strings.Join(placeholders, ", ")))

		default:
			return "", nil, nil, fmt.Errorf("unknown operator '%s' for column '%s'", c.Operator, c.Column)
		}
	}

	sort.Strings(ignored)

	if len(parts) == 0 {
		return "", nil, ignored, nil
	}
	return strings.Join(parts, " AND "), args, ignored, nil
}

// buildUpdates validates an update map against the schema, dropping unknown
// keys and the identity column (identity is immutable once assigned). The
// returned assignments are empty when nothing in the map is usable.
func buildUpdates(tbl schema.Table, updates map[string]any) (assignments []string, args []any, ignored []string, err error) {
	for _, col := range tbl.Columns {
		raw, ok := updates[col.Name]
		if !ok {
			continue
		}
		if col.Identity {
			ignored = append(ignored, col.Name)
			continue
		}
		if raw == nil {
			assignments = append(assignments, fmt.Sprintf("%s = NULL", col.Name))
			continue
		}
		v, cerr := schema.Coerce(col.Type, raw)
		if cerr != nil {
			return nil, nil, nil, fmt.Errorf("update %s: %w", col.Name, cerr)
		}
		assignments = append(assignments, fmt.Sprintf("%s = ?", col.Name))
		args = append(args, v.Driver())
	}

	for key := range updates {
		if _, ok := tbl.Column(key); !ok {
			ignored = append(ignored, key)
		}
	}
	sort.Strings(ignored)

	return assignments, args, ignored, nil
}
