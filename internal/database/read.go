package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rohinthram/sanskrita-saarathi/internal/schema"
)

// selectRows runs a SELECT over all declared columns and maps every result
// row to a plain Row. A limit <= 0 means unbounded.
func selectRows(ctx context.Context, tx *sql.Tx, tbl schema.Table, where string, args []any, limit, offset int64) ([]Row, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(tbl.ColumnNames(), ", "), tbl.Name)
	if where != "" {
		query += " WHERE " + where
	}
	if limit > 0 || offset > 0 {
		if limit <= 0 {
			limit = -1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Row
	for rows.Next() {
		holders := scanHolders(tbl.Columns)
		if err := rows.Scan(holders...); err != nil {
			return nil, err
		}
		records = append(records, rowFromHolders(tbl.Columns, holders))
	}
	return records, rows.Err()
}

// ReadByID reads the single row matching the identity column. An absent row
// is a not-found error envelope, not a system failure.
func (m *Manager) ReadByID(table string, id int64) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}

	var record Row
	err := m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		records, err := selectRows(ctx, tx, tbl, fmt.Sprintf("%s = ?", tbl.IdentityColumn().Name), []any{id}, 0, 0)
		if err != nil {
			return err
		}
		if len(records) > 0 {
			record = records[0]
		}
		return nil
	})
	if err != nil {
		return failure("Error reading record: %v", err)
	}
	if record == nil {
		return failure("Record with id %d not found in %s", id, table)
	}
	return success(fmt.Sprintf("Record %d read successfully from %s", id, table), record)
}

// ReadAll reads every row in natural order, sliced by offset then limit.
// A limit <= 0 means unbounded.
func (m *Manager) ReadAll(table string, limit, offset int64) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}

	var records []Row
	err := m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		var err error
		records, err = selectRows(ctx, tx, tbl, "", nil, limit, offset)
		return err
	})
	if err != nil {
		return failure("Error reading all records: %v", err)
	}
	return success(
		fmt.Sprintf("%d records read from %s", len(records), table),
		&RowsPayload{Records: records, Count: len(records)},
	)
}

// ReadWithFilter reads rows matching an equality filter map, AND-combined by
// default or OR-combined when useOr is set. Unknown filter keys are dropped
// and reported in the payload's ignored_columns; an empty map reads all rows.
func (m *Manager) ReadWithFilter(table string, filters map[string]any, useOr bool) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}

	where, args, ignored, err := buildEquality(tbl, filters, useOr)
	if err != nil {
		return failure("Error reading filtered records: %v", err)
	}

	var records []Row
	err = m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		var err error
		records, err = selectRows(ctx, tx, tbl, where, args, 0, 0)
		return err
	})
	if err != nil {
		return failure("Error reading filtered records: %v", err)
	}
	return success(
		fmt.Sprintf("%d records read from %s", len(records), table),
		&RowsPayload{Records: records, Count: len(records), IgnoredColumns: ignored},
	)
}

// ReadWithConditions reads rows matching a list of (column, operator, value)
// conditions, AND-combined. Operators: eq, ne, gt, gte, lt, lte, like
// (substring match), in (set membership). Unknown columns are skipped;
// an unknown operator is a validation error.
func (m *Manager) ReadWithConditions(table string, conditions []Condition) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}

	where, args, ignored, err := buildConditions(tbl, conditions)
	if err != nil {
		return failure("Error reading records with conditions: %v", err)
	}

	var records []Row
	err = m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		var err error
		records, err = selectRows(ctx, tx, tbl, where, args, 0, 0)
		return err
	})
	if err != nil {
		return failure("Error reading records with conditions: %v", err)
	}
	return success(
		fmt.Sprintf("%d records read from %s", len(records), table),
		&RowsPayload{Records: records, Count: len(records), IgnoredColumns: ignored},
	)
}

// Count counts rows matching an equality-AND filter map; a nil or empty map
// counts the whole table.
func (m *Manager) Count(table string, filters map[string]any) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}

	where, args, ignored, err := buildEquality(tbl, filters, false)
	if err != nil {
		return failure("Error counting records: %v", err)
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", tbl.Name)
	if where != "" {
		query += " WHERE " + where
	}

	var count int64
	err = m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return failure("Error counting records: %v", err)
	}
	return success(
		fmt.Sprintf("%d records counted in %s", count, table),
		&CountPayload{Count: count, IgnoredColumns: ignored},
	)
}

// Exists reports whether any row matches an equality-AND filter map.
func (m *Manager) Exists(table string, filters map[string]any) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}

	where, args, ignored, err := buildEquality(tbl, filters, false)
	if err != nil {
		return failure("Error checking existence: %v", err)
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s", tbl.Name)
	if where != "" {
		query += " WHERE " + where
	}
	query += ")"

	var exists bool
	err = m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query, args...).Scan(&exists)
	})
	if err != nil {
		return failure("Error checking existence: %v", err)
	}

	message := fmt.Sprintf("No matching record exists in %s", table)
	if exists {
		message = fmt.Sprintf("Matching record exists in %s", table)
	}
	return success(message, &ExistsPayload{Exists: exists, IgnoredColumns: ignored})
}
