package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/rohinthram/sanskrita-saarathi/internal/schema"
)

// buildInsert validates one record against the schema and builds the column
// and argument lists for an INSERT. Unlike filters, unknown keys in create
// payloads are rejected: a create that names a column the schema does not
// have is a validation failure, not something to guess around.
func buildInsert(tbl schema.Table, data map[string]any) (columns []string, args []any, err error) {
	var unknown []string
	for key := range data {
		if _, ok := tbl.Column(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, nil, fmt.Errorf("unknown columns: %s", strings.Join(unknown, ", "))
	}

	for _, col := range tbl.Columns {
		raw, ok := data[col.Name]
		if !ok {
			continue
		}
		v, cerr := schema.Coerce(col.Type, raw)
		if cerr != nil {
			return nil, nil, fmt.Errorf("column %s: %w", col.Name, cerr)
		}
		columns = append(columns, col.Name)
		args = append(args, v.Driver())
	}
	return columns, args, nil
}

func insertSQL(tbl schema.Table, columns []string) string {
	if len(columns) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", tbl.Name)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tbl.Name, strings.Join(columns, ", "), placeholders)
}

// Create inserts one record and returns the full persisted row, identity
// included. Validation failures never touch the database; integrity
// violations and other engine failures both roll back, with the driver
// message preserved in the envelope.
func (m *Manager) Create(table string, data map[string]any) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}

	columns, args, err := buildInsert(tbl, data)
	if err != nil {
		return failure("Error creating record in %s: %v", table, err)
	}

	var record Row
	err = m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertSQL(tbl, columns), args...)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		records, err := selectRows(ctx, tx, tbl, fmt.Sprintf("%s = ?", tbl.IdentityColumn().Name), []any{id}, 0, 0)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("inserted row %d not found", id)
		}
		record = records[0]
		return nil
	})
	if err != nil {
		if isIntegrityError(err) {
			return failure("Integrity error: %v", err)
		}
		return failure("Error creating record: %v", err)
	}
	return success(fmt.Sprintf("Record created successfully in %s", table), record)
}

// CreateBulk inserts every record in one transaction, all-or-nothing. Any
// failure rolls back the whole batch; no partial insertion is possible.
func (m *Manager) CreateBulk(table string, records []map[string]any) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}

	type insert struct {
		columns []string
		args    []any
	}
	inserts := make([]insert, 0, len(records))
	for i, data := range records {
		columns, args, err := buildInsert(tbl, data)
		if err != nil {
			return failure("Error creating bulk records in %s: record %d: %v", table, i, err)
		}
		inserts = append(inserts, insert{columns: columns, args: args})
	}

	err := m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		for _, ins := range inserts {
			if _, err := tx.ExecContext(ctx, insertSQL(tbl, ins.columns), ins.args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isIntegrityError(err) {
			return failure("Integrity error: %v", err)
		}
		return failure("Error creating bulk records: %v", err)
	}
	return success(
		fmt.Sprintf("%d records created successfully in %s", len(records), table),
		&CountPayload{Count: int64(len(records))},
	)
}
