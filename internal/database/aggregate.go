package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rohinthram/sanskrita-saarathi/internal/schema"
)

// aggregate runs a single-column scalar aggregate over the full table.
// An empty table (or an entirely null column) is a success with a nil value;
// an engine failure is an error envelope. The two are deliberately
// distinguished, unlike older callers that folded both into null.
func (m *Manager) aggregate(fn, table, column string) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}
	col, ok := tbl.Column(column)
	if !ok {
		return failure("Column '%s' not found in table '%s'", column, table)
	}

	// AVG always yields a real number regardless of the column type.
	holder := newHolder(col.Type)
	if fn == "AVG" {
		holder = newHolder(schema.Float)
	}

	query := fmt.Sprintf("SELECT %s(%s) FROM %s", fn, col.Name, tbl.Name)
	err := m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query).Scan(holder)
	})
	if err != nil {
		return failure("Error computing %s(%s): %v", fn, column, err)
	}

	value := holderValue(holder)
	message := fmt.Sprintf("%s(%s) computed for %s", fn, column, table)
	if value == nil {
		message = fmt.Sprintf("%s(%s) has no value: %s has no rows", fn, column, table)
	}
	return success(message, &AggregatePayload{Column: column, Value: value})
}

// GetMin returns the minimum value of a column over the full table.
func (m *Manager) GetMin(table, column string) Result {
	return m.aggregate("MIN", table, column)
}

// GetMax returns the maximum value of a column over the full table.
func (m *Manager) GetMax(table, column string) Result {
	return m.aggregate("MAX", table, column)
}

// GetAvg returns the average value of a column over the full table.
func (m *Manager) GetAvg(table, column string) Result {
	return m.aggregate("AVG", table, column)
}

// GetSum returns the sum of a column over the full table.
func (m *Manager) GetSum(table, column string) Result {
	return m.aggregate("SUM", table, column)
}
