package database

import (
	"context"
	"database/sql"
	"fmt"
)

func (m *Manager) deleteWhere(tbl string, where string, args []any, ignored []string) Result {
	t, ok := m.registry.Resolve(tbl)
	if !ok {
		return modelNotFound(tbl)
	}

	query := fmt.Sprintf("DELETE FROM %s", t.Name)
	if where != "" {
		query += " WHERE " + where
	}

	var removed int64
	err := m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		if isIntegrityError(err) {
			return failure("Integrity error: %v", err)
		}
		return failure("Error deleting records: %v", err)
	}
	return success(
		fmt.Sprintf("%d records deleted successfully from %s", removed, tbl),
		&CountPayload{Count: removed, IgnoredColumns: ignored},
	)
}

// DeleteByID removes the single row matching the identity column. A missing
// row is not an error; the count in the payload is simply zero.
func (m *Manager) DeleteByID(table string, id int64) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}
	return m.deleteWhere(table, fmt.Sprintf("%s = ?", tbl.IdentityColumn().Name), []any{id}, nil)
}

// DeleteWithFilter removes every row matching an equality-AND filter map and
// returns the count removed. An empty map removes all rows.
func (m *Manager) DeleteWithFilter(table string, filters map[string]any) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}
	where, args, ignored, err := buildEquality(tbl, filters, false)
	if err != nil {
		return failure("Error deleting records: %v", err)
	}
	return m.deleteWhere(table, where, args, ignored)
}

// DeleteAll removes every row from the table.
func (m *Manager) DeleteAll(table string) Result {
	if _, ok := m.registry.Resolve(table); !ok {
		return modelNotFound(table)
	}
	return m.deleteWhere(table, "", nil, nil)
}
