package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Update applies the update map to the single row matching the identity
// column. A map with no recognized columns is a validation failure and the
// database is never touched; an id matching zero rows still reports success,
// as the underlying statement simply affects nothing.
func (m *Manager) Update(table string, id int64, updates map[string]any) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}

	assignments, args, ignored, err := buildUpdates(tbl, updates)
	if err != nil {
		return failure("Error updating record: %v", err)
	}
	if len(assignments) == 0 {
		return failure("No valid columns to update")
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		tbl.Name, strings.Join(assignments, ", "), tbl.IdentityColumn().Name)
	args = append(args, id)

	err = m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		if isIntegrityError(err) {
			return failure("Integrity error: %v", err)
		}
		return failure("Error updating record: %v", err)
	}
	return success(
		fmt.Sprintf("Record %d updated successfully in %s", id, table),
		&UpdatePayload{ID: id, IgnoredColumns: ignored},
	)
}

// UpdateByID is Update under its alternate name; both entry points are part
// of the operation surface and share one contract.
func (m *Manager) UpdateByID(table string, id int64, updates map[string]any) Result {
	return m.Update(table, id, updates)
}

// UpdateBulk applies the update map to every row matching an equality-AND
// filter map and returns the count of rows affected.
func (m *Manager) UpdateBulk(table string, updates, filters map[string]any) Result {
	tbl, ok := m.registry.Resolve(table)
	if !ok {
		return modelNotFound(table)
	}

	assignments, args, ignored, err := buildUpdates(tbl, updates)
	if err != nil {
		return failure("Error updating records: %v", err)
	}
	if len(assignments) == 0 {
		return failure("No valid columns to update")
	}

	where, whereArgs, ignoredFilters, err := buildEquality(tbl, filters, false)
	if err != nil {
		return failure("Error updating records: %v", err)
	}
	ignored = mergeIgnored(ignored, ignoredFilters)

	query := fmt.Sprintf("UPDATE %s SET %s", tbl.Name, strings.Join(assignments, ", "))
	if where != "" {
		query += " WHERE " + where
		args = append(args, whereArgs...)
	}

	var affected int64
	err = m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		if isIntegrityError(err) {
			return failure("Integrity error: %v", err)
		}
		return failure("Error updating records: %v", err)
	}
	return success(
		fmt.Sprintf("%d records updated successfully in %s", affected, table),
		&CountPayload{Count: affected, IgnoredColumns: ignored},
	)
}

func mergeIgnored(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a))
	for _, k := range a {
		seen[k] = true
	}
	for _, k := range b {
		if !seen[k] {
			a = append(a, k)
			seen[k] = true
		}
	}
	return a
}
