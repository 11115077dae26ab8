package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rohinthram/sanskrita-saarathi/internal/schema"
)

// tableLifecycle applies one DDL statement per requested table. With no
// names every registered table is processed; a name the registry does not
// know produces a warning folded into the response but does not abort the
// rest. The DDL uses IF EXISTS / IF NOT EXISTS so repeating the operation
// is harmless.
func (m *Manager) tableLifecycle(action, past string, ddl func(schema.Table) string, names []string) Result {
	if len(names) == 0 {
		names = m.registry.Names()
	}

	var affected, warnings []string
	err := m.withUnitOfWork(func(ctx context.Context, tx *sql.Tx) error {
		for _, name := range names {
			tbl, ok := m.registry.Resolve(name)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("Table '%s' not found in registry", name))
				log.Warn().Str("table", name).Msgf("%s skipped: not registered", action)
				continue
			}
			if _, err := tx.ExecContext(ctx, ddl(tbl)); err != nil {
				return fmt.Errorf("table %s: %w", name, err)
			}
			affected = append(affected, name)
		}
		return nil
	})
	if err != nil {
		return failure("Error during %s tables: %v", action, err)
	}

	message := fmt.Sprintf("Tables %s successfully: %s", past, strings.Join(affected, ", "))
	if len(affected) == 0 {
		message = fmt.Sprintf("No tables %s", past)
	}
	if len(warnings) > 0 {
		message += " (" + strings.Join(warnings, "; ") + ")"
	}
	return success(message, &TablesPayload{Affected: affected, Warnings: warnings})
}

// CreateTables creates the named tables, or every registered table when no
// names are given. Repeated calls are idempotent.
func (m *Manager) CreateTables(names ...string) Result {
	return m.tableLifecycle("create", "created", schema.Table.CreateSQL, names)
}

// DropTables drops the named tables, or every registered table when no
// names are given. Repeated calls are idempotent.
func (m *Manager) DropTables(names ...string) Result {
	return m.tableLifecycle("drop", "dropped", schema.Table.DropSQL, names)
}
