package schema

import (
	"fmt"
	"strings"
)

// ColumnType is the primitive storage type of a column.
type ColumnType int

const (
	Integer ColumnType = iota
	Float
	Text
	Boolean
	Timestamp
)

// String returns the SQLite type name for DDL generation.
func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Float:
		return "REAL"
	case Text:
		return "TEXT"
	case Boolean:
		return "BOOLEAN"
	case Timestamp:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// Column describes a single column of a record type.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	Unique   bool
	Identity bool
}

// Table is a record type descriptor: a table name plus its ordered columns.
type Table struct {
	Name    string
	Columns []Column
}

// Validate checks the descriptor invariants. Exactly one identity column is
// required; the identity column must be an integer.
func (t Table) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("table name is required")
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %q has no columns", t.Name)
	}

	seen := make(map[string]bool, len(t.Columns))
	identities := 0
	for _, col := range t.Columns {
		if col.Name == "" {
			return fmt.Errorf("table %q has a column with no name", t.Name)
		}
		if seen[col.Name] {
			return fmt.Errorf("table %q declares column %q twice", t.Name, col.Name)
		}
		seen[col.Name] = true
		if col.Identity {
			identities++
			if col.Type != Integer {
				return fmt.Errorf("table %q: identity column %q must be an integer", t.Name, col.Name)
			}
		}
	}
	if identities != 1 {
		return fmt.Errorf("table %q must declare exactly one identity column, has %d", t.Name, identities)
	}
	return nil
}

// IdentityColumn returns the identity column of the table.
func (t Table) IdentityColumn() Column {
	for _, col := range t.Columns {
		if col.Identity {
			return col
		}
	}
	// Validate guarantees one exists; this is unreachable on a registered table.
	return Column{}
}

// Column looks up a column by name. Lookup is case-sensitive.
func (t Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the declared column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// CreateSQL builds the CREATE TABLE statement for the descriptor.
// The statement uses IF NOT EXISTS so repeated creation is idempotent.
func (t Table) CreateSQL() string {
	defs := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		if col.Identity {
			defs = append(defs, fmt.Sprintf("%s INTEGER PRIMARY KEY AUTOINCREMENT", col.Name))
			continue
		}
		def := fmt.Sprintf("%s %s", col.Name, col.Type)
		if !col.Nullable {
			def += " NOT NULL"
		}
		if col.Unique {
			def += " UNIQUE"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, strings.Join(defs, ", "))
}

// DropSQL builds the DROP TABLE statement for the descriptor.
func (t Table) DropSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", t.Name)
}
