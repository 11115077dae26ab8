package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersTable() Table {
	return Table{
		Name: "users",
		Columns: []Column{
			{Name: "id", Type: Integer, Identity: true},
			{Name: "username", Type: Text, Unique: true},
			{Name: "is_active", Type: Boolean, Nullable: true},
		},
	}
}

func TestTableValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		table   Table
		wantErr string
	}{
		{
			name:  "valid table",
			table: usersTable(),
		},
		{
			name:    "missing name",
			table:   Table{Columns: []Column{{Name: "id", Type: Integer, Identity: true}}},
			wantErr: "table name is required",
		},
		{
			name:    "no columns",
			table:   Table{Name: "empty"},
			wantErr: "has no columns",
		},
		{
			name: "no identity column",
			table: Table{Name: "t", Columns: []Column{
				{Name: "value", Type: Text},
			}},
			wantErr: "exactly one identity column",
		},
		{
			name: "two identity columns",
			table: Table{Name: "t", Columns: []Column{
				{Name: "id", Type: Integer, Identity: true},
				{Name: "other_id", Type: Integer, Identity: true},
			}},
			wantErr: "exactly one identity column",
		},
		{
			name: "non-integer identity",
			table: Table{Name: "t", Columns: []Column{
				{Name: "id", Type: Text, Identity: true},
			}},
			wantErr: "must be an integer",
		},
		{
			name: "duplicate column",
			table: Table{Name: "t", Columns: []Column{
				{Name: "id", Type: Integer, Identity: true},
				{Name: "value", Type: Text},
				{Name: "value", Type: Text},
			}},
			wantErr: "declares column \"value\" twice",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.table.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTableCreateSQL(t *testing.T) {
	t.Parallel()

	got := usersTable().CreateSQL()
	want := "CREATE TABLE IF NOT EXISTS users (id INTEGER PRIMARY KEY AUTOINCREMENT, username TEXT NOT NULL UNIQUE, is_active BOOLEAN)"
	assert.Equal(t, want, got)
}

func TestTableDropSQL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DROP TABLE IF EXISTS users", usersTable().DropSQL())
}

func TestTableColumnLookupIsCaseSensitive(t *testing.T) {
	t.Parallel()

	tbl := usersTable()
	_, ok := tbl.Column("username")
	assert.True(t, ok)
	_, ok = tbl.Column("Username")
	assert.False(t, ok)
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(usersTable(), Table{
		Name: "orders",
		Columns: []Column{
			{Name: "id", Type: Integer, Identity: true},
			{Name: "amount", Type: Float},
		},
	})
	require.NoError(t, err)

	tbl, ok := reg.Resolve("users")
	require.True(t, ok)
	assert.Equal(t, "users", tbl.Name)

	// Exact match only.
	_, ok = reg.Resolve("Users")
	assert.False(t, ok)

	assert.Equal(t, []string{"users", "orders"}, reg.Names())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(usersTable(), usersTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
}

func TestRegistryRejectsInvalidDescriptor(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(Table{Name: "bad", Columns: []Column{{Name: "x", Type: Text}}})
	require.Error(t, err)
}
