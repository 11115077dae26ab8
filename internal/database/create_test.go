package database

import (
	"strings"
	"testing"
	"time"
)

func TestCreateReturnsPersistedRow(t *testing.T) {
	m := newTestManager(t)

	joined := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	row := mustCreate(t, m, "users", map[string]any{
		"username":  "arjuna",
		"age":       25,
		"is_active": true,
		"joined_on": joined,
	})

	if row["id"] != int64(1) {
		t.Fatalf("expected generated id 1, got %v", row["id"])
	}
	if row["username"] != "arjuna" {
		t.Fatalf("expected username arjuna, got %v", row["username"])
	}
	if row["age"] != int64(25) {
		t.Fatalf("expected age 25, got %v", row["age"])
	}
	if row["is_active"] != true {
		t.Fatalf("expected is_active true, got %v", row["is_active"])
	}
	if ts, ok := row["joined_on"].(time.Time); !ok || !ts.Equal(joined) {
		t.Fatalf("expected joined_on %v, got %v", joined, row["joined_on"])
	}
	// Defaulted (omitted nullable) column comes back null.
	if row["score"] != nil {
		t.Fatalf("expected nil score, got %v", row["score"])
	}
}

func TestCreateRoundTripsThroughReadByID(t *testing.T) {
	m := newTestManager(t)

	created := mustCreate(t, m, "users", map[string]any{"username": "bhima", "age": 30})

	res := m.ReadByID("users", created["id"].(int64))
	if !res.OK() {
		t.Fatalf("read_by_id failed: %s", res.Message)
	}
	read := res.Data.(Row)
	if read["username"] != created["username"] || read["age"] != created["age"] {
		t.Fatalf("read row %v does not match created row %v", read, created)
	}
}

func TestCreateRejectsUnknownColumns(t *testing.T) {
	m := newTestManager(t)

	res := m.Create("users", map[string]any{"username": "x", "nickname": "y"})
	if res.OK() {
		t.Fatal("expected validation error for unknown column")
	}
	if !strings.Contains(res.Message, "nickname") {
		t.Fatalf("message should name the unknown column: %q", res.Message)
	}

	// Validation failures never touch the database.
	if got := m.Count("users", nil).Data.(*CountPayload).Count; got != 0 {
		t.Fatalf("expected empty table, got %d rows", got)
	}
}

func TestCreateReportsIntegrityViolation(t *testing.T) {
	m := newTestManager(t)

	mustCreate(t, m, "users", map[string]any{"username": "a"})

	res := m.Create("users", map[string]any{"username": "a"})
	if res.OK() {
		t.Fatal("expected integrity error for duplicate username")
	}
	if !strings.Contains(res.Message, "Integrity error") {
		t.Fatalf("expected integrity classification, got: %q", res.Message)
	}

	if got := m.Count("users", nil).Data.(*CountPayload).Count; got != 1 {
		t.Fatalf("expected table unchanged with 1 row, got %d", got)
	}
}

func TestCreateReportsNotNullViolation(t *testing.T) {
	m := newTestManager(t)

	// username is NOT NULL; omitting it is rejected by the engine.
	res := m.Create("users", map[string]any{"age": 10})
	if res.OK() {
		t.Fatal("expected error for missing required column")
	}
	if !strings.Contains(res.Message, "Integrity error") {
		t.Fatalf("expected integrity classification, got: %q", res.Message)
	}
}

func TestCreateRejectsTypeMismatch(t *testing.T) {
	m := newTestManager(t)

	res := m.Create("users", map[string]any{"username": "a", "age": "not a number"})
	if res.OK() {
		t.Fatal("expected coercion failure for non-integer age")
	}
}

func TestCreateBulk(t *testing.T) {
	m := newTestManager(t)

	res := m.CreateBulk("users", []map[string]any{
		{"username": "a"},
		{"username": "b"},
		{"username": "c"},
	})
	if !res.OK() {
		t.Fatalf("create_bulk failed: %s", res.Message)
	}
	if got := res.Data.(*CountPayload).Count; got != 3 {
		t.Fatalf("expected 3 inserted, got %d", got)
	}
	if got := m.Count("users", nil).Data.(*CountPayload).Count; got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
}

func TestCreateBulkIsAllOrNothing(t *testing.T) {
	m := newTestManager(t)

	mustCreate(t, m, "users", map[string]any{"username": "taken"})

	res := m.CreateBulk("users", []map[string]any{
		{"username": "fresh"},
		{"username": "taken"}, // violates the uniqueness constraint
		{"username": "fresh2"},
	})
	if res.OK() {
		t.Fatal("expected error envelope for batch with duplicate")
	}

	// No partial insertion: the table still only has the original row.
	if got := m.Count("users", nil).Data.(*CountPayload).Count; got != 1 {
		t.Fatalf("expected 1 row after rolled-back batch, got %d", got)
	}
}
