package database

import "testing"

func TestDeleteByID(t *testing.T) {
	m := newTestManager(t)
	row := mustCreate(t, m, "users", map[string]any{"username": "a"})
	id := row["id"].(int64)

	res := m.DeleteByID("users", id)
	if !res.OK() {
		t.Fatalf("delete_by_id failed: %s", res.Message)
	}
	if got := res.Data.(*CountPayload).Count; got != 1 {
		t.Fatalf("expected 1 row removed, got %d", got)
	}

	if res := m.ReadByID("users", id); res.OK() {
		t.Fatal("row should be gone")
	}

	// Deleting an absent row is a success with count zero.
	res = m.DeleteByID("users", id)
	if !res.OK() || res.Data.(*CountPayload).Count != 0 {
		t.Fatalf("expected zero-count success, got %+v", res)
	}
}

func TestDeleteWithFilter(t *testing.T) {
	m := newTestManager(t)
	seedUsers(t, m, 6) // is_active true for even seeds

	res := m.DeleteWithFilter("users", map[string]any{"is_active": true})
	if !res.OK() {
		t.Fatalf("delete_with_filter failed: %s", res.Message)
	}
	if got := res.Data.(*CountPayload).Count; got != 3 {
		t.Fatalf("expected 3 rows removed, got %d", got)
	}
	if got := m.Count("users", nil).Data.(*CountPayload).Count; got != 3 {
		t.Fatalf("expected 3 rows remaining, got %d", got)
	}
}

func TestDeleteAllThenCountIsZero(t *testing.T) {
	m := newTestManager(t)
	seedUsers(t, m, 5)

	res := m.DeleteAll("users")
	if !res.OK() {
		t.Fatalf("delete_all failed: %s", res.Message)
	}
	if got := res.Data.(*CountPayload).Count; got != 5 {
		t.Fatalf("expected 5 rows removed, got %d", got)
	}
	if got := m.Count("users", nil).Data.(*CountPayload).Count; got != 0 {
		t.Fatalf("expected empty table, got %d", got)
	}

	// Holds for an already-empty table too.
	if res := m.DeleteAll("users"); !res.OK() || res.Data.(*CountPayload).Count != 0 {
		t.Fatalf("expected zero-count success on empty table, got %+v", res)
	}
}
