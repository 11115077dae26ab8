package database

import (
	"testing"
)

func TestUpdateSingleRow(t *testing.T) {
	m := newTestManager(t)
	row := mustCreate(t, m, "users", map[string]any{"username": "a", "age": 20})
	id := row["id"].(int64)

	res := m.Update("users", id, map[string]any{"age": 21})
	if !res.OK() {
		t.Fatalf("update failed: %s", res.Message)
	}
	if got := res.Data.(*UpdatePayload).ID; got != id {
		t.Fatalf("expected affected id %d, got %d", id, got)
	}

	read := m.ReadByID("users", id).Data.(Row)
	if read["age"] != int64(21) {
		t.Fatalf("expected updated age 21, got %v", read["age"])
	}
}

func TestUpdateByIDSharesContract(t *testing.T) {
	m := newTestManager(t)
	row := mustCreate(t, m, "users", map[string]any{"username": "a"})
	id := row["id"].(int64)

	if res := m.UpdateByID("users", id, map[string]any{"age": 50}); !res.OK() {
		t.Fatalf("update_by_id failed: %s", res.Message)
	}
	if res := m.UpdateByID("users", id, map[string]any{}); res.OK() {
		t.Fatal("empty updates must error through update_by_id too")
	}
}

func TestUpdateEmptyMapLeavesRowUntouched(t *testing.T) {
	m := newTestManager(t)
	row := mustCreate(t, m, "users", map[string]any{"username": "a", "age": 20})
	id := row["id"].(int64)

	res := m.Update("users", id, map[string]any{})
	if res.OK() {
		t.Fatal("empty update map must return an error envelope")
	}
	if res.Message != "No valid columns to update" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	read := m.ReadByID("users", id).Data.(Row)
	if read["age"] != int64(20) || read["username"] != "a" {
		t.Fatalf("row changed by empty update: %v", read)
	}
}

func TestUpdateUnrecognizedColumnsOnly(t *testing.T) {
	m := newTestManager(t)
	row := mustCreate(t, m, "users", map[string]any{"username": "a"})

	res := m.Update("users", row["id"].(int64), map[string]any{"no_such": 1})
	if res.OK() {
		t.Fatal("update with only unknown columns must error")
	}
}

func TestUpdateIdentityColumnIsImmutable(t *testing.T) {
	m := newTestManager(t)
	row := mustCreate(t, m, "users", map[string]any{"username": "a", "age": 20})
	id := row["id"].(int64)

	res := m.Update("users", id, map[string]any{"id": 99, "age": 30})
	if !res.OK() {
		t.Fatalf("update failed: %s", res.Message)
	}
	payload := res.Data.(*UpdatePayload)
	if len(payload.IgnoredColumns) != 1 || payload.IgnoredColumns[0] != "id" {
		t.Fatalf("identity column should be reported as ignored, got %v", payload.IgnoredColumns)
	}

	if res := m.ReadByID("users", 99); res.OK() {
		t.Fatal("identity must not be reassigned")
	}
	read := m.ReadByID("users", id).Data.(Row)
	if read["age"] != int64(30) {
		t.Fatalf("expected age 30, got %v", read["age"])
	}
}

func TestUpdateMissingIDReportsSuccess(t *testing.T) {
	m := newTestManager(t)

	// Matching zero rows is not distinguished from success; callers that
	// care read first.
	res := m.Update("users", 123, map[string]any{"age": 1})
	if !res.OK() {
		t.Fatalf("expected success for zero-row update, got: %s", res.Message)
	}
}

func TestUpdateBulk(t *testing.T) {
	m := newTestManager(t)
	mustCreate(t, m, "users", map[string]any{"username": "a", "age": 20, "is_active": true})
	mustCreate(t, m, "users", map[string]any{"username": "b", "age": 30, "is_active": true})
	mustCreate(t, m, "users", map[string]any{"username": "c", "age": 30, "is_active": false})

	res := m.UpdateBulk("users", map[string]any{"is_active": false}, map[string]any{"age": 30})
	if !res.OK() {
		t.Fatalf("update_bulk failed: %s", res.Message)
	}
	if got := res.Data.(*CountPayload).Count; got != 2 {
		t.Fatalf("expected 2 rows affected, got %d", got)
	}

	if got := m.Count("users", map[string]any{"is_active": false}).Data.(*CountPayload).Count; got != 3 {
		t.Fatalf("expected 3 inactive rows, got %d", got)
	}
}

func TestUpdateBulkEmptyFilterUpdatesAll(t *testing.T) {
	m := newTestManager(t)
	seedUsers(t, m, 4)

	res := m.UpdateBulk("users", map[string]any{"age": 99}, nil)
	if got := res.Data.(*CountPayload).Count; got != 4 {
		t.Fatalf("expected all 4 rows affected, got %d", got)
	}
}

func TestUpdateIntegrityViolation(t *testing.T) {
	m := newTestManager(t)
	mustCreate(t, m, "users", map[string]any{"username": "a"})
	row := mustCreate(t, m, "users", map[string]any{"username": "b"})

	res := m.Update("users", row["id"].(int64), map[string]any{"username": "a"})
	if res.OK() {
		t.Fatal("expected integrity error for duplicate username update")
	}
}
