package database

import "testing"

// TestUsersLifecycleScenario walks the full create / filter / update / count /
// delete flow over a users table with a unique username column.
func TestUsersLifecycleScenario(t *testing.T) {
	m := newTestManager(t)

	res := m.Create("users", map[string]any{"username": "a", "is_active": true})
	if !res.OK() {
		t.Fatalf("create failed: %s", res.Message)
	}
	if id := res.Data.(Row)["id"]; id != int64(1) {
		t.Fatalf("expected first id 1, got %v", id)
	}

	res = m.Create("users", map[string]any{"username": "a", "is_active": false})
	if res.OK() {
		t.Fatal("duplicate username must be an integrity error")
	}
	if got := m.Count("users", nil).Data.(*CountPayload).Count; got != 1 {
		t.Fatalf("table must still have 1 row, got %d", got)
	}

	res = m.ReadWithFilter("users", map[string]any{"is_active": true}, false)
	rows := res.Data.(*RowsPayload)
	if rows.Count != 1 || rows.Records[0]["username"] != "a" {
		t.Fatalf("expected one active record for 'a', got %v", rows.Records)
	}

	if res := m.Update("users", 1, map[string]any{"is_active": false}); !res.OK() {
		t.Fatalf("update failed: %s", res.Message)
	}

	if got := m.Count("users", map[string]any{"is_active": false}).Data.(*CountPayload).Count; got != 1 {
		t.Fatalf("expected count 1 for inactive, got %d", got)
	}

	if res := m.DeleteByID("users", 1); !res.OK() {
		t.Fatalf("delete failed: %s", res.Message)
	}

	if got := m.Count("users", map[string]any{}).Data.(*CountPayload).Count; got != 0 {
		t.Fatalf("expected empty table, got %d", got)
	}
}
