package agent

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohinthram/sanskrita-saarathi/internal/database"
)

func newTestToolset(t *testing.T) *Toolset {
	t.Helper()

	reg, err := Registry()
	require.NoError(t, err)

	mgr, err := database.New(filepath.Join(t.TempDir(), "test.db"), reg)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	require.True(t, mgr.CreateTables().OK())

	return NewToolset(mgr)
}

func TestToolsetCoversOperationSurface(t *testing.T) {
	ts := newTestToolset(t)

	want := []string{
		"tables_info", "curr_datetime", "create", "create_bulk",
		"read_by_id", "read_all", "read_with_filter", "read_with_conditions",
		"count", "exists", "update", "update_by_id", "update_bulk",
		"delete_by_id", "delete_with_filter", "delete_all",
		"get_min", "get_max", "get_avg", "get_sum",
		"create_tables", "drop_tables", "health_check",
	}
	for _, name := range want {
		_, ok := ts.Lookup(name)
		assert.True(t, ok, "missing tool %s", name)
	}
	assert.Len(t, ts.Tools(), len(want))
}

func TestInvokeCreateAndReadBack(t *testing.T) {
	ts := newTestToolset(t)

	res, ok := ts.Invoke("create", json.RawMessage(`{
		"table_name": "Glossary",
		"data": {"sanskrit_word": "धर्म", "english_meaning": "duty", "added_on": "2025-06-01 10:00:00"}
	}`))
	require.True(t, ok)
	require.True(t, res.OK(), res.Message)

	row, ok := res.Data.(database.Row)
	require.True(t, ok)
	assert.Equal(t, int64(1), row["id"])
	assert.Equal(t, "धर्म", row["sanskrit_word"])

	res, ok = ts.Invoke("read_by_id", json.RawMessage(`{"table_name": "Glossary", "id": 1}`))
	require.True(t, ok)
	require.True(t, res.OK(), res.Message)
	assert.Equal(t, "duty", res.Data.(database.Row)["english_meaning"])
}

func TestInvokeUnknownTool(t *testing.T) {
	ts := newTestToolset(t)

	_, ok := ts.Invoke("no_such_tool", nil)
	assert.False(t, ok)
}

func TestInvokeMalformedArguments(t *testing.T) {
	ts := newTestToolset(t)

	res, ok := ts.Invoke("create", json.RawMessage(`{"table_name": 42}`))
	require.True(t, ok)
	assert.Equal(t, database.StatusError, res.Status)
	assert.Contains(t, res.Message, "Invalid tool arguments")
}

func TestInvokeSurfacesManagerEnvelope(t *testing.T) {
	ts := newTestToolset(t)

	res, ok := ts.Invoke("read_all", json.RawMessage(`{"table_name": "Unknown"}`))
	require.True(t, ok)
	assert.Equal(t, database.StatusError, res.Status)
	assert.Equal(t, "Model for table 'Unknown' not found", res.Message)
}

func TestInvokeQuizFlowRecording(t *testing.T) {
	ts := newTestToolset(t)

	res, _ := ts.Invoke("create_bulk", json.RawMessage(`{
		"table_name": "QuizResults",
		"records": [
			{"quiz_id": 1, "question": "q1", "user_answer": "a", "correct_answer": "a", "is_correct": true},
			{"quiz_id": 1, "question": "q2", "user_answer": "b", "correct_answer": "c", "is_correct": false}
		]
	}`))
	require.True(t, res.OK(), res.Message)

	res, _ = ts.Invoke("create", json.RawMessage(`{
		"table_name": "QuizStats",
		"data": {"quiz_id": 1, "username": "rohin", "score": 1, "total_score": 2, "taken_on": "2025-06-01 10:00:00"}
	}`))
	require.True(t, res.OK(), res.Message)

	res, _ = ts.Invoke("count", json.RawMessage(`{"table_name": "QuizResults", "filters": {"is_correct": false}}`))
	require.True(t, res.OK(), res.Message)
	assert.Equal(t, int64(1), res.Data.(*database.CountPayload).Count)

	res, _ = ts.Invoke("get_max", json.RawMessage(`{"table_name": "QuizStats", "column_name": "score"}`))
	require.True(t, res.OK(), res.Message)
	assert.Equal(t, int64(1), res.Data.(*database.AggregatePayload).Value)
}

func TestTablesInfoDescribesEveryTable(t *testing.T) {
	reg, err := Registry()
	require.NoError(t, err)

	info := TablesInfo(reg)
	for _, name := range []string{"Glossary", "QuizStats", "QuizResults"} {
		assert.Contains(t, info, name)
	}
	assert.Contains(t, info, "sanskrit_word")
	assert.Contains(t, info, "primary key")
}

func TestDefinitionsReferenceRegisteredTools(t *testing.T) {
	ts := newTestToolset(t)

	for _, def := range Definitions() {
		for _, tool := range def.Tools {
			_, ok := ts.Lookup(tool)
			assert.True(t, ok, "agent %s references unknown tool %s", def.Name, tool)
		}
	}
}
