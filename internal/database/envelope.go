package database

import "fmt"

// Envelope status literals. These two strings are the external contract.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Row is one record, keyed by column name.
type Row map[string]any

// Result is the uniform response envelope returned by every manager
// operation. Data is nil when an operation produces no payload.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK reports whether the result carries a success status.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

func success(message string, data any) Result {
	return Result{Status: StatusSuccess, Message: message, Data: data}
}

func failure(format string, args ...any) Result {
	return Result{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds an error envelope. Collaborators fronting the manager (the
// tool surface) use it so their own failures follow the same contract.
func Errorf(format string, args ...any) Result {
	return failure(format, args...)
}

// Successf builds a success envelope around an arbitrary payload.
func Successf(data any, format string, args ...any) Result {
	return success(fmt.Sprintf(format, args...), data)
}

func modelNotFound(table string) Result {
	return failure("Model for table '%s' not found", table)
}

// RowsPayload carries a result set plus its size. IgnoredColumns lists
// filter keys that were silently dropped because the schema does not know
// them; the drop is deliberate (agent callers pass stray keys) but surfaced
// for observability.
type RowsPayload struct {
	Records        []Row    `json:"records"`
	Count          int      `json:"count"`
	IgnoredColumns []string `json:"ignored_columns,omitempty"`
}

// CountPayload carries a row count.
type CountPayload struct {
	Count          int64    `json:"count"`
	IgnoredColumns []string `json:"ignored_columns,omitempty"`
}

// ExistsPayload carries an existence flag.
type ExistsPayload struct {
	Exists         bool     `json:"exists"`
	IgnoredColumns []string `json:"ignored_columns,omitempty"`
}

// UpdatePayload identifies the updated row.
type UpdatePayload struct {
	ID             int64    `json:"id"`
	IgnoredColumns []string `json:"ignored_columns,omitempty"`
}

// AggregatePayload carries one scalar aggregate. Value is nil when the table
// has no rows (or the column is entirely null).
type AggregatePayload struct {
	Column string `json:"column"`
	Value  any    `json:"value"`
}

// HealthPayload reports connection health.
type HealthPayload struct {
	Healthy bool `json:"healthy"`
}

// TablesPayload summarizes a table lifecycle operation.
type TablesPayload struct {
	Affected []string `json:"affected"`
	Warnings []string `json:"warnings,omitempty"`
}
