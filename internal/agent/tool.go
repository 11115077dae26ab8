package agent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rohinthram/sanskrita-saarathi/internal/database"
	"github.com/rohinthram/sanskrita-saarathi/internal/schema"
)

// Tool is one manager operation exposed to an agent runtime: a name, a short
// description, a JSON-schema parameter object, and a handler. Handlers never
// return Go errors; everything, including malformed arguments, comes back as
// a Result envelope so the calling agent can branch on the status field.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
	Handler     func(args json.RawMessage) database.Result `json:"-"`
}

// Toolset is the full set of record-access tools over one manager.
type Toolset struct {
	mgr   *database.Manager
	tools map[string]Tool
	order []string
}

// Tools returns every tool in registration order.
func (ts *Toolset) Tools() []Tool {
	out := make([]Tool, 0, len(ts.order))
	for _, name := range ts.order {
		out = append(out, ts.tools[name])
	}
	return out
}

// Lookup finds a tool by name.
func (ts *Toolset) Lookup(name string) (Tool, bool) {
	tool, ok := ts.tools[name]
	return tool, ok
}

// Invoke runs the named tool against raw JSON arguments. An unknown tool
// name reports ok=false; every other outcome is inside the Result.
func (ts *Toolset) Invoke(name string, args json.RawMessage) (database.Result, bool) {
	tool, ok := ts.tools[name]
	if !ok {
		return database.Result{}, false
	}
	return tool.Handler(args), true
}

func (ts *Toolset) register(t Tool) {
	ts.tools[t.Name] = t
	ts.order = append(ts.order, t.Name)
}

// decode unmarshals tool arguments into a typed struct, converting decode
// failures into error envelopes.
func decode[T any](args json.RawMessage, into *T) *database.Result {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, into); err != nil {
		res := database.Errorf("Invalid tool arguments: %v", err)
		return &res
	}
	return nil
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	s := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

var tableProp = map[string]any{"type": "string", "description": "Name of the table"}

// Argument shapes shared by several tools.

type tableArgs struct {
	Table string `json:"table_name"`
}

type idArgs struct {
	Table string `json:"table_name"`
	ID    int64  `json:"id"`
}

type filterArgs struct {
	Table   string         `json:"table_name"`
	Filters map[string]any `json:"filters"`
	UseOr   bool           `json:"use_or"`
}

type columnArgs struct {
	Table  string `json:"table_name"`
	Column string `json:"column_name"`
}

type namesArgs struct {
	Tables []string `json:"table_names"`
}

// NewToolset builds the record-access toolset over the manager: every CRUD,
// aggregate and lifecycle operation, plus tables_info and curr_datetime,
// which the original agent flows call before touching the database.
func NewToolset(mgr *database.Manager) *Toolset {
	ts := &Toolset{mgr: mgr, tools: make(map[string]Tool)}

	ts.register(Tool{
		Name:        "tables_info",
		Description: "Describes the available tables and their columns. Call this first to understand the schema.",
		Parameters:  objectSchema(nil),
		Handler: func(json.RawMessage) database.Result {
			return database.Successf(TablesInfo(mgr.Registry()), "Schema information for %d tables", mgr.Registry().Len())
		},
	})

	ts.register(Tool{
		Name:        "curr_datetime",
		Description: "Returns the current date and time as a formatted string.",
		Parameters:  objectSchema(nil),
		Handler: func(json.RawMessage) database.Result {
			return database.Successf(time.Now().Format("2006-01-02 15:04:05"), "Current date and time")
		},
	})

	ts.register(Tool{
		Name:        "create",
		Description: "Create and insert a single record. Returns the persisted record including its generated id.",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"data":       map[string]any{"type": "object", "description": "Column name and value pairs for the new record"},
		}, "table_name", "data"),
		Handler: func(args json.RawMessage) database.Result {
			var a struct {
				Table string         `json:"table_name"`
				Data  map[string]any `json:"data"`
			}
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.Create(a.Table, a.Data)
		},
	})

	ts.register(Tool{
		Name:        "create_bulk",
		Description: "Create multiple records in one all-or-nothing batch.",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"records":    map[string]any{"type": "array", "items": map[string]any{"type": "object"}},
		}, "table_name", "records"),
		Handler: func(args json.RawMessage) database.Result {
			var a struct {
				Table   string           `json:"table_name"`
				Records []map[string]any `json:"records"`
			}
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.CreateBulk(a.Table, a.Records)
		},
	})

	ts.register(Tool{
		Name:        "read_by_id",
		Description: "Read a single record by its id.",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"id":         map[string]any{"type": "integer"},
		}, "table_name", "id"),
		Handler: func(args json.RawMessage) database.Result {
			var a idArgs
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.ReadByID(a.Table, a.ID)
		},
	})

	ts.register(Tool{
		Name:        "read_all",
		Description: "Read all records with optional pagination (limit and offset).",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"limit":      map[string]any{"type": "integer", "description": "Maximum number of records; omit for all"},
			"offset":     map[string]any{"type": "integer", "description": "Number of records to skip"},
		}, "table_name"),
		Handler: func(args json.RawMessage) database.Result {
			var a struct {
				Table  string `json:"table_name"`
				Limit  int64  `json:"limit"`
				Offset int64  `json:"offset"`
			}
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.ReadAll(a.Table, a.Limit, a.Offset)
		},
	})

	ts.register(Tool{
		Name:        "read_with_filter",
		Description: "Read records matching equality filters, AND-combined by default or OR-combined when use_or is true.",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"filters":    map[string]any{"type": "object"},
			"use_or":     map[string]any{"type": "boolean"},
		}, "table_name"),
		Handler: func(args json.RawMessage) database.Result {
			var a filterArgs
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.ReadWithFilter(a.Table, a.Filters, a.UseOr)
		},
	})

	ts.register(Tool{
		Name:        "read_with_conditions",
		Description: "Read records matching (column, operator, value) conditions. Operators: eq, ne, gt, gte, lt, lte, like, in.",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"conditions": map[string]any{"type": "array", "items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"column":   map[string]any{"type": "string"},
					"operator": map[string]any{"type": "string", "enum": []string{"eq", "ne", "gt", "gte", "lt", "lte", "like", "in"}},
					"value":    map[string]any{},
				},
			}},
		}, "table_name", "conditions"),
		Handler: func(args json.RawMessage) database.Result {
			var a struct {
				Table      string               `json:"table_name"`
				Conditions []database.Condition `json:"conditions"`
			}
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.ReadWithConditions(a.Table, a.Conditions)
		},
	})

	ts.register(Tool{
		Name:        "count",
		Description: "Count records, optionally narrowed by equality filters.",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"filters":    map[string]any{"type": "object"},
		}, "table_name"),
		Handler: func(args json.RawMessage) database.Result {
			var a filterArgs
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.Count(a.Table, a.Filters)
		},
	})

	ts.register(Tool{
		Name:        "exists",
		Description: "Check whether any record matches the equality filters.",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"filters":    map[string]any{"type": "object"},
		}, "table_name", "filters"),
		Handler: func(args json.RawMessage) database.Result {
			var a filterArgs
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.Exists(a.Table, a.Filters)
		},
	})

	updateParams := objectSchema(map[string]any{
		"table_name": tableProp,
		"id":         map[string]any{"type": "integer"},
		"updates":    map[string]any{"type": "object"},
	}, "table_name", "id", "updates")
	updateHandler := func(args json.RawMessage) database.Result {
		var a struct {
			Table   string         `json:"table_name"`
			ID      int64          `json:"id"`
			Updates map[string]any `json:"updates"`
		}
		if res := decode(args, &a); res != nil {
			return *res
		}
		return mgr.Update(a.Table, a.ID, a.Updates)
	}
	ts.register(Tool{
		Name:        "update",
		Description: "Update a single record by id with column name and value pairs.",
		Parameters:  updateParams,
		Handler:     updateHandler,
	})
	ts.register(Tool{
		Name:        "update_by_id",
		Description: "Update a record by id with a dictionary of updates. Same contract as update.",
		Parameters:  updateParams,
		Handler:     updateHandler,
	})

	ts.register(Tool{
		Name:        "update_bulk",
		Description: "Update every record matching the equality filters; returns the affected count.",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"updates":    map[string]any{"type": "object"},
			"filters":    map[string]any{"type": "object"},
		}, "table_name", "updates"),
		Handler: func(args json.RawMessage) database.Result {
			var a struct {
				Table   string         `json:"table_name"`
				Updates map[string]any `json:"updates"`
				Filters map[string]any `json:"filters"`
			}
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.UpdateBulk(a.Table, a.Updates, a.Filters)
		},
	})

	ts.register(Tool{
		Name:        "delete_by_id",
		Description: "Delete a single record by id.",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"id":         map[string]any{"type": "integer"},
		}, "table_name", "id"),
		Handler: func(args json.RawMessage) database.Result {
			var a idArgs
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.DeleteByID(a.Table, a.ID)
		},
	})

	ts.register(Tool{
		Name:        "delete_with_filter",
		Description: "Delete every record matching the equality filters; returns the removed count.",
		Parameters: objectSchema(map[string]any{
			"table_name": tableProp,
			"filters":    map[string]any{"type": "object"},
		}, "table_name", "filters"),
		Handler: func(args json.RawMessage) database.Result {
			var a filterArgs
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.DeleteWithFilter(a.Table, a.Filters)
		},
	})

	ts.register(Tool{
		Name:        "delete_all",
		Description: "Delete all records from a table. Use with caution.",
		Parameters:  objectSchema(map[string]any{"table_name": tableProp}, "table_name"),
		Handler: func(args json.RawMessage) database.Result {
			var a tableArgs
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.DeleteAll(a.Table)
		},
	})

	aggregateParams := objectSchema(map[string]any{
		"table_name":  tableProp,
		"column_name": map[string]any{"type": "string"},
	}, "table_name", "column_name")
	aggregates := []struct {
		name string
		fn   func(string, string) database.Result
	}{
		{"get_min", mgr.GetMin},
		{"get_max", mgr.GetMax},
		{"get_avg", mgr.GetAvg},
		{"get_sum", mgr.GetSum},
	}
	for _, agg := range aggregates {
		name, fn := agg.name, agg.fn
		ts.register(Tool{
			Name:        name,
			Description: fmt.Sprintf("Get the %s of a column over the full table.", strings.TrimPrefix(name, "get_")),
			Parameters:  aggregateParams,
			Handler: func(args json.RawMessage) database.Result {
				var a columnArgs
				if res := decode(args, &a); res != nil {
					return *res
				}
				return fn(a.Table, a.Column)
			},
		})
	}

	ts.register(Tool{
		Name:        "create_tables",
		Description: "Create the named tables, or every registered table when none are given. Idempotent.",
		Parameters: objectSchema(map[string]any{
			"table_names": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		}),
		Handler: func(args json.RawMessage) database.Result {
			var a namesArgs
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.CreateTables(a.Tables...)
		},
	})

	ts.register(Tool{
		Name:        "drop_tables",
		Description: "Drop the named tables, or every registered table when none are given. Idempotent.",
		Parameters: objectSchema(map[string]any{
			"table_names": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		}),
		Handler: func(args json.RawMessage) database.Result {
			var a namesArgs
			if res := decode(args, &a); res != nil {
				return *res
			}
			return mgr.DropTables(a.Tables...)
		},
	})

	ts.register(Tool{
		Name:        "health_check",
		Description: "Check whether the database connection is healthy.",
		Parameters:  objectSchema(nil),
		Handler: func(json.RawMessage) database.Result {
			return mgr.HealthCheck()
		},
	})

	return ts
}

// TablesInfo renders a human-readable description of every registered table,
// generated from the schema descriptors so it can never drift from them.
func TablesInfo(reg *schema.Registry) string {
	var b strings.Builder
	b.WriteString("The database has the following tables:\n")
	for i, name := range reg.Names() {
		tbl, _ := reg.Resolve(name)
		fmt.Fprintf(&b, "%d. %s\n    - columns:\n", i+1, tbl.Name)
		for _, col := range tbl.Columns {
			attrs := col.Type.String()
			if col.Identity {
				attrs += ", primary key, auto-assigned"
			}
			if col.Unique {
				attrs += ", unique"
			}
			fmt.Fprintf(&b, "        %s (%s)\n", col.Name, attrs)
		}
	}
	return b.String()
}
