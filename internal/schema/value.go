package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Value is a tagged variant holding one column value. Payloads arriving from
// agent callers are loosely typed (JSON-decoded any); Coerce narrows them to
// the column's declared type so validation is exhaustive instead of
// duck-typed.
type Value struct {
	kind ColumnType
	null bool

	i int64
	f float64
	s string
	b bool
	t time.Time
}

// Null returns a null value for the given column type.
func Null(kind ColumnType) Value {
	return Value{kind: kind, null: true}
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.null }

// Kind returns the column type the value was coerced to.
func (v Value) Kind() ColumnType { return v.kind }

// Driver returns the value in a form accepted by database/sql parameter
// binding: nil, int64, float64, string, bool, or time.Time.
func (v Value) Driver() any {
	if v.null {
		return nil
	}
	switch v.kind {
	case Integer:
		return v.i
	case Float:
		return v.f
	case Text:
		return v.s
	case Boolean:
		return v.b
	case Timestamp:
		return v.t
	default:
		return nil
	}
}

// Timestamp strings accepted from callers, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Coerce narrows a loosely-typed value to the given column type. JSON
// decoding turns every number into float64, so integral floats are accepted
// for integer columns; timestamps are accepted as time.Time or as one of the
// common string layouts.
func Coerce(kind ColumnType, raw any) (Value, error) {
	if raw == nil {
		return Null(kind), nil
	}

	switch kind {
	case Integer:
		switch n := raw.(type) {
		case int:
			return Value{kind: kind, i: int64(n)}, nil
		case int32:
			return Value{kind: kind, i: int64(n)}, nil
		case int64:
			return Value{kind: kind, i: n}, nil
		case float64:
			if n != math.Trunc(n) {
				return Value{}, fmt.Errorf("value %v is not an integer", n)
			}
			return Value{kind: kind, i: int64(n)}, nil
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return Value{}, fmt.Errorf("value %q is not an integer", n.String())
			}
			return Value{kind: kind, i: i}, nil
		}

	case Float:
		switch n := raw.(type) {
		case float64:
			return Value{kind: kind, f: n}, nil
		case float32:
			return Value{kind: kind, f: float64(n)}, nil
		case int:
			return Value{kind: kind, f: float64(n)}, nil
		case int64:
			return Value{kind: kind, f: float64(n)}, nil
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return Value{}, fmt.Errorf("value %q is not a number", n.String())
			}
			return Value{kind: kind, f: f}, nil
		}

	case Text:
		if s, ok := raw.(string); ok {
			return Value{kind: kind, s: s}, nil
		}

	case Boolean:
		switch b := raw.(type) {
		case bool:
			return Value{kind: kind, b: b}, nil
		case float64:
			// Agents occasionally send 0/1 for booleans.
			if b == 0 || b == 1 {
				return Value{kind: kind, b: b == 1}, nil
			}
		case int:
			if b == 0 || b == 1 {
				return Value{kind: kind, b: b == 1}, nil
			}
		}

	case Timestamp:
		switch ts := raw.(type) {
		case time.Time:
			return Value{kind: kind, t: ts}, nil
		case string:
			for _, layout := range timestampLayouts {
				if t, err := time.Parse(layout, ts); err == nil {
					return Value{kind: kind, t: t}, nil
				}
			}
			return Value{}, fmt.Errorf("value %q is not a recognized timestamp", ts)
		}
	}

	return Value{}, fmt.Errorf("value of type %T cannot be used for a %s column", raw, kind)
}
