package parser

import (
	"math"
	"strconv"
)

// ValueKind is the variant tag of a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindTable
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is a node of a deserialized document. The zero Value is null.
// Tables own their children; the tree is never cyclic.
type Value struct {
	kind  ValueKind
	b     bool
	n     float64
	s     string
	table *Table
}

// Constructors

func Null() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func TableValue(t *Table) Value { return Value{kind: KindTable, table: t} }

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsTable returns the table payload.
func (v Value) AsTable() (*Table, bool) { return v.table, v.kind == KindTable }

// AsInt returns the numeric payload when it is an integral value that fits in an int.
func (v Value) AsInt() (int, bool) {
	if v.kind != KindNumber || math.IsInf(v.n, 0) || math.IsNaN(v.n) || v.n != math.Trunc(v.n) {
		return 0, false
	}
	if v.n > math.MaxInt32 || v.n < math.MinInt32 {
		return 0, false
	}
	return int(v.n), true
}

// Interface converts v into plain Go values suitable for JSON encoding.
// Tables become map[string]any with keys rendered by KeyString.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if math.IsInf(v.n, 0) || math.IsNaN(v.n) {
			return strconv.FormatFloat(v.n, 'g', -1, 64)
		}
		return v.n
	case KindString:
		return v.s
	case KindTable:
		out := make(map[string]any, v.table.Len())
		for _, e := range v.table.entries {
			out[e.Key.KeyString()] = e.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// KeyString renders v the way it appears as a map key.
func (v Value) KeyString() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindString:
		return v.s
	case KindTable:
		return "<table>"
	default:
		return "null"
	}
}

// Entry is a key/value pair of a Table.
type Entry struct {
	Key   Value
	Value Value
}

// scalarKey identifies a non-table key for deduplication.
type scalarKey struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
}

// Table is an ordered mapping with unique keys. Entries keep decode order;
// setting an existing scalar key replaces its value in place. Table keys are
// compared by identity, so two table keys are always distinct.
type Table struct {
	entries []Entry
	index   map[scalarKey]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[scalarKey]int)}
}

func keyOf(v Value) (scalarKey, bool) {
	if v.kind == KindTable {
		return scalarKey{}, false
	}
	return scalarKey{kind: v.kind, b: v.b, n: v.n, s: v.s}, true
}

// Set stores value under key.
func (t *Table) Set(key, value Value) {
	k, scalar := keyOf(key)
	if scalar {
		if i, ok := t.index[k]; ok {
			t.entries[i].Value = value
			return
		}
		t.index[k] = len(t.entries)
	}
	t.entries = append(t.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (t *Table) Get(key Value) (Value, bool) {
	k, scalar := keyOf(key)
	if !scalar {
		for _, e := range t.entries {
			if e.Key.kind == KindTable && e.Key.table == key.table {
				return e.Value, true
			}
		}
		return Value{}, false
	}
	i, ok := t.index[k]
	if !ok {
		return Value{}, false
	}
	return t.entries[i].Value, true
}

// Field returns the value stored under a string key.
func (t *Table) Field(name string) (Value, bool) {
	return t.Get(String(name))
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns the entries in decode order. The slice must not be modified.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return t.entries
}
