package cogcmp

import "github.com/cogstack/cogcmp/lib/tabular"

// ValueKind discriminates the closed set of argument value shapes.
type ValueKind int

const (
	// KindJSON is any JSON-representable scalar or collection.
	KindJSON ValueKind = iota
	// KindBytes is an opaque binary blob, carried out-of-band.
	KindBytes
	// KindTable is columnar tabular data, carried out-of-band.
	KindTable
)

// String returns the wire name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindBytes:
		return "bytes"
	case KindTable:
		return "table"
	default:
		return "json"
	}
}

// Value is a tagged argument value. Callers construct one of the three
// shapes explicitly via JSON, Bytes, or Table; there is no runtime
// duck-typing of argument content.
//
// The zero Value is JSON(nil).
type Value struct {
	kind  ValueKind
	json  any
	bytes []byte
	table *tabular.Table
}

// JSON wraps a JSON-representable value. The content is not validated here;
// a value that cannot be JSON-encoded fails later at serialization with an
// encoding error.
func JSON(v any) Value {
	return Value{kind: KindJSON, json: v}
}

// Bytes wraps a binary blob. The slice is carried as-is; callers must not
// mutate it after the call.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bytes: b}
}

// Table wraps columnar tabular data.
func Table(t *tabular.Table) Value {
	return Value{kind: KindTable, table: t}
}

// Kind returns the value's shape tag. Bytes wins over table by
// construction: a Value holds exactly one shape, checked in that order by
// the classifier.
func (v Value) Kind() ValueKind { return v.kind }

// IsBytesLike reports whether the value carries a binary blob.
func (v Value) IsBytesLike() bool { return v.kind == KindBytes }

// IsTableLike reports whether the value carries tabular data.
func (v Value) IsTableLike() bool { return v.kind == KindTable }

// JSONValue returns the wrapped JSON content (nil unless KindJSON).
func (v Value) JSONValue() any { return v.json }

// BytesValue returns the wrapped blob (nil unless KindBytes).
func (v Value) BytesValue() []byte { return v.bytes }

// TableValue returns the wrapped table (nil unless KindTable).
func (v Value) TableValue() *tabular.Table { return v.table }

// raw returns the untagged content, used when a default value is handed
// back to the caller verbatim.
func (v Value) raw() any {
	switch v.kind {
	case KindBytes:
		return v.bytes
	case KindTable:
		return v.table
	default:
		return v.json
	}
}
