package tabular

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Wire layout is struct-shaped so msgpack emits fields in declaration order;
// identical tables encode to identical bytes.
type wireTable struct {
	Columns []wireColumn `msgpack:"columns"`
}

type wireColumn struct {
	Name   string `msgpack:"name"`
	Values []any  `msgpack:"values"`
}

// Codec encodes and decodes Tables as columnar msgpack buffers.
//
// The zero value is ready to use.
type Codec struct{}

// Encode serializes a table. The output is deterministic: encoding the same
// content twice yields byte-identical buffers, which the full-fingerprint
// identity mode relies on. Returns ErrColumnLength if columns disagree on
// row count.
func (Codec) Encode(t *Table) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	w := wireTable{Columns: make([]wireColumn, len(t.Columns))}
	for i, c := range t.Columns {
		w.Columns[i] = wireColumn{Name: c.Name, Values: c.Values}
	}
	buf, err := msgpack.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("tabular: encode: %w", err)
	}
	return buf, nil
}

// Decode deserializes a buffer produced by Encode. Integer cells come back
// as int64 and float cells as float64 regardless of the width they were
// encoded with.
func (Codec) Decode(buf []byte) (*Table, error) {
	var w wireTable
	if err := msgpack.Unmarshal(buf, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBuffer, err)
	}
	t := &Table{Columns: make([]Column, len(w.Columns))}
	for i, c := range w.Columns {
		vals := make([]any, len(c.Values))
		for j, v := range c.Values {
			vals[j] = normalize(v)
		}
		t.Columns[i] = Column{Name: c.Name, Values: vals}
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBuffer, err)
	}
	return t, nil
}

// normalize collapses the integer and float widths msgpack may hand back so
// round-tripped cells compare equal regardless of encoded width.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		if n <= 1<<63-1 {
			return int64(n)
		}
		return n
	case float32:
		return float64(n)
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, e := range n {
			out[k] = normalize(e)
		}
		return out
	default:
		return v
	}
}
