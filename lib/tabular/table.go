// Package tabular provides the columnar table value used for out-of-band
// widget arguments, and a deterministic msgpack codec for it.
//
// A Table crosses the host/iframe boundary as an opaque byte buffer inside a
// special-arg record. The buffer also participates in full-fingerprint widget
// identity, so encoding identical content must produce identical bytes.
package tabular

import (
	"errors"
	"fmt"
)

// Sentinel errors for table construction and decoding.
var (
	ErrColumnLength = errors.New("tabular: column length mismatch")
	ErrBadBuffer    = errors.New("tabular: malformed buffer")
)

// Column is one named column of a Table.
//
// Values are heterogeneous: strings, bools, int64s, float64s, byte slices,
// or nil for a null cell. Any JSON-representable scalar is acceptable; the
// codec preserves content, not Go static types (all integer widths decode
// as int64, float32 as float64).
type Column struct {
	Name   string
	Values []any
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	Columns []Column
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// NumRows returns the number of rows, defined by the first column.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Column returns the named column, if present.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Validate checks that every column has the same length.
func (t *Table) Validate() error {
	if len(t.Columns) == 0 {
		return nil
	}
	rows := len(t.Columns[0].Values)
	for _, c := range t.Columns[1:] {
		if len(c.Values) != rows {
			return fmt.Errorf("%w: column %q has %d values, want %d",
				ErrColumnLength, c.Name, len(c.Values), rows)
		}
	}
	return nil
}
