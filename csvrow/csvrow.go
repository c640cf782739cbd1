// Package csvrow accumulates named columns into comma-separated rows.
// It serves the wider tool suite's result files; the benchmark engine
// itself emits plain tab-separated rows and does not use it.
package csvrow

import (
	"fmt"
	"io"
	"strings"
)

// Column is a handle into a Columns registry. Its position is fixed at
// registration time.
type Column struct {
	header string
	order  int
}

func (c *Column) Header() string { return c.header }

// Columns assigns row positions in registration order.
type Columns struct {
	cols []*Column
}

// Add registers a column under the next free position.
func (cs *Columns) Add(header string) *Column {
	c := &Column{header: header, order: len(cs.cols)}
	cs.cols = append(cs.cols, c)
	return c
}

// SetHeader fills row with every registered column's header cell.
func (cs *Columns) SetHeader(row *Row) {
	for _, c := range cs.cols {
		row.Set(c, c.header)
	}
}

// Row is a sparse cell store keyed by column position. Cells hold their
// escaped form; unset cells render empty.
type Row struct {
	cells []string
}

// Set stores an escaped cell under the column's position, growing the
// row as needed. A nil column is ignored.
func (r *Row) Set(c *Column, data string) {
	if c == nil {
		return
	}
	for len(r.cells) <= c.order {
		r.cells = append(r.cells, "")
	}
	r.cells[c.order] = escape(data)
}

// SetFloat stores data rendered with %g.
func (r *Row) SetFloat(c *Column, data float64) {
	r.Set(c, fmt.Sprintf("%g", data))
}

// Value returns the stored (escaped) cell, or "" when unset.
func (r *Row) Value(c *Column) string {
	if c == nil || c.order >= len(r.cells) {
		return ""
	}
	return r.cells[c.order]
}

// String renders the comma-joined, newline-terminated row.
func (r *Row) String() string {
	return strings.Join(r.cells, ",") + "\n"
}

// WriteTo writes the rendered row to w.
func (r *Row) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// Clear empties the row for reuse.
func (r *Row) Clear() { r.cells = r.cells[:0] }

// Empty reports whether no cell has been set since the last Clear.
func (r *Row) Empty() bool { return len(r.cells) == 0 }

// escape prepares a field for a comma-separated row: embedded double
// quotes are doubled, and any field containing a quote, comma or space
// is wrapped in quotes.
func escape(field string) string {
	quoted := strings.Contains(field, `"`)
	if quoted {
		field = strings.ReplaceAll(field, `"`, `""`)
	}
	if quoted || strings.ContainsAny(field, ", ") {
		return `"` + field + `"`
	}
	return field
}
