// Package grid implements the headless core of the smart grid: column
// configuration, the filter/sort pipeline, the column width engine, and
// selection/editing/pagination state.
//
// Nothing in this package renders. The deck package composes these pieces
// into the on-screen component.
package grid

import (
	"fmt"
	"strconv"
)

// ColumnType is the semantic type of a column. It drives the cell renderer
// and the minimum width the width engine reserves for the column.
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnBadge
	ColumnLink
	ColumnEditableText
	ColumnDate
	ColumnDateTimeRange
	ColumnExpandableCount
	ColumnTextWithTooltip
)

// String returns the stable name used in config files and logs.
func (t ColumnType) String() string {
	switch t {
	case ColumnBadge:
		return "badge"
	case ColumnLink:
		return "link"
	case ColumnEditableText:
		return "editable-text"
	case ColumnDate:
		return "date"
	case ColumnDateTimeRange:
		return "date-range"
	case ColumnExpandableCount:
		return "expandable-count"
	case ColumnTextWithTooltip:
		return "text-tooltip"
	default:
		return "text"
	}
}

// Column is the configuration for a single grid column.
//
// Key is unique within a grid and immutable once the grid is initialized;
// preferences reference columns by key.
type Column struct {
	Key      string
	Title    string
	Type     ColumnType
	Sortable bool
	Editable bool

	// Mandatory columns cannot be hidden through the column editor.
	Mandatory bool

	// SubRow columns render in the expandable sub-row instead of the
	// main row.
	SubRow bool

	// Width, when non-zero, is an explicit width override that beats any
	// stored preference.
	Width int

	// Options lists the editable values for select-style editable cells.
	Options []Option
}

// Option is a label/value pair for select-style cells and fields.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Row is a single grid record. Cell values are looked up by column key.
type Row map[string]any

// RowKeyFunc extracts the caller-defined unique key for a row. The grid
// never assumes a particular key field name.
type RowKeyFunc func(Row) string

// RowKeyField returns a RowKeyFunc reading the named field.
func RowKeyField(field string) RowKeyFunc {
	return func(r Row) string {
		return CellString(r[field])
	}
}

// StatusCell is a badge-style cell value: the displayed value plus a
// variant controlling badge styling.
type StatusCell struct {
	Value   string `json:"value"`
	Variant string `json:"variant"`
}

// CellValue unwraps status-shaped cells to their inner value. Plain values
// pass through unchanged.
func CellValue(v any) any {
	switch c := v.(type) {
	case StatusCell:
		return c.Value
	case *StatusCell:
		if c == nil {
			return nil
		}
		return c.Value
	case map[string]any:
		if inner, ok := c["value"]; ok {
			return inner
		}
		return v
	default:
		return v
	}
}

// CellString renders a cell value for display and text matching. Nil
// renders as the empty string.
func CellString(v any) string {
	v = CellValue(v)
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// cellNumber coerces a cell value to a float64 for numeric comparison.
func cellNumber(v any) (float64, bool) {
	switch n := CellValue(v).(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// nativeNumber coerces only genuinely numeric values, leaving numeric
// strings to compare lexicographically like any other string.
func nativeNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ColumnKeys returns the keys of the given columns in order.
func ColumnKeys(columns []Column) []string {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	return keys
}
