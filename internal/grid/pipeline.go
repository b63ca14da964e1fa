package grid

import (
	"sort"
	"strings"
)

// Operator is a column filter comparison operator.
type Operator int

const (
	OpEquals Operator = iota
	OpContains
	OpStartsWith
	OpEndsWith
	OpGreaterThan
	OpLessThan
	OpGreaterOrEqual
	OpLessOrEqual
)

// String returns the operator's stable name.
func (o Operator) String() string {
	switch o {
	case OpEquals:
		return "equals"
	case OpStartsWith:
		return "startsWith"
	case OpEndsWith:
		return "endsWith"
	case OpGreaterThan:
		return "gt"
	case OpLessThan:
		return "lt"
	case OpGreaterOrEqual:
		return "gte"
	case OpLessOrEqual:
		return "lte"
	default:
		return "contains"
	}
}

// MarshalText implements encoding.TextMarshaler for persisted filters.
func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names fall
// back to "contains", matching the tolerant defaulting of stored state.
func (o *Operator) UnmarshalText(text []byte) error {
	*o = ParseOperator(string(text))
	return nil
}

// ParseOperator maps a stable name to an Operator. Unknown names return
// OpContains.
func ParseOperator(s string) Operator {
	switch s {
	case "equals":
		return OpEquals
	case "startsWith":
		return OpStartsWith
	case "endsWith":
		return OpEndsWith
	case "gt":
		return OpGreaterThan
	case "lt":
		return OpLessThan
	case "gte":
		return OpGreaterOrEqual
	case "lte":
		return OpLessOrEqual
	default:
		return OpContains
	}
}

// Numeric reports whether the operator compares numerically.
func (o Operator) Numeric() bool {
	switch o {
	case OpGreaterThan, OpLessThan, OpGreaterOrEqual, OpLessOrEqual:
		return true
	default:
		return false
	}
}

// Filter is one active column filter: operator plus operand, bound to a
// column key.
type Filter struct {
	Column   string   `json:"column" yaml:"column"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    any      `json:"value" yaml:"value"`
}

// SortDirection orders a sorted column ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// String returns "asc" or "desc".
func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseSortDirection maps "desc" to Descending and anything else to
// Ascending.
func ParseSortDirection(s string) SortDirection {
	if s == "desc" {
		return Descending
	}
	return Ascending
}

// SortSpec names the sorted column and direction. A nil *SortSpec means
// unsorted.
type SortSpec struct {
	Column    string        `json:"column" yaml:"column"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// Process applies the grid pipeline to rows: global text filter, then
// column filters, then sort. The stage order is fixed; pagination
// downstream depends on the filtered-then-sorted length.
//
// When lazy is true the data source is server-paginated and already
// filtered/sorted; Process is a passthrough and never re-filters.
func Process(
	rows []Row,
	globalFilter string,
	filters []Filter,
	sortSpec *SortSpec,
	columns []Column,
	lazy bool,
) []Row {
	if lazy {
		return rows
	}

	result := make([]Row, len(rows))
	copy(result, rows)

	if globalFilter != "" {
		result = applyGlobalFilter(result, globalFilter, columns)
	}
	if len(filters) > 0 {
		result = applyColumnFilters(result, filters)
	}
	if sortSpec != nil && sortSpec.Column != "" {
		result = applySort(result, *sortSpec)
	}

	return result
}

// applyGlobalFilter keeps rows where any column's display value contains
// the filter text, case-insensitively. All configured columns are
// searched, including hidden ones.
func applyGlobalFilter(rows []Row, filter string, columns []Column) []Row {
	needle := strings.ToLower(filter)
	out := rows[:0]
	for _, row := range rows {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(CellString(row[col.Key])), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// applyColumnFilters keeps rows matching every active filter (AND across
// columns).
func applyColumnFilters(rows []Row, filters []Filter) []Row {
	out := rows[:0]
	for _, row := range rows {
		ok := true
		for _, f := range filters {
			if !matchesFilter(row[f.Column], f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, row)
		}
	}
	return out
}

// matchesFilter evaluates one filter against a cell value. A nil cell
// fails every operator; absence of a filter entry, not an empty operand,
// is how "no constraint" is expressed.
func matchesFilter(value any, f Filter) bool {
	if CellValue(value) == nil {
		return false
	}

	if f.Operator.Numeric() {
		a, aok := cellNumber(value)
		b, bok := cellNumber(f.Value)
		if !aok || !bok {
			return false
		}
		switch f.Operator {
		case OpGreaterThan:
			return a > b
		case OpLessThan:
			return a < b
		case OpGreaterOrEqual:
			return a >= b
		default:
			return a <= b
		}
	}

	cell := strings.ToLower(CellString(value))
	operand := strings.ToLower(CellString(f.Value))

	switch f.Operator {
	case OpEquals:
		return cell == operand
	case OpStartsWith:
		return strings.HasPrefix(cell, operand)
	case OpEndsWith:
		return strings.HasSuffix(cell, operand)
	default:
		return strings.Contains(cell, operand)
	}
}

// applySort sorts rows stably by the spec's column. Nils sort as less
// than any defined value in both directions; the direction flips the
// comparison sign only.
func applySort(rows []Row, spec SortSpec) []Row {
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareCells(rows[i][spec.Column], rows[j][spec.Column])
		if spec.Direction == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return rows
}

// compareCells orders two cell values: nil < defined, numeric pairs
// compare numerically, everything else by display string.
func compareCells(a, b any) int {
	av, bv := CellValue(a), CellValue(b)

	switch {
	case av == nil && bv == nil:
		return 0
	case av == nil:
		return -1
	case bv == nil:
		return 1
	}

	if an, aok := nativeNumber(av); aok {
		if bn, bok := nativeNumber(bv); bok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}

	as, bs := CellString(av), CellString(bv)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
