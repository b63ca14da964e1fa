// Package panel implements the dynamic detail panel: typed field specs,
// settings resolution across configured defaults, remote settings, and
// user edits, plus the field visibility editor.
package panel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opsdeck/opsdeck/internal/grid"
)

// FieldType is the semantic type of a panel field. It drives value
// formatting and which editor the field gets.
type FieldType int

const (
	FieldText FieldType = iota
	FieldTextarea
	FieldSelect
	FieldSearch
	FieldDate
	FieldTime
	FieldCurrency
)

// String returns the stable name used in settings records.
func (t FieldType) String() string {
	switch t {
	case FieldTextarea:
		return "textarea"
	case FieldSelect:
		return "select"
	case FieldSearch:
		return "search"
	case FieldDate:
		return "date"
	case FieldTime:
		return "time"
	case FieldCurrency:
		return "currency"
	default:
		return "text"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names fall
// back to plain text.
func (t *FieldType) UnmarshalText(text []byte) error {
	*t = ParseFieldType(string(text))
	return nil
}

// ParseFieldType maps a stable name to a FieldType. Unknown names return
// FieldText.
func ParseFieldType(s string) FieldType {
	switch s {
	case "textarea":
		return FieldTextarea
	case "select":
		return FieldSelect
	case "search":
		return FieldSearch
	case "date":
		return FieldDate
	case "time":
		return FieldTime
	case "currency":
		return FieldCurrency
	default:
		return FieldText
	}
}

// FieldWidth is a share of a 12-column layout row: a named fraction or a
// column span "1" through "12". Panels use the same scale for their own
// width.
type FieldWidth string

// Named width fractions.
const (
	WidthFull    FieldWidth = "full"
	WidthHalf    FieldWidth = "half"
	WidthThird   FieldWidth = "third"
	WidthQuarter FieldWidth = "quarter"
)

// Span returns the width as 12-grid columns. Unknown or empty widths
// take the full row.
func (w FieldWidth) Span() int {
	switch w {
	case "full", "":
		return 12
	case "half":
		return 6
	case "third":
		return 4
	case "quarter":
		return 3
	}
	if n, err := strconv.Atoi(string(w)); err == nil && n >= 1 && n <= 12 {
		return n
	}
	return 12
}

// FieldSpec configures one panel field. Value is the configured default,
// used when the data map carries nothing for the key; Editable is carried
// for form layers, the console renders every field read-only.
type FieldSpec struct {
	Key         string        `json:"key"`
	Label       string        `json:"label"`
	Type        FieldType     `json:"type"`
	Order       int           `json:"order"`
	Width       FieldWidth    `json:"width,omitempty"`
	Value       any           `json:"value,omitempty"`
	Mandatory   bool          `json:"mandatory,omitempty"`
	Hidden      bool          `json:"hidden,omitempty"`
	Editable    bool          `json:"editable,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	Options     []grid.Option `json:"options,omitempty"`
}

// FormatValue renders a field value for display.
//
// Currency values that fail to parse render as zero rather than erroring;
// select values map to their option label. A nil value falls back to the
// field's configured value, then to the placeholder, then to a dash.
func FormatValue(f FieldSpec, v any) string {
	if v == nil {
		v = f.Value
	}
	if v == nil {
		if f.Placeholder != "" {
			return f.Placeholder
		}
		return "-"
	}

	switch f.Type {
	case FieldCurrency:
		return fmt.Sprintf("$%.2f", currencyAmount(v))
	case FieldSelect:
		raw := grid.CellString(v)
		for _, opt := range f.Options {
			if opt.Value == raw {
				return opt.Label
			}
		}
		if raw == "" {
			return "-"
		}
		return raw
	default:
		s := grid.CellString(v)
		if s == "" {
			return "-"
		}
		return s
	}
}

// currencyAmount coerces a currency value to a float, tolerating "$" and
// thousands separators. Anything unparseable is zero.
func currencyAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		cleaned := strings.TrimSpace(n)
		cleaned = strings.TrimPrefix(cleaned, "$")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
