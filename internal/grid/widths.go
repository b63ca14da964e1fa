package grid

// Width engine constants. Widths are computed in the same abstract pixel
// units the minimums are expressed in; the view maps the result onto
// terminal columns proportionally.
const (
	// OuterPadding is the fixed horizontal padding reserved outside the
	// column area.
	OuterPadding = 64

	// CheckboxColumnWidth is reserved when row checkboxes are shown.
	CheckboxColumnWidth = 50

	// RowActionsWidth is reserved when any row-action plugin is present.
	RowActionsWidth = 100
)

// MinWidth returns the minimum width for the column type.
func (t ColumnType) MinWidth() int {
	switch t {
	case ColumnBadge:
		return 100
	case ColumnDate:
		return 140
	case ColumnDateTimeRange:
		return 200
	case ColumnLink:
		return 150
	case ColumnExpandableCount:
		return 90
	default:
		return 120
	}
}

// WidthParams carries everything ComputeWidths needs besides the visible
// column set.
type WidthParams struct {
	// ContainerWidth is the full viewport width, before padding and
	// checkbox/action reservations.
	ContainerWidth int

	ShowCheckboxes bool
	HasRowActions  bool

	// Preferred holds user width preferences by column key. Values are
	// clamped up to the column type minimum.
	Preferred map[string]int

	// Overrides holds explicit per-column widths that beat preferences
	// and minimums alike.
	Overrides map[string]int
}

// ComputeWidths computes the rendered width of each visible column.
//
// Base widths come from, in precedence order: explicit override, stored
// preference (clamped to the type minimum), type minimum. Any positive
// remainder of the available width is distributed proportionally to the
// base widths, biasing extra space toward already-wide columns. When the
// base widths exceed the available width, nothing shrinks below its
// minimum; horizontal overflow is the accepted outcome.
func ComputeWidths(visible []Column, p WidthParams) map[string]int {
	available := p.ContainerWidth - OuterPadding
	if p.ShowCheckboxes {
		available -= CheckboxColumnWidth
	}
	if p.HasRowActions {
		available -= RowActionsWidth
	}

	widths := make(map[string]int, len(visible))
	total := 0

	for _, col := range visible {
		min := col.Type.MinWidth()
		w := min
		if pref, ok := p.Preferred[col.Key]; ok && pref > min {
			w = pref
		}
		if override, ok := p.Overrides[col.Key]; ok && override > 0 {
			w = override
		} else if col.Width > 0 {
			w = col.Width
		}
		if w < min {
			w = min
		}
		widths[col.Key] = w
		total += w
	}

	remaining := available - total
	if remaining > 0 && total > 0 {
		for _, col := range visible {
			extra := remaining * widths[col.Key] / total
			widths[col.Key] += extra
		}
	}

	return widths
}
