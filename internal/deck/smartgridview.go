package deck

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/panel"
	"github.com/opsdeck/opsdeck/internal/prefstore"
)

const (
	checkboxColumnCells = 4
	columnGapCells      = 2
	minColumnCells      = 6
)

// View renders the grid at its current size.
func (g *SmartGrid) View() string {
	if g.width <= 0 || g.height <= 0 {
		return ""
	}

	switch g.mode {
	case modeColumns:
		if g.columnEditor != nil {
			return g.overlay(g.columnEditor.View())
		}
	case modeFilterSets:
		return g.overlay(g.renderFilterSets())
	}

	var sections []string
	sections = append(sections, g.renderHeader())

	if g.mode == modeSearch {
		sections = append(sections, g.searchInput.View())
	}

	if g.preferences().ViewMode == prefstore.ViewModeCard {
		sections = append(sections, g.renderCards())
	} else {
		sections = append(sections, g.renderTable())
	}

	sections = append(sections, g.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// overlay centers a modal over the grid's area.
func (g *SmartGrid) overlay(content string) string {
	return lipgloss.Place(g.width, g.height, lipgloss.Center, lipgloss.Center, content)
}

// renderHeader renders "Title [X-Y of N]" plus the fetch error, if any.
func (g *SmartGrid) renderHeader() string {
	title := pageTitleStyle.Render(g.title)

	first, last := g.pager.Range(g.totalRows())
	info := ""
	if g.totalRows() > 0 {
		info = fmt.Sprintf(" [%d-%d of %d]", first, last, g.totalRows())
	}

	line := title + navInfoStyle.Render(info)
	if g.fetchErr != nil {
		line += "  " + badgeStyle("danger").Render("data unavailable")
	}
	return line
}

// columnCells maps the width engine's output onto terminal columns,
// preserving the proportions the engine computed.
func (g *SmartGrid) columnCells(cols []grid.Column) map[string]int {
	p := g.preferences()
	px := grid.ComputeWidths(cols, grid.WidthParams{
		ContainerWidth: g.width * 10,
		ShowCheckboxes: g.showCheckboxes,
		Preferred:      p.ColumnWidths,
	})

	total := 0
	for _, w := range px {
		total += w
	}

	avail := g.width
	if g.showCheckboxes {
		avail -= checkboxColumnCells
	}
	avail -= columnGapCells * max(len(cols)-1, 0)

	cells := make(map[string]int, len(cols))
	for _, c := range cols {
		w := minColumnCells
		if total > 0 {
			w = max(px[c.Key]*avail/total, minColumnCells)
		}
		cells[c.Key] = w
	}
	return cells
}

func (g *SmartGrid) renderTable() string {
	cols := g.visibleColumns()
	if len(cols) == 0 {
		return mutedStyle.Render("All columns are hidden. Press c to edit columns.")
	}
	cells := g.columnCells(cols)
	gap := strings.Repeat(" ", columnGapCells)

	var lines []string
	lines = append(lines, g.renderHeaderRow(cols, cells, gap))
	if g.showFilterRow {
		lines = append(lines, g.renderFilterRow(cols, cells, gap))
	}

	rows := g.pageRows()
	if len(rows) == 0 {
		lines = append(lines, "", mutedStyle.Render(g.emptyText()))
		return strings.Join(lines, "\n")
	}

	subCols := g.subRowColumns()
	for i, row := range rows {
		lines = append(lines, g.renderRow(row, i, cols, cells, gap))
		if g.expandedRows[g.rowKey(row)] && len(subCols) > 0 {
			lines = append(lines, g.renderSubRow(row, subCols))
		}
	}
	return strings.Join(lines, "\n")
}

func (g *SmartGrid) emptyText() string {
	if g.searchQuery != "" || g.filters.HasActive(g.id) {
		return "No rows match the current filters."
	}
	return "No rows."
}

func (g *SmartGrid) renderHeaderRow(cols []grid.Column, cells map[string]int, gap string) string {
	parts := make([]string, 0, len(cols)+1)

	if g.showCheckboxes {
		all, indeterminate := g.selection.State(g.pageRowKeys())
		mark := "[ ]"
		switch {
		case all:
			mark = "[x]"
		case indeterminate:
			mark = "[-]"
		}
		parts = append(parts, headerCellStyle.Render(padValue(mark, checkboxColumnCells)))
	}

	sort := g.currentSort()
	for i, c := range cols {
		label := c.Title
		if sort != nil && sort.Column == c.Key {
			if sort.Direction == grid.Descending {
				label += " ▼"
			} else {
				label += " ▲"
			}
		}

		style := headerCellStyle
		if i == g.cursorCol {
			style = headerSortedStyle
			if g.mode == modeMove {
				label = "↔ " + label
			}
		}
		parts = append(parts, style.Render(padValue(label, cells[c.Key])))
	}
	return strings.Join(parts, gap)
}

func (g *SmartGrid) renderFilterRow(cols []grid.Column, cells map[string]int, gap string) string {
	parts := make([]string, 0, len(cols)+1)
	if g.showCheckboxes {
		parts = append(parts, strings.Repeat(" ", checkboxColumnCells))
	}

	for i, c := range cols {
		if g.mode == modeFilter && i == g.cursorCol {
			parts = append(parts, padValue(g.filterInput.View(), cells[c.Key]))
			continue
		}
		text := "·"
		if f, ok := g.filters.Get(g.id, c.Key); ok {
			text = filterInputText(f)
		}
		parts = append(parts, mutedStyle.Render(padValue(text, cells[c.Key])))
	}
	return strings.Join(parts, gap)
}

func (g *SmartGrid) renderRow(row grid.Row, idx int, cols []grid.Column, cells map[string]int, gap string) string {
	key := g.rowKey(row)

	rowStyle := evenRowStyle
	if idx%2 == 1 {
		rowStyle = oddRowStyle
	}
	if g.selection.Has(key) {
		rowStyle = selectedRowStyle
	}
	if idx == g.cursorRow {
		rowStyle = cursorRowStyle
	}

	parts := make([]string, 0, len(cols)+1)
	if g.showCheckboxes {
		mark := "[ ]"
		if g.selection.Has(key) {
			mark = "[x]"
		}
		parts = append(parts, rowStyle.Render(padValue(mark, checkboxColumnCells)))
	}

	for i, c := range cols {
		width := cells[c.Key]

		if g.mode == modeEdit && idx == g.cursorRow && i == g.cursorCol {
			parts = append(parts, padValue(g.editInput.View(), width))
			continue
		}

		text := g.cellText(row, c)
		if c.Type == grid.ColumnBadge && idx != g.cursorRow && !g.selection.Has(key) {
			variant := "neutral"
			if sc, ok := row[c.Key].(grid.StatusCell); ok {
				variant = sc.Variant
			}
			parts = append(parts, badgeStyle(variant).Render(padValue(text, width)))
			continue
		}
		parts = append(parts, rowStyle.Render(padValue(text, width)))
	}
	return strings.Join(parts, gap)
}

// cellText renders one cell for the table, decorating by column type.
func (g *SmartGrid) cellText(row grid.Row, c grid.Column) string {
	v := row[c.Key]
	if v == nil {
		return "-"
	}
	text := grid.CellString(v)
	switch c.Type {
	case grid.ColumnExpandableCount:
		if g.expandedRows[g.rowKey(row)] {
			return "▾ " + text
		}
		return "▸ " + text
	case grid.ColumnLink:
		return text + " ↗"
	default:
		if text == "" {
			return "-"
		}
		return text
	}
}

func (g *SmartGrid) renderSubRow(row grid.Row, subCols []grid.Column) string {
	parts := make([]string, 0, len(subCols))
	for _, c := range subCols {
		text := grid.CellString(row[c.Key])
		if text == "" {
			text = "-"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", c.Title, text))
	}
	indent := strings.Repeat(" ", checkboxColumnCells)
	return subRowStyle.Render(indent + "└ " + strings.Join(parts, "  •  "))
}

// renderCards renders the page as stacked cards for the card view mode.
func (g *SmartGrid) renderCards() string {
	rows := g.pageRows()
	if len(rows) == 0 {
		return mutedStyle.Render(g.emptyText())
	}
	cols := g.visibleColumns()
	if len(cols) == 0 {
		return mutedStyle.Render("All columns are hidden. Press c to edit columns.")
	}

	cardWidth := clamp(g.width-4, 20, 72)
	var cards []string
	for i, row := range rows {
		var b strings.Builder

		titleStyle := panelTitleStyle
		if i == g.cursorRow {
			titleStyle = titleStyle.Underline(true)
		}
		mark := ""
		if g.selection.Has(g.rowKey(row)) {
			mark = "● "
		}
		b.WriteString(titleStyle.Render(mark + grid.CellString(row[cols[0].Key])))

		for _, c := range cols[1:] {
			text := grid.CellString(row[c.Key])
			if text == "" {
				text = "-"
			}
			b.WriteString("\n")
			b.WriteString(panelLabelStyle.Render(c.Title+": ") + panelValueStyle.Render(text))
		}
		cards = append(cards, cardBorderStyle.Width(cardWidth).Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// renderFilterSets renders the saved filter set picker.
func (g *SmartGrid) renderFilterSets() string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("Saved Filter Sets"))
	b.WriteString("\n\n")

	for i, set := range g.filterSets {
		line := fmt.Sprintf("%s (%d filter(s))", set.Name, len(set.Filters))
		if set.IsDefault {
			line += " • default"
		}
		if i == g.filterSetLine {
			b.WriteString(cursorRowStyle.Render("> " + line))
		} else {
			b.WriteString(cellStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Enter load • d delete • D default • Esc close"))
	return modalBorderStyle.Render(b.String())
}

// renderFooter renders the pagination line and the grid status summary.
func (g *SmartGrid) renderFooter() string {
	total := g.totalRows()
	first, last := g.pager.Range(total)

	left := fmt.Sprintf("Showing %d-%d of %d • Page %d/%d • %d/page",
		first, last, total, g.pager.Page(), g.pager.TotalPages(total), g.pager.PageSize())

	summary := g.statusSummary()
	return statusBarStyle.Render(left) + navInfoStyle.Render(summary)
}

// FieldValues adapts the cursor row to panel field values for detail
// views.
func (g *SmartGrid) FieldValues(fields []panel.FieldSpec) map[string]any {
	row, ok := g.cursorRowData()
	if !ok {
		return nil
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.Key] = row[f.Key]
	}
	return out
}
