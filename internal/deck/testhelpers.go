package deck

import (
	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/panel"
)

// This file contains exported helpers used by tests. They expose
// internal state read-only; production code must not call them.

// TestProcessedRows returns the rows after filtering and sorting.
func (g *SmartGrid) TestProcessedRows() []grid.Row {
	return g.processed
}

// TestPageRows returns the rows on the current page.
func (g *SmartGrid) TestPageRows() []grid.Row {
	return g.pageRows()
}

// TestPage returns the current page number.
func (g *SmartGrid) TestPage() int { return g.pager.Page() }

// TestPageSize returns the current page size.
func (g *SmartGrid) TestPageSize() int { return g.pager.PageSize() }

// TestCursor returns the cursor position as (row, column).
func (g *SmartGrid) TestCursor() (int, int) { return g.cursorRow, g.cursorCol }

// TestSearchQuery returns the committed global search query.
func (g *SmartGrid) TestSearchQuery() string { return g.searchQuery }

// TestVisibleColumnKeys returns the visible column keys in display order.
func (g *SmartGrid) TestVisibleColumnKeys() []string {
	return grid.ColumnKeys(g.visibleColumns())
}

// TestSelectedKeys returns the selected row keys sorted.
func (g *SmartGrid) TestSelectedKeys() []string { return g.selection.Keys() }

// TestRowExpanded reports whether the given row key is expanded.
func (g *SmartGrid) TestRowExpanded(key string) bool { return g.expandedRows[key] }

// TestInMode reports the grid's current input mode by name.
func (g *SmartGrid) TestInMode() string {
	switch g.mode {
	case modeSearch:
		return "search"
	case modeFilter:
		return "filter"
	case modeEdit:
		return "edit"
	case modeMove:
		return "move"
	case modeColumns:
		return "columns"
	case modeFilterSets:
		return "filtersets"
	case modeSaveName:
		return "savename"
	default:
		return "browse"
	}
}

// TestActiveGrid returns the grid receiving input.
func (m *Model) TestActiveGrid() *SmartGrid { return m.activeGrid() }

// TestHelpVisible reports whether the help screen is up.
func (m *Model) TestHelpVisible() bool { return m.showHelp }

// TestSettings returns the panel's resolved settings.
func (d *DynamicPanel) TestSettings() panel.Settings { return d.settings.Clone() }

// TestForceOpen snaps the panel fully open, skipping the animation.
func (d *DynamicPanel) TestForceOpen() { d.slider.ForceExpand() }

// TestForceClosed snaps the panel fully closed.
func (d *DynamicPanel) TestForceClosed() { d.slider.ForceCollapse() }
