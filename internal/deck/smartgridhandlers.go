package deck

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/prefstore"
)

// handleKeyMsg routes a key press by input mode. Modes own their keys
// completely; only browse mode consults the binding map.
func (g *SmartGrid) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch g.mode {
	case modeSearch:
		return g.handleSearchKey(msg)
	case modeFilter:
		return g.handleFilterKey(msg)
	case modeEdit:
		return g.handleEditKey(msg)
	case modeMove:
		return g.handleMoveKey(msg)
	case modeColumns:
		return g.handleColumnEditorKey(msg)
	case modeFilterSets:
		return g.handleFilterSetsKey(msg)
	case modeSaveName:
		return g.handleSaveNameKey(msg)
	}

	if handler, ok := g.keyMap[normalizeKey(msg.String())]; ok {
		return handler(g, msg)
	}
	return nil
}

// afterQueryChange resets to page 1, reruns the pipeline, and refetches
// when the source is lazy.
func (g *SmartGrid) afterQueryChange() tea.Cmd {
	g.pager.SetPage(1, g.totalRows())
	g.reprocess()
	if g.source.Lazy() {
		return g.fetchCmd()
	}
	return nil
}

// ---- Navigation ----

func (g *SmartGrid) handleCursorUp(tea.KeyMsg) tea.Cmd {
	if g.cursorRow > 0 {
		g.cursorRow--
	}
	return nil
}

func (g *SmartGrid) handleCursorDown(tea.KeyMsg) tea.Cmd {
	if g.cursorRow < len(g.pageRows())-1 {
		g.cursorRow++
	}
	return nil
}

func (g *SmartGrid) handleCursorLeft(tea.KeyMsg) tea.Cmd {
	if g.cursorCol > 0 {
		g.cursorCol--
	}
	return nil
}

func (g *SmartGrid) handleCursorRight(tea.KeyMsg) tea.Cmd {
	if g.cursorCol < len(g.visibleColumns())-1 {
		g.cursorCol++
	}
	return nil
}

func (g *SmartGrid) handlePrevPage(tea.KeyMsg) tea.Cmd {
	g.pager.SetPage(g.pager.Page()-1, g.totalRows())
	g.cursorRow = 0
	if g.source.Lazy() {
		return g.fetchCmd()
	}
	return nil
}

func (g *SmartGrid) handleNextPage(tea.KeyMsg) tea.Cmd {
	g.pager.SetPage(g.pager.Page()+1, g.totalRows())
	g.cursorRow = 0
	if g.source.Lazy() {
		return g.fetchCmd()
	}
	return nil
}

func (g *SmartGrid) handleGrowPageSize(tea.KeyMsg) tea.Cmd {
	return g.stepPageSize(1)
}

func (g *SmartGrid) handleShrinkPageSize(tea.KeyMsg) tea.Cmd {
	return g.stepPageSize(-1)
}

// stepPageSize moves through the page size ladder. A size change always
// returns to page 1.
func (g *SmartGrid) stepPageSize(dir int) tea.Cmd {
	cur := g.pager.PageSize()
	idx := 0
	for i, s := range pageSizes {
		if s == cur {
			idx = i
			break
		}
	}
	idx = clamp(idx+dir, 0, len(pageSizes)-1)
	if pageSizes[idx] == cur {
		return nil
	}

	g.pager.SetPageSize(pageSizes[idx])
	g.prefs.SetPageSize(context.Background(), g.id, g.config, pageSizes[idx])
	g.cursorRow = 0
	g.reprocess()
	if g.source.Lazy() {
		return g.fetchCmd()
	}
	return nil
}

// ---- Selection ----

func (g *SmartGrid) handleToggleSelect(tea.KeyMsg) tea.Cmd {
	if key := g.CursorRowKey(); key != "" {
		g.selection.Toggle(key)
	}
	return nil
}

func (g *SmartGrid) handleSelectAllPage(tea.KeyMsg) tea.Cmd {
	g.selection.SelectAll(g.pageRowKeys())
	return nil
}

func (g *SmartGrid) handleSelectAllFiltered(tea.KeyMsg) tea.Cmd {
	keys := make([]string, len(g.processed))
	for i, r := range g.processed {
		keys[i] = g.rowKey(r)
	}
	g.selection.SelectAll(keys)
	return nil
}

func (g *SmartGrid) handleClearSelection(tea.KeyMsg) tea.Cmd {
	g.selection.Clear()
	return nil
}

// ---- Search ----

func (g *SmartGrid) handleEnterSearch(tea.KeyMsg) tea.Cmd {
	g.mode = modeSearch
	g.searchInput.SetValue(g.searchQuery)
	g.searchInput.CursorEnd()
	return g.searchInput.Focus()
}

func (g *SmartGrid) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		g.mode = modeBrowse
		g.searchInput.Blur()
		g.debouncer.Cancel()
		return nil

	case tea.KeyEnter:
		g.mode = modeBrowse
		g.searchInput.Blur()
		g.debouncer.Cancel()
		g.searchQuery = g.searchInput.Value()
		return g.afterQueryChange()
	}

	var cmd tea.Cmd
	g.searchInput, cmd = g.searchInput.Update(msg)

	// The draft applies after a quiet period so every keystroke does not
	// reprocess (or refetch) the whole row set.
	query := g.searchInput.Value()
	g.debouncer.Trigger(func() {
		g.events <- GridSearchDebouncedMsg{GridID: g.id, Query: query}
	})
	return cmd
}

// ---- Column filters ----

func (g *SmartGrid) handleToggleFilterRow(tea.KeyMsg) tea.Cmd {
	if g.showFilterRow {
		g.showFilterRow = false
		return nil
	}
	g.showFilterRow = true
	return g.enterFilterInput()
}

func (g *SmartGrid) enterFilterInput() tea.Cmd {
	col, ok := g.cursorColumn()
	if !ok {
		return nil
	}
	g.mode = modeFilter
	if f, ok := g.filters.Get(g.id, col.Key); ok {
		g.filterInput.SetValue(filterInputText(f))
	} else {
		g.filterInput.SetValue("")
	}
	g.filterInput.CursorEnd()
	return g.filterInput.Focus()
}

func (g *SmartGrid) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		g.mode = modeBrowse
		g.filterInput.Blur()
		return nil

	case tea.KeyEnter:
		g.mode = modeBrowse
		g.filterInput.Blur()
		col, ok := g.cursorColumn()
		if !ok {
			return nil
		}
		g.filters.Update(g.id, col.Key, parseFilterInput(g.filterInput.Value()))
		return g.afterQueryChange()
	}

	var cmd tea.Cmd
	g.filterInput, cmd = g.filterInput.Update(msg)
	return cmd
}

func (g *SmartGrid) handleClearFilters(tea.KeyMsg) tea.Cmd {
	g.filters.Clear(g.id)
	g.searchQuery = ""
	g.searchInput.SetValue("")
	return g.afterQueryChange()
}

// parseFilterInput maps the filter row's text syntax to a Filter. A
// leading marker selects the operator; no marker means contains. Empty
// input means no constraint.
func parseFilterInput(s string) *grid.Filter {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	op := grid.OpContains
	value := s
	switch {
	case strings.HasPrefix(s, ">="):
		op, value = grid.OpGreaterOrEqual, s[2:]
	case strings.HasPrefix(s, "<="):
		op, value = grid.OpLessOrEqual, s[2:]
	case strings.HasPrefix(s, ">"):
		op, value = grid.OpGreaterThan, s[1:]
	case strings.HasPrefix(s, "<"):
		op, value = grid.OpLessThan, s[1:]
	case strings.HasPrefix(s, "="):
		op, value = grid.OpEquals, s[1:]
	case strings.HasPrefix(s, "^"):
		op, value = grid.OpStartsWith, s[1:]
	case strings.HasPrefix(s, "$"):
		op, value = grid.OpEndsWith, s[1:]
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &grid.Filter{Operator: op, Value: value}
}

// filterInputText renders a Filter back into the filter row's syntax.
func filterInputText(f grid.Filter) string {
	value := grid.CellString(f.Value)
	switch f.Operator {
	case grid.OpEquals:
		return "=" + value
	case grid.OpStartsWith:
		return "^" + value
	case grid.OpEndsWith:
		return "$" + value
	case grid.OpGreaterThan:
		return ">" + value
	case grid.OpLessThan:
		return "<" + value
	case grid.OpGreaterOrEqual:
		return ">=" + value
	case grid.OpLessOrEqual:
		return "<=" + value
	default:
		return value
	}
}

// ---- Sorting ----

// handleSortColumn cycles the cursor column through ascending,
// descending, and unsorted.
func (g *SmartGrid) handleSortColumn(tea.KeyMsg) tea.Cmd {
	col, ok := g.cursorColumn()
	if !ok || !col.Sortable {
		return nil
	}

	ctx := context.Background()
	cur := g.currentSort()
	switch {
	case cur == nil || cur.Column != col.Key:
		g.prefs.SetSort(ctx, g.id, g.config, col.Key, grid.Ascending)
	case cur.Direction == grid.Ascending:
		g.prefs.SetSort(ctx, g.id, g.config, col.Key, grid.Descending)
	default:
		g.prefs.SetSort(ctx, g.id, g.config, "", grid.Ascending)
	}

	g.reprocess()
	if g.source.Lazy() {
		return g.fetchCmd()
	}
	return nil
}

// ---- Saved filter sets ----

func (g *SmartGrid) handleSaveFilterSet(tea.KeyMsg) tea.Cmd {
	if !g.filters.HasActive(g.id) {
		return nil
	}
	g.mode = modeSaveName
	g.nameInput.SetValue("")
	return g.nameInput.Focus()
}

func (g *SmartGrid) handleSaveNameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		g.mode = modeBrowse
		g.nameInput.Blur()
		return nil

	case tea.KeyEnter:
		g.mode = modeBrowse
		g.nameInput.Blur()
		name := strings.TrimSpace(g.nameInput.Value())
		if name != "" {
			g.filters.SaveSet(context.Background(), g.id, name)
		}
		return nil
	}

	var cmd tea.Cmd
	g.nameInput, cmd = g.nameInput.Update(msg)
	return cmd
}

func (g *SmartGrid) handleLoadFilterSet(tea.KeyMsg) tea.Cmd {
	sets := g.filters.Sets(context.Background(), g.id)
	if len(sets) == 0 {
		return nil
	}
	g.mode = modeFilterSets
	g.filterSets = sets
	g.filterSetLine = 0
	return nil
}

func (g *SmartGrid) handleFilterSetsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		g.mode = modeBrowse
		return nil

	case "up", "k":
		if g.filterSetLine > 0 {
			g.filterSetLine--
		}
		return nil

	case "down", "j":
		if g.filterSetLine < len(g.filterSets)-1 {
			g.filterSetLine++
		}
		return nil

	case "D":
		if g.filterSetLine < len(g.filterSets) {
			ctx := context.Background()
			g.filters.SetDefault(ctx, g.id, g.filterSets[g.filterSetLine].ID)
			g.filterSets = g.filters.Sets(ctx, g.id)
		}
		return nil

	case "d":
		if g.filterSetLine < len(g.filterSets) {
			ctx := context.Background()
			g.filters.DeleteSet(ctx, g.id, g.filterSets[g.filterSetLine].ID)
			g.filterSets = g.filters.Sets(ctx, g.id)
			if len(g.filterSets) == 0 {
				g.mode = modeBrowse
				return nil
			}
			g.filterSetLine = clamp(g.filterSetLine, 0, len(g.filterSets)-1)
		}
		return nil

	case "enter":
		g.mode = modeBrowse
		if g.filterSetLine < len(g.filterSets) {
			g.filters.LoadSet(context.Background(), g.id, g.filterSets[g.filterSetLine].ID)
			return g.afterQueryChange()
		}
		return nil
	}
	return nil
}

// ---- Column editor and movement ----

func (g *SmartGrid) handleOpenColumnEditor(tea.KeyMsg) tea.Cmd {
	g.mode = modeColumns
	g.columnEditor = NewColumnEditor(g.config, g.preferences())
	return nil
}

func (g *SmartGrid) handleColumnEditorKey(msg tea.KeyMsg) tea.Cmd {
	done, save := g.columnEditor.HandleKey(msg)
	if !done {
		return nil
	}

	g.mode = modeBrowse
	if save {
		ctx := context.Background()
		order, hidden, labels := g.columnEditor.Result()
		g.prefs.SetColumnOrder(ctx, g.id, g.config, order)
		g.prefs.SetHiddenColumns(ctx, g.id, g.config, hidden)
		for key, label := range labels {
			g.prefs.RenameColumn(ctx, g.id, g.config, key, label)
		}
		g.reprocess()
	}
	g.columnEditor = nil
	return nil
}

func (g *SmartGrid) handleEnterMoveMode(tea.KeyMsg) tea.Cmd {
	if len(g.visibleColumns()) > 1 {
		g.mode = modeMove
	}
	return nil
}

func (g *SmartGrid) handleMoveKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "m":
		g.mode = modeBrowse
		return nil
	case "left":
		g.moveCursorColumn(-1)
		return nil
	case "right":
		g.moveCursorColumn(1)
		return nil
	}
	return nil
}

// moveCursorColumn swaps the cursor column with its visible neighbor and
// persists the new order. Hidden columns keep their stored positions.
func (g *SmartGrid) moveCursorColumn(dir int) {
	vis := g.visibleColumns()
	target := g.cursorCol + dir
	if g.cursorCol < 0 || g.cursorCol >= len(vis) || target < 0 || target >= len(vis) {
		return
	}

	p := g.preferences()
	order := append([]string(nil), p.ColumnOrder...)
	a := indexOf(order, vis[g.cursorCol].Key)
	b := indexOf(order, vis[target].Key)
	if a < 0 || b < 0 {
		return
	}
	order[a], order[b] = order[b], order[a]

	g.prefs.SetColumnOrder(context.Background(), g.id, g.config, order)
	g.cursorCol = target
}

func indexOf(list []string, key string) int {
	for i, k := range list {
		if k == key {
			return i
		}
	}
	return -1
}

func (g *SmartGrid) handleResetPreferences(tea.KeyMsg) tea.Cmd {
	p := g.prefs.Reset(context.Background(), g.id, g.config)
	g.pager.SetPageSize(p.PageSize)
	g.cursorRow, g.cursorCol = 0, 0
	g.reprocess()
	return nil
}

// ---- Inline editing ----

func (g *SmartGrid) handleBeginEdit(tea.KeyMsg) tea.Cmd {
	col, ok := g.cursorColumn()
	if !ok || !col.Editable {
		return nil
	}
	row, ok := g.cursorRowData()
	if !ok {
		return nil
	}

	g.mode = modeEdit
	g.edit.Begin(grid.CellRef{Row: g.cursorRow, Column: col.Key}, row[col.Key])
	g.editInput.SetValue(grid.CellString(row[col.Key]))
	g.editInput.CursorEnd()
	return g.editInput.Focus()
}

func (g *SmartGrid) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		// The prior value was never overwritten; dropping the edit
		// restores it.
		g.mode = modeBrowse
		g.editInput.Blur()
		g.edit.Cancel()
		return nil

	case tea.KeyEnter:
		g.mode = modeBrowse
		g.editInput.Blur()
		cell, active := g.edit.Active()
		if !active {
			return nil
		}
		g.commitEdit(cell, g.editInput.Value())
		g.edit.Commit()
		g.reprocess()
		return nil
	}

	var cmd tea.Cmd
	g.editInput, cmd = g.editInput.Update(msg)
	return cmd
}

// commitEdit writes the new value into the row and through to the
// source when it supports write-back.
func (g *SmartGrid) commitEdit(cell grid.CellRef, value string) {
	row, ok := g.cursorRowData()
	if !ok {
		return
	}
	row[cell.Column] = value

	type cellWriter interface {
		UpdateCell(rowKey, column string, value any) bool
	}
	if w, ok := g.source.(cellWriter); ok {
		if !w.UpdateCell(g.rowKey(row), cell.Column, value) {
			g.logger.Warn("cell write-back found no row",
				"grid", g.id, "row", g.rowKey(row), "column", cell.Column)
		}
	}
}

// ---- Rows ----

func (g *SmartGrid) handleToggleExpand(tea.KeyMsg) tea.Cmd {
	if len(g.subRowColumns()) == 0 {
		return nil
	}
	key := g.CursorRowKey()
	if key == "" {
		return nil
	}
	if g.expandedRows[key] {
		delete(g.expandedRows, key)
	} else {
		g.expandedRows[key] = true
	}
	return nil
}

func (g *SmartGrid) handleToggleViewMode(tea.KeyMsg) tea.Cmd {
	ctx := context.Background()
	mode := prefstore.ViewModeCard
	if g.preferences().ViewMode == prefstore.ViewModeCard {
		mode = prefstore.ViewModeTable
	}
	g.prefs.SetViewMode(ctx, g.id, g.config, mode)
	return nil
}

func (g *SmartGrid) handleToggleCheckboxes(tea.KeyMsg) tea.Cmd {
	g.showCheckboxes = !g.showCheckboxes
	return nil
}
