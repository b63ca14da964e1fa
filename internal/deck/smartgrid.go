package deck

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/observability"
	"github.com/opsdeck/opsdeck/internal/prefstore"
	"github.com/opsdeck/opsdeck/internal/tripdata"
)

// gridMode is the grid's input mode. Browse is the resting state; every
// other mode captures keys until it exits back to browse.
type gridMode int

const (
	modeBrowse gridMode = iota
	modeSearch
	modeFilter
	modeEdit
	modeMove
	modeColumns
	modeFilterSets
	modeSaveName
)

// pageSizes are the page sizes the +/- keys cycle through.
var pageSizes = []int{10, 25, 50, 100}

// Messages emitted by grid commands.
type (
	// GridDataMsg carries a fetched page of rows.
	GridDataMsg struct {
		GridID string
		Page   tripdata.Page
		Err    error
	}

	// GridSearchDebouncedMsg fires after the search input has been quiet.
	GridSearchDebouncedMsg struct {
		GridID string
		Query  string
	}
)

// SmartGridParams configures a SmartGrid.
type SmartGridParams struct {
	ID      string
	Title   string
	Columns []grid.Column
	Source  tripdata.Source
	RowKey  grid.RowKeyFunc
	Prefs   *prefstore.Store
	Filters *prefstore.FilterStore
	Logger  *observability.CoreLogger

	// HasRowActions reserves width for a row actions column.
	HasRowActions bool

	// SearchDebounce overrides the search quiet period.
	SearchDebounce time.Duration
}

// SmartGrid is the configurable data grid: columns driven by stored
// preferences, a search box, per-column filters, sorting, selection,
// inline editing, expandable sub-rows, and pagination.
type SmartGrid struct {
	id     string
	title  string
	config []grid.Column
	source tripdata.Source
	rowKey grid.RowKeyFunc

	prefs   *prefstore.Store
	filters *prefstore.FilterStore
	logger  *observability.CoreLogger
	keyMap  map[string]func(*SmartGrid, tea.KeyMsg) tea.Cmd

	rows      []grid.Row
	processed []grid.Row
	fetchErr  error

	// remoteTotal is the source-reported row count after filtering. Lazy
	// sources return one page at a time, so pagination must run off this
	// rather than the fetched slice.
	remoteTotal int

	pager     *grid.Paginator
	selection *grid.Selection
	edit      grid.EditState

	mode      gridMode
	cursorRow int
	cursorCol int

	expandedRows   map[string]bool
	showFilterRow  bool
	showCheckboxes bool
	hasRowActions  bool

	searchInput textinput.Model
	searchQuery string
	debouncer   *tripdata.Debouncer

	filterInput textinput.Model
	editInput   textinput.Model
	nameInput   textinput.Model

	columnEditor *ColumnEditor

	filterSets    []prefstore.SavedFilterSet
	filterSetLine int

	// events carries messages produced off the Update goroutine, such as
	// debounced search commits.
	events chan tea.Msg

	width, height int
}

// NewSmartGrid creates a grid over the given source with preferences
// loaded from the store.
func NewSmartGrid(p SmartGridParams) *SmartGrid {
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/"
	search.CharLimit = 128

	filter := textinput.New()
	filter.Placeholder = "contains, =equals, ^starts, $ends, >n, <n, >=n, <=n"
	filter.Prompt = ""
	filter.CharLimit = 128

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = 256

	name := textinput.New()
	name.Placeholder = "filter set name"
	name.Prompt = ""
	name.CharLimit = 64

	prefs := p.Prefs.Get(context.Background(), p.ID, p.Columns)
	p.Filters.ApplyDefault(context.Background(), p.ID)

	g := &SmartGrid{
		id:             p.ID,
		title:          p.Title,
		config:         p.Columns,
		source:         p.Source,
		rowKey:         p.RowKey,
		prefs:          p.Prefs,
		filters:        p.Filters,
		logger:         p.Logger,
		keyMap:         buildKeyMap(GridKeyBindings()),
		pager:          grid.NewPaginator(prefs.PageSize),
		selection:      grid.NewSelection(),
		expandedRows:   make(map[string]bool),
		showCheckboxes: true,
		hasRowActions:  p.HasRowActions,
		searchInput:    search,
		filterInput:    filter,
		editInput:      edit,
		nameInput:      name,
		debouncer:      tripdata.NewDebouncer(p.SearchDebounce),
		events:         make(chan tea.Msg, 16),
	}
	return g
}

// ID returns the grid id.
func (g *SmartGrid) ID() string { return g.id }

// SetSize updates the grid's render dimensions.
func (g *SmartGrid) SetSize(width, height int) {
	g.width, g.height = width, height
}

// Init starts the initial data fetch and the event pump.
func (g *SmartGrid) Init() tea.Cmd {
	return tea.Batch(g.fetchCmd(), g.waitForEvent)
}

// waitForEvent relays messages posted from off the Update goroutine.
func (g *SmartGrid) waitForEvent() tea.Msg {
	return <-g.events
}

// fetchCmd loads rows from the source using the current query state.
func (g *SmartGrid) fetchCmd() tea.Cmd {
	q := tripdata.Query{
		Page:         g.pager.Page(),
		PageSize:     g.pager.PageSize(),
		GlobalFilter: g.searchQuery,
		Filters:      g.filters.Active(g.id),
		Sort:         g.currentSort(),
	}
	src := g.source
	id := g.id
	return func() tea.Msg {
		page, err := src.Fetch(context.Background(), q)
		return GridDataMsg{GridID: id, Page: page, Err: err}
	}
}

// Update handles a message. Parent models route messages here for the
// active grid.
func (g *SmartGrid) Update(msg tea.Msg) tea.Cmd {
	switch t := msg.(type) {
	case tea.WindowSizeMsg:
		g.SetSize(t.Width, t.Height)

	case GridDataMsg:
		if t.GridID != g.id {
			return nil
		}
		return g.handleData(t)

	case GridSearchDebouncedMsg:
		if t.GridID != g.id {
			return nil
		}
		return g.handleSearchDebounced(t)

	case tea.KeyMsg:
		return g.handleKeyMsg(t)
	}
	return nil
}

func (g *SmartGrid) handleData(msg GridDataMsg) tea.Cmd {
	if msg.Err != nil {
		g.fetchErr = msg.Err
		g.logger.CaptureError(msg.Err, "op", "fetch_rows", "grid", g.id)
		return g.waitForEvent
	}
	g.fetchErr = nil
	g.rows = msg.Page.Rows
	g.remoteTotal = msg.Page.Total
	g.reprocess()
	return g.waitForEvent
}

func (g *SmartGrid) handleSearchDebounced(msg GridSearchDebouncedMsg) tea.Cmd {
	g.searchQuery = msg.Query
	g.pager.SetPage(1, g.totalRows())
	g.reprocess()
	if g.source.Lazy() {
		return tea.Batch(g.fetchCmd(), g.waitForEvent)
	}
	return g.waitForEvent
}

// reprocess runs the pipeline over the fetched rows and clamps the
// cursor and page into the new result.
func (g *SmartGrid) reprocess() {
	g.processed = grid.Process(
		g.rows,
		g.searchQuery,
		g.filters.Active(g.id),
		g.currentSort(),
		g.config,
		g.source.Lazy(),
	)
	g.pager.Clamp(g.totalRows())
	pageLen := len(g.pageRows())
	if pageLen == 0 {
		g.cursorRow = 0
	} else {
		g.cursorRow = clamp(g.cursorRow, 0, pageLen-1)
	}
	cols := g.visibleColumns()
	if len(cols) > 0 {
		g.cursorCol = clamp(g.cursorCol, 0, len(cols)-1)
	} else {
		g.cursorCol = 0
	}
}

// totalRows returns the filtered row count driving pagination. An eager
// grid counts its processed rows; a lazy grid holds only the current
// page, so the source's reported total is authoritative.
func (g *SmartGrid) totalRows() int {
	if g.source.Lazy() {
		return g.remoteTotal
	}
	return len(g.processed)
}

// pageRows returns the rows on the current page. A lazy source already
// fetched exactly one page, so its rows pass through unsliced.
func (g *SmartGrid) pageRows() []grid.Row {
	if g.source.Lazy() {
		return g.processed
	}
	return g.pager.Slice(g.processed)
}

// pageRowKeys returns the row keys of the current page.
func (g *SmartGrid) pageRowKeys() []string {
	rows := g.pageRows()
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = g.rowKey(r)
	}
	return keys
}

// preferences returns the current stored preferences.
func (g *SmartGrid) preferences() prefstore.GridPreferences {
	return g.prefs.Get(context.Background(), g.id, g.config)
}

// currentSort returns the stored sort spec, or nil.
func (g *SmartGrid) currentSort() *grid.SortSpec {
	p := g.preferences()
	return p.Sort()
}

// visibleColumns returns the main-row columns in preference order with
// hidden columns removed and custom header labels applied.
func (g *SmartGrid) visibleColumns() []grid.Column {
	p := g.preferences()
	byKey := make(map[string]grid.Column, len(g.config))
	for _, c := range g.config {
		byKey[c.Key] = c
	}

	out := make([]grid.Column, 0, len(p.ColumnOrder))
	for _, key := range p.ColumnOrder {
		c, ok := byKey[key]
		if !ok || p.Hidden(key) {
			continue
		}
		if label, ok := p.ColumnHeaders[key]; ok {
			c.Title = label
		}
		out = append(out, c)
	}
	return out
}

// subRowColumns returns the sub-row columns in preference order.
func (g *SmartGrid) subRowColumns() []grid.Column {
	p := g.preferences()
	byKey := make(map[string]grid.Column, len(g.config))
	for _, c := range g.config {
		byKey[c.Key] = c
	}
	out := make([]grid.Column, 0, len(p.SubRowColumnOrder))
	for _, key := range p.SubRowColumnOrder {
		if c, ok := byKey[key]; ok && !p.Hidden(key) {
			out = append(out, c)
		}
	}
	return out
}

// cursorColumn returns the column under the cursor.
func (g *SmartGrid) cursorColumn() (grid.Column, bool) {
	cols := g.visibleColumns()
	if g.cursorCol < 0 || g.cursorCol >= len(cols) {
		return grid.Column{}, false
	}
	return cols[g.cursorCol], true
}

// cursorRowData returns the row under the cursor.
func (g *SmartGrid) cursorRowData() (grid.Row, bool) {
	rows := g.pageRows()
	if g.cursorRow < 0 || g.cursorRow >= len(rows) {
		return nil, false
	}
	return rows[g.cursorRow], true
}

// InputActive reports whether the grid is capturing text input, so
// parent models suppress their own key handling.
func (g *SmartGrid) InputActive() bool {
	return g.mode != modeBrowse
}

// CursorRowKey returns the key of the row under the cursor, or "".
func (g *SmartGrid) CursorRowKey() string {
	row, ok := g.cursorRowData()
	if !ok {
		return ""
	}
	return g.rowKey(row)
}

// CursorRow returns the row under the cursor for detail views.
func (g *SmartGrid) CursorRow() (grid.Row, bool) {
	return g.cursorRowData()
}

// SelectionCount returns the number of selected rows.
func (g *SmartGrid) SelectionCount() int {
	return g.selection.Count()
}

// statusSummary builds the grid's contribution to the status bar.
func (g *SmartGrid) statusSummary() string {
	switch g.mode {
	case modeSearch:
		return fmt.Sprintf("Search: %s [%d match(es)] (Enter to apply, Esc to cancel)",
			g.searchInput.Value(), g.totalRows())
	case modeFilter:
		col, _ := g.cursorColumn()
		return fmt.Sprintf("Filter %s: %s (Enter to apply, Esc to cancel)",
			col.Title, g.filterInput.Value())
	case modeEdit:
		return "Editing cell (Enter to save, Esc to cancel)"
	case modeMove:
		col, _ := g.cursorColumn()
		return fmt.Sprintf("Moving column %s (left/right to move, Enter to finish)", col.Title)
	case modeSaveName:
		return fmt.Sprintf("Save filter set as: %s (Enter to save, Esc to cancel)",
			g.nameInput.Value())
	}

	parts := ""
	if g.searchQuery != "" {
		parts += fmt.Sprintf(" • search %q", g.searchQuery)
	}
	if n := g.filters.Count(g.id); n > 0 {
		parts += fmt.Sprintf(" • %d filter(s)", n)
	}
	if n := g.selection.Count(); n > 0 {
		parts += fmt.Sprintf(" • %d selected", n)
	}
	return parts
}
