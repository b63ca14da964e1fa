package deck_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/internal/deck"
	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/observability"
	"github.com/opsdeck/opsdeck/internal/prefstore"
	"github.com/opsdeck/opsdeck/internal/tripdata"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// stripANSI removes escape sequences so tests can assert on plain text.
func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyCtrlL = tea.KeyMsg{Type: tea.KeyCtrlL}
	keyCtrlD = tea.KeyMsg{Type: tea.KeyCtrlD}
)

type gridEnv struct {
	grid    *deck.SmartGrid
	source  *tripdata.StaticSource
	prefs   *prefstore.Store
	filters *prefstore.FilterStore
	backend *prefstore.MemoryBackend
}

// newTripGrid builds a grid over the trip plan fixtures with its data
// already loaded, sized for a wide terminal.
func newTripGrid(t *testing.T) *gridEnv {
	t.Helper()

	logger := observability.NewNoOpLogger()
	backend := prefstore.NewMemoryBackend()
	rowKey := grid.RowKeyField("tripId")
	rows := tripdata.TripPlanRows()
	source := tripdata.NewStaticSource(tripdata.GridTripPlans, rows, rowKey)

	env := &gridEnv{
		source:  source,
		prefs:   prefstore.NewStore(backend, logger),
		filters: prefstore.NewFilterStore(backend, logger),
		backend: backend,
	}
	env.grid = deck.NewSmartGrid(deck.SmartGridParams{
		ID:      tripdata.GridTripPlans,
		Title:   "Trip Plans",
		Columns: tripdata.TripPlanColumns(),
		Source:  source,
		RowKey:  rowKey,
		Prefs:   env.prefs,
		Filters: env.filters,
		Logger:  logger,
	})
	env.grid.SetSize(160, 48)
	env.loadRows(rows)
	return env
}

func (e *gridEnv) loadRows(rows []grid.Row) {
	e.grid.Update(deck.GridDataMsg{
		GridID: e.grid.ID(),
		Page:   tripdata.Page{Rows: rows, Total: len(rows)},
	})
}

// newLazyTripGrid builds a grid over a server-paginated archive source
// with the first page loaded. The source serves total synthetic rows.
func newLazyTripGrid(t *testing.T, total int) *deck.SmartGrid {
	t.Helper()

	logger := observability.NewNoOpLogger()
	backend := prefstore.NewMemoryBackend()

	source, err := tripdata.NewLazySource("trip-archive", 8,
		func(_ context.Context, q tripdata.Query) (tripdata.Page, error) {
			start := (q.Page - 1) * q.PageSize
			if start >= total {
				return tripdata.Page{Total: total}, nil
			}
			end := min(start+q.PageSize, total)
			rows := make([]grid.Row, 0, end-start)
			for i := start; i < end; i++ {
				rows = append(rows, grid.Row{
					"tripId":  fmt.Sprintf("AR-%03d", i+1),
					"carrier": "Knight-Swift",
					"stops":   i % 5,
				})
			}
			return tripdata.Page{Rows: rows, Total: total}, nil
		})
	require.NoError(t, err)

	g := deck.NewSmartGrid(deck.SmartGridParams{
		ID:      "trip-archive",
		Title:   "Trip Archive",
		Columns: tripdata.TripPlanColumns(),
		Source:  source,
		RowKey:  grid.RowKeyField("tripId"),
		Prefs:   prefstore.NewStore(backend, logger),
		Filters: prefstore.NewFilterStore(backend, logger),
		Logger:  logger,
	})
	g.SetSize(160, 48)

	page, err := source.Fetch(context.Background(), tripdata.Query{Page: 1, PageSize: 10})
	require.NoError(t, err)
	g.Update(deck.GridDataMsg{GridID: g.ID(), Page: page})
	return g
}

// pressAndFetch sends one key and, when it triggers a fetch command,
// feeds the fetched page back into the grid the way the program loop
// would.
func pressAndFetch(g *deck.SmartGrid, msg tea.KeyMsg) {
	if cmd := g.Update(msg); cmd != nil {
		if m := cmd(); m != nil {
			g.Update(m)
		}
	}
}

// press sends a sequence of key messages to the grid.
func (e *gridEnv) press(msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		e.grid.Update(msg)
	}
}

// typeText sends every rune as its own key press.
func (e *gridEnv) typeText(s string) {
	for _, r := range s {
		e.grid.Update(keyRunes(string(r)))
	}
}

func (e *gridEnv) view() string {
	return stripANSI(e.grid.View())
}
