package prefstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/observability"
)

// View modes for grids that support a card rendering.
const (
	ViewModeTable = "table"
	ViewModeCard  = "card"
)

// GridPreferences is the persisted per-grid user state. Everything here
// survives restarts; transient state like selection and expanded rows
// does not pass through this type.
type GridPreferences struct {
	ColumnOrder       []string          `json:"columnOrder"`
	SubRowColumnOrder []string          `json:"subRowColumnOrder,omitempty"`
	HiddenColumns     []string          `json:"hiddenColumns"`
	ColumnWidths      map[string]int    `json:"columnWidths"`
	ColumnHeaders     map[string]string `json:"columnHeaders"`
	SortBy            string            `json:"sortBy,omitempty"`
	SortDirection     string            `json:"sortDirection,omitempty"`
	PageSize          int               `json:"pageSize"`
	ViewMode          string            `json:"viewMode,omitempty"`
}

// Hidden reports whether the column key is in the hidden set.
func (p *GridPreferences) Hidden(key string) bool {
	for _, k := range p.HiddenColumns {
		if k == key {
			return true
		}
	}
	return false
}

// Sort returns the preference's sort spec, or nil when unsorted.
func (p *GridPreferences) Sort() *grid.SortSpec {
	if p.SortBy == "" {
		return nil
	}
	return &grid.SortSpec{
		Column:    p.SortBy,
		Direction: grid.ParseSortDirection(p.SortDirection),
	}
}

// Store manages grid preferences for every grid in the session. The
// in-memory copy is authoritative; each mutation writes through to the
// backend and a failed write is logged, not surfaced.
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *observability.CoreLogger
	prefs   map[string]*GridPreferences
}

// NewStore returns a Store over the given backend.
func NewStore(backend Backend, logger *observability.CoreLogger) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
		prefs:   make(map[string]*GridPreferences),
	}
}

func prefsKey(gridID string) string { return "grid/" + gridID }

// Get returns a copy of the preferences for gridID, loading from the
// backend on first access and materializing defaults from the column
// configuration when nothing is stored.
func (s *Store) Get(ctx context.Context, gridID string, columns []grid.Column) GridPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePrefs(s.get(ctx, gridID, columns))
}

func (s *Store) get(ctx context.Context, gridID string, columns []grid.Column) *GridPreferences {
	if p, ok := s.prefs[gridID]; ok {
		return p
	}

	p := defaultPreferences(columns)
	if data, found, err := s.backend.Load(ctx, prefsKey(gridID)); err != nil {
		s.logger.CaptureError(err, "op", "load_preferences", "grid", gridID)
	} else if found {
		var stored GridPreferences
		if err := json.Unmarshal(data, &stored); err != nil {
			s.logger.CaptureError(err, "op", "decode_preferences", "grid", gridID)
		} else {
			mergePreferences(p, &stored, columns)
		}
	}

	s.prefs[gridID] = p
	return p
}

// SetColumnOrder replaces the main-row column order.
func (s *Store) SetColumnOrder(ctx context.Context, gridID string, columns []grid.Column, order []string) {
	s.update(ctx, gridID, columns, func(p *GridPreferences) {
		p.ColumnOrder = append([]string(nil), order...)
	})
}

// SetSubRowColumnOrder replaces the sub-row column order.
func (s *Store) SetSubRowColumnOrder(ctx context.Context, gridID string, columns []grid.Column, order []string) {
	s.update(ctx, gridID, columns, func(p *GridPreferences) {
		p.SubRowColumnOrder = append([]string(nil), order...)
	})
}

// ToggleColumnVisibility flips the hidden state of one column. Toggling
// twice restores the starting state; a key is never duplicated in the
// hidden set.
func (s *Store) ToggleColumnVisibility(ctx context.Context, gridID string, columns []grid.Column, key string) {
	s.update(ctx, gridID, columns, func(p *GridPreferences) {
		for i, k := range p.HiddenColumns {
			if k == key {
				p.HiddenColumns = append(p.HiddenColumns[:i], p.HiddenColumns[i+1:]...)
				return
			}
		}
		p.HiddenColumns = append(p.HiddenColumns, key)
	})
}

// SetHiddenColumns replaces the hidden set wholesale, as the column
// editor's save does.
func (s *Store) SetHiddenColumns(ctx context.Context, gridID string, columns []grid.Column, hidden []string) {
	s.update(ctx, gridID, columns, func(p *GridPreferences) {
		p.HiddenColumns = append([]string(nil), hidden...)
	})
}

// SetColumnWidth stores a user width preference. Zero or negative widths
// remove the preference so the type minimum applies again.
func (s *Store) SetColumnWidth(ctx context.Context, gridID string, columns []grid.Column, key string, width int) {
	s.update(ctx, gridID, columns, func(p *GridPreferences) {
		if width <= 0 {
			delete(p.ColumnWidths, key)
			return
		}
		p.ColumnWidths[key] = width
	})
}

// RenameColumn stores a custom header label. An empty label removes the
// override and restores the configured title.
func (s *Store) RenameColumn(ctx context.Context, gridID string, columns []grid.Column, key, label string) {
	s.update(ctx, gridID, columns, func(p *GridPreferences) {
		if label == "" {
			delete(p.ColumnHeaders, key)
			return
		}
		p.ColumnHeaders[key] = label
	})
}

// SetSort stores the sorted column and direction. An empty column clears
// the sort.
func (s *Store) SetSort(ctx context.Context, gridID string, columns []grid.Column, sortBy string, direction grid.SortDirection) {
	s.update(ctx, gridID, columns, func(p *GridPreferences) {
		p.SortBy = sortBy
		if sortBy == "" {
			p.SortDirection = ""
			return
		}
		p.SortDirection = direction.String()
	})
}

// SetPageSize stores the rows-per-page preference.
func (s *Store) SetPageSize(ctx context.Context, gridID string, columns []grid.Column, size int) {
	s.update(ctx, gridID, columns, func(p *GridPreferences) {
		if size > 0 {
			p.PageSize = size
		}
	})
}

// SetViewMode stores the table/card rendering preference.
func (s *Store) SetViewMode(ctx context.Context, gridID string, columns []grid.Column, mode string) {
	s.update(ctx, gridID, columns, func(p *GridPreferences) {
		p.ViewMode = mode
	})
}

// Reset discards all stored preferences for gridID and rebuilds the
// defaults from the column configuration alone.
func (s *Store) Reset(ctx context.Context, gridID string, columns []grid.Column) GridPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := defaultPreferences(columns)
	s.prefs[gridID] = p
	s.persist(ctx, gridID, p)
	return clonePrefs(p)
}

func (s *Store) update(ctx context.Context, gridID string, columns []grid.Column, fn func(*GridPreferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.get(ctx, gridID, columns)
	fn(p)
	s.persist(ctx, gridID, p)
}

func (s *Store) persist(ctx context.Context, gridID string, p *GridPreferences) {
	data, err := json.Marshal(p)
	if err != nil {
		s.logger.CaptureError(err, "op", "encode_preferences", "grid", gridID)
		return
	}
	if err := s.backend.Save(ctx, prefsKey(gridID), data); err != nil {
		s.logger.CaptureError(err, "op", "save_preferences", "grid", gridID)
	}
}

// defaultPreferences builds the preference state a grid starts with:
// configured order, nothing hidden, no width or header overrides.
func defaultPreferences(columns []grid.Column) *GridPreferences {
	p := &GridPreferences{
		HiddenColumns: []string{},
		ColumnWidths:  map[string]int{},
		ColumnHeaders: map[string]string{},
		PageSize:      grid.DefaultPageSize,
		ViewMode:      ViewModeTable,
	}
	for _, c := range columns {
		if c.SubRow {
			p.SubRowColumnOrder = append(p.SubRowColumnOrder, c.Key)
		} else {
			p.ColumnOrder = append(p.ColumnOrder, c.Key)
		}
	}
	return p
}

// mergePreferences layers stored state over the defaults, dropping
// references to columns that no longer exist and appending columns added
// since the preferences were written.
func mergePreferences(p, stored *GridPreferences, columns []grid.Column) {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c.Key] = true
	}

	p.ColumnOrder = reconcileOrder(stored.ColumnOrder, p.ColumnOrder, known)
	p.SubRowColumnOrder = reconcileOrder(stored.SubRowColumnOrder, p.SubRowColumnOrder, known)

	p.HiddenColumns = p.HiddenColumns[:0]
	for _, k := range stored.HiddenColumns {
		if known[k] {
			p.HiddenColumns = append(p.HiddenColumns, k)
		}
	}
	for k, w := range stored.ColumnWidths {
		if known[k] && w > 0 {
			p.ColumnWidths[k] = w
		}
	}
	for k, h := range stored.ColumnHeaders {
		if known[k] && h != "" {
			p.ColumnHeaders[k] = h
		}
	}
	if known[stored.SortBy] {
		p.SortBy = stored.SortBy
		p.SortDirection = stored.SortDirection
	}
	if stored.PageSize > 0 {
		p.PageSize = stored.PageSize
	}
	if stored.ViewMode != "" {
		p.ViewMode = stored.ViewMode
	}
}

// reconcileOrder keeps the stored order for columns that still exist and
// appends newly configured columns at the end, in configured order.
func reconcileOrder(stored, configured []string, known map[string]bool) []string {
	out := make([]string, 0, len(configured))
	seen := make(map[string]bool, len(stored))
	for _, k := range stored {
		if known[k] && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	for _, k := range configured {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

func clonePrefs(p *GridPreferences) GridPreferences {
	out := *p
	out.ColumnOrder = append([]string(nil), p.ColumnOrder...)
	out.SubRowColumnOrder = append([]string(nil), p.SubRowColumnOrder...)
	out.HiddenColumns = append([]string(nil), p.HiddenColumns...)
	out.ColumnWidths = make(map[string]int, len(p.ColumnWidths))
	for k, v := range p.ColumnWidths {
		out.ColumnWidths[k] = v
	}
	out.ColumnHeaders = make(map[string]string, len(p.ColumnHeaders))
	for k, v := range p.ColumnHeaders {
		out.ColumnHeaders[k] = v
	}
	return out
}
