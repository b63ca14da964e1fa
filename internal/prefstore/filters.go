package prefstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/observability"
)

// SavedFilterSet is a named snapshot of a grid's active column filters.
// At most one set per grid is the default; it is applied when a session
// starts with no active filters.
type SavedFilterSet struct {
	ID        string                 `json:"id"`
	GridID    string                 `json:"gridId"`
	Name      string                 `json:"name"`
	Filters   map[string]grid.Filter `json:"filters"`
	IsDefault bool                   `json:"isDefault,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// FilterStore holds the active column filters per grid for the session,
// plus persisted saved filter sets. Active filters are deliberately not
// persisted; a fresh session starts unfiltered.
type FilterStore struct {
	mu      sync.Mutex
	backend Backend
	logger  *observability.CoreLogger
	active  map[string]map[string]grid.Filter
	sets    map[string][]SavedFilterSet
	loaded  map[string]bool

	// now is swapped in tests to pin saved-set IDs.
	now func() time.Time
}

// NewFilterStore returns a FilterStore over the given backend.
func NewFilterStore(backend Backend, logger *observability.CoreLogger) *FilterStore {
	return &FilterStore{
		backend: backend,
		logger:  logger,
		active:  make(map[string]map[string]grid.Filter),
		sets:    make(map[string][]SavedFilterSet),
		loaded:  make(map[string]bool),
		now:     time.Now,
	}
}

func setsKey(gridID string) string { return "filtersets/" + gridID }

// ---- Active filters ----

// Update sets the filter for one column. A nil filter removes the
// column's entry entirely; an empty operand is never stored as a
// constraint.
func (s *FilterStore) Update(gridID, column string, filter *grid.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.active[gridID]
	if m == nil {
		m = make(map[string]grid.Filter)
		s.active[gridID] = m
	}
	if filter == nil {
		delete(m, column)
		return
	}
	f := *filter
	f.Column = column
	m[column] = f
}

// Clear removes every active filter for the grid. The grid's entry stays
// so a subsequent read sees an empty set rather than an absent one.
func (s *FilterStore) Clear(gridID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[gridID] = make(map[string]grid.Filter)
}

// Active returns the grid's filters as a slice ordered by column key, the
// shape the pipeline consumes.
func (s *FilterStore) Active(gridID string) []grid.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked(gridID)
}

func (s *FilterStore) activeLocked(gridID string) []grid.Filter {
	m := s.active[gridID]
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]grid.Filter, 0, len(m))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// Get returns the active filter for one column, if set.
func (s *FilterStore) Get(gridID, column string) (grid.Filter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.active[gridID][column]
	return f, ok
}

// HasActive reports whether the grid has any active filter.
func (s *FilterStore) HasActive(gridID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active[gridID]) > 0
}

// Count returns the number of active filters for the grid, for the
// filter badge.
func (s *FilterStore) Count(gridID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active[gridID])
}

// ---- Saved filter sets ----

// SaveSet snapshots the grid's current active filters under the given
// name and appends it to the saved sets. Saving never replaces an
// existing set, even under the same name.
func (s *FilterStore) SaveSet(ctx context.Context, gridID, name string) SavedFilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadSetsLocked(ctx, gridID)

	now := s.now()
	stamp := now.UnixMilli()
	for s.setIDExistsLocked(gridID, fmt.Sprintf("%s-%d", gridID, stamp)) {
		stamp++
	}
	set := SavedFilterSet{
		ID:        fmt.Sprintf("%s-%d", gridID, stamp),
		GridID:    gridID,
		Name:      name,
		Filters:   make(map[string]grid.Filter, len(s.active[gridID])),
		CreatedAt: now,
	}
	for col, f := range s.active[gridID] {
		set.Filters[col] = f
	}

	s.sets[gridID] = append(s.sets[gridID], set)
	s.persistSetsLocked(ctx, gridID)
	return set
}

// Sets returns the saved filter sets for the grid in save order.
func (s *FilterStore) Sets(ctx context.Context, gridID string) []SavedFilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadSetsLocked(ctx, gridID)
	return append([]SavedFilterSet(nil), s.sets[gridID]...)
}

// LoadSet replaces the grid's active filters with the saved set's
// snapshot. Unknown IDs are a no-op.
func (s *FilterStore) LoadSet(ctx context.Context, gridID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadSetsLocked(ctx, gridID)
	for _, set := range s.sets[gridID] {
		if set.ID != id {
			continue
		}
		m := make(map[string]grid.Filter, len(set.Filters))
		for col, f := range set.Filters {
			m[col] = f
		}
		s.active[gridID] = m
		return true
	}
	return false
}

// SetDefault marks one saved set as the grid's default, clearing the
// flag from any other set. Marking the current default again clears it,
// so the operation toggles. Unknown IDs are a no-op.
func (s *FilterStore) SetDefault(ctx context.Context, gridID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadSetsLocked(ctx, gridID)
	sets := s.sets[gridID]
	target := -1
	for i, set := range sets {
		if set.ID == id {
			target = i
		}
	}
	if target < 0 {
		return false
	}

	wasDefault := sets[target].IsDefault
	for i := range sets {
		sets[i].IsDefault = false
	}
	sets[target].IsDefault = !wasDefault
	s.persistSetsLocked(ctx, gridID)
	return true
}

// ApplyDefault loads the grid's default saved set into the active
// filters. It only acts when the session has no active filters yet, so
// it never stomps on filters the user already applied. Grids call this
// once at construction.
func (s *FilterStore) ApplyDefault(ctx context.Context, gridID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.active[gridID]) > 0 {
		return false
	}
	s.loadSetsLocked(ctx, gridID)
	for _, set := range s.sets[gridID] {
		if !set.IsDefault {
			continue
		}
		m := make(map[string]grid.Filter, len(set.Filters))
		for col, f := range set.Filters {
			m[col] = f
		}
		s.active[gridID] = m
		return true
	}
	return false
}

// DeleteSet removes one saved set by ID. Active filters are untouched.
func (s *FilterStore) DeleteSet(ctx context.Context, gridID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadSetsLocked(ctx, gridID)
	sets := s.sets[gridID]
	for i, set := range sets {
		if set.ID == id {
			s.sets[gridID] = append(sets[:i], sets[i+1:]...)
			s.persistSetsLocked(ctx, gridID)
			return
		}
	}
}

func (s *FilterStore) setIDExistsLocked(gridID, id string) bool {
	for _, set := range s.sets[gridID] {
		if set.ID == id {
			return true
		}
	}
	return false
}

func (s *FilterStore) loadSetsLocked(ctx context.Context, gridID string) {
	if s.loaded[gridID] {
		return
	}
	s.loaded[gridID] = true

	data, found, err := s.backend.Load(ctx, setsKey(gridID))
	if err != nil {
		s.logger.CaptureError(err, "op", "load_filter_sets", "grid", gridID)
		return
	}
	if !found {
		return
	}
	var sets []SavedFilterSet
	if err := json.Unmarshal(data, &sets); err != nil {
		s.logger.CaptureError(err, "op", "decode_filter_sets", "grid", gridID)
		return
	}
	s.sets[gridID] = sets
}

func (s *FilterStore) persistSetsLocked(ctx context.Context, gridID string) {
	data, err := json.Marshal(s.sets[gridID])
	if err != nil {
		s.logger.CaptureError(err, "op", "encode_filter_sets", "grid", gridID)
		return
	}
	if err := s.backend.Save(ctx, setsKey(gridID), data); err != nil {
		s.logger.CaptureError(err, "op", "save_filter_sets", "grid", gridID)
	}
}
