package grid

import "sort"

// Selection tracks the selected row keys for one grid.
//
// "Select all" state is never stored; it is derived from the selection set
// and the currently visible row keys at read time, so the two can't
// diverge.
type Selection struct {
	keys map[string]bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{keys: make(map[string]bool)}
}

// Has reports whether the row key is selected.
func (s *Selection) Has(key string) bool { return s.keys[key] }

// Count returns the number of selected rows.
func (s *Selection) Count() int { return len(s.keys) }

// Keys returns the selected row keys in sorted order.
func (s *Selection) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Toggle flips the selection state of one row key.
func (s *Selection) Toggle(key string) {
	if s.keys[key] {
		delete(s.keys, key)
	} else {
		s.keys[key] = true
	}
}

// Set selects or deselects one row key.
func (s *Selection) Set(key string, selected bool) {
	if selected {
		s.keys[key] = true
	} else {
		delete(s.keys, key)
	}
}

// SelectAll replaces the selection with exactly the given visible row
// keys. Select-all is scoped to the rows the caller passes in; for the
// smart grid that is the current page after filtering and sorting.
func (s *Selection) SelectAll(visibleKeys []string) {
	s.keys = make(map[string]bool, len(visibleKeys))
	for _, k := range visibleKeys {
		s.keys[k] = true
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.keys = make(map[string]bool)
}

// State derives the header checkbox state from the visible row keys:
// selectedAll when every visible key is selected and there is at least
// one, indeterminate when the selection is non-empty but not all.
func (s *Selection) State(visibleKeys []string) (selectedAll, indeterminate bool) {
	if len(visibleKeys) > 0 {
		selectedAll = true
		for _, k := range visibleKeys {
			if !s.keys[k] {
				selectedAll = false
				break
			}
		}
	}
	indeterminate = len(s.keys) > 0 && !selectedAll
	return selectedAll, indeterminate
}

// CellRef points at one grid cell by visible row index and column key.
type CellRef struct {
	Row    int
	Column string
}

// EditState tracks the single cell being edited in a grid, if any, along
// with the value to restore on cancel.
type EditState struct {
	active bool
	cell   CellRef
	prior  any
}

// Begin starts editing the given cell, capturing the prior value.
// Starting a new edit replaces any edit already in progress.
func (e *EditState) Begin(cell CellRef, prior any) {
	e.active = true
	e.cell = cell
	e.prior = prior
}

// Active returns the cell under edit, if any.
func (e *EditState) Active() (CellRef, bool) {
	return e.cell, e.active
}

// Editing reports whether the given cell is the one under edit.
func (e *EditState) Editing(cell CellRef) bool {
	return e.active && e.cell == cell
}

// Commit ends the edit after the new value has been applied.
func (e *EditState) Commit() {
	e.reset()
}

// Cancel ends the edit and returns the value to restore.
func (e *EditState) Cancel() any {
	prior := e.prior
	e.reset()
	return prior
}

// reset clears the pointer so an abandoned edit can't leak.
func (e *EditState) reset() {
	e.active = false
	e.cell = CellRef{}
	e.prior = nil
}
