package grid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/internal/grid"
)

func TestSelectionDerivedState(t *testing.T) {
	visible := []string{"TRIP-001", "TRIP-002", "TRIP-003"}

	s := grid.NewSelection()

	all, ind := s.State(visible)
	require.False(t, all)
	require.False(t, ind)

	s.Toggle("TRIP-002")
	all, ind = s.State(visible)
	require.False(t, all)
	require.True(t, ind, "partial selection is indeterminate")

	s.Toggle("TRIP-001")
	s.Toggle("TRIP-003")
	all, ind = s.State(visible)
	require.True(t, all)
	require.False(t, ind)

	s.Toggle("TRIP-002")
	all, ind = s.State(visible)
	require.False(t, all)
	require.True(t, ind)
}

func TestSelectionStateEmptyVisibleSet(t *testing.T) {
	s := grid.NewSelection()

	all, ind := s.State(nil)
	require.False(t, all, "an empty page is never selected-all")
	require.False(t, ind)

	// Selections carried over from a previous page read as indeterminate.
	s.Toggle("TRIP-001")
	all, ind = s.State(nil)
	require.False(t, all)
	require.True(t, ind)
}

func TestSelectionSelectAllReplacesSet(t *testing.T) {
	s := grid.NewSelection()
	s.Toggle("STALE-1")
	s.Toggle("STALE-2")

	visible := []string{"TRIP-001", "TRIP-002"}
	s.SelectAll(visible)

	require.Equal(t, visible, s.Keys(),
		"select-all covers exactly the visible rows, nothing stale")

	all, ind := s.State(visible)
	require.True(t, all)
	require.False(t, ind)

	s.Clear()
	require.Zero(t, s.Count())
}

func TestSelectionToggleAndSet(t *testing.T) {
	s := grid.NewSelection()

	s.Toggle("TRIP-001")
	require.True(t, s.Has("TRIP-001"))
	s.Toggle("TRIP-001")
	require.False(t, s.Has("TRIP-001"))

	s.Set("TRIP-002", true)
	s.Set("TRIP-002", true)
	require.Equal(t, 1, s.Count(), "setting twice stays a set")
	s.Set("TRIP-002", false)
	require.Zero(t, s.Count())
}

func TestEditStateLifecycle(t *testing.T) {
	var e grid.EditState

	_, active := e.Active()
	require.False(t, active)

	cell := grid.CellRef{Row: 2, Column: "carrier"}
	e.Begin(cell, "Werner")

	got, active := e.Active()
	require.True(t, active)
	require.Equal(t, cell, got)
	require.True(t, e.Editing(cell))
	require.False(t, e.Editing(grid.CellRef{Row: 2, Column: "status"}))

	e.Commit()
	_, active = e.Active()
	require.False(t, active)
}

func TestEditStateCancelReturnsPriorValue(t *testing.T) {
	var e grid.EditState

	e.Begin(grid.CellRef{Row: 0, Column: "carrier"}, "Schneider")
	require.Equal(t, "Schneider", e.Cancel(),
		"cancel hands back the value to restore")

	_, active := e.Active()
	require.False(t, active)
	require.Nil(t, e.Cancel(), "cancel after reset has nothing to restore")
}

func TestEditStateBeginReplacesInProgressEdit(t *testing.T) {
	var e grid.EditState

	e.Begin(grid.CellRef{Row: 0, Column: "carrier"}, "Schneider")
	e.Begin(grid.CellRef{Row: 1, Column: "carrier"}, "Werner")

	cell, active := e.Active()
	require.True(t, active)
	require.Equal(t, 1, cell.Row)
	require.Equal(t, "Werner", e.Cancel())
}
