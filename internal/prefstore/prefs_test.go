package prefstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/observability"
	"github.com/opsdeck/opsdeck/internal/prefstore"
)

func planColumns() []grid.Column {
	return []grid.Column{
		{Key: "tripId", Title: "Trip ID", Type: grid.ColumnLink, Mandatory: true},
		{Key: "carrier", Title: "Carrier", Type: grid.ColumnText},
		{Key: "status", Title: "Status", Type: grid.ColumnBadge},
		{Key: "driver", Title: "Driver", Type: grid.ColumnText, SubRow: true},
	}
}

func newStore(t *testing.T) *prefstore.Store {
	t.Helper()
	return prefstore.NewStore(prefstore.NewMemoryBackend(), observability.NewNoOpLogger())
}

func TestGetMaterializesDefaults(t *testing.T) {
	s := newStore(t)
	cols := planColumns()

	p := s.Get(context.Background(), "trip-plans", cols)

	require.Equal(t, []string{"tripId", "carrier", "status"}, p.ColumnOrder)
	require.Equal(t, []string{"driver"}, p.SubRowColumnOrder)
	require.Empty(t, p.HiddenColumns)
	require.Empty(t, p.ColumnWidths)
	require.Empty(t, p.ColumnHeaders)
	require.Equal(t, grid.DefaultPageSize, p.PageSize)
	require.Equal(t, prefstore.ViewModeTable, p.ViewMode)
	require.Nil(t, p.Sort())
}

func TestToggleColumnVisibility(t *testing.T) {
	s := newStore(t)
	cols := planColumns()
	ctx := context.Background()

	s.ToggleColumnVisibility(ctx, "trip-plans", cols, "carrier")
	p := s.Get(ctx, "trip-plans", cols)
	require.True(t, p.Hidden("carrier"))

	// Toggling again restores visibility; the key never duplicates.
	s.ToggleColumnVisibility(ctx, "trip-plans", cols, "carrier")
	p = s.Get(ctx, "trip-plans", cols)
	require.False(t, p.Hidden("carrier"))
	require.Empty(t, p.HiddenColumns)
}

func TestRenameAndWidthOverridesClear(t *testing.T) {
	s := newStore(t)
	cols := planColumns()
	ctx := context.Background()

	s.RenameColumn(ctx, "trip-plans", cols, "carrier", "Hauler")
	s.SetColumnWidth(ctx, "trip-plans", cols, "carrier", 240)

	p := s.Get(ctx, "trip-plans", cols)
	require.Equal(t, "Hauler", p.ColumnHeaders["carrier"])
	require.Equal(t, 240, p.ColumnWidths["carrier"])

	// Empty label and non-positive width remove the overrides.
	s.RenameColumn(ctx, "trip-plans", cols, "carrier", "")
	s.SetColumnWidth(ctx, "trip-plans", cols, "carrier", 0)

	p = s.Get(ctx, "trip-plans", cols)
	require.NotContains(t, p.ColumnHeaders, "carrier")
	require.NotContains(t, p.ColumnWidths, "carrier")
}

func TestSetSort(t *testing.T) {
	s := newStore(t)
	cols := planColumns()
	ctx := context.Background()

	s.SetSort(ctx, "trip-plans", cols, "status", grid.Descending)
	p := s.Get(ctx, "trip-plans", cols)
	require.NotNil(t, p.Sort())
	require.Equal(t, "status", p.Sort().Column)
	require.Equal(t, grid.Descending, p.Sort().Direction)

	s.SetSort(ctx, "trip-plans", cols, "", grid.Ascending)
	p = s.Get(ctx, "trip-plans", cols)
	require.Nil(t, p.Sort())
}

func TestResetRebuildsFromColumns(t *testing.T) {
	s := newStore(t)
	cols := planColumns()
	ctx := context.Background()

	s.SetColumnOrder(ctx, "trip-plans", cols, []string{"status", "tripId", "carrier"})
	s.ToggleColumnVisibility(ctx, "trip-plans", cols, "carrier")
	s.SetColumnWidth(ctx, "trip-plans", cols, "status", 300)
	s.SetPageSize(ctx, "trip-plans", cols, 50)

	p := s.Reset(ctx, "trip-plans", cols)

	require.Equal(t, []string{"tripId", "carrier", "status"}, p.ColumnOrder)
	require.Empty(t, p.HiddenColumns)
	require.Empty(t, p.ColumnWidths)
	require.Equal(t, grid.DefaultPageSize, p.PageSize)
}

func TestPreferencesSurviveReload(t *testing.T) {
	backend := prefstore.NewMemoryBackend()
	logger := observability.NewNoOpLogger()
	cols := planColumns()
	ctx := context.Background()

	s := prefstore.NewStore(backend, logger)
	s.SetColumnOrder(ctx, "trip-plans", cols, []string{"status", "carrier", "tripId"})
	s.ToggleColumnVisibility(ctx, "trip-plans", cols, "carrier")
	s.SetSort(ctx, "trip-plans", cols, "tripId", grid.Ascending)
	s.SetViewMode(ctx, "trip-plans", cols, prefstore.ViewModeCard)

	// A new Store over the same backend models a new session.
	s2 := prefstore.NewStore(backend, logger)
	p := s2.Get(ctx, "trip-plans", cols)

	require.Equal(t, []string{"status", "carrier", "tripId"}, p.ColumnOrder)
	require.True(t, p.Hidden("carrier"))
	require.Equal(t, "tripId", p.Sort().Column)
	require.Equal(t, prefstore.ViewModeCard, p.ViewMode)
}

func TestStoredPreferencesReconcileWithChangedColumns(t *testing.T) {
	backend := prefstore.NewMemoryBackend()
	logger := observability.NewNoOpLogger()
	ctx := context.Background()

	old := planColumns()
	s := prefstore.NewStore(backend, logger)
	s.SetColumnOrder(ctx, "trip-plans", old, []string{"status", "tripId", "carrier"})
	s.ToggleColumnVisibility(ctx, "trip-plans", old, "carrier")

	// The grid drops "carrier" and gains "eta" in a later release.
	next := []grid.Column{
		{Key: "tripId", Title: "Trip ID", Type: grid.ColumnLink},
		{Key: "status", Title: "Status", Type: grid.ColumnBadge},
		{Key: "eta", Title: "ETA", Type: grid.ColumnDate},
	}

	s2 := prefstore.NewStore(backend, logger)
	p := s2.Get(ctx, "trip-plans", next)

	require.Equal(t, []string{"status", "tripId", "eta"}, p.ColumnOrder,
		"stored order keeps surviving columns and appends new ones")
	require.Empty(t, p.HiddenColumns, "hidden entries for removed columns drop out")
}

func TestGetReturnsACopy(t *testing.T) {
	s := newStore(t)
	cols := planColumns()
	ctx := context.Background()

	p := s.Get(ctx, "trip-plans", cols)
	p.ColumnOrder[0] = "mutated"
	p.ColumnWidths["carrier"] = 999

	fresh := s.Get(ctx, "trip-plans", cols)
	require.Equal(t, "tripId", fresh.ColumnOrder[0])
	require.NotContains(t, fresh.ColumnWidths, "carrier")
}
