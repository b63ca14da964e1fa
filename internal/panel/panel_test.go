package panel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/internal/observability"
	"github.com/opsdeck/opsdeck/internal/panel"
	"github.com/opsdeck/opsdeck/internal/prefstore"
)

func detailDefaults() panel.Settings {
	return panel.Settings{
		Fields: []panel.FieldSpec{
			{Key: "tripId", Label: "Trip ID", Type: panel.FieldText, Order: 0, Mandatory: true},
			{Key: "carrier", Label: "Carrier", Type: panel.FieldSearch, Order: 1},
			{Key: "rate", Label: "Rate", Type: panel.FieldCurrency, Order: 2, Width: "half"},
			{Key: "notes", Label: "Notes", Type: panel.FieldTextarea, Order: 3, Hidden: true},
		},
	}
}

type staticSource struct {
	settings panel.Settings
	found    bool
	err      error
}

func (s staticSource) PanelSettings(context.Context, string) (panel.Settings, bool, error) {
	return s.settings, s.found, s.err
}

func TestVisibleFieldsOrderedAndFiltered(t *testing.T) {
	s := panel.Settings{
		Fields: []panel.FieldSpec{
			{Key: "c", Order: 2},
			{Key: "a", Order: 0},
			{Key: "hiddenField", Order: 1, Hidden: true},
			{Key: "b", Order: 1},
		},
	}

	visible := s.VisibleFields()
	require.Len(t, visible, 3)
	require.Equal(t, "a", visible[0].Key)
	require.Equal(t, "b", visible[1].Key)
	require.Equal(t, "c", visible[2].Key)
}

func TestVisibleFieldsStableForEqualOrders(t *testing.T) {
	s := panel.Settings{
		Fields: []panel.FieldSpec{
			{Key: "first", Order: 5},
			{Key: "second", Order: 5},
			{Key: "third", Order: 5},
		},
	}

	// Repeated reads must agree; ties keep configured position.
	for i := 0; i < 10; i++ {
		visible := s.VisibleFields()
		require.Equal(t, "first", visible[0].Key)
		require.Equal(t, "second", visible[1].Key)
		require.Equal(t, "third", visible[2].Key)
	}
}

func TestGetFallsBackToDefaults(t *testing.T) {
	store := panel.NewStore(prefstore.NewMemoryBackend(), nil, observability.NewNoOpLogger())

	got := store.Get(context.Background(), "trip-detail", detailDefaults())
	require.Equal(t, detailDefaults(), got)
}

func TestGetPrefersRemoteSettingsWithFields(t *testing.T) {
	remote := panel.Settings{
		Fields: []panel.FieldSpec{
			{Key: "tripId", Label: "Trip", Type: panel.FieldText, Order: 0},
		},
	}
	store := panel.NewStore(
		prefstore.NewMemoryBackend(),
		staticSource{settings: remote, found: true},
		observability.NewNoOpLogger(),
	)

	got := store.Get(context.Background(), "trip-detail", detailDefaults())
	require.Len(t, got.Fields, 1)
	require.Equal(t, "Trip", got.Fields[0].Label)
}

func TestGetIgnoresEmptyRemoteSettings(t *testing.T) {
	store := panel.NewStore(
		prefstore.NewMemoryBackend(),
		staticSource{settings: panel.Settings{}, found: true},
		observability.NewNoOpLogger(),
	)

	got := store.Get(context.Background(), "trip-detail", detailDefaults())
	require.Equal(t, detailDefaults(), got,
		"a remote record with no fields must not blank the panel")
}

func TestGetSurvivesSourceError(t *testing.T) {
	store := panel.NewStore(
		prefstore.NewMemoryBackend(),
		staticSource{err: errors.New("api unreachable")},
		observability.NewNoOpLogger(),
	)

	got := store.Get(context.Background(), "trip-detail", detailDefaults())
	require.Equal(t, detailDefaults(), got)
}

func TestSavedSettingsWinAndSurviveReload(t *testing.T) {
	backend := prefstore.NewMemoryBackend()
	logger := observability.NewNoOpLogger()
	ctx := context.Background()

	store := panel.NewStore(backend, nil, logger)
	edited := detailDefaults()
	edited.Fields[1].Hidden = true
	store.Save(ctx, "trip-detail", edited)

	got := store.Get(ctx, "trip-detail", detailDefaults())
	require.True(t, got.Fields[1].Hidden)

	// A fresh store over the same backend models a new session; the
	// user's edits beat the configured defaults.
	store2 := panel.NewStore(backend, nil, logger)
	got = store2.Get(ctx, "trip-detail", detailDefaults())
	require.True(t, got.Fields[1].Hidden)
}

func TestSetHiddenKeepsFields(t *testing.T) {
	store := panel.NewStore(prefstore.NewMemoryBackend(), nil, observability.NewNoOpLogger())
	ctx := context.Background()

	store.SetHidden(ctx, "trip-detail", detailDefaults(), true)
	got := store.Get(ctx, "trip-detail", detailDefaults())
	require.True(t, got.Hidden)
	require.Len(t, got.Fields, len(detailDefaults().Fields),
		"hiding the panel keeps the field configuration")

	store.SetHidden(ctx, "trip-detail", detailDefaults(), false)
	got = store.Get(ctx, "trip-detail", detailDefaults())
	require.False(t, got.Hidden)
}

func TestPanelLevelSettingsSurviveReload(t *testing.T) {
	backend := prefstore.NewMemoryBackend()
	logger := observability.NewNoOpLogger()
	ctx := context.Background()

	edited := detailDefaults()
	edited.Title = "Linehaul Detail"
	edited.Width = panel.WidthQuarter
	edited.Collapsible = true
	edited.StatusIndicator = true

	store := panel.NewStore(backend, nil, logger)
	store.Save(ctx, "trip-detail", edited)

	fresh := panel.NewStore(backend, nil, logger)
	got := fresh.Get(ctx, "trip-detail", detailDefaults())
	require.Equal(t, "Linehaul Detail", got.Title)
	require.Equal(t, panel.WidthQuarter, got.Width)
	require.True(t, got.Collapsible)
	require.True(t, got.StatusIndicator)
}

func TestGetReturnsACopy(t *testing.T) {
	store := panel.NewStore(prefstore.NewMemoryBackend(), nil, observability.NewNoOpLogger())
	ctx := context.Background()

	got := store.Get(ctx, "trip-detail", detailDefaults())
	got.Fields[0].Label = "mutated"

	fresh := store.Get(ctx, "trip-detail", detailDefaults())
	require.Equal(t, "Trip ID", fresh.Fields[0].Label)
}
