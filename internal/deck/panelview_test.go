package deck_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/internal/deck"
	"github.com/opsdeck/opsdeck/internal/observability"
	"github.com/opsdeck/opsdeck/internal/panel"
	"github.com/opsdeck/opsdeck/internal/prefstore"
	"github.com/opsdeck/opsdeck/internal/tripdata"
)

type panelEnv struct {
	panel   *deck.DynamicPanel
	store   *panel.Store
	backend *prefstore.MemoryBackend
}

func newTripPanel(t *testing.T) *panelEnv {
	t.Helper()

	logger := observability.NewNoOpLogger()
	backend := prefstore.NewMemoryBackend()
	store := panel.NewStore(backend, nil, logger)

	p := deck.NewDynamicPanel(deck.DynamicPanelParams{
		ID:       "trip-detail",
		Title:    "Trip Detail",
		Defaults: tripdata.TripPanelDefaults(),
		Store:    store,
		Logger:   logger,
		Open:     true,
		Animate:  false,
	})
	p.SetSize(160, 40)
	p.Update(p.Init()())
	return &panelEnv{panel: p, store: store, backend: backend}
}

func tripValues() map[string]any {
	row := tripdata.TripPlanRows()[0]
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func TestPanelRendersVisibleFieldsInOrder(t *testing.T) {
	env := newTripPanel(t)

	view := stripANSI(env.panel.View(tripValues()))
	require.Contains(t, view, "Trip Detail")
	require.Contains(t, view, "Trip ID")
	require.Contains(t, view, "TP-10241")
	require.Contains(t, view, "Carrier")
	require.Contains(t, view, "Knight-Swift")

	// Hidden defaults stay hidden.
	require.NotContains(t, view, "Tractor")
	require.NotContains(t, view, "KT-2211")
}

func TestPanelNilValuesRenderDash(t *testing.T) {
	env := newTripPanel(t)

	view := stripANSI(env.panel.View(map[string]any{"tripId": "TP-10247"}))
	require.Contains(t, view, "-")
}

func TestPanelToggleCollapses(t *testing.T) {
	env := newTripPanel(t)
	require.Positive(t, env.panel.Width())

	env.panel.Toggle()
	require.Zero(t, env.panel.Width())
	require.Empty(t, env.panel.View(tripValues()))

	env.panel.Toggle()
	require.Positive(t, env.panel.Width())
}

func TestPanelHiddenRendersNothing(t *testing.T) {
	env := newTripPanel(t)

	cmd := env.panel.SetHidden(true)
	require.NotNil(t, cmd)
	cmd()
	require.Empty(t, env.panel.View(tripValues()))

	// The choice persisted through the store.
	saved := env.store.Get(context.Background(), "trip-detail", tripdata.TripPanelDefaults())
	require.True(t, saved.Hidden)
}

func TestFieldEditorSavePersists(t *testing.T) {
	env := newTripPanel(t)

	env.panel.OpenEditor()
	require.True(t, env.panel.EditorActive())

	// Hide the second field (status) and save.
	env.panel.Update(keyRunes("j"))
	env.panel.Update(keySpace)
	cmd := env.panel.Update(keyEnter)
	require.False(t, env.panel.EditorActive())
	require.NotNil(t, cmd)
	cmd()

	view := stripANSI(env.panel.View(tripValues()))
	require.NotContains(t, view, "Status")

	saved := env.store.Get(context.Background(), "trip-detail", tripdata.TripPanelDefaults())
	for _, f := range saved.Fields {
		if f.Key == "status" {
			require.True(t, f.Hidden)
		}
	}
}

func TestFieldEditorEscDiscards(t *testing.T) {
	env := newTripPanel(t)

	env.panel.OpenEditor()
	env.panel.Update(keyRunes("j"))
	env.panel.Update(keySpace)
	env.panel.Update(keyEsc)
	require.False(t, env.panel.EditorActive())

	require.Contains(t, stripANSI(env.panel.View(tripValues())), "Status")
}

func TestFieldEditorMandatoryFieldLocked(t *testing.T) {
	env := newTripPanel(t)

	env.panel.OpenEditor()
	env.panel.Update(keySpace)
	env.panel.Update(keyEnter)

	require.Contains(t, stripANSI(env.panel.View(tripValues())), "Trip ID")
}

func TestPanelStatusIndicatorDot(t *testing.T) {
	env := newTripPanel(t)

	require.Contains(t, stripANSI(env.panel.View(tripValues())), "●")

	env.panel.OpenEditor()
	env.panel.Update(keyRunes("i"))
	if cmd := env.panel.Update(keyEnter); cmd != nil {
		cmd()
	}
	require.NotContains(t, stripANSI(env.panel.View(tripValues())), "●")
}

func TestFieldEditorWidthCycleResizesPanel(t *testing.T) {
	env := newTripPanel(t)

	// third of 160 across a 12-column scale.
	require.Equal(t, 53, env.panel.Width())

	env.panel.OpenEditor()
	env.panel.Update(keyRunes("w"))
	if cmd := env.panel.Update(keyEnter); cmd != nil {
		cmd()
	}

	require.Equal(t, 40, env.panel.Width())

	saved := env.store.Get(context.Background(), "trip-detail", tripdata.TripPanelDefaults())
	require.Equal(t, panel.WidthQuarter, saved.Width)
}

func TestFieldEditorTitleOverride(t *testing.T) {
	env := newTripPanel(t)

	env.panel.OpenEditor()
	env.panel.Update(keyRunes("t"))
	env.panel.Update(keyRunes(" Ops"))
	env.panel.Update(keyEnter)
	if cmd := env.panel.Update(keyEnter); cmd != nil {
		cmd()
	}

	require.Contains(t, stripANSI(env.panel.View(tripValues())), "Trip Detail Ops")
}

func TestNonCollapsiblePanelRefusesToClose(t *testing.T) {
	env := newTripPanel(t)

	env.panel.OpenEditor()
	env.panel.Update(keyRunes("C"))
	if cmd := env.panel.Update(keyEnter); cmd != nil {
		cmd()
	}

	require.Nil(t, env.panel.Toggle())
	require.Positive(t, env.panel.Width())
}

func TestSavedSettingsWinOverDefaultsOnReload(t *testing.T) {
	env := newTripPanel(t)

	env.panel.OpenEditor()
	env.panel.Update(keyRunes("j"))
	env.panel.Update(keySpace)
	if cmd := env.panel.Update(keyEnter); cmd != nil {
		cmd()
	}

	// A fresh store over the same backend resolves the user's edits.
	logger := observability.NewNoOpLogger()
	fresh := panel.NewStore(env.backend, nil, logger)
	settings := fresh.Get(context.Background(), "trip-detail", tripdata.TripPanelDefaults())
	for _, f := range settings.Fields {
		if f.Key == "status" {
			require.True(t, f.Hidden)
		}
	}
}
