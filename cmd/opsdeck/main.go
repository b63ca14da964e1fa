package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/deck"
	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/observability"
	"github.com/opsdeck/opsdeck/internal/panel"
	"github.com/opsdeck/opsdeck/internal/prefstore"
	"github.com/opsdeck/opsdeck/internal/tripdata"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "opsdeck:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := deck.NewConfigManager(deck.DefaultConfigPath(), observability.NewNoOpLogger())

	if err := os.MkdirAll(cfg.StateDir(), 0o755); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(
		filepath.Join(cfg.StateDir(), "opsdeck.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := observability.NewCoreLogger(logFile, parseLevel(cfg.LogLevel()))

	var backend prefstore.Backend
	sqlite, err := prefstore.OpenSQLiteBackend(cfg.StateDir())
	if err != nil {
		logger.CaptureError(err, "op", "open_preferences_db", "dir", cfg.StateDir())
		backend = prefstore.NewMemoryBackend()
	} else {
		backend = sqlite
	}
	defer backend.Close()

	prefs := prefstore.NewStore(backend, logger)
	filters := prefstore.NewFilterStore(backend, logger)
	panels := panel.NewStore(backend, nil, logger)

	tripKey := grid.RowKeyField("tripId")
	orderKey := grid.RowKeyField("orderId")

	sources := tripdata.NewRegistry()
	sources.Add(tripdata.NewStaticSource(tripdata.GridTripPlans, tripdata.TripPlanRows(), tripKey))
	sources.Add(tripdata.NewStaticSource(tripdata.GridQuickOrders, tripdata.QuickOrderRows(), orderKey))

	tripSource, err := sources.Get(tripdata.GridTripPlans)
	if err != nil {
		return err
	}
	orderSource, err := sources.Get(tripdata.GridQuickOrders)
	if err != nil {
		return err
	}

	trips := deck.NewSmartGrid(deck.SmartGridParams{
		ID:             tripdata.GridTripPlans,
		Title:          "Trip Plans",
		Columns:        tripdata.TripPlanColumns(),
		Source:         tripSource,
		RowKey:         tripKey,
		Prefs:          prefs,
		Filters:        filters,
		Logger:         logger,
		SearchDebounce: cfg.SearchDebounce(),
	})
	orders := deck.NewSmartGrid(deck.SmartGridParams{
		ID:             tripdata.GridQuickOrders,
		Title:          "Quick Orders",
		Columns:        tripdata.QuickOrderColumns(),
		Source:         orderSource,
		RowKey:         orderKey,
		Prefs:          prefs,
		Filters:        filters,
		Logger:         logger,
		SearchDebounce: cfg.SearchDebounce(),
	})

	detail := deck.NewDynamicPanel(deck.DynamicPanelParams{
		ID:       "trip-detail",
		Title:    "Trip Detail",
		Defaults: tripdata.TripPanelDefaults(),
		Store:    panels,
		Logger:   logger,
		Animate:  cfg.AnimationsEnabled(),
	})

	model := deck.NewModel(deck.ModelParams{
		Grids:  []*deck.SmartGrid{trips, orders},
		Panel:  detail,
		Config: cfg,
		Logger: logger,
	})

	logger.Info("starting console", "stateDir", cfg.StateDir())
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
