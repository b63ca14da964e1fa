package panel

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/opsdeck/opsdeck/internal/observability"
	"github.com/opsdeck/opsdeck/internal/prefstore"
)

// Settings is the resolved configuration of one panel: title override,
// width, collapse and status-indicator behavior, whether the panel
// renders at all, and its field specs. Saves overwrite the whole record;
// there is no partial merge at the persistence boundary.
type Settings struct {
	Title           string      `json:"title,omitempty"`
	Width           FieldWidth  `json:"width,omitempty"`
	Collapsible     bool        `json:"collapsible,omitempty"`
	StatusIndicator bool        `json:"statusIndicator,omitempty"`
	Hidden          bool        `json:"hidden,omitempty"`
	Fields          []FieldSpec `json:"fields"`
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	out := s
	out.Fields = cloneFields(s.Fields)
	return out
}

// VisibleFields returns the non-hidden fields sorted by order. The sort
// is stable, so fields sharing an order keep their configured relative
// position.
func (s Settings) VisibleFields() []FieldSpec {
	out := make([]FieldSpec, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !f.Hidden {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Source supplies remotely managed panel settings, typically from the
// operations API. A Source returning found=false leaves the configured
// defaults in effect.
type Source interface {
	PanelSettings(ctx context.Context, panelID string) (Settings, bool, error)
}

// Store resolves and persists panel settings.
//
// Resolution precedence per panel: the user's saved edits win, then
// remote settings when they actually carry fields, then the configured
// defaults. Remote settings with an empty field list are treated as
// absent rather than blanking the panel.
type Store struct {
	mu      sync.Mutex
	backend prefstore.Backend
	source  Source
	logger  *observability.CoreLogger
	cache   map[string]*Settings
}

// NewStore returns a panel settings store. source may be nil when no
// remote settings exist.
func NewStore(backend prefstore.Backend, source Source, logger *observability.CoreLogger) *Store {
	return &Store{
		backend: backend,
		source:  source,
		logger:  logger,
		cache:   make(map[string]*Settings),
	}
}

func settingsKey(panelID string) string { return "panel/" + panelID }

// Get resolves the settings for panelID against the configured defaults.
func (s *Store) Get(ctx context.Context, panelID string, defaults Settings) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache[panelID]; ok {
		return cached.Clone()
	}

	resolved := defaults.Clone()

	if s.source != nil {
		remote, found, err := s.source.PanelSettings(ctx, panelID)
		if err != nil {
			s.logger.CaptureError(err, "op", "fetch_panel_settings", "panel", panelID)
		} else if found && len(remote.Fields) > 0 {
			resolved = remote.Clone()
		}
	}

	if data, found, err := s.backend.Load(ctx, settingsKey(panelID)); err != nil {
		s.logger.CaptureError(err, "op", "load_panel_settings", "panel", panelID)
	} else if found {
		var saved Settings
		if err := json.Unmarshal(data, &saved); err != nil {
			s.logger.CaptureError(err, "op", "decode_panel_settings", "panel", panelID)
		} else if len(saved.Fields) > 0 {
			resolved = saved
		}
	}

	s.cache[panelID] = &resolved
	return resolved.Clone()
}

// Save stores the user's edited settings for panelID. The write is
// fire-and-forget: a backend failure is logged and the in-memory state
// stays authoritative for the session.
func (s *Store) Save(ctx context.Context, panelID string, settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := settings.Clone()
	s.cache[panelID] = &stored

	data, err := json.Marshal(stored)
	if err != nil {
		s.logger.CaptureError(err, "op", "encode_panel_settings", "panel", panelID)
		return
	}
	if err := s.backend.Save(ctx, settingsKey(panelID), data); err != nil {
		s.logger.CaptureError(err, "op", "save_panel_settings", "panel", panelID)
	}
}

// SetHidden toggles whether the whole panel renders, keeping the field
// configuration intact for when it comes back.
func (s *Store) SetHidden(ctx context.Context, panelID string, defaults Settings, hidden bool) {
	current := s.Get(ctx, panelID, defaults)
	current.Hidden = hidden
	s.Save(ctx, panelID, current)
}

func cloneFields(fields []FieldSpec) []FieldSpec {
	out := make([]FieldSpec, len(fields))
	copy(out, fields)
	for i := range out {
		if len(fields[i].Options) > 0 {
			out[i].Options = append(out[i].Options[:0:0], fields[i].Options...)
		}
	}
	return out
}
