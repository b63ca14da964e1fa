package deck

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/observability"
	"github.com/opsdeck/opsdeck/internal/panel"
)

// Messages emitted by panel commands.
type (
	// PanelDataMsg carries resolved panel settings.
	PanelDataMsg struct {
		PanelID  string
		Settings panel.Settings
	}

	// PanelTickMsg drives the expand/collapse animation.
	PanelTickMsg struct {
		PanelID string
		At      time.Time
	}
)

// DynamicPanelParams configures a DynamicPanel.
type DynamicPanelParams struct {
	ID       string
	Title    string
	Defaults panel.Settings
	Store    *panel.Store
	Logger   *observability.CoreLogger

	// Open starts the panel expanded.
	Open bool

	// Animate enables the slide animation. When false, toggling snaps.
	Animate bool
}

// DynamicPanel is a sliding detail panel whose fields are driven by
// stored settings: which fields show, in what order, under what labels,
// and how wide each renders.
type DynamicPanel struct {
	id       string
	title    string
	defaults panel.Settings
	store    *panel.Store
	logger   *observability.CoreLogger

	settings panel.Settings

	slider  *slider
	animate bool

	editor *FieldEditor

	totalWidth int
	height     int
}

// NewDynamicPanel creates a panel; settings resolve on Init.
func NewDynamicPanel(p DynamicPanelParams) *DynamicPanel {
	return &DynamicPanel{
		id:       p.ID,
		title:    p.Title,
		defaults: p.Defaults,
		store:    p.Store,
		logger:   p.Logger,
		settings: p.Defaults.Clone(),
		slider:   newSlider(p.Open, PanelMinWidth),
		animate:  p.Animate,
	}
}

// ID returns the panel id.
func (d *DynamicPanel) ID() string { return d.id }

// Init starts the settings fetch.
func (d *DynamicPanel) Init() tea.Cmd {
	return d.loadCmd()
}

func (d *DynamicPanel) loadCmd() tea.Cmd {
	store, id, defaults := d.store, d.id, d.defaults
	return func() tea.Msg {
		return PanelDataMsg{
			PanelID:  id,
			Settings: store.Get(context.Background(), id, defaults),
		}
	}
}

// SetSize updates the panel's expanded width from the full layout size.
func (d *DynamicPanel) SetSize(totalWidth, height int) {
	d.totalWidth = totalWidth
	d.height = height
	d.applyWidth()
}

// applyWidth maps the settings' 12-column width span onto the terminal,
// capped at half the layout so the grid stays usable.
func (d *DynamicPanel) applyWidth() {
	if d.totalWidth <= 0 {
		return
	}
	expanded := d.totalWidth * d.settings.Width.Span() / 12
	expanded = clamp(expanded, PanelMinWidth, max(d.totalWidth/2, PanelMinWidth))
	d.slider.SetExpanded(expanded)
}

// Width returns the panel's current width for the parent layout.
func (d *DynamicPanel) Width() int { return d.slider.Value() }

// IsOpen reports whether the panel is (or is becoming) expanded.
func (d *DynamicPanel) IsOpen() bool { return d.slider.IsExpanded() || d.slider.IsAnimating() }

// Hidden reports whether the whole panel is switched off in settings.
func (d *DynamicPanel) Hidden() bool { return d.settings.Hidden }

// Toggle flips the panel open or closed, returning the animation tick
// when a slide starts. A panel configured as non-collapsible refuses to
// close; expanding is always allowed.
func (d *DynamicPanel) Toggle() tea.Cmd {
	if d.IsOpen() && !d.settings.Collapsible {
		return nil
	}
	d.slider.Toggle()
	if !d.animate {
		if d.slider.target > 0 {
			d.slider.ForceExpand()
		} else {
			d.slider.ForceCollapse()
		}
		return nil
	}
	return d.tickCmd()
}

func (d *DynamicPanel) tickCmd() tea.Cmd {
	id := d.id
	return tea.Tick(AnimationFrame, func(t time.Time) tea.Msg {
		return PanelTickMsg{PanelID: id, At: t}
	})
}

// EditorActive reports whether the field modal is open.
func (d *DynamicPanel) EditorActive() bool { return d.editor != nil }

// OpenEditor opens the field visibility modal over the current settings.
// A hidden panel stays configurable through here.
func (d *DynamicPanel) OpenEditor() {
	d.editor = NewFieldEditor(d.settings, d.defaults)
}

// EditorView renders the field modal for the parent to overlay.
func (d *DynamicPanel) EditorView() string {
	if d.editor == nil {
		return ""
	}
	return d.editor.View()
}

// SetHidden switches the whole panel on or off and persists the choice.
func (d *DynamicPanel) SetHidden(hidden bool) tea.Cmd {
	d.settings.Hidden = hidden
	store, id, defaults := d.store, d.id, d.defaults
	return func() tea.Msg {
		store.SetHidden(context.Background(), id, defaults, hidden)
		return nil
	}
}

// Update handles panel messages and, while the field modal is open, its
// key input.
func (d *DynamicPanel) Update(msg tea.Msg) tea.Cmd {
	switch t := msg.(type) {
	case PanelDataMsg:
		if t.PanelID != d.id {
			return nil
		}
		d.settings = t.Settings
		d.applyWidth()

	case PanelTickMsg:
		if t.PanelID != d.id {
			return nil
		}
		if !d.slider.Step(t.At) {
			return d.tickCmd()
		}

	case tea.KeyMsg:
		if d.editor == nil {
			return nil
		}
		done, save := d.editor.HandleKey(t)
		if !done {
			return nil
		}
		var cmd tea.Cmd
		if save {
			d.settings = d.editor.Result()
			d.applyWidth()
			cmd = d.saveCmd()
		}
		d.editor = nil
		return cmd
	}
	return nil
}

// saveCmd persists the edited settings off the Update goroutine.
func (d *DynamicPanel) saveCmd() tea.Cmd {
	store, id := d.store, d.id
	settings := d.settings.Clone()
	return func() tea.Msg {
		store.Save(context.Background(), id, settings)
		return nil
	}
}

// View renders the panel for the given row values. Collapsed or
// hidden panels render nothing and take no width.
func (d *DynamicPanel) View(values map[string]any) string {
	if !d.slider.IsVisible() || d.settings.Hidden {
		return ""
	}

	width := d.slider.Value()
	inner := max(width-4, 8)

	title := d.settings.Title
	if title == "" {
		title = d.title
	}
	head := panelTitleStyle.Render(truncateValue(title, inner))
	if d.settings.StatusIndicator {
		head = statusDot(values) + head
	}
	body := head

	fields := d.settings.VisibleFields()
	if len(fields) == 0 {
		body += "\n\n" + mutedStyle.Render("No fields configured.")
		return panelBorderStyle.Width(inner).Render(body)
	}

	for _, line := range layoutFieldRows(fields) {
		body += "\n\n" + renderFieldRow(line, values, inner)
	}
	return panelBorderStyle.Width(inner).Render(body)
}

// statusDot renders the panel's status indicator from the row's status
// cell, falling back to a neutral dot.
func statusDot(values map[string]any) string {
	variant := "neutral"
	if sc, ok := values["status"].(grid.StatusCell); ok {
		variant = sc.Variant
	}
	return badgeStyle(variant).Render("● ")
}

// layoutFieldRows packs fields into rows of at most twelve span units,
// mirroring a twelve-column form grid.
func layoutFieldRows(fields []panel.FieldSpec) [][]panel.FieldSpec {
	var rows [][]panel.FieldSpec
	var row []panel.FieldSpec
	used := 0
	for _, f := range fields {
		span := f.Width.Span()
		if used+span > 12 && len(row) > 0 {
			rows = append(rows, row)
			row = nil
			used = 0
		}
		row = append(row, f)
		used += span
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// renderFieldRow renders one packed row, dividing the width by span.
func renderFieldRow(fields []panel.FieldSpec, values map[string]any, inner int) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		w := max(inner*f.Width.Span()/12, 8)
		label := panelLabelStyle.Render(truncateValue(f.Label, w))
		value := panelValueStyle.Render(truncateValue(panel.FormatValue(f, values[f.Key]), w))
		parts = append(parts, lipgloss.JoinVertical(lipgloss.Left, label, value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
