package deck

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opsdeck/opsdeck/internal/observability"
)

// ModelParams configures the top-level console model.
type ModelParams struct {
	Grids  []*SmartGrid
	Panel  *DynamicPanel
	Config *ConfigManager
	Logger *observability.CoreLogger
}

// Model is the operations console: a tab row of grids, a sliding detail
// panel for the cursor row, and a status bar.
type Model struct {
	grids  []*SmartGrid
	active int
	panel  *DynamicPanel

	config *ConfigManager
	logger *observability.CoreLogger

	showHelp bool
	quitting bool

	width, height int
}

// NewModel assembles the console from its grids and panel.
func NewModel(p ModelParams) *Model {
	return &Model{
		grids:  p.Grids,
		panel:  p.Panel,
		config: p.Config,
		logger: p.Logger,
	}
}

// Init starts every grid's data fetch and the panel settings load.
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.grids)+1)
	for _, g := range m.grids {
		cmds = append(cmds, g.Init())
	}
	if m.panel != nil {
		cmds = append(cmds, m.panel.Init())
	}
	return tea.Batch(cmds...)
}

func (m *Model) activeGrid() *SmartGrid {
	if m.active < 0 || m.active >= len(m.grids) {
		return nil
	}
	return m.grids[m.active]
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch t := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = t.Width, t.Height
		if m.panel != nil {
			m.panel.SetSize(m.width, m.contentHeight())
		}
		m.layoutGrids()
		return m, nil

	case GridDataMsg, GridSearchDebouncedMsg:
		var cmds []tea.Cmd
		for _, g := range m.grids {
			if cmd := g.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case PanelDataMsg, PanelTickMsg:
		if m.panel == nil {
			return m, nil
		}
		cmd := m.panel.Update(msg)
		m.layoutGrids()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(t)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.panel != nil && m.panel.EditorActive() {
		return m, m.panel.Update(msg)
	}

	grid := m.activeGrid()
	inputActive := grid != nil && grid.InputActive()

	if !inputActive {
		switch normalizeKey(msg.String()) {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "tab":
			m.switchGrid((m.active + 1) % max(len(m.grids), 1))
			return m, nil
		case "1", "2", "3", "4":
			idx := int(msg.String()[0] - '1')
			if idx < len(m.grids) {
				m.switchGrid(idx)
			}
			return m, nil
		case "p":
			if m.panel != nil {
				cmd := m.panel.Toggle()
				m.layoutGrids()
				return m, cmd
			}
			return m, nil
		case "e":
			if m.panel != nil {
				m.panel.OpenEditor()
				return m, nil
			}
		case "H":
			if m.panel != nil {
				return m, m.panel.SetHidden(!m.panel.Hidden())
			}
		}
	}

	if grid != nil {
		return m, grid.Update(msg)
	}
	return m, nil
}

func (m *Model) switchGrid(idx int) {
	if idx == m.active || idx < 0 || idx >= len(m.grids) {
		return
	}
	m.active = idx
	m.layoutGrids()
}

// layoutGrids resizes every grid to the space left of the panel.
func (m *Model) layoutGrids() {
	w := m.width
	if m.panel != nil && !m.panel.Hidden() {
		if pw := m.panel.Width(); pw > 0 {
			w -= pw + 1
		}
	}
	for _, g := range m.grids {
		g.SetSize(max(w, 0), m.contentHeight())
	}
}

func (m *Model) contentHeight() int {
	return max(m.height-HeaderHeight-StatusBarHeight, 0)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	grid := m.activeGrid()

	main := ""
	if grid != nil {
		main = grid.View()
	}
	if m.panel != nil && !m.panel.Hidden() {
		var values map[string]any
		if grid != nil {
			values = grid.FieldValues(m.panel.settings.VisibleFields())
		}
		if side := m.panel.View(values); side != "" {
			main = lipgloss.JoinHorizontal(lipgloss.Top, main, " ", side)
		}
	}

	sections := []string{m.renderTabs(), main, m.renderStatusBar()}
	out := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.panel != nil && m.panel.EditorActive() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.panel.EditorView())
	}
	return out
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.grids))
	for i, g := range m.grids {
		label := fmt.Sprintf(" %d:%s ", i+1, g.title)
		if i == m.active {
			parts = append(parts, pageTitleStyle.Render(label))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	return strings.Join(parts, "│")
}

func (m *Model) renderStatusBar() string {
	left := "q quit • ? help • tab switch grid"
	if m.panel != nil {
		left += " • p panel • e fields"
	}
	summary := ""
	if g := m.activeGrid(); g != nil {
		summary = g.statusSummary()
	}
	return statusBarStyle.Render(padValue(left+summary, max(m.width, 0)))
}

// renderHelp renders the key binding reference.
func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("Key Bindings"))
	b.WriteString("\n")

	for _, category := range GridKeyBindings() {
		b.WriteString("\n")
		b.WriteString(headerCellStyle.Render(category.Name))
		b.WriteString("\n")
		for _, binding := range category.Bindings {
			keys := strings.Join(binding.Keys, ", ")
			b.WriteString(fmt.Sprintf("  %-14s %s\n", keys, binding.Description))
		}
	}

	b.WriteString("\n")
	b.WriteString(headerCellStyle.Render("Global"))
	b.WriteString("\n")
	b.WriteString("  tab, 1-4       Switch grid\n")
	b.WriteString("  p              Toggle detail panel\n")
	b.WriteString("  e              Edit panel fields\n")
	b.WriteString("  H              Hide/show detail panel\n")
	b.WriteString("  q, ctrl+c      Quit\n")
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press any key to close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		modalBorderStyle.Render(b.String()))
}
