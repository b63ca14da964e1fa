package deck

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Layout constants.
const (
	// StatusBarHeight is the number of terminal rows the status bar occupies.
	StatusBarHeight = 1

	// HeaderHeight is the page title row plus its underline.
	HeaderHeight = 2

	// PanelMinWidth keeps the detail panel readable on narrow terminals.
	PanelMinWidth = 36
)

// Color palette.
var (
	colorHeading  = lipgloss.AdaptiveColor{Light: "#1F6FEB", Dark: "#58A6FF"}
	colorText     = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#8B949E"}
	colorValue    = lipgloss.AdaptiveColor{Light: "#24292F", Dark: "#C9D1D9"}
	colorDark     = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0D1117"}
	colorAccent   = lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#BC8CFF"}
	colorMuted    = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#6E7681"}
	colorSuccess  = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	colorWarning  = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}
	colorDanger   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	colorInfo     = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
	colorSelected = lipgloss.AdaptiveColor{Light: "#DDF4FF", Dark: "#1C2D41"}
)

var (
	pageTitleStyle = lipgloss.NewStyle().
			Foreground(colorHeading).
			Bold(true)

	headerCellStyle = lipgloss.NewStyle().
			Foreground(colorHeading).
			Bold(true)

	headerSortedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	cellStyle = lipgloss.NewStyle().
			Foreground(colorValue)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	evenRowStyle = lipgloss.NewStyle().
			Foreground(colorValue)

	oddRowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(colorValue).
				Background(colorSelected)

	cursorRowStyle = lipgloss.NewStyle().
			Foreground(colorDark).
			Background(colorHeading)

	subRowStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Italic(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorText)

	navInfoStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorHeading).
				Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorHeading).
			Bold(true)

	panelLabelStyle = lipgloss.NewStyle().
			Foreground(colorText)

	panelValueStyle = lipgloss.NewStyle().
			Foreground(colorValue)

	modalBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(colorAccent).
				Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	cardBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// badgeStyle returns the style for a status badge variant.
func badgeStyle(variant string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch variant {
	case "success":
		return base.Foreground(colorSuccess)
	case "warning":
		return base.Foreground(colorWarning)
	case "danger":
		return base.Foreground(colorDanger)
	case "info":
		return base.Foreground(colorInfo)
	default:
		return base.Foreground(colorText)
	}
}

// ---- Text helpers ----

// truncateValue truncates s to fit maxWidth display columns, appending an
// ellipsis marker when anything was cut.
func truncateValue(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	const marker = "…"
	target := maxWidth - runewidth.StringWidth(marker)
	if target <= 0 {
		return strings.Repeat(".", max(maxWidth, 0))
	}

	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > target {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	b.WriteString(marker)
	return b.String()
}

// padValue pads or truncates s to exactly width display columns.
func padValue(s string, width int) string {
	s = truncateValue(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
