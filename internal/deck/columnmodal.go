package deck

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/prefstore"
)

// columnEntry is one row of the column editor's working copy.
type columnEntry struct {
	key       string
	label     string
	title     string // configured title, what reset and empty renames restore
	hidden    bool
	mandatory bool
}

// ColumnEditor is the column visibility modal: a working copy of the
// grid's column order, visibility, and labels that applies only on save.
type ColumnEditor struct {
	entries  []columnEntry
	defaults []columnEntry
	cursor   int

	renaming    bool
	renameInput textinput.Model
}

// NewColumnEditor opens the editor over the grid's configured columns
// and current preferences.
func NewColumnEditor(columns []grid.Column, prefs prefstore.GridPreferences) *ColumnEditor {
	byKey := make(map[string]grid.Column, len(columns))
	for _, c := range columns {
		byKey[c.Key] = c
	}

	build := func(order []string, applyPrefs bool) []columnEntry {
		out := make([]columnEntry, 0, len(order))
		for _, key := range order {
			c, ok := byKey[key]
			if !ok {
				continue
			}
			e := columnEntry{key: key, label: c.Title, title: c.Title, mandatory: c.Mandatory}
			if applyPrefs {
				e.hidden = prefs.Hidden(key)
				if label, ok := prefs.ColumnHeaders[key]; ok {
					e.label = label
				}
			}
			out = append(out, e)
		}
		return out
	}

	configured := make([]string, 0, len(columns))
	for _, c := range columns {
		if !c.SubRow {
			configured = append(configured, c.Key)
		}
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 64

	return &ColumnEditor{
		entries:     build(prefs.ColumnOrder, true),
		defaults:    build(configured, false),
		renameInput: input,
	}
}

// HandleKey processes one key press. done reports whether the modal
// closed; save whether the working copy should be applied.
func (e *ColumnEditor) HandleKey(msg tea.KeyMsg) (done, save bool) {
	if e.renaming {
		e.handleRenameKey(msg)
		return false, false
	}

	switch normalizeKey(msg.String()) {
	case "esc":
		return true, false
	case "enter":
		return true, true
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.entries)-1 {
			e.cursor++
		}
	case "K", "shift+up":
		e.move(-1)
	case "J", "shift+down":
		e.move(1)
	case "space":
		e.toggleHidden()
	case "r":
		e.beginRename()
	case "R":
		e.reset()
	}
	return false, false
}

func (e *ColumnEditor) handleRenameKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		e.renaming = false
		e.renameInput.Blur()
	case tea.KeyEnter:
		e.renaming = false
		e.renameInput.Blur()
		label := strings.TrimSpace(e.renameInput.Value())
		if label == "" {
			label = e.entries[e.cursor].title
		}
		e.entries[e.cursor].label = label
	default:
		e.renameInput, _ = e.renameInput.Update(msg)
	}
}

// move shifts the cursor entry by dir, carrying the cursor with it.
func (e *ColumnEditor) move(dir int) {
	target := e.cursor + dir
	if e.cursor < 0 || e.cursor >= len(e.entries) || target < 0 || target >= len(e.entries) {
		return
	}
	e.entries[e.cursor], e.entries[target] = e.entries[target], e.entries[e.cursor]
	e.cursor = target
}

// toggleHidden flips visibility of the cursor entry. Mandatory columns
// stay visible.
func (e *ColumnEditor) toggleHidden() {
	if e.cursor < 0 || e.cursor >= len(e.entries) {
		return
	}
	entry := &e.entries[e.cursor]
	if entry.mandatory && !entry.hidden {
		return
	}
	entry.hidden = !entry.hidden
}

func (e *ColumnEditor) beginRename() {
	if e.cursor < 0 || e.cursor >= len(e.entries) {
		return
	}
	e.renaming = true
	e.renameInput.SetValue(e.entries[e.cursor].label)
	e.renameInput.CursorEnd()
	e.renameInput.Focus()
}

// reset restores the configured column set: original order, everything
// visible, original titles.
func (e *ColumnEditor) reset() {
	e.entries = append(e.entries[:0:0], e.defaults...)
	e.cursor = clamp(e.cursor, 0, len(e.entries)-1)
}

// Result returns the working copy for the caller to persist. Labels maps
// every column key; renames back to the configured title map to "" so
// the stored override is removed.
func (e *ColumnEditor) Result() (order, hidden []string, labels map[string]string) {
	order = make([]string, 0, len(e.entries))
	hidden = []string{}
	labels = make(map[string]string, len(e.entries))
	for _, entry := range e.entries {
		order = append(order, entry.key)
		if entry.hidden {
			hidden = append(hidden, entry.key)
		}
		if entry.label != entry.title {
			labels[entry.key] = entry.label
		} else {
			labels[entry.key] = ""
		}
	}
	return order, hidden, labels
}

// View renders the modal.
func (e *ColumnEditor) View() string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("Columns"))
	b.WriteString("\n\n")

	for i, entry := range e.entries {
		mark := "[x]"
		if entry.hidden {
			mark = "[ ]"
		}
		lock := ""
		if entry.mandatory {
			lock = " (always shown)"
		}

		label := entry.label
		if e.renaming && i == e.cursor {
			label = e.renameInput.View()
		}

		line := mark + " " + label + lock
		if i == e.cursor {
			b.WriteString(cursorRowStyle.Render("> " + line))
		} else if entry.hidden {
			b.WriteString(mutedStyle.Render("  " + line))
		} else {
			b.WriteString(cellStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(
		"Space show/hide • J/K reorder • r rename • R reset • Enter save • Esc cancel"))
	return modalBorderStyle.Render(b.String())
}
