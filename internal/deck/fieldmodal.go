package deck

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/internal/panel"
)

// FieldEditor is the field visibility modal for a detail panel. It
// drives a panel.Editor working copy; nothing is applied until save.
type FieldEditor struct {
	editor *panel.Editor
	cursor int

	renaming      bool
	renamingTitle bool
	renameInput   textinput.Model
}

// NewFieldEditor opens the modal over the panel's current settings.
// defaults is the configured panel reset returns to.
func NewFieldEditor(current, defaults panel.Settings) *FieldEditor {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 64

	return &FieldEditor{
		editor:      panel.NewEditor(current, defaults),
		renameInput: input,
	}
}

// HandleKey processes one key press. done reports whether the modal
// closed; save whether the working copy should be applied.
func (e *FieldEditor) HandleKey(msg tea.KeyMsg) (done, save bool) {
	if e.renaming {
		e.handleRenameKey(msg)
		return false, false
	}

	fields := e.editor.Fields()
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
		if e.cursor < len(fields)-1 {
			e.cursor++
		}
	case "K", "shift+up":
		if e.cursor > 0 {
			e.editor.Move(e.cursor, e.cursor-1)
			e.cursor--
		}
	case "J", "shift+down":
		if e.cursor < len(fields)-1 {
			e.editor.Move(e.cursor, e.cursor+1)
			e.cursor++
		}
	case "space":
		if e.cursor >= 0 && e.cursor < len(fields) {
			e.editor.ToggleHidden(fields[e.cursor].Key)
		}
	case "r":
		e.beginRename(fields)
	case "t":
		e.beginTitleRename()
	case "w":
		e.editor.CycleWidth()
	case "C":
		e.editor.ToggleCollapsible()
	case "i":
		e.editor.ToggleStatusIndicator()
	case "R":
		e.editor.Reset()
		e.cursor = clamp(e.cursor, 0, len(e.editor.Fields())-1)
	}
	return false, false
}

func (e *FieldEditor) handleRenameKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		e.endRename()
	case tea.KeyEnter:
		value := strings.TrimSpace(e.renameInput.Value())
		if e.renamingTitle {
			e.editor.SetTitle(value)
		} else {
			fields := e.editor.Fields()
			if e.cursor >= 0 && e.cursor < len(fields) {
				e.editor.Rename(fields[e.cursor].Key, value)
			}
		}
		e.endRename()
	default:
		e.renameInput, _ = e.renameInput.Update(msg)
	}
}

func (e *FieldEditor) endRename() {
	e.renaming = false
	e.renamingTitle = false
	e.renameInput.Blur()
}

func (e *FieldEditor) beginRename(fields []panel.FieldSpec) {
	if e.cursor < 0 || e.cursor >= len(fields) {
		return
	}
	e.renaming = true
	e.renameInput.SetValue(fields[e.cursor].Label)
	e.renameInput.CursorEnd()
	e.renameInput.Focus()
}

func (e *FieldEditor) beginTitleRename() {
	e.renaming = true
	e.renamingTitle = true
	e.renameInput.SetValue(e.editor.Settings().Title)
	e.renameInput.CursorEnd()
	e.renameInput.Focus()
}

// Result returns the working copy for the caller to persist.
func (e *FieldEditor) Result() panel.Settings {
	return e.editor.Save()
}

// View renders the modal.
func (e *FieldEditor) View() string {
	s := e.editor.Settings()

	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("Panel Fields"))
	b.WriteString("\n\n")

	title := s.Title
	if e.renaming && e.renamingTitle {
		title = e.renameInput.View()
	}
	b.WriteString(panelLabelStyle.Render("Title: ") + panelValueStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(panelLabelStyle.Render("Width: ") + panelValueStyle.Render(string(widthName(s.Width))))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  collapsible:%s  status:%s",
		onOff(s.Collapsible), onOff(s.StatusIndicator))))
	b.WriteString("\n\n")

	for i, f := range s.Fields {
		mark := "[x]"
		if f.Hidden {
			mark = "[ ]"
		}
		lock := ""
		if f.Mandatory {
			lock = " (always shown)"
		}

		label := f.Label
		if e.renaming && !e.renamingTitle && i == e.cursor {
			label = e.renameInput.View()
		}

		line := mark + " " + label + lock
		if i == e.cursor {
			b.WriteString(cursorRowStyle.Render("> " + line))
		} else if f.Hidden {
			b.WriteString(mutedStyle.Render("  " + line))
		} else {
			b.WriteString(cellStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(
		"Space show/hide • J/K reorder • r rename • t title • w width\n" +
			"C collapsible • i status dot • R reset • Enter save • Esc cancel"))
	return modalBorderStyle.Render(b.String())
}

func widthName(w panel.FieldWidth) panel.FieldWidth {
	if w == "" {
		return panel.WidthFull
	}
	return w
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
