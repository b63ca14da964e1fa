package panel

import "sort"

// Editor is the field visibility modal's state: a working copy of the
// panel settings that the user mutates freely, applied only on Save.
// Closing the modal without saving discards the working copy.
type Editor struct {
	defaults Settings
	working  Settings
}

// NewEditor opens an editor over the current settings. defaults is the
// configured panel Reset returns to.
func NewEditor(current, defaults Settings) *Editor {
	e := &Editor{
		defaults: defaults.Clone(),
		working:  current.Clone(),
	}
	e.normalize()
	return e
}

// Fields returns the working field copy in display order.
func (e *Editor) Fields() []FieldSpec {
	return cloneFields(e.working.Fields)
}

// Settings returns the full working copy.
func (e *Editor) Settings() Settings {
	return e.working.Clone()
}

// ToggleHidden flips the hidden state of one field. Mandatory fields
// cannot be hidden; the call reports whether anything changed.
func (e *Editor) ToggleHidden(key string) bool {
	for i := range e.working.Fields {
		if e.working.Fields[i].Key != key {
			continue
		}
		if e.working.Fields[i].Mandatory && !e.working.Fields[i].Hidden {
			return false
		}
		e.working.Fields[i].Hidden = !e.working.Fields[i].Hidden
		return true
	}
	return false
}

// Rename sets a field's label in the working copy. An empty label
// restores the configured default label.
func (e *Editor) Rename(key, label string) {
	for i := range e.working.Fields {
		if e.working.Fields[i].Key != key {
			continue
		}
		if label == "" {
			e.working.Fields[i].Label = e.defaultLabel(key)
			return
		}
		e.working.Fields[i].Label = label
		return
	}
}

// Move shifts the field at index from to index to, then renumbers every
// order densely so no gaps or duplicates survive the move.
func (e *Editor) Move(from, to int) {
	f := e.working.Fields
	if from < 0 || from >= len(f) || to < 0 || to >= len(f) || from == to {
		return
	}
	moved := f[from]
	rest := append(f[:from:from], f[from+1:]...)
	e.working.Fields = append(rest[:to:to], append([]FieldSpec{moved}, rest[to:]...)...)
	e.renumber()
}

// SetTitle overrides the panel title. An empty title restores the
// configured default.
func (e *Editor) SetTitle(title string) {
	if title == "" {
		e.working.Title = e.defaults.Title
		return
	}
	e.working.Title = title
}

// CycleWidth steps the panel width through the named fractions.
func (e *Editor) CycleWidth() {
	switch e.working.Width {
	case WidthFull, "":
		e.working.Width = WidthHalf
	case WidthHalf:
		e.working.Width = WidthThird
	case WidthThird:
		e.working.Width = WidthQuarter
	default:
		e.working.Width = WidthFull
	}
}

// ToggleCollapsible flips whether the panel can be collapsed.
func (e *Editor) ToggleCollapsible() {
	e.working.Collapsible = !e.working.Collapsible
}

// ToggleStatusIndicator flips the panel's status indicator.
func (e *Editor) ToggleStatusIndicator() {
	e.working.StatusIndicator = !e.working.StatusIndicator
}

// Reset restores the configured field set with every field visible, the
// panel visible, width full, and collapsing off. Labels return to their
// configured defaults.
func (e *Editor) Reset() {
	e.working = e.defaults.Clone()
	e.working.Width = WidthFull
	e.working.Collapsible = false
	e.working.Hidden = false
	for i := range e.working.Fields {
		e.working.Fields[i].Hidden = false
	}
	e.normalize()
}

// Save returns the working copy for the caller to persist.
func (e *Editor) Save() Settings {
	return e.working.Clone()
}

func (e *Editor) defaultLabel(key string) string {
	for _, f := range e.defaults.Fields {
		if f.Key == key {
			return f.Label
		}
	}
	return key
}

// normalize sorts the working fields by order, stably, then renumbers.
func (e *Editor) normalize() {
	sort.SliceStable(e.working.Fields, func(i, j int) bool {
		return e.working.Fields[i].Order < e.working.Fields[j].Order
	})
	e.renumber()
}

func (e *Editor) renumber() {
	for i := range e.working.Fields {
		e.working.Fields[i].Order = i
	}
}
