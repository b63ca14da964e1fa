package deck

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding defines a key binding for a particular target type.
//
// If Handler is nil, the binding is shown in the help screen but is not
// dispatched through the key map (useful for documentation-only bindings
// handled by a child component or a parent model).
type KeyBinding[T any] struct {
	Keys        []string
	Description string
	Handler     func(*T, tea.KeyMsg) tea.Cmd
}

// BindingCategory groups related key bindings (primarily for help display).
type BindingCategory[T any] struct {
	Name     string
	Bindings []KeyBinding[T]
}

// GridKeyBindings returns key bindings for a grid in browse mode. Input
// modes (search, filter row, cell editing, modals) capture keys before
// this map is consulted.
func GridKeyBindings() []BindingCategory[SmartGrid] {
	return []BindingCategory[SmartGrid]{
		{
			Name: "Navigation",
			Bindings: []KeyBinding[SmartGrid]{
				{
					Keys:        []string{"up", "k"},
					Description: "Previous row",
					Handler:     (*SmartGrid).handleCursorUp,
				},
				{
					Keys:        []string{"down", "j"},
					Description: "Next row",
					Handler:     (*SmartGrid).handleCursorDown,
				},
				{
					Keys:        []string{"left"},
					Description: "Previous column",
					Handler:     (*SmartGrid).handleCursorLeft,
				},
				{
					Keys:        []string{"right"},
					Description: "Next column",
					Handler:     (*SmartGrid).handleCursorRight,
				},
				{
					Keys:        []string{"N", "pgup"},
					Description: "Previous page",
					Handler:     (*SmartGrid).handlePrevPage,
				},
				{
					Keys:        []string{"n", "pgdown"},
					Description: "Next page",
					Handler:     (*SmartGrid).handleNextPage,
				},
				{
					Keys:        []string{"+"},
					Description: "Larger page size",
					Handler:     (*SmartGrid).handleGrowPageSize,
				},
				{
					Keys:        []string{"-"},
					Description: "Smaller page size",
					Handler:     (*SmartGrid).handleShrinkPageSize,
				},
			},
		},
		{
			Name: "Selection",
			Bindings: []KeyBinding[SmartGrid]{
				{
					Keys:        []string{"space"},
					Description: "Select/deselect row",
					Handler:     (*SmartGrid).handleToggleSelect,
				},
				{
					Keys:        []string{"a"},
					Description: "Select all rows on this page",
					Handler:     (*SmartGrid).handleSelectAllPage,
				},
				{
					Keys:        []string{"A"},
					Description: "Select every filtered row",
					Handler:     (*SmartGrid).handleSelectAllFiltered,
				},
				{
					Keys:        []string{"ctrl+d"},
					Description: "Clear selection",
					Handler:     (*SmartGrid).handleClearSelection,
				},
			},
		},
		{
			Name: "Filtering & Sorting",
			Bindings: []KeyBinding[SmartGrid]{
				{
					Keys:        []string{"/"},
					Description: "Search all columns",
					Handler:     (*SmartGrid).handleEnterSearch,
				},
				{
					Keys:        []string{"f"},
					Description: "Toggle the filter row",
					Handler:     (*SmartGrid).handleToggleFilterRow,
				},
				{
					Keys:        []string{"ctrl+l"},
					Description: "Clear all filters",
					Handler:     (*SmartGrid).handleClearFilters,
				},
				{
					Keys:        []string{"s"},
					Description: "Sort by the cursor column",
					Handler:     (*SmartGrid).handleSortColumn,
				},
				{
					Keys:        []string{"S"},
					Description: "Save current filters as a set",
					Handler:     (*SmartGrid).handleSaveFilterSet,
				},
				{
					Keys:        []string{"L"},
					Description: "Load a saved filter set",
					Handler:     (*SmartGrid).handleLoadFilterSet,
				},
			},
		},
		{
			Name: "Columns",
			Bindings: []KeyBinding[SmartGrid]{
				{
					Keys:        []string{"c"},
					Description: "Column editor (show/hide, rename, reorder)",
					Handler:     (*SmartGrid).handleOpenColumnEditor,
				},
				{
					Keys:        []string{"m"},
					Description: "Move the cursor column",
					Handler:     (*SmartGrid).handleEnterMoveMode,
				},
				{
					Keys:        []string{"r"},
					Description: "Reset grid preferences",
					Handler:     (*SmartGrid).handleResetPreferences,
				},
			},
		},
		{
			Name: "Rows",
			Bindings: []KeyBinding[SmartGrid]{
				{
					Keys:        []string{"enter"},
					Description: "Edit the cursor cell (when editable)",
					Handler:     (*SmartGrid).handleBeginEdit,
				},
				{
					Keys:        []string{"x"},
					Description: "Expand/collapse the cursor row",
					Handler:     (*SmartGrid).handleToggleExpand,
				},
				{
					Keys:        []string{"v"},
					Description: "Toggle table/card view",
					Handler:     (*SmartGrid).handleToggleViewMode,
				},
				{
					Keys:        []string{"b"},
					Description: "Toggle row checkboxes",
					Handler:     (*SmartGrid).handleToggleCheckboxes,
				},
			},
		},
	}
}

// buildKeyMap builds a fast lookup map from key string to handler.
func buildKeyMap[T any](categories []BindingCategory[T]) map[string]func(*T, tea.KeyMsg) tea.Cmd {
	keyMap := make(map[string]func(*T, tea.KeyMsg) tea.Cmd)
	for _, category := range categories {
		for _, binding := range category.Bindings {
			if binding.Handler == nil {
				continue
			}
			for _, key := range binding.Keys {
				keyMap[normalizeKey(key)] = binding.Handler
			}
		}
	}
	return keyMap
}

// normalizeKey normalizes Bubble Tea's KeyMsg.String() into a stable key
// used by our maps.
//
// Bubble Tea has historically reported space as " " in some situations;
// we want a help-friendly, explicit key name.
func normalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
