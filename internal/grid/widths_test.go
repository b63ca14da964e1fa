package grid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/internal/grid"
)

func TestMinWidthByType(t *testing.T) {
	tests := []struct {
		typ  grid.ColumnType
		want int
	}{
		{grid.ColumnBadge, 100},
		{grid.ColumnDate, 140},
		{grid.ColumnDateTimeRange, 200},
		{grid.ColumnLink, 150},
		{grid.ColumnExpandableCount, 90},
		{grid.ColumnText, 120},
		{grid.ColumnEditableText, 120},
		{grid.ColumnTextWithTooltip, 120},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			require.Equal(t, tt.want, tt.typ.MinWidth())
		})
	}
}

func TestComputeWidthsPrecedence(t *testing.T) {
	cols := []grid.Column{
		{Key: "a", Type: grid.ColumnText},
		{Key: "b", Type: grid.ColumnText},
		{Key: "c", Type: grid.ColumnText, Width: 300},
	}

	tests := []struct {
		name   string
		params grid.WidthParams
		want   map[string]int
	}{
		{
			name:   "minimums when nothing else is set",
			params: grid.WidthParams{ContainerWidth: 0},
			want:   map[string]int{"a": 120, "b": 120, "c": 300},
		},
		{
			name: "preference beats minimum when larger",
			params: grid.WidthParams{
				ContainerWidth: 0,
				Preferred:      map[string]int{"a": 180},
			},
			want: map[string]int{"a": 180, "b": 120, "c": 300},
		},
		{
			name: "preference below minimum clamps up",
			params: grid.WidthParams{
				ContainerWidth: 0,
				Preferred:      map[string]int{"a": 40},
			},
			want: map[string]int{"a": 120, "b": 120, "c": 300},
		},
		{
			name: "override beats preference and configured width",
			params: grid.WidthParams{
				ContainerWidth: 0,
				Preferred:      map[string]int{"c": 500},
				Overrides:      map[string]int{"c": 250},
			},
			want: map[string]int{"a": 120, "b": 120, "c": 250},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grid.ComputeWidths(cols, tt.params)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestComputeWidthsReservations(t *testing.T) {
	cols := []grid.Column{
		{Key: "a", Type: grid.ColumnText},
		{Key: "b", Type: grid.ColumnText},
	}

	// 64 padding + 50 checkbox + 100 actions leaves 480 for 240 of base
	// width, doubling each column.
	got := grid.ComputeWidths(cols, grid.WidthParams{
		ContainerWidth: 694,
		ShowCheckboxes: true,
		HasRowActions:  true,
	})
	require.Equal(t, map[string]int{"a": 240, "b": 240}, got)

	// Without the reservations the same container leaves 630.
	got = grid.ComputeWidths(cols, grid.WidthParams{ContainerWidth: 694})
	require.Equal(t, map[string]int{"a": 315, "b": 315}, got)
}

func TestComputeWidthsRemainderIsProportional(t *testing.T) {
	cols := []grid.Column{
		{Key: "narrow", Type: grid.ColumnExpandableCount}, // min 90
		{Key: "wide", Type: grid.ColumnDateTimeRange},     // min 200
	}

	// available = 644 - 64 = 580, base total = 290, remainder = 290.
	got := grid.ComputeWidths(cols, grid.WidthParams{ContainerWidth: 644})
	require.Equal(t, 180, got["narrow"])
	require.Equal(t, 400, got["wide"])
	require.Greater(t, got["wide"]-200, got["narrow"]-90,
		"wider columns receive more of the remainder")
}

func TestComputeWidthsOverflowNeverShrinksBelowMinimum(t *testing.T) {
	cols := []grid.Column{
		{Key: "a", Type: grid.ColumnDateTimeRange},
		{Key: "b", Type: grid.ColumnDateTimeRange},
		{Key: "c", Type: grid.ColumnDateTimeRange},
	}

	got := grid.ComputeWidths(cols, grid.WidthParams{ContainerWidth: 200})
	for key, w := range got {
		require.GreaterOrEqual(t, w, 200, "column %s shrank below its minimum", key)
	}
}

func TestComputeWidthsEmptyColumnSet(t *testing.T) {
	got := grid.ComputeWidths(nil, grid.WidthParams{ContainerWidth: 1200})
	require.Empty(t, got)
}
