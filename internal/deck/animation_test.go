package deck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSliderStartsAtConfiguredState(t *testing.T) {
	open := newSlider(true, 40)
	require.Equal(t, 40, open.Value())
	require.True(t, open.IsExpanded())

	closed := newSlider(false, 40)
	require.Zero(t, closed.Value())
	require.False(t, closed.IsVisible())
}

func TestSliderAnimatesTowardTarget(t *testing.T) {
	s := newSlider(false, 100)
	s.Toggle()
	require.True(t, s.IsAnimating())

	mid := s.started.Add(AnimationDuration / 2)
	require.False(t, s.Step(mid))
	require.Greater(t, s.Value(), 0)
	require.Less(t, s.Value(), 100)

	done := s.started.Add(AnimationDuration + time.Millisecond)
	require.True(t, s.Step(done))
	require.Equal(t, 100, s.Value())
	require.True(t, s.IsExpanded())
}

func TestSliderToggleReverses(t *testing.T) {
	s := newSlider(true, 100)
	s.Toggle()
	require.True(t, s.Step(s.started.Add(AnimationDuration)))
	require.Zero(t, s.Value())
	require.False(t, s.IsVisible())
}

func TestSliderEasingDecelerates(t *testing.T) {
	require.InDelta(t, 0, easeOutCubic(0), 1e-9)
	require.InDelta(t, 1, easeOutCubic(1), 1e-9)

	// The first half of the animation covers most of the distance.
	require.Greater(t, easeOutCubic(0.5), 0.8)
}

func TestSliderSetExpandedSnapsWhenStable(t *testing.T) {
	s := newSlider(true, 100)
	s.SetExpanded(60)
	require.Equal(t, 60, s.Value())
	require.True(t, s.IsExpanded())

	collapsed := newSlider(false, 100)
	collapsed.SetExpanded(60)
	require.Zero(t, collapsed.Value())
}

func TestSliderForceSkipsAnimation(t *testing.T) {
	s := newSlider(false, 100)
	s.ForceExpand()
	require.Equal(t, 100, s.Value())
	require.False(t, s.IsAnimating())

	s.ForceCollapse()
	require.Zero(t, s.Value())
}
