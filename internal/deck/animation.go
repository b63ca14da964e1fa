package deck

import "time"

// Animation timing.
const (
	// AnimationDuration is how long a panel expand/collapse takes.
	AnimationDuration = 180 * time.Millisecond

	// AnimationFrame is the tick interval while animating.
	AnimationFrame = 16 * time.Millisecond
)

// slider animates a panel dimension between zero and an expanded size.
// It is only touched from the Update goroutine, so it carries no lock.
type slider struct {
	current  int
	target   int
	expanded int
	started  time.Time
}

func newSlider(open bool, expanded int) *slider {
	s := &slider{expanded: expanded}
	if open {
		s.current = expanded
		s.target = expanded
	}
	return s
}

// Toggle flips the animation target between expanded and collapsed.
func (s *slider) Toggle() {
	s.started = time.Now()
	if s.target == 0 {
		s.target = s.expanded
	} else {
		s.target = 0
	}
}

// Step advances the animation to the given wall-clock time and reports
// whether it has finished.
func (s *slider) Step(now time.Time) bool {
	if s.current == s.target {
		return true
	}
	progress := float64(now.Sub(s.started)) / float64(AnimationDuration)
	if progress >= 1 {
		s.current = s.target
		s.started = time.Time{}
		return true
	}

	eased := easeOutCubic(progress)
	if s.current < s.target {
		s.current = int(eased * float64(s.expanded))
	} else {
		s.current = int((1 - eased) * float64(s.expanded))
	}
	return false
}

// SetExpanded updates the expanded size, snapping if currently stable at
// the old expanded size.
func (s *slider) SetExpanded(size int) {
	stable := s.target > 0 && s.current == s.target
	s.expanded = size
	if s.target > 0 {
		s.target = size
	}
	if stable {
		s.current = size
	}
}

func (s *slider) Value() int       { return s.current }
func (s *slider) IsVisible() bool  { return s.current > 0 }
func (s *slider) IsAnimating() bool { return s.current != s.target }
func (s *slider) IsExpanded() bool { return s.target > 0 && s.current == s.target }

// ForceExpand snaps to the expanded size without animating.
//
// Intended for tests that need to skip animation.
func (s *slider) ForceExpand() {
	s.current = s.expanded
	s.target = s.expanded
	s.started = time.Time{}
}

// ForceCollapse snaps to zero without animating.
func (s *slider) ForceCollapse() {
	s.current = 0
	s.target = 0
	s.started = time.Time{}
}

// easeOutCubic maps t in [0, 1] to [0, 1] with deceleration near the end.
func easeOutCubic(t float64) float64 {
	// (t-1)^3 + 1
	return (t-1)*(t-1)*(t-1) + 1
}
