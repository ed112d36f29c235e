// Package slide eases a horizontal offset toward a target, one bounded step per frame.
package slide

const (
	// MaxStep is the most the offset moves in one frame.
	MaxStep = 16
	// divisor controls how quickly the step shrinks as the offset closes on its target.
	divisor = 4
)

// Slide is the offset of an icon strip relative to the centre of the display. Zero is the idle position, with the
// first icon centred.
type Slide struct {
	X int16
}

// Target is the offset at which the icon at index selected is centred, for icons spaced spacing pixels apart.
func Target(selected int, spacing int16) int16 {
	return -spacing * int16(selected)
}

// StepSize is how far the offset moves in one frame when it is distance pixels from the target.
func StepSize(distance int16) int16 {
	if distance < 0 {
		distance = -distance
	}
	if distance == 0 {
		return 0
	}
	s := distance/divisor + 1
	if s > MaxStep {
		s = MaxStep
	}
	return s
}

// Step moves the offset one frame toward target. It returns false once the offset has settled on target.
func (s *Slide) Step(target int16) bool {
	switch {
	case s.X < target:
		s.X += StepSize(target - s.X)
		if s.X > target {
			s.X = target
		}
	case s.X > target:
		s.X -= StepSize(s.X - target)
		if s.X < target {
			s.X = target
		}
	default:
		return false
	}
	return true
}

// Reset returns the offset to the idle position.
func (s *Slide) Reset() {
	s.X = 0
}
