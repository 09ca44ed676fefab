package layout

import (
	"math"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

// ScrollBy rotates the arc by delta pixels reported on axis and returns the
// part of delta that was consumed, in the caller's sign convention. Near the
// ends of a bounded range less than delta is consumed. Large deltas are
// applied one item pitch at a time so the end items get attached before they
// are clamped against.
func (e *Engine) ScrollBy(delta int, axis Axis) int {
	if !e.scrollEnabled || len(e.slots) == 0 || delta == 0 {
		return 0
	}
	if e.enough == AvailabilityNo {
		return 0
	}
	width, height := e.viewport.Size()
	if !ValidViewport(width, height) || e.geometry.Radius <= 0 {
		return 0
	}

	e.hasPending = false
	if e.enough == AvailabilityUnknown {
		e.enough = AvailabilityYes
	}

	if axis == AxisHorizontal && !e.horizontalMatchesVertical() {
		return -e.scrollSteps(-delta, width, height)
	}
	return e.scrollSteps(delta, width, height)
}

// horizontalMatchesVertical reports whether a horizontal drag moves the arc in
// the same direction as a vertical one of the same sign.
func (e *Engine) horizontalMatchesVertical() bool {
	return e.corner == constants.CornerTopRight || e.corner == constants.CornerBottomLeft
}

func (e *Engine) scrollSteps(delta, width, height int) int {
	pitch := max(1, int(e.geometry.Pitch()))
	sign := 1
	if delta < 0 {
		sign = -1
	}

	consumed := 0
	remaining := delta
	for remaining != 0 && len(e.slots) > 0 {
		step := sign * min(remaining*sign, pitch)
		got := e.scrollStep(step, width, height)
		consumed += got
		if got != step {
			break
		}
		remaining -= step
	}
	return consumed
}

// scrollStep rotates every attached item by the clamped delta, moves the live
// views by the resulting pixel difference and refills the arc.
func (e *Engine) scrollStep(delta, width, height int) int {
	forward := delta
	if e.corner.IsBottomSide() {
		forward = -delta
	}

	clamped := e.checkEndsReached(forward, width, height)
	if clamped == 0 {
		return 0
	}

	angleDelta := 360.0 * float64(-clamped) / e.geometry.CircleLength()
	for _, s := range e.slots {
		angle := e.angles[s.raw] + angleDelta
		e.angles[s.raw] = angle

		centerX := float64(s.rect.Right) - float64(s.rect.Width())/2.0
		centerY := float64(s.rect.Top) + float64(s.rect.Height())/2.0
		newX, newY := Center(e.corner, e.geometry.Radius, angle, width, height)

		dx := int(math.Round(newX - centerX))
		dy := int(math.Round(newY - centerY))
		s.rect = s.rect.Offset(dx, dy)
		s.view.Offset(dx, dy)
	}

	e.fill()

	if e.corner.IsBottomSide() {
		return -clamped
	}
	return clamped
}

// checkEndsReached limits dy so the first and last items of a bounded range
// cannot travel past the stop margin. Positive dy reveals earlier raw indices,
// negative dy later ones. The result never has the opposite sign of dy.
func (e *Engine) checkEndsReached(dy, width, height int) int {
	if !e.bounded() {
		return dy
	}
	if len(e.slots) == 0 {
		return 0
	}

	count := e.adapter.Count()
	first := e.slots[0]
	last := e.slots[len(e.slots)-1]
	half := e.geometry.HalfMargin

	switch {
	case dy < 0:
		if last.raw < count-1 {
			return dy
		}
		var room int
		if e.corner.IsBottomSide() {
			room = height - half - last.rect.Bottom
		} else {
			room = last.rect.Top - half
		}
		return max(min(room, 0), dy)
	case dy > 0:
		if first.raw > 0 {
			return dy
		}
		var room int
		if e.corner.IsLeftSide() {
			room = half - first.rect.Left
		} else {
			room = first.rect.Right + half - width
		}
		return min(max(room, 0), dy)
	}
	return 0
}
