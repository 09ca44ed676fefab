// Package touch decides which drag gestures belong to the arc.
package touch

import (
	"math"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/layout"
)

// Action is the phase of a pointer gesture.
type Action int

const (
	ActionDown Action = iota
	ActionMove
	ActionUp
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Motion is one pointer sample in viewport coordinates.
type Motion struct {
	Action Action
	X      float64
	Y      float64
}

// Gate reports whether the arc currently accepts scrolling.
// *layout.Engine satisfies it.
type Gate interface {
	ScrollEnabled() bool
	HasEnoughItems() layout.Availability
}

// Result tells the caller what to do with a Motion.
type Result struct {
	// Claim keeps the gesture away from the surrounding container.
	Claim bool
	// Intercept keeps the gesture away from the items because it is a drag.
	Intercept bool
	// ScrollX and ScrollY are the deltas to feed to the arc. Positive values
	// follow the finger moving left and up.
	ScrollX int
	ScrollY int
}

// Router turns pointer motion into scroll deltas once a drag passes the slop.
type Router struct {
	gate Gate
	slop float64

	tracking bool
	dragging bool
	downX    float64
	downY    float64
	lastX    float64
	lastY    float64
	restX    float64
	restY    float64
}

// NewRouter creates a router. A slop of zero or less uses DefaultTouchSlop.
func NewRouter(gate Gate, slop float64) *Router {
	if slop <= 0 {
		slop = constants.DefaultTouchSlop
	}
	return &Router{gate: gate, slop: slop}
}

// Dragging reports whether the current gesture has turned into a scroll.
func (r *Router) Dragging() bool {
	return r.dragging
}

// Handle routes one motion sample.
func (r *Router) Handle(m Motion) Result {
	if !r.gate.ScrollEnabled() {
		r.reset()
		return Result{}
	}
	if r.gate.HasEnoughItems() == layout.AvailabilityNo {
		r.reset()
		return Result{Claim: true}
	}

	switch m.Action {
	case ActionDown:
		r.tracking = true
		r.dragging = false
		r.downX, r.downY = m.X, m.Y
		r.lastX, r.lastY = m.X, m.Y
		r.restX, r.restY = 0, 0
		return Result{}

	case ActionMove:
		if !r.tracking {
			return Result{}
		}
		if !r.dragging {
			if math.Hypot(m.X-r.downX, m.Y-r.downY) <= r.slop {
				return Result{}
			}
			r.dragging = true
		}
		return r.scroll(m)

	case ActionUp, ActionCancel:
		wasDragging := r.dragging
		r.reset()
		return Result{Claim: wasDragging, Intercept: wasDragging}
	}
	return Result{}
}

// scroll converts the finger travel since the last sample into whole pixel
// deltas and keeps the fractional rest for the next sample.
func (r *Router) scroll(m Motion) Result {
	dx := r.lastX - m.X + r.restX
	dy := r.lastY - m.Y + r.restY
	r.lastX, r.lastY = m.X, m.Y

	sx := int(dx)
	sy := int(dy)
	r.restX = dx - float64(sx)
	r.restY = dy - float64(sy)

	return Result{Claim: true, Intercept: true, ScrollX: sx, ScrollY: sy}
}

func (r *Router) reset() {
	r.tracking = false
	r.dragging = false
	r.restX, r.restY = 0, 0
}
