package cyclemenu

import (
	"math"
	"time"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/layout"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/reveal"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/state"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/touch"
)

// cornerOpenRotation is the corner icon rotation while the menu is open,
// turning the plus into a cross.
const cornerOpenRotation = -45.0

// Background is the drawing state of the reveal circle and the corner button.
// Coordinates are relative to the widget.
type Background struct {
	CenterX        int // Corner point the circles are centered on
	CenterY        int
	CircleRadius   float64
	ShadowSize     float64
	CornerRotation float64
	RippleRadius   float64 // Never larger than CircleRadius
	RippleAlpha    float64 // 0 to 1
	CornerButton   layout.Rect
}

type background struct {
	circle      float64
	shadow      float64
	corner      float64
	ripple      float64
	rippleAlpha float64
	outer       int
	collapsed   int
}

type cornerGesture struct {
	active     bool
	outside    bool
	shouldOpen bool
}

// Background returns the current reveal parameters.
func (w *Widget) Background() Background {
	cx, cy := w.cornerPoint()
	return Background{
		CenterX:        cx,
		CenterY:        cy,
		CircleRadius:   w.bg.circle,
		ShadowSize:     w.bg.shadow,
		CornerRotation: w.bg.corner,
		RippleRadius:   math.Min(w.bg.circle, w.bg.ripple),
		RippleAlpha:    w.bg.rippleAlpha,
		CornerButton:   w.cornerButton(),
	}
}

func (w *Widget) cornerPoint() (int, int) {
	x, y := 0, 0
	if w.engine.Corner().IsRightSide() {
		x = w.hostW
	}
	if w.engine.Corner().IsBottomSide() {
		y = w.hostH
	}
	return x, y
}

func (w *Widget) cornerButton() layout.Rect {
	side := cornerButtonSide(w.bg.collapsed)
	cx, cy := w.cornerPoint()
	r := layout.Rect{Left: cx, Top: cy, Right: cx + side, Bottom: cy + side}
	if w.engine.Corner().IsRightSide() {
		r.Left, r.Right = cx-side, cx
	}
	if w.engine.Corner().IsBottomSide() {
		r.Top, r.Bottom = cy-side, cy
	}
	return r
}

func (w *Widget) inCornerButton(x, y float64) bool {
	return w.cornerButton().Contains(int(math.Floor(x)), int(math.Floor(y)))
}

func (w *Widget) minShadow() float64 {
	return float64(w.shadowSize) * constants.ShadowMinCoefficient
}

// widgetTween starts a tween on one of the widget level properties. done may be nil.
func (w *Widget) widgetTween(p reveal.Property, from, to float64, d time.Duration, ease reveal.Ease, target *float64, done func()) {
	w.scheduler.Start(reveal.Tween{
		Key:        reveal.Key{Target: reveal.WidgetTarget, Property: p},
		From:       from,
		To:         to,
		Duration:   d,
		Ease:       ease,
		OnTick:     func(v float64) { *target = v },
		OnComplete: done,
	})
}

func (w *Widget) cancelReveal() {
	w.choreo.Cancel()
	for _, p := range []reveal.Property{reveal.PropertyCircleRadius, reveal.PropertyShadow, reveal.PropertyCornerRotation} {
		w.scheduler.Cancel(reveal.Key{Target: reveal.WidgetTarget, Property: p})
	}
	w.revealed = nil
}

func (w *Widget) cancelRipple() {
	w.scheduler.Cancel(reveal.Key{Target: reveal.WidgetTarget, Property: reveal.PropertyRippleRadius})
	w.scheduler.Cancel(reveal.Key{Target: reveal.WidgetTarget, Property: reveal.PropertyRippleAlpha})
}

// animateOpen grows the circle, then rolls the items in. The machine
// completes once every item came to rest.
func (w *Widget) animateOpen() {
	w.layoutIfNeeded()
	w.cancelReveal()
	w.itemsShown = false

	w.widgetTween(reveal.PropertyCornerRotation, w.bg.corner, cornerOpenRotation, constants.DefaultCornerRotate, reveal.EaseOvershoot, &w.bg.corner, nil)
	w.widgetTween(reveal.PropertyShadow, w.minShadow(), float64(w.shadowSize), w.revealDuration, reveal.EaseDecelerate, &w.bg.shadow, nil)
	w.widgetTween(reveal.PropertyCircleRadius, float64(w.bg.collapsed), float64(w.bg.outer), w.revealDuration, reveal.EaseDecelerate, &w.bg.circle, w.rollIn)
}

func (w *Widget) rollIn() {
	w.itemsShown = true
	slots := w.engine.Slots()
	plans := reveal.PlanOpen(w.engine.Corner(), slotRects(slots), w.arc.Width, w.arc.Height, w.engine.Geometry().MarginAngle, w.timing)
	w.runRoll(slots, plans, func() {
		w.machine.Fire(state.TriggerComplete)
	})
}

// animateClose rolls the items out, then shrinks the circle.
func (w *Widget) animateClose() {
	w.layoutIfNeeded()
	w.cancelReveal()

	w.widgetTween(reveal.PropertyCornerRotation, w.bg.corner, 0, constants.DefaultCornerRotate, reveal.EaseOvershoot, &w.bg.corner, nil)

	slots := w.engine.Slots()
	plans := reveal.PlanClose(w.engine.Corner(), slotRects(slots), w.arc.Width, w.arc.Height, w.timing)
	w.runRoll(slots, plans, func() {
		w.itemsShown = false
		w.resetRotations()
		w.widgetTween(reveal.PropertyShadow, float64(w.shadowSize), w.minShadow(), w.revealDuration, reveal.EaseDecelerate, &w.bg.shadow, nil)
		w.widgetTween(reveal.PropertyCircleRadius, float64(w.bg.outer), float64(w.bg.collapsed), w.revealDuration, reveal.EaseDecelerate, &w.bg.circle, func() {
			w.machine.Fire(state.TriggerComplete)
		})
	})
}

func (w *Widget) runRoll(slots []layout.ViewSlot, plans []reveal.Plan, done func()) {
	w.revealed = slots
	w.choreo.Run(plans, func(i int, angle float64) {
		if i >= len(w.revealed) {
			return
		}
		if v, ok := w.revealed[i].View.(Visual); ok {
			v.SetRotation(angle, plans[i].PivotX, plans[i].PivotY)
		}
	}, func() {
		w.revealed = nil
		done()
	})
}

// settleOpen jumps to the open end state.
func (w *Widget) settleOpen() {
	w.layoutIfNeeded()
	w.cancelReveal()
	w.bg.circle = float64(w.bg.outer)
	w.bg.shadow = float64(w.shadowSize)
	w.bg.corner = cornerOpenRotation
	w.itemsShown = true
	w.resetRotations()
}

// settleClosed jumps to the closed end state.
func (w *Widget) settleClosed() {
	w.layoutIfNeeded()
	w.cancelReveal()
	w.bg.circle = float64(w.bg.collapsed)
	w.bg.shadow = w.minShadow()
	w.bg.corner = 0
	w.itemsShown = false
	w.resetRotations()
}

func (w *Widget) resetRotations() {
	for _, s := range w.engine.Slots() {
		if v, ok := s.View.(Visual); ok {
			v.SetRotation(0, 0, 0)
		}
	}
}

func slotRects(slots []layout.ViewSlot) []layout.Rect {
	rects := make([]layout.Rect, len(slots))
	for i, s := range slots {
		rects[i] = s.Rect
	}
	return rects
}

// handleCornerTouch runs the ripple of the corner button and toggles the
// menu on release. While the menu animates the button does not react.
func (w *Widget) handleCornerTouch(m touch.Motion) bool {
	w.cornerTouch.shouldOpen = false
	if !w.machine.Current().Steady() {
		w.cornerTouch.active = false
		return false
	}

	switch m.Action {
	case touch.ActionDown:
		w.cancelRipple()
		w.cornerTouch = cornerGesture{active: true}
		w.bg.rippleAlpha = 1
		w.startRipple(0, w.bg.circle)

	case touch.ActionMove:
		if !w.inCornerButton(m.X, m.Y) {
			w.cornerTouch.outside = true
		}

	case touch.ActionUp, touch.ActionCancel:
		if m.Action == touch.ActionCancel {
			w.cornerTouch.outside = true
		}
		w.cancelRipple()

		switch {
		case w.cornerTouch.outside:
			w.startRipple(w.bg.circle, 0)
		case int(w.bg.circle) == int(w.bg.ripple):
			w.bg.ripple = float64(w.bg.outer)
			w.Toggle()
		default:
			w.startRipple(w.bg.ripple, float64(w.bg.outer))
			if w.machine.Current() == state.Closed {
				w.cornerTouch.shouldOpen = true
			} else {
				w.Toggle()
			}
		}

		w.widgetTween(reveal.PropertyRippleAlpha, 1, 0, constants.DefaultRippleFadeOut, reveal.EaseLinear, &w.bg.rippleAlpha, nil)
		w.cornerTouch.active = false
	}
	return true
}

// startRipple animates the ripple radius. A pending open fires once the
// ripple covers the collapsed circle.
func (w *Widget) startRipple(from, to float64) {
	w.scheduler.Start(reveal.Tween{
		Key:      reveal.Key{Target: reveal.WidgetTarget, Property: reveal.PropertyRippleRadius},
		From:     from,
		To:       to,
		Duration: constants.DefaultRippleDuration,
		Ease:     reveal.EaseDecelerate,
		OnTick: func(v float64) {
			w.bg.ripple = v
			if w.cornerTouch.shouldOpen && v >= float64(w.bg.collapsed) {
				w.cornerTouch.shouldOpen = false
				w.Toggle()
			}
		},
	})
}
