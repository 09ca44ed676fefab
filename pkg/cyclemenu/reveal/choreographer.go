// Package reveal plans and runs the staggered rotation that fans the menu
// items out on open and folds them back on close.
package reveal

import (
	"log/slog"
	"time"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/layout"
)

// rollAngle is the rotation an item starts from when rolling in and ends at
// when rolling out.
const rollAngle = 100.0

// Timing holds the durations used by the roll animations.
type Timing struct {
	Roll         time.Duration
	CloseStagger time.Duration
	Overshoot    int
}

// DefaultTiming returns the stock roll timing.
func DefaultTiming() Timing {
	return Timing{
		Roll:         constants.DefaultRollDuration,
		CloseStagger: constants.DefaultCloseStagger,
		Overshoot:    constants.DefaultOvershoot,
	}
}

// Phase is one rotation segment of an item.
type Phase struct {
	From        float64
	To          float64
	Duration    time.Duration
	StartOffset time.Duration
	Ease        Ease
}

// Plan is the rotation path of one visible item. The pivot is the arc corner
// expressed relative to the item's top left corner. Phases run one after
// another, each waiting its own StartOffset after the previous one ends.
type Plan struct {
	Index  int
	PivotX float64
	PivotY float64
	Phases []Phase
}

// End is the time from the start of the animation until the plan's last
// phase ends.
func (p Plan) End() time.Duration {
	var total time.Duration
	for _, ph := range p.Phases {
		total += ph.StartOffset + ph.Duration
	}
	return total
}

func pivot(corner constants.Corner, r layout.Rect, width, height int) (float64, float64) {
	x := float64(-r.Left)
	y := float64(-r.Top)
	if corner.IsRightSide() {
		x = float64(width - r.Left)
	}
	if corner.IsBottomSide() {
		y = float64(height - r.Top)
	}
	return x, y
}

// clockwiseRoll reports whether items of corner arrive from a negative angle.
func clockwiseRoll(corner constants.Corner) bool {
	return corner == constants.CornerTopLeft || corner == constants.CornerBottomRight
}

// PlanOpen computes the roll-in of the visible items, given in arc order.
// Each item swings from a fixed start angle past its resting place by an
// overshoot that grows with its index, then settles back. The settle phases
// are staggered in reverse order so all items come to rest together.
func PlanOpen(corner constants.Corner, rects []layout.Rect, width, height int, marginAngle float64, timing Timing) []Plan {
	n := len(rects)
	if n == 0 {
		return nil
	}
	startOffset := timing.Roll / time.Duration(n)

	plans := make([]Plan, 0, n)
	for i, r := range rects {
		start := rollAngle
		overshoot := float64(i+timing.Overshoot) * marginAngle * 2
		if clockwiseRoll(corner) {
			start = -rollAngle
		} else {
			overshoot = -overshoot
		}

		px, py := pivot(corner, r, width, height)
		plans = append(plans, Plan{
			Index:  i,
			PivotX: px,
			PivotY: py,
			Phases: []Phase{
				{
					From:        start,
					To:          overshoot,
					Duration:    timing.Roll,
					StartOffset: startOffset * time.Duration(i) / 2,
					Ease:        EaseDecelerate,
				},
				{
					From:        overshoot,
					To:          0,
					Duration:    time.Duration(i+timing.Overshoot) * startOffset / 2,
					StartOffset: time.Duration(n-1-i) * startOffset / 2,
					Ease:        EaseLinear,
				},
			},
		})
	}
	return plans
}

// PlanClose computes the roll-out of the visible items. The last item starts
// first and every earlier one follows after CloseStagger.
func PlanClose(corner constants.Corner, rects []layout.Rect, width, height int, timing Timing) []Plan {
	n := len(rects)
	plans := make([]Plan, 0, n)
	for i, r := range rects {
		to := rollAngle
		if clockwiseRoll(corner) {
			to = -rollAngle
		}
		px, py := pivot(corner, r, width, height)
		plans = append(plans, Plan{
			Index:  i,
			PivotX: px,
			PivotY: py,
			Phases: []Phase{{
				From:        0,
				To:          to,
				Duration:    timing.Roll,
				StartOffset: timing.CloseStagger * time.Duration(n-1-i),
				Ease:        EaseDecelerate,
			}},
		})
	}
	return plans
}

// Choreographer runs plans on a Scheduler.
type Choreographer struct {
	scheduler *Scheduler
	logger    *slog.Logger
}

// NewChoreographer returns a Choreographer on scheduler. A nil logger discards.
func NewChoreographer(scheduler *Scheduler, logger *slog.Logger) *Choreographer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Choreographer{scheduler: scheduler, logger: logger}
}

// Run starts every plan. apply receives the rotation of an item on every
// tick. done is called once, after the last phase of every plan completed;
// with no plans it is called before Run returns. Starting a new run cancels
// the rotations of the previous one, whose done is then never called.
func (c *Choreographer) Run(plans []Plan, apply func(index int, angle float64), done func()) {
	if len(plans) == 0 {
		done()
		return
	}

	remaining := len(plans)
	finish := func() {
		remaining--
		if remaining == 0 {
			c.logger.Debug("Roll animation complete", "items", len(plans))
			done()
		}
	}

	for _, p := range plans {
		c.scheduler.Start(chain(p, apply, finish))
	}
}

// Cancel stops every item rotation and leaves the items where they are.
func (c *Choreographer) Cancel() {
	c.scheduler.CancelProperty(PropertyRotation)
}

// chain links the phases of p into one tween sequence.
func chain(p Plan, apply func(int, float64), finish func()) Tween {
	index := p.Index
	var next *Tween
	for i := len(p.Phases) - 1; i >= 0; i-- {
		ph := p.Phases[i]
		t := Tween{
			Key:         Key{Target: index, Property: PropertyRotation},
			From:        ph.From,
			To:          ph.To,
			Duration:    ph.Duration,
			StartOffset: ph.StartOffset,
			Ease:        ph.Ease,
			OnTick:      func(v float64) { apply(index, v) },
			Next:        next,
		}
		if i == len(p.Phases)-1 {
			t.OnComplete = finish
		}
		next = &t
	}
	return *next
}
