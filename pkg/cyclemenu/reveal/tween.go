package reveal

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Property names the value a tween drives.
type Property int

const (
	PropertyRotation Property = iota
	PropertyCircleRadius
	PropertyShadow
	PropertyCornerRotation
	PropertyRippleRadius
	PropertyRippleAlpha
)

func (p Property) String() string {
	switch p {
	case PropertyRotation:
		return "rotation"
	case PropertyCircleRadius:
		return "circle-radius"
	case PropertyShadow:
		return "shadow"
	case PropertyCornerRotation:
		return "corner-rotation"
	case PropertyRippleRadius:
		return "ripple-radius"
	case PropertyRippleAlpha:
		return "ripple-alpha"
	default:
		return "unknown"
	}
}

// WidgetTarget is the target used for properties that belong to the widget
// rather than to an item.
const WidgetTarget = -1

// Key identifies one animated value. At most one tween runs per key.
type Key struct {
	Target   int
	Property Property
}

// Ease selects the interpolation curve.
type Ease int

const (
	EaseLinear Ease = iota
	EaseDecelerate
	EaseAccelerate
	EaseOvershoot
)

func (e Ease) fn() ease.TweenFunc {
	switch e {
	case EaseDecelerate:
		return ease.OutQuad
	case EaseAccelerate:
		return ease.InQuad
	case EaseOvershoot:
		return ease.OutBack
	default:
		return ease.Linear
	}
}

// Tween animates one value from From to To after waiting StartOffset.
// OnTick receives From as soon as the tween is started and every
// interpolated value after that. Next, if set, is started when this tween
// completes.
type Tween struct {
	Key         Key
	From        float64
	To          float64
	Duration    time.Duration
	StartOffset time.Duration
	Ease        Ease
	OnTick      func(value float64)
	OnComplete  func()
	Next        *Tween
}

type running struct {
	tween     Tween
	waited    time.Duration
	curve     *gween.Tween
	cancelled bool
	done      bool
}

// Scheduler advances tweens from the host's frame loop.
// It is not safe for concurrent use.
type Scheduler struct {
	active map[Key]*running
	order  []*running
}

// NewScheduler returns an idle Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{active: make(map[Key]*running)}
}

// Start runs t, cancelling whatever tween currently drives the same key.
// The cancelled tween's OnComplete is not called.
func (s *Scheduler) Start(t Tween) {
	s.Cancel(t.Key)

	r := &running{tween: t}
	if t.Duration > 0 {
		r.curve = gween.New(float32(t.From), float32(t.To), float32(t.Duration.Seconds()), t.Ease.fn())
	}
	s.active[t.Key] = r
	s.order = append(s.order, r)

	if t.OnTick != nil {
		t.OnTick(t.From)
	}
}

// Cancel stops the tween running on key. It reports whether one was running.
func (s *Scheduler) Cancel(key Key) bool {
	r, ok := s.active[key]
	if !ok {
		return false
	}
	r.cancelled = true
	delete(s.active, key)
	return true
}

// CancelProperty stops every tween driving p.
func (s *Scheduler) CancelProperty(p Property) {
	for key := range s.active {
		if key.Property == p {
			s.Cancel(key)
		}
	}
}

// CancelAll stops every tween without completing any of them.
func (s *Scheduler) CancelAll() {
	for key := range s.active {
		s.Cancel(key)
	}
}

// Running reports whether a tween drives key.
func (s *Scheduler) Running(key Key) bool {
	_, ok := s.active[key]
	return ok
}

// Len is the number of tweens that have not finished.
func (s *Scheduler) Len() int {
	return len(s.active)
}

// Advance moves every tween forward by dt. Tweens started from callbacks
// during Advance begin on the next call.
func (s *Scheduler) Advance(dt time.Duration) {
	snapshot := make([]*running, len(s.order))
	copy(snapshot, s.order)

	for _, r := range snapshot {
		if r.cancelled || r.done {
			continue
		}
		s.advance(r, dt)
	}

	kept := s.order[:0]
	for _, r := range s.order {
		if !r.cancelled && !r.done {
			kept = append(kept, r)
		}
	}
	clear(s.order[len(kept):])
	s.order = kept
}

func (s *Scheduler) advance(r *running, dt time.Duration) {
	t := r.tween

	if r.waited < t.StartOffset {
		r.waited += dt
		if r.waited <= t.StartOffset {
			return
		}
		dt = r.waited - t.StartOffset
	}

	value, finished := t.To, true
	if r.curve != nil {
		v, f := r.curve.Update(float32(dt.Seconds()))
		value, finished = float64(v), f
	}
	if finished {
		value = t.To
	}

	if t.OnTick != nil {
		t.OnTick(value)
	}
	if !finished || r.cancelled {
		return
	}

	r.done = true
	if s.active[t.Key] == r {
		delete(s.active, t.Key)
	}
	if t.OnComplete != nil {
		t.OnComplete()
	}
	if t.Next != nil {
		s.Start(*t.Next)
	}
}
