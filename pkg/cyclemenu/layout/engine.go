package layout

import (
	"log/slog"
	"math"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

// NoPosition is returned by CurrentPosition when nothing is attached.
const NoPosition = math.MinInt

// Availability is the tri-state answer to "are there enough items to scroll".
type Availability int

const (
	AvailabilityUnknown Availability = iota
	AvailabilityYes
	AvailabilityNo
)

func (a Availability) String() string {
	switch a {
	case AvailabilityYes:
		return "yes"
	case AvailabilityNo:
		return "no"
	default:
		return "unknown"
	}
}

// Engine places the items of an Adapter along an arc pivoting around one corner
// of a Viewport. Only the items that intersect the viewport are attached; the
// rest are handed back to the adapter.
//
// An Engine is not safe for concurrent use. All calls are expected to come
// from the goroutine that drives the host's frame loop.
type Engine struct {
	corner   constants.Corner
	adapter  Adapter
	viewport Viewport
	logger   *slog.Logger

	mode          constants.ScrollMode
	scrollEnabled bool
	scaleFactor   float64
	radiusShrink  float64

	geometry Geometry
	measured bool

	slots  []*slot
	angles map[int]float64
	enough Availability

	pendingRaw    int
	hasPending    bool
	pendingOffset float64
	hasOffset     bool
}

// NewEngine creates an engine for the given corner. The engine does nothing
// until Layout is called with a valid viewport.
func NewEngine(corner constants.Corner, adapter Adapter, viewport Viewport) *Engine {
	return &Engine{
		corner:       corner,
		adapter:      adapter,
		viewport:     viewport,
		logger:       slog.New(slog.DiscardHandler),
		scaleFactor:  constants.DefaultScaleFactor,
		radiusShrink: constants.DefaultRadiusShrink,
		angles:       make(map[int]float64),
	}
}

// SetLogger replaces the logger. A nil logger is ignored.
func (e *Engine) SetLogger(logger *slog.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// SetScaleFactor changes the spacing inflation. Values below 1 are ignored
// since they would let neighbouring items overlap. Takes effect on the next Layout.
func (e *Engine) SetScaleFactor(f float64) {
	if f >= 1 {
		e.scaleFactor = f
	}
}

// SetRadiusShrink changes the fraction of the item size the arc is pulled in by.
// Takes effect on the next Layout.
func (e *Engine) SetRadiusShrink(f float64) {
	if f >= 0 {
		e.radiusShrink = f
	}
}

// SetScrollMode sets the effective scroll mode. Callers resolve it first.
func (e *Engine) SetScrollMode(mode constants.ScrollMode) {
	e.mode = mode
}

// ScrollMode returns the effective scroll mode.
func (e *Engine) ScrollMode() constants.ScrollMode {
	return e.mode
}

// SetScrollEnabled gates ScrollBy. A disabled engine consumes nothing.
func (e *Engine) SetScrollEnabled(enabled bool) {
	e.scrollEnabled = enabled
}

// ScrollEnabled reports whether ScrollBy moves the arc.
func (e *Engine) ScrollEnabled() bool {
	return e.scrollEnabled
}

func (e *Engine) Corner() constants.Corner {
	return e.corner
}

// SetCorner switches the pivot corner. Every attached item is recycled and the
// arc is laid out again from the current position.
func (e *Engine) SetCorner(corner constants.Corner) {
	if corner == e.corner {
		return
	}
	e.corner = corner
	e.Layout()
}

// Geometry returns the arc computed by the last layout pass. The zero value
// is returned before the first item has been measured.
func (e *Engine) Geometry() Geometry {
	return e.geometry
}

// HasEnoughItems reports whether the bounded item range extends past the far
// viewport edge. It is latched by the first fill that reaches the last item.
func (e *Engine) HasEnoughItems() Availability {
	return e.enough
}

// CanScroll reports whether a scroll request would be honored at all.
func (e *Engine) CanScroll() bool {
	return e.scrollEnabled && e.enough != AvailabilityNo
}

// ScrollToPosition requests that the next layout from scratch starts at raw.
func (e *Engine) ScrollToPosition(raw int) {
	e.pendingRaw = raw
	e.hasPending = true
}

// SetAngleOffset requests that the next layout from scratch places its first
// item offset degrees clockwise from 90.
func (e *Engine) SetAngleOffset(offset float64) {
	e.pendingOffset = offset
	e.hasOffset = true
}

// CurrentPosition is the raw index of the first attached item, or NoPosition.
func (e *Engine) CurrentPosition() int {
	if len(e.slots) == 0 {
		return NoPosition
	}
	return e.slots[0].raw
}

// AngleOffset is the angle of the first attached item measured from 90 degrees.
func (e *Engine) AngleOffset() float64 {
	if len(e.slots) == 0 {
		return 0
	}
	return 90 - e.angles[e.slots[0].raw]
}

// Slots returns a snapshot of the attached items ordered by raw index.
func (e *Engine) Slots() []ViewSlot {
	out := make([]ViewSlot, 0, len(e.slots))
	for _, s := range e.slots {
		out = append(out, ViewSlot{RawIndex: s.raw, Angle: e.angles[s.raw], Rect: s.rect, View: s.view})
	}
	return out
}

// Len is the number of attached items.
func (e *Engine) Len() int {
	return len(e.slots)
}

// Layout recycles every attached item and lays the arc out from scratch. When
// items are attached and no explicit position was requested, the current
// position and angle offset carry over to the new pass.
func (e *Engine) Layout() {
	if len(e.slots) > 0 && !e.hasPending {
		e.pendingRaw = e.CurrentPosition()
		e.hasPending = true
		e.pendingOffset = e.AngleOffset()
		e.hasOffset = true
	}

	e.Reset()

	width, height := e.viewport.Size()
	if !ValidViewport(width, height) {
		e.logger.Debug("Skipping layout, viewport not ready", "width", width, "height", height)
		return
	}

	e.fill()
}

// Reset hands every attached item back to the adapter and forgets the arc
// geometry. Pending position requests survive.
func (e *Engine) Reset() {
	for _, s := range e.slots {
		s.view.Detach()
		e.adapter.Recycle(s.view)
	}
	e.slots = nil
	clear(e.angles)
	e.geometry = Geometry{}
	e.measured = false
	e.enough = AvailabilityUnknown
}

// Destroy releases every attached view for good.
func (e *Engine) Destroy() {
	for _, s := range e.slots {
		s.view.Detach()
		s.view.Destroy()
	}
	e.slots = nil
	clear(e.angles)
	e.measured = false
}

func (e *Engine) bounded() bool {
	return e.mode != constants.ScrollInfinite
}

// maxPerPass bounds a fill walk in infinite mode to one full turn of the circle.
func (e *Engine) maxPerPass() int {
	if e.geometry.AnglePerItem <= 0 {
		return 1
	}
	return int(360/e.geometry.AnglePerItem) + 1
}

// anchor is the first attached item that has not completely left the viewport
// through the corner facing edge.
func (e *Engine) anchor(width int) *slot {
	if len(e.slots) == 0 {
		return nil
	}
	for i, s := range e.slots {
		last := i == len(e.slots)-1
		if e.corner.IsLeftSide() {
			if s.rect.Right >= 0 || last {
				return s
			}
		} else if s.rect.Left <= width || last {
			return s
		}
	}
	return nil
}

// fill detaches everything, then walks outward from the anchor reattaching
// items that are still visible and obtaining new ones for the gaps. Whatever
// was not reclaimed goes back to the adapter.
func (e *Engine) fill() {
	width, height := e.viewport.Size()
	count := e.adapter.Count()

	previous := e.slots
	anchor := e.anchor(width)

	pool := make(map[int]*slot, len(previous))
	for _, s := range previous {
		pool[s.raw] = s
		s.view.Detach()
	}
	e.slots = nil

	if count > 0 {
		if anchor != nil {
			e.fillUp(anchor, pool, width, height, count)
			e.fillDown(anchor.raw, e.angles[anchor.raw], pool, width, height, count)
		} else {
			start := 0
			if e.hasPending {
				start = e.pendingRaw
			}
			e.fillDown(start, 90, pool, width, height, count)
			e.hasPending = false
			e.hasOffset = false
			if len(e.slots) > 0 {
				e.fillUp(e.slots[0], pool, width, height, count)
			}
		}
	}

	for _, s := range previous {
		if _, unclaimed := pool[s.raw]; !unclaimed {
			continue
		}
		delete(e.angles, s.raw)
		e.adapter.Recycle(s.view)
	}
}

// reuse reattaches a pooled item if one exists for raw.
func (e *Engine) reuse(raw int, pool map[int]*slot) *slot {
	s, ok := pool[raw]
	if !ok {
		return nil
	}
	delete(pool, raw)
	s.view.Attach()
	return s
}

// create obtains, measures and places a new view for raw. The arc geometry is
// derived from the first view measured in a pass, which may shift angle.
func (e *Engine) create(raw int, angle *float64, width, height int) *slot {
	v := e.adapter.Obtain(raw)
	itemW, itemH := v.Measure()

	if !e.measured {
		e.geometry = ComputeGeometry(itemH, min(width, height), e.scaleFactor, e.radiusShrink)
		e.measured = true
		if e.hasOffset {
			*angle -= e.pendingOffset
		} else {
			*angle -= e.geometry.AnglePerItem / 2.0
		}
		e.logger.Debug("Arc geometry computed",
			"radius", e.geometry.Radius,
			"anglePerItem", e.geometry.AnglePerItem,
			"marginAngle", e.geometry.MarginAngle)
	}

	e.angles[raw] = *angle
	r := Place(e.corner, e.geometry.Radius, *angle, width, height, itemW, itemH)
	v.Attach()
	v.Layout(r)
	return &slot{raw: raw, rect: r, view: v}
}

func (e *Engine) fillUp(anchor *slot, pool map[int]*slot, width, height, count int) {
	var canFillUp bool
	if e.corner.IsLeftSide() {
		canFillUp = anchor.rect.Left > 0
	} else {
		canFillUp = anchor.rect.Right < width
	}

	angle := e.angles[anchor.raw] + e.geometry.AnglePerItem
	var up []*slot
	for pos := anchor.raw - 1; canFillUp && (pos >= 0 || !e.bounded()); pos-- {
		if !e.bounded() && len(up) >= e.maxPerPass() {
			break
		}
		s := e.reuse(pos, pool)
		if s == nil {
			s = e.create(pos, &angle, width, height)
		}
		up = append(up, s)

		if e.corner.IsLeftSide() {
			canFillUp = s.rect.Left > 0
		} else {
			canFillUp = s.rect.Right < width
		}
		angle += e.geometry.AnglePerItem
	}

	if len(up) == 0 {
		return
	}
	slots := make([]*slot, 0, len(up)+len(e.slots))
	for i := len(up) - 1; i >= 0; i-- {
		slots = append(slots, up[i])
	}
	e.slots = append(slots, e.slots...)
}

func (e *Engine) fillDown(start int, angle float64, pool map[int]*slot, width, height, count int) {
	if e.bounded() && (start < 0 || start >= count) {
		e.logger.Debug("Start position out of range, using 0", "position", start, "count", count)
		start = 0
	}

	canFillDown := true
	placed := 0
	for pos := start; canFillDown && (pos < count || !e.bounded()); {
		if !e.bounded() && placed >= e.maxPerPass() {
			break
		}
		s := e.reuse(pos, pool)
		if s == nil {
			s = e.create(pos, &angle, width, height)
			if e.geometry.Radius <= 0 {
				e.logger.Warn("Viewport too small for the arc", "radius", e.geometry.Radius)
				s.view.Detach()
				e.adapter.Recycle(s.view)
				delete(e.angles, pos)
				return
			}
		}
		e.slots = append(e.slots, s)
		placed++

		if e.corner.IsTopSide() {
			canFillDown = s.rect.Top > 0
		} else {
			canFillDown = s.rect.Bottom < height
		}
		pos++
		if e.bounded() && pos == count && e.enough == AvailabilityUnknown {
			if canFillDown {
				e.enough = AvailabilityNo
			} else {
				e.enough = AvailabilityYes
			}
		}
		angle -= e.geometry.AnglePerItem
	}
}
