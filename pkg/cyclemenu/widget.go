package cyclemenu

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/internal"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/layout"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/reveal"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/state"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/touch"
)

// Widget is a circular menu anchored at one corner of its host area.
//
// A Widget is driven from a single goroutine. The host reports its size with
// SetSize, feeds input through HandleTouch and HandleButton, advances time
// with Frame and reads notifications from Events.
type Widget struct {
	id     string
	logger *slog.Logger

	items     *ItemCollection
	adapter   *itemAdapter
	arc       *layout.ViewportSize
	engine    *layout.Engine
	machine   *state.Machine
	scheduler *reveal.Scheduler
	choreo    *reveal.Choreographer
	router    *touch.Router
	dpad      *internal.DirectionalInput
	events    chan Event

	needsRelayout *atomic.Bool
	attached      bool
	initialized   bool

	hostW, hostH   int
	arcLeft        int
	arcTop         int
	scrollMode     constants.ScrollMode
	radius         RadiusConfig
	effective      RadiusConfig
	scaleFactor    float64
	shadowSize     int
	itemSize       int
	touchSlop      float64
	timing         reveal.Timing
	revealDuration time.Duration

	position       int
	hasPosition    bool
	angleOffset    float64
	hasAngleOffset bool

	bg          background
	itemsShown  bool
	revealed    []layout.ViewSlot
	cornerTouch cornerGesture

	elapsed    time.Duration
	pressing   bool
	pressStart time.Duration
}

// NewWidget creates a closed menu at corner over items. Visuals for the items
// are created with factory as the arc needs them.
func NewWidget(corner constants.Corner, items *ItemCollection, factory VisualFactory) (*Widget, error) {
	if !corner.IsValid() {
		return nil, invalidArgument("corner", "must be one of the four corners")
	}
	if items == nil {
		return nil, invalidArgument("items", "must not be nil")
	}
	if factory == nil {
		return nil, invalidArgument("factory", "must not be nil")
	}

	id := uuid.NewString()
	w := &Widget{
		id:             id,
		logger:         internal.GetInternalLogger().With("widget", id),
		items:          items,
		adapter:        newItemAdapter(items, factory),
		arc:            &layout.ViewportSize{},
		scheduler:      reveal.NewScheduler(),
		dpad:           internal.NewDirectionalInput(),
		events:         make(chan Event, constants.DefaultEventBuffer),
		needsRelayout:  atomic.NewBool(true),
		attached:       true,
		scrollMode:     constants.ScrollBounded,
		radius:         RadiusConfig{Mode: constants.RadiusAuto, Collapsed: constants.DefaultCollapsedRadius},
		scaleFactor:    constants.DefaultScaleFactor,
		shadowSize:     constants.DefaultShadowSize,
		touchSlop:      constants.DefaultTouchSlop,
		timing:         reveal.DefaultTiming(),
		revealDuration: constants.DefaultRevealDuration,
		position:       layout.NoPosition,
	}

	w.adapter.onClick = w.visualClicked
	items.onChange = w.itemsChanged

	w.engine = layout.NewEngine(corner, w.adapter, w.arc)
	w.engine.SetLogger(w.logger)
	w.machine = state.New().OnTransition(w.onTransition)
	w.choreo = reveal.NewChoreographer(w.scheduler, w.logger)
	w.router = touch.NewRouter(w.engine, w.touchSlop)

	w.bg.collapsed = w.radius.Collapsed
	w.bg.circle = float64(w.radius.Collapsed)
	w.bg.shadow = w.minShadow()

	w.logger.Debug("Widget created", "corner", corner.String(), "items", items.Len())
	return w, nil
}

// ID returns the identifier stamped on every event of this widget.
func (w *Widget) ID() string { return w.id }

// Events returns the channel notifications are delivered on. Events are
// dropped when the channel is full.
func (w *Widget) Events() <-chan Event { return w.events }

// Items returns the collection the menu shows.
func (w *Widget) Items() *ItemCollection { return w.items }

// State returns the current open/close state.
func (w *Widget) State() state.State { return w.machine.Current() }

// SetLogger replaces the widget's logger.
func (w *Widget) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w.logger = logger.With("widget", w.id)
	w.engine.SetLogger(w.logger)
}

func (w *Widget) invalidate() {
	w.needsRelayout.Store(true)
}

func (w *Widget) itemsChanged() {
	w.logger.Debug("Items changed", "count", w.items.Len())
	w.initialized = false
	w.invalidate()
}

// SetSize reports the size of the host area the widget covers.
func (w *Widget) SetSize(width, height int) {
	if width == w.hostW && height == w.hostH {
		return
	}
	w.hostW, w.hostH = width, height
	w.invalidate()
}

// Size returns the host size last reported with SetSize.
func (w *Widget) Size() (int, int) { return w.hostW, w.hostH }

// Corner returns the corner the arc pivots around.
func (w *Widget) Corner() constants.Corner { return w.engine.Corner() }

// SetCorner moves the menu to another corner and lays it out again.
func (w *Widget) SetCorner(corner constants.Corner) error {
	if !corner.IsValid() {
		return invalidArgument("corner", "must be one of the four corners")
	}
	w.engine.SetCorner(corner)
	w.invalidate()
	return nil
}

// ScrollMode returns the effective mode once laid out, the requested one before.
func (w *Widget) ScrollMode() constants.ScrollMode {
	if w.initialized {
		return w.engine.ScrollMode()
	}
	return w.scrollMode
}

// SetScrollMode requests a scroll mode. Infinite mode falls back to bounded
// when all items fit on the arc.
func (w *Widget) SetScrollMode(mode constants.ScrollMode) {
	w.scrollMode = mode
	w.initialized = false
	w.invalidate()
}

// Radius returns the configured radius bounds.
func (w *Widget) Radius() RadiusConfig { return w.radius }

// SetRadiusMode switches between the item count driven and the fixed radius.
func (w *Widget) SetRadiusMode(mode constants.RadiusMode) {
	w.radius.Mode = mode
	w.invalidate()
}

// SetAutoMinRadius sets the smallest radius auto mode picks.
func (w *Widget) SetAutoMinRadius(r int) {
	w.radius.AutoMin = r
	w.invalidate()
}

// SetAutoMaxRadius sets the largest radius. Zero means the host size.
func (w *Widget) SetAutoMaxRadius(r int) {
	w.radius.AutoMax = r
	w.invalidate()
}

// SetFixedRadius sets the radius used in fixed mode.
func (w *Widget) SetFixedRadius(r int) {
	w.radius.Fixed = r
	w.invalidate()
}

// SetCollapsedRadius sets the radius of the closed circle. Values that are not
// below the current outer bound are ignored.
func (w *Widget) SetCollapsedRadius(r int) {
	limit := w.effective.AutoMax
	if w.radius.Mode == constants.RadiusFixed {
		limit = w.radius.Fixed
	} else if limit <= 0 {
		limit = w.radius.AutoMax
	}
	if r <= 0 || (limit > 0 && r >= limit) {
		w.logger.Debug("Collapsed radius ignored", "radius", r, "limit", limit)
		return
	}

	w.radius.Collapsed = r
	w.bg.collapsed = r
	if w.machine.Current() == state.Closed {
		w.bg.circle = float64(r)
	}
	w.invalidate()
}

// SetScaleFactor sets the spacing between items relative to their size.
// Values below 1 are ignored.
func (w *Widget) SetScaleFactor(f float64) {
	if f < 1 {
		return
	}
	w.scaleFactor = f
	w.itemSize = 0
	w.engine.SetScaleFactor(f)
	w.invalidate()
}

// SetRadiusShrink sets the share of the arc size the item path runs on.
func (w *Widget) SetRadiusShrink(f float64) {
	w.engine.SetRadiusShrink(f)
	w.invalidate()
}

// SetShadowSize sets the width of the shadow around the open circle.
func (w *Widget) SetShadowSize(px int) {
	if px < 0 {
		return
	}
	w.shadowSize = px
	if w.machine.Current() == state.Open {
		w.bg.shadow = float64(px)
	} else {
		w.bg.shadow = w.minShadow()
	}
	w.invalidate()
}

// SetTouchSlop sets the distance a finger travels before a drag scrolls.
func (w *Widget) SetTouchSlop(px float64) {
	w.touchSlop = px
	w.router = touch.NewRouter(w.engine, px)
}

// SetTiming replaces the roll timing of the items.
func (w *Widget) SetTiming(t reveal.Timing) { w.timing = t }

// SetRevealDuration sets how long the circle takes to grow or shrink.
func (w *Widget) SetRevealDuration(d time.Duration) {
	if d > 0 {
		w.revealDuration = d
	}
}

// CurrentPosition returns the raw index of the first attached item, or the
// saved one while detached.
func (w *Widget) CurrentPosition() int {
	if pos := w.engine.CurrentPosition(); pos != layout.NoPosition {
		return pos
	}
	if w.hasPosition {
		return w.position
	}
	return layout.NoPosition
}

// SetCurrentPosition makes raw the first item on the next initialization.
func (w *Widget) SetCurrentPosition(raw int) {
	if raw == layout.NoPosition {
		return
	}
	w.position, w.hasPosition = raw, true
	w.initialized = false
	w.invalidate()
}

// AngleOffset returns the angle of the first attached item, or the saved one
// while detached.
func (w *Widget) AngleOffset() float64 {
	if w.engine.CurrentPosition() == layout.NoPosition && w.hasAngleOffset {
		return w.angleOffset
	}
	return w.engine.AngleOffset()
}

// SetAngleOffset sets the angle of the first item on the next initialization.
func (w *Widget) SetAngleOffset(offset float64) {
	w.angleOffset, w.hasAngleOffset = offset, true
	w.engine.SetAngleOffset(offset)
	w.initialized = false
	w.invalidate()
}

// ArcBounds returns the square the items are laid out in, in widget coordinates.
func (w *Widget) ArcBounds() layout.Rect {
	return layout.Rect{Left: w.arcLeft, Top: w.arcTop, Right: w.arcLeft + w.arc.Width, Bottom: w.arcTop + w.arc.Height}
}

// Slots returns the attached items. Rects are relative to ArcBounds.
func (w *Widget) Slots() []layout.ViewSlot { return w.engine.Slots() }

// ItemsVisible reports whether the items are drawn.
func (w *Widget) ItemsVisible() bool { return w.itemsShown }

// Geometry returns the arc parameters of the last layout.
func (w *Widget) Geometry() layout.Geometry { return w.engine.Geometry() }

// HasEnoughItems reports whether the arc holds more items than fit.
func (w *Widget) HasEnoughItems() layout.Availability { return w.engine.HasEnoughItems() }

// Frame advances the widget by dt. It lays the arc out when needed, repeats
// held directions and steps the animations.
func (w *Widget) Frame(dt time.Duration) {
	if !w.attached {
		return
	}
	w.elapsed += dt

	w.layoutIfNeeded()
	if dir := w.dpad.Update(dt); dir != internal.DirectionNone {
		w.stepButton(dir.VirtualButton())
	}
	w.scheduler.Advance(dt)
}

func (w *Widget) layoutIfNeeded() {
	if w.attached && w.needsRelayout.CompareAndSwap(true, false) {
		w.relayout()
	}
}

func (w *Widget) relayout() {
	if w.itemSize <= 0 {
		iw, ih := w.adapter.probe()
		w.itemSize = int(float64(max(iw, ih)) * w.scaleFactor)
	}

	size, effective := arcSize(w.hostW, w.hostH, w.shadowSize, w.itemSize, w.items.Len(), w.radius)
	w.effective = effective
	w.arc.Width, w.arc.Height = size, size
	w.arcLeft, w.arcTop = 0, 0
	if w.engine.Corner().IsRightSide() {
		w.arcLeft = w.hostW - size
	}
	if w.engine.Corner().IsBottomSide() {
		w.arcTop = w.hostH - size
	}

	w.bg.outer = size
	w.bg.collapsed = w.radius.Collapsed
	if w.machine.Current() == state.Open && !w.scheduler.Running(reveal.Key{Target: reveal.WidgetTarget, Property: reveal.PropertyCircleRadius}) {
		w.bg.circle = float64(size)
	}

	if !layout.ValidViewport(size, size) {
		w.logger.Debug("Layout deferred until the host is measured", "width", w.hostW, "height", w.hostH)
		return
	}

	if !w.initialized {
		capacity := layout.VisibleCapacity(size, w.itemSize)
		mode := layout.ResolveScrollMode(w.scrollMode, w.items.Len(), capacity)
		w.engine.SetScrollMode(mode)
		if w.hasPosition {
			w.engine.ScrollToPosition(w.position)
			w.hasPosition = false
		}
		if w.hasAngleOffset {
			w.engine.SetAngleOffset(w.angleOffset)
			w.hasAngleOffset = false
		}
		w.initialized = true
		w.logger.Debug("Arc initialized", "size", size, "itemSize", w.itemSize, "capacity", capacity, "mode", mode.String())
	}

	w.engine.Layout()
}

// Open opens the menu. Without animation the menu must be closed.
func (w *Widget) Open(animated bool) {
	if animated {
		w.machine.Fire(state.TriggerOpen)
		return
	}
	w.machine.Fire(state.TriggerOpenNow)
}

// Close closes the menu. Without animation the menu must be open.
func (w *Widget) Close(animated bool) {
	if animated {
		w.machine.Fire(state.TriggerClose)
		return
	}
	w.machine.Fire(state.TriggerCloseNow)
}

// Toggle opens a closed menu and closes an open one with animation.
func (w *Widget) Toggle() {
	switch w.machine.Current() {
	case state.Closed:
		w.Open(true)
	case state.Open:
		w.Close(true)
	}
}

func (w *Widget) onTransition(t state.Transition) {
	w.logger.Debug("State transition",
		"from", t.From.String(),
		"to", t.To.String(),
		"trigger", t.Trigger.String(),
		"forced", t.Forced,
		"superseded", t.Superseded)

	w.engine.SetScrollEnabled(t.To == state.Open)
	w.emit(Event{Kind: EventStateChanged, State: t.To, Forced: t.Forced})

	switch t.To {
	case state.Opening:
		w.animateOpen()
	case state.Closing:
		w.animateClose()
	case state.Open:
		if t.Forced {
			w.settleOpen()
		} else if !t.Superseded {
			w.emit(Event{Kind: EventOpenComplete})
		}
	case state.Closed:
		if t.Forced {
			w.settleClosed()
		} else if !t.Superseded {
			w.emit(Event{Kind: EventCloseComplete})
		}
	}
}

// Attach prepares the widget for being shown again after Detach. The saved
// position is restored on the next Frame.
func (w *Widget) Attach() {
	w.initialized = false
	w.attached = true
	w.invalidate()
}

// Detach saves the scroll position, finishes running animations and releases
// the attached items. An EventStateSaved carries the saved values.
func (w *Widget) Detach() {
	if !w.attached {
		return
	}

	pos, offset := w.engine.CurrentPosition(), w.engine.AngleOffset()
	w.emit(Event{Kind: EventStateSaved, Position: pos, AngleOffset: offset})
	if pos != layout.NoPosition {
		w.position, w.hasPosition = pos, true
		w.angleOffset, w.hasAngleOffset = offset, true
	}

	w.machine.Fire(state.TriggerTeardown)
	w.scheduler.CancelAll()
	w.router.Handle(touch.Motion{Action: touch.ActionCancel})
	w.cornerTouch = cornerGesture{}
	w.pressing = false
	w.dpad.Reset()
	w.engine.Reset()
	w.attached = false
	w.logger.Debug("Widget detached", "position", pos, "angleOffset", offset)
}

// Destroy releases every visual. The widget must not be used afterwards.
func (w *Widget) Destroy() {
	w.scheduler.CancelAll()
	w.engine.Destroy()
	w.adapter.destroy()
	w.attached = false
}

// ScrollBy rotates the arc by a drag delta in pixels, positive for a finger
// moving up and left. It returns the consumed parts.
func (w *Widget) ScrollBy(dx, dy int) (int, int) {
	var cx, cy int
	if dy != 0 {
		cy = w.engine.ScrollBy(dy, layout.AxisVertical)
	}
	if dx != 0 {
		cx = w.engine.ScrollBy(dx, layout.AxisHorizontal)
	}
	return cx, cy
}

// HandleTouch routes a pointer sample given in widget coordinates and reports
// whether the widget used it.
func (w *Widget) HandleTouch(m touch.Motion) bool {
	if !w.attached {
		return false
	}
	if w.cornerTouch.active || (m.Action == touch.ActionDown && w.inCornerButton(m.X, m.Y)) {
		return w.handleCornerTouch(m)
	}
	if !w.itemsShown {
		return false
	}

	res := w.router.Handle(m)
	if res.ScrollX != 0 || res.ScrollY != 0 {
		w.ScrollBy(res.ScrollX, res.ScrollY)
	}

	used := res.Claim
	switch m.Action {
	case touch.ActionDown:
		w.pressing = true
		w.pressStart = w.elapsed
		used = used || w.slotAt(m.X, m.Y) != nil
	case touch.ActionUp:
		if w.pressing && !res.Intercept {
			long := w.elapsed-w.pressStart >= constants.DefaultLongPress
			used = w.TapAt(m.X, m.Y, long) || used
		}
		w.pressing = false
	case touch.ActionCancel:
		w.pressing = false
	}
	return used
}

// TapAt clicks the item under the point, given in widget coordinates. It
// reports whether an item was hit.
func (w *Widget) TapAt(x, y float64, long bool) bool {
	if w.machine.Current() != state.Open || !w.itemsShown {
		return false
	}
	s := w.slotAt(x, y)
	if s == nil {
		return false
	}
	w.itemClicked(s.RawIndex, long)
	return true
}

func (w *Widget) slotAt(x, y float64) *layout.ViewSlot {
	ax := int(math.Floor(x)) - w.arcLeft
	ay := int(math.Floor(y)) - w.arcTop
	slots := w.engine.Slots()
	for i := range slots {
		if slots[i].Rect.Contains(ax, ay) {
			return &slots[i]
		}
	}
	return nil
}

func (w *Widget) visualClicked(raw int, long bool) {
	if w.machine.Current() != state.Open || !w.itemsShown {
		return
	}
	w.itemClicked(raw, long)
}

func (w *Widget) itemClicked(raw int, long bool) {
	if w.items.Len() == 0 {
		return
	}
	item := w.items.At(raw)
	kind := EventItemClicked
	if long {
		kind = EventItemLongClicked
	}
	w.logger.Debug("Item clicked", "id", item.ID, "raw", raw, "long", long)
	w.emit(Event{
		Kind:     kind,
		ItemID:   item.ID,
		RawIndex: raw,
		Index:    layout.Wrap(raw, w.items.Len()),
	})
}

// HandleButton feeds a controller button. Directions scroll by one item and
// repeat while held, A toggles the menu and B closes it.
func (w *Widget) HandleButton(button constants.VirtualButton, pressed bool) {
	if !w.attached {
		return
	}
	if w.dpad.SetHeld(button, pressed) {
		if pressed {
			w.stepButton(button)
		}
		return
	}
	if !pressed {
		return
	}

	switch button {
	case constants.VirtualButtonA:
		w.Toggle()
	case constants.VirtualButtonB:
		if w.machine.Current() == state.Open {
			w.Close(true)
		}
	}
}

func (w *Widget) stepButton(button constants.VirtualButton) {
	if !w.engine.CanScroll() {
		return
	}
	pitch := int(math.Round(w.engine.Geometry().Pitch()))
	switch button {
	case constants.VirtualButtonDown, constants.VirtualButtonRight:
		w.engine.ScrollBy(pitch, layout.AxisVertical)
	case constants.VirtualButtonUp, constants.VirtualButtonLeft:
		w.engine.ScrollBy(-pitch, layout.AxisVertical)
	}
}

// StateLabel returns the current state in lang for accessibility output.
func (w *Widget) StateLabel(lang string) string {
	t, err := internal.GetTranslator()
	if err != nil {
		w.logger.Error("Unable to load translations", "error", err)
		return w.machine.Current().String()
	}

	id := internal.MessageStateClosed
	switch w.machine.Current() {
	case state.Opening:
		id = internal.MessageStateOpening
	case state.Open:
		id = internal.MessageStateOpen
	case state.Closing:
		id = internal.MessageStateClosing
	}
	return t.Translate(lang, id, nil)
}

// ItemLabel describes the item with the given id in lang. It returns an empty
// string for unknown ids.
func (w *Widget) ItemLabel(lang string, id int) string {
	idx := w.items.Index(id)
	if idx < 0 {
		return ""
	}
	t, err := internal.GetTranslator()
	if err != nil {
		w.logger.Error("Unable to load translations", "error", err)
		return w.items.At(idx).Title
	}
	return t.Translate(lang, internal.MessageItemLabel, map[string]any{
		"Title":    w.items.At(idx).Title,
		"Position": idx + 1,
		"Count":    w.items.Len(),
	})
}
