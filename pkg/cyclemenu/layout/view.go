package layout

// Rect is an integer rectangle in viewport coordinates. Right and Bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns the vertical extent of r.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Offset returns r moved by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Placeable is a visual that can be measured and positioned.
type Placeable interface {
	// Measure returns the intrinsic size of the visual.
	Measure() (width, height int)
	// Layout places the visual at r.
	Layout(r Rect)
	// Offset moves an already placed visual without measuring it again.
	Offset(dx, dy int)
}

// Recyclable is a visual whose attachment to the viewport is managed by the engine.
type Recyclable interface {
	Attach()
	Detach()
	Destroy()
}

// View is the engine's handle on a host visual.
type View interface {
	Placeable
	Recyclable
}

// Adapter supplies views for raw indices and takes back the ones the engine
// no longer needs.
type Adapter interface {
	// Count is the real number of items. Raw indices are reduced modulo Count
	// in infinite mode.
	Count() int
	// Obtain returns a view bound to the item at rawIndex. The view may be a
	// previously recycled one.
	Obtain(rawIndex int) View
	// Recycle hands a view the engine dropped back to the host.
	Recycle(v View)
}

// Viewport reports the current size of the arc area. Sizes of zero or less
// mean the host has not been measured yet.
type Viewport interface {
	Size() (width, height int)
}

// ViewportSize is a fixed size Viewport.
type ViewportSize struct {
	Width  int
	Height int
}

// Size returns the stored width and height.
func (v ViewportSize) Size() (int, int) {
	return v.Width, v.Height
}

// Axis is the direction a scroll delta was reported on.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// ViewSlot is a snapshot of one attached item.
type ViewSlot struct {
	RawIndex int
	Angle    float64
	Rect     Rect
	View     View
}

// slot is the live attachment record of a view.
type slot struct {
	raw  int
	rect Rect
	view View
}
