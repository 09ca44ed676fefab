package cyclemenu

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/internal"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/layout"
)

// Visual is the host's representation of one item button.
type Visual interface {
	layout.View
	// Bind shows item on the visual. Recycled visuals are bound again.
	Bind(item MenuItem, rawIndex int)
	// SetRotation rotates the visual by angle degrees around the pivot,
	// given relative to its top left corner.
	SetRotation(angle, pivotX, pivotY float64)
}

// ClickSource is implemented by visuals that detect clicks themselves.
// The widget installs a handler when the visual is created.
type ClickSource interface {
	SetClickHandler(fn func(long bool))
}

// VisualFactory creates a new, unbound visual.
type VisualFactory func() Visual

// itemAdapter hands visuals to the layout engine and keeps released ones for
// reuse.
type itemAdapter struct {
	items   *ItemCollection
	factory VisualFactory
	free    []Visual
	bound   map[Visual]int
	onClick func(raw int, long bool)
}

func newItemAdapter(items *ItemCollection, factory VisualFactory) *itemAdapter {
	return &itemAdapter{
		items:   items,
		factory: factory,
		bound:   make(map[Visual]int),
	}
}

func (a *itemAdapter) Count() int {
	return a.items.Len()
}

func (a *itemAdapter) Obtain(raw int) layout.View {
	v := a.take()
	v.Bind(a.items.At(raw), raw)
	v.SetRotation(0, 0, 0)
	a.bound[v] = raw
	return v
}

func (a *itemAdapter) Recycle(v layout.View) {
	visual, ok := v.(Visual)
	if !ok {
		return
	}
	delete(a.bound, visual)
	a.free = append(a.free, visual)
}

// take returns a free visual or creates one.
func (a *itemAdapter) take() Visual {
	if n := len(a.free); n > 0 {
		v := a.free[n-1]
		a.free = a.free[:n-1]
		return v
	}

	v := a.factory()
	if cs, ok := v.(ClickSource); ok {
		cs.SetClickHandler(func(long bool) {
			if raw, bound := a.bound[v]; bound && a.onClick != nil {
				a.onClick(raw, long)
			}
		})
	}
	return v
}

// probe measures a visual without binding it. The visual goes to the free list.
func (a *itemAdapter) probe() (int, int) {
	v := a.take()
	a.free = append(a.free, v)
	return v.Measure()
}

// destroy releases every free visual for good.
func (a *itemAdapter) destroy() {
	for _, v := range a.free {
		v.Destroy()
	}
	a.free = nil
}

// IconVisual is a round button showing an item icon. It is the visual the
// SDL host knows how to draw.
type IconVisual struct {
	size   int
	logger *slog.Logger

	rect      layout.Rect
	attached  bool
	destroyed bool

	item     MenuItem
	rawIndex int
	icon     *image.RGBA
	iconRef  string

	rotation float64
	pivotX   float64
	pivotY   float64
}

// IconVisualFactory creates IconVisuals of the given diameter.
func IconVisualFactory(size int) VisualFactory {
	return func() Visual { return NewIconVisual(size) }
}

func NewIconVisual(size int) *IconVisual {
	if size <= 0 {
		size = constants.DefaultItemSize
	}
	return &IconVisual{size: size, logger: internal.GetInternalLogger()}
}

func (v *IconVisual) Measure() (int, int) {
	return v.size, v.size
}

func (v *IconVisual) Layout(r layout.Rect) {
	v.rect = r
}

func (v *IconVisual) Offset(dx, dy int) {
	v.rect = v.rect.Offset(dx, dy)
}

func (v *IconVisual) Attach() {
	v.attached = true
}

func (v *IconVisual) Detach() {
	v.attached = false
}

func (v *IconVisual) Destroy() {
	v.attached = false
	v.destroyed = true
	v.icon = nil
}

// Bind rasterizes the item icon at half the button size. A failing icon is
// logged and the button is drawn without one.
func (v *IconVisual) Bind(item MenuItem, rawIndex int) {
	v.item = item
	v.rawIndex = rawIndex
	if item.Icon == v.iconRef && v.icon != nil {
		return
	}

	v.iconRef = item.Icon
	v.icon = nil
	if item.Icon == "" {
		return
	}

	c := internal.GetTheme().IconColor
	img, err := internal.RasterizeIcon(item.Icon, v.size/2, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	if err != nil {
		v.logger.Warn("Failed to rasterize item icon", "error", NewInfrastructureError("rasterize_icon", err), "item", item.ID)
		return
	}
	v.icon = img
}

func (v *IconVisual) SetRotation(angle, pivotX, pivotY float64) {
	v.rotation, v.pivotX, v.pivotY = angle, pivotX, pivotY
}

// Rect is the placement in arc coordinates.
func (v *IconVisual) Rect() layout.Rect {
	return v.rect
}

func (v *IconVisual) Attached() bool {
	return v.attached
}

func (v *IconVisual) Destroyed() bool {
	return v.destroyed
}

// Item returns the bound item and its raw index.
func (v *IconVisual) Item() (MenuItem, int) {
	return v.item, v.rawIndex
}

// Icon is the rendered icon, or nil.
func (v *IconVisual) Icon() *image.RGBA {
	return v.icon
}

// Rotation returns the reveal rotation and its pivot.
func (v *IconVisual) Rotation() (angle, pivotX, pivotY float64) {
	return v.rotation, v.pivotX, v.pivotY
}
