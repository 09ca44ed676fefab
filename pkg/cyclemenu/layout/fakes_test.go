package layout

import "github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"

type fakeView struct {
	raw       int
	size      int
	rect      Rect
	attached  bool
	destroyed bool
}

func (v *fakeView) Measure() (int, int) { return v.size, v.size }
func (v *fakeView) Layout(r Rect) { v.rect = r }
func (v *fakeView) Offset(dx, dy int) { v.rect = v.rect.Offset(dx, dy) }
func (v *fakeView) Attach() { v.attached = true }
func (v *fakeView) Detach() { v.attached = false }
func (v *fakeView) Destroy() { v.destroyed = true }

// fakeAdapter hands out views from a free list the way a host pool would.
type fakeAdapter struct {
	count    int
	size     int
	free     []*fakeView
	obtained int
	recycled int
	live     map[*fakeView]bool
}

func newFakeAdapter(count, size int) *fakeAdapter {
	return &fakeAdapter{count: count, size: size, live: make(map[*fakeView]bool)}
}

func (a *fakeAdapter) Count() int { return a.count }

func (a *fakeAdapter) Obtain(raw int) View {
	a.obtained++
	var v *fakeView
	if n := len(a.free); n > 0 {
		v = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		v = &fakeView{}
	}
	v.raw = raw
	v.size = a.size
	a.live[v] = true
	return v
}

func (a *fakeAdapter) Recycle(v View) {
	fv := v.(*fakeView)
	a.recycled++
	delete(a.live, fv)
	a.free = append(a.free, fv)
}

func newTestEngine(corner constants.Corner, count int, mode constants.ScrollMode) (*Engine, *fakeAdapter) {
	adapter := newFakeAdapter(count, 50)
	e := NewEngine(corner, adapter, ViewportSize{Width: 300, Height: 300})
	e.SetScrollMode(mode)
	e.SetScrollEnabled(true)
	e.Layout()
	return e, adapter
}
