package layout

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

var allCorners = []constants.Corner{
	constants.CornerTopLeft,
	constants.CornerTopRight,
	constants.CornerBottomLeft,
	constants.CornerBottomRight,
}

// towardEnd is the sign of a vertical delta that reveals later raw indices.
func towardEnd(corner constants.Corner) int {
	if corner.IsBottomSide() {
		return 1
	}
	return -1
}

// assertArc checks the slot invariants that must hold after any operation.
func assertArc(t *testing.T, e *Engine, adapter *fakeAdapter) {
	t.Helper()

	slots := e.Slots()
	seen := make(map[int]bool, len(slots))
	for i, s := range slots {
		require.False(t, seen[s.RawIndex], "raw index %d attached twice", s.RawIndex)
		seen[s.RawIndex] = true

		v := s.View.(*fakeView)
		assert.Equal(t, s.RawIndex, v.raw)
		assert.Equal(t, s.Rect, v.rect)
		assert.True(t, v.attached, "slot %d is not attached", s.RawIndex)

		if i == 0 {
			continue
		}
		prev := slots[i-1]
		require.Equal(t, prev.RawIndex+1, s.RawIndex, "slots are not contiguous")
		assert.InDelta(t, e.Geometry().AnglePerItem, prev.Angle-s.Angle, 1e-9)
	}
	assert.Len(t, adapter.live, len(slots))
}

func TestComputeGeometry(t *testing.T) {
	t.Parallel()

	g := ComputeGeometry(50, 300, 1.3, 0.8)
	assert.Equal(t, 260, g.Radius)
	assert.Equal(t, 7, g.HalfMargin)
	assert.InDelta(t, 14.3239, g.AnglePerItem, 1e-4)
	assert.InDelta(t, 1.6528, g.MarginAngle, 1e-4)
	assert.InDelta(t, 65.0, g.Pitch(), 1e-9)

	tooSmall := ComputeGeometry(50, 30, 1.3, 0.8)
	assert.LessOrEqual(t, tooSmall.Radius, 0)
	assert.Zero(t, tooSmall.AnglePerItem)
}

func TestPlaceMirrorsPerCorner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		corner constants.Corner
		want   Rect
	}{
		{constants.CornerTopLeft, Rect{Left: 90, Top: -10, Right: 110, Bottom: 10}},
		{constants.CornerTopRight, Rect{Left: 190, Top: -10, Right: 210, Bottom: 10}},
		{constants.CornerBottomLeft, Rect{Left: 90, Top: 190, Right: 110, Bottom: 210}},
		{constants.CornerBottomRight, Rect{Left: 190, Top: 190, Right: 210, Bottom: 210}},
	}

	for _, tt := range tests {
		t.Run(tt.corner.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Place(tt.corner, 100, 0, 300, 200, 20, 20))
		})
	}

	x, y := Center(constants.CornerTopRight, 100, 90, 300, 200)
	assert.InDelta(t, 300, x, 1e-9)
	assert.InDelta(t, 100, y, 1e-9)

	x, y = Center(constants.CornerBottomLeft, 100, 90, 300, 200)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 100, y, 1e-9)
}

func TestVisibleCapacityAndScrollMode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 6, VisibleCapacity(260, 65))
	assert.Zero(t, VisibleCapacity(0, 65))
	assert.Zero(t, VisibleCapacity(260, 0))

	assert.Equal(t, constants.ScrollBounded, ResolveScrollMode(constants.ScrollInfinite, 3, 6))
	assert.Equal(t, constants.ScrollBounded, ResolveScrollMode(constants.ScrollInfinite, 6, 6))
	assert.Equal(t, constants.ScrollInfinite, ResolveScrollMode(constants.ScrollInfinite, 7, 6))
	assert.Equal(t, constants.ScrollBounded, ResolveScrollMode(constants.ScrollBounded, 100, 6))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Wrap(0, 20))
	assert.Equal(t, 19, Wrap(-1, 20))
	assert.Equal(t, 19, Wrap(-21, 20))
	assert.Equal(t, 0, Wrap(40, 20))
	assert.Equal(t, 3, Wrap(23, 20))
	assert.Zero(t, Wrap(5, 0))
}

func TestLayoutFiveItemsTopRight(t *testing.T) {
	t.Parallel()

	e, adapter := newTestEngine(constants.CornerTopRight, 5, constants.ScrollBounded)

	g := e.Geometry()
	assert.Equal(t, 260, g.Radius)
	assert.InDelta(t, 14.3239, g.AnglePerItem, 1e-4)

	slots := e.Slots()
	require.Len(t, slots, 5)
	assert.Equal(t, Rect{Left: 243, Top: 232, Right: 293, Bottom: 282}, slots[0].Rect)
	assert.Equal(t, Rect{Left: 41, Top: 87, Right: 91, Bottom: 137}, slots[4].Rect)
	assert.Equal(t, 300-g.HalfMargin, slots[0].Rect.Right)
	assert.InDelta(t, 90-g.AnglePerItem/2, slots[0].Angle, 1e-9)

	// Every item fits, so the range is latched as not scrollable.
	assert.Equal(t, AvailabilityNo, e.HasEnoughItems())
	assert.False(t, e.CanScroll())
	assert.Equal(t, 5, adapter.obtained)
	assertArc(t, e, adapter)
}

func TestShortListConsumesNothing(t *testing.T) {
	t.Parallel()

	e, adapter := newTestEngine(constants.CornerTopRight, 3, constants.ScrollBounded)
	before := e.Slots()

	assert.Zero(t, e.ScrollBy(1_000_000, AxisVertical))
	assert.Zero(t, e.ScrollBy(-1_000_000, AxisHorizontal))
	assert.Equal(t, before, e.Slots())
	assertArc(t, e, adapter)
}

func TestScrollStopsAtBothEnds(t *testing.T) {
	t.Parallel()

	for _, corner := range allCorners {
		t.Run(corner.String(), func(t *testing.T) {
			e, adapter := newTestEngine(corner, 20, constants.ScrollBounded)
			half := e.Geometry().HalfMargin
			require.Equal(t, AvailabilityUnknown, e.HasEnoughItems())

			// Already resting at the start.
			assert.Zero(t, e.ScrollBy(-towardEnd(corner)*1000, AxisVertical))

			requested := towardEnd(corner) * 100_000
			consumed := e.ScrollBy(requested, AxisVertical)
			assert.NotEqual(t, requested, consumed)
			assert.NotZero(t, consumed)
			assert.Equal(t, AvailabilityYes, e.HasEnoughItems())
			assertArc(t, e, adapter)

			slots := e.Slots()
			last := slots[len(slots)-1]
			require.Equal(t, 19, last.RawIndex)
			if corner.IsTopSide() {
				assert.InDelta(t, half, last.Rect.Top, 1)
			} else {
				assert.InDelta(t, 300-half, last.Rect.Bottom, 1)
			}

			back := e.ScrollBy(-requested, AxisVertical)
			assert.InDelta(t, -consumed, back, 2)
			assertArc(t, e, adapter)

			first := e.Slots()[0]
			require.Equal(t, 0, first.RawIndex)
			if corner.IsLeftSide() {
				assert.InDelta(t, half, first.Rect.Left, 1)
			} else {
				assert.InDelta(t, 300-half, first.Rect.Right, 1)
			}
		})
	}
}

func TestRandomScrollsKeepInvariants(t *testing.T) {
	t.Parallel()

	for _, corner := range allCorners {
		t.Run(corner.String(), func(t *testing.T) {
			e, adapter := newTestEngine(corner, 20, constants.ScrollBounded)
			half := e.Geometry().HalfMargin
			rng := rand.New(rand.NewPCG(1, uint64(corner)))

			for range 500 {
				axis := AxisVertical
				if rng.IntN(2) == 1 {
					axis = AxisHorizontal
				}
				e.ScrollBy(rng.IntN(801)-400, axis)
				assertArc(t, e, adapter)

				slots := e.Slots()
				first, last := slots[0], slots[len(slots)-1]
				if first.RawIndex == 0 {
					if corner.IsLeftSide() {
						assert.LessOrEqual(t, first.Rect.Left, half+1)
					} else {
						assert.GreaterOrEqual(t, first.Rect.Right, 300-half-1)
					}
				}
				// The last item enters from the far edge and may never
				// travel past its resting point at the stop margin.
				if last.RawIndex == 19 {
					if corner.IsTopSide() {
						assert.LessOrEqual(t, last.Rect.Top, half+1)
					} else {
						assert.GreaterOrEqual(t, last.Rect.Bottom, 300-half-1)
					}
				}
			}
			assert.Equal(t, adapter.obtained-adapter.recycled, e.Len())
		})
	}
}

func TestInfiniteScrollConsumesEverything(t *testing.T) {
	t.Parallel()

	for _, corner := range allCorners {
		t.Run(corner.String(), func(t *testing.T) {
			e, adapter := newTestEngine(corner, 20, constants.ScrollInfinite)
			rng := rand.New(rand.NewPCG(7, uint64(corner)))
			minRaw := e.CurrentPosition()

			for range 300 {
				axis := AxisVertical
				if rng.IntN(2) == 1 {
					axis = AxisHorizontal
				}
				delta := rng.IntN(801) - 400
				assert.Equal(t, delta, e.ScrollBy(delta, axis))
				assertArc(t, e, adapter)
				minRaw = min(minRaw, e.CurrentPosition())
				assert.LessOrEqual(t, e.Len(), e.maxPerPass()*2)
			}
			assert.Negative(t, minRaw, "wraparound never reached negative raw indices")
		})
	}
}

func TestHorizontalDeltaIsMirrored(t *testing.T) {
	t.Parallel()

	vertical, _ := newTestEngine(constants.CornerTopLeft, 20, constants.ScrollBounded)
	horizontal, _ := newTestEngine(constants.CornerTopLeft, 20, constants.ScrollBounded)

	assert.Equal(t, -30, vertical.ScrollBy(-30, AxisVertical))
	assert.Equal(t, 30, horizontal.ScrollBy(30, AxisHorizontal))
	assert.Equal(t, rects(vertical.Slots()), rects(horizontal.Slots()))

	vertical, _ = newTestEngine(constants.CornerTopRight, 20, constants.ScrollBounded)
	horizontal, _ = newTestEngine(constants.CornerTopRight, 20, constants.ScrollBounded)

	assert.Equal(t, -30, vertical.ScrollBy(-30, AxisVertical))
	assert.Equal(t, -30, horizontal.ScrollBy(-30, AxisHorizontal))
	assert.Equal(t, rects(vertical.Slots()), rects(horizontal.Slots()))
}

func rects(slots []ViewSlot) []Rect {
	out := make([]Rect, len(slots))
	for i, s := range slots {
		out[i] = s.Rect
	}
	return out
}

func assertRectsNear(t *testing.T, want, got []ViewSlot) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].RawIndex, got[i].RawIndex)
		assert.InDelta(t, want[i].Angle, got[i].Angle, 1e-9)
		assert.InDelta(t, want[i].Rect.Left, got[i].Rect.Left, 1)
		assert.InDelta(t, want[i].Rect.Top, got[i].Rect.Top, 1)
		assert.InDelta(t, want[i].Rect.Right, got[i].Rect.Right, 1)
		assert.InDelta(t, want[i].Rect.Bottom, got[i].Rect.Bottom, 1)
	}
}

func TestRestorePositionAndOffset(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(constants.CornerTopRight, 20, constants.ScrollBounded)
	e.ScrollBy(-200, AxisVertical)

	position := e.CurrentPosition()
	offset := e.AngleOffset()
	require.Equal(t, 2, position)

	adapter := newFakeAdapter(20, 50)
	restored := NewEngine(constants.CornerTopRight, adapter, ViewportSize{Width: 300, Height: 300})
	restored.ScrollToPosition(position)
	restored.SetAngleOffset(offset)
	restored.Layout()

	assertRectsNear(t, e.Slots(), restored.Slots())
	assert.Equal(t, position, restored.CurrentPosition())
	assert.InDelta(t, offset, restored.AngleOffset(), 1e-9)
	assertArc(t, restored, adapter)
}

func TestRelayoutKeepsPosition(t *testing.T) {
	t.Parallel()

	e, adapter := newTestEngine(constants.CornerBottomLeft, 20, constants.ScrollBounded)
	e.ScrollBy(250, AxisVertical)
	before := e.Slots()

	e.Layout()

	assertRectsNear(t, before, e.Slots())
	assertArc(t, e, adapter)
}

func TestSetCornerRelaysOut(t *testing.T) {
	t.Parallel()

	e, adapter := newTestEngine(constants.CornerTopLeft, 20, constants.ScrollBounded)
	e.SetCorner(constants.CornerBottomLeft)

	first := e.Slots()[0]
	assert.Equal(t, 0, first.RawIndex)
	assert.InDelta(t, 7, first.Rect.Left, 1)
	assert.InDelta(t, 18, first.Rect.Top, 1)
	assertArc(t, e, adapter)
}

func TestViewportNotReady(t *testing.T) {
	t.Parallel()

	adapter := newFakeAdapter(20, 50)
	viewport := &ViewportSize{}
	e := NewEngine(constants.CornerTopLeft, adapter, viewport)
	e.SetScrollEnabled(true)

	e.Layout()
	assert.Zero(t, e.Len())
	assert.Equal(t, NoPosition, e.CurrentPosition())
	assert.Zero(t, e.AngleOffset())
	assert.Zero(t, e.ScrollBy(100, AxisVertical))

	viewport.Width, viewport.Height = 10000, 300
	e.Layout()
	assert.Zero(t, e.Len())

	viewport.Width = 300
	e.Layout()
	assert.NotZero(t, e.Len())
	assertArc(t, e, adapter)
}

func TestDisabledScrollIsNoop(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(constants.CornerTopLeft, 20, constants.ScrollBounded)
	e.SetScrollEnabled(false)
	before := e.Slots()

	assert.Zero(t, e.ScrollBy(-100, AxisVertical))
	assert.Equal(t, before, e.Slots())
}

func TestEmptyCollection(t *testing.T) {
	t.Parallel()

	e, adapter := newTestEngine(constants.CornerTopLeft, 0, constants.ScrollBounded)
	assert.Zero(t, e.Len())
	assert.Zero(t, adapter.obtained)
	assert.Zero(t, e.ScrollBy(-100, AxisVertical))
}

func TestResetAndDestroy(t *testing.T) {
	t.Parallel()

	e, adapter := newTestEngine(constants.CornerTopLeft, 20, constants.ScrollBounded)
	e.ScrollBy(-100, AxisVertical)
	require.Equal(t, AvailabilityYes, e.HasEnoughItems())

	e.Reset()
	assert.Zero(t, e.Len())
	assert.Empty(t, adapter.live)
	assert.Equal(t, AvailabilityUnknown, e.HasEnoughItems())

	e.Layout()
	require.NotZero(t, e.Len())
	views := make([]*fakeView, 0, e.Len())
	for _, s := range e.Slots() {
		views = append(views, s.View.(*fakeView))
	}

	e.Destroy()
	assert.Zero(t, e.Len())
	for _, v := range views {
		assert.True(t, v.destroyed)
		assert.False(t, v.attached)
	}
}
