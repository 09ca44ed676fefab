package reveal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/layout"
)

var testRects = []layout.Rect{
	{Left: 243, Top: 232, Right: 293, Bottom: 282},
	{Left: 180, Top: 216, Right: 230, Bottom: 266},
	{Left: 123, Top: 185, Right: 173, Bottom: 235},
	{Left: 76, Top: 141, Right: 126, Bottom: 191},
}

func TestPlanOpenPerCorner(t *testing.T) {
	t.Parallel()

	const margin = 1.5
	tests := []struct {
		corner     constants.Corner
		start      float64
		sign       float64
		pivotFirst [2]float64
	}{
		{constants.CornerTopLeft, -100, 1, [2]float64{-243, -232}},
		{constants.CornerTopRight, 100, -1, [2]float64{300 - 243, -232}},
		{constants.CornerBottomLeft, 100, -1, [2]float64{-243, 300 - 232}},
		{constants.CornerBottomRight, -100, 1, [2]float64{300 - 243, 300 - 232}},
	}

	for _, tt := range tests {
		t.Run(tt.corner.String(), func(t *testing.T) {
			plans := PlanOpen(tt.corner, testRects, 300, 300, margin, DefaultTiming())
			require.Len(t, plans, len(testRects))

			assert.Equal(t, tt.pivotFirst[0], plans[0].PivotX)
			assert.Equal(t, tt.pivotFirst[1], plans[0].PivotY)

			for i, p := range plans {
				require.Len(t, p.Phases, 2)
				overshoot := tt.sign * float64(i+6) * margin * 2
				assert.Equal(t, tt.start, p.Phases[0].From)
				assert.InDelta(t, overshoot, p.Phases[0].To, 1e-9)
				assert.InDelta(t, overshoot, p.Phases[1].From, 1e-9)
				assert.Zero(t, p.Phases[1].To)
			}
		})
	}
}

func TestPlanOpenStagger(t *testing.T) {
	t.Parallel()

	plans := PlanOpen(constants.CornerTopRight, testRects, 300, 300, 1.5, DefaultTiming())
	step := 300 * time.Millisecond / 4

	for i, p := range plans {
		assert.Equal(t, 300*time.Millisecond, p.Phases[0].Duration)
		assert.Equal(t, step*time.Duration(i)/2, p.Phases[0].StartOffset)
		assert.Equal(t, EaseDecelerate, p.Phases[0].Ease)

		assert.Equal(t, time.Duration(i+6)*step/2, p.Phases[1].Duration)
		assert.Equal(t, time.Duration(3-i)*step/2, p.Phases[1].StartOffset)
		assert.Equal(t, EaseLinear, p.Phases[1].Ease)

		if i > 0 {
			assert.Greater(t, p.End(), plans[i-1].End(), "the last item settles last")
		}
	}
}

func TestPlanClose(t *testing.T) {
	t.Parallel()

	plans := PlanClose(constants.CornerBottomLeft, testRects, 300, 300, DefaultTiming())
	require.Len(t, plans, len(testRects))

	for i, p := range plans {
		require.Len(t, p.Phases, 1)
		assert.Zero(t, p.Phases[0].From)
		assert.Equal(t, 100.0, p.Phases[0].To)
		assert.Equal(t, 50*time.Millisecond*time.Duration(3-i), p.Phases[0].StartOffset)
		if i > 0 {
			assert.Less(t, p.End(), plans[i-1].End(), "item 0 finishes last")
		}
	}

	assert.Equal(t, -100.0, PlanClose(constants.CornerTopLeft, testRects, 300, 300, DefaultTiming())[0].Phases[0].To)
	assert.Empty(t, PlanClose(constants.CornerTopLeft, nil, 300, 300, DefaultTiming()))
}

func TestRunCompletesOnceAfterEveryItem(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	c := NewChoreographer(s, nil)
	plans := PlanOpen(constants.CornerTopLeft, testRects, 300, 300, 1.5, DefaultTiming())

	angles := make(map[int]float64)
	doneAt := time.Duration(-1)
	calls := 0
	elapsed := time.Duration(0)

	c.Run(plans, func(i int, a float64) { angles[i] = a }, func() {
		calls++
		doneAt = elapsed
	})
	assert.Equal(t, -100.0, angles[0])

	frame := 16 * time.Millisecond
	for elapsed < time.Second {
		elapsed += frame
		s.Advance(frame)
	}

	assert.Equal(t, 1, calls)
	assert.GreaterOrEqual(t, doneAt, plans[len(plans)-1].End())
	assert.Less(t, doneAt, plans[len(plans)-1].End()+3*frame)
	for i := range plans {
		assert.Zero(t, angles[i])
	}
}

func TestRunWithNoItemsCompletesImmediately(t *testing.T) {
	t.Parallel()

	c := NewChoreographer(NewScheduler(), nil)
	done := false
	c.Run(nil, func(int, float64) {}, func() { done = true })
	assert.True(t, done)
}

func TestRunSupersedesPreviousRun(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	c := NewChoreographer(s, nil)
	first, second := 0, 0
	angles := make(map[int]float64)
	apply := func(i int, a float64) { angles[i] = a }

	c.Run(PlanOpen(constants.CornerTopLeft, testRects, 300, 300, 1.5, DefaultTiming()), apply, func() { first++ })
	s.Advance(100 * time.Millisecond)
	c.Run(PlanClose(constants.CornerTopLeft, testRects, 300, 300, DefaultTiming()), apply, func() { second++ })

	for range 100 {
		s.Advance(16 * time.Millisecond)
	}
	assert.Zero(t, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, -100.0, angles[0])

	c.Run(PlanClose(constants.CornerTopLeft, testRects, 300, 300, DefaultTiming()), apply, func() { second++ })
	c.Cancel()
	s.Advance(time.Second)
	assert.Equal(t, 1, second)
}
