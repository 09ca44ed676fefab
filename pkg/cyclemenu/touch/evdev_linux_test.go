//go:build linux

package touch

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rawEvent struct {
	typ   evdev.EvType
	code  evdev.EvCode
	value int32
}

func feedAll(d *decoder, events []rawEvent) []Motion {
	var out []Motion
	for _, ev := range events {
		if m, ok := d.feed(ev.typ, ev.code, ev.value); ok {
			out = append(out, m)
		}
	}
	return out
}

func TestDecoderTapAndDrag(t *testing.T) {
	t.Parallel()

	d := newDecoder(640, 480)
	d.maxX, d.maxY = 1280, 960

	syn := rawEvent{evdev.EV_SYN, evdev.SYN_REPORT, 0}
	motions := feedAll(d, []rawEvent{
		{evdev.EV_ABS, evdev.ABS_MT_POSITION_X, 200},
		{evdev.EV_ABS, evdev.ABS_MT_POSITION_Y, 100},
		{evdev.EV_KEY, evdev.BTN_TOUCH, 1},
		syn,
		{evdev.EV_ABS, evdev.ABS_MT_POSITION_Y, 160},
		syn,
		syn,
		{evdev.EV_KEY, evdev.BTN_TOUCH, 0},
		syn,
	})

	require.Len(t, motions, 3)
	assert.Equal(t, Motion{Action: ActionDown, X: 100, Y: 50}, motions[0])
	assert.Equal(t, Motion{Action: ActionMove, X: 100, Y: 80}, motions[1])
	assert.Equal(t, Motion{Action: ActionUp, X: 100, Y: 80}, motions[2])
}

func TestDecoderWithoutAxisRange(t *testing.T) {
	t.Parallel()

	d := newDecoder(640, 480)
	motions := feedAll(d, []rawEvent{
		{evdev.EV_ABS, evdev.ABS_X, 12},
		{evdev.EV_ABS, evdev.ABS_Y, 34},
		{evdev.EV_KEY, evdev.BTN_TOUCH, 1},
		{evdev.EV_SYN, evdev.SYN_REPORT, 0},
	})

	require.Len(t, motions, 1)
	assert.Equal(t, Motion{Action: ActionDown, X: 12, Y: 34}, motions[0])
}
