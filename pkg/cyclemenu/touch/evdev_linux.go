//go:build linux

package touch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/holoplot/go-evdev"
	"go.uber.org/atomic"
)

// EvdevSource reads a Linux touchscreen and produces Motion samples in
// viewport coordinates.
type EvdevSource struct {
	device  *evdev.InputDevice
	decoder *decoder
	running *atomic.Bool
	logger  *slog.Logger
}

// OpenEvdev opens the touchscreen at path and scales its absolute axes to a
// viewport of width x height.
func OpenEvdev(path string, width, height int, logger *slog.Logger) (*EvdevSource, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	device, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open touch device %s: %w", path, err)
	}

	d := newDecoder(width, height)
	if infos, err := device.AbsInfos(); err == nil {
		if info, ok := infos[evdev.ABS_MT_POSITION_X]; ok {
			d.maxX = float64(info.Maximum)
		} else if info, ok := infos[evdev.ABS_X]; ok {
			d.maxX = float64(info.Maximum)
		}
		if info, ok := infos[evdev.ABS_MT_POSITION_Y]; ok {
			d.maxY = float64(info.Maximum)
		} else if info, ok := infos[evdev.ABS_Y]; ok {
			d.maxY = float64(info.Maximum)
		}
	} else {
		logger.Warn("Touch device reports no axis ranges, using raw coordinates", "path", path, "error", err)
	}

	name, _ := device.Name()
	logger.Debug("Touch device opened", "path", path, "name", name, "maxX", d.maxX, "maxY", d.maxY)

	return &EvdevSource{
		device:  device,
		decoder: d,
		running: atomic.NewBool(false),
		logger:  logger,
	}, nil
}

// Run forwards samples to out until Close is called or the device fails.
// It blocks and is meant to run on its own goroutine; the frame loop drains out.
func (s *EvdevSource) Run(out chan<- Motion) error {
	s.running.Store(true)
	defer s.running.Store(false)

	for s.running.Load() {
		ev, err := s.device.ReadOne()
		if err != nil {
			if !s.running.Load() || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read touch device: %w", err)
		}

		if m, ok := s.decoder.feed(ev.Type, ev.Code, ev.Value); ok {
			select {
			case out <- m:
			default:
				s.logger.Debug("Dropping touch sample, consumer is behind", "action", m.Action.String())
			}
		}
	}
	return nil
}

// Running reports whether Run is reading the device.
func (s *EvdevSource) Running() bool {
	return s.running.Load()
}

// Close stops Run and releases the device.
func (s *EvdevSource) Close() error {
	s.running.Store(false)
	return s.device.Close()
}

// decoder assembles evdev reports into motions. Axis updates are buffered
// until SYN_REPORT so one report yields at most one motion.
type decoder struct {
	width  float64
	height float64
	maxX   float64
	maxY   float64

	x, y     float64
	moved    bool
	touching bool
	pressed  *bool
}

func newDecoder(width, height int) *decoder {
	return &decoder{width: float64(width), height: float64(height)}
}

func (d *decoder) scale(v int32, limit, size float64) float64 {
	if limit <= 0 {
		return float64(v)
	}
	return float64(v) / limit * size
}

func (d *decoder) feed(typ evdev.EvType, code evdev.EvCode, value int32) (Motion, bool) {
	switch typ {
	case evdev.EV_ABS:
		switch code {
		case evdev.ABS_MT_POSITION_X, evdev.ABS_X:
			d.x = d.scale(value, d.maxX, d.width)
			d.moved = true
		case evdev.ABS_MT_POSITION_Y, evdev.ABS_Y:
			d.y = d.scale(value, d.maxY, d.height)
			d.moved = true
		}
	case evdev.EV_KEY:
		if code == evdev.BTN_TOUCH {
			pressed := value != 0
			d.pressed = &pressed
		}
	case evdev.EV_SYN:
		if code == evdev.SYN_REPORT {
			return d.report()
		}
	}
	return Motion{}, false
}

func (d *decoder) report() (Motion, bool) {
	defer func() {
		d.moved = false
		d.pressed = nil
	}()

	switch {
	case d.pressed != nil && *d.pressed && !d.touching:
		d.touching = true
		return Motion{Action: ActionDown, X: d.x, Y: d.y}, true
	case d.pressed != nil && !*d.pressed && d.touching:
		d.touching = false
		return Motion{Action: ActionUp, X: d.x, Y: d.y}, true
	case d.touching && d.moved:
		return Motion{Action: ActionMove, X: d.x, Y: d.y}, true
	}
	return Motion{}, false
}
