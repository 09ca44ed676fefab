package internal

import (
	"slices"
	"time"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

// Direction is a d-pad direction.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func directionOf(button constants.VirtualButton) Direction {
	switch button {
	case constants.VirtualButtonUp:
		return DirectionUp
	case constants.VirtualButtonDown:
		return DirectionDown
	case constants.VirtualButtonLeft:
		return DirectionLeft
	case constants.VirtualButtonRight:
		return DirectionRight
	}
	return DirectionNone
}

// DirectionalInput turns held d-pad buttons into repeated steps. It is driven
// by frame deltas, so it runs on the same clock as the widget animations.
// The first repeat fires after the delay, later ones every interval.
type DirectionalInput struct {
	held      []Direction // press order, latest last
	sinceLast time.Duration
	repeated  bool
	delay     time.Duration
	interval  time.Duration
}

// NewDirectionalInput creates a DirectionalInput with the default timing.
func NewDirectionalInput() *DirectionalInput {
	return NewDirectionalInputWithTiming(constants.DefaultRepeatDelay, constants.DefaultRepeatInterval)
}

// NewDirectionalInputWithTiming creates a DirectionalInput with custom timing.
func NewDirectionalInputWithTiming(delay, interval time.Duration) *DirectionalInput {
	return &DirectionalInput{delay: delay, interval: interval}
}

// SetHeld records a press or release and reports whether button is a
// direction. Any change restarts the repeat delay.
func (d *DirectionalInput) SetHeld(button constants.VirtualButton, held bool) bool {
	dir := directionOf(button)
	if dir == DirectionNone {
		return false
	}

	d.held = slices.DeleteFunc(d.held, func(h Direction) bool { return h == dir })
	if held {
		d.held = append(d.held, dir)
	}
	d.sinceLast = 0
	d.repeated = false
	return true
}

// IsHeld returns true if any direction is currently held.
func (d *DirectionalInput) IsHeld() bool {
	return len(d.held) > 0
}

// HeldDirection returns the most recently pressed direction still held.
func (d *DirectionalInput) HeldDirection() Direction {
	if len(d.held) == 0 {
		return DirectionNone
	}
	return d.held[len(d.held)-1]
}

// Update advances the repeat timer by dt and returns the direction to step,
// or DirectionNone.
func (d *DirectionalInput) Update(dt time.Duration) Direction {
	if !d.IsHeld() {
		return DirectionNone
	}

	d.sinceLast += dt
	threshold := d.interval
	if !d.repeated {
		threshold = d.delay
	}
	if d.sinceLast < threshold {
		return DirectionNone
	}

	d.sinceLast = 0
	d.repeated = true
	return d.HeldDirection()
}

// Reset releases every direction.
func (d *DirectionalInput) Reset() {
	d.held = d.held[:0]
	d.sinceLast = 0
	d.repeated = false
}

// VirtualButton returns the button that produces d.
func (d Direction) VirtualButton() constants.VirtualButton {
	switch d {
	case DirectionUp:
		return constants.VirtualButtonUp
	case DirectionDown:
		return constants.VirtualButtonDown
	case DirectionLeft:
		return constants.VirtualButtonLeft
	case DirectionRight:
		return constants.VirtualButtonRight
	}
	return constants.VirtualButtonUnassigned
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return ""
}
