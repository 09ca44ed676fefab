// Package constants defines shared constants, types, and configuration values
// used throughout the cyclemenu widget.
package constants

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// WindowWidthEnvVar and WindowHeightEnvVar override the host window size in development mode.
const (
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Corner is the rectangle corner the arc pivots around.
// The zero value is CornerUnset and is rejected by the widget constructor.
type Corner int

const (
	CornerUnset Corner = iota
	CornerTopLeft
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

func (c Corner) IsLeftSide() bool {
	return c == CornerTopLeft || c == CornerBottomLeft
}

func (c Corner) IsRightSide() bool {
	return c == CornerTopRight || c == CornerBottomRight
}

func (c Corner) IsTopSide() bool {
	return c == CornerTopLeft || c == CornerTopRight
}

func (c Corner) IsBottomSide() bool {
	return c == CornerBottomLeft || c == CornerBottomRight
}

// IsValid reports whether c names one of the four corners.
func (c Corner) IsValid() bool {
	return c >= CornerTopLeft && c <= CornerBottomRight
}

func (c Corner) String() string {
	switch c {
	case CornerTopLeft:
		return "top-left"
	case CornerTopRight:
		return "top-right"
	case CornerBottomLeft:
		return "bottom-left"
	case CornerBottomRight:
		return "bottom-right"
	default:
		return "unset"
	}
}

// ParseCorner accepts the names produced by Corner.String.
func ParseCorner(s string) (Corner, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top-left":
		return CornerTopLeft, nil
	case "top-right":
		return CornerTopRight, nil
	case "bottom-left":
		return CornerBottomLeft, nil
	case "bottom-right":
		return CornerBottomRight, nil
	}
	return CornerUnset, fmt.Errorf("unknown corner %q", s)
}

// ScrollMode selects between a bounded item range and infinite wraparound.
type ScrollMode int

const (
	ScrollBounded ScrollMode = iota
	ScrollInfinite
)

func (m ScrollMode) String() string {
	if m == ScrollInfinite {
		return "infinite"
	}
	return "bounded"
}

// ParseScrollMode accepts "bounded" and "infinite".
func ParseScrollMode(s string) (ScrollMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bounded", "":
		return ScrollBounded, nil
	case "infinite":
		return ScrollInfinite, nil
	}
	return ScrollBounded, fmt.Errorf("unknown scroll mode %q", s)
}

// RadiusMode specifies how the arc radius is derived.
// Auto grows with the item count between the auto bounds, Fixed uses the fixed
// radius clamped to the same bounds.
type RadiusMode int

const (
	RadiusAuto RadiusMode = iota
	RadiusFixed
)

func (m RadiusMode) String() string {
	if m == RadiusFixed {
		return "fixed"
	}
	return "auto"
}

// ParseRadiusMode accepts "auto" and "fixed".
func ParseRadiusMode(s string) (RadiusMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return RadiusAuto, nil
	case "fixed":
		return RadiusFixed, nil
	}
	return RadiusAuto, fmt.Errorf("unknown radius mode %q", s)
}

// VirtualButton represents an abstract input button, mapped from physical hardware.
type VirtualButton int

const (
	VirtualButtonUnassigned VirtualButton = iota
	VirtualButtonUp
	VirtualButtonDown
	VirtualButtonLeft
	VirtualButtonRight
	VirtualButtonA
	VirtualButtonB
)

func (vb VirtualButton) GetName() string {
	switch vb {
	case VirtualButtonUnassigned:
		return "Unassigned"
	case VirtualButtonUp:
		return "Up"
	case VirtualButtonDown:
		return "Down"
	case VirtualButtonLeft:
		return "Left"
	case VirtualButtonRight:
		return "Right"
	case VirtualButtonA:
		return "A"
	case VirtualButtonB:
		return "B"
	default:
		return "Unknown"
	}
}

// Layout defaults.
const (
	// DefaultScaleFactor inflates the angle per item so neighbours never touch.
	DefaultScaleFactor  = 1.3
	// DefaultRadiusShrink is the fraction of the item size pulled in from the viewport edge.
	DefaultRadiusShrink = 0.8

	DefaultItemSize        = 56
	DefaultShadowSize      = 40
	DefaultCollapsedRadius = 60
	DefaultTouchSlop       = 8.0
	DefaultOvershoot       = 6
	DefaultEventBuffer     = 64

	// MaxViewportSize rejects pre-measurement garbage sizes.
	MaxViewportSize = 10000

	// ShadowMinCoefficient is the collapsed shadow size as a fraction of the full one.
	ShadowMinCoefficient = 0.25
)

// Default timing constants.
const (
	DefaultRollDuration   = 300 * time.Millisecond // Per-item roll in/out rotation
	DefaultRevealDuration = 200 * time.Millisecond // Background circle grow/shrink
	DefaultCloseStagger   = 50 * time.Millisecond  // Delay between items when rolling out
	DefaultCornerRotate   = 300 * time.Millisecond // Corner icon plus/cross rotation
	DefaultRippleDuration = 300 * time.Millisecond // Ripple growth on the corner button
	DefaultRippleFadeOut  = 450 * time.Millisecond // Ripple alpha fade after release
	DefaultRepeatDelay    = 300 * time.Millisecond // D-pad hold before the first repeat
	DefaultRepeatInterval = 50 * time.Millisecond  // D-pad repeat period
	DefaultLongPress      = 500 * time.Millisecond // Hold time that turns a tap into a long click
)
