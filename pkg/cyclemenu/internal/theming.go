package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

// Theme defines the colors the host uses to draw the widget.
type Theme struct {
	BackgroundColor sdl.Color // Screen behind the widget
	CircleColor     sdl.Color // Reveal circle behind the items
	ShadowColor     sdl.Color // Soft ring drawn outside the reveal circle
	RippleColor     sdl.Color // Corner button press ripple
	ItemColor       sdl.Color // Item disc
	IconColor       sdl.Color // Item and corner icons
	CornerColor     sdl.Color // Corner button disc
	CornerImagePath string    // Optional PNG drawn instead of the plus icon
}

var currentTheme = DefaultTheme()

// DefaultTheme is the palette used until SetTheme is called.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: HexToColor(0x202124),
		CircleColor:     HexToColor(0x3F51B5),
		ShadowColor:     sdl.Color{R: 0, G: 0, B: 0, A: 90},
		RippleColor:     sdl.Color{R: 255, G: 255, B: 255, A: 110},
		ItemColor:       HexToColor(0x5C6BC0),
		IconColor:       HexToColor(0xFFFFFF),
		CornerColor:     HexToColor(0xFF4081),
	}
}

// SetTheme sets the active theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the currently active theme.
func GetTheme() Theme {
	return currentTheme
}

// HexToColor converts 0xRRGGBB to an opaque color.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}

// ParseHexColor accepts "#RRGGBB" and "#RRGGBBAA", with or without the hash.
func ParseHexColor(s string) (sdl.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return sdl.Color{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return sdl.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(s) == 6 {
		return HexToColor(uint32(v)), nil
	}
	c := HexToColor(uint32(v >> 8))
	c.A = uint8(v)
	return c, nil
}

// WithAlpha returns c with its alpha scaled by f in [0, 1].
func WithAlpha(c sdl.Color, f float64) sdl.Color {
	f = max(0, min(1, f))
	c.A = uint8(float64(c.A) * f)
	return c
}
