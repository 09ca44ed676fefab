// Package cannoli provides a widget palette matching the Cannoli custom firmware.
// Cannoli is a community-developed CFW for retro handheld gaming devices.
package cannoli

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/internal"
)

// InitCannoliTheme creates a theme with Cannoli's default colors. cornerImagePath
// may be empty to draw the built-in plus icon.
func InitCannoliTheme(cornerImagePath string) internal.Theme {
	return internal.Theme{
		BackgroundColor: internal.HexToColor(0xFFFFFF),
		CircleColor:     internal.HexToColor(0x008080),
		ShadowColor:     sdl.Color{R: 0, G: 0, B: 0, A: 70},
		RippleColor:     sdl.Color{R: 255, G: 255, B: 255, A: 120},
		ItemColor:       internal.HexToColor(0x000000),
		IconColor:       internal.HexToColor(0xFFFFFF),
		CornerColor:     internal.HexToColor(0x008080),
		CornerImagePath: cornerImagePath,
	}
}
