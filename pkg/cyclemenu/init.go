// Package cyclemenu provides a circular menu that fans its items out along an
// arc around one corner of the host area.
//
// The widget logic (layout, state, animation and input routing) runs without
// a display. The SDL host in this package draws a Widget into a window and
// feeds it mouse, touch, keyboard and controller input.
package cyclemenu

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/internal"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/platform/cannoli"
)

// WindowOptions are the SDL window flags and size used by Init.
type WindowOptions = internal.WindowOptions

// Theme is the palette the host draws with.
type Theme = internal.Theme

// Options configures the SDL host.
type Options struct {
	WindowTitle     string        // Window title displayed in windowed mode
	WindowOptions   WindowOptions // SDL window flags (borderless, resizable, etc.)
	LogPath         string        // Full path for log file including filename (creates parent directories)
	IsCannoli       bool          // Use the Cannoli palette
	CornerImagePath string        // Optional PNG for the corner button
	Theme           *Theme        // Overrides the palette entirely
}

// Init starts SDL and opens the host window. It must be called before Run.
func Init(options Options) error {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if constants.IsDevMode() || os.Getenv("CYCLEMENU_DEBUG") != "" {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	switch {
	case options.Theme != nil:
		internal.SetTheme(*options.Theme)
	case options.IsCannoli:
		internal.SetTheme(cannoli.InitCannoliTheme(options.CornerImagePath))
	default:
		theme := internal.DefaultTheme()
		theme.CornerImagePath = options.CornerImagePath
		internal.SetTheme(theme)
	}

	if err := internal.Init(options.WindowTitle, options.WindowOptions); err != nil {
		return NewInfrastructureError("init_sdl", err)
	}
	return nil
}

// Close releases all SDL resources.
func Close() {
	internal.SDLCleanup()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetInternalLogLevel sets the level of the widget's own logging.
func SetInternalLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}

// SetTheme replaces the palette used by the host.
func SetTheme(theme Theme) {
	internal.SetTheme(theme)
}

// GetTheme returns the active palette.
func GetTheme() Theme {
	return internal.GetTheme()
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return internal.DefaultTheme()
}

// GetWindow returns the underlying SDL window wrapper for advanced use cases.
func GetWindow() *internal.Window {
	return internal.GetWindow()
}
