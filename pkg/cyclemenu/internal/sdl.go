package internal

import (
	"fmt"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

var window *Window

// Init starts SDL and opens the host window.
func Init(title string, winOpts WindowOptions) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_GAMECONTROLLER); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	if err := img.Init(img.INIT_PNG); err != nil {
		sdl.Quit()
		return fmt.Errorf("sdl image init: %w", err)
	}

	if winOpts.IsZero() {
		winOpts = WindowOptions{Resizable: true}
		if !constants.IsDevMode() {
			winOpts.Borderless = true
		}
	}

	w, err := initWindow(title, winOpts)
	if err != nil {
		img.Quit()
		sdl.Quit()
		return err
	}
	window = w
	return nil
}

func SDLCleanup() {
	if window != nil {
		window.closeWindow()
		window = nil
	}
	img.Quit()
	sdl.Quit()
	CloseLogger()
}
