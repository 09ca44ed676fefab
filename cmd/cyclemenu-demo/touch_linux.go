//go:build linux

package main

import (
	"log/slog"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/touch"
)

// openTouch starts reading an evdev touchscreen on its own goroutine.
func openTouch(path string, width, height int, logger *slog.Logger) (<-chan touch.Motion, func(), error) {
	src, err := touch.OpenEvdev(path, width, height, logger)
	if err != nil {
		return nil, nil, err
	}

	motions := make(chan touch.Motion, 64)
	go func() {
		if err := src.Run(motions); err != nil {
			logger.Error("Touch device stopped", "path", path, "error", err)
		}
	}()

	return motions, func() {
		if err := src.Close(); err != nil {
			logger.Debug("Failed to close touch device", "error", err)
		}
	}, nil
}
