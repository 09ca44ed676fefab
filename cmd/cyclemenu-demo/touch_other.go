//go:build !linux

package main

import (
	"errors"
	"log/slog"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/touch"
)

func openTouch(string, int, int, *slog.Logger) (<-chan touch.Motion, func(), error) {
	return nil, nil, errors.New("evdev touch input is only available on Linux")
}
