package cyclemenu

import (
	"math"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

// RadiusConfig selects how the arc size is derived. Zero bounds are unset.
type RadiusConfig struct {
	Mode      constants.RadiusMode
	AutoMin   int
	AutoMax   int
	Fixed     int
	Collapsed int // Radius of the background circle while the menu is closed
}

// arcSize computes the side of the square the arc is laid out in, for a host
// of width x height. It also returns the bounds after clamping so callers can
// validate later requests against them.
//
// The outer bound is the short host side minus the shadow. The inner bound
// leaves room for one item outside the collapsed circle. Auto mode grows the
// arc with the item count, Fixed mode uses the fixed radius, both clamped to
// the bounds.
func arcSize(width, height, shadow, itemSize, count int, rc RadiusConfig) (int, RadiusConfig) {
	size := min(width, height) - shadow

	if (rc.Mode == constants.RadiusFixed || rc.AutoMax > size || rc.AutoMax <= 0) && size > 0 {
		rc.AutoMax = size
	}
	if rc.AutoMin < rc.Collapsed+itemSize {
		rc.AutoMin = rc.Collapsed + itemSize
	}
	if rc.AutoMin > rc.AutoMax {
		rc.AutoMin = rc.AutoMax
	}

	switch {
	case rc.Mode == constants.RadiusAuto:
		size = int(float64(itemSize*count*4)/(math.Pi*2)) + itemSize*5/8
		size = max(rc.AutoMin, min(size, rc.AutoMax))
	case size > 0:
		rc.Fixed = max(rc.AutoMin, min(rc.Fixed, rc.AutoMax))
		size = rc.Fixed
	}
	return size, rc
}

// cornerButtonSide is the side of the square corner button that fits inside
// the collapsed circle.
func cornerButtonSide(collapsed int) int {
	return int(math.Sqrt(float64(collapsed*collapsed) / 2.0))
}
