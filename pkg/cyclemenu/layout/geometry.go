package layout

import (
	"math"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

// Geometry is the arc shape derived from the viewport and the first measured item.
type Geometry struct {
	Radius       int
	AnglePerItem float64
	MarginAngle  float64
	// HalfMargin is the stop margin in pixels kept between the end items and the viewport edge.
	HalfMargin int
}

// CircleLength is the full circumference of the arc circle.
func (g Geometry) CircleLength() float64 {
	return 2 * math.Pi * float64(g.Radius)
}

// Pitch is the arc length one item occupies, margins included.
func (g Geometry) Pitch() float64 {
	return g.AnglePerItem / 360.0 * g.CircleLength()
}

// ComputeGeometry derives the arc from the item height and the short viewport side.
// The scale factor inflates the angle an item covers so neighbours keep a gap,
// and the shrink factor pulls the arc in from the viewport edge.
func ComputeGeometry(itemSize, viewportMin int, scaleFactor, radiusShrink float64) Geometry {
	radius := viewportMin - int(float64(itemSize)*radiusShrink)
	g := Geometry{Radius: radius}
	if radius <= 0 {
		return g
	}

	anglePerLength := 360.0 * float64(itemSize) / g.CircleLength()
	withMargins := anglePerLength * scaleFactor

	g.AnglePerItem = withMargins
	g.MarginAngle = (withMargins - anglePerLength) / 2.0
	g.HalfMargin = int((float64(itemSize)*scaleFactor - float64(itemSize)) / 2.0)
	return g
}

// Center returns the exact center of an item at angle on an arc of radius,
// mirrored for the corner the arc pivots around.
func Center(corner constants.Corner, radius int, angle float64, width, height int) (float64, float64) {
	rad := angle * math.Pi / 180
	x := float64(radius) * math.Cos(rad)
	y := float64(radius) * math.Sin(rad)

	if corner.IsRightSide() {
		x = float64(width) - x
	}
	if corner.IsBottomSide() {
		y = float64(height) - y
	}
	return x, y
}

// Place returns the rect of an item of size itemW x itemH at angle. Distances
// from the corner are truncated to whole pixels before mirroring.
func Place(corner constants.Corner, radius int, angle float64, width, height, itemW, itemH int) Rect {
	rad := angle * math.Pi / 180
	xDistance := int(float64(radius) * math.Cos(rad))
	yDistance := int(float64(radius) * math.Sin(rad))

	cx, cy := xDistance, yDistance
	if corner.IsRightSide() {
		cx = width - xDistance
	}
	if corner.IsBottomSide() {
		cy = height - yDistance
	}

	return Rect{
		Left:   cx - itemW/2,
		Top:    cy - itemH/2,
		Right:  cx + itemW/2,
		Bottom: cy + itemH/2,
	}
}

// ValidViewport reports whether a measured viewport is usable for layout.
func ValidViewport(width, height int) bool {
	return width > 0 && height > 0 && width < constants.MaxViewportSize && height < constants.MaxViewportSize
}

// VisibleCapacity is the number of items of itemSize that fit on a quarter arc
// of the given radius.
func VisibleCapacity(radius, itemSize int) int {
	if itemSize <= 0 || radius <= 0 {
		return 0
	}
	return int(float64(radius) * math.Pi / 2 / float64(itemSize))
}

// ResolveScrollMode downgrades Infinite to Bounded when every item fits on the arc.
func ResolveScrollMode(requested constants.ScrollMode, count, capacity int) constants.ScrollMode {
	if requested == constants.ScrollInfinite && count > capacity {
		return constants.ScrollInfinite
	}
	return constants.ScrollBounded
}

// Wrap reduces a raw index to a collection index. Negative raw indices wrap
// from the end.
func Wrap(raw, count int) int {
	if count <= 0 {
		return 0
	}
	m := raw % count
	if m < 0 {
		m += count
	}
	return m
}
