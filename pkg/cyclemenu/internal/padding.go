package internal

// Padding is the inset between the host window edges and the widget bounds.
type Padding struct {
	Top    int32
	Right  int32
	Bottom int32
	Left   int32
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(value int32) Padding {
	return Padding{
		Top:    value,
		Right:  value,
		Bottom: value,
		Left:   value,
	}
}

// Inset returns the area of a width x height window left inside the padding.
// Sizes never go below zero.
func (p Padding) Inset(width, height int32) (x, y, w, h int32) {
	w = max(0, width-p.Left-p.Right)
	h = max(0, height-p.Top-p.Bottom)
	return p.Left, p.Top, w, h
}
