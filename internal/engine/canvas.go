package engine

import "image/color"

// BlendMode selects how drawn colors composite with the surface.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over
	BlendAdditive                  // lighter: overlapping colors add up
)

// Canvas is the drawing surface a host hands to Frame. Coordinates are in
// device pixels; colors carry straight (non-premultiplied) alpha.
type Canvas interface {
	Clear()
	SetBlend(mode BlendMode)
	FillCircle(x, y, r float64, c color.NRGBA)
	FillRect(x, y, w, h float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
}
