package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/san-kum/atmos/internal/engine"
)

// Raster draws anti-aliased shapes into an RGBA image through gg. Shapes
// outside the image are clipped, and a zero-sized raster accepts every call.
//
// gg only composites source-over, so additive shapes are drawn alone into a
// scratch layer and summed into the base image.
type Raster struct {
	dc    *gg.Context
	glow  *gg.Context
	blend engine.BlendMode
}

func NewRaster(width, height int) *Raster {
	r := &Raster{}
	r.Resize(width, height)
	return r
}

// Resize reallocates the backing images; contents are discarded.
func (r *Raster) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	r.dc = gg.NewContextForRGBA(image.NewRGBA(image.Rect(0, 0, width, height)))
	r.glow = gg.NewContextForRGBA(image.NewRGBA(image.Rect(0, 0, width, height)))
}

func (r *Raster) Image() *image.RGBA { return r.dc.Image().(*image.RGBA) }

func (r *Raster) Bounds() image.Rectangle { return r.Image().Bounds() }

func (r *Raster) empty() bool { return r.dc.Width() == 0 || r.dc.Height() == 0 }

// Clear makes every pixel fully transparent.
func (r *Raster) Clear() {
	r.dc.SetColor(color.Transparent)
	r.dc.Clear()
}

func (r *Raster) SetBlend(mode engine.BlendMode) { r.blend = mode }

func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	if radius <= 0 || r.empty() {
		return
	}
	r.draw(bbox(cx-radius, cy-radius, cx+radius, cy+radius, 1), func(dc *gg.Context) {
		dc.DrawCircle(cx, cy, radius)
		dc.SetColor(c)
		dc.Fill()
	})
}

func (r *Raster) FillRect(x, y, w, h float64, c color.NRGBA) {
	if w <= 0 || h <= 0 || r.empty() {
		return
	}
	r.draw(bbox(x, y, x+w, y+h, 1), func(dc *gg.Context) {
		dc.DrawRectangle(x, y, w, h)
		dc.SetColor(c)
		dc.Fill()
	})
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if width <= 0 || r.empty() {
		return
	}
	pad := width + 1
	r.draw(bbox(math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1), pad), func(dc *gg.Context) {
		dc.SetLineWidth(width)
		dc.DrawLine(x0, y0, x1, y1)
		dc.SetColor(c)
		dc.Stroke()
	})
}

// draw runs paint on the base image, or for additive blending on the
// cleared scratch layer which is then added into the base within area.
func (r *Raster) draw(area image.Rectangle, paint func(dc *gg.Context)) {
	if r.blend != engine.BlendAdditive {
		paint(r.dc)
		return
	}
	area = area.Intersect(r.Bounds())
	if area.Empty() {
		return
	}
	glow := r.glow.Image().(*image.RGBA)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		i := glow.PixOffset(area.Min.X, y)
		clear(glow.Pix[i : i+4*area.Dx()])
	}
	paint(r.glow)
	lighter(r.Image(), glow, area)
}

// lighter adds the premultiplied pixels of src into dst within area.
func lighter(dst, src *image.RGBA, area image.Rectangle) {
	for y := area.Min.Y; y < area.Max.Y; y++ {
		i := dst.PixOffset(area.Min.X, y)
		j := src.PixOffset(area.Min.X, y)
		for k := 0; k < 4*area.Dx(); k++ {
			v := int(dst.Pix[i+k]) + int(src.Pix[j+k])
			if v > 255 {
				v = 255
			}
			dst.Pix[i+k] = uint8(v)
		}
	}
}

// bbox returns the pixel rectangle covering [x0,x1]x[y0,y1] grown by pad.
func bbox(x0, y0, x1, y1, pad float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x0-pad)), int(math.Floor(y0-pad)),
		int(math.Ceil(x1+pad)), int(math.Ceil(y1+pad)),
	)
}

// Fit resizes r only when its size differs from width x height.
func (r *Raster) Fit(width, height int) {
	if b := r.Bounds(); b.Dx() == width && b.Dy() == height {
		return
	}
	r.Resize(width, height)
}

// Follower refits its raster to the engine surface at the start of every
// frame, so frames after a resize are neither clipped nor padded.
type Follower struct {
	*Raster
	Engine *engine.Engine
}

func (f *Follower) Clear() {
	if f.Engine != nil {
		f.Fit(f.Engine.Size())
	}
	f.Raster.Clear()
}
