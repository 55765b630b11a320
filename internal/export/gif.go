package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

// DefaultMaxFrames bounds a recording to about a minute at 2 centiseconds
// per frame.
const DefaultMaxFrames = 3000

var ErrNoFrames = errors.New("export: no frames recorded")

// GIFRecorder collects frames and encodes them as a looping animation.
type GIFRecorder struct {
	// Delay per frame in 100ths of a second.
	Delay     int
	MaxFrames int

	frames []*image.Paletted
}

func NewGIFRecorder(delay int) *GIFRecorder {
	if delay <= 0 {
		delay = 2
	}
	return &GIFRecorder{Delay: delay, MaxFrames: DefaultMaxFrames}
}

// Add quantizes img to the Plan 9 palette. Frames beyond MaxFrames are
// dropped; Add reports whether the frame was kept.
func (r *GIFRecorder) Add(img image.Image) bool {
	if r.MaxFrames > 0 && len(r.frames) >= r.MaxFrames {
		return false
	}
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.Draw(p, b, img, b.Min, draw.Src)
	r.frames = append(r.frames, p)
	return true
}

func (r *GIFRecorder) Len() int { return len(r.frames) }

func (r *GIFRecorder) Reset() { r.frames = nil }

func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	// Frames may differ in size after a resize; the logical screen
	// covers the largest.
	anim := gif.GIF{LoopCount: 0, Config: image.Config{ColorModel: color.Palette(palette.Plan9)}}
	for _, frame := range r.frames {
		anim.Config.Width = max(anim.Config.Width, frame.Bounds().Max.X)
		anim.Config.Height = max(anim.Config.Height, frame.Bounds().Max.Y)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
