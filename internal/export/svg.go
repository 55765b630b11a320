package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/atmos/internal/engine"
)

// SVG records engine draw calls as SVG elements. Additive draws carry
// mix-blend-mode:plus-lighter, the SVG counterpart of canvas "lighter".
type SVG struct {
	Width, Height int
	// Background fills the frame when non-empty; empty leaves it transparent.
	Background string

	body  strings.Builder
	blend engine.BlendMode
}

func NewSVG(width, height int) *SVG {
	return &SVG{Width: width, Height: height, Background: "#0a0a0a"}
}

func (s *SVG) Clear() {
	s.body.Reset()
	s.blend = engine.BlendNormal
}

func (s *SVG) SetBlend(mode engine.BlendMode) { s.blend = mode }

func (s *SVG) FillCircle(x, y, r float64, c color.NRGBA) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"%s/>`+"\n",
		x, y, r, hexColor(c), s.attrs("fill-opacity", c))
}

func (s *SVG) FillRect(x, y, w, h float64, c color.NRGBA) {
	fmt.Fprintf(&s.body, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"%s/>`+"\n",
		x, y, w, h, hexColor(c), s.attrs("fill-opacity", c))
}

func (s *SVG) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
		x0, y0, x1, y1, hexColor(c), width, s.attrs("stroke-opacity", c))
}

func (s *SVG) attrs(opacityAttr string, c color.NRGBA) string {
	var b strings.Builder
	if c.A != 255 {
		fmt.Fprintf(&b, ` %s="%.3f"`, opacityAttr, float64(c.A)/255)
	}
	if s.blend == engine.BlendAdditive {
		b.WriteString(` style="mix-blend-mode:plus-lighter"`)
	}
	return b.String()
}

// String returns the complete document for the draws since the last Clear.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.Width, s.Height, s.Width, s.Height))
	if s.Background != "" {
		sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.Background))
	}
	sb.WriteString(`<g style="isolation:isolate">` + "\n")
	sb.WriteString(s.body.String())
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// Snapshot steps e once and returns the frame as an SVG document.
func Snapshot(e *engine.Engine) *SVG {
	w, h := e.Size()
	s := NewSVG(w, h)
	e.Frame(s)
	return s
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
