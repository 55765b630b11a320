package engine

import (
	"image/color"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEngine(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Engine Suite")
}

// recordingCanvas counts draw calls and remembers blend switches.
type recordingCanvas struct {
	clears  int
	circles int
	rects   int
	lines   int
	blends  []BlendMode
	colors  []color.NRGBA
}

func (c *recordingCanvas) Clear()                  { c.clears++ }
func (c *recordingCanvas) SetBlend(mode BlendMode) { c.blends = append(c.blends, mode) }

func (c *recordingCanvas) FillCircle(x, y, r float64, col color.NRGBA) {
	c.circles++
	c.colors = append(c.colors, col)
}

func (c *recordingCanvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	c.rects++
	c.colors = append(c.colors, col)
}

func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	c.lines++
	c.colors = append(c.colors, col)
}
