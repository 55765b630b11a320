package viz

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/atmos/internal/engine"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBlank = 0x2800

	// A terminal cell stands in for an 8x16 pixel block of the surface, so
	// one braille dot covers 4x4 device pixels.
	CellWidth  = 8
	CellHeight = 16
	dotSize    = 4

	// Dots dimmer than this stay unset so faint particles don't flood cells.
	minDotAlpha = 0.04
)

// rgb is a premultiplied color accumulated over a black background.
type rgb struct{ r, g, b float64 }

// Canvas is a braille terminal surface that implements engine.Canvas.
// Dots carry the shape; each cell carries one blended color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]rgb
	blend         engine.BlendMode
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid for w columns and h rows.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]rgb, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]rgb, w)
	}
	c.Clear()
}

// SurfaceSize is the device pixel size the engine should simulate for this
// canvas.
func (c *Canvas) SurfaceSize() (int, int) {
	return c.Width * CellWidth, c.Height * CellHeight
}

// Set sets a dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = rgb{}
		}
	}
}

func (c *Canvas) SetBlend(mode engine.BlendMode) { c.blend = mode }

func (c *Canvas) FillCircle(x, y, r float64, col color.NRGBA) {
	cx, cy := x/dotSize, y/dotSize
	rd := r / dotSize
	x0, x1 := int(math.Floor(cx-rd)), int(math.Floor(cx+rd))
	y0, y1 := int(math.Floor(cy-rd)), int(math.Floor(cy+rd))
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			c.plot(dx, dy, col, 1)
		}
	}
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	x0, x1 := int(math.Floor(x/dotSize)), int(math.Floor((x+w)/dotSize))
	y0, y1 := int(math.Floor(y/dotSize)), int(math.Floor((y+h)/dotSize))
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			c.plot(dx, dy, col, 1)
		}
	}
}

// StrokeLine ignores width: a single dot is already wider than any stroke
// the engine asks for.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	c.drawLine(int(math.Floor(x0/dotSize)), int(math.Floor(y0/dotSize)),
		int(math.Floor(x1/dotSize)), int(math.Floor(y1/dotSize)), col, 1)
}

func (c *Canvas) drawLine(x0, y0, x1, y1 int, col color.NRGBA, coverage float64) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.plot(x0, y0, col, coverage)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// plot sets a dot and blends its color into the owning cell.
func (c *Canvas) plot(x, y int, col color.NRGBA, coverage float64) {
	if x < 0 || y < 0 {
		return
	}
	row, cell := y/4, x/2
	if cell >= c.Width || row >= c.Height {
		return
	}
	a := float64(col.A) / 255 * coverage
	if a < minDotAlpha {
		return
	}
	c.Set(x, y)

	dst := &c.Colors[row][cell]
	src := rgb{float64(col.R) * a, float64(col.G) * a, float64(col.B) * a}
	if c.blend == engine.BlendAdditive {
		dst.r, dst.g, dst.b = dst.r+src.r, dst.g+src.g, dst.b+src.b
		return
	}
	dst.r = src.r + dst.r*(1-a)
	dst.g = src.g + dst.g*(1-a)
	dst.b = src.b + dst.b*(1-a)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with each run of equally colored cells wrapped
// in a lipgloss foreground style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.cellKey(i, j) == c.cellKey(i, start) {
				continue
			}
			run := string(row[start:j])
			if key := c.cellKey(i, start); key.lit {
				hex := fmt.Sprintf("#%02x%02x%02x", key.r, key.g, key.b)
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type cellKey struct {
	lit     bool
	r, g, b uint8
}

func (c *Canvas) cellKey(row, col int) cellKey {
	if c.Grid[row][col] == brailleBlank {
		return cellKey{}
	}
	v := c.Colors[row][col]
	return cellKey{lit: true, r: clampChannel(v.r), g: clampChannel(v.g), b: clampChannel(v.b)}
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
