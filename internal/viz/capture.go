package viz

import (
	"image"
	"image/color"
)

// Image rasterizes the braille grid at the virtual cell size: every set dot
// becomes a dotSize square in its cell's color on black.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width*CellWidth, c.Height*CellHeight))
	for i := range img.Pix {
		if i%4 == 3 {
			img.Pix[i] = 255
		}
	}
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if r <= brailleBlank {
				continue
			}
			pattern := int(r - brailleBlank)
			key := c.cellKey(row, col)
			fill := color.RGBA{R: key.r, G: key.g, B: key.b, A: 255}
			baseX, baseY := col*CellWidth, row*CellHeight
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotSize; py++ {
						for px := 0; px < dotSize; px++ {
							img.SetRGBA(baseX+dx*dotSize+px, baseY+dy*dotSize+py, fill)
						}
					}
				}
			}
		}
	}
	return img
}
