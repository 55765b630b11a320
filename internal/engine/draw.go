package engine

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	rainStrokeWidth = 0.5
	rocketWidth     = 2
	rocketHeight    = 6
	sparkRadius     = 2
	rocketLightness = 0.5
	sparkLightness  = 0.6
)

var (
	snowColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	rainColor = color.NRGBA{R: 174, G: 194, B: 224, A: 255}
)

// WithOpacity returns c with alpha set from an opacity in [0, 1].
func WithOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	c.A = uint8(math.Round(opacity * 255))
	return c
}

// HueColor converts a hue in degrees to a fully saturated color at the
// given lightness.
func HueColor(hue, lightness float64) color.NRGBA {
	r, g, b := colorful.Hsl(math.Mod(hue, 360), 1, lightness).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func drawSnowflake(c Canvas, p *Snowflake) {
	c.FillCircle(p.X, p.Y, p.Size, WithOpacity(snowColor, p.Opacity))
}

func drawRaindrop(c Canvas, p *Raindrop) {
	c.StrokeLine(p.X, p.Y, p.X, p.Y+p.Length, rainStrokeWidth, WithOpacity(rainColor, p.Opacity))
}

func drawRocket(c Canvas, p *Rocket) {
	c.FillRect(p.X, p.Y, rocketWidth, rocketHeight, HueColor(p.Hue, rocketLightness))
}

// drawSpark composites additively so overlapping sparks glow.
func drawSpark(c Canvas, p *Spark) {
	c.SetBlend(BlendAdditive)
	c.FillCircle(p.X, p.Y, sparkRadius, WithOpacity(HueColor(p.Hue, sparkLightness), p.Opacity))
	c.SetBlend(BlendNormal)
}
