package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/atmos/internal/engine"
)

// rlCanvas draws engine frames with raylib immediate-mode calls. It must
// only be used between BeginDrawing and EndDrawing.
type rlCanvas struct {
	blend engine.BlendMode
}

func (c *rlCanvas) Clear() {
	c.SetBlend(engine.BlendNormal)
	rl.ClearBackground(rl.Blank)
}

func (c *rlCanvas) SetBlend(mode engine.BlendMode) {
	if mode == c.blend {
		return
	}
	if mode == engine.BlendAdditive {
		rl.BeginBlendMode(rl.BlendAdditive)
	} else {
		rl.EndBlendMode()
	}
	c.blend = mode
}

func (c *rlCanvas) FillCircle(x, y, r float64, col color.NRGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toColor(col))
}

func (c *rlCanvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	rl.DrawRectangleV(rl.NewVector2(float32(x), float32(y)), rl.NewVector2(float32(w), float32(h)), toColor(col))
}

func (c *rlCanvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	rl.DrawLineEx(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), float32(width), toColor(col))
}

func toColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
