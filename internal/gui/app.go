// Package gui hosts the engine in a transparent, click-through, always-on-top
// raylib window covering the monitor.
package gui

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/atmos/internal/engine"
	"github.com/san-kum/atmos/internal/selector"
)

var (
	ColText    = rl.NewColor(220, 220, 220, 200)
	ColTextDim = rl.NewColor(140, 140, 140, 160)
)

// Ambience follows the engine once per frame, e.g. the sound layer.
type Ambience interface {
	Update(s engine.Stats)
}

type App struct {
	Engine   *engine.Engine
	FPS      int32
	Auto     bool
	ShowHUD  bool
	Ambience Ambience
	// StartMode is applied once the window size is known.
	StartMode engine.Mode
	// Interactive drops mouse passthrough so the window can take focus and
	// keys work. A click-through overlay is steered from the CLI and config.
	Interactive bool

	states  chan selector.State
	state   selector.State
	hasSt   bool
	canvas  rlCanvas
	running bool
}

func NewApp(eng *engine.Engine, fps int, auto bool) *App {
	if fps <= 0 {
		fps = 60
	}
	return &App{
		Engine:  eng,
		FPS:     int32(fps),
		Auto:    auto,
		ShowHUD: true,
		states:  make(chan selector.State, 1),
	}
}

// Publish hands a selector state to the render loop. It is safe to call
// from any goroutine and keeps only the newest pending state.
func (a *App) Publish(s selector.State) {
	for {
		select {
		case a.states <- s:
			return
		default:
		}
		select {
		case <-a.states:
		default:
		}
	}
}

func windowFlags(interactive bool) uint32 {
	flags := uint32(rl.FlagWindowTransparent | rl.FlagWindowUndecorated |
		rl.FlagWindowTopmost | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if !interactive {
		flags |= rl.FlagWindowMousePassthrough
	}
	return flags
}

// keyHint is the second HUD line. Keys are only listed when the window can
// receive them.
func keyHint(interactive bool) string {
	if interactive {
		return "[C/S/R/F] MODE  [A] AUTO  [H] HUD  [Q] QUIT"
	}
	return "CLICK-THROUGH  use --mode --auto=false or --weather to steer, --interactive for keys"
}

func initWindow(fps int32, interactive bool) {
	rl.SetConfigFlags(windowFlags(interactive))
	rl.InitWindow(0, 0, "atmos")
	mon := rl.GetCurrentMonitor()
	rl.SetWindowSize(rl.GetMonitorWidth(mon), rl.GetMonitorHeight(mon))
	rl.SetWindowPosition(0, 0)
	rl.SetTargetFPS(fps)
	rl.SetExitKey(0)
}

// Run opens the overlay and blocks until the window closes, Q is pressed
// (interactive only) or ctx is done. It must be called from the main goroutine.
func (a *App) Run(ctx context.Context) error {
	initWindow(a.FPS, a.Interactive)
	defer rl.CloseWindow()

	a.Engine.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	a.setMode(a.StartMode)
	a.running = true
	for a.running && !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		a.Update()
		a.Draw()
	}
	return nil
}

func (a *App) drainStates() {
	for {
		select {
		case s := <-a.states:
			a.state, a.hasSt = s, true
			if a.Auto {
				a.setMode(s.Mode())
			}
		default:
			return
		}
	}
}

func (a *App) setMode(m engine.Mode) {
	if err := a.Engine.SetMode(m); err != nil {
		rl.TraceLog(rl.LogWarning, "set mode: %v", err)
	}
}

func (a *App) force(m engine.Mode) {
	a.Auto = false
	a.setMode(m)
}

func (a *App) Update() {
	a.drainStates()

	if rl.IsWindowResized() {
		a.Engine.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}

	if !a.Interactive {
		return
	}
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.running = false
	case rl.IsKeyPressed(rl.KeyC):
		a.force(engine.ModeClear)
	case rl.IsKeyPressed(rl.KeyS):
		a.force(engine.ModeSnow)
	case rl.IsKeyPressed(rl.KeyR):
		a.force(engine.ModeRain)
	case rl.IsKeyPressed(rl.KeyF):
		a.force(engine.ModeFireworks)
	case rl.IsKeyPressed(rl.KeyA):
		a.Auto = true
		if a.hasSt {
			a.setMode(a.state.Mode())
		}
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	a.Engine.Frame(&a.canvas)
	a.canvas.SetBlend(engine.BlendNormal)
	if a.Ambience != nil {
		a.Ambience.Update(a.Engine.Stats())
	}
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	h := int32(rl.GetScreenHeight())
	line := fmt.Sprintf("atmos :: %s", a.Engine.Mode())
	if a.hasSt {
		line += fmt.Sprintf("  %s", a.state.Condition)
		if a.state.TempF != nil {
			line += fmt.Sprintf(" %.0fF", *a.state.TempF)
		}
		if g := a.state.Season.Greeting(); g != "" {
			line += "  " + g
		}
	}
	if !a.Auto {
		line += "  [manual]"
	}
	rl.DrawText(line, 20, h-44, 16, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS  n=%d  %s", rl.GetFPS(), a.Engine.Len(), keyHint(a.Interactive)), 20, h-24, 12, ColTextDim)
}
