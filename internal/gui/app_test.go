package gui

import (
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/atmos/internal/engine"
	"github.com/san-kum/atmos/internal/selector"
)

func TestWindowFlags(t *testing.T) {
	if windowFlags(false)&rl.FlagWindowMousePassthrough == 0 {
		t.Error("overlay should be click-through by default")
	}
	if windowFlags(true)&rl.FlagWindowMousePassthrough != 0 {
		t.Error("interactive window must be able to take focus")
	}
	for _, interactive := range []bool{false, true} {
		if windowFlags(interactive)&rl.FlagWindowTransparent == 0 {
			t.Errorf("window not transparent (interactive=%v)", interactive)
		}
	}
}

func TestKeyHint(t *testing.T) {
	if strings.Contains(keyHint(false), "[Q]") {
		t.Error("click-through HUD should not advertise keys it cannot receive")
	}
	if !strings.Contains(keyHint(false), "--interactive") {
		t.Error("click-through HUD should point at --interactive")
	}
	if !strings.Contains(keyHint(true), "[Q] QUIT") {
		t.Error("interactive HUD should list the keys")
	}
}

func TestPublishKeepsNewest(t *testing.T) {
	eng := engine.New(100, 100, engine.DefaultConfig(), engine.WithSeed(1))
	app := NewApp(eng, 0, true)

	app.Publish(selector.State{Condition: selector.ConditionRain})
	app.Publish(selector.State{Condition: selector.ConditionSnow})
	app.drainStates()

	if app.state.Condition != selector.ConditionSnow {
		t.Errorf("expected newest state, got %v", app.state.Condition)
	}
	if eng.Mode() != engine.ModeSnow {
		t.Errorf("auto app should follow the state, mode %v", eng.Mode())
	}

	app.Auto = false
	app.Publish(selector.State{Condition: selector.ConditionRain})
	app.drainStates()
	if eng.Mode() != engine.ModeSnow {
		t.Errorf("manual app changed mode to %v", eng.Mode())
	}
}
