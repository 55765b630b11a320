// Package viz is the terminal host for the particle engine.
//
// The package implements a full-screen overlay using the Bubble Tea
// framework:
//
//   - [Model]: owns the engine and steps it once per tick
//   - [Canvas]: braille surface implementing engine.Canvas, one color per cell
//   - Theme selection with 5 built-in color schemes for the status bar
//
// Each terminal cell stands for an 8x16 pixel block, so the engine runs at
// the same scale it would on a window.
//
// # Key Bindings
//
//	C S R F - Force clear / snow / rain / fireworks
//	A       - Return to weather-driven selection
//	T       - Cycle color themes
//	G       - Toggle GIF recording
//	?       - Show help overlay
//	Q       - Quit
//
// # Threading
//
// Only Update touches the engine. Background producers such as the weather
// poller deliver [StateMsg] values through tea.Program.Send.
package viz
