// Package render provides an in-memory [engine.Canvas] that draws with
// fogleman/gg into an image.RGBA. It is used for GIF recording, headless
// runs and tests.
package render
