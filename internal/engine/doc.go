// Package engine implements the ambient particle simulation behind atmos.
//
// An [Engine] owns the surface dimensions, the active [Mode] and a collection
// of particles. Hosts drive it once per display frame:
//
//   - [Engine.SetMode]: switch between clear, snow, rain and fireworks
//   - [Engine.Resize]: follow the viewport
//   - [Engine.Frame]: clear a [Canvas], step physics and draw every particle
//   - [Engine.Step]: headless physics step, used for pre-warming and benchmarks
//
// Particles form a closed sum type: [Snowflake], [Raindrop], [Rocket] and
// [Spark]. Snow and rain are recycled in place; rockets and sparks are born
// and removed while fireworks are active.
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. A host must call every method from
// the goroutine that runs its frame loop and forward mode changes from other
// goroutines by message passing.
package engine
