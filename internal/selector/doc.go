// Package selector decides which atmosphere the engine should show.
//
// A [State] combines the current weather [Condition] (from a WMO weather
// code) with the calendar [Season]. [Select] maps the pair onto an engine
// mode:
//
//	new year's day    -> fireworks
//	snow              -> snow
//	rain or storm     -> rain
//	anything else     -> clear
//
// [Poller] refreshes the state on an interval and publishes it through a
// callback. It never touches an engine; hosts forward the selected mode to
// their own render goroutine.
package selector
