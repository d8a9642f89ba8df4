// Package frame implements the render clocks that drive a scene.
//
// A [Pump] is stepped explicitly, either by a host that owns the display
// loop (raylib, ebiten, bubbletea) or by tests and headless renders. A
// [Ticker] paces ticks from a wall clock on its own goroutine.
//
// Both guarantee that a tick finishes before the next one begins.
package frame
