// Package ambient provides the shared primitives of the animated background
// and cursor layers.
//
// The package defines the data records and the seams every renderer and host
// plugs into:
//
//   - [Strip]: one vertical band of the strip field
//   - [DeviceProfile]: strip density and speed tuning for a viewport class
//   - [Point]: smoothed cursor position and pointer targets
//   - [Surface]: an immediate-mode drawing target
//   - [Host]: creates and releases surfaces for named containers
//   - [Scheduler]: invokes one frame callback per display refresh
//
// # Example
//
//	host := raster.NewHost(1280, 800, "bg-canvas-hero", "cursor-overlay")
//	sc := scene.New(host, scene.WithSeed(42))
//	pump := frame.NewPump()
//	_ = sc.Start(pump, 1280, 800)
//	pump.Step(60)
//
// # Thread Safety
//
// Components are confined to the goroutine that drives the scheduler. Only
// input events (resize, pointer move) may arrive from other goroutines, and
// they go through the scene's guarded input record.
package ambient
