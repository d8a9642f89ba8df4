package ambient

import "errors"

var (
	// ErrNoContainer indicates the drawing target is absent from the current
	// document. Components treat it as a silent no-op.
	ErrNoContainer = errors.New("ambient: container not present")

	// ErrSchedulerRunning indicates Start was called on a running scheduler.
	ErrSchedulerRunning = errors.New("ambient: scheduler already running")

	// ErrInvalidViewport indicates a non-positive viewport dimension.
	ErrInvalidViewport = errors.New("ambient: invalid viewport size")
)
