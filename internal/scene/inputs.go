package scene

import (
	"sync"

	"github.com/san-kum/ambient/internal/ambient"
)

// Inputs holds the latest host events. Handlers may write from any
// goroutine; the render tick consumes a snapshot at its start.
type Inputs struct {
	mu      sync.Mutex
	width   int
	height  int
	resized bool
	pointer ambient.Point
	moved   bool
}

type snapshot struct {
	width, height int
	resized       bool
	pointer       ambient.Point
	moved         bool
}

func (in *Inputs) Resize(w, h int) {
	in.mu.Lock()
	in.width, in.height = w, h
	in.resized = true
	in.mu.Unlock()
}

func (in *Inputs) PointerMove(x, y float64) {
	in.mu.Lock()
	in.pointer = ambient.Point{X: x, Y: y}
	in.moved = true
	in.mu.Unlock()
}

// take returns the pending state and clears the dirty flags.
func (in *Inputs) take() snapshot {
	in.mu.Lock()
	defer in.mu.Unlock()
	s := snapshot{
		width:   in.width,
		height:  in.height,
		resized: in.resized,
		pointer: in.pointer,
		moved:   in.moved,
	}
	in.resized = false
	in.moved = false
	return s
}
