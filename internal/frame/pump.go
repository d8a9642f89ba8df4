package frame

import (
	"sync"

	"github.com/san-kum/ambient/internal/ambient"
)

// Pump is a scheduler advanced by explicit Tick calls.
type Pump struct {
	mu     sync.Mutex
	tickMu sync.Mutex
	onTick func()
	ticks  uint64
}

func NewPump() *Pump {
	return &Pump{}
}

func (p *Pump) Start(onTick func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.onTick != nil {
		return ambient.ErrSchedulerRunning
	}
	p.onTick = onTick
	return nil
}

func (p *Pump) Stop() {
	p.mu.Lock()
	p.onTick = nil
	p.mu.Unlock()
}

func (p *Pump) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.onTick != nil
}

// Tick runs one frame and reports whether a callback was registered.
func (p *Pump) Tick() bool {
	p.tickMu.Lock()
	defer p.tickMu.Unlock()

	p.mu.Lock()
	fn := p.onTick
	p.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()

	p.mu.Lock()
	p.ticks++
	p.mu.Unlock()
	return true
}

// Step runs up to n frames and returns how many ran.
func (p *Pump) Step(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		if !p.Tick() {
			break
		}
		ran++
	}
	return ran
}

func (p *Pump) Ticks() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticks
}
