package frame

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/ambient/internal/ambient"
)

const DefaultFPS = 60

// Ticker invokes the frame callback from a single goroutine at a fixed rate.
// Slow frames delay the next tick instead of queueing extra ones.
type Ticker struct {
	interval time.Duration
	limit    uint64
	log      *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	ticks  atomic.Uint64
}

type TickerOption func(*Ticker)

// WithLimit stops the loop on its own after n ticks.
func WithLimit(n int) TickerOption {
	return func(t *Ticker) {
		if n > 0 {
			t.limit = uint64(n)
		}
	}
}

func WithLogger(l *zap.Logger) TickerOption {
	return func(t *Ticker) { t.log = l }
}

func NewTicker(fps int, opts ...TickerOption) *Ticker {
	if fps <= 0 {
		fps = DefaultFPS
	}
	t := &Ticker{
		interval: time.Second / time.Duration(fps),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Ticker) Start(onTick func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return ambient.ErrSchedulerRunning
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})
	t.ticks.Store(0)
	go t.loop(ctx, onTick, t.done)
	t.log.Debug("ticker started", zap.Duration("interval", t.interval), zap.Uint64("limit", t.limit))
	return nil
}

func (t *Ticker) loop(ctx context.Context, onTick func(), done chan struct{}) {
	defer close(done)
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
		}
		onTick()
		if n := t.ticks.Add(1); t.limit > 0 && n >= t.limit {
			t.finish(done)
			return
		}
	}
}

// finish releases the loop that owns done after it reached the tick limit,
// so Start may run again without a Stop.
func (t *Ticker) finish(done chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done != done || t.cancel == nil {
		return
	}
	t.cancel()
	t.cancel = nil
	t.log.Debug("ticker reached limit", zap.Uint64("ticks", t.ticks.Load()))
}

// Stop cancels the loop and waits for an in-flight tick to finish. It must
// not be called from inside the tick callback.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel = nil
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	t.log.Debug("ticker stopped", zap.Uint64("ticks", t.ticks.Load()))
}

// Done is closed when the loop exits, either after Stop or the tick limit.
// It returns nil before the first Start. Once the limit is reached the
// ticker can be started again directly.
func (t *Ticker) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

func (t *Ticker) Ticks() uint64 { return t.ticks.Load() }

func (t *Ticker) Interval() time.Duration { return t.interval }
