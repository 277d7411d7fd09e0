package timer

import "time"

// Ticker is a wall-clock Clock. Ticks arrive on C; the owner reads them and
// passes each generation to Timer.Tick.
type Ticker struct {
	C        chan uint64
	Interval time.Duration

	done chan struct{}
}

// NewTicker returns a one-second ticker.
func NewTicker() *Ticker {
	return &Ticker{C: make(chan uint64), Interval: time.Second}
}

// Start begins delivering ticks for gen, replacing any earlier run.
func (k *Ticker) Start(gen uint64) {
	k.Stop()
	done := make(chan struct{})
	k.done = done
	interval := k.Interval
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-done:
				return
			case <-tk.C:
				select {
				case k.C <- gen:
				case <-done:
					return
				}
			}
		}
	}()
}

// Stop cancels the current run. A tick already handed over may still be
// read; its stale generation makes Timer.Tick ignore it.
func (k *Ticker) Stop() {
	if k.done != nil {
		close(k.done)
		k.done = nil
	}
}
