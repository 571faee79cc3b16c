package workout

import (
	"fmt"
	"time"
)

// Stopwatch measures timed holds. Elapsed time accumulates across pauses.
type Stopwatch struct {
	now func() time.Time

	running   bool
	startedAt time.Time
	elapsed   time.Duration // accumulated before startedAt
}

func NewStopwatch(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now}
}

func (w *Stopwatch) Start() {
	if w.running {
		return
	}
	w.running = true
	w.startedAt = w.now()
}

func (w *Stopwatch) Pause() {
	if !w.running {
		return
	}
	w.elapsed += w.now().Sub(w.startedAt)
	w.running = false
}

func (w *Stopwatch) Toggle() {
	if w.running {
		w.Pause()
	} else {
		w.Start()
	}
}

func (w *Stopwatch) Reset() {
	w.running = false
	w.elapsed = 0
}

func (w *Stopwatch) Running() bool { return w.running }

func (w *Stopwatch) Elapsed() time.Duration {
	if w.running {
		return w.elapsed + w.now().Sub(w.startedAt)
	}
	return w.elapsed
}

// Stop halts the watch and returns the final reading, then resets it.
func (w *Stopwatch) Stop() time.Duration {
	d := w.Elapsed()
	w.Reset()
	return d
}

// FormatHold renders a hold duration as m:ss.t.
func FormatHold(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int(d / (100 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}
