package workout

import (
	"fmt"
	"time"
)

type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

// ChimeFrequencies are the notes played when rest runs out (C5, E5, G5).
var ChimeFrequencies = []float64{523.25, 659.25, 783.99}

// RestTimer counts down against a deadline so that a late tick never drifts
// the remaining time.
type RestTimer struct {
	now func() time.Time

	state     timerState
	total     time.Duration
	deadline  time.Time
	remaining time.Duration // frozen while paused
}

func NewRestTimer(now func() time.Time) *RestTimer {
	if now == nil {
		now = time.Now
	}
	return &RestTimer{now: now}
}

// Start begins a countdown of d, replacing any running one.
func (t *RestTimer) Start(d time.Duration) {
	t.state = timerRunning
	t.total = d
	t.deadline = t.now().Add(d)
	t.remaining = d
}

func (t *RestTimer) Pause() {
	if t.state != timerRunning {
		return
	}
	t.remaining = t.Remaining()
	t.state = timerPaused
}

func (t *RestTimer) Resume() {
	if t.state != timerPaused {
		return
	}
	t.deadline = t.now().Add(t.remaining)
	t.state = timerRunning
}

func (t *RestTimer) Toggle() {
	switch t.state {
	case timerRunning:
		t.Pause()
	case timerPaused:
		t.Resume()
	}
}

// Stop cancels the countdown.
func (t *RestTimer) Stop() {
	t.state = timerStopped
	t.remaining = 0
	t.total = 0
}

// Remaining never goes below zero.
func (t *RestTimer) Remaining() time.Duration {
	switch t.state {
	case timerRunning:
		if d := t.deadline.Sub(t.now()); d > 0 {
			return d
		}
		return 0
	case timerPaused:
		return t.remaining
	}
	return 0
}

// Expired reports whether a running countdown has reached zero.
func (t *RestTimer) Expired() bool {
	return t.state == timerRunning && t.Remaining() == 0
}

func (t *RestTimer) Running() bool { return t.state != timerStopped }

func (t *RestTimer) Paused() bool { return t.state == timerPaused }

func (t *RestTimer) Total() time.Duration { return t.total }

// Progress is the elapsed fraction in [0, 1].
func (t *RestTimer) Progress() float64 {
	if t.total <= 0 {
		return 0
	}
	p := 1 - float64(t.Remaining())/float64(t.total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// FormatClock renders d as mm:ss, rounding partial seconds up so a countdown
// shows 00:01 until it actually expires.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
