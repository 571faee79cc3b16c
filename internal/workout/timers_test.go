package workout

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Rest timer
// ============================================================

func TestRestTimerCountsDown(t *testing.T) {
	c := newClock()
	rt := NewRestTimer(c.Now)
	assert.False(t, rt.Running())

	rt.Start(RestDefault)
	assert.True(t, rt.Running())
	assert.Equal(t, RestDefault, rt.Remaining())

	c.Advance(30 * time.Second)
	assert.Equal(t, 90*time.Second, rt.Remaining())
	assert.InDelta(t, 0.25, rt.Progress(), 1e-9)
	assert.False(t, rt.Expired())

	c.Advance(5 * time.Minute)
	assert.Zero(t, rt.Remaining())
	assert.True(t, rt.Expired())
	assert.Equal(t, 1.0, rt.Progress())
}

func TestRestTimerPauseFreezes(t *testing.T) {
	c := newClock()
	rt := NewRestTimer(c.Now)
	rt.Start(RestShort)
	c.Advance(10 * time.Second)

	rt.Toggle()
	assert.True(t, rt.Paused())
	c.Advance(time.Hour)
	assert.Equal(t, 50*time.Second, rt.Remaining())
	assert.False(t, rt.Expired())

	rt.Toggle()
	assert.False(t, rt.Paused())
	c.Advance(20 * time.Second)
	assert.Equal(t, 30*time.Second, rt.Remaining())
}

func TestRestTimerStop(t *testing.T) {
	rt := NewRestTimer(newClock().Now)
	rt.Start(RestLong)
	rt.Stop()
	assert.False(t, rt.Running())
	assert.Zero(t, rt.Remaining())
	assert.Zero(t, rt.Progress())

	// pause/resume on a stopped timer do nothing
	rt.Pause()
	rt.Resume()
	assert.False(t, rt.Running())
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "02:00", FormatClock(RestDefault))
	assert.Equal(t, "00:01", FormatClock(200*time.Millisecond))
	assert.Equal(t, "00:00", FormatClock(-time.Second))
	assert.Equal(t, "03:00", FormatClock(RestLong))
}

func TestChimeIsThreeNotes(t *testing.T) {
	require.Len(t, ChimeFrequencies, 3)
	assert.Less(t, ChimeFrequencies[0], ChimeFrequencies[2])
}

// ============================================================
// Stopwatch
// ============================================================

func TestStopwatchAccumulates(t *testing.T) {
	c := newClock()
	w := NewStopwatch(c.Now)
	w.Start()
	c.Advance(20 * time.Second)
	w.Pause()
	c.Advance(time.Minute)
	assert.Equal(t, 20*time.Second, w.Elapsed())

	w.Toggle()
	assert.True(t, w.Running())
	c.Advance(5 * time.Second)
	assert.Equal(t, 25*time.Second, w.Elapsed())

	assert.Equal(t, 25*time.Second, w.Stop())
	assert.Zero(t, w.Elapsed())
	assert.False(t, w.Running())
}

func TestStopwatchDoubleStart(t *testing.T) {
	c := newClock()
	w := NewStopwatch(c.Now)
	w.Start()
	c.Advance(3 * time.Second)
	w.Start()
	assert.Equal(t, 3*time.Second, w.Elapsed())
}

func TestFormatHold(t *testing.T) {
	assert.Equal(t, "0:42.5", FormatHold(42500*time.Millisecond))
	assert.Equal(t, "1:05.0", FormatHold(65*time.Second))
}

// ============================================================
// Plates and encouragement
// ============================================================

func TestPlates(t *testing.T) {
	load := Plates(135, 45, "lb")
	assert.Equal(t, []float64{45}, load.PerSide)
	assert.Equal(t, "45 per side", load.String())

	load = Plates(160, 45, "lb")
	assert.Equal(t, []float64{45, 10, 2.5}, load.PerSide)
	assert.Zero(t, load.Remainder)

	load = Plates(46, 45, "lb")
	assert.Empty(t, load.PerSide)
	assert.Equal(t, 1.0, load.Remainder)

	assert.Equal(t, "empty bar", Plates(45, 45, "lb").String())
	assert.Equal(t, []float64{25, 5}, Plates(80, 20, "kg").PerSide)
}

func TestEncouragerNeverRepeats(t *testing.T) {
	e := NewEncourager(rand.New(rand.NewPCG(1, 2)))
	prev := e.Next()
	for i := 0; i < 200; i++ {
		next := e.Next()
		require.NotEqual(t, prev, next)
		prev = next
	}
}
