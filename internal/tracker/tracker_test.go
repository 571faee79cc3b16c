package tracker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/liftlog/internal/catalog"
	"github.com/sadopc/liftlog/internal/export"
	"github.com/sadopc/liftlog/internal/history"
	"github.com/sadopc/liftlog/internal/rewards"
	"github.com/sadopc/liftlog/internal/store"
	"github.com/sadopc/liftlog/internal/workout"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTracker(t *testing.T) (*Tracker, *clock, *store.Memory) {
	t.Helper()
	c := &clock{t: time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)}
	kv := store.NewMemoryKV()
	tr, err := New(Options{KV: kv, Location: time.UTC, Now: c.Now})
	require.NoError(t, err)
	return tr, c, kv
}

func lbs(v float64) *float64 { return &v }

// inputFor returns a valid input for the current exercise.
func inputFor(ex workout.Exercise) workout.SetInput {
	switch {
	case ex.Stopwatch:
		return workout.SetInput{Duration: 30 * time.Second}
	case ex.Bodyweight:
		return workout.SetInput{Reps: 10}
	}
	return workout.SetInput{Weight: lbs(50), Reps: 10}
}

// runToEnd logs every remaining set, skipping rest.
func runToEnd(t *testing.T, tr *Tracker) {
	t.Helper()
	for i := 0; i < 100; i++ {
		out, err := tr.LogSet(inputFor(tr.Session().Current()))
		require.NoError(t, err)
		if out.Completed {
			return
		}
		require.NoError(t, tr.SkipRest())
	}
	t.Fatal("workout never completed")
}

// ============================================================
// Workout flow
// ============================================================

func TestNewRequiresKV(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestFullWorkoutLandsInHistory(t *testing.T) {
	tr, _, kv := newTracker(t)
	assert.Equal(t, "A", tr.NextWorkout().Key)

	require.NoError(t, tr.Start("A", nil))
	_, saved, _ := kv.Load(ActiveSessionKey)
	assert.True(t, saved)

	runToEnd(t, tr)

	assert.Equal(t, workout.Completed, tr.Session().Phase())
	assert.Equal(t, 1, tr.History().Len())
	assert.Equal(t, history.Stars{Gold: 1}, tr.History().Stars())
	assert.Equal(t, "B", tr.NextWorkout().Key)

	_, saved, _ = kv.Load(ActiveSessionKey)
	assert.False(t, saved, "saved session cleared on completion")

	last, _ := tr.History().Last()
	assert.Len(t, last.Exercises, 18)

	tr.Dismiss()
	assert.Equal(t, workout.NotStarted, tr.Session().Phase())
}

func TestStartTwiceFails(t *testing.T) {
	tr, _, _ := newTracker(t)
	require.NoError(t, tr.Start("A", nil))
	assert.ErrorIs(t, tr.Start("B", nil), ErrSessionInProgress)
	assert.ErrorIs(t, tr.Resume(), ErrSessionInProgress)
}

func TestStartUnknown(t *testing.T) {
	tr, _, _ := newTracker(t)
	assert.ErrorIs(t, tr.Start("Z", nil), workout.ErrUnknownWorkout)
}

func TestRestExpiryNavigates(t *testing.T) {
	tr, c, _ := newTracker(t)
	require.NoError(t, tr.Start("A", nil))
	out, err := tr.LogSet(workout.SetInput{Weight: lbs(95), Reps: 8})
	require.NoError(t, err)
	require.NoError(t, tr.BeginRest(out.Rest))

	c.Advance(time.Minute)
	moved, err := tr.Tick()
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 2*time.Minute, tr.Rest().Remaining())

	c.Advance(2 * time.Minute)
	moved, err = tr.Tick()
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, workout.InProgress, tr.Session().Phase())
	assert.Equal(t, workout.Position{Exercise: 0, Set: 1}, tr.Session().Position())
	assert.False(t, tr.Rest().Running())
}

func TestExitDiscards(t *testing.T) {
	tr, _, kv := newTracker(t)
	require.NoError(t, tr.Start("A", nil))
	_, err := tr.LogSet(workout.SetInput{Weight: lbs(95), Reps: 8})
	require.NoError(t, err)

	require.NoError(t, tr.RequestExit())
	tr.CancelExit()
	assert.True(t, tr.Session().Active())

	require.NoError(t, tr.RequestExit())
	require.NoError(t, tr.Exit())
	assert.False(t, tr.Session().Active())
	assert.Equal(t, 0, tr.History().Len())
	_, saved, _ := kv.Load(ActiveSessionKey)
	assert.False(t, saved)
}

func TestLogTimedUsesStopwatch(t *testing.T) {
	tr, c, _ := newTracker(t)
	require.NoError(t, tr.Start("C", nil))
	// C ends with the plank
	w, _ := catalog.Get("C")
	for tr.Session().Position().Exercise < len(w.Exercises)-1 {
		_, err := tr.LogSet(inputFor(tr.Session().Current()))
		require.NoError(t, err)
		require.NoError(t, tr.SkipRest())
	}
	require.True(t, tr.Session().Current().Stopwatch)

	tr.Stopwatch().Start()
	c.Advance(42 * time.Second)
	out, err := tr.LogTimed()
	require.NoError(t, err)
	assert.Equal(t, 42*time.Second, out.Set.Duration())
	assert.Zero(t, tr.Stopwatch().Elapsed())
}

func TestSwapPersists(t *testing.T) {
	tr, _, _ := newTracker(t)
	require.NoError(t, tr.Start("A", nil))
	for i := 0; i < 3; i++ {
		_, err := tr.LogSet(workout.SetInput{Weight: lbs(95), Reps: 8})
		require.NoError(t, err)
		require.NoError(t, tr.SkipRest())
	}
	_, err := tr.LogSet(workout.SetInput{Reps: 12})
	require.NoError(t, err)

	n, err := tr.Swap("Push-ups/DB Bench", "DB Bench")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	snap, err := tr.Saved()
	require.NoError(t, err)
	assert.Equal(t, "DB Bench", snap.ExerciseChoices["Push-ups/DB Bench"])
	assert.Len(t, snap.SessionData, 3)

	on, err := tr.ToggleSuperset("Push-ups/DB Bench")
	require.NoError(t, err)
	assert.False(t, on)
	snap, _ = tr.Saved()
	assert.Equal(t, []string{"Push-ups/DB Bench"}, snap.DisabledSupersets)
}

// ============================================================
// Resume
// ============================================================

func TestResumeRestoresSession(t *testing.T) {
	tr, c, kv := newTracker(t)
	require.NoError(t, tr.Start("B", map[string]string{"Lat Pulldowns/Assisted Pullups": "Assisted Pullups"}))
	_, err := tr.LogSet(workout.SetInput{Weight: lbs(65), Reps: 10})
	require.NoError(t, err)
	require.NoError(t, tr.SetDraft(workout.Draft{Weight: "70", Reps: "9"}))

	c.Advance(2 * time.Hour)
	again, err := New(Options{KV: kv, Location: time.UTC, Now: c.Now})
	require.NoError(t, err)
	assert.True(t, again.HasSaved())
	require.NoError(t, again.Resume())

	s := again.Session()
	assert.Equal(t, workout.RestPending, s.Phase())
	assert.Equal(t, "B", s.Workout().Key)
	assert.Equal(t, "Assisted Pullups", s.Exercise(1).Name)
	assert.Len(t, s.Log(), 1)
	assert.Equal(t, workout.Draft{Weight: "70", Reps: "9"}, s.Draft())
}

func TestResumeStale(t *testing.T) {
	tr, c, kv := newTracker(t)
	require.NoError(t, tr.Start("A", nil))

	c.Advance(13 * time.Hour)
	again, err := New(Options{KV: kv, Location: time.UTC, Now: c.Now})
	require.NoError(t, err)
	assert.False(t, again.HasSaved())

	err = again.Resume()
	assert.ErrorIs(t, err, ErrStaleSession)
	_, saved, _ := kv.Load(ActiveSessionKey)
	assert.False(t, saved, "stale record deleted")
	assert.ErrorIs(t, again.Resume(), ErrNoActiveSession)
}

func TestResumeCustomStaleWindow(t *testing.T) {
	c := &clock{t: time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)}
	kv := store.NewMemoryKV()
	tr, err := New(Options{KV: kv, Now: c.Now, StaleAfter: time.Hour})
	require.NoError(t, err)
	require.NoError(t, tr.Start("A", nil))

	c.Advance(90 * time.Minute)
	again, _ := New(Options{KV: kv, Now: c.Now, StaleAfter: time.Hour})
	assert.ErrorIs(t, again.Resume(), ErrStaleSession)
}

func TestResumeNothingSaved(t *testing.T) {
	tr, _, _ := newTracker(t)
	assert.ErrorIs(t, tr.Resume(), ErrNoActiveSession)
}

func TestResumeCorruptRecord(t *testing.T) {
	tr, _, kv := newTracker(t)
	require.NoError(t, kv.Save(ActiveSessionKey, []byte("garbage")))
	err := tr.Resume()
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, saved, _ := kv.Load(ActiveSessionKey)
	assert.False(t, saved)
}

// ============================================================
// Days, rewards, records
// ============================================================

func TestLogDay(t *testing.T) {
	tr, c, _ := newTracker(t)
	_, err := tr.LogDay(history.KindRest, c.Now(), "")
	require.NoError(t, err)
	_, err = tr.LogDay(history.KindCustom, c.Now().AddDate(0, 0, 1), "swim 30 min")
	require.NoError(t, err)
	assert.Equal(t, history.Stars{Gold: 1, Silver: 1}, tr.History().Stars())

	sess, ok := tr.History().ForDate(c.Now().AddDate(0, 0, 1))
	require.True(t, ok)
	assert.Equal(t, "swim 30 min", sess.CustomPlan)

	_, err = tr.LogDay(history.KindA, c.Now(), "")
	assert.ErrorIs(t, err, ErrNotADayKind)

	ok, err = tr.DeleteDay(c.Now())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, history.Stars{Gold: 1}, tr.History().Stars())
}

func TestPurchase(t *testing.T) {
	tr, c, _ := newTracker(t)
	for d := 0; d < 3; d++ {
		_, err := tr.LogDay(history.KindHotYoga, c.Now().AddDate(0, 0, d), "")
		require.NoError(t, err)
	}
	require.Equal(t, 9, tr.Points())

	red, err := tr.Purchase("lazy-morning")
	require.NoError(t, err)
	assert.NotEmpty(t, red.ID)
	assert.Equal(t, 9, red.Cost)
	assert.Equal(t, history.Stars{}, tr.History().Stars())
	assert.Len(t, tr.History().Redemptions(), 1)

	_, err = tr.Purchase("fancy-coffee")
	assert.ErrorIs(t, err, rewards.ErrInsufficientPoints)
	assert.Len(t, tr.History().Redemptions(), 1)

	_, err = tr.Purchase("yacht")
	assert.ErrorIs(t, err, ErrUnknownReward)
}

func TestRecords(t *testing.T) {
	tr, _, _ := newTracker(t)
	require.NoError(t, tr.Start("A", nil))
	runToEnd(t, tr)
	recs := tr.Records()
	assert.NotEmpty(t, recs)
	for i := 1; i < len(recs); i++ {
		assert.Less(t, recs[i-1].Exercise, recs[i].Exercise)
	}
}

// ============================================================
// Export / import
// ============================================================

func TestExportImportRoundTrip(t *testing.T) {
	tr, c, _ := newTracker(t)
	require.NoError(t, tr.Start("A", nil))
	runToEnd(t, tr)
	_, err := tr.LogDay(history.KindRest, c.Now().AddDate(0, 0, 1), "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json.gz")
	require.NoError(t, tr.Export(path))

	other, _, _ := newTracker(t)
	n, err := other.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, tr.History().Stars(), other.History().Stars())
	assert.Equal(t, tr.History().Len(), other.History().Len())
}

func TestImportInvalidLeavesHistory(t *testing.T) {
	tr, c, _ := newTracker(t)
	_, err := tr.LogDay(history.KindRest, c.Now(), "")
	require.NoError(t, err)

	bad := export.Payload{History: []history.Session{{Workout: "yoga", Date: c.Now()}}}
	err = tr.ImportPayload(bad)
	assert.True(t, errors.Is(err, export.ErrInvalidShape))
	assert.Equal(t, 1, tr.History().Len())
	assert.Equal(t, history.Stars{Silver: 1}, tr.History().Stars())

	_, err = tr.Import(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Equal(t, 1, tr.History().Len())
}

func TestImportWithoutStarsRecomputes(t *testing.T) {
	tr, c, _ := newTracker(t)
	p := export.Payload{History: []history.Session{
		{Workout: history.KindA, Date: c.Now()},
		{Workout: history.KindRest, Date: c.Now().AddDate(0, 0, -1)},
	}}
	require.NoError(t, tr.ImportPayload(p))
	assert.Equal(t, history.Stars{Gold: 1, Silver: 1}, tr.History().Stars())
}

func TestImportRejectsSameDayAcrossOffsets(t *testing.T) {
	tr, c, _ := newTracker(t)
	_, err := tr.LogDay(history.KindRest, c.Now(), "")
	require.NoError(t, err)

	// 01:00 at +05:00 is 20:00 UTC the day before
	east := time.FixedZone("UTC+5", 5*3600)
	p := export.Payload{History: []history.Session{
		{Workout: history.KindA, Date: time.Date(2026, time.January, 2, 1, 0, 0, 0, east)},
		{Workout: history.KindRest, Date: time.Date(2026, time.January, 1, 22, 0, 0, 0, time.UTC)},
	}}
	err = tr.ImportPayload(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, export.ErrInvalidShape))
	assert.Equal(t, 1, tr.History().Len())
	assert.Equal(t, history.Stars{Silver: 1}, tr.History().Stars())
}
