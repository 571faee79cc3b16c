package records

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sadopc/liftlog/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.April, d, 9, 0, 0, 0, time.UTC)
}

func set(name string, weight float64, reps int) history.SetLog {
	return history.SetLog{Exercise: name, Set: 1, Weight: weight, Reps: reps}
}

func timed(name string, secs float64) history.SetLog {
	return history.SetLog{Exercise: name, Set: 1, DurationSeconds: &secs}
}

func sessions() []history.Session {
	return []history.Session{
		{Workout: history.KindA, Date: day(1), Exercises: []history.SetLog{
			set("Squats", 95, 8), set("Squats", 95, 10),
			set("Push-ups", 0, 15),
			set("Assisted Pullups", 60, 6),
			timed("Plank", 40),
		}},
		{Workout: history.KindB, Date: day(3), Exercises: []history.SetLog{
			set("Squats", 105, 6), set("Squats", 95, 10),
			set("Push-ups", 0, 18),
			set("Assisted Pullups", 50, 5), set("Assisted Pullups", 50, 7),
			timed("Plank", 55.5),
		}},
		{Workout: history.KindC, Date: day(5), Exercises: []history.SetLog{
			set("Squats", 105, 6),
			set("Push-ups", 0, 18),
			timed("Plank", 30),
		}},
	}
}

func TestComputePriorities(t *testing.T) {
	recs := Compute(sessions())
	require.Len(t, recs, 4)

	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.Exercise
	}
	assert.Equal(t, []string{"Assisted Pullups", "Plank", "Push-ups", "Squats"}, names)

	sq, ok := Find(recs, "Squats")
	require.True(t, ok)
	assert.Equal(t, ByWeight, sq.Policy)
	assert.Equal(t, 105.0, sq.Weight)
	assert.Equal(t, 6, sq.Reps)
	assert.Equal(t, day(3), sq.Date, "ties go to the earliest date")

	ap, _ := Find(recs, "Assisted Pullups")
	assert.Equal(t, ByAssistance, ap.Policy)
	assert.Equal(t, 50.0, ap.Weight)
	assert.Equal(t, 7, ap.Reps)

	pu, _ := Find(recs, "Push-ups")
	assert.Equal(t, ByReps, pu.Policy)
	assert.Equal(t, 18, pu.Reps)
	assert.Equal(t, day(3), pu.Date)

	pl, _ := Find(recs, "Plank")
	assert.Equal(t, ByDuration, pl.Policy)
	assert.Equal(t, 55500*time.Millisecond, pl.Duration)

	_, ok = Find(recs, "Leg Press")
	assert.False(t, ok)
}

func TestComputeOrderIndependent(t *testing.T) {
	want := Compute(sessions())
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 20; i++ {
		shuffled := sessions()
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		for _, s := range shuffled {
			rng.Shuffle(len(s.Exercises), func(a, b int) { s.Exercises[a], s.Exercises[b] = s.Exercises[b], s.Exercises[a] })
		}
		assert.Equal(t, want, Compute(shuffled))
	}
}

func TestComputeEmpty(t *testing.T) {
	assert.Empty(t, Compute(nil))
	assert.Empty(t, Compute([]history.Session{{Workout: history.KindRest, Date: day(1)}}))
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "weight", ByWeight.String())
	assert.Equal(t, "timed", ByDuration.String())
}

func TestRecordFormat(t *testing.T) {
	assert.Equal(t, "185 lb × 8", Record{Policy: ByWeight, Weight: 185, Reps: 8}.Format("lb"))
	assert.Equal(t, "40 kg assist × 6", Record{Policy: ByAssistance, Weight: 40, Reps: 6}.Format("kg"))
	assert.Equal(t, "22 reps", Record{Policy: ByReps, Reps: 22}.Format("lb"))
	assert.Equal(t, "1:05.0", Record{Policy: ByDuration, Duration: 65 * time.Second}.Format("lb"))
}
