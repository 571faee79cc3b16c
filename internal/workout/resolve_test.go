package workout

import (
	"testing"

	"github.com/sadopc/liftlog/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, key, name string) catalog.Exercise {
	t.Helper()
	w, ok := catalog.Get(key)
	require.True(t, ok)
	i := w.Index(name)
	require.GreaterOrEqual(t, i, 0, "no %q in %s", name, key)
	return w.Exercises[i]
}

func TestResolveNoOptions(t *testing.T) {
	ex := Resolve(entry(t, "A", "Squats"), "")
	assert.Equal(t, "Squats", ex.Name)
	assert.Equal(t, "Squats", ex.Template)
	assert.Equal(t, "6-10", ex.RepRange)
	assert.False(t, ex.Bodyweight)

	abs := Resolve(entry(t, "A", "Abs"), "ignored")
	assert.Equal(t, "Abs", abs.Name)
	assert.True(t, abs.Bodyweight)
}

func TestResolveOptionOverrides(t *testing.T) {
	tmpl := entry(t, "A", "Push-ups/DB Bench")

	pu := Resolve(tmpl, "Push-ups")
	assert.Equal(t, "Push-ups", pu.Name)
	assert.Equal(t, "Push-ups/DB Bench", pu.Template)
	assert.Equal(t, "AMRAP", pu.RepRange)
	assert.True(t, pu.Bodyweight, "inferred from name")
	assert.Equal(t, "EZ Bar Curls", pu.Superset)

	db := Resolve(tmpl, "DB Bench")
	assert.Equal(t, "8-12", db.RepRange, "falls back to entry range")
	assert.False(t, db.Bodyweight)
}

func TestResolveAssistedIsLoaded(t *testing.T) {
	ex := Resolve(entry(t, "B", "Lat Pulldowns/Assisted Pullups"), "Assisted Pullups")
	assert.Equal(t, "6-10", ex.RepRange)
	assert.False(t, ex.Bodyweight)
}

func TestResolveNoChoiceUsesEntry(t *testing.T) {
	ex := Resolve(entry(t, "C", "DB Bench/Push-ups"), "")
	assert.Equal(t, "DB Bench/Push-ups", ex.Name)
	assert.False(t, ex.Bodyweight)
}

func TestResolveIsDeterministic(t *testing.T) {
	for _, w := range catalog.All() {
		for _, tmpl := range w.Exercises {
			choices := []string{""}
			for _, o := range tmpl.Options {
				choices = append(choices, o.Name)
			}
			for _, c := range choices {
				assert.Equal(t, Resolve(tmpl, c), Resolve(tmpl, c))
			}
		}
	}
}

func TestInferBodyweight(t *testing.T) {
	for name, want := range map[string]bool{
		"Push-ups":         true,
		"Pushups":          true,
		"Pull-ups":         true,
		"Weighted Pullup":  true,
		"Assisted Pullups": false,
		"DB Bench":         false,
	} {
		assert.Equal(t, want, InferBodyweight(name), name)
	}
	assert.True(t, IsAssisted("Assisted Dips"))
}
