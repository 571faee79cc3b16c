// Package records folds history into per-exercise personal bests.
package records

import (
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/liftlog/internal/history"
	"github.com/sadopc/liftlog/internal/workout"
)

// Policy decides what "best" means for an exercise.
type Policy int

const (
	ByWeight     Policy = iota // heavier wins, then more reps
	ByAssistance               // less assistance wins, then more reps
	ByReps                     // bodyweight: more reps wins
	ByDuration                 // timed hold: longer wins
)

func (p Policy) String() string {
	switch p {
	case ByAssistance:
		return "assisted"
	case ByReps:
		return "bodyweight"
	case ByDuration:
		return "timed"
	}
	return "weight"
}

// Record is the best set ever logged for one exercise.
type Record struct {
	Exercise string
	Policy   Policy
	Weight   float64
	Reps     int
	Duration time.Duration
	Date     time.Time // session date
}

// Format renders the best set the way its policy measures it.
func (r Record) Format(unit string) string {
	switch r.Policy {
	case ByDuration:
		return workout.FormatHold(r.Duration)
	case ByReps:
		return fmt.Sprintf("%d reps", r.Reps)
	case ByAssistance:
		return fmt.Sprintf("%s %s assist × %d", workout.FormatWeight(r.Weight), unit, r.Reps)
	}
	return fmt.Sprintf("%s %s × %d", workout.FormatWeight(r.Weight), unit, r.Reps)
}

type candidate struct {
	set  history.SetLog
	date time.Time
}

// Compute returns one record per exercise name, sorted by name. The result
// does not depend on the order of sessions.
func Compute(sessions []history.Session) []Record {
	byName := make(map[string][]candidate)
	for _, sess := range sessions {
		for _, set := range sess.Exercises {
			byName[set.Exercise] = append(byName[set.Exercise], candidate{set: set, date: sess.Date})
		}
	}

	out := make([]Record, 0, len(byName))
	for name, cands := range byName {
		policy := policyFor(name, cands)
		best := cands[0]
		for _, c := range cands[1:] {
			if better(policy, c, best) {
				best = c
			}
		}
		out = append(out, Record{
			Exercise: name,
			Policy:   policy,
			Weight:   best.set.Weight,
			Reps:     best.set.Reps,
			Duration: best.set.Duration(),
			Date:     best.date,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Exercise < out[j].Exercise })
	return out
}

func policyFor(name string, cands []candidate) Policy {
	allZero := true
	for _, c := range cands {
		if c.set.Timed() {
			return ByDuration
		}
		if c.set.Weight != 0 {
			allZero = false
		}
	}
	switch {
	case workout.IsAssisted(name):
		return ByAssistance
	case allZero:
		return ByReps
	}
	return ByWeight
}

// better reports whether a beats b under p. Full ties go to the earlier date.
func better(p Policy, a, b candidate) bool {
	switch p {
	case ByDuration:
		if da, db := a.set.Duration(), b.set.Duration(); da != db {
			return da > db
		}
	case ByAssistance:
		if a.set.Weight != b.set.Weight {
			return a.set.Weight < b.set.Weight
		}
		if a.set.Reps != b.set.Reps {
			return a.set.Reps > b.set.Reps
		}
	case ByReps:
		if a.set.Reps != b.set.Reps {
			return a.set.Reps > b.set.Reps
		}
	default:
		if a.set.Weight != b.set.Weight {
			return a.set.Weight > b.set.Weight
		}
		if a.set.Reps != b.set.Reps {
			return a.set.Reps > b.set.Reps
		}
	}
	if !a.date.Equal(b.date) {
		return a.date.Before(b.date)
	}
	if !a.set.Timestamp.Equal(b.set.Timestamp) {
		return a.set.Timestamp.Before(b.set.Timestamp)
	}
	return a.set.Set < b.set.Set
}

// Find returns the record for one exercise.
func Find(recs []Record, exercise string) (Record, bool) {
	i := sort.Search(len(recs), func(i int) bool { return recs[i].Exercise >= exercise })
	if i < len(recs) && recs[i].Exercise == exercise {
		return recs[i], true
	}
	return Record{}, false
}
