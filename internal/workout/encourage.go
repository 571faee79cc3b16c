package workout

import "math/rand/v2"

var encouragements = []string{
	"Light weight. Move it.",
	"One more clean rep than last time.",
	"Breathe, brace, go.",
	"Slow on the way down.",
	"Future you is watching this set.",
	"Own the last rep.",
	"Strong today, stronger next week.",
	"Stay tight through the whole set.",
	"You already showed up. Finish it.",
	"Chase the top of the range.",
}

// Encourager hands out lines, never the same one twice in a row.
type Encourager struct {
	rng  *rand.Rand
	last int
}

// NewEncourager uses rng, or a randomly seeded source when rng is nil.
func NewEncourager(rng *rand.Rand) *Encourager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Encourager{rng: rng, last: -1}
}

func (e *Encourager) Next() string {
	i := e.rng.IntN(len(encouragements))
	if i == e.last && len(encouragements) > 1 {
		i = (i + 1 + e.rng.IntN(len(encouragements)-1)) % len(encouragements)
	}
	e.last = i
	return encouragements[i]
}
