package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/sadopc/liftlog/internal/history"
)

var (
	ErrInvalidJSON  = errors.New("invalid json")
	ErrInvalidShape = errors.New("invalid export shape")
	ErrNotGzip      = errors.New("not a gzip file")
)

// Payload is the export format. Stars is nil when an import omitted it.
type Payload struct {
	History []history.Session `json:"history"`
	Stars   *history.Stars    `json:"stars,omitempty"`
}

// NewPayload snapshots sessions and stars for export.
func NewPayload(sessions []history.Session, stars history.Stars) Payload {
	if sessions == nil {
		sessions = []history.Session{}
	}
	return Payload{History: sessions, Stars: &stars}
}

// StarsOrRecompute returns the exported ledger, or one rebuilt from history
// when the file had none.
func (p Payload) StarsOrRecompute() history.Stars {
	if p.Stars != nil {
		return *p.Stars
	}
	return history.SumStars(p.History)
}

// Marshal renders the payload as indented JSON.
func Marshal(p Payload) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal parses and validates an export. Every problem is reported, not
// just the first.
func Unmarshal(data []byte) (Payload, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	hist, ok := raw["history"]
	if !ok {
		return Payload{}, fmt.Errorf("%w: missing history", ErrInvalidShape)
	}

	var p Payload
	if err := json.Unmarshal(hist, &p.History); err != nil {
		return Payload{}, fmt.Errorf("%w: history: %v", ErrInvalidShape, err)
	}
	if st, ok := raw["stars"]; ok && string(st) != "null" {
		var stars history.Stars
		if err := json.Unmarshal(st, &stars); err != nil {
			return Payload{}, fmt.Errorf("%w: stars: %v", ErrInvalidShape, err)
		}
		p.Stars = &stars
	}
	if p.History == nil {
		p.History = []history.Session{}
	}

	if err := Validate(p, nil); err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	return p, nil
}

// Validate checks session kinds, dates, sets and the star ledger. dayKey
// names the calendar day a session belongs to; nil uses each timestamp's own
// offset.
func Validate(p Payload, dayKey func(time.Time) string) error {
	if dayKey == nil {
		dayKey = func(t time.Time) string { return t.Format("2006-01-02") }
	}
	var errs error
	seen := make(map[string]int)
	for i, sess := range p.History {
		if !sess.Workout.Valid() {
			errs = multierr.Append(errs, fmt.Errorf("history[%d]: unknown workout %q", i, sess.Workout))
		}
		if sess.Date.IsZero() {
			errs = multierr.Append(errs, fmt.Errorf("history[%d]: missing date", i))
		} else {
			day := dayKey(sess.Date)
			if j, dup := seen[day]; dup {
				errs = multierr.Append(errs, fmt.Errorf("history[%d]: %s already logged at history[%d]", i, day, j))
			} else {
				seen[day] = i
			}
		}
		for k, set := range sess.Exercises {
			if set.Exercise == "" {
				errs = multierr.Append(errs, fmt.Errorf("history[%d].exercises[%d]: missing exercise", i, k))
			}
			if set.Set < 1 {
				errs = multierr.Append(errs, fmt.Errorf("history[%d].exercises[%d]: set %d", i, k, set.Set))
			}
			if set.Weight < 0 || set.Reps < 0 || (set.DurationSeconds != nil && *set.DurationSeconds < 0) {
				errs = multierr.Append(errs, fmt.Errorf("history[%d].exercises[%d]: negative value", i, k))
			}
		}
	}
	if p.Stars != nil && (p.Stars.Gold < 0 || p.Stars.Silver < 0) {
		errs = multierr.Append(errs, fmt.Errorf("stars: negative count %s", p.Stars))
	}
	return errs
}
