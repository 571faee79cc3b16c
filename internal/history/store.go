package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/liftlog/internal/store"
	"github.com/sirupsen/logrus"
)

// RecordKey is the KV key holding the history record.
const RecordKey = "liftlog-data"

var ErrDuplicateDay = errors.New("day logged twice")

// Record is the persisted shape of the history store.
type Record struct {
	History       []Session         `json:"history"`
	Stars         Stars             `json:"stars"`
	ExerciseNotes map[string]string `json:"exerciseNotes,omitempty"`
	Redemptions   []Redemption      `json:"redemptions,omitempty"`
}

// Store holds every logged day, newest first, with at most one session per
// calendar date.
type Store struct {
	kv  store.KV
	loc *time.Location
	rec Record
	log *logrus.Entry
}

// Open loads the history record from kv. A corrupt record is logged and
// treated as empty. Calendar dates are evaluated in loc.
func Open(kv store.KV, loc *time.Location) (*Store, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &Store{
		kv:  kv,
		loc: loc,
		log: logrus.WithField("component", "history"),
	}

	data, ok, err := kv.Load(RecordKey)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if ok {
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			s.log.WithError(err).Warn("history record is corrupt, starting empty")
		} else {
			s.rec = rec
			s.sort()
		}
	}
	return s, nil
}

// DayKey formats t as the calendar date used for the one-per-day rule.
func (s *Store) DayKey(t time.Time) string {
	return t.In(s.loc).Format("2006-01-02")
}

func (s *Store) Location() *time.Location { return s.loc }

func (s *Store) sort() {
	sort.SliceStable(s.rec.History, func(i, j int) bool {
		return s.rec.History[i].Date.After(s.rec.History[j].Date)
	})
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.rec)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := s.kv.Save(RecordKey, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// snapshot copies the record so a failed write can be rolled back.
func (s *Store) snapshot() Record {
	prev := s.rec
	prev.History = append([]Session(nil), s.rec.History...)
	return prev
}

func (s *Store) indexOf(day string) int {
	for i, sess := range s.rec.History {
		if s.DayKey(sess.Date) == day {
			return i
		}
	}
	return -1
}

// Put records sess for its calendar date, replacing whatever was logged that
// day. The star ledger moves by the difference between the old and new day.
// The replaced session is returned when there was one.
func (s *Store) Put(sess Session) (*Session, error) {
	if !sess.Workout.Valid() {
		return nil, fmt.Errorf("put session: unknown workout %q", sess.Workout)
	}
	if sess.Date.IsZero() {
		return nil, fmt.Errorf("put session: missing date")
	}

	day := s.DayKey(sess.Date)
	prev := s.snapshot()
	var replaced *Session
	remove := Stars{}
	if i := s.indexOf(day); i >= 0 {
		old := s.rec.History[i]
		replaced = &old
		remove = StarValue(old.Workout)
		s.rec.History[i] = sess
	} else {
		s.rec.History = append(s.rec.History, sess)
	}
	s.rec.Stars = s.rec.Stars.adjust(remove, StarValue(sess.Workout))
	s.sort()

	if err := s.persist(); err != nil {
		s.rec = prev
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"day":      day,
		"workout":  sess.Workout,
		"replaced": replaced != nil,
		"sets":     len(sess.Exercises),
	}).Info("session recorded")
	return replaced, nil
}

// Delete removes the session logged on date's calendar day.
func (s *Store) Delete(date time.Time) (bool, error) {
	day := s.DayKey(date)
	i := s.indexOf(day)
	if i < 0 {
		return false, nil
	}
	prev := s.snapshot()
	old := s.rec.History[i]
	s.rec.History = append(s.rec.History[:i], s.rec.History[i+1:]...)
	s.rec.Stars = s.rec.Stars.adjust(StarValue(old.Workout), Stars{})
	if err := s.persist(); err != nil {
		s.rec = prev
		return false, err
	}
	s.log.WithField("day", day).Info("session deleted")
	return true, nil
}

// ForDate returns the session logged on date's calendar day.
func (s *Store) ForDate(date time.Time) (Session, bool) {
	if i := s.indexOf(s.DayKey(date)); i >= 0 {
		return s.rec.History[i], true
	}
	return Session{}, false
}

// Sessions returns a copy of the history, newest first.
func (s *Store) Sessions() []Session {
	return append([]Session(nil), s.rec.History...)
}

func (s *Store) Len() int { return len(s.rec.History) }

// Last returns the most recent session of any kind.
func (s *Store) Last() (Session, bool) {
	if len(s.rec.History) == 0 {
		return Session{}, false
	}
	return s.rec.History[0], true
}

// LastWorkout returns the most recent catalog workout (A/B/C).
func (s *Store) LastWorkout() (Session, bool) {
	for _, sess := range s.rec.History {
		if sess.Workout.IsTemplate() {
			return sess, true
		}
	}
	return Session{}, false
}

// LastPerformance returns the sets of the most recent session that included
// the exercise, or nil.
func (s *Store) LastPerformance(exercise string) []SetLog {
	for _, sess := range s.rec.History {
		var sets []SetLog
		for _, set := range sess.Exercises {
			if set.Exercise == exercise {
				sets = append(sets, set)
			}
		}
		if len(sets) > 0 {
			return sets
		}
	}
	return nil
}

func (s *Store) Stars() Stars { return s.rec.Stars }

// SetStars overwrites the ledger, used by reward purchases.
func (s *Store) SetStars(st Stars) error {
	s.rec.Stars = Stars{Gold: max(0, st.Gold), Silver: max(0, st.Silver)}
	return s.persist()
}

// RecomputeStars derives the ledger from the full history. Normal operation
// never calls this; it backs imports without a ledger and consistency checks.
func (s *Store) RecomputeStars() Stars {
	return SumStars(s.rec.History)
}

// SumStars totals StarValue over sessions.
func SumStars(sessions []Session) Stars {
	var total Stars
	for _, sess := range sessions {
		v := StarValue(sess.Workout)
		total.Gold += v.Gold
		total.Silver += v.Silver
	}
	return total
}

// Note returns the saved note for an exercise.
func (s *Store) Note(exercise string) string {
	return s.rec.ExerciseNotes[exercise]
}

// SetNote saves (or clears, when empty) the note for an exercise.
func (s *Store) SetNote(exercise, note string) error {
	if note == "" {
		delete(s.rec.ExerciseNotes, exercise)
	} else {
		if s.rec.ExerciseNotes == nil {
			s.rec.ExerciseNotes = make(map[string]string)
		}
		s.rec.ExerciseNotes[exercise] = note
	}
	return s.persist()
}

func (s *Store) AddRedemption(r Redemption) error {
	s.rec.Redemptions = append(s.rec.Redemptions, r)
	return s.persist()
}

// Redemptions returns purchases, oldest first.
func (s *Store) Redemptions() []Redemption {
	return append([]Redemption(nil), s.rec.Redemptions...)
}

// Replace swaps in imported history and stars in one write. Two sessions on
// the same calendar day are refused.
func (s *Store) Replace(sessions []Session, stars Stars) error {
	seen := make(map[string]bool, len(sessions))
	for _, sess := range sessions {
		day := s.DayKey(sess.Date)
		if seen[day] {
			return fmt.Errorf("replace history: %s: %w", day, ErrDuplicateDay)
		}
		seen[day] = true
	}
	prev := s.rec
	s.rec.History = append([]Session(nil), sessions...)
	s.rec.Stars = Stars{Gold: max(0, stars.Gold), Silver: max(0, stars.Silver)}
	s.sort()
	if err := s.persist(); err != nil {
		s.rec = prev
		return err
	}
	s.log.WithField("sessions", len(sessions)).Info("history replaced")
	return nil
}
