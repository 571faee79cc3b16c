package workout

import (
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/liftlog/internal/catalog"
	"github.com/sadopc/liftlog/internal/history"
)

// Snapshot is the persisted form of an active session.
type Snapshot struct {
	SelectedWorkout    string            `json:"selectedWorkout"`
	ExerciseChoices    map[string]string `json:"exerciseChoices"`
	CurrentExerciseIdx int               `json:"currentExerciseIdx"`
	CurrentSetIdx      int               `json:"currentSetIdx"`
	SessionData        []history.SetLog  `json:"sessionData"`
	DisabledSupersets  []string          `json:"disabledSupersets,omitempty"`
	Pending            *Position         `json:"pending,omitempty"`
	SuggestedRestSecs  int               `json:"suggestedRest,omitempty"`
	PreWorkoutCardio   string            `json:"preWorkoutCardio,omitempty"`
	Weight             string            `json:"weight"`
	Reps               string            `json:"reps"`
	Timestamp          int64             `json:"timestamp"` // unix millis
}

// SavedAt returns the snapshot time.
func (snap Snapshot) SavedAt() time.Time {
	return time.UnixMilli(snap.Timestamp)
}

// Snapshot captures everything needed to resume. ok is false when no
// workout is active.
func (s *Session) Snapshot(now time.Time) (Snapshot, bool) {
	if !s.Active() {
		return Snapshot{}, false
	}
	snap := Snapshot{
		SelectedWorkout:    s.workout.Key,
		ExerciseChoices:    s.Choices(),
		CurrentExerciseIdx: s.pos.Exercise,
		CurrentSetIdx:      s.pos.Set,
		SessionData:        s.Log(),
		PreWorkoutCardio:   s.cardio,
		Weight:             s.draft.Weight,
		Reps:               s.draft.Reps,
		Timestamp:          now.UnixMilli(),
	}
	for k := range s.disabled {
		snap.DisabledSupersets = append(snap.DisabledSupersets, k)
	}
	sort.Strings(snap.DisabledSupersets)
	if s.pending != nil {
		p := *s.pending
		snap.Pending = &p
		snap.SuggestedRestSecs = int(s.rest / time.Second)
	}
	return snap, true
}

// Restore rebuilds a session from a snapshot. A snapshot taken mid-rest
// comes back waiting for a rest choice; the countdown is not persisted.
func Restore(snap Snapshot, perf Performance, now func() time.Time) (*Session, error) {
	w, ok := catalog.Get(snap.SelectedWorkout)
	if !ok {
		return nil, fmt.Errorf("restore %q: %w", snap.SelectedWorkout, ErrUnknownWorkout)
	}
	if snap.CurrentExerciseIdx < 0 || snap.CurrentExerciseIdx >= len(w.Exercises) || snap.CurrentSetIdx < 0 {
		return nil, fmt.Errorf("restore %s at %d/%d: position out of range", w.Key, snap.CurrentExerciseIdx, snap.CurrentSetIdx)
	}

	s := NewSession(perf, now)
	if err := s.Start(w, snap.ExerciseChoices); err != nil {
		return nil, err
	}
	for _, k := range snap.DisabledSupersets {
		s.disabled[k] = true
	}
	s.log = append([]history.SetLog(nil), snap.SessionData...)
	s.pos = Position{Exercise: snap.CurrentExerciseIdx, Set: snap.CurrentSetIdx}
	s.cardio = snap.PreWorkoutCardio
	s.draft = Draft{Weight: snap.Weight, Reps: snap.Reps}

	if snap.Pending != nil {
		p := *snap.Pending
		s.pending = &p
		s.rest = time.Duration(snap.SuggestedRestSecs) * time.Second
		s.phase = RestPending
	}
	if s.Done() {
		s.phase = Completed
		s.pending = nil
	}
	return s, nil
}
