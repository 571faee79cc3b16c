package workout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/liftlog/internal/catalog"
	"github.com/sadopc/liftlog/internal/history"
)

// Phase is where the session sits in its lifecycle.
type Phase int

const (
	NotStarted Phase = iota
	InProgress
	RestPending // set logged, waiting for a rest choice
	Resting
	Completed
	ExitRequested // waiting for the user to confirm discarding progress
)

var phaseNames = map[Phase]string{
	NotStarted:    "not started",
	InProgress:    "in progress",
	RestPending:   "rest pending",
	Resting:       "resting",
	Completed:     "completed",
	ExitRequested: "exit requested",
}

func (p Phase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Suggested rest durations. The user picks among RestChoices.
const (
	RestShort   = 60 * time.Second
	RestDefault = 120 * time.Second
	RestLong    = 180 * time.Second
)

var RestChoices = []time.Duration{RestShort, RestDefault, RestLong}

var (
	ErrInvalidInput    = errors.New("invalid set input")
	ErrWrongPhase      = errors.New("action not allowed in current phase")
	ErrUnknownWorkout  = errors.New("unknown workout")
	ErrUnknownExercise = errors.New("unknown exercise")
	ErrNotSuperset     = errors.New("not a superset pair")
)

// Position addresses one set of one template entry, both zero-based.
type Position struct {
	Exercise int `json:"exercise"`
	Set      int `json:"set"`
}

// Performance looks up what was done last time for an exercise.
type Performance interface {
	LastPerformance(exercise string) []history.SetLog
}

// SetInput is what the user submits for one set. Weight is nil when the field
// was left empty.
type SetInput struct {
	Weight   *float64
	Reps     int
	Duration time.Duration
}

// Draft holds the weight/reps fields as typed, so a reload restores them.
type Draft struct {
	Weight string
	Reps   string
}

// Outcome describes what logging a set did.
type Outcome struct {
	Set       history.SetLog
	Next      Position
	Rest      time.Duration
	Completed bool
}

// Session is the in-progress workout state machine.
type Session struct {
	perf Performance
	now  func() time.Time

	workout  catalog.Workout
	choices  map[string]string
	disabled map[string]bool
	cardio   string

	phase     Phase
	prevPhase Phase
	pos       Position
	pending   *Position
	rest      time.Duration
	log       []history.SetLog
	draft     Draft
}

// NewSession returns an idle session. perf may be nil.
func NewSession(perf Performance, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		perf:     perf,
		now:      now,
		choices:  make(map[string]string),
		disabled: make(map[string]bool),
	}
}

// Start begins w at its first set. Exercises with options and no choice get
// their first option.
func (s *Session) Start(w catalog.Workout, choices map[string]string) error {
	if len(w.Exercises) == 0 {
		return fmt.Errorf("start %s: %w", w.Key, ErrUnknownWorkout)
	}
	s.workout = w
	s.choices = make(map[string]string)
	for _, ex := range w.Exercises {
		if !ex.HasOptions() {
			continue
		}
		if c, ok := choices[ex.Name]; ok {
			if _, valid := ex.Option(c); valid {
				s.choices[ex.Name] = c
				continue
			}
		}
		s.choices[ex.Name] = ex.Options[0].Name
	}
	if s.disabled == nil {
		s.disabled = make(map[string]bool)
	}
	s.pos = Position{}
	s.pending = nil
	s.rest = 0
	s.log = nil
	s.phase = InProgress
	s.draft = s.defaults(0)
	return nil
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Workout() catalog.Workout { return s.workout }

func (s *Session) Position() Position { return s.pos }

func (s *Session) SuggestedRest() time.Duration { return s.rest }

func (s *Session) Draft() Draft { return s.draft }

func (s *Session) Cardio() string { return s.cardio }

// Active reports whether a workout is under way (including rest and the exit prompt).
func (s *Session) Active() bool {
	switch s.phase {
	case InProgress, RestPending, Resting, ExitRequested:
		return true
	}
	return false
}

// Pending returns the position the session will move to after rest.
func (s *Session) Pending() (Position, bool) {
	if s.pending == nil {
		return Position{}, false
	}
	return *s.pending, true
}

// Log returns a copy of the sets logged so far.
func (s *Session) Log() []history.SetLog {
	return append([]history.SetLog(nil), s.log...)
}

// Choices returns a copy of the substitution choices.
func (s *Session) Choices() map[string]string {
	out := make(map[string]string, len(s.choices))
	for k, v := range s.choices {
		out[k] = v
	}
	return out
}

// SetChoice records a substitution before the workout starts.
func (s *Session) SetChoice(templateName, choice string) {
	s.choices[templateName] = choice
}

// SetDraft stores the weight/reps fields as the user types them.
func (s *Session) SetDraft(d Draft) { s.draft = d }

func (s *Session) SetCardio(c string) { s.cardio = strings.TrimSpace(c) }

// Exercise returns template entry i resolved against the current choices.
func (s *Session) Exercise(i int) Exercise {
	tmpl := s.workout.Exercises[i]
	return Resolve(tmpl, s.choices[tmpl.Name])
}

// Current returns the exercise at the current position.
func (s *Session) Current() Exercise {
	return s.Exercise(s.pos.Exercise)
}

// Count returns how many sets have been logged under an effective name.
func (s *Session) Count(name string) int {
	n := 0
	for _, set := range s.log {
		if set.Exercise == name {
			n++
		}
	}
	return n
}

// SetsFor returns the sets logged under an effective name, in order.
func (s *Session) SetsFor(name string) []history.SetLog {
	var out []history.SetLog
	for _, set := range s.log {
		if set.Exercise == name {
			out = append(out, set)
		}
	}
	return out
}

// Done reports whether every template entry has its required sets.
func (s *Session) Done() bool {
	_, incomplete := s.FirstIncomplete()
	return len(s.workout.Exercises) > 0 && !incomplete
}

// FirstIncomplete returns the first entry still short of its sets.
func (s *Session) FirstIncomplete() (int, bool) {
	for i := range s.workout.Exercises {
		ex := s.Exercise(i)
		if s.Count(ex.Name) < ex.Sets {
			return i, true
		}
	}
	return 0, false
}

func (s *Session) exerciseDone(i int) bool {
	ex := s.Exercise(i)
	return s.Count(ex.Name) >= ex.Sets
}

// PairActive reports whether the superset keyed by its first half is enabled.
func (s *Session) PairActive(pairKey string) bool {
	return !s.disabled[pairKey]
}

func (s *Session) firstHalfActive(i int) bool {
	ex := s.workout.Exercises
	if ex[i].Superset == "" || ex[i].IsSuperset || i+1 >= len(ex) {
		return false
	}
	return ex[i+1].Name == ex[i].Superset && !s.disabled[ex[i].Name]
}

func (s *Session) secondHalfActive(i int) bool {
	ex := s.workout.Exercises
	if !ex[i].IsSuperset || i == 0 {
		return false
	}
	return ex[i-1].Superset == ex[i].Name && !s.disabled[ex[i-1].Name]
}

// Partner returns the index of the active superset partner of entry i.
func (s *Session) Partner(i int) (int, bool) {
	switch {
	case s.firstHalfActive(i):
		return i + 1, true
	case s.secondHalfActive(i):
		return i - 1, true
	}
	return 0, false
}

// ValidateInput checks in against the mode of ex.
func ValidateInput(ex Exercise, in SetInput) error {
	if ex.Stopwatch {
		if in.Duration <= 0 {
			return fmt.Errorf("%w: duration required", ErrInvalidInput)
		}
		return nil
	}
	if in.Reps <= 0 {
		return fmt.Errorf("%w: reps must be positive", ErrInvalidInput)
	}
	if ex.Bodyweight {
		return nil
	}
	if in.Weight == nil {
		return fmt.Errorf("%w: weight required", ErrInvalidInput)
	}
	if math.IsNaN(*in.Weight) || math.IsInf(*in.Weight, 0) {
		return fmt.Errorf("%w: weight must be a number", ErrInvalidInput)
	}
	if *in.Weight < 0 {
		return fmt.Errorf("%w: weight cannot be negative", ErrInvalidInput)
	}
	return nil
}

// LogSet records a set for the current exercise and decides where to go next.
// Invalid input leaves the session untouched.
func (s *Session) LogSet(in SetInput) (Outcome, error) {
	if s.phase != InProgress {
		return Outcome{}, fmt.Errorf("log set while %s: %w", s.phase, ErrWrongPhase)
	}
	ex := s.Current()
	if err := ValidateInput(ex, in); err != nil {
		return Outcome{}, err
	}

	set := history.SetLog{
		Exercise:  ex.Name,
		Set:       s.Count(ex.Name) + 1,
		Timestamp: s.now(),
	}
	switch {
	case ex.Stopwatch:
		secs := in.Duration.Seconds()
		set.DurationSeconds = &secs
	case ex.Bodyweight:
		set.Reps = in.Reps
	default:
		set.Weight = *in.Weight
		set.Reps = in.Reps
	}
	s.log = append(s.log, set)

	next, rest := s.nextPosition(ex)

	if s.Done() {
		s.phase = Completed
		s.pending = nil
		s.rest = 0
		return Outcome{Set: set, Completed: true}, nil
	}

	if next.Exercise >= len(s.workout.Exercises) {
		idx, _ := s.FirstIncomplete()
		next = Position{Exercise: idx, Set: s.Count(s.Exercise(idx).Name)}
		rest = RestDefault
	}

	s.pending = &next
	s.rest = rest
	s.phase = RestPending
	return Outcome{Set: set, Next: next, Rest: rest}, nil
}

func (s *Session) nextPosition(ex Exercise) (Position, time.Duration) {
	idx, setIdx := s.pos.Exercise, s.pos.Set
	lower := strings.ToLower(ex.Name)

	switch {
	case s.firstHalfActive(idx):
		rest := RestShort
		if strings.Contains(lower, "bulgarian") || strings.Contains(lower, "split squat") {
			rest = RestDefault
		}
		return Position{Exercise: idx + 1, Set: setIdx}, rest

	case s.secondHalfActive(idx):
		if setIdx+1 < ex.Sets {
			return Position{Exercise: idx - 1, Set: setIdx + 1}, RestDefault
		}
		return Position{Exercise: idx + 1}, RestDefault

	default:
		if setIdx+1 < ex.Sets {
			rest := RestDefault
			switch {
			case idx == 0:
				rest = RestLong
			case strings.Contains(lower, "abs"):
				rest = RestShort
			}
			return Position{Exercise: idx, Set: setIdx + 1}, rest
		}
		if idx == 0 {
			return Position{Exercise: idx + 1}, RestLong
		}
		return Position{Exercise: idx + 1}, RestDefault
	}
}

// BeginRest starts the rest countdown after a set.
func (s *Session) BeginRest() error {
	if s.phase != RestPending {
		return fmt.Errorf("begin rest while %s: %w", s.phase, ErrWrongPhase)
	}
	s.phase = Resting
	return nil
}

// Navigate moves to the pending position once rest is over or skipped. The
// target is re-checked here because a swap during rest can change which
// exercises are still incomplete.
func (s *Session) Navigate() error {
	if s.phase != RestPending && s.phase != Resting {
		return fmt.Errorf("navigate while %s: %w", s.phase, ErrWrongPhase)
	}
	if s.pending == nil {
		return fmt.Errorf("navigate without a pending position: %w", ErrWrongPhase)
	}
	target := *s.pending
	s.pending = nil
	s.rest = 0

	if target.Exercise < 0 || target.Exercise >= len(s.workout.Exercises) || s.exerciseDone(target.Exercise) {
		idx, ok := s.FirstIncomplete()
		if !ok {
			s.phase = Completed
			return nil
		}
		target = Position{Exercise: idx}
	}
	// logged sets decide the index; a swap during rest may have discarded some
	target.Set = s.Count(s.Exercise(target.Exercise).Name)

	s.pos = target
	s.phase = InProgress

	ex := s.Exercise(target.Exercise)
	if sets := s.SetsFor(ex.Name); len(sets) > 0 {
		last := sets[len(sets)-1]
		s.draft = draftFromSet(ex, last)
	} else {
		s.draft = s.defaults(target.Exercise)
	}
	return nil
}

// Swap changes the substitution for a template entry mid-session. Sets
// already logged under the previous choice are discarded; the count is
// returned so the caller can confirm beforehand via LoggedUnder.
func (s *Session) Swap(templateName, choice string) (int, error) {
	if s.phase == Completed {
		return 0, fmt.Errorf("swap while %s: %w", s.phase, ErrWrongPhase)
	}
	idx := s.workout.Index(templateName)
	if idx < 0 {
		return 0, fmt.Errorf("swap %q: %w", templateName, ErrUnknownExercise)
	}
	tmpl := s.workout.Exercises[idx]
	if _, ok := tmpl.Option(choice); !ok {
		return 0, fmt.Errorf("swap %q to %q: %w", templateName, choice, ErrUnknownExercise)
	}

	old := s.Exercise(idx).Name
	if old == choice {
		return 0, nil
	}

	kept := s.log[:0:0]
	for _, set := range s.log {
		if set.Exercise != old {
			kept = append(kept, set)
		}
	}
	deleted := len(s.log) - len(kept)
	s.log = kept
	s.choices[templateName] = choice

	if idx == s.pos.Exercise {
		s.pos.Set = s.Count(choice)
		if s.phase == InProgress {
			s.draft = s.defaults(idx)
		}
	}
	if s.pending != nil && s.pending.Exercise == idx {
		s.pending.Set = s.Count(choice)
	}
	return deleted, nil
}

// LoggedUnder returns how many sets Swap would discard for the entry.
func (s *Session) LoggedUnder(templateName string) int {
	idx := s.workout.Index(templateName)
	if idx < 0 {
		return 0
	}
	return s.Count(s.Exercise(idx).Name)
}

// ToggleSuperset enables or disables the pair keyed by its first half and
// returns whether it is now enabled.
func (s *Session) ToggleSuperset(pairKey string) (bool, error) {
	idx := s.workout.Index(pairKey)
	if idx < 0 {
		return false, fmt.Errorf("toggle %q: %w", pairKey, ErrUnknownExercise)
	}
	tmpl := s.workout.Exercises[idx]
	if tmpl.Superset == "" || tmpl.IsSuperset {
		return false, fmt.Errorf("toggle %q: %w", pairKey, ErrNotSuperset)
	}
	if s.disabled[pairKey] {
		delete(s.disabled, pairKey)
		return true, nil
	}
	s.disabled[pairKey] = true
	return false, nil
}

// RequestExit asks for confirmation before discarding the session.
func (s *Session) RequestExit() error {
	switch s.phase {
	case InProgress, RestPending, Resting:
		s.prevPhase = s.phase
		s.phase = ExitRequested
		return nil
	}
	return fmt.Errorf("exit while %s: %w", s.phase, ErrWrongPhase)
}

// CancelExit returns to wherever the session was before RequestExit.
func (s *Session) CancelExit() {
	if s.phase == ExitRequested {
		s.phase = s.prevPhase
	}
}

// Reset discards all session state.
func (s *Session) Reset() {
	s.workout = catalog.Workout{}
	s.choices = make(map[string]string)
	s.disabled = make(map[string]bool)
	s.cardio = ""
	s.phase = NotStarted
	s.prevPhase = NotStarted
	s.pos = Position{}
	s.pending = nil
	s.rest = 0
	s.log = nil
	s.draft = Draft{}
}

// Result builds the history entry for the finished session.
func (s *Session) Result(at time.Time) history.Session {
	return history.Session{
		Workout:          history.Kind(s.workout.Key),
		Date:             at,
		Exercises:        s.Log(),
		PreWorkoutCardio: s.cardio,
	}
}

// defaults prefills the draft for entry i from history and the rep range.
func (s *Session) defaults(i int) Draft {
	ex := s.Exercise(i)
	var d Draft
	if _, high, ok := ParseRepRange(ex.RepRange); ok && !ex.Stopwatch {
		d.Reps = strconv.Itoa(high)
	}
	if ex.Bodyweight || ex.Stopwatch || s.perf == nil {
		return d
	}
	if last := s.perf.LastPerformance(ex.Name); len(last) > 0 {
		d.Weight = FormatWeight(last[0].Weight)
	}
	return d
}

func draftFromSet(ex Exercise, set history.SetLog) Draft {
	if ex.Stopwatch {
		return Draft{}
	}
	d := Draft{Reps: strconv.Itoa(set.Reps)}
	if !ex.Bodyweight {
		d.Weight = FormatWeight(set.Weight)
	}
	return d
}

// FormatWeight renders a weight without trailing zeros.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// ParseInput turns the typed fields into a SetInput for ex. Empty weight
// yields a nil Weight; ValidateInput decides whether that is acceptable.
func ParseInput(ex Exercise, d Draft) (SetInput, error) {
	var in SetInput
	if ex.Stopwatch {
		return in, nil
	}
	reps, err := strconv.Atoi(strings.TrimSpace(d.Reps))
	if err != nil {
		return in, fmt.Errorf("%w: reps %q", ErrInvalidInput, d.Reps)
	}
	in.Reps = reps
	if w := strings.TrimSpace(d.Weight); w != "" && !ex.Bodyweight {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return in, fmt.Errorf("%w: weight %q", ErrInvalidInput, d.Weight)
		}
		in.Weight = &v
	}
	return in, nil
}
