// Package tracker owns the application state: the active workout, its
// timers, the history store and the persisted active-session record. Every
// state change goes through a Tracker method so the saved record always
// matches what the user sees.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/liftlog/internal/catalog"
	"github.com/sadopc/liftlog/internal/export"
	"github.com/sadopc/liftlog/internal/history"
	"github.com/sadopc/liftlog/internal/records"
	"github.com/sadopc/liftlog/internal/rewards"
	"github.com/sadopc/liftlog/internal/store"
	"github.com/sadopc/liftlog/internal/workout"
)

// ActiveSessionKey is the KV key of the in-progress workout.
const ActiveSessionKey = "liftlog-active-session"

const DefaultStaleAfter = 12 * time.Hour

var (
	ErrNoActiveSession   = errors.New("no saved workout")
	ErrStaleSession      = errors.New("saved workout is too old to resume")
	ErrSessionInProgress = errors.New("a workout is already in progress")
	ErrUnknownReward     = errors.New("unknown reward")
	ErrNotADayKind       = errors.New("only rest, hot yoga or custom days can be logged directly")
)

// Options configures New. Zero values pick sensible defaults.
type Options struct {
	KV         store.KV
	Location   *time.Location
	Now        func() time.Time
	StaleAfter time.Duration
}

// Tracker is the single owner of application state.
type Tracker struct {
	kv         store.KV
	now        func() time.Time
	staleAfter time.Duration
	log        *logrus.Entry

	history *history.Store
	session *workout.Session
	rest    *workout.RestTimer
	watch   *workout.Stopwatch
}

func New(opts Options) (*Tracker, error) {
	if opts.KV == nil {
		return nil, fmt.Errorf("new tracker: nil kv")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = DefaultStaleAfter
	}
	h, err := history.Open(opts.KV, opts.Location)
	if err != nil {
		return nil, err
	}
	t := &Tracker{
		kv:         opts.KV,
		now:        opts.Now,
		staleAfter: opts.StaleAfter,
		log:        logrus.WithField("component", "tracker"),
		history:    h,
		rest:       workout.NewRestTimer(opts.Now),
		watch:      workout.NewStopwatch(opts.Now),
	}
	t.session = workout.NewSession(h, opts.Now)
	return t, nil
}

func (t *Tracker) History() *history.Store { return t.history }

func (t *Tracker) Session() *workout.Session { return t.session }

func (t *Tracker) Rest() *workout.RestTimer { return t.rest }

func (t *Tracker) Stopwatch() *workout.Stopwatch { return t.watch }

func (t *Tracker) Now() time.Time { return t.now() }

// NextWorkout is the template after the most recent A/B/C session.
func (t *Tracker) NextWorkout() catalog.Workout {
	last := ""
	if s, ok := t.history.LastWorkout(); ok {
		last = string(s.Workout)
	}
	w, _ := catalog.Get(catalog.Next(last))
	return w
}

// ============================================================
// Active-session persistence
// ============================================================

// save writes the active session, or clears the record when nothing is active.
func (t *Tracker) save() error {
	snap, ok := t.session.Snapshot(t.now())
	if !ok {
		return t.clearSaved()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	if err := t.kv.Save(ActiveSessionKey, data); err != nil {
		return fmt.Errorf("save active session: %w", err)
	}
	return nil
}

func (t *Tracker) clearSaved() error {
	if err := t.kv.Delete(ActiveSessionKey); err != nil {
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}

// Saved returns the persisted snapshot without resuming it.
func (t *Tracker) Saved() (workout.Snapshot, error) {
	data, ok, err := t.kv.Load(ActiveSessionKey)
	if err != nil {
		return workout.Snapshot{}, fmt.Errorf("load active session: %w", err)
	}
	if !ok {
		return workout.Snapshot{}, ErrNoActiveSession
	}
	var snap workout.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.log.WithError(err).Warn("active session record is corrupt, discarding")
		_ = t.clearSaved()
		return workout.Snapshot{}, fmt.Errorf("%w: corrupt record", ErrNoActiveSession)
	}
	return snap, nil
}

// HasSaved reports whether a resumable session exists. Stale records count
// as absent.
func (t *Tracker) HasSaved() bool {
	snap, err := t.Saved()
	return err == nil && t.now().Sub(snap.SavedAt()) <= t.staleAfter
}

// Resume restores the saved session. A record older than the staleness
// window is deleted and ErrStaleSession returned.
func (t *Tracker) Resume() error {
	if t.session.Active() {
		return ErrSessionInProgress
	}
	snap, err := t.Saved()
	if err != nil {
		return err
	}
	if age := t.now().Sub(snap.SavedAt()); age > t.staleAfter {
		t.log.WithField("age", age.Round(time.Minute)).Info("discarding stale session")
		if err := t.clearSaved(); err != nil {
			return err
		}
		return fmt.Errorf("%w (saved %s ago)", ErrStaleSession, age.Round(time.Minute))
	}
	s, err := workout.Restore(snap, t.history, t.now)
	if err != nil {
		t.log.WithError(err).Warn("active session record does not restore, discarding")
		_ = t.clearSaved()
		return fmt.Errorf("%w: %v", ErrNoActiveSession, err)
	}
	t.session = s
	t.rest.Stop()
	t.watch.Reset()
	t.log.WithFields(logrus.Fields{
		"workout": snap.SelectedWorkout,
		"sets":    len(snap.SessionData),
	}).Info("session resumed")
	if s.Phase() == workout.Completed {
		return t.finish()
	}
	return nil
}

// DiscardSaved drops the persisted session without touching history.
func (t *Tracker) DiscardSaved() error {
	return t.clearSaved()
}

// ============================================================
// Workout flow
// ============================================================

// Start begins a catalog workout with the given substitution choices.
func (t *Tracker) Start(key string, choices map[string]string) error {
	if t.session.Active() {
		return ErrSessionInProgress
	}
	w, ok := catalog.Get(key)
	if !ok {
		return fmt.Errorf("start %q: %w", key, workout.ErrUnknownWorkout)
	}
	t.session = workout.NewSession(t.history, t.now)
	if err := t.session.Start(w, choices); err != nil {
		return err
	}
	t.rest.Stop()
	t.watch.Reset()
	t.log.WithField("workout", key).Info("workout started")
	return t.save()
}

// SetCardio records the pre-workout cardio note.
func (t *Tracker) SetCardio(c string) error {
	t.session.SetCardio(c)
	return t.save()
}

// SetDraft persists the typed weight/reps.
func (t *Tracker) SetDraft(d workout.Draft) error {
	t.session.SetDraft(d)
	return t.save()
}

// LogSet logs a set for the current exercise. When it completes the workout
// the session is written to history and the saved record cleared.
func (t *Tracker) LogSet(in workout.SetInput) (workout.Outcome, error) {
	out, err := t.session.LogSet(in)
	if err != nil {
		return out, err
	}
	t.log.WithFields(logrus.Fields{
		"exercise": out.Set.Exercise,
		"set":      out.Set.Set,
		"weight":   out.Set.Weight,
		"reps":     out.Set.Reps,
	}).Debug("set logged")
	if out.Completed {
		return out, t.finish()
	}
	return out, t.save()
}

// LogTimed stops the stopwatch and logs its reading.
func (t *Tracker) LogTimed() (workout.Outcome, error) {
	d := t.watch.Elapsed()
	out, err := t.LogSet(workout.SetInput{Duration: d})
	if err != nil {
		return out, err
	}
	t.watch.Reset()
	return out, nil
}

func (t *Tracker) finish() error {
	res := t.session.Result(t.now())
	replaced, err := t.history.Put(res)
	if err != nil {
		return fmt.Errorf("finish workout: %w", err)
	}
	t.rest.Stop()
	t.watch.Reset()
	t.log.WithFields(logrus.Fields{
		"workout":  res.Workout,
		"sets":     len(res.Exercises),
		"replaced": replaced != nil,
	}).Info("workout completed")
	return t.clearSaved()
}

// BeginRest starts the countdown after a logged set.
func (t *Tracker) BeginRest(d time.Duration) error {
	if err := t.session.BeginRest(); err != nil {
		return err
	}
	t.rest.Start(d)
	return t.save()
}

// SkipRest ends rest early and moves to the next set.
func (t *Tracker) SkipRest() error {
	t.rest.Stop()
	if err := t.session.Navigate(); err != nil {
		return err
	}
	return t.after()
}

// Tick advances when the rest countdown has run out. It reports whether it
// navigated.
func (t *Tracker) Tick() (bool, error) {
	if t.session.Phase() != workout.Resting || !t.rest.Expired() {
		return false, nil
	}
	t.rest.Stop()
	if err := t.session.Navigate(); err != nil {
		return false, err
	}
	return true, t.after()
}

// after persists, finishing the workout if navigation found nothing left.
func (t *Tracker) after() error {
	if t.session.Phase() == workout.Completed {
		return t.finish()
	}
	return t.save()
}

// Swap changes a substitution, discarding sets logged under the old choice.
func (t *Tracker) Swap(templateName, choice string) (int, error) {
	n, err := t.session.Swap(templateName, choice)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		t.log.WithFields(logrus.Fields{"exercise": templateName, "choice": choice, "discarded": n}).Info("exercise swapped")
	}
	return n, t.save()
}

func (t *Tracker) ToggleSuperset(pairKey string) (bool, error) {
	on, err := t.session.ToggleSuperset(pairKey)
	if err != nil {
		return false, err
	}
	return on, t.save()
}

func (t *Tracker) RequestExit() error { return t.session.RequestExit() }

func (t *Tracker) CancelExit() { t.session.CancelExit() }

// Exit abandons the workout. History is not touched.
func (t *Tracker) Exit() error {
	if t.session.Active() {
		t.log.WithField("sets", len(t.session.Log())).Info("workout abandoned")
	}
	t.session.Reset()
	t.rest.Stop()
	t.watch.Reset()
	return t.clearSaved()
}

// Dismiss clears a completed session so a new one can start.
func (t *Tracker) Dismiss() {
	if t.session.Phase() == workout.Completed {
		t.session.Reset()
	}
}

// ============================================================
// History, rewards, records
// ============================================================

// LogDay records a rest, hot yoga or custom day on date.
func (t *Tracker) LogDay(kind history.Kind, date time.Time, plan string) (*history.Session, error) {
	if kind.IsTemplate() || !kind.Valid() {
		return nil, fmt.Errorf("log %q: %w", kind, ErrNotADayKind)
	}
	sess := history.Session{Workout: kind, Date: date, Exercises: []history.SetLog{}}
	if kind == history.KindCustom {
		sess.CustomPlan = plan
	}
	return t.history.Put(sess)
}

func (t *Tracker) DeleteDay(date time.Time) (bool, error) {
	return t.history.Delete(date)
}

// Purchase spends stars on a reward and records the redemption.
func (t *Tracker) Purchase(rewardID string) (history.Redemption, error) {
	r, ok := rewards.Find(rewardID)
	if !ok {
		return history.Redemption{}, fmt.Errorf("purchase %q: %w", rewardID, ErrUnknownReward)
	}
	left, err := rewards.Purchase(t.history.Stars(), r)
	if err != nil {
		return history.Redemption{}, err
	}
	if err := t.history.SetStars(left); err != nil {
		return history.Redemption{}, err
	}
	red := history.Redemption{
		ID:       uuid.NewString(),
		RewardID: r.ID,
		Cost:     r.Cost,
		At:       t.now(),
	}
	if err := t.history.AddRedemption(red); err != nil {
		return red, err
	}
	t.log.WithFields(logrus.Fields{"reward": r.ID, "cost": r.Cost, "stars": left.String()}).Info("reward purchased")
	return red, nil
}

func (t *Tracker) Points() int { return rewards.Points(t.history.Stars()) }

func (t *Tracker) Records() []records.Record {
	return records.Compute(t.history.Sessions())
}

// Payload is the current export.
func (t *Tracker) Payload() export.Payload {
	return export.NewPayload(t.history.Sessions(), t.history.Stars())
}

func (t *Tracker) Export(path string) error {
	if err := export.ToFile(path, t.Payload()); err != nil {
		return err
	}
	t.log.WithFields(logrus.Fields{"path": path, "sessions": t.history.Len()}).Info("history exported")
	return nil
}

// Import replaces history with the file's contents. Nothing changes unless
// the whole file is valid.
func (t *Tracker) Import(path string) (int, error) {
	p, err := export.FromFile(path)
	if err != nil {
		return 0, err
	}
	return len(p.History), t.ImportPayload(p)
}

func (t *Tracker) ImportPayload(p export.Payload) error {
	if err := export.Validate(p, t.history.DayKey); err != nil {
		return fmt.Errorf("%w: %w", export.ErrInvalidShape, err)
	}
	return t.history.Replace(p.History, p.StarsOrRecompute())
}
