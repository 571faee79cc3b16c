package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sadopc/liftlog/internal/catalog"
	"github.com/sadopc/liftlog/internal/store"
	"github.com/sadopc/liftlog/internal/tracker"
	"github.com/sadopc/liftlog/internal/workout"
)

type formKind int

const (
	formNone formKind = iota
	formSetup
	formSwap
	formSwapConfirm
	formExit
	formNote
)

const (
	fieldWeight = iota
	fieldReps
)

type workoutModel struct {
	tracker *tracker.Tracker
	store   *store.Store
	width   int
	height  int

	cursor int // workout picker, then rest choice

	formActive bool
	form       *huh.Form
	formKind   formKind

	// Form values as pointers (survive value copies)
	choices   map[string]*string
	cardio    *string
	swapTo    *string
	confirmed *bool
	note      *string

	setupKey     string
	swapTemplate string

	weight textinput.Model
	reps   textinput.Model
	focus  int

	bar   progress.Model
	cheer *workout.Encourager
	// shown between sets
	lastCheer string
	lastTip   string
}

func newWorkoutModel(tr *tracker.Tracker, s *store.Store) workoutModel {
	cardio, swapTo, note := "", "", ""
	confirmed := false

	weight := textinput.New()
	weight.Prompt = "Weight: "
	weight.Placeholder = "0"
	weight.CharLimit = 7
	weight.Width = 8

	reps := textinput.New()
	reps.Prompt = "Reps:   "
	reps.Placeholder = "0"
	reps.CharLimit = 3
	reps.Width = 4

	return workoutModel{
		tracker:   tr,
		store:     s,
		choices:   make(map[string]*string),
		cardio:    &cardio,
		swapTo:    &swapTo,
		confirmed: &confirmed,
		note:      &note,
		weight:    weight,
		reps:      reps,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		cheer:     workout.NewEncourager(nil),
	}
}

func (m *workoutModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.bar.Width = max(10, min(60, w-12))
}

type workoutDataMsg struct {
	next string
}

func (m workoutModel) refresh() tea.Cmd {
	msg := workoutDataMsg{next: m.tracker.NextWorkout().Key}
	return func() tea.Msg { return msg }
}

// capturing reports whether keys belong to this view rather than the app
// shortcuts, so digits reach the weight and reps fields.
func (m workoutModel) capturing() bool {
	if m.formActive {
		return true
	}
	return m.tracker.Session().Phase() == workout.InProgress
}

func watchTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m workoutModel) update(msg tea.Msg) (workoutModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case workoutDataMsg:
		if m.tracker.Session().Phase() == workout.NotStarted {
			m.cursor = max(0, indexOf(catalog.Order, msg.next))
		}
		return m, nil

	case workoutChangedMsg:
		m.syncInputs()
		return m, nil

	case tickMsg:
		return m.tick()

	case watchTickMsg:
		if m.tracker.Stopwatch().Running() {
			return m, watchTickCmd()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.tracker.Session().Phase() {
		case workout.NotStarted:
			return m.updatePicker(msg)
		case workout.InProgress:
			return m.updateLogging(msg)
		case workout.RestPending:
			return m.updateRestChoice(msg)
		case workout.Resting:
			return m.updateResting(msg)
		case workout.Completed:
			if key.Matches(msg, keys.Enter) {
				m.tracker.Dismiss()
				return m, tea.Batch(changed, m.refresh())
			}
		}
	}
	return m, nil
}

// tick moves on once the rest countdown runs out.
func (m workoutModel) tick() (workoutModel, tea.Cmd) {
	moved, err := m.tracker.Tick()
	if err != nil {
		return m, errorCmd(err)
	}
	if !moved {
		return m, nil
	}
	cmds := []tea.Cmd{changed}
	if m.store.ChimeEnabled() {
		cmds = append(cmds, ringBell)
	}
	s := m.tracker.Session()
	if s.Phase() == workout.Completed {
		cmds = append(cmds, statusCmd("Workout complete! ★ +1 gold"))
	} else {
		cmds = append(cmds, statusCmd("Rest over: "+s.Current().Name))
	}
	m.syncInputs()
	return m, tea.Batch(cmds...)
}

func (m workoutModel) updatePicker(msg tea.KeyMsg) (workoutModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(catalog.Order)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		return m.showSetupForm(catalog.Order[m.cursor])
	}
	return m, nil
}

func (m workoutModel) updateLogging(msg tea.KeyMsg) (workoutModel, tea.Cmd) {
	s := m.tracker.Session()
	ex := s.Current()

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		return m, switchView(viewHome)
	case key.Matches(msg, keys.ExitWork):
		return m.requestExit()
	case key.Matches(msg, keys.Swap):
		return m.showSwapForm(s.Position().Exercise)
	case key.Matches(msg, keys.Superset):
		return m.toggleSuperset(s.Position().Exercise)
	case key.Matches(msg, keys.Note):
		return m.showNoteForm(ex.Name)
	}

	if ex.Stopwatch {
		return m.updateStopwatch(msg)
	}

	switch {
	case key.Matches(msg, keys.Field), key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		if !ex.Bodyweight {
			m.setFocus(1 - m.focus)
		}
		return m, nil
	case key.Matches(msg, keys.Enter):
		return m.logSet()
	}

	if !numericKey(msg) {
		return m, nil
	}
	var cmd tea.Cmd
	if m.focus == fieldWeight {
		m.weight, cmd = m.weight.Update(msg)
	} else {
		m.reps, cmd = m.reps.Update(msg)
	}
	if err := m.tracker.SetDraft(m.draft()); err != nil {
		return m, tea.Batch(cmd, errorCmd(err))
	}
	return m, cmd
}

func (m workoutModel) updateStopwatch(msg tea.KeyMsg) (workoutModel, tea.Cmd) {
	w := m.tracker.Stopwatch()
	switch {
	case key.Matches(msg, keys.Pause):
		w.Toggle()
		if w.Running() {
			return m, watchTickCmd()
		}
	case key.Matches(msg, keys.Delete):
		w.Reset()
	case key.Matches(msg, keys.Enter):
		if w.Elapsed() == 0 {
			w.Start()
			return m, watchTickCmd()
		}
		out, err := m.tracker.LogTimed()
		if err != nil {
			return m, errorCmd(err)
		}
		return m.afterLog(out, "Held for "+workout.FormatHold(out.Set.Duration()))
	}
	return m, nil
}

func (m workoutModel) logSet() (workoutModel, tea.Cmd) {
	ex := m.tracker.Session().Current()
	in, err := workout.ParseInput(ex, m.draft())
	if err == nil {
		err = workout.ValidateInput(ex, in)
	}
	if err != nil {
		if ex.Bodyweight {
			return m, errorCmd(errors.New("enter the reps you did"))
		}
		return m, errorCmd(errors.New("enter a weight and the reps you did"))
	}
	out, err := m.tracker.LogSet(in)
	if err != nil {
		return m, errorCmd(err)
	}
	m.lastTip = workout.Tip(in.Reps, ex.RepRange)
	return m.afterLog(out, fmt.Sprintf("Logged %s set %d", ex.Name, out.Set.Set))
}

func (m workoutModel) afterLog(out workout.Outcome, text string) (workoutModel, tea.Cmd) {
	m.lastCheer = m.cheer.Next()
	if out.Completed {
		return m, tea.Batch(changed, statusCmd("Workout complete! ★ +1 gold"))
	}
	m.cursor = max(0, indexOfRest(out.Rest))
	return m, tea.Batch(changed, statusCmd(text))
}

func (m workoutModel) updateRestChoice(msg tea.KeyMsg) (workoutModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Right):
		if m.cursor < len(workout.RestChoices)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if err := m.tracker.BeginRest(workout.RestChoices[m.cursor]); err != nil {
			return m, errorCmd(err)
		}
		return m, changed
	default:
		return m.updateBetweenSets(msg)
	}
	return m, nil
}

func (m workoutModel) updateResting(msg tea.KeyMsg) (workoutModel, tea.Cmd) {
	if key.Matches(msg, keys.Pause) {
		m.tracker.Rest().Toggle()
		return m, nil
	}
	return m.updateBetweenSets(msg)
}

// updateBetweenSets handles what rest choice and the countdown share. Swaps
// and supersets here apply to the upcoming exercise.
func (m workoutModel) updateBetweenSets(msg tea.KeyMsg) (workoutModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Skip):
		if err := m.tracker.SkipRest(); err != nil {
			return m, errorCmd(err)
		}
		m.syncInputs()
		return m, changed
	case key.Matches(msg, keys.ExitWork):
		return m.requestExit()
	case key.Matches(msg, keys.Swap):
		return m.showSwapForm(m.upcoming())
	case key.Matches(msg, keys.Superset):
		return m.toggleSuperset(m.upcoming())
	}
	return m, nil
}

// upcoming is the exercise the next set belongs to.
func (m workoutModel) upcoming() int {
	s := m.tracker.Session()
	if p, ok := s.Pending(); ok && p.Exercise < len(s.Workout().Exercises) {
		return p.Exercise
	}
	return s.Position().Exercise
}

func (m workoutModel) toggleSuperset(i int) (workoutModel, tea.Cmd) {
	pair, ok := pairKey(m.tracker.Session().Workout(), i)
	if !ok {
		return m, statusCmd("This exercise is not part of a superset")
	}
	on, err := m.tracker.ToggleSuperset(pair)
	if err != nil {
		return m, errorCmd(err)
	}
	if on {
		return m, statusCmd("Superset on: " + pair)
	}
	return m, statusCmd("Superset off: " + pair + " runs as straight sets")
}

func (m workoutModel) requestExit() (workoutModel, tea.Cmd) {
	if err := m.tracker.RequestExit(); err != nil {
		return m, errorCmd(err)
	}
	*m.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Exit this workout?").
				Description(fmt.Sprintf("%d logged sets will be discarded. History is not changed.", len(m.tracker.Session().Log()))).
				Affirmative("Exit").
				Negative("Keep going").
				Value(m.confirmed),
		),
	).WithShowHelp(true)
	m.formKind = formExit
	m.formActive = true
	return m, m.form.Init()
}

// ============================================================
// Forms
// ============================================================

func (m workoutModel) showSetupForm(k string) (workoutModel, tea.Cmd) {
	w, ok := catalog.Get(k)
	if !ok {
		return m, errorCmd(fmt.Errorf("start %q: %w", k, workout.ErrUnknownWorkout))
	}
	m.setupKey = k
	m.choices = make(map[string]*string)
	*m.cardio = ""

	var fields []huh.Field
	for _, tmpl := range w.Exercises {
		if !tmpl.HasOptions() {
			continue
		}
		choice := tmpl.Options[0].Name
		m.choices[tmpl.Name] = &choice
		opts := make([]huh.Option[string], len(tmpl.Options))
		for i, o := range tmpl.Options {
			opts[i] = huh.NewOption(o.Name, o.Name)
		}
		fields = append(fields, huh.NewSelect[string]().Title(tmpl.Name).Options(opts...).Value(&choice))
	}

	var groups []*huh.Group
	if len(fields) > 0 {
		groups = append(groups, huh.NewGroup(fields...).Title("Exercise choices"))
	}
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Pre-workout cardio").
			Placeholder("e.g. 10 min bike, optional").
			Value(m.cardio),
	).Title(w.Name))

	m.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	m.formKind = formSetup
	m.formActive = true
	return m, m.form.Init()
}

func (m workoutModel) showSwapForm(i int) (workoutModel, tea.Cmd) {
	s := m.tracker.Session()
	tmpl := s.Workout().Exercises[i]
	if !tmpl.HasOptions() {
		return m, statusCmd(tmpl.Name + " has no alternatives")
	}
	m.swapTemplate = tmpl.Name
	*m.swapTo = s.Exercise(i).Name

	opts := make([]huh.Option[string], len(tmpl.Options))
	for k, o := range tmpl.Options {
		opts[k] = huh.NewOption(o.Name, o.Name)
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Swap " + tmpl.Name).Options(opts...).Value(m.swapTo),
		),
	).WithShowHelp(true)
	m.formKind = formSwap
	m.formActive = true
	return m, m.form.Init()
}

func (m workoutModel) showSwapConfirm(n int) (workoutModel, tea.Cmd) {
	*m.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Switch to %s?", *m.swapTo)).
				Description(fmt.Sprintf("%d sets already logged for this exercise will be deleted.", n)).
				Affirmative("Swap").
				Negative("Cancel").
				Value(m.confirmed),
		),
	).WithShowHelp(true)
	m.formKind = formSwapConfirm
	m.formActive = true
	return m, m.form.Init()
}

func (m workoutModel) showNoteForm(name string) (workoutModel, tea.Cmd) {
	*m.note = m.tracker.History().Note(name)
	m.swapTemplate = name
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Note for " + name).CharLimit(280).Value(m.note),
		),
	).WithShowHelp(true)
	m.formKind = formNote
	m.formActive = true
	return m, m.form.Init()
}

func (m workoutModel) updateForm(msg tea.Msg) (workoutModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return m.closeForm(false)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.closeForm(true)
	case huh.StateAborted:
		return m.closeForm(false)
	}
	return m, cmd
}

func (m workoutModel) closeForm(done bool) (workoutModel, tea.Cmd) {
	kind := m.formKind
	m.formActive = false
	m.form = nil
	m.formKind = formNone

	if kind == formExit {
		if !done || !*m.confirmed {
			m.tracker.CancelExit()
			return m, nil
		}
		if err := m.tracker.Exit(); err != nil {
			return m, errorCmd(err)
		}
		return m, tea.Batch(changed, m.refresh(), statusCmd("Workout discarded"))
	}
	if !done {
		return m, nil
	}

	switch kind {
	case formSetup:
		return m.startWorkout()

	case formSwap:
		s := m.tracker.Session()
		i := s.Workout().Index(m.swapTemplate)
		if i < 0 || s.Exercise(i).Name == *m.swapTo {
			return m, nil
		}
		if n := s.LoggedUnder(m.swapTemplate); n > 0 {
			return m.showSwapConfirm(n)
		}
		return m.swap()

	case formSwapConfirm:
		if *m.confirmed {
			return m.swap()
		}

	case formNote:
		if err := m.tracker.History().SetNote(m.swapTemplate, *m.note); err != nil {
			return m, errorCmd(err)
		}
		return m, statusCmd("Note saved")
	}
	return m, nil
}

func (m workoutModel) startWorkout() (workoutModel, tea.Cmd) {
	choices := make(map[string]string, len(m.choices))
	for name, v := range m.choices {
		choices[name] = *v
	}
	if err := m.tracker.Start(m.setupKey, choices); err != nil {
		return m, errorCmd(err)
	}
	if err := m.tracker.SetCardio(*m.cardio); err != nil {
		return m, errorCmd(err)
	}
	m.lastCheer, m.lastTip = "", ""
	m.syncInputs()
	return m, tea.Batch(changed, statusCmd("Workout "+m.setupKey+" started"))
}

func (m workoutModel) swap() (workoutModel, tea.Cmd) {
	n, err := m.tracker.Swap(m.swapTemplate, *m.swapTo)
	if err != nil {
		return m, errorCmd(err)
	}
	m.syncInputs()
	text := "Swapped to " + *m.swapTo
	if n > 0 {
		text += fmt.Sprintf(" (%d sets removed)", n)
	}
	return m, tea.Batch(changed, statusCmd(text))
}

// ============================================================
// Inputs
// ============================================================

func (m *workoutModel) syncInputs() {
	s := m.tracker.Session()
	if !s.Active() {
		return
	}
	d := s.Draft()
	m.weight.SetValue(d.Weight)
	m.reps.SetValue(d.Reps)
	if s.Current().Bodyweight {
		m.setFocus(fieldReps)
	} else {
		m.setFocus(fieldWeight)
	}
}

func (m *workoutModel) setFocus(f int) {
	m.focus = f
	if f == fieldWeight {
		m.weight.Focus()
		m.reps.Blur()
		return
	}
	m.reps.Focus()
	m.weight.Blur()
}

func (m workoutModel) draft() workout.Draft {
	return workout.Draft{Weight: m.weight.Value(), Reps: m.reps.Value()}
}

// numericKey admits digits, the decimal point and editing keys.
func numericKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '.' {
				return false
			}
		}
		return len(msg.Runes) > 0
	}
	return false
}

// pairKey returns the first-half template name of the superset entry i
// belongs to.
func pairKey(w catalog.Workout, i int) (string, bool) {
	ex := w.Exercises
	if i < 0 || i >= len(ex) {
		return "", false
	}
	switch {
	case ex[i].Superset != "" && !ex[i].IsSuperset:
		return ex[i].Name, true
	case ex[i].IsSuperset && i > 0 && ex[i-1].Superset == ex[i].Name:
		return ex[i-1].Name, true
	}
	return "", false
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

func indexOfRest(d time.Duration) int {
	for i, c := range workout.RestChoices {
		if c == d {
			return i
		}
	}
	return 1
}
