package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/liftlog/internal/catalog"
	"github.com/sadopc/liftlog/internal/history"
	"github.com/sadopc/liftlog/internal/workout"
)

func (m workoutModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(m.form.View())
	}

	s := m.tracker.Session()
	switch s.Phase() {
	case workout.NotStarted:
		return m.renderPicker(w)
	case workout.Completed:
		return m.renderSummary(w)
	}

	var detail string
	switch s.Phase() {
	case workout.RestPending:
		detail = m.renderRestChoice(w)
	case workout.Resting:
		detail = m.renderResting(w)
	default:
		detail = m.renderCurrent(w)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderPlan(w), detail)
}

func (m workoutModel) renderPicker(w int) string {
	next := m.tracker.NextWorkout().Key
	rows := []string{titleStyle.Render("Choose a workout"), ""}
	for i, k := range catalog.Order {
		wk, _ := catalog.Get(k)
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s%s  %s", cursor, wk.Name, mutedStyle.Render(wk.Focus))
		if k == next {
			line += successStyle.Render("  (next)")
		}
		rows = append(rows, style.Render(line))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: set up  ↑/↓: choose"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderPlan lists the template with per-exercise progress.
func (m workoutModel) renderPlan(w int) string {
	s := m.tracker.Session()
	wk := s.Workout()
	current := s.Position().Exercise
	if s.Phase() == workout.RestPending || s.Phase() == workout.Resting {
		current = m.upcoming()
	}

	total, logged := 0, 0
	var rows []string
	for i, tmpl := range wk.Exercises {
		ex := s.Exercise(i)
		n := s.Count(ex.Name)
		total += ex.Sets
		logged += min(n, ex.Sets)

		marker := "  "
		style := normalItemStyle
		switch {
		case n >= ex.Sets:
			marker = successStyle.Render("✓ ")
			style = mutedStyle
		case i == current:
			marker = highlightStyle.Render("▶ ")
			style = selectedItemStyle
		}
		name := ex.Name
		if tmpl.IsSuperset {
			name = "↳ " + name
		}
		line := fmt.Sprintf("%s%-34s %d/%d", marker, style.Render(name), n, ex.Sets)
		if pair, ok := pairKey(wk, i); ok && !tmpl.IsSuperset && !s.PairActive(pair) {
			line += mutedStyle.Render("  superset off")
		}
		rows = append(rows, line)
	}

	header := titleStyle.Render(wk.Name) + mutedStyle.Render("  "+wk.Focus) +
		highlightStyle.Render(fmt.Sprintf("  %d/%d sets", logged, total))
	if c := s.Cardio(); c != "" {
		header += mutedStyle.Render("  cardio: " + c)
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", strings.Join(rows, "\n")))
}

func (m workoutModel) renderCurrent(w int) string {
	s := m.tracker.Session()
	ex := s.Current()
	pos := s.Position()

	rows := []string{
		titleStyle.Render(ex.Name) + mutedStyle.Render(fmt.Sprintf("  set %d of %d  target %s", pos.Set+1, ex.Sets, ex.RepRange)),
	}
	if ex.Note != "" {
		rows = append(rows, mutedStyle.Render(ex.Note))
	}
	if partner, ok := s.Partner(pos.Exercise); ok {
		rows = append(rows, accentStyle.Render("Superset with "+s.Exercise(partner).Name))
	}
	if note := m.tracker.History().Note(ex.Name); note != "" {
		rows = append(rows, warningStyle.Render("✎ "+note))
	}
	if last := m.tracker.History().LastPerformance(ex.Name); len(last) > 0 {
		rows = append(rows, mutedStyle.Render("Last time: "+describeSets(ex, last)))
	}
	rows = append(rows, "")

	if ex.Stopwatch {
		rows = append(rows, m.renderStopwatch(w)...)
	} else {
		rows = append(rows, m.renderInputs(ex)...)
	}

	if s.Phase() == workout.ExitRequested {
		rows = append(rows, "", warningStyle.Render("Exit requested"))
	}
	rows = append(rows, "", mutedStyle.Render("  w: swap  t: superset  n: note  x: exit  esc: home"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m workoutModel) renderInputs(ex workout.Exercise) []string {
	var rows []string
	if !ex.Bodyweight {
		rows = append(rows, m.weight.View()+mutedStyle.Render(" "+m.store.WeightUnit()))
	}

	repsView := m.reps.View()
	if n, err := strconv.Atoi(strings.TrimSpace(m.reps.Value())); err == nil {
		switch workout.FitReps(n, ex.RepRange) {
		case workout.RepsInRange:
			repsView += successStyle.Render("  in range")
		case workout.RepsAbove:
			repsView += accentStyle.Render("  above range")
		case workout.RepsBelow:
			repsView += warningStyle.Render("  below range")
		}
		if tip := workout.Tip(n, ex.RepRange); tip != "" {
			repsView += "\n" + mutedStyle.Render(tip)
		}
	}
	rows = append(rows, repsView)

	if !ex.Bodyweight {
		if v, err := strconv.ParseFloat(strings.TrimSpace(m.weight.Value()), 64); err == nil && v > 0 && !workout.IsAssisted(ex.Name) {
			load := workout.Plates(v, m.store.BarWeight(), m.store.WeightUnit())
			rows = append(rows, mutedStyle.Render("Plates: "+load.String()))
		}
	}
	rows = append(rows, "", mutedStyle.Render("  enter: log set  tab: switch field"))
	return rows
}

func (m workoutModel) renderStopwatch(w int) []string {
	sw := m.tracker.Stopwatch()
	reading := workout.FormatHold(sw.Elapsed())
	var clock, state string
	switch {
	case sw.Running():
		clock = clockRunningStyle.Width(w - 6).Render(reading)
		state = successStyle.Render("●  HOLDING")
	case sw.Elapsed() > 0:
		clock = clockPausedStyle.Width(w - 6).Render(reading)
		state = warningStyle.Render("⏸  PAUSED")
	default:
		clock = clockStyle.Width(w - 6).Render(reading)
		state = mutedStyle.Render("■  READY")
	}
	return []string{
		clock,
		state,
		"",
		mutedStyle.Render("  enter: start/log hold  space: pause/resume  d: reset"),
	}
}

func (m workoutModel) renderRestChoice(w int) string {
	s := m.tracker.Session()
	rows := []string{successStyle.Render("Set logged! ") + m.lastCheer}
	if m.lastTip != "" {
		rows = append(rows, warningStyle.Render(m.lastTip))
	}
	rows = append(rows, "", titleStyle.Render("Rest")+mutedStyle.Render("  suggested "+workout.FormatClock(s.SuggestedRest())))

	var choices []string
	for i, d := range workout.RestChoices {
		label := fmt.Sprintf(" %s ", workout.FormatClock(d))
		if i == m.cursor {
			choices = append(choices, activeTabStyle.Render(label))
		} else {
			choices = append(choices, inactiveTabStyle.Render(label))
		}
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom, choices...))
	rows = append(rows, "", m.renderUpNext())
	rows = append(rows, "", mutedStyle.Render("  ←/→: choose  enter: start rest  s: skip  w: swap next  x: exit"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m workoutModel) renderResting(w int) string {
	rt := m.tracker.Rest()
	reading := workout.FormatClock(rt.Remaining())
	var clock, state string
	if rt.Paused() {
		clock = clockPausedStyle.Width(w - 6).Render(reading)
		state = warningStyle.Render("⏸  PAUSED")
	} else {
		clock = clockRunningStyle.Width(w - 6).Render(reading)
		state = successStyle.Render("●  RESTING")
	}

	rows := []string{
		clock,
		lipgloss.PlaceHorizontal(w-6, lipgloss.Center, m.bar.ViewAs(rt.Progress())),
		lipgloss.PlaceHorizontal(w-6, lipgloss.Center, state),
		"",
	}
	if m.lastCheer != "" {
		rows = append(rows, m.lastCheer)
	}
	rows = append(rows, m.renderUpNext())
	rows = append(rows, "", mutedStyle.Render("  space: pause/resume  s: skip  w: swap next  x: exit"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m workoutModel) renderUpNext() string {
	s := m.tracker.Session()
	p, ok := s.Pending()
	if !ok || p.Exercise >= len(s.Workout().Exercises) {
		return ""
	}
	ex := s.Exercise(p.Exercise)
	return mutedStyle.Render("Up next: ") + highlightStyle.Render(ex.Name) +
		mutedStyle.Render(fmt.Sprintf("  set %d of %d", p.Set+1, ex.Sets))
}

func (m workoutModel) renderSummary(w int) string {
	s := m.tracker.Session()
	wk := s.Workout()
	log := s.Log()

	rows := []string{
		successStyle.Render("✓ "+wk.Name+" complete") + "  " + goldStyle.Render("★ +1 gold"),
		"",
	}
	for i := range wk.Exercises {
		ex := s.Exercise(i)
		sets := s.SetsFor(ex.Name)
		if len(sets) == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-32s %s", ex.Name, mutedStyle.Render(describeSets(ex, sets))))
	}
	if len(log) > 1 {
		dur := log[len(log)-1].Timestamp.Sub(log[0].Timestamp).Round(time.Minute)
		rows = append(rows, "", mutedStyle.Render(fmt.Sprintf("  %d sets in %s", len(log), dur)))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: done"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// describeSets renders sets compactly: "135×10, 135×9" or "0:45.0".
func describeSets(ex workout.Exercise, sets []history.SetLog) string {
	parts := make([]string, len(sets))
	for i, set := range sets {
		switch {
		case set.Timed():
			parts[i] = workout.FormatHold(set.Duration())
		case ex.Bodyweight || set.Weight == 0:
			parts[i] = fmt.Sprintf("%d reps", set.Reps)
		default:
			parts[i] = fmt.Sprintf("%s×%d", workout.FormatWeight(set.Weight), set.Reps)
		}
	}
	return strings.Join(parts, ", ")
}
