package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/liftlog/internal/history"
	"github.com/sadopc/liftlog/internal/tracker"
	"github.com/sadopc/liftlog/internal/workout"
)

const chartWeeks = 8

// chartKinds fixes the stacking order of weekly bars.
var chartKinds = []history.Kind{
	history.KindA, history.KindB, history.KindC,
	history.KindHotYoga, history.KindCustom, history.KindRest,
}

type historyModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	year     int
	month    time.Month
	selected time.Time // midnight in the history location

	sessions map[string]history.Session // by day key
	weeks    []history.WeekCount
	chart    barchart.Model

	formActive bool
	form       *huh.Form
	deleting   bool

	// Form values as pointers (survive value copies)
	dayKind   *string
	dayPlan   *string
	confirmed *bool
}

func newHistoryModel(tr *tracker.Tracker) historyModel {
	kind, plan := string(history.KindRest), ""
	confirmed := false
	now := tr.Now().In(tr.History().Location())
	return historyModel{
		tracker:   tr,
		year:      now.Year(),
		month:     now.Month(),
		selected:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		chart:     barchart.New(60, 12),
		dayKind:   &kind,
		dayPlan:   &plan,
		confirmed: &confirmed,
	}
}

func (h *historyModel) setSize(w, height int) {
	h.width = w
	h.height = height
}

type historyDataMsg struct {
	sessions map[string]history.Session
	weeks    []history.WeekCount
}

func (h historyModel) refresh() tea.Cmd {
	hs := h.tracker.History()
	msg := historyDataMsg{
		sessions: make(map[string]history.Session),
		weeks:    hs.Weekly(h.tracker.Now(), chartWeeks),
	}
	for _, s := range hs.Sessions() {
		msg.sessions[hs.DayKey(s.Date)] = s
	}
	return func() tea.Msg { return msg }
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case historyDataMsg:
		h.sessions = msg.sessions
		h.weeks = msg.weeks
		h.buildChart()
		return h, nil

	case workoutChangedMsg:
		return h, h.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			h.moveDay(-1)
		case key.Matches(msg, keys.Right):
			h.moveDay(1)
		case key.Matches(msg, keys.Up):
			h.moveDay(-7)
		case key.Matches(msg, keys.Down):
			h.moveDay(7)
		case key.Matches(msg, keys.PrevMonth):
			h.shiftMonth(-1)
		case key.Matches(msg, keys.NextMonth):
			h.shiftMonth(1)
		case key.Matches(msg, keys.New):
			return h.showLogForm()
		case key.Matches(msg, keys.Delete):
			if _, ok := h.tracker.History().ForDate(h.selected); ok {
				return h.showDeleteForm()
			}
		}
	}
	return h, nil
}

func (h *historyModel) moveDay(delta int) {
	h.selected = h.selected.AddDate(0, 0, delta)
	h.year, h.month = h.selected.Year(), h.selected.Month()
}

func (h *historyModel) shiftMonth(delta int) {
	h.year, h.month = history.ShiftMonth(h.year, h.month, delta)
	day := min(h.selected.Day(), daysIn(h.year, h.month))
	h.selected = time.Date(h.year, h.month, day, 0, 0, 0, 0, h.selected.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (h historyModel) showLogForm() (historyModel, tea.Cmd) {
	*h.dayKind = string(history.KindRest)
	*h.dayPlan = ""
	title := "Log " + formatDate(h.selected)
	if prev, ok := h.tracker.History().ForDate(h.selected); ok {
		title += " (replaces " + prev.Workout.Label() + ")"
	}

	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title(title).
				Options(
					huh.NewOption(history.KindRest.Label(), string(history.KindRest)),
					huh.NewOption(history.KindHotYoga.Label(), string(history.KindHotYoga)),
					huh.NewOption(history.KindCustom.Label(), string(history.KindCustom)),
				).Value(h.dayKind),
		),
		huh.NewGroup(
			huh.NewText().Title("What did you do?").CharLimit(500).Value(h.dayPlan),
		).WithHideFunc(func() bool { return *h.dayKind != string(history.KindCustom) }),
	).WithShowHelp(true).WithShowErrors(true)

	h.deleting = false
	h.formActive = true
	return h, h.form.Init()
}

func (h historyModel) showDeleteForm() (historyModel, tea.Cmd) {
	prev, _ := h.tracker.History().ForDate(h.selected)
	*h.confirmed = false
	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s on %s?", prev.Workout.Label(), formatDate(h.selected))).
				Description("Its star is taken back.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(h.confirmed),
		),
	).WithShowHelp(true)
	h.deleting = true
	h.formActive = true
	return h, h.form.Init()
}

func (h historyModel) updateForm(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	switch h.form.State {
	case huh.StateAborted:
		h.formActive = false
		h.form = nil
		return h, nil
	case huh.StateCompleted:
		h.formActive = false
		h.form = nil
		if h.deleting {
			return h.deleteDay()
		}
		return h.logDay()
	}
	return h, cmd
}

func (h historyModel) logDay() (historyModel, tea.Cmd) {
	kind := history.Kind(*h.dayKind)
	// noon keeps the day key stable across a DST shift
	date := h.selected.Add(12 * time.Hour)
	replaced, err := h.tracker.LogDay(kind, date, strings.TrimSpace(*h.dayPlan))
	if err != nil {
		return h, errorCmd(err)
	}
	text := kind.Label() + " logged for " + formatDate(h.selected)
	if replaced != nil {
		text += ", replacing " + replaced.Workout.Label()
	}
	return h, tea.Batch(h.refresh(), changed, statusCmd(text))
}

func (h historyModel) deleteDay() (historyModel, tea.Cmd) {
	if !*h.confirmed {
		return h, nil
	}
	ok, err := h.tracker.DeleteDay(h.selected)
	if err != nil {
		return h, errorCmd(err)
	}
	if !ok {
		return h, statusCmd("Nothing logged that day")
	}
	return h, tea.Batch(h.refresh(), changed, statusCmd("Deleted "+formatDate(h.selected)))
}

func (h *historyModel) buildChart() {
	chartWidth := max(20, h.width-8)
	chartHeight := 8
	if h.height > 40 {
		chartHeight = 12
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, wk := range h.weeks {
		var values []barchart.BarValue
		for _, k := range chartKinds {
			if n := wk.Counts[k]; n > 0 {
				values = append(values, barchart.BarValue{
					Name:  k.Label(),
					Value: float64(n),
					Style: kindStyle(k),
				})
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{
			Label:  wk.Start.Format("Jan 02"),
			Values: values,
		})
	}

	if len(bars) == 0 {
		return
	}
	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	if h.formActive && h.form != nil {
		return activePanelStyle.Width(w).Render(h.form.View())
	}

	header := titleStyle.Render("History") + "  " +
		highlightStyle.Render(fmt.Sprintf("%s %d", h.month, h.year))

	calendar := h.renderCalendar()
	detail := h.renderDay(max(30, w-40))
	top := lipgloss.JoinHorizontal(lipgloss.Top, calendar, "    ", detail)

	nav := mutedStyle.Render("  ←/→/↑/↓: day  [/]: month  a: log day  d: delete")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", top, "",
			subtitleStyle.Render(fmt.Sprintf("Last %d weeks", chartWeeks)), h.chart.View(), h.renderLegend(), "",
			nav,
		),
	)
}

// renderCalendar draws the month Sunday-first, one cell per day tinted by
// what was logged.
func (h historyModel) renderCalendar() string {
	hs := h.tracker.History()
	loc := hs.Location()
	today := hs.DayKey(h.tracker.Now())
	selected := hs.DayKey(h.selected)

	rows := []string{mutedStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa")}
	var line strings.Builder
	for i, day := range history.MonthGrid(h.year, h.month, loc) {
		if i > 0 && i%7 == 0 {
			rows = append(rows, line.String())
			line.Reset()
		}
		if day == nil {
			line.WriteString("    ")
			continue
		}
		k := hs.DayKey(*day)
		cell := fmt.Sprintf("%3d", day.Day())
		style := normalItemStyle
		if s, ok := h.sessions[k]; ok {
			style = kindStyle(s.Workout).Bold(true)
		}
		if k == today {
			style = style.Underline(true)
		}
		if k == selected {
			style = style.Reverse(true)
		}
		line.WriteString(style.Render(cell) + " ")
	}
	if line.Len() > 0 {
		rows = append(rows, line.String())
	}
	return strings.Join(rows, "\n")
}

func (h historyModel) renderDay(w int) string {
	s, ok := h.sessions[h.tracker.History().DayKey(h.selected)]
	title := titleStyle.Render(formatDate(h.selected))
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("Nothing logged"))
	}

	rows := []string{title, kindStyle(s.Workout).Bold(true).Render(s.Workout.Label())}
	if s.PreWorkoutCardio != "" {
		rows = append(rows, mutedStyle.Render("Cardio: "+s.PreWorkoutCardio))
	}
	if s.CustomPlan != "" {
		rows = append(rows, lipgloss.NewStyle().Width(w).Render(s.CustomPlan))
	}

	// group sets by exercise in logged order
	var names []string
	byName := make(map[string][]history.SetLog)
	for _, set := range s.Exercises {
		if _, seen := byName[set.Exercise]; !seen {
			names = append(names, set.Exercise)
		}
		byName[set.Exercise] = append(byName[set.Exercise], set)
	}
	for _, name := range names {
		ex := workout.Exercise{Name: name, Bodyweight: workout.InferBodyweight(name)}
		rows = append(rows, fmt.Sprintf("  %-28s %s", name, mutedStyle.Render(describeSets(ex, byName[name]))))
	}
	return strings.Join(rows, "\n")
}

func (h historyModel) renderLegend() string {
	var items []string
	for _, k := range chartKinds {
		items = append(items, kindStyle(k).Render("●")+" "+k.Label())
	}
	return "  " + strings.Join(items, "  ")
}
