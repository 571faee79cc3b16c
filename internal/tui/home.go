package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/liftlog/internal/catalog"
	"github.com/sadopc/liftlog/internal/history"
	"github.com/sadopc/liftlog/internal/tracker"
	"github.com/sadopc/liftlog/internal/workout"
)

type homeModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	data homeDataMsg
}

type homeDataMsg struct {
	next   catalog.Workout
	active bool
	phase  workout.Phase
	logged int
	saved  *workout.Snapshot
	stars  history.Stars
	points int
	last   *history.Session
}

func newHomeModel(tr *tracker.Tracker) homeModel {
	return homeModel{tracker: tr}
}

func (h homeModel) Init() tea.Cmd {
	return tea.Batch(h.checkSaved(), h.refresh())
}

func (h *homeModel) setSize(w, height int) {
	h.width = w
	h.height = height
}

// checkSaved surfaces the persisted workout at startup. Stale records are
// dropped by Resume, which reports why.
func (h homeModel) checkSaved() tea.Cmd {
	snap, err := h.tracker.Saved()
	if err != nil {
		if errors.Is(err, tracker.ErrNoActiveSession) {
			return nil
		}
		return errorCmd(err)
	}
	if !h.tracker.HasSaved() {
		return errorCmd(h.tracker.Resume())
	}
	return statusCmd(fmt.Sprintf("Workout %s from %s can be resumed (r)",
		snap.SelectedWorkout, snap.SavedAt().Local().Format("15:04")))
}

// refresh reads tracker state on the update goroutine and hands it over as a
// message.
func (h homeModel) refresh() tea.Cmd {
	msg := h.load()
	return func() tea.Msg { return msg }
}

func (h homeModel) load() homeDataMsg {
	hs := h.tracker.History()
	sess := h.tracker.Session()
	d := homeDataMsg{
		next:   h.tracker.NextWorkout(),
		active: sess.Active(),
		phase:  sess.Phase(),
		logged: len(sess.Log()),
		stars:  hs.Stars(),
		points: h.tracker.Points(),
	}
	if !d.active && h.tracker.HasSaved() {
		if snap, err := h.tracker.Saved(); err == nil {
			d.saved = &snap
		}
	}
	if last, ok := hs.Last(); ok {
		d.last = &last
	}
	return d
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeDataMsg:
		h.data = msg
		return h, nil

	case workoutChangedMsg:
		return h, h.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			return h, switchView(viewWorkout)

		case key.Matches(msg, keys.Resume):
			if h.data.active {
				return h, switchView(viewWorkout)
			}
			if err := h.tracker.Resume(); err != nil {
				return h, tea.Batch(errorCmd(err), h.refresh())
			}
			return h, tea.Batch(statusCmd("Workout resumed"), changed, switchView(viewWorkout))

		case key.Matches(msg, keys.Discard):
			if h.data.saved == nil {
				return h, nil
			}
			if err := h.tracker.DiscardSaved(); err != nil {
				return h, errorCmd(err)
			}
			return h, tea.Batch(statusCmd("Saved workout discarded"), h.refresh())
		}
	}
	return h, nil
}

func (h homeModel) view() string {
	if h.width < 20 {
		return "Terminal too small"
	}
	w := h.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		h.renderWorkoutPanel(w),
		h.renderStarsPanel(w),
		h.renderLastPanel(w),
	)
}

func (h homeModel) renderWorkoutPanel(w int) string {
	d := h.data
	if d.active {
		title := titleStyle.Render("Workout in progress")
		state := successStyle.Render("●  " + strings.ToUpper(d.phase.String()))
		sets := mutedStyle.Render(fmt.Sprintf("%d sets logged", d.logged))
		hint := mutedStyle.Render("Press enter to continue")
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, state, sets, "", hint))
	}

	rows := []string{
		titleStyle.Render("Next up: ") + highlightStyle.Render(d.next.Name) + mutedStyle.Render("  "+d.next.Focus),
		"",
	}
	for i, tmpl := range d.next.Exercises {
		ex := workout.Resolve(tmpl, "")
		prefix := fmt.Sprintf("  %d. ", i+1)
		if tmpl.IsSuperset {
			prefix = "     ↳ "
		}
		rows = append(rows, fmt.Sprintf("%s%-32s %s", prefix, ex.Name, mutedStyle.Render(fmt.Sprintf("%d × %s", ex.Sets, ex.RepRange))))
	}
	rows = append(rows, "")

	if d.saved != nil {
		age := h.tracker.Now().Sub(d.saved.SavedAt()).Round(time.Minute)
		rows = append(rows,
			warningStyle.Render(fmt.Sprintf("⏸  Workout %s saved %s ago (%d sets)", d.saved.SelectedWorkout, age, len(d.saved.SessionData))),
			mutedStyle.Render("r: resume  D: discard  enter: start fresh"),
		)
		return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}
	rows = append(rows, mutedStyle.Render("Press enter to start"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (h homeModel) renderStarsPanel(w int) string {
	title := titleStyle.Render("Stars")
	points := highlightStyle.Render(fmt.Sprintf("%d points", h.data.points))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %s", title, points),
		starsLine(h.data.stars),
		mutedStyle.Render("gold for every workout day, silver for rest days"),
	))
}

func (h homeModel) renderLastPanel(w int) string {
	title := titleStyle.Render("Last logged")
	if h.data.last == nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("Nothing logged yet")))
	}
	l := h.data.last
	line := kindStyle(l.Workout).Render(l.Workout.Label()) + mutedStyle.Render("  "+formatDate(l.Date))
	if n := len(l.Exercises); n > 0 {
		line += mutedStyle.Render(fmt.Sprintf("  %d sets", n))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, line))
}
