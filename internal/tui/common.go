package tui

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/liftlog/internal/history"
	"github.com/sadopc/liftlog/internal/tracker"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewWorkout
	viewHistory
	viewRecords
	viewShop
	viewSettings
)

var viewNames = []string{"Home", "Workout", "History", "Records", "Shop", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// watchTickMsg redraws the stopwatch between the one-second ticks.
type watchTickMsg time.Time

type switchViewMsg struct {
	view viewState
}

// workoutChangedMsg tells the other views the tracker state moved.
type workoutChangedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: describeError(err), isError: true} }
}

// describeError turns tracker errors into something a user can act on.
func describeError(err error) string {
	switch {
	case errors.Is(err, tracker.ErrStaleSession):
		return "Saved workout was too old to resume and has been discarded"
	case errors.Is(err, tracker.ErrNoActiveSession):
		return "No saved workout to resume"
	case errors.Is(err, tracker.ErrSessionInProgress):
		return "Finish or exit the current workout first"
	}
	return fmt.Sprintf("Error: %v", err)
}

func switchView(v viewState) tea.Cmd {
	return func() tea.Msg { return switchViewMsg{view: v} }
}

func changed() tea.Msg { return workoutChangedMsg{} }

// ringBell sounds the three-note rest chime as terminal bells.
func ringBell() tea.Msg {
	fmt.Fprint(os.Stderr, "\a\a\a")
	return nil
}

func formatDate(t time.Time) string {
	return t.Local().Format("Mon Jan 2, 2006")
}

func starsLine(s history.Stars) string {
	return goldStyle.Render(fmt.Sprintf("★ %d", s.Gold)) + "  " + silverStyle.Render(fmt.Sprintf("☆ %d", s.Silver))
}
