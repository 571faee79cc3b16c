package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/liftlog/internal/export"
	"github.com/sadopc/liftlog/internal/store"
	"github.com/sadopc/liftlog/internal/tracker"
	"github.com/sadopc/liftlog/internal/workout"
)

var exportFormats = []string{"JSON", "JSON (gzip)", "CSV (one row per set)"}

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	store   *store.Store
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	home     homeModel
	workout  workoutModel
	history  historyModel
	records  recordsModel
	shop     shopModel
	settings settingsModel

	help        help.Model
	status      string
	statusError bool

	// exportDir is where exports land; the home directory unless a test sets it.
	exportDir string
}

func NewApp(tr *tracker.Tracker, s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}

	a := App{
		tracker:    tr,
		store:      s,
		activeView: viewHome,
		home:       newHomeModel(tr),
		workout:    newWorkoutModel(tr, s),
		history:    newHistoryModel(tr),
		records:    newRecordsModel(tr, s),
		shop:       newShopModel(tr),
		settings:   newSettingsModel(s),
		help:       h,
		exportDir:  dir,
	}
	if tr.Session().Active() {
		a.activeView = viewWorkout
		a.workout.syncInputs()
	}
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.home.Init(),
		a.workout.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.workout.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.records.setSize(a.width, contentHeight)
		a.shop.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.history.buildChart()
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewHome)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewWorkout)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewHistory)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewRecords)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewShop)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// The rest countdown runs whichever view is showing.
		var cmd tea.Cmd
		a.workout, cmd = a.workout.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case watchTickMsg:
		var cmd tea.Cmd
		a.workout, cmd = a.workout.update(msg)
		return a, cmd

	case switchViewMsg:
		return a.switchTo(msg.view)

	case workoutChangedMsg:
		// every view keeps a copy of tracker state
		var cmd tea.Cmd
		a.home, cmd = a.home.update(msg)
		cmds = append(cmds, cmd)
		a.workout, cmd = a.workout.update(msg)
		cmds = append(cmds, cmd)
		a.history, cmd = a.history.update(msg)
		cmds = append(cmds, cmd)
		a.records, cmd = a.records.update(msg)
		cmds = append(cmds, cmd)
		a.shop, cmd = a.shop.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHome:
		a.home, cmd = a.home.update(msg)
	case viewWorkout:
		a.workout, cmd = a.workout.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewRecords:
		a.records, cmd = a.records.update(msg)
	case viewShop:
		a.shop, cmd = a.shop.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewWorkout:
		return a.workout.capturing()
	case viewHistory:
		return a.history.formActive
	case viewShop:
		return a.shop.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewHome:
		return a.home.refresh()
	case viewWorkout:
		return a.workout.refresh()
	case viewHistory:
		return a.history.refresh()
	case viewRecords:
		return a.records.refresh()
	case viewShop:
		return a.shop.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view()
	case viewWorkout:
		content = a.workout.view()
	case viewHistory:
		content = a.history.view()
	case viewRecords:
		content = a.records.view()
	case viewShop:
		content = a.shop.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("liftlog")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Rest indicator in footer
	restInfo := ""
	if a.tracker.Session().Phase() == workout.Resting {
		rt := a.tracker.Rest()
		restInfo = successStyle.Render(" ● rest " + workout.FormatClock(rt.Remaining()))
		if rt.Paused() {
			restInfo = warningStyle.Render(" ⏸ rest " + workout.FormatClock(rt.Remaining()))
		}
	}

	left := footerStyle.Render(helpView)
	right := restInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker(_ int) string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots history here and writes it off the update loop.
func (a App) doExport(format int) tea.Cmd {
	payload := a.tracker.Payload()
	stamp := a.tracker.Now().Format("2006-01-02")
	dir := a.exportDir

	return func() tea.Msg {
		var path string
		switch format {
		case 2:
			path = filepath.Join(dir, fmt.Sprintf("liftlog-sets-%s.csv", stamp))
			if err := export.ToCSV(payload.History, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		default:
			path = filepath.Join(dir, export.DefaultFileName(stamp, format == 1))
			if err := export.ToFile(path, payload); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}
		return exportDoneMsg{path: path}
	}
}
