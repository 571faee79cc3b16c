package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/liftlog/internal/records"
	"github.com/sadopc/liftlog/internal/store"
	"github.com/sadopc/liftlog/internal/tracker"
)

type recordsModel struct {
	tracker *tracker.Tracker
	store   *store.Store
	width   int
	height  int

	records []records.Record
	cursor  int
}

func newRecordsModel(tr *tracker.Tracker, s *store.Store) recordsModel {
	return recordsModel{tracker: tr, store: s}
}

func (r *recordsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type recordsDataMsg struct {
	records []records.Record
}

func (r recordsModel) refresh() tea.Cmd {
	msg := recordsDataMsg{records: r.tracker.Records()}
	return func() tea.Msg { return msg }
}

func (r recordsModel) update(msg tea.Msg) (recordsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsDataMsg:
		r.records = msg.records
		if r.cursor >= len(r.records) {
			r.cursor = max(0, len(r.records)-1)
		}
		return r, nil

	case workoutChangedMsg:
		return r, r.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if r.cursor > 0 {
				r.cursor--
			}
		case key.Matches(msg, keys.Down):
			if r.cursor < len(r.records)-1 {
				r.cursor++
			}
		}
	}
	return r, nil
}

func (r recordsModel) view() string {
	w := r.width - 4
	title := titleStyle.Render("Personal Records")

	if len(r.records) == 0 {
		return panelStyle.Width(w).Render(title + "\n\n" + mutedStyle.Render("No records yet. Finish a workout first."))
	}

	unit := r.store.WeightUnit()
	rows := []string{title, ""}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-32s %-22s %-11s %s", "Exercise", "Best", "Kind", "Date")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 80))))

	// keep the cursor on screen
	visible := max(1, r.height-10)
	start := 0
	if r.cursor >= visible {
		start = r.cursor - visible + 1
	}
	end := min(len(r.records), start+visible)

	for i := start; i < end; i++ {
		rec := r.records[i]
		cursor := "  "
		style := normalItemStyle
		if i == r.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-32s %-22s %-11s %s",
			cursor, rec.Exercise, rec.Format(unit), rec.Policy, rec.Date.Local().Format("Jan 2, 2006"),
		)))
	}
	if end < len(r.records) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(r.records)-end)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
