package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/liftlog/internal/history"
	"github.com/sadopc/liftlog/internal/rewards"
	"github.com/sadopc/liftlog/internal/tracker"
)

const recentRedemptions = 5

type shopModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	stars       history.Stars
	redemptions []history.Redemption
	cursor      int

	formActive bool
	form       *huh.Form
	confirmed  *bool
}

func newShopModel(tr *tracker.Tracker) shopModel {
	confirmed := false
	return shopModel{tracker: tr, confirmed: &confirmed}
}

func (s *shopModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type shopDataMsg struct {
	stars       history.Stars
	redemptions []history.Redemption
}

func (s shopModel) refresh() tea.Cmd {
	hs := s.tracker.History()
	msg := shopDataMsg{stars: hs.Stars(), redemptions: hs.Redemptions()}
	return func() tea.Msg { return msg }
}

func (s shopModel) update(msg tea.Msg) (shopModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case shopDataMsg:
		s.stars = msg.stars
		s.redemptions = msg.redemptions
		return s, nil

	case workoutChangedMsg:
		return s, s.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Down):
			if s.cursor < len(rewards.Catalog)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.Enter):
			r := rewards.Catalog[s.cursor]
			if !rewards.Affordable(s.stars, r) {
				return s, errorCmd(fmt.Errorf("%s costs %d points, you have %d: %w",
					r.Name, r.Cost, rewards.Points(s.stars), rewards.ErrInsufficientPoints))
			}
			return s.showConfirm(r)
		}
	}
	return s, nil
}

func (s shopModel) showConfirm(r rewards.Reward) (shopModel, tea.Cmd) {
	*s.confirmed = false
	left := rewards.FromPoints(rewards.Points(s.stars) - r.Cost)
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Buy %s for %d points?", r.Name, r.Cost)).
				Description("Afterwards you will have " + left.String() + ".").
				Affirmative("Buy").
				Negative("Cancel").
				Value(s.confirmed),
		),
	).WithShowHelp(true)
	s.formActive = true
	return s, s.form.Init()
}

func (s shopModel) updateForm(msg tea.Msg) (shopModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateAborted:
		s.formActive = false
		s.form = nil
	case huh.StateCompleted:
		s.formActive = false
		s.form = nil
		if *s.confirmed {
			return s.purchase()
		}
	default:
		return s, cmd
	}
	return s, nil
}

func (s shopModel) purchase() (shopModel, tea.Cmd) {
	r := rewards.Catalog[s.cursor]
	if _, err := s.tracker.Purchase(r.ID); err != nil {
		if errors.Is(err, rewards.ErrInsufficientPoints) {
			return s, errorCmd(fmt.Errorf("not enough points for %s", r.Name))
		}
		return s, errorCmd(err)
	}
	return s, tea.Batch(s.refresh(), changed, statusCmd("Enjoy your "+strings.ToLower(r.Name)+"!"))
}

func (s shopModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return activePanelStyle.Width(w).Render(s.form.View())
	}

	points := rewards.Points(s.stars)
	header := titleStyle.Render("Reward Shop") + "  " + starsLine(s.stars) +
		highlightStyle.Render(fmt.Sprintf("  = %d points", points))

	rows := []string{header, mutedStyle.Render("gold = 3 points, silver = 1 point"), ""}
	for i, r := range rewards.Catalog {
		cursor := "  "
		style := normalItemStyle
		if !rewards.Affordable(s.stars, r) {
			style = mutedStyle
		}
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-18s %3d pts  %s", cursor, r.Name, r.Cost, r.Description)))
	}

	rows = append(rows, "", s.renderRedemptions(), "", mutedStyle.Render("  enter: buy  ↑/↓: choose"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s shopModel) renderRedemptions() string {
	title := subtitleStyle.Render("Recent purchases")
	if len(s.redemptions) == 0 {
		return title + "\n" + mutedStyle.Render("  none yet")
	}
	rows := []string{title}
	for i := len(s.redemptions) - 1; i >= 0 && i >= len(s.redemptions)-recentRedemptions; i-- {
		red := s.redemptions[i]
		name := red.RewardID
		if r, ok := rewards.Find(red.RewardID); ok {
			name = r.Name
		}
		rows = append(rows, fmt.Sprintf("  %s  %-18s %s", mutedStyle.Render(red.At.Local().Format("Jan 2")), name, mutedStyle.Render(fmt.Sprintf("-%d pts", red.Cost))))
	}
	return strings.Join(rows, "\n")
}
