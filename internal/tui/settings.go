package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"

	"github.com/sadopc/liftlog/internal/store"
)

var settingLabels = map[string]string{
	store.SettingBarWeight:  "Empty bar weight",
	store.SettingWeightUnit: "Weight unit",
	store.SettingChime:      "Rest chime",
}

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	barWeight *string
	unit      *string
	chime     *string
}

func newSettingsModel(s *store.Store) settingsModel {
	bw, u, c := "", "", ""
	return settingsModel{
		store:     s,
		barWeight: &bw,
		unit:      &u,
		chime:     &c,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.barWeight = strconv.FormatFloat(s.store.BarWeight(), 'f', -1, 64)
	*s.unit = s.store.WeightUnit()
	*s.chime = s.store.SettingOr(store.SettingChime, "on")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Empty bar weight").Value(s.barWeight).Validate(validateBarWeight),
			huh.NewSelect[string]().Title("Weight unit").
				Options(
					huh.NewOption("Pounds (lb)", "lb"),
					huh.NewOption("Kilograms (kg)", "kg"),
				).Value(s.unit),
		).Title("Plates"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Chime when rest ends").
				Options(
					huh.NewOption("On", "on"),
					huh.NewOption("Off", "off"),
				).Value(s.chime),
		).Title("Rest timer"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func validateBarWeight(v string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		return fmt.Errorf("enter a weight like 45 or 20")
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, tea.Batch(errorCmd(err), s.refresh())
		}
		return s, tea.Batch(statusCmd("Settings saved"), s.refresh())
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	return multierr.Combine(
		s.store.SetSetting(store.SettingBarWeight, strings.TrimSpace(*s.barWeight)),
		s.store.SetSetting(store.SettingWeightUnit, *s.unit),
		s.store.SetSetting(store.SettingChime, *s.chime),
	)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(settingLabel(setting.Key))
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value, s.store.WeightUnit()))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingLabel(k string) string {
	if l, ok := settingLabels[k]; ok {
		return l
	}
	return k
}

func formatSettingValue(k, v, unit string) string {
	switch k {
	case store.SettingBarWeight:
		return v + " " + unit
	case store.SettingChime:
		if v == "off" {
			return "off"
		}
		return "on (three bells)"
	}
	return v
}
