package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/aberthier/semainier/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	hourMin   int
	hourMax   int
	exportDir string

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	fHourMin   *string
	fHourMax   *string
	fExportDir *string
}

func newSettingsModel(s *store.Store) settingsModel {
	hmin, hmax, dir := "", "", ""
	return settingsModel{
		store:      s,
		fHourMin:   &hmin,
		fHourMax:   &hmax,
		fExportDir: &dir,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		hmin, hmax := m.store.HourRange()
		dir, _ := m.store.GetSetting("export_dir")
		return settingsDataMsg{hourMin: hmin, hourMax: hmax, exportDir: dir}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.hourMin = msg.hourMin
		m.hourMax = msg.hourMax
		m.exportDir = msg.exportDir
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.fHourMin = strconv.Itoa(m.hourMin)
	*m.fHourMax = strconv.Itoa(m.hourMax)
	*m.fExportDir = m.exportDir

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Chart first hour (0-23)").Value(m.fHourMin).
				Validate(validateHour),
			huh.NewInput().Title("Chart last hour (1-24)").Value(m.fHourMax).
				Validate(validateHour),
			huh.NewInput().Title("Export directory (blank = home)").Value(m.fExportDir),
		).Title("Settings"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func validateHour(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if v < 0 || v > 24 {
		return fmt.Errorf("must be between 0 and 24")
	}
	return nil
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.saveSettings()
		return m, m.refresh()
	}

	return m, cmd
}

func (m settingsModel) saveSettings() {
	m.store.SetSetting("hour_min", strings.TrimSpace(*m.fHourMin))
	m.store.SetSetting("hour_max", strings.TrimSpace(*m.fHourMax))
	m.store.SetSetting("export_dir", strings.TrimSpace(*m.fExportDir))
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	dir := m.exportDir
	if dir == "" {
		dir = "~ (home)"
	}

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %-24s %s", "Chart hour range", highlightStyle.Render(fmt.Sprintf("%02d:00 — %02d:00", m.hourMin, m.hourMax))),
		fmt.Sprintf("  %-24s %s", "Export directory", highlightStyle.Render(dir)),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
