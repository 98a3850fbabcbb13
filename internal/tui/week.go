package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aberthier/semainier/internal/journal"
	"github.com/aberthier/semainier/internal/store"
	"github.com/aberthier/semainier/internal/svg"
	"github.com/aberthier/semainier/internal/weekview"
)

// weekModel shows a textual digest of one week and exports the full
// chart as SVG.
type weekModel struct {
	store  *store.Store
	style  svg.Style
	width  int
	height int

	pivot   time.Time
	records []journal.Record
}

func newWeekModel(s *store.Store, style svg.Style) weekModel {
	return weekModel{
		store: s,
		style: style,
		pivot: journal.Day(time.Now()),
	}
}

func (m *weekModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m weekModel) refresh() tea.Cmd {
	monday := weekview.Monday(m.pivot)
	return func() tea.Msg {
		records, _ := m.store.ListWeek(monday)
		return weekDataMsg{records: records}
	}
}

func (m weekModel) update(msg tea.Msg) (weekModel, tea.Cmd) {
	switch msg := msg.(type) {
	case weekDataMsg:
		m.records = msg.records
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.pivot = m.pivot.AddDate(0, 0, -7)
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.pivot = m.pivot.AddDate(0, 0, 7)
			return m, m.refresh()
		case key.Matches(msg, keys.Today):
			m.pivot = journal.Day(time.Now())
			return m, m.refresh()
		case key.Matches(msg, keys.Export):
			return m, m.exportSVG()
		}
	}
	return m, nil
}

func (m weekModel) scene() weekview.Scene {
	hmin, hmax := m.store.HourRange()
	cfg := weekview.Config{HourMin: hmin, HourMax: hmax}
	return weekview.RenderWeek(m.records, m.pivot, cfg)
}

func (m weekModel) exportSVG() tea.Cmd {
	scene := m.scene()
	style := m.style
	dir, _ := m.store.GetSetting("export_dir")
	monday := weekview.Monday(m.pivot)

	return func() tea.Msg {
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			dir = home
		}
		path := filepath.Join(dir, fmt.Sprintf("semainier-week-%s.svg", monday.Format(journal.DateKey)))

		f, err := os.Create(path)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		defer f.Close()

		if err := svg.Write(f, scene, style); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (m weekModel) view() string {
	w := m.width - 4
	scene := m.scene()
	title := titleStyle.Render(scene.Title)

	byDate := make(map[string]journal.Record, len(m.records))
	for _, r := range m.records {
		byDate[r.Date.Format(journal.DateKey)] = r
	}

	var rows []string
	rows = append(rows, title, "")

	for _, day := range scene.Days {
		label := day.Date.Format("Mon 02/01")
		r, ok := byDate[day.Date.Format(journal.DateKey)]
		if !ok {
			rows = append(rows, fmt.Sprintf("  %-10s %s", label, mutedStyle.Render("—")))
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-10s %s", label, m.renderDayDigest(r)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: change week  t: this week  e: export SVG"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m weekModel) renderDayDigest(r journal.Record) string {
	met := journal.ComputeMetrics(r)
	day := weekview.ResolveDay(r, 0)

	var parts []string
	parts = append(parts, "sleep "+formatHoursPtr(met.SleepHours))

	var dosesStr []string
	for _, d := range r.Doses {
		if t, ok := journal.ParseTimeOfDay(d.Time); ok {
			label := "dose"
			if d.DoseMG > 0 {
				label = fmt.Sprintf("%d mg", d.DoseMG)
			}
			dosesStr = append(dosesStr, fmt.Sprintf("%s@%02d:%02d", label, int(t), int(t*60)%60))
		}
	}
	if len(dosesStr) > 0 {
		parts = append(parts, doseStyle.Render(strings.Join(dosesStr, " ")))
	}

	for _, iv := range day.Intervals {
		switch iv.Category {
		case weekview.CategoryWork:
			parts = append(parts, workStyle.Render(fmt.Sprintf("%s %.1f–%.1f", iv.Label, iv.Start, iv.End)))
		case weekview.CategoryExercise:
			parts = append(parts, exerciseStyle.Render(iv.Label))
		}
	}

	parts = append(parts, fmt.Sprintf("day %d/10", r.Rating.Difficulty))
	return strings.Join(parts, "  ")
}
