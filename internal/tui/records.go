package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aberthier/semainier/internal/journal"
	"github.com/aberthier/semainier/internal/store"
)

// recordsModel lists every saved day, newest first.
type recordsModel struct {
	store  *store.Store
	width  int
	height int

	records []journal.Record
	cursor  int
}

func newRecordsModel(s *store.Store) recordsModel {
	return recordsModel{store: s}
}

func (m *recordsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m recordsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		records, _ := m.store.ListRecords()
		// newest first
		for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
			records[i], records[j] = records[j], records[i]
		}
		return recordsDataMsg{records: records}
	}
}

func (m recordsModel) update(msg tea.Msg) (recordsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsDataMsg:
		m.records = msg.records
		if m.cursor >= len(m.records) {
			m.cursor = max(0, len(m.records)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(m.records) > 0 {
				date := m.records[m.cursor].Date
				return m, func() tea.Msg { return editRecordMsg{date: date} }
			}
		case key.Matches(msg, keys.Delete):
			if len(m.records) > 0 {
				date := m.records[m.cursor].Date
				return m, func() tea.Msg {
					if err := m.store.DeleteRecord(date); err != nil {
						return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
					}
					return recordDeletedMsg{date: date}
				}
			}
		}
	}
	return m, nil
}

func (m recordsModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Records")

	if len(m.records) == 0 {
		return panelStyle.Width(w).Render(strings.Join([]string{
			title,
			"",
			mutedStyle.Render("No entries yet. Press 1 to open the journal."),
		}, "\n"))
	}

	var rows []string
	rows = append(rows, title, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-16s %8s %8s %9s %6s", "Date", "Sleep", "Work", "Efficacy", "Day"))
	rows = append(rows, header)

	visible := m.records
	maxRows := max(3, m.height-9)
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	if start+maxRows < len(visible) {
		visible = visible[start : start+maxRows]
	} else {
		visible = visible[start:]
	}

	for i, r := range visible {
		idx := start + i
		met := journal.ComputeMetrics(r)
		cursor := "  "
		style := normalItemStyle
		if idx == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := fmt.Sprintf("%s%-14s %8s %8s %9s %4d/10",
			cursor,
			r.Date.Format("Mon 02/01/06"),
			formatHoursPtr(met.SleepHours),
			formatHoursPtr(met.WorkHours),
			formatEfficacyPtr(met.AvgEfficacy),
			r.Rating.Difficulty,
		)
		rows = append(rows, style.Render(row))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
