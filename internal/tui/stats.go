package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aberthier/semainier/internal/journal"
	"github.com/aberthier/semainier/internal/stats"
	"github.com/aberthier/semainier/internal/store"
)

// correlationPairs are the relationships worth watching: does sleep or
// workload move perceived efficacy and day difficulty.
var correlationPairs = [][2]stats.Metric{
	{stats.MetricSleepHours, stats.MetricAvgEfficacy},
	{stats.MetricSleepHours, stats.MetricDifficulty},
	{stats.MetricWorkHours, stats.MetricDifficulty},
	{stats.MetricPatients, stats.MetricDifficulty},
}

var metricStyles = map[stats.Metric]lipgloss.Style{
	stats.MetricSleepHours:  highlightStyle,
	stats.MetricWorkHours:   workStyle,
	stats.MetricAvgEfficacy: doseStyle,
	stats.MetricDifficulty:  warningStyle,
	stats.MetricPatients:    successStyle,
}

type statsModel struct {
	store  *store.Store
	width  int
	height int

	records []journal.Record
	metric  int // index into stats.Metrics

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		records, _ := m.store.ListRecords()
		return statsDataMsg{records: records}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.records = msg.records
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.metric = (m.metric + len(stats.Metrics) - 1) % len(stats.Metrics)
			m.buildChart()
			return m, nil
		case key.Matches(msg, keys.Right), key.Matches(msg, keys.Enter):
			m.metric = (m.metric + 1) % len(stats.Metrics)
			m.buildChart()
			return m, nil
		}
	}
	return m, nil
}

// chartDays caps the bar count so labels stay readable.
const chartDays = 14

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	metric := stats.Metrics[m.metric]
	points := stats.Series(m.records, metric)
	if len(points) > chartDays {
		points = points[len(points)-chartDays:]
	}

	style, ok := metricStyles[metric]
	if !ok {
		style = highlightStyle
	}

	var bars []barchart.BarData
	for _, p := range points {
		label := p.Date
		if d, err := time.Parse(journal.DateKey, p.Date); err == nil {
			label = d.Format("02/01")
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: string(metric), Value: p.Value, Style: style},
			},
		})
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	// Metric tabs
	var tabs []string
	for i, metric := range stats.Metrics {
		if i == m.metric {
			tabs = append(tabs, activeTabStyle.Render(string(metric)))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(string(metric)))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ",
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
	)

	if len(m.records) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", mutedStyle.Render("No data yet."),
		))
	}

	chartView := m.chart.View()
	corr := m.renderCorrelations()
	nav := mutedStyle.Render("  ←/→: switch metric")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", chartView, "", corr, "", nav),
	)
}

func (m statsModel) renderCorrelations() string {
	var rows []string
	rows = append(rows, mutedStyle.Render("  Correlations"))

	for _, pair := range correlationPairs {
		xs, ys := stats.Paired(m.records, pair[0], pair[1])
		label := fmt.Sprintf("  %-12s vs %-12s", pair[0], pair[1])

		r, ok := stats.Pearson(xs, ys)
		if !ok {
			rows = append(rows, label+mutedStyle.Render("  not enough data"))
			continue
		}

		line := fmt.Sprintf("%s  r=%+.2f (n=%d)", label, r, len(xs))
		if slope, intercept, ok := stats.LinearFit(xs, ys); ok {
			line += mutedStyle.Render(fmt.Sprintf("  fit y=%.2fx%+.2f", slope, intercept))
		}
		rows = append(rows, line)
	}

	return strings.Join(rows, "\n")
}
