package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/aberthier/semainier/internal/journal"
	"github.com/aberthier/semainier/internal/store"
)

var slotTitles = []string{"Morning dose", "Midday dose", "Afternoon dose"}

// journalModel is the daily entry form. It edits one record at a time,
// keyed by date, and upserts on submit.
type journalModel struct {
	store  *store.Store
	width  int
	height int

	date       time.Time
	current    *journal.Record
	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	fDate     *string
	fBedtime  *string
	fSleepDur *string

	fDoseTime [3]*string
	fDoseMG   [3]*string
	fEfficacy [3]*string
	fNote     [3]*string
	fEffects  [3]*string

	fWorkStart   *string
	fLunchBreak  *string
	fWorkedPM    *bool
	fResume      *string
	fWorkEnd     *string
	fPatients    *string
	fPatientsNew *string

	fExerciseDone  *bool
	fExerciseKind  *string
	fExerciseStart *string
	fExerciseDur   *string

	fDifficulty *string
	fComment    *string
}

func newJournalModel(s *store.Store) journalModel {
	m := journalModel{
		store: s,
		date:  journal.Day(time.Now()),
	}
	m.fDate = new(string)
	m.fBedtime = new(string)
	m.fSleepDur = new(string)
	for i := 0; i < 3; i++ {
		m.fDoseTime[i] = new(string)
		m.fDoseMG[i] = new(string)
		m.fEfficacy[i] = new(string)
		m.fNote[i] = new(string)
		m.fEffects[i] = new(string)
	}
	m.fWorkStart = new(string)
	m.fLunchBreak = new(string)
	m.fWorkedPM = new(bool)
	m.fResume = new(string)
	m.fWorkEnd = new(string)
	m.fPatients = new(string)
	m.fPatientsNew = new(string)
	m.fExerciseDone = new(bool)
	m.fExerciseKind = new(string)
	m.fExerciseStart = new(string)
	m.fExerciseDur = new(string)
	m.fDifficulty = new(string)
	m.fComment = new(string)
	return m
}

func (m *journalModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type journalDataMsg struct {
	record *journal.Record
}

func (m journalModel) refresh() tea.Cmd {
	date := m.date
	return func() tea.Msg {
		r, _ := m.store.GetRecord(date)
		return journalDataMsg{record: r}
	}
}

func (m journalModel) update(msg tea.Msg) (journalModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case journalDataMsg:
		m.current = msg.record
		return m, nil

	case editRecordMsg:
		m.date = journal.Day(msg.date)
		r, _ := m.store.GetRecord(m.date)
		m.current = r
		return m.showForm()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
			return m.showForm()
		case key.Matches(msg, keys.Left):
			m.date = m.date.AddDate(0, 0, -1)
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.date = m.date.AddDate(0, 0, 1)
			return m, m.refresh()
		case key.Matches(msg, keys.Today):
			m.date = journal.Day(time.Now())
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m journalModel) showForm() (journalModel, tea.Cmd) {
	r := journal.NewRecord(m.date)
	if m.current != nil && m.current.Date.Equal(m.date) {
		r = *m.current
	}
	m.loadFormValues(r)

	kindOptions := make([]huh.Option[string], len(journal.ExerciseKinds))
	for i, k := range journal.ExerciseKinds {
		kindOptions[i] = huh.NewOption(string(k), string(k))
	}

	doseGroups := make([]*huh.Group, 3)
	for i := 0; i < 3; i++ {
		doseGroups[i] = huh.NewGroup(
			huh.NewInput().Title("Time (HH:MM)").Value(m.fDoseTime[i]),
			huh.NewInput().Title("Dose (mg)").Value(m.fDoseMG[i]),
			huh.NewInput().Title("Efficacy (0-10, blank = not rated)").Value(m.fEfficacy[i]),
			huh.NewInput().Title("Note").Value(m.fNote[i]),
			huh.NewInput().Title("Side effects (separated by ;)").Value(m.fEffects[i]),
		).Title(slotTitles[i])
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(m.fDate),
			huh.NewInput().Title("Bedtime (HH:MM)").Value(m.fBedtime),
			huh.NewInput().Title("Sleep duration (e.g. 7h30)").Value(m.fSleepDur),
		).Title("Sleep"),
	}
	groups = append(groups, doseGroups...)
	groups = append(groups,
		huh.NewGroup(
			huh.NewInput().Title("Start (HH:MM)").Value(m.fWorkStart),
			huh.NewInput().Title("Lunch break (HH:MM)").Value(m.fLunchBreak),
			huh.NewConfirm().Title("Worked in the afternoon?").Value(m.fWorkedPM),
			huh.NewInput().Title("Afternoon resume (HH:MM)").Value(m.fResume),
			huh.NewInput().Title("End (HH:MM)").Value(m.fWorkEnd),
			huh.NewInput().Title("Patients seen").Value(m.fPatients),
			huh.NewInput().Title("New patients").Value(m.fPatientsNew),
		).Title("Work"),
		huh.NewGroup(
			huh.NewConfirm().Title("Exercised today?").Value(m.fExerciseDone),
			huh.NewSelect[string]().Title("Activity").Options(kindOptions...).Value(m.fExerciseKind),
			huh.NewInput().Title("Start (HH:MM)").Value(m.fExerciseStart),
			huh.NewInput().Title("Duration (e.g. 45min or 1h)").Value(m.fExerciseDur),
		).Title("Exercise"),
		huh.NewGroup(
			huh.NewInput().Title("Day difficulty (0-10)").Value(m.fDifficulty),
			huh.NewInput().Title("Comment").Value(m.fComment),
		).Title("Wellbeing"),
	)

	m.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m journalModel) loadFormValues(r journal.Record) {
	*m.fDate = r.Date.Format(journal.DateKey)
	*m.fBedtime = r.Sleep.Bedtime
	*m.fSleepDur = r.Sleep.Duration
	for i, d := range r.Doses {
		*m.fDoseTime[i] = d.Time
		*m.fDoseMG[i] = formatInt(d.DoseMG)
		*m.fEfficacy[i] = ""
		if d.Efficacy != nil {
			*m.fEfficacy[i] = strconv.Itoa(*d.Efficacy)
		}
		*m.fNote[i] = d.Note
		*m.fEffects[i] = strings.Join(d.SideEffects, ";")
	}
	*m.fWorkStart = r.Work.Start
	*m.fLunchBreak = r.Work.LunchBreakStart
	*m.fWorkedPM = r.Work.WorkedAfternoon
	*m.fResume = r.Work.AfternoonResume
	*m.fWorkEnd = r.Work.End
	*m.fPatients = formatInt(r.Work.PatientsTotal)
	*m.fPatientsNew = formatInt(r.Work.PatientsNew)
	*m.fExerciseDone = r.Exercise.Done
	*m.fExerciseKind = string(r.Exercise.Kind)
	if *m.fExerciseKind == "" {
		*m.fExerciseKind = string(journal.ExerciseKinds[0])
	}
	*m.fExerciseStart = r.Exercise.Start
	*m.fExerciseDur = r.Exercise.Duration
	*m.fDifficulty = formatInt(r.Rating.Difficulty)
	*m.fComment = r.Rating.Comment
}

func (m journalModel) collectRecord() journal.Record {
	date := m.date
	if d, err := time.Parse(journal.DateKey, strings.TrimSpace(*m.fDate)); err == nil {
		date = d
	}
	r := journal.NewRecord(date)
	r.Sleep = journal.Sleep{Bedtime: *m.fBedtime, Duration: *m.fSleepDur}
	for i := range r.Doses {
		r.Doses[i].Time = strings.TrimSpace(*m.fDoseTime[i])
		r.Doses[i].DoseMG = parseInt(*m.fDoseMG[i])
		if v, err := strconv.Atoi(strings.TrimSpace(*m.fEfficacy[i])); err == nil {
			r.Doses[i].Efficacy = &v
		}
		r.Doses[i].Note = *m.fNote[i]
		r.Doses[i].SideEffects = splitEffects(*m.fEffects[i])
	}
	r.Work = journal.Work{
		Start:           strings.TrimSpace(*m.fWorkStart),
		LunchBreakStart: strings.TrimSpace(*m.fLunchBreak),
		WorkedAfternoon: *m.fWorkedPM,
		AfternoonResume: strings.TrimSpace(*m.fResume),
		End:             strings.TrimSpace(*m.fWorkEnd),
		PatientsTotal:   parseInt(*m.fPatients),
		PatientsNew:     parseInt(*m.fPatientsNew),
	}
	r.Exercise = journal.Exercise{
		Done:     *m.fExerciseDone,
		Kind:     journal.ExerciseKind(*m.fExerciseKind),
		Start:    strings.TrimSpace(*m.fExerciseStart),
		Duration: strings.TrimSpace(*m.fExerciseDur),
	}
	r.Rating = journal.Rating{Difficulty: parseInt(*m.fDifficulty), Comment: *m.fComment}
	return r
}

func (m journalModel) updateForm(msg tea.Msg) (journalModel, tea.Cmd) {
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
		r := m.collectRecord()
		m.date = r.Date
		return m, func() tea.Msg {
			if err := m.store.UpsertRecord(r); err != nil {
				return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
			}
			return recordSavedMsg{date: r.Date}
		}
	}

	return m, cmd
}

func (m journalModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Entry for " + m.date.Format("Mon 02/01/2006"))
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Journal — " + m.date.Format("Mon 02/01/2006"))
	var rows []string
	rows = append(rows, title, "")

	if m.current == nil {
		rows = append(rows, mutedStyle.Render("No entry for this day yet."))
	} else {
		rows = append(rows, m.renderSummary()...)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  ←/→: change day  t: today"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m journalModel) renderSummary() []string {
	r := *m.current
	met := journal.ComputeMetrics(r)
	var rows []string

	rows = append(rows, fmt.Sprintf("  Sleep      %s (bed %s)",
		highlightStyle.Render(formatHoursPtr(met.SleepHours)), valueOr(r.Sleep.Bedtime, "n/d")))

	for _, d := range r.Doses {
		if d.Time == "" && d.DoseMG == 0 {
			continue
		}
		label := "dose"
		if d.DoseMG > 0 {
			label = fmt.Sprintf("%d mg", d.DoseMG)
		}
		eff := ""
		if d.Efficacy != nil {
			eff = fmt.Sprintf("  eff %d/10", *d.Efficacy)
		}
		rows = append(rows, fmt.Sprintf("  %-10s %s at %s%s",
			capitalize(d.Slot.String()), doseStyle.Render(label), valueOr(d.Time, "?"), eff))
	}

	if r.Work.Start != "" {
		rows = append(rows, fmt.Sprintf("  Work       %s  (%d patients, %d new)",
			workStyle.Render(formatHoursPtr(met.WorkHours)), r.Work.PatientsTotal, r.Work.PatientsNew))
	}
	if r.Exercise.Done {
		rows = append(rows, fmt.Sprintf("  Exercise   %s %s",
			exerciseStyle.Render(string(r.Exercise.Kind)), valueOr(r.Exercise.Duration, "")))
	}
	rows = append(rows, fmt.Sprintf("  Difficulty %d/10", r.Rating.Difficulty))
	if r.Rating.Comment != "" {
		rows = append(rows, "  "+mutedStyle.Render(r.Rating.Comment))
	}
	return rows
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func splitEffects(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
