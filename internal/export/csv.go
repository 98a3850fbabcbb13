package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aberthier/semainier/internal/journal"
)

var csvHeader = []string{
	"date", "bedtime", "sleep_duration",
	"dose_morning_time", "dose_morning_mg", "efficacy_morning", "note_morning", "effects_morning",
	"dose_midday_time", "dose_midday_mg", "efficacy_midday", "note_midday", "effects_midday",
	"dose_afternoon_time", "dose_afternoon_mg", "efficacy_afternoon", "note_afternoon", "effects_afternoon",
	"work_start", "lunch_break", "worked_afternoon", "afternoon_resume", "work_end",
	"patients_total", "patients_new",
	"exercise_done", "exercise_kind", "exercise_start", "exercise_duration",
	"difficulty", "comment",
	"sleep_hours", "work_hours", "avg_efficacy",
}

// ToCSV writes one row per record, in date order, with derived metrics in
// the trailing columns. Optional metrics are left empty when absent.
func ToCSV(records []journal.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		m := journal.ComputeMetrics(r)
		row := []string{
			r.Date.Format(journal.DateKey), r.Sleep.Bedtime, r.Sleep.Duration,
		}
		for _, d := range r.Doses {
			row = append(row,
				d.Time,
				strconv.Itoa(d.DoseMG),
				formatIntPtr(d.Efficacy),
				d.Note,
				strings.Join(d.SideEffects, ";"),
			)
		}
		row = append(row,
			r.Work.Start, r.Work.LunchBreakStart, formatBool(r.Work.WorkedAfternoon),
			r.Work.AfternoonResume, r.Work.End,
			strconv.Itoa(r.Work.PatientsTotal), strconv.Itoa(r.Work.PatientsNew),
			formatBool(r.Exercise.Done), string(r.Exercise.Kind),
			r.Exercise.Start, r.Exercise.Duration,
			strconv.Itoa(r.Rating.Difficulty), r.Rating.Comment,
			formatFloatPtr(m.SleepHours), formatFloatPtr(m.WorkHours), formatFloatPtr(m.AvgEfficacy),
		)
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
