package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aberthier/semainier/internal/journal"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Records    []jsonDay `json:"records"`
}

type jsonDay struct {
	Date        string       `json:"date"`
	Bedtime     string       `json:"bedtime,omitempty"`
	SleepHours  *float64     `json:"sleep_hours,omitempty"`
	Doses       []jsonDose   `json:"doses,omitempty"`
	Work        *jsonWork    `json:"work,omitempty"`
	Exercise    *jsonSession `json:"exercise,omitempty"`
	Difficulty  int          `json:"difficulty,omitempty"`
	Comment     string       `json:"comment,omitempty"`
	AvgEfficacy *float64     `json:"avg_efficacy,omitempty"`
}

type jsonDose struct {
	Slot        string   `json:"slot"`
	Time        string   `json:"time"`
	DoseMG      int      `json:"dose_mg,omitempty"`
	Efficacy    *int     `json:"efficacy,omitempty"`
	Note        string   `json:"note,omitempty"`
	SideEffects []string `json:"side_effects,omitempty"`
}

type jsonWork struct {
	Start           string   `json:"start"`
	LunchBreakStart string   `json:"lunch_break,omitempty"`
	WorkedAfternoon bool     `json:"worked_afternoon"`
	AfternoonResume string   `json:"afternoon_resume,omitempty"`
	End             string   `json:"end,omitempty"`
	PatientsTotal   int      `json:"patients_total,omitempty"`
	PatientsNew     int      `json:"patients_new,omitempty"`
	Hours           *float64 `json:"hours,omitempty"`
}

type jsonSession struct {
	Kind     string `json:"kind"`
	Start    string `json:"start,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// ToJSON writes all records as a single document. Empty sections are
// omitted so a week of sparse entries stays readable.
func ToJSON(records []journal.Record, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
	}

	for _, r := range records {
		m := journal.ComputeMetrics(r)
		day := jsonDay{
			Date:        r.Date.Format(journal.DateKey),
			Bedtime:     r.Sleep.Bedtime,
			SleepHours:  m.SleepHours,
			Difficulty:  r.Rating.Difficulty,
			Comment:     r.Rating.Comment,
			AvgEfficacy: m.AvgEfficacy,
		}
		for _, d := range r.Doses {
			if d.Time == "" && d.DoseMG == 0 {
				continue
			}
			day.Doses = append(day.Doses, jsonDose{
				Slot:        d.Slot.String(),
				Time:        d.Time,
				DoseMG:      d.DoseMG,
				Efficacy:    d.Efficacy,
				Note:        d.Note,
				SideEffects: d.SideEffects,
			})
		}
		if r.Work.Start != "" {
			day.Work = &jsonWork{
				Start:           r.Work.Start,
				LunchBreakStart: r.Work.LunchBreakStart,
				WorkedAfternoon: r.Work.WorkedAfternoon,
				AfternoonResume: r.Work.AfternoonResume,
				End:             r.Work.End,
				PatientsTotal:   r.Work.PatientsTotal,
				PatientsNew:     r.Work.PatientsNew,
				Hours:           m.WorkHours,
			}
		}
		if r.Exercise.Done {
			day.Exercise = &jsonSession{
				Kind:     string(r.Exercise.Kind),
				Start:    r.Exercise.Start,
				Duration: r.Exercise.Duration,
			}
		}
		export.Records = append(export.Records, day)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
