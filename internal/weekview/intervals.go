package weekview

import (
	"fmt"

	"github.com/aberthier/semainier/internal/journal"
)

// Category classifies a derived time interval.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryExercise Category = "exercise"
)

// Interval is a derived time span placed on the weekly grid. It lives for
// one render only.
type Interval struct {
	Day      int // 0..6, Monday=0
	Start    float64
	End      float64
	Category Category
	Label    string
	ColorKey string
}

// DayIntervals is the resolved interval set for a single day.
// LastWorkEnd anchors the patient-count annotation; nil when no work
// interval was emitted.
type DayIntervals struct {
	Intervals   []Interval
	LastWorkEnd *float64
}

// defaultExerciseHours is used when a session's duration is missing,
// garbled or zero. The user explicitly marked the session done, so a
// visible block beats a silently dropped one.
const defaultExerciseHours = 1.0

// ResolveDay derives the visual intervals for one record. Spans whose
// bounds are missing, unparseable or out of order are dropped without
// warning; the rest of the column still renders.
func ResolveDay(r journal.Record, day int) DayIntervals {
	var out DayIntervals

	start, okStart := journal.ParseTimeOfDay(r.Work.Start)
	lunch, okLunch := journal.ParseTimeOfDay(r.Work.LunchBreakStart)
	if okStart && okLunch && lunch > start {
		out.Intervals = append(out.Intervals, Interval{
			Day:      day,
			Start:    start,
			End:      lunch,
			Category: CategoryWork,
			Label:    "Work morning",
			ColorKey: string(CategoryWork),
		})
		out.setLastWorkEnd(lunch)
	}

	if r.Work.WorkedAfternoon {
		resume, okResume := journal.ParseTimeOfDay(r.Work.AfternoonResume)
		end, okEnd := journal.ParseTimeOfDay(r.Work.End)
		if okResume && okEnd && end > resume {
			out.Intervals = append(out.Intervals, Interval{
				Day:      day,
				Start:    resume,
				End:      end,
				Category: CategoryWork,
				Label:    "Work afternoon",
				ColorKey: string(CategoryWork),
			})
			out.setLastWorkEnd(end)
		}
	}

	if r.Exercise.Done {
		if start, ok := journal.ParseTimeOfDay(r.Exercise.Start); ok {
			hours, ok := journal.ParseDuration(r.Exercise.Duration)
			label := string(r.Exercise.Kind)
			if label == "" {
				label = "exercise"
			}
			if ok && hours > 0 {
				label = fmt.Sprintf("%s %dmin", label, int(hours*60))
			} else {
				hours = defaultExerciseHours
			}
			out.Intervals = append(out.Intervals, Interval{
				Day:      day,
				Start:    start,
				End:      start + hours,
				Category: CategoryExercise,
				Label:    label,
				ColorKey: string(CategoryExercise),
			})
		}
	}

	return out
}

func (d *DayIntervals) setLastWorkEnd(end float64) {
	if d.LastWorkEnd == nil || end > *d.LastWorkEnd {
		e := end
		d.LastWorkEnd = &e
	}
}
