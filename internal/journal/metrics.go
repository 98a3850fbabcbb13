package journal

// Metrics are the per-record derived quantities. A nil field means the
// source data was missing or unparseable. They are recomputed on every
// render rather than cached: source fields can change between renders and a
// week is at most seven records.
type Metrics struct {
	SleepHours  *float64
	WorkHours   *float64
	AvgEfficacy *float64
}

// ComputeMetrics derives all metrics for one record.
func ComputeMetrics(r Record) Metrics {
	return Metrics{
		SleepHours:  SleepHours(r),
		WorkHours:   WorkHours(r),
		AvgEfficacy: AvgEfficacy(r),
	}
}

// SleepHours parses the recorded sleep duration, nil when absent.
func SleepHours(r Record) *float64 {
	if h, ok := ParseDuration(r.Sleep.Duration); ok {
		return &h
	}
	return nil
}

// WorkHours sums the morning span (start to lunch break) and, when the
// afternoon was worked, the afternoon span (resume to end). Spans whose
// bounds are missing or out of order contribute zero. A zero total reports
// nil: "no data" and "worked 0h" are conflated on purpose, matching how the
// journal has always recorded it.
func WorkHours(r Record) *float64 {
	var total float64

	start, okStart := ParseTimeOfDay(r.Work.Start)
	lunch, okLunch := ParseTimeOfDay(r.Work.LunchBreakStart)
	if okStart && okLunch && lunch > start {
		total += lunch - start
	}

	if r.Work.WorkedAfternoon {
		resume, okResume := ParseTimeOfDay(r.Work.AfternoonResume)
		end, okEnd := ParseTimeOfDay(r.Work.End)
		if okResume && okEnd && end > resume {
			total += end - resume
		}
	}

	if total == 0 {
		return nil
	}
	return &total
}

// AvgEfficacy is the arithmetic mean of the dose efficacies that were
// recorded, nil when none were.
func AvgEfficacy(r Record) *float64 {
	var sum, n float64
	for _, d := range r.Doses {
		if d.Efficacy != nil {
			sum += float64(*d.Efficacy)
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / n
	return &avg
}
