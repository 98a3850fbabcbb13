package weekview

import (
	"fmt"
	"time"

	"github.com/aberthier/semainier/internal/journal"
)

// Monday returns the Monday of the week containing d, at midnight UTC.
func Monday(d time.Time) time.Time {
	day := journal.Day(d)
	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return day.AddDate(0, 0, -int(weekday-time.Monday))
}

// WeekDays returns the seven dates of the Monday-anchored week containing d.
func WeekDays(d time.Time) [7]time.Time {
	start := Monday(d)
	var days [7]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// RenderWeek lays out the week containing pivot. Records outside the week
// are ignored; dates without a record render as an empty grid column. The
// function performs no I/O, holds no state between calls and never fails:
// malformed fields just yield a sparser column.
func RenderWeek(records []journal.Record, pivot time.Time, cfg Config) Scene {
	if cfg.HourMax <= cfg.HourMin {
		cfg = DefaultConfig()
	}

	days := WeekDays(pivot)

	byDate := make(map[string]journal.Record, len(records))
	for _, r := range records {
		byDate[r.Date.Format(journal.DateKey)] = r
	}

	s := Scene{
		Title: fmt.Sprintf("Week of %s to %s",
			days[0].Format("02/01/2006"), days[6].Format("02/01/2006")),
		HourMin: cfg.HourMin,
		HourMax: cfg.HourMax,
	}
	for i, d := range days {
		s.Days[i] = DayHeader{Date: d, Label: d.Format("Mon 02/01")}
		s.XTicks = append(s.XTicks, Tick{Pos: float64(i) + 0.5, Label: s.Days[i].Label})
	}
	for h := cfg.HourMin; h <= cfg.HourMax; h += 2 {
		s.YTicks = append(s.YTicks, Tick{Pos: float64(h), Label: fmt.Sprintf("%02d:00", h)})
	}

	appendGrid(&s, cfg)

	for i, d := range days {
		if r, ok := byDate[d.Format(journal.DateKey)]; ok {
			placeDay(&s, i, r)
		}
	}

	return s
}

// appendGrid emits the day separators and hourly lines. It runs before any
// day content so the grid sits at the back of the z-order.
func appendGrid(s *Scene, cfg Config) {
	for x := 0; x <= 7; x++ {
		s.Primitives = append(s.Primitives, Line{
			X0: float64(x), Y0: float64(cfg.HourMin),
			X1: float64(x), Y1: float64(cfg.HourMax),
			ColorKey: "grid-day",
			Width:    1,
		})
	}
	for h := cfg.HourMin; h <= cfg.HourMax; h++ {
		s.Primitives = append(s.Primitives, Line{
			X0: 0, Y0: float64(h),
			X1: 7, Y1: float64(h),
			ColorKey: "grid-hour",
			Width:    1,
		})
	}
}
