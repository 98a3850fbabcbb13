package weekview

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aberthier/semainier/internal/journal"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ============================================================
// Interval resolver
// ============================================================

func TestResolveDayWorkMorning(t *testing.T) {
	r := journal.NewRecord(time.Now())
	r.Work.Start = "09:00"
	r.Work.LunchBreakStart = "12:30"

	got := ResolveDay(r, 2)
	if len(got.Intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(got.Intervals))
	}
	iv := got.Intervals[0]
	if iv.Day != 2 || iv.Category != CategoryWork {
		t.Fatalf("unexpected interval: %+v", iv)
	}
	if !almostEqual(iv.Start, 9.0) || !almostEqual(iv.End, 12.5) {
		t.Fatalf("unexpected span: [%v,%v]", iv.Start, iv.End)
	}
	if got.LastWorkEnd == nil || !almostEqual(*got.LastWorkEnd, 12.5) {
		t.Fatalf("LastWorkEnd = %v, want 12.5", got.LastWorkEnd)
	}
}

func TestResolveDayFullWorkDay(t *testing.T) {
	r := journal.NewRecord(time.Now())
	r.Work.Start = "09:00"
	r.Work.LunchBreakStart = "12:30"
	r.Work.WorkedAfternoon = true
	r.Work.AfternoonResume = "14:00"
	r.Work.End = "18:30"

	got := ResolveDay(r, 0)
	if len(got.Intervals) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(got.Intervals))
	}
	if got.LastWorkEnd == nil || !almostEqual(*got.LastWorkEnd, 18.5) {
		t.Fatalf("LastWorkEnd = %v, want 18.5", got.LastWorkEnd)
	}
}

func TestResolveDayInvertedSpansDropped(t *testing.T) {
	r := journal.NewRecord(time.Now())
	r.Work.Start = "13:00"
	r.Work.LunchBreakStart = "09:00"
	r.Work.WorkedAfternoon = true
	r.Work.AfternoonResume = "18:00"
	r.Work.End = "14:00"

	got := ResolveDay(r, 0)
	if len(got.Intervals) != 0 {
		t.Fatalf("expected no intervals, got %+v", got.Intervals)
	}
	if got.LastWorkEnd != nil {
		t.Fatal("LastWorkEnd should be nil with no work intervals")
	}
}

func TestResolveDayAfternoonRequiresFlag(t *testing.T) {
	r := journal.NewRecord(time.Now())
	r.Work.WorkedAfternoon = false
	r.Work.AfternoonResume = "14:00"
	r.Work.End = "18:00"

	if got := ResolveDay(r, 0); len(got.Intervals) != 0 {
		t.Fatalf("afternoon interval emitted without flag: %+v", got.Intervals)
	}
}

func TestResolveDayExercise(t *testing.T) {
	r := journal.NewRecord(time.Now())
	r.Exercise.Done = true
	r.Exercise.Kind = journal.ExerciseRunning
	r.Exercise.Start = "19:00"
	r.Exercise.Duration = "1h15"

	got := ResolveDay(r, 4)
	if len(got.Intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(got.Intervals))
	}
	iv := got.Intervals[0]
	if iv.Category != CategoryExercise {
		t.Fatalf("unexpected category %q", iv.Category)
	}
	if !almostEqual(iv.Start, 19.0) || !almostEqual(iv.End, 20.25) {
		t.Fatalf("unexpected span: [%v,%v]", iv.Start, iv.End)
	}
	if iv.Label != "running 75min" {
		t.Fatalf("unexpected label %q", iv.Label)
	}
}

func TestResolveDayExerciseDefaultDuration(t *testing.T) {
	r := journal.NewRecord(time.Now())
	r.Exercise.Done = true
	r.Exercise.Kind = journal.ExerciseSwimming
	r.Exercise.Start = "18:00"
	r.Exercise.Duration = "whenever" // unparseable -> 1h default

	got := ResolveDay(r, 0)
	if len(got.Intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(got.Intervals))
	}
	iv := got.Intervals[0]
	if !almostEqual(iv.End-iv.Start, 1.0) {
		t.Fatalf("expected 1h default duration, got %v", iv.End-iv.Start)
	}
	if iv.Label != "swimming" {
		t.Fatalf("unexpected label %q", iv.Label)
	}
}

func TestResolveDayExerciseNeedsStartTime(t *testing.T) {
	r := journal.NewRecord(time.Now())
	r.Exercise.Done = true
	r.Exercise.Duration = "1h"

	if got := ResolveDay(r, 0); len(got.Intervals) != 0 {
		t.Fatalf("exercise emitted without start time: %+v", got.Intervals)
	}
}

func TestResolveDayNeverEmitsEmptySpan(t *testing.T) {
	starts := []string{"", "09:00", "13:00", "garbage"}
	lunches := []string{"", "09:00", "12:30", "08:00"}
	for _, st := range starts {
		for _, lu := range lunches {
			r := journal.NewRecord(time.Now())
			r.Work.Start = st
			r.Work.LunchBreakStart = lu
			r.Exercise.Done = true
			r.Exercise.Start = st
			r.Exercise.Duration = "0min"
			for _, iv := range ResolveDay(r, 0).Intervals {
				if iv.End <= iv.Start {
					t.Fatalf("empty span emitted for start=%q lunch=%q: %+v", st, lu, iv)
				}
			}
		}
	}
}

// ============================================================
// Layout engine
// ============================================================

func scenePrimitives[T Primitive](s Scene) []T {
	var out []T
	for _, p := range s.Primitives {
		if v, ok := p.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// wednesday returns a record on the Wednesday of a fixed reference week.
func wednesday() journal.Record {
	return journal.NewRecord(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)) // a Wednesday
}

func TestRenderWeekEndToEnd(t *testing.T) {
	r := wednesday()
	r.Work.Start = "09:00"
	r.Work.LunchBreakStart = "12:30"
	r.Work.WorkedAfternoon = false
	r.Doses[0].Time = "08:00"
	r.Doses[0].DoseMG = 20

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())

	rects := scenePrimitives[FilledRect](s)
	if len(rects) != 1 {
		t.Fatalf("expected exactly 1 interval rect, got %d", len(rects))
	}
	rect := rects[0]
	if !almostEqual(rect.Y0, 9.0) || !almostEqual(rect.Y1, 12.5) {
		t.Fatalf("work rect spans [%v,%v], want [9,12.5]", rect.Y0, rect.Y1)
	}
	if !almostEqual(rect.X0, 2.08) || !almostEqual(rect.X1, 2.92) {
		t.Fatalf("work rect in wrong column: [%v,%v]", rect.X0, rect.X1)
	}

	tags := scenePrimitives[PointTag](s)
	if len(tags) != 1 {
		t.Fatalf("expected exactly 1 dose tag, got %d", len(tags))
	}
	tag := tags[0]
	if !almostEqual(tag.Hour, 8.0) {
		t.Fatalf("dose tag at hour %v, want 8.0", tag.Hour)
	}
	if tag.Label != "20 mg" {
		t.Fatalf("dose tag label %q, want \"20 mg\"", tag.Label)
	}
	if tag.X0 < 2 || tag.X1 > 3 {
		t.Fatalf("dose tag out of column 2: [%v,%v]", tag.X0, tag.X1)
	}
}

func TestRenderWeekIdempotent(t *testing.T) {
	r := wednesday()
	r.Work.Start = "09:00"
	r.Work.LunchBreakStart = "12:30"
	r.Sleep.Duration = "7h45"
	r.Doses[0].Time = "08:00"
	r.Doses[0].DoseMG = 20
	r.Doses[0].Note = "focused"

	a := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	b := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two renders of identical input differ")
	}
}

func TestRenderWeekHeaders(t *testing.T) {
	// Any pivot day of the week yields the same Monday..Sunday columns.
	for offset := 0; offset < 7; offset++ {
		pivot := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		s := RenderWeek(nil, pivot, DefaultConfig())
		if s.Days[0].Date.Weekday() != time.Monday {
			t.Fatalf("pivot %v: first column is %v", pivot, s.Days[0].Date.Weekday())
		}
		if s.Days[6].Date.Weekday() != time.Sunday {
			t.Fatalf("pivot %v: last column is %v", pivot, s.Days[6].Date.Weekday())
		}
		if s.Days[0].Date.Format(journal.DateKey) != "2025-03-10" {
			t.Fatalf("pivot %v: week starts %v", pivot, s.Days[0].Date)
		}
		if s.Days[0].Label != "Mon 10/03" {
			t.Fatalf("unexpected header label %q", s.Days[0].Label)
		}
	}
}

func TestRenderWeekEmptyStillHasGrid(t *testing.T) {
	s := RenderWeek(nil, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), DefaultConfig())
	lines := scenePrimitives[Line](s)
	// 8 day separators + 19 hour lines for the 6..24 range.
	if len(lines) != 8+19 {
		t.Fatalf("expected 27 grid lines, got %d", len(lines))
	}
	if len(scenePrimitives[FilledRect](s)) != 0 || len(scenePrimitives[TextBox](s)) != 0 {
		t.Fatal("empty week should carry grid only")
	}
}

func TestRenderWeekIgnoresOutOfWeekRecords(t *testing.T) {
	inWeek := wednesday()
	inWeek.Work.Start = "09:00"
	inWeek.Work.LunchBreakStart = "12:00"

	outOfWeek := journal.NewRecord(inWeek.Date.AddDate(0, 0, 14))
	outOfWeek.Work.Start = "09:00"
	outOfWeek.Work.LunchBreakStart = "12:00"

	s := RenderWeek([]journal.Record{inWeek, outOfWeek}, inWeek.Date, DefaultConfig())
	if got := len(scenePrimitives[FilledRect](s)); got != 1 {
		t.Fatalf("expected 1 rect from the in-week record, got %d", got)
	}
}

func TestRenderWeekInvalidConfigFallsBack(t *testing.T) {
	s := RenderWeek(nil, time.Now(), Config{HourMin: 10, HourMax: 10})
	if s.HourMin != 6 || s.HourMax != 24 {
		t.Fatalf("expected default range, got [%d,%d]", s.HourMin, s.HourMax)
	}
}

func TestDoseMarkerSkippedWithoutTime(t *testing.T) {
	r := wednesday()
	r.Doses[0].DoseMG = 20 // no time recorded

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	if got := len(scenePrimitives[PointTag](s)); got != 0 {
		t.Fatalf("expected no dose tags, got %d", got)
	}
}

func TestDoseMarkerBlankDoseLabel(t *testing.T) {
	r := wednesday()
	r.Doses[1].Time = "13:00" // dose amount left blank

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	tags := scenePrimitives[PointTag](s)
	if len(tags) != 1 {
		t.Fatalf("expected 1 dose tag, got %d", len(tags))
	}
	if tags[0].Label != "dose" {
		t.Fatalf("blank dose label %q, want \"dose\"", tags[0].Label)
	}
}

func TestCartouchePlacement(t *testing.T) {
	r := wednesday()
	r.Doses[0].Note = "great focus"
	r.Doses[1].Note = "   " // whitespace-only: omitted
	r.Doses[2].Note = "tired"

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	var boxed []TextBox
	for _, tb := range scenePrimitives[TextBox](s) {
		if tb.Boxed {
			boxed = append(boxed, tb)
		}
	}
	if len(boxed) != 2 {
		t.Fatalf("expected 2 cartouches, got %d", len(boxed))
	}
	if !almostEqual(boxed[0].Y, 10.5) || !almostEqual(boxed[1].Y, 20.5) {
		t.Fatalf("cartouche anchors: %v, %v", boxed[0].Y, boxed[1].Y)
	}
}

func TestCartoucheTruncation(t *testing.T) {
	r := wednesday()
	r.Doses[0].Note = strings.Repeat("a", 200)

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	for _, tb := range scenePrimitives[TextBox](s) {
		if !tb.Boxed {
			continue
		}
		runes := []rune(tb.Text)
		if len(runes) != noteMaxLen+1 {
			t.Fatalf("truncated note length %d, want %d", len(runes), noteMaxLen+1)
		}
		if runes[len(runes)-1] != '…' {
			t.Fatal("truncated note should end with ellipsis")
		}
	}
}

func TestPatientAnnotation(t *testing.T) {
	r := wednesday()
	r.Work.Start = "09:00"
	r.Work.LunchBreakStart = "12:00"
	r.Work.PatientsTotal = 12
	r.Work.PatientsNew = 3

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	var found bool
	for _, tb := range scenePrimitives[TextBox](s) {
		if tb.Text == "Patients: 12 (3 new)" {
			found = true
			if !almostEqual(tb.Y, 12.6) {
				t.Fatalf("patient text at %v, want 12.6", tb.Y)
			}
		}
	}
	if !found {
		t.Fatal("patient annotation missing")
	}
}

func TestPatientAnnotationClamped(t *testing.T) {
	r := wednesday()
	r.Work.Start = "09:00"
	r.Work.LunchBreakStart = "12:00"
	r.Work.WorkedAfternoon = true
	r.Work.AfternoonResume = "14:00"
	r.Work.End = "23:45"

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	for _, tb := range scenePrimitives[TextBox](s) {
		if strings.HasPrefix(tb.Text, "Patients:") && tb.Y > 24-patientTextMaxDrop {
			t.Fatalf("patient text below canvas: %v", tb.Y)
		}
	}
}

func TestPatientAnnotationOmittedWithoutWork(t *testing.T) {
	r := wednesday()
	r.Work.PatientsTotal = 5

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	for _, tb := range scenePrimitives[TextBox](s) {
		if strings.HasPrefix(tb.Text, "Patients:") {
			t.Fatal("patient annotation emitted without any work interval")
		}
	}
}

func TestBandeauAlwaysThreeLines(t *testing.T) {
	r := wednesday() // everything absent

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	var lines []TextBox
	for _, tb := range scenePrimitives[TextBox](s) {
		if !tb.Boxed && tb.Y > 22 {
			lines = append(lines, tb)
		}
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 bandeau lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0].Text, "Sleep n/d") || !strings.Contains(lines[0].Text, "Work 0 h") {
		t.Fatalf("unexpected summary line %q", lines[0].Text)
	}
	if lines[1].Text != "Effects: —" {
		t.Fatalf("unexpected effects line %q", lines[1].Text)
	}
	if lines[2].Text != "—" {
		t.Fatalf("unexpected comment line %q", lines[2].Text)
	}
	if !almostEqual(lines[2].Y, 23.8) {
		t.Fatalf("comment line at %v, want 23.8", lines[2].Y)
	}
}

func TestBandeauTruncations(t *testing.T) {
	r := wednesday()
	r.Sleep.Duration = "7h45"
	r.Work.Start = "09:00"
	r.Work.LunchBreakStart = "12:30"
	r.Rating.Difficulty = 8
	r.Doses[0].SideEffects = []string{strings.Repeat("x", 60)}
	r.Rating.Comment = strings.Repeat("y", 80)

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	var lines []TextBox
	for _, tb := range scenePrimitives[TextBox](s) {
		if !tb.Boxed && tb.Y > 22 {
			lines = append(lines, tb)
		}
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 bandeau lines, got %d", len(lines))
	}
	if want := "Sleep 7h45 · Work 3.5 h · Day 8/10"; lines[0].Text != want {
		t.Fatalf("summary line %q, want %q", lines[0].Text, want)
	}
	if got := len([]rune(strings.TrimPrefix(lines[1].Text, "Effects: "))); got != effectsMaxLen+1 {
		t.Fatalf("effects length %d, want %d", got, effectsMaxLen+1)
	}
	if got := len([]rune(lines[2].Text)); got != commentMaxLen+1 {
		t.Fatalf("comment length %d, want %d", got, commentMaxLen+1)
	}
}

func TestBandeauJoinsEffectsAcrossSlots(t *testing.T) {
	r := wednesday()
	r.Doses[0].SideEffects = []string{"appetite", "headache"}
	r.Doses[2].SideEffects = []string{"insomnia"}

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())
	var found bool
	for _, tb := range scenePrimitives[TextBox](s) {
		if tb.Text == "Effects: appetite / headache / insomnia" {
			found = true
		}
	}
	if !found {
		t.Fatal("effects from all slots should join into one line")
	}
}

func TestBandeauFollowsConfiguredHourRange(t *testing.T) {
	r := wednesday()
	r.Sleep.Duration = "7h30"

	cfg := Config{HourMin: 6, HourMax: 20}
	s := RenderWeek([]journal.Record{r}, r.Date, cfg)

	var lines []TextBox
	for _, tb := range scenePrimitives[TextBox](s) {
		if !tb.Boxed && tb.Y > 18 {
			lines = append(lines, tb)
		}
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 bandeau lines, got %d", len(lines))
	}
	for _, tb := range lines {
		if tb.Y > float64(cfg.HourMax) {
			t.Fatalf("bandeau line %q at %v, outside visible range (max %d)", tb.Text, tb.Y, cfg.HourMax)
		}
	}
	if !almostEqual(lines[2].Y, 19.8) {
		t.Fatalf("anchor line at %v, want 19.8", lines[2].Y)
	}
	if !almostEqual(lines[0].Y, 19.8-2*0.45) {
		t.Fatalf("first line at %v, want %v", lines[0].Y, 19.8-2*0.45)
	}
}

func TestPatientAnnotationClampedToConfiguredRange(t *testing.T) {
	r := wednesday()
	r.Work.Start = "09:00"
	r.Work.LunchBreakStart = "12:00"
	r.Work.WorkedAfternoon = true
	r.Work.AfternoonResume = "14:00"
	r.Work.End = "19:45"
	r.Work.PatientsTotal = 9

	cfg := Config{HourMin: 6, HourMax: 20}
	s := RenderWeek([]journal.Record{r}, r.Date, cfg)
	var found bool
	for _, tb := range scenePrimitives[TextBox](s) {
		if strings.HasPrefix(tb.Text, "Patients:") {
			found = true
			if tb.Y > float64(cfg.HourMax)-patientTextMaxDrop {
				t.Fatalf("patient text at %v, outside visible range (max %d)", tb.Y, cfg.HourMax)
			}
		}
	}
	if !found {
		t.Fatal("patient annotation missing")
	}
}

func TestZOrder(t *testing.T) {
	r := wednesday()
	r.Work.Start = "09:00"
	r.Work.LunchBreakStart = "12:00"
	r.Doses[0].Time = "08:00"
	r.Doses[0].Note = "note"

	s := RenderWeek([]journal.Record{r}, r.Date, DefaultConfig())

	order := map[string]int{}
	for i, p := range s.Primitives {
		switch v := p.(type) {
		case FilledRect:
			order["rect"] = i
		case PointTag:
			order["tag"] = i
		case TextBox:
			if v.Boxed {
				order["cartouche"] = i
			} else if v.Y > 22 {
				order["bandeau"] = i
			}
		}
	}
	if !(order["rect"] < order["tag"] && order["tag"] < order["cartouche"] && order["cartouche"] < order["bandeau"]) {
		t.Fatalf("unexpected stacking order: %+v", order)
	}
}

// ============================================================
// Week window
// ============================================================

func TestMonday(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-03-10", "2025-03-10"}, // Monday itself
		{"2025-03-12", "2025-03-10"}, // Wednesday
		{"2025-03-16", "2025-03-10"}, // Sunday stays in the same week
		{"2025-03-17", "2025-03-17"}, // next Monday
	}
	for _, c := range cases {
		in, _ := time.Parse(journal.DateKey, c.in)
		if got := Monday(in).Format(journal.DateKey); got != c.want {
			t.Errorf("Monday(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestWeekDays(t *testing.T) {
	days := WeekDays(time.Date(2025, 3, 12, 13, 45, 0, 0, time.UTC))
	for i := 1; i < 7; i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("days not consecutive at %d: %v after %v", i, days[i], days[i-1])
		}
	}
	if days[0].Weekday() != time.Monday {
		t.Fatalf("week starts on %v", days[0].Weekday())
	}
}
