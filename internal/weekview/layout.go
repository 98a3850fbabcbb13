package weekview

import (
	"fmt"
	"strings"

	"github.com/aberthier/semainier/internal/journal"
)

// Placement constants. These reproduce the journal's long-standing visual
// layout exactly; changing any of them changes what the user sees.
const (
	blockMarginX   = 0.08 // interval block inset from the day column edges
	minBlockHeight = 0.06 // shortest visible block

	doseMarginX      = 0.10
	doseTagWidthFrac = 0.28 // tag box share of the day column width
	doseTagHeight    = 0.6

	cartoucheMarginX = 0.14
	cartoucheHeight  = 0.9
	noteMaxLen       = 140

	morningNoteHour   = 10.5
	afternoonNoteHour = 15.0
	eveningNoteHour   = 20.5

	patientTextMarginX = 0.06
	patientTextOffset  = 0.6
	patientTextMaxDrop = 0.4 // clamp below the visible upper hour bound

	bandeauAnchorDrop  = 0.2 // anchor below the visible upper hour bound
	bandeauLineSpacing = 0.45
	effectsMaxLen      = 40
	commentMaxLen      = 50

	workBlockAlpha     = 0.30
	exerciseBlockAlpha = 0.22
	doseTagAlpha       = 0.95
)

// placeDay appends every visual element for one record to the scene, in
// stacking order: interval blocks, dose markers, note cartouches, summary
// bandeau. Elements drawn later occlude earlier ones when their hour
// ranges collide; that is the accepted layout policy, not a bug to fix
// with a collision resolver.
func placeDay(s *Scene, day int, r journal.Record) {
	resolved := ResolveDay(r, day)

	for _, iv := range resolved.Intervals {
		s.Primitives = append(s.Primitives, blockRect(iv))
	}

	if resolved.LastWorkEnd != nil {
		y := *resolved.LastWorkEnd + patientTextOffset
		if maxY := float64(s.HourMax) - patientTextMaxDrop; y > maxY {
			y = maxY
		}
		s.Primitives = append(s.Primitives, TextBox{
			X:     float64(day) + patientTextMarginX,
			Y:     y,
			Text:  fmt.Sprintf("Patients: %d (%d new)", r.Work.PatientsTotal, r.Work.PatientsNew),
			Align: AlignStart,
		})
	}

	for _, d := range r.Doses {
		placeDose(s, day, d)
	}

	placeCartouche(s, day, r.Doses[0].Note, morningNoteHour)
	placeCartouche(s, day, r.Doses[1].Note, afternoonNoteHour)
	placeCartouche(s, day, r.Doses[2].Note, eveningNoteHour)

	placeBandeau(s, day, r)
}

func blockRect(iv Interval) FilledRect {
	alpha := workBlockAlpha
	if iv.Category == CategoryExercise {
		alpha = exerciseBlockAlpha
	}
	height := iv.End - iv.Start
	if height < minBlockHeight {
		height = minBlockHeight
	}
	return FilledRect{
		X0:       float64(iv.Day) + blockMarginX,
		Y0:       iv.Start,
		X1:       float64(iv.Day) + 1 - blockMarginX,
		Y1:       iv.Start + height,
		ColorKey: iv.ColorKey,
		Alpha:    alpha,
		Label:    iv.Label,
	}
}

// placeDose draws one medication intake: a tick line across the column and
// an opaque tag box on its trailing edge. A dose whose time is missing or
// unparseable is skipped entirely.
func placeDose(s *Scene, day int, d journal.Dose) {
	hour, ok := journal.ParseTimeOfDay(d.Time)
	if !ok {
		return
	}

	x0 := float64(day) + doseMarginX
	x1 := float64(day) + 1 - doseMarginX
	tagW := (x1 - x0) * doseTagWidthFrac

	s.Primitives = append(s.Primitives, Line{
		X0:       x0,
		Y0:       hour,
		X1:       x1 - tagW - 0.01,
		Y1:       hour,
		ColorKey: "dose",
		Width:    2,
	})

	label := "dose"
	if d.DoseMG > 0 {
		label = fmt.Sprintf("%d mg", d.DoseMG)
	}
	s.Primitives = append(s.Primitives, PointTag{
		X0:       x1 - tagW,
		X1:       x1,
		Hour:     hour,
		Height:   doseTagHeight,
		ColorKey: "dose",
		Label:    label,
	})
}

func placeCartouche(s *Scene, day int, note string, centerHour float64) {
	if strings.TrimSpace(note) == "" {
		return
	}
	s.Primitives = append(s.Primitives, TextBox{
		X:      float64(day) + 0.5,
		Y:      centerHour,
		Text:   truncate(note, noteMaxLen),
		Align:  AlignCenter,
		Boxed:  true,
		X0:     float64(day) + cartoucheMarginX,
		X1:     float64(day) + 1 - cartoucheMarginX,
		Height: cartoucheHeight,
	})
}

// placeBandeau emits the three fixed summary lines near the bottom of the
// column, anchored just above the visible lower edge so they survive the
// plot clip at any configured hour range. All three lines always render,
// with placeholders for absent sources, so rows stay aligned across the
// week.
func placeBandeau(s *Scene, day int, r journal.Record) {
	sleep := "n/d"
	if strings.TrimSpace(r.Sleep.Duration) != "" {
		sleep = strings.TrimSpace(r.Sleep.Duration)
	}

	work := "0 h"
	if wh := journal.WorkHours(r); wh != nil {
		work = fmt.Sprintf("%.1f h", *wh)
	}

	var allEffects []string
	for _, d := range r.Doses {
		allEffects = append(allEffects, d.SideEffects...)
	}
	effects := joinNonBlank(allEffects...)
	if effects == "" {
		effects = "—"
	} else {
		effects = truncate(effects, effectsMaxLen)
	}

	comment := strings.TrimSpace(r.Rating.Comment)
	if comment == "" {
		comment = "—"
	} else {
		comment = truncate(comment, commentMaxLen)
	}

	lines := []string{
		fmt.Sprintf("Sleep %s · Work %s · Day %d/10", sleep, work, r.Rating.Difficulty),
		"Effects: " + effects,
		comment,
	}

	// Lines stack upward from the anchor so all three stay on the canvas.
	anchor := float64(s.HourMax) - bandeauAnchorDrop
	for i, text := range lines {
		y := anchor - float64(len(lines)-1-i)*bandeauLineSpacing
		s.Primitives = append(s.Primitives, TextBox{
			X:     float64(day) + patientTextMarginX,
			Y:     y,
			Text:  text,
			Align: AlignStart,
		})
	}
}

// truncate limits s to maxRunes runes, appending an ellipsis when cut.
func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "…"
}

func joinNonBlank(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " / ")
}
