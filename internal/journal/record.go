package journal

import "time"

// Slot identifies one of the three daily medication intakes.
type Slot int

const (
	SlotMorning Slot = iota
	SlotMidday
	SlotAfternoon
)

var slotNames = []string{"morning", "midday", "afternoon"}

func (s Slot) String() string {
	if s < SlotMorning || s > SlotAfternoon {
		return "unknown"
	}
	return slotNames[s]
}

// ExerciseKind is the activity recorded for an exercise session.
type ExerciseKind string

const (
	ExerciseStrength   ExerciseKind = "strength"
	ExerciseSwimming   ExerciseKind = "swimming"
	ExerciseRunning    ExerciseKind = "running"
	ExerciseVolleyball ExerciseKind = "volleyball"
	ExerciseOther      ExerciseKind = "other"
)

// ExerciseKinds lists the selectable activity kinds in form order.
var ExerciseKinds = []ExerciseKind{
	ExerciseStrength, ExerciseSwimming, ExerciseRunning, ExerciseVolleyball, ExerciseOther,
}

// Dose is one medication intake event. Time is free text ("HH:MM" or
// "HH:MM:SS") and may be empty or garbled; consumers parse it leniently.
type Dose struct {
	Slot        Slot
	Time        string
	DoseMG      int // 10, 20 or 30
	Efficacy    *int
	Note        string
	SideEffects []string
}

// Sleep holds the night's bedtime and duration, both hand-typed free text
// ("23:30", "7h45"). Either may be empty or unparseable.
type Sleep struct {
	Bedtime  string
	Duration string
}

// Work describes the day's work schedule. All time fields are free text.
type Work struct {
	Start           string
	LunchBreakStart string
	WorkedAfternoon bool
	AfternoonResume string
	End             string
	PatientsTotal   int
	PatientsNew     int
}

// Exercise describes an optional exercise session.
type Exercise struct {
	Done     bool
	Kind     ExerciseKind
	Start    string
	Duration string
}

// Rating is the subjective end-of-day assessment.
type Rating struct {
	Difficulty int // 0-10, higher = harder day
	Comment    string
}

// Record is one calendar day's complete journal entry. The date is the
// unique key; the store upserts by it.
type Record struct {
	Date     time.Time
	Sleep    Sleep
	Doses    [3]Dose
	Work     Work
	Exercise Exercise
	Rating   Rating
}

// DateKey is the canonical storage key for a record's date.
const DateKey = "2006-01-02"

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewRecord returns a record for the given date with dose slots pre-assigned.
func NewRecord(date time.Time) Record {
	r := Record{Date: Day(date)}
	r.Doses[0].Slot = SlotMorning
	r.Doses[1].Slot = SlotMidday
	r.Doses[2].Slot = SlotAfternoon
	return r
}
