package tui

import (
	"fmt"
	"time"

	"github.com/aberthier/semainier/internal/journal"
)

// viewState represents the currently active view.
type viewState int

const (
	viewJournal viewState = iota
	viewRecords
	viewWeek
	viewStats
	viewSettings
)

var viewNames = []string{"Journal", "Records", "Week", "Stats", "Settings"}

// --- Messages ---

type recordSavedMsg struct {
	date time.Time
}

type recordDeletedMsg struct {
	date time.Time
}

// editRecordMsg asks the app to open the journal form for a date.
type editRecordMsg struct {
	date time.Time
}

type recordsDataMsg struct {
	records []journal.Record
}

type weekDataMsg struct {
	records []journal.Record
}

type statsDataMsg struct {
	records []journal.Record
}

type settingsDataMsg struct {
	hourMin   int
	hourMax   int
	exportDir string
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatHoursPtr(v *float64) string {
	if v == nil {
		return "n/d"
	}
	return fmt.Sprintf("%.1f h", *v)
}

func formatEfficacyPtr(v *float64) string {
	if v == nil {
		return "n/d"
	}
	return fmt.Sprintf("%.1f/10", *v)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
