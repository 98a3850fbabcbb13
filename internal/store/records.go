package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aberthier/semainier/internal/journal"
)

const recordColumns = `date, bedtime, sleep_duration,
	dose_morning_time, dose_morning_mg, efficacy_morning, note_morning, effects_morning,
	dose_midday_time, dose_midday_mg, efficacy_midday, note_midday, effects_midday,
	dose_afternoon_time, dose_afternoon_mg, efficacy_afternoon, note_afternoon, effects_afternoon,
	work_start, lunch_break, worked_afternoon, afternoon_resume, work_end, patients_total, patients_new,
	exercise_done, exercise_kind, exercise_start, exercise_duration,
	difficulty, comment`

// UpsertRecord inserts the record or replaces the existing row for the
// same date. This is the only write path, so at most one row per calendar
// date can ever exist.
func (s *Store) UpsertRecord(r journal.Record) error {
	now := time.Now().UTC().Format(time.RFC3339)
	args := []any{
		r.Date.Format(journal.DateKey), r.Sleep.Bedtime, r.Sleep.Duration,
	}
	for _, d := range r.Doses {
		args = append(args, d.Time, d.DoseMG, nullableInt(d.Efficacy), d.Note, strings.Join(d.SideEffects, ";"))
	}
	args = append(args,
		r.Work.Start, r.Work.LunchBreakStart, boolToInt(r.Work.WorkedAfternoon),
		r.Work.AfternoonResume, r.Work.End, r.Work.PatientsTotal, r.Work.PatientsNew,
		boolToInt(r.Exercise.Done), string(r.Exercise.Kind), r.Exercise.Start, r.Exercise.Duration,
		r.Rating.Difficulty, r.Rating.Comment,
		now, now,
	)

	_, err := s.db.Exec(`INSERT INTO records (`+recordColumns+`, created_at, updated_at)
		VALUES (?, ?, ?,  ?, ?, ?, ?, ?,  ?, ?, ?, ?, ?,  ?, ?, ?, ?, ?,  ?, ?, ?, ?, ?, ?, ?,  ?, ?, ?, ?,  ?, ?,  ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			bedtime=excluded.bedtime, sleep_duration=excluded.sleep_duration,
			dose_morning_time=excluded.dose_morning_time, dose_morning_mg=excluded.dose_morning_mg,
			efficacy_morning=excluded.efficacy_morning, note_morning=excluded.note_morning,
			effects_morning=excluded.effects_morning,
			dose_midday_time=excluded.dose_midday_time, dose_midday_mg=excluded.dose_midday_mg,
			efficacy_midday=excluded.efficacy_midday, note_midday=excluded.note_midday,
			effects_midday=excluded.effects_midday,
			dose_afternoon_time=excluded.dose_afternoon_time, dose_afternoon_mg=excluded.dose_afternoon_mg,
			efficacy_afternoon=excluded.efficacy_afternoon, note_afternoon=excluded.note_afternoon,
			effects_afternoon=excluded.effects_afternoon,
			work_start=excluded.work_start, lunch_break=excluded.lunch_break,
			worked_afternoon=excluded.worked_afternoon, afternoon_resume=excluded.afternoon_resume,
			work_end=excluded.work_end, patients_total=excluded.patients_total,
			patients_new=excluded.patients_new,
			exercise_done=excluded.exercise_done, exercise_kind=excluded.exercise_kind,
			exercise_start=excluded.exercise_start, exercise_duration=excluded.exercise_duration,
			difficulty=excluded.difficulty, comment=excluded.comment,
			updated_at=excluded.updated_at`,
		args...)
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", r.Date.Format(journal.DateKey), err)
	}
	return nil
}

// GetRecord returns the record for the given calendar date, or nil when
// none was saved.
func (s *Store) GetRecord(date time.Time) (*journal.Record, error) {
	row := s.db.QueryRow(
		`SELECT `+recordColumns+` FROM records WHERE date = ?`,
		journal.Day(date).Format(journal.DateKey),
	)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", date.Format(journal.DateKey), err)
	}
	return r, nil
}

// ListRecords returns every saved record in date order.
func (s *Store) ListRecords() ([]journal.Record, error) {
	rows, err := s.db.Query(`SELECT ` + recordColumns + ` FROM records ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListWeek returns the records of the Monday-anchored week starting at
// monday, in date order. At most seven rows.
func (s *Store) ListWeek(monday time.Time) ([]journal.Record, error) {
	from := journal.Day(monday).Format(journal.DateKey)
	to := journal.Day(monday).AddDate(0, 0, 7).Format(journal.DateKey)
	rows, err := s.db.Query(
		`SELECT `+recordColumns+` FROM records WHERE date >= ? AND date < ? ORDER BY date`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list week %s: %w", from, err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// DeleteRecord removes the row for the given date, if any.
func (s *Store) DeleteRecord(date time.Time) error {
	_, err := s.db.Exec(`DELETE FROM records WHERE date = ?`, journal.Day(date).Format(journal.DateKey))
	if err != nil {
		return fmt.Errorf("delete record %s: %w", date.Format(journal.DateKey), err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*journal.Record, error) {
	var (
		r        journal.Record
		dateStr  string
		eff      [3]sql.NullInt64
		effects  [3]string
		workedPM int
		done     int
		kind     string
	)

	dests := []any{&dateStr, &r.Sleep.Bedtime, &r.Sleep.Duration}
	for i := range r.Doses {
		dests = append(dests, &r.Doses[i].Time, &r.Doses[i].DoseMG, &eff[i], &r.Doses[i].Note, &effects[i])
	}
	dests = append(dests,
		&r.Work.Start, &r.Work.LunchBreakStart, &workedPM, &r.Work.AfternoonResume,
		&r.Work.End, &r.Work.PatientsTotal, &r.Work.PatientsNew,
		&done, &kind, &r.Exercise.Start, &r.Exercise.Duration,
		&r.Rating.Difficulty, &r.Rating.Comment,
	)

	if err := row.Scan(dests...); err != nil {
		return nil, err
	}

	r.Date, _ = time.Parse(journal.DateKey, dateStr)
	for i := range r.Doses {
		r.Doses[i].Slot = journal.Slot(i)
		if eff[i].Valid {
			v := int(eff[i].Int64)
			r.Doses[i].Efficacy = &v
		}
		if effects[i] != "" {
			r.Doses[i].SideEffects = strings.Split(effects[i], ";")
		}
	}
	r.Work.WorkedAfternoon = workedPM == 1
	r.Exercise.Done = done == 1
	r.Exercise.Kind = journal.ExerciseKind(kind)
	return &r, nil
}

func collectRecords(rows *sql.Rows) ([]journal.Record, error) {
	var records []journal.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
