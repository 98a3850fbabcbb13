package store

import (
	"fmt"
	"strconv"
)

type Setting struct {
	Key   string
	Value string
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// HourRange returns the configured visible hour range for the weekly
// view, falling back to 6-24 when the stored values are missing or not
// a sane range.
func (s *Store) HourRange() (int, int) {
	minStr, err1 := s.GetSetting("hour_min")
	maxStr, err2 := s.GetSetting("hour_max")
	if err1 != nil || err2 != nil {
		return 6, 24
	}
	hmin, err1 := strconv.Atoi(minStr)
	hmax, err2 := strconv.Atoi(maxStr)
	if err1 != nil || err2 != nil || hmin < 0 || hmax > 24 || hmax <= hmin {
		return 6, 24
	}
	return hmin, hmax
}
