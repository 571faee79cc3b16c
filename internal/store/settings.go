package store

import (
	"fmt"
	"strconv"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// SettingOr returns the setting or fallback when it is missing.
func (s *Store) SettingOr(key, fallback string) string {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	return v
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
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

// BarWeight is the empty-bar weight used for plate math.
func (s *Store) BarWeight() float64 {
	v, err := strconv.ParseFloat(s.SettingOr(SettingBarWeight, "45"), 64)
	if err != nil || v < 0 {
		return 45
	}
	return v
}

func (s *Store) WeightUnit() string {
	return s.SettingOr(SettingWeightUnit, "lb")
}

func (s *Store) ChimeEnabled() bool {
	return s.SettingOr(SettingChime, "on") != "off"
}
