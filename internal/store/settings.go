package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

// Settings loads the process-wide configuration, falling back to defaults
// for any key never written.
func (db *DB) Settings(ctx context.Context) (model.Settings, error) {
	settings := model.DefaultSettings()

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case config.SettingDefaultFrequency:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				settings.DefaultContactFrequencyDays = n
			}
		case config.SettingCheckInReminders:
			settings.CheckInRemindersEnabled = value == config.SettingValueTrue
		case config.SettingLanguage:
			if slices.Contains(config.SupportedLanguages, value) {
				settings.Language = value
			}
		}
	}
	return settings, rows.Err()
}

// SetSetting validates and upserts one setting.
func (db *DB) SetSetting(ctx context.Context, key, value string) error {
	switch key {
	case config.SettingDefaultFrequency:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return errors.New(config.ErrFrequencyRange)
		}
	case config.SettingCheckInReminders:
		if value != config.SettingValueTrue && value != config.SettingValueFalse {
			return fmt.Errorf("%s: %q", config.ErrSettingUnknown, value)
		}
	case config.SettingLanguage:
		if !slices.Contains(config.SupportedLanguages, value) {
			return fmt.Errorf("%s: %q", config.ErrLanguageUnknown, value)
		}
	default:
		return fmt.Errorf("%s: %q", config.ErrSettingUnknown, key)
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(config.DateFormatStore),
	)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}
