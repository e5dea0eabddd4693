package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// GetSetting retrieves a settings value by key. A key that has never been
// saved reads back as ("", false), not as an error.
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_setting", start, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var value string
	err = s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetSetting saves a settings key-value pair, overwriting any prior value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("set_setting", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// GetSettings reads the full settings bag. Keys that were never saved come
// back as empty fields.
func (s *Store) GetSettings(ctx context.Context) (Settings, error) {
	birthDate, _, err := s.GetSetting(ctx, SettingBirthDate)
	if err != nil {
		return Settings{}, err
	}
	folderPath, _, err := s.GetSetting(ctx, SettingFolderPath)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		BirthDate:  birthDate,
		FolderPath: folderPath,
	}, nil
}
