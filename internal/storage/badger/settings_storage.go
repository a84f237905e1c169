package badger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/saunagids/saunagids/internal/interfaces"
)

// SettingsStorage implements the SettingsStorage interface for Badger.
// Keys are case-insensitive.
type SettingsStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSettingsStorage creates a new SettingsStorage instance
func NewSettingsStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SettingsStorage {
	return &SettingsStorage{
		db:     db,
		logger: logger,
	}
}

func (s *SettingsStorage) normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Get retrieves a setting value by key
func (s *SettingsStorage) Get(ctx context.Context, key string) (string, error) {
	var setting interfaces.Setting
	err := s.db.Store().Get(s.normalizeKey(key), &setting)
	if err == badgerhold.ErrNotFound {
		return "", interfaces.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return setting.Value, nil
}

// Set inserts or updates a setting
func (s *SettingsStorage) Set(ctx context.Context, key, value string) error {
	setting := interfaces.Setting{
		Key:       s.normalizeKey(key),
		Value:     value,
		UpdatedAt: time.Now(),
	}
	if err := s.db.Store().Upsert(setting.Key, &setting); err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// List returns all stored settings
func (s *SettingsStorage) List(ctx context.Context) ([]*interfaces.Setting, error) {
	var settings []interfaces.Setting
	if err := s.db.Store().Find(&settings, nil); err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	result := make([]*interfaces.Setting, len(settings))
	for i := range settings {
		result[i] = &settings[i]
	}
	return result, nil
}

// Delete removes a setting
func (s *SettingsStorage) Delete(ctx context.Context, key string) error {
	err := s.db.Store().Delete(s.normalizeKey(key), &interfaces.Setting{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrSettingNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}
