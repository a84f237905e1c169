package badger

import (
	"context"
	"testing"

	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/interfaces"
)

func TestSettingsSetAndGet(t *testing.T) {
	db := newTestDB(t)
	storage := NewSettingsStorage(db, arbor.NewLogger())
	ctx := context.Background()

	if err := storage.Set(ctx, "ads_enabled", "true"); err != nil {
		t.Fatalf("Failed to set setting: %v", err)
	}

	value, err := storage.Get(ctx, "ads_enabled")
	if err != nil {
		t.Fatalf("Failed to get setting: %v", err)
	}
	if value != "true" {
		t.Errorf("Expected value true, got %s", value)
	}
}

func TestSettingsKeysAreCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	storage := NewSettingsStorage(db, arbor.NewLogger())
	ctx := context.Background()

	if err := storage.Set(ctx, "Ads_Banner_URL", "https://example.com/banner"); err != nil {
		t.Fatalf("Failed to set setting: %v", err)
	}

	value, err := storage.Get(ctx, "ads_banner_url")
	if err != nil {
		t.Fatalf("Failed to get setting with lowercase key: %v", err)
	}
	if value != "https://example.com/banner" {
		t.Errorf("Unexpected value: %s", value)
	}
}

func TestSettingsGetNotFound(t *testing.T) {
	db := newTestDB(t)
	storage := NewSettingsStorage(db, arbor.NewLogger())

	if _, err := storage.Get(context.Background(), "missing"); err != interfaces.ErrSettingNotFound {
		t.Fatalf("Expected ErrSettingNotFound, got %v", err)
	}
}

func TestSettingsUpsertAndDelete(t *testing.T) {
	db := newTestDB(t)
	storage := NewSettingsStorage(db, arbor.NewLogger())
	ctx := context.Background()

	if err := storage.Set(ctx, "theme", "light"); err != nil {
		t.Fatalf("Failed to set setting: %v", err)
	}
	if err := storage.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("Failed to update setting: %v", err)
	}

	value, err := storage.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("Failed to get setting: %v", err)
	}
	if value != "dark" {
		t.Errorf("Expected dark after update, got %s", value)
	}

	settings, err := storage.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list settings: %v", err)
	}
	if len(settings) != 1 {
		t.Fatalf("Expected 1 setting, got %d", len(settings))
	}

	if err := storage.Delete(ctx, "theme"); err != nil {
		t.Fatalf("Failed to delete setting: %v", err)
	}
	if err := storage.Delete(ctx, "theme"); err != interfaces.ErrSettingNotFound {
		t.Fatalf("Expected ErrSettingNotFound, got %v", err)
	}
}
