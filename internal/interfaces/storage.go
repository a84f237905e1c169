package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/saunagids/saunagids/internal/models"
)

// Storage error kinds. Insert surfaces ErrDuplicateVenue as a distinct,
// recoverable condition so the import worker can map it to a duplicate
// outcome without inspecting store-specific error strings.
var (
	ErrDuplicateVenue  = errors.New("venue already exists")
	ErrVenueNotFound   = errors.New("venue not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrSettingNotFound = errors.New("setting not found")
)

// VenueFilter narrows venue listings
type VenueFilter struct {
	ProvinceSlug string
	CitySlug     string
	Limit        int
	Offset       int
}

// VenueStorage defines venue persistence operations
type VenueStorage interface {
	// Insert stores a new venue. Returns ErrDuplicateVenue when a venue with
	// the same (province_slug, city_slug, slug) or google_place_id exists.
	Insert(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id string) (*models.Venue, error)
	GetBySlugPath(ctx context.Context, provinceSlug, citySlug, slug string) (*models.Venue, error)
	List(ctx context.Context, filter VenueFilter) ([]*models.Venue, error)
	ListTop10(ctx context.Context) ([]*models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ReviewStorage defines review persistence operations
type ReviewStorage interface {
	Add(ctx context.Context, review *models.Review) error
	ListForVenue(ctx context.Context, venueID string, approvedOnly bool) ([]*models.Review, error)
	SetApproved(ctx context.Context, reviewID string, approved bool) (*models.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

// Setting is a stored key/value pair (ad settings, API keys)
type Setting struct {
	Key       string    `json:"key" badgerhold:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingsStorage defines key/value settings persistence
type SettingsStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]*Setting, error)
	Delete(ctx context.Context, key string) error
}

// StorageManager aggregates the storage interfaces
type StorageManager interface {
	VenueStorage() VenueStorage
	ReviewStorage() ReviewStorage
	SettingsStorage() SettingsStorage
	Close() error
}
