package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/saunagids/saunagids/internal/interfaces"
	"github.com/saunagids/saunagids/internal/models"
)

// VenueStorage implements the VenueStorage interface for Badger
type VenueStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewVenueStorage creates a new VenueStorage instance
func NewVenueStorage(db *BadgerDB, logger arbor.ILogger) interfaces.VenueStorage {
	return &VenueStorage{
		db:     db,
		logger: logger,
	}
}

// Insert stores a new venue. The (province_slug, city_slug, slug) triple and
// google_place_id are enforced unique; a collision on either surfaces
// interfaces.ErrDuplicateVenue so callers can treat it as a recoverable
// "already exists" outcome rather than a storage failure.
func (s *VenueStorage) Insert(ctx context.Context, venue *models.Venue) error {
	existing, err := s.findDuplicate(venue)
	if err != nil {
		return fmt.Errorf("failed to check for existing venue: %w", err)
	}
	if existing != nil {
		return interfaces.ErrDuplicateVenue
	}

	now := time.Now()
	if venue.CreatedAt.IsZero() {
		venue.CreatedAt = now
	}
	venue.UpdatedAt = now

	if err := s.db.Store().Insert(venue.ID, venue); err != nil {
		if err == badgerhold.ErrKeyExists {
			return interfaces.ErrDuplicateVenue
		}
		return fmt.Errorf("failed to insert venue: %w", err)
	}

	s.logger.Debug().
		Str("venue_id", venue.ID).
		Str("slug_path", venue.SlugPath()).
		Msg("Venue inserted")

	return nil
}

// findDuplicate returns a venue matching the slug triple or place ID, if any
func (s *VenueStorage) findDuplicate(venue *models.Venue) (*models.Venue, error) {
	var matches []models.Venue

	query := badgerhold.Where("ProvinceSlug").Eq(venue.ProvinceSlug).
		And("CitySlug").Eq(venue.CitySlug).
		And("Slug").Eq(venue.Slug)
	if err := s.db.Store().Find(&matches, query); err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return &matches[0], nil
	}

	if venue.GooglePlaceID != "" {
		if err := s.db.Store().Find(&matches, badgerhold.Where("GooglePlaceID").Eq(venue.GooglePlaceID)); err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return &matches[0], nil
		}
	}

	return nil, nil
}

// GetByID retrieves a venue by its ID
func (s *VenueStorage) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.Store().Get(id, &venue)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return &venue, nil
}

// GetBySlugPath retrieves a venue by its province/city/venue slug triple
func (s *VenueStorage) GetBySlugPath(ctx context.Context, provinceSlug, citySlug, slug string) (*models.Venue, error) {
	var matches []models.Venue
	query := badgerhold.Where("ProvinceSlug").Eq(provinceSlug).
		And("CitySlug").Eq(citySlug).
		And("Slug").Eq(slug)
	if err := s.db.Store().Find(&matches, query); err != nil {
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}
	if len(matches) == 0 {
		return nil, interfaces.ErrVenueNotFound
	}
	return &matches[0], nil
}

// List returns venues matching the filter, sorted by name
func (s *VenueStorage) List(ctx context.Context, filter interfaces.VenueFilter) ([]*models.Venue, error) {
	var query *badgerhold.Query
	switch {
	case filter.ProvinceSlug != "" && filter.CitySlug != "":
		query = badgerhold.Where("ProvinceSlug").Eq(filter.ProvinceSlug).And("CitySlug").Eq(filter.CitySlug)
	case filter.ProvinceSlug != "":
		query = badgerhold.Where("ProvinceSlug").Eq(filter.ProvinceSlug)
	default:
		query = &badgerhold.Query{}
	}

	query = query.SortBy("Name")
	if filter.Offset > 0 {
		query = query.Skip(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var venues []models.Venue
	if err := s.db.Store().Find(&venues, query); err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	result := make([]*models.Venue, len(venues))
	for i := range venues {
		result[i] = &venues[i]
	}
	return result, nil
}

// ListTop10 returns the curated top-10 venues in display order
func (s *VenueStorage) ListTop10(ctx context.Context) ([]*models.Venue, error) {
	var venues []models.Venue
	query := badgerhold.Where("IsTop10").Eq(true).SortBy("Top10Order")
	if err := s.db.Store().Find(&venues, query); err != nil {
		return nil, fmt.Errorf("failed to list top 10 venues: %w", err)
	}

	result := make([]*models.Venue, len(venues))
	for i := range venues {
		result[i] = &venues[i]
	}
	return result, nil
}

// Update saves changes to an existing venue
func (s *VenueStorage) Update(ctx context.Context, venue *models.Venue) error {
	venue.UpdatedAt = time.Now()
	err := s.db.Store().Update(venue.ID, venue)
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrVenueNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}
	return nil
}

// Delete removes a venue
func (s *VenueStorage) Delete(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.Venue{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrVenueNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	return nil
}

// Count returns the total number of stored venues
func (s *VenueStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Venue{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}
	return int(count), nil
}
