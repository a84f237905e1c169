package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/common"
	"github.com/saunagids/saunagids/internal/interfaces"
	"github.com/saunagids/saunagids/internal/models"
)

const maxPhotosPerVenue = 10

// Enricher provides an optional SEO description for a venue website
type Enricher interface {
	FetchDescription(ctx context.Context, websiteURL string) (string, error)
}

// Service implements the ImportService interface. It resolves one provider
// place at a time into a stored venue: detail fetch, region resolution,
// sequential photo download into object storage, then insert with duplicate
// detection.
type Service struct {
	placesService interfaces.PlacesService
	venueStorage  interfaces.VenueStorage
	photoStore    interfaces.PhotoStore
	eventService  interfaces.EventService
	enricher      Enricher
	config        *common.ImportConfig
	logger        arbor.ILogger
}

// NewService creates a new import worker. The enricher may be nil.
func NewService(
	placesService interfaces.PlacesService,
	venueStorage interfaces.VenueStorage,
	photoStore interfaces.PhotoStore,
	eventService interfaces.EventService,
	enricher Enricher,
	config *common.ImportConfig,
	logger arbor.ILogger,
) interfaces.ImportService {
	return &Service{
		placesService: placesService,
		venueStorage:  venueStorage,
		photoStore:    photoStore,
		eventService:  eventService,
		enricher:      enricher,
		config:        config,
		logger:        logger,
	}
}

// ImportPlace resolves one place ID into a stored venue. The outcome is
// tri-state: imported, duplicate (the store's uniqueness constraint fired,
// a recoverable condition), or failed with the underlying reason.
func (s *Service) ImportPlace(ctx context.Context, placeID string) models.ImportOutcome {
	detail, err := s.placesService.FetchDetails(ctx, placeID)
	if err != nil {
		s.logger.Warn().Err(err).Str("place_id", placeID).Msg("Failed to fetch place details")
		return models.ImportOutcome{
			PlaceID: placeID,
			Status:  models.ImportStatusFailed,
			Message: err.Error(),
		}
	}

	venueSlug := common.SlugifyOrFallback(detail.Name)
	citySlug := common.SlugifyOrFallback(detail.City)
	provinceSlug := common.SlugifyOrFallback(detail.Province)

	photoURLs := s.downloadPhotos(ctx, detail.PhotoReferences, venueSlug, citySlug)

	venue := &models.Venue{
		ID:            uuid.New().String(),
		Name:          nameOrFallback(detail.Name),
		Slug:          venueSlug,
		Address:       detail.Address,
		Province:      nameOrFallback(detail.Province),
		ProvinceSlug:  provinceSlug,
		City:          nameOrFallback(detail.City),
		CitySlug:      citySlug,
		Phone:         detail.Phone,
		Website:       detail.Website,
		OpeningHours:  detail.OpeningHours,
		GooglePlaceID: placeID,
		Lat:           detail.Lat,
		Lng:           detail.Lng,
		PhotoURLs:     photoURLs,
		Rating:        detail.Rating,
	}

	if s.config.EnrichFromWebsite && s.enricher != nil && venue.Website != "" {
		description, err := s.enricher.FetchDescription(ctx, venue.Website)
		if err != nil {
			s.logger.Debug().Err(err).Str("website", venue.Website).Msg("Website enrichment skipped")
		} else {
			venue.Description = description
		}
	}

	if err := s.venueStorage.Insert(ctx, venue); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateVenue) {
			s.logger.Info().
				Str("place_id", placeID).
				Str("slug_path", venue.SlugPath()).
				Msg("Venue already exists, skipping")
			return models.ImportOutcome{
				PlaceID: placeID,
				Status:  models.ImportStatusDuplicate,
			}
		}
		s.logger.Error().Err(err).Str("place_id", placeID).Msg("Failed to insert venue")
		return models.ImportOutcome{
			PlaceID: placeID,
			Status:  models.ImportStatusFailed,
			Message: err.Error(),
		}
	}

	s.logger.Info().
		Str("place_id", placeID).
		Str("slug_path", venue.SlugPath()).
		Int("photo_count", len(photoURLs)).
		Msg("Venue imported")

	return models.ImportOutcome{
		PlaceID: placeID,
		Status:  models.ImportStatusImported,
		Venue:   venue,
	}
}

// downloadPhotos fetches and stores up to the configured number of photos,
// strictly in provider order. A single photo failure never aborts the
// import: the photo is logged and skipped, and the remaining photos keep
// their relative order.
func (s *Service) downloadPhotos(ctx context.Context, references []string, venueSlug, citySlug string) []string {
	maxPhotos := s.config.MaxPhotos
	if maxPhotos <= 0 || maxPhotos > maxPhotosPerVenue {
		maxPhotos = maxPhotosPerVenue
	}
	if len(references) > maxPhotos {
		references = references[:maxPhotos]
	}

	var urls []string
	for i, ref := range references {
		data, contentType, err := s.placesService.FetchPhoto(ctx, ref)
		if err != nil {
			s.logger.Warn().Err(err).Int("photo_index", i+1).Msg("Failed to download photo, skipping")
			continue
		}

		path := photoPath(venueSlug, citySlug, i+1, extensionFor(contentType))

		publicURL, err := s.photoStore.Save(ctx, path, contentType, data)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to store photo, skipping")
			continue
		}

		urls = append(urls, publicURL)
	}

	return urls
}

// ImportAll imports the given place IDs strictly sequentially, publishing a
// progress event after each item. A duplicate or failure for one ID never
// stops the loop.
func (s *Service) ImportAll(ctx context.Context, placeIDs []string) *models.BatchImportResult {
	total := len(placeIDs)

	s.publish(ctx, interfaces.EventImportStarted, models.ImportProgress{Total: total})

	result := &models.BatchImportResult{
		Total:    total,
		Outcomes: make([]models.ImportOutcome, 0, total),
	}

	for i, placeID := range placeIDs {
		outcome := s.ImportPlace(ctx, placeID)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Status == models.ImportStatusImported {
			result.ImportedCount++
		} else {
			result.SkippedIDs = append(result.SkippedIDs, placeID)
		}

		progress := models.ImportProgress{
			Current: i + 1,
			Total:   total,
			PlaceID: placeID,
			Status:  outcome.Status,
		}
		if outcome.Venue != nil {
			progress.Name = outcome.Venue.Name
		}
		s.publish(ctx, interfaces.EventImportProgress, progress)
	}

	s.publish(ctx, interfaces.EventImportCompleted, models.ImportProgress{
		Current: total,
		Total:   total,
	})

	s.logger.Info().
		Int("imported", result.ImportedCount).
		Int("total", result.Total).
		Msg("Batch import completed")

	return result
}

// publish delivers an event synchronously so the progress counter is
// observable after each step
func (s *Service) publish(ctx context.Context, eventType interfaces.EventType, payload interface{}) {
	if s.eventService == nil {
		return
	}
	if err := s.eventService.PublishSync(ctx, interfaces.Event{Type: eventType, Payload: payload}); err != nil {
		s.logger.Warn().Err(err).Str("event_type", string(eventType)).Msg("Failed to publish event")
	}
}

// photoPath builds the deterministic SEO-friendly storage path:
// {venue-slug}-{city-slug}/{venue-slug}-{city-slug}-{n}.{ext}
func photoPath(venueSlug, citySlug string, index int, ext string) string {
	prefix := fmt.Sprintf("%s-%s", venueSlug, citySlug)
	return fmt.Sprintf("%s/%s-%d.%s", prefix, prefix, index, ext)
}

// extensionFor derives the file extension from a content type; jpg unless
// the provider served a PNG
func extensionFor(contentType string) string {
	if strings.Contains(contentType, "png") {
		return "png"
	}
	return "jpg"
}

// nameOrFallback substitutes the display fallback for an unresolved
// province or city name
func nameOrFallback(name string) string {
	if name == "" {
		return "Onbekend"
	}
	return name
}

var _ interfaces.ImportService = (*Service)(nil)
