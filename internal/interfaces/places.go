package interfaces

import (
	"context"

	"github.com/saunagids/saunagids/internal/models"
)

// LatLng is a geographic coordinate pair
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NearbyPage is one page of a nearby search with its continuation token
type NearbyPage struct {
	Results       []models.SearchResult
	NextPageToken string
}

// PlacesService defines the gateway to the external places provider
type PlacesService interface {
	// SearchText performs a category-constrained free-text search
	SearchText(ctx context.Context, query string) ([]models.SearchResult, error)

	// SearchNearby fetches one page of a radius search. When pageToken is
	// non-empty the request carries only the token plus credentials.
	SearchNearby(ctx context.Context, center LatLng, radiusMeters int, pageToken string) (*NearbyPage, error)

	// SearchNearbyPaged accumulates up to maxPages pages, enforcing the
	// provider's continuation-token activation delay between pages. Any page
	// failure aborts the whole search.
	SearchNearbyPaged(ctx context.Context, center LatLng, radiusMeters, maxPages int) ([]models.SearchResult, error)

	// FetchDetails retrieves the full detail record for one place
	FetchDetails(ctx context.Context, placeID string) (*models.VenueDetail, error)

	// FetchPhoto downloads one photo binary; returns data and content type
	FetchPhoto(ctx context.Context, photoReference string) ([]byte, string, error)
}

// ImportService resolves provider places into stored venues
type ImportService interface {
	ImportPlace(ctx context.Context, placeID string) models.ImportOutcome
	ImportAll(ctx context.Context, placeIDs []string) *models.BatchImportResult
}
