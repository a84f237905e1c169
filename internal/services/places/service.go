package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/saunagids/saunagids/internal/common"
	"github.com/saunagids/saunagids/internal/interfaces"
	"github.com/saunagids/saunagids/internal/models"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// detailFields is the fixed field list requested from the Place Details API
const detailFields = "name,formatted_address,formatted_phone_number,website,opening_hours,geometry,photos,rating,address_components"

var (
	// ErrProviderUnavailable indicates the places API returned a non-success
	// status or was unreachable
	ErrProviderUnavailable = errors.New("places provider unavailable")

	// ErrPlaceNotFound indicates a details fetch succeeded at the transport
	// level but returned no place body
	ErrPlaceNotFound = errors.New("place not found")
)

// pageState models the nearby-search pagination state machine. A continuation
// token is not valid immediately: the provider rejects it until its
// activation delay has elapsed, so the gateway tracks when the next fetch
// may be issued.
type pageState int

const (
	stateReadyToFetch pageState = iota
	stateAwaitingActivation
	stateNoMorePages
)

// Service implements the PlacesService interface against the Google Places API
type Service struct {
	config     *common.PlacesConfig
	logger     arbor.ILogger
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewService creates a new Places gateway
func NewService(config *common.PlacesConfig, logger arbor.ILogger) interfaces.PlacesService {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Service{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(config.RateLimit), 1),
		baseURL: baseURL,
	}
}

// SearchText performs a category-constrained free-text search. The configured
// keyword is prefixed to the caller's query so results stay within the
// sauna/wellness category.
func (s *Service) SearchText(ctx context.Context, query string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("query", s.config.Keyword+" "+query)
	params.Set("language", s.config.Language)
	params.Set("region", s.config.Region)

	resp, err := s.get(ctx, "/textsearch/json", params)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("query", query).
		Int("results_count", len(resp.Results)).
		Str("status", resp.Status).
		Msg("Text search completed")

	return convertResults(resp.Results), nil
}

// SearchNearby fetches one page of a radius search. When pageToken is
// non-empty the request carries only the token plus credentials; supplying
// other parameters alongside a continuation token is invalid per the
// provider contract.
func (s *Service) SearchNearby(ctx context.Context, center interfaces.LatLng, radiusMeters int, pageToken string) (*interfaces.NearbyPage, error) {
	params := url.Values{}
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	} else {
		params.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
		params.Set("radius", fmt.Sprintf("%d", radiusMeters))
		params.Set("keyword", s.config.Keyword)
		params.Set("language", s.config.Language)
	}

	resp, err := s.get(ctx, "/nearbysearch/json", params)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Float64("lat", center.Lat).
		Float64("lng", center.Lng).
		Int("radius", radiusMeters).
		Bool("continuation", pageToken != "").
		Int("results_count", len(resp.Results)).
		Str("status", resp.Status).
		Msg("Nearby search page completed")

	return &interfaces.NearbyPage{
		Results:       convertResults(resp.Results),
		NextPageToken: resp.NextPageToken,
	}, nil
}

// SearchNearbyPaged accumulates nearby-search pages until the provider stops
// returning a continuation token or maxPages pages have been fetched. A page
// failure aborts the whole search: partial result sets without the caller's
// awareness are worse than a clear failure.
func (s *Service) SearchNearbyPaged(ctx context.Context, center interfaces.LatLng, radiusMeters, maxPages int) ([]models.SearchResult, error) {
	if maxPages <= 0 {
		maxPages = s.config.MaxPages
	}

	var all []models.SearchResult
	var token string
	var readyAt time.Time
	state := stateReadyToFetch

	for page := 1; page <= maxPages; page++ {
		if state == stateAwaitingActivation {
			if err := s.waitUntil(ctx, readyAt); err != nil {
				return nil, err
			}
			state = stateReadyToFetch
		}

		result, err := s.SearchNearby(ctx, center, radiusMeters, token)
		if err != nil {
			return nil, fmt.Errorf("nearby search page %d failed: %w", page, err)
		}

		all = append(all, result.Results...)

		if result.NextPageToken == "" {
			state = stateNoMorePages
			break
		}
		token = result.NextPageToken
		state = stateAwaitingActivation
		readyAt = time.Now().Add(s.config.PageTokenDelay)
	}

	s.logger.Info().
		Int("total_results", len(all)).
		Msg("Paged nearby search completed")

	return all, nil
}

// waitUntil blocks until the given time, honoring context cancellation
func (s *Service) waitUntil(ctx context.Context, readyAt time.Time) error {
	wait := time.Until(readyAt)
	if wait <= 0 {
		return nil
	}

	s.logger.Debug().
		Dur("wait_time", wait).
		Msg("Waiting for continuation token activation")

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FetchDetails retrieves the full detail record for one place
func (s *Service) FetchDetails(ctx context.Context, placeID string) (*models.VenueDetail, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailFields)
	params.Set("language", s.config.Language)
	params.Set("key", s.config.APIKey)

	fullURL := fmt.Sprintf("%s/details/json?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build details request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: details returned status %d: %s", ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var apiResp detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode details response: %w", err)
	}

	if apiResp.Result == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlaceNotFound, placeID)
	}

	detail := convertDetail(placeID, apiResp.Result)

	s.logger.Info().
		Str("place_id", placeID).
		Str("name", detail.Name).
		Int("photo_count", len(detail.PhotoReferences)).
		Msg("Place details fetched")

	return detail, nil
}

// FetchPhoto downloads one photo binary at the configured max width.
// Returns the image bytes and the response content type.
func (s *Service) FetchPhoto(ctx context.Context, photoReference string) ([]byte, string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(s.config.PhotoMaxWidth))
	params.Set("photoreference", photoReference)
	params.Set("key", s.config.APIKey)

	fullURL := fmt.Sprintf("%s/photo?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build photo request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("photo fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read photo body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return data, contentType, nil
}

// get issues a rate-limited search request and checks the provider status.
// OK and ZERO_RESULTS are both success; anything else is ErrProviderUnavailable.
func (s *Service) get(ctx context.Context, endpoint string, params url.Values) (*searchResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	// Redact API key in logs
	s.logger.Debug().
		Str("url", fmt.Sprintf("%s%s?%s&key=***REDACTED***", s.baseURL, endpoint, params.Encode())).
		Msg("Calling Google Places API")

	params.Set("key", s.config.APIKey)
	fullURL := fmt.Sprintf("%s%s?%s", s.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: API returned status %d: %s", ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var apiResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	if apiResp.Status != "OK" && apiResp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("%w: %s - %s", ErrProviderUnavailable, apiResp.Status, apiResp.ErrorMessage)
	}

	return &apiResp, nil
}

// convertResults normalizes provider records into SearchResult values
func convertResults(results []placeResult) []models.SearchResult {
	items := make([]models.SearchResult, 0, len(results))
	for _, place := range results {
		item := models.SearchResult{
			PlaceID: place.PlaceID,
			Name:    place.Name,
			Address: place.FormattedAddress,
			Rating:  place.Rating,
		}
		// Nearby search returns vicinity instead of a formatted address
		if item.Address == "" {
			item.Address = place.Vicinity
		}
		if place.Geometry != nil && place.Geometry.Location != nil {
			item.Lat = place.Geometry.Location.Lat
			item.Lng = place.Geometry.Location.Lng
		}
		items = append(items, item)
	}
	return items
}

// convertDetail builds a VenueDetail from a provider detail record,
// resolving province and city from the address components
func convertDetail(placeID string, place *placeResult) *models.VenueDetail {
	detail := &models.VenueDetail{
		PlaceID: placeID,
		Name:    place.Name,
		Address: place.FormattedAddress,
		Phone:   place.FormattedPhoneNumber,
		Website: place.Website,
	}

	if place.Rating != nil {
		detail.Rating = *place.Rating
	}
	if place.Geometry != nil && place.Geometry.Location != nil {
		detail.Lat = place.Geometry.Location.Lat
		detail.Lng = place.Geometry.Location.Lng
	}
	if place.OpeningHours != nil {
		detail.OpeningHours = place.OpeningHours.WeekdayText
	}

	for _, comp := range place.AddressComponents {
		for _, t := range comp.Types {
			if t == componentProvince {
				detail.Province = comp.LongName
			}
			if t == componentCity {
				detail.City = comp.LongName
			}
		}
	}

	for _, p := range place.Photos {
		detail.PhotoReferences = append(detail.PhotoReferences, p.PhotoReference)
	}

	return detail
}
