package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/common"
	"github.com/saunagids/saunagids/internal/interfaces"
	"github.com/saunagids/saunagids/internal/models"
	"github.com/saunagids/saunagids/internal/services/places"
)

type stubPlacesService struct {
	searchResults []models.SearchResult
	searchErr     error
	nearbyResults []models.SearchResult
	nearbyErr     error
}

func (s *stubPlacesService) SearchText(ctx context.Context, query string) ([]models.SearchResult, error) {
	return s.searchResults, s.searchErr
}

func (s *stubPlacesService) SearchNearby(ctx context.Context, center interfaces.LatLng, radiusMeters int, pageToken string) (*interfaces.NearbyPage, error) {
	return nil, nil
}

func (s *stubPlacesService) SearchNearbyPaged(ctx context.Context, center interfaces.LatLng, radiusMeters, maxPages int) ([]models.SearchResult, error) {
	return s.nearbyResults, s.nearbyErr
}

func (s *stubPlacesService) FetchDetails(ctx context.Context, placeID string) (*models.VenueDetail, error) {
	return nil, places.ErrPlaceNotFound
}

func (s *stubPlacesService) FetchPhoto(ctx context.Context, photoReference string) ([]byte, string, error) {
	return nil, "", nil
}

type stubImportService struct {
	outcome     models.ImportOutcome
	batchResult *models.BatchImportResult
	importedIDs []string
}

func (s *stubImportService) ImportPlace(ctx context.Context, placeID string) models.ImportOutcome {
	s.importedIDs = append(s.importedIDs, placeID)
	return s.outcome
}

func (s *stubImportService) ImportAll(ctx context.Context, placeIDs []string) *models.BatchImportResult {
	s.importedIDs = append(s.importedIDs, placeIDs...)
	return s.batchResult
}

func placesTestConfig() *common.PlacesConfig {
	return &common.PlacesConfig{MaxPages: 3}
}

func TestPlacesSearchHandler(t *testing.T) {
	svc := &stubPlacesService{
		searchResults: []models.SearchResult{{PlaceID: "p1", Name: "Sauna De Bron"}},
	}
	h := NewPlacesHandler(svc, &stubImportService{}, placesTestConfig(), arbor.NewLogger())

	req := httptest.NewRequest("GET", "/api/places/search?q=Amsterdam", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count   int                   `json:"count"`
		Results []models.SearchResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "p1", resp.Results[0].PlaceID)
}

func TestPlacesSearchHandlerMissingQuery(t *testing.T) {
	h := NewPlacesHandler(&stubPlacesService{}, &stubImportService{}, placesTestConfig(), arbor.NewLogger())

	req := httptest.NewRequest("GET", "/api/places/search", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlacesSearchHandlerProviderUnavailable(t *testing.T) {
	svc := &stubPlacesService{searchErr: places.ErrProviderUnavailable}
	h := NewPlacesHandler(svc, &stubImportService{}, placesTestConfig(), arbor.NewLogger())

	req := httptest.NewRequest("GET", "/api/places/search?q=Amsterdam", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPlacesNearbyHandlerInvalidCoordinates(t *testing.T) {
	h := NewPlacesHandler(&stubPlacesService{}, &stubImportService{}, placesTestConfig(), arbor.NewLogger())

	req := httptest.NewRequest("GET", "/api/places/nearby?lat=abc&lng=4.9", nil)
	rec := httptest.NewRecorder()
	h.NearbyHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlacesNearbyHandler(t *testing.T) {
	svc := &stubPlacesService{
		nearbyResults: []models.SearchResult{{PlaceID: "p1"}, {PlaceID: "p2"}},
	}
	h := NewPlacesHandler(svc, &stubImportService{}, placesTestConfig(), arbor.NewLogger())

	req := httptest.NewRequest("GET", "/api/places/nearby?lat=52.37&lng=4.89&radius=10000", nil)
	rec := httptest.NewRecorder()
	h.NearbyHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestImportHandler(t *testing.T) {
	importSvc := &stubImportService{
		outcome: models.ImportOutcome{PlaceID: "p1", Status: models.ImportStatusImported},
	}
	h := NewPlacesHandler(&stubPlacesService{}, importSvc, placesTestConfig(), arbor.NewLogger())

	body, _ := json.Marshal(map[string]string{"place_id": "p1"})
	req := httptest.NewRequest("POST", "/api/admin/import", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ImportHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"p1"}, importSvc.importedIDs)

	var outcome models.ImportOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, models.ImportStatusImported, outcome.Status)
}

func TestImportHandlerMissingPlaceID(t *testing.T) {
	importSvc := &stubImportService{}
	h := NewPlacesHandler(&stubPlacesService{}, importSvc, placesTestConfig(), arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/admin/import", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	h.ImportHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, importSvc.importedIDs)
}

func TestImportAllHandler(t *testing.T) {
	importSvc := &stubImportService{
		batchResult: &models.BatchImportResult{ImportedCount: 2, Total: 3, SkippedIDs: []string{"p2"}},
	}
	h := NewPlacesHandler(&stubPlacesService{}, importSvc, placesTestConfig(), arbor.NewLogger())

	body, _ := json.Marshal(map[string][]string{"place_ids": {"p1", "p2", "p3"}})
	req := httptest.NewRequest("POST", "/api/admin/import/all", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ImportAllHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"p1", "p2", "p3"}, importSvc.importedIDs)

	var result models.BatchImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.ImportedCount)
	assert.Equal(t, 3, result.Total)
}

func TestImportAllHandlerEmptyList(t *testing.T) {
	h := NewPlacesHandler(&stubPlacesService{}, &stubImportService{}, placesTestConfig(), arbor.NewLogger())

	body, _ := json.Marshal(map[string][]string{"place_ids": {}})
	req := httptest.NewRequest("POST", "/api/admin/import/all", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ImportAllHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
