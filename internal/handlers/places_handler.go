package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/common"
	"github.com/saunagids/saunagids/internal/interfaces"
	"github.com/saunagids/saunagids/internal/services/places"
)

// PlacesHandler serves provider search and import HTTP requests
type PlacesHandler struct {
	placesService interfaces.PlacesService
	importService interfaces.ImportService
	config        *common.PlacesConfig
	logger        arbor.ILogger
}

// NewPlacesHandler creates a new places handler
func NewPlacesHandler(placesService interfaces.PlacesService, importService interfaces.ImportService, config *common.PlacesConfig, logger arbor.ILogger) *PlacesHandler {
	return &PlacesHandler{
		placesService: placesService,
		importService: importService,
		config:        config,
		logger:        logger,
	}
}

// SearchHandler handles GET /api/places/search?q={query}
func (h *PlacesHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Missing query parameter 'q'")
		return
	}

	results, err := h.placesService.SearchText(r.Context(), query)
	if err != nil {
		h.writeProviderError(w, err, "Text search failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

// NearbyHandler handles GET /api/places/nearby?lat={lat}&lng={lng}&radius={m}
// It accumulates all result pages before responding.
func (h *PlacesHandler) NearbyHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid or missing 'lat' parameter")
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid or missing 'lng' parameter")
		return
	}

	radius := 5000
	if radiusStr := r.URL.Query().Get("radius"); radiusStr != "" {
		radius, err = strconv.Atoi(radiusStr)
		if err != nil || radius <= 0 || radius > 50000 {
			WriteError(w, http.StatusBadRequest, "Invalid 'radius' parameter")
			return
		}
	}

	results, err := h.placesService.SearchNearbyPaged(r.Context(), interfaces.LatLng{Lat: lat, Lng: lng}, radius, h.config.MaxPages)
	if err != nil {
		h.writeProviderError(w, err, "Nearby search failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

// ImportHandler handles POST /api/admin/import - imports a single place
func (h *PlacesHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		PlaceID string `json:"place_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlaceID == "" {
		WriteError(w, http.StatusBadRequest, "Missing 'place_id' field")
		return
	}

	outcome := h.importService.ImportPlace(r.Context(), req.PlaceID)
	WriteJSON(w, http.StatusOK, outcome)
}

// ImportAllHandler handles POST /api/admin/import/all - imports a batch of
// places sequentially. The response is written after the whole batch finishes;
// per-item progress is streamed over the WebSocket.
func (h *PlacesHandler) ImportAllHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		PlaceIDs []string `json:"place_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.PlaceIDs) == 0 {
		WriteError(w, http.StatusBadRequest, "Missing 'place_ids' field")
		return
	}

	h.logger.Info().Int("count", len(req.PlaceIDs)).Msg("Batch import requested")

	result := h.importService.ImportAll(r.Context(), req.PlaceIDs)
	WriteJSON(w, http.StatusOK, result)
}

// writeProviderError maps provider errors to HTTP status codes
func (h *PlacesHandler) writeProviderError(w http.ResponseWriter, err error, message string) {
	h.logger.Error().Err(err).Msg(message)
	if errors.Is(err, places.ErrProviderUnavailable) {
		WriteError(w, http.StatusBadGateway, message)
		return
	}
	WriteError(w, http.StatusInternalServerError, message)
}
