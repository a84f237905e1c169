package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/interfaces"
)

// VenueHandler serves venue listing and management HTTP requests
type VenueHandler struct {
	venueStorage interfaces.VenueStorage
	logger       arbor.ILogger
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(venueStorage interfaces.VenueStorage, logger arbor.ILogger) *VenueHandler {
	return &VenueHandler{
		venueStorage: venueStorage,
		logger:       logger,
	}
}

// ListHandler handles GET /api/venues?province={slug}&city={slug}
func (h *VenueHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit, offset := GetPaginationParams(r)
	filter := interfaces.VenueFilter{
		ProvinceSlug: r.URL.Query().Get("province"),
		CitySlug:     r.URL.Query().Get("city"),
		Limit:        limit,
		Offset:       offset,
	}

	venues, err := h.venueStorage.List(r.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list venues")
		WriteError(w, http.StatusInternalServerError, "Failed to list venues")
		return
	}

	total, err := h.venueStorage.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count venues")
		WriteError(w, http.StatusInternalServerError, "Failed to list venues")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"venues": venues,
		"count":  len(venues),
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetBySlugPathHandler handles GET /api/venues/{province}/{city}/{slug}
func (h *VenueHandler) GetBySlugPathHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/venues/"), "/"), "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		WriteError(w, http.StatusBadRequest, "Expected path /api/venues/{province}/{city}/{slug}")
		return
	}

	venue, err := h.venueStorage.GetBySlugPath(r.Context(), parts[0], parts[1], parts[2])
	if err != nil {
		if errors.Is(err, interfaces.ErrVenueNotFound) {
			WriteError(w, http.StatusNotFound, "Venue not found")
			return
		}
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to get venue")
		WriteError(w, http.StatusInternalServerError, "Failed to get venue")
		return
	}

	WriteJSON(w, http.StatusOK, venue)
}

// Top10Handler handles GET /api/venues/top-10
func (h *VenueHandler) Top10Handler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	venues, err := h.venueStorage.ListTop10(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list top-10 venues")
		WriteError(w, http.StatusInternalServerError, "Failed to list top-10 venues")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"venues": venues,
		"count":  len(venues),
	})
}

// UpdateHandler handles PUT /api/admin/venues/{id} - partial venue update
func (h *VenueHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "PUT") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/admin/venues/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Missing venue ID")
		return
	}

	venue, err := h.venueStorage.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrVenueNotFound) {
			WriteError(w, http.StatusNotFound, "Venue not found")
			return
		}
		h.logger.Error().Err(err).Str("venue_id", id).Msg("Failed to get venue")
		WriteError(w, http.StatusInternalServerError, "Failed to get venue")
		return
	}

	var req struct {
		Description *string `json:"description"`
		Phone       *string `json:"phone"`
		Website     *string `json:"website"`
		IsTop10     *bool   `json:"is_top10"`
		Top10Order  *int    `json:"top10_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Description != nil {
		venue.Description = *req.Description
	}
	if req.Phone != nil {
		venue.Phone = *req.Phone
	}
	if req.Website != nil {
		venue.Website = *req.Website
	}
	if req.IsTop10 != nil {
		venue.IsTop10 = *req.IsTop10
		if !venue.IsTop10 {
			venue.Top10Order = 0
		}
	}
	if req.Top10Order != nil {
		venue.Top10Order = *req.Top10Order
	}
	venue.UpdatedAt = time.Now()

	if err := h.venueStorage.Update(r.Context(), venue); err != nil {
		h.logger.Error().Err(err).Str("venue_id", id).Msg("Failed to update venue")
		WriteError(w, http.StatusInternalServerError, "Failed to update venue")
		return
	}

	h.logger.Info().Str("venue_id", id).Msg("Venue updated")
	WriteJSON(w, http.StatusOK, venue)
}

// DeleteHandler handles DELETE /api/admin/venues/{id}
func (h *VenueHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "DELETE") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/admin/venues/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Missing venue ID")
		return
	}

	if err := h.venueStorage.Delete(r.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrVenueNotFound) {
			WriteError(w, http.StatusNotFound, "Venue not found")
			return
		}
		h.logger.Error().Err(err).Str("venue_id", id).Msg("Failed to delete venue")
		WriteError(w, http.StatusInternalServerError, "Failed to delete venue")
		return
	}

	h.logger.Info().Str("venue_id", id).Msg("Venue deleted")
	WriteSuccess(w, "Venue deleted successfully")
}
