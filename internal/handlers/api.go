package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/common"
	"github.com/saunagids/saunagids/internal/interfaces"
)

// APIHandler serves system endpoints (version, health)
type APIHandler struct {
	storageManager interfaces.StorageManager
	logger         arbor.ILogger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(storageManager interfaces.StorageManager, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		storageManager: storageManager,
		logger:         logger,
	}
}

// VersionHandler handles GET /api/version
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// HealthHandler handles GET /api/health
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	venueCount, err := h.storageManager.VenueStorage().Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Health check storage probe failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unhealthy",
			"error":  "storage unavailable",
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"venue_count": venueCount,
	})
}

// NotFoundHandler handles unmatched /api/ routes
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Endpoint not found")
}
