package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/interfaces"
)

// SettingsHandler serves site settings HTTP requests (ad placements,
// feature toggles)
type SettingsHandler struct {
	settingsStorage interfaces.SettingsStorage
	logger          arbor.ILogger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsStorage interfaces.SettingsStorage, logger arbor.ILogger) *SettingsHandler {
	return &SettingsHandler{
		settingsStorage: settingsStorage,
		logger:          logger,
	}
}

// ListHandler handles GET /api/admin/settings
func (h *SettingsHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	settings, err := h.settingsStorage.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list settings")
		WriteError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"settings": settings,
		"count":    len(settings),
	})
}

// GetHandler handles GET /api/admin/settings/{key}
func (h *SettingsHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	key, ok := h.settingKey(w, r)
	if !ok {
		return
	}

	value, err := h.settingsStorage.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, interfaces.ErrSettingNotFound) {
			WriteError(w, http.StatusNotFound, "Setting not found")
			return
		}
		h.logger.Error().Err(err).Str("key", key).Msg("Failed to get setting")
		WriteError(w, http.StatusInternalServerError, "Failed to get setting")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"key":   key,
		"value": value,
	})
}

// SetHandler handles PUT /api/admin/settings/{key}
func (h *SettingsHandler) SetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "PUT") {
		return
	}

	key, ok := h.settingKey(w, r)
	if !ok {
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.settingsStorage.Set(r.Context(), key, req.Value); err != nil {
		h.logger.Error().Err(err).Str("key", key).Msg("Failed to store setting")
		WriteError(w, http.StatusInternalServerError, "Failed to store setting")
		return
	}

	h.logger.Info().Str("key", key).Msg("Setting updated")
	WriteJSON(w, http.StatusOK, map[string]string{
		"key":   key,
		"value": req.Value,
	})
}

// DeleteHandler handles DELETE /api/admin/settings/{key}
func (h *SettingsHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "DELETE") {
		return
	}

	key, ok := h.settingKey(w, r)
	if !ok {
		return
	}

	if err := h.settingsStorage.Delete(r.Context(), key); err != nil {
		if errors.Is(err, interfaces.ErrSettingNotFound) {
			WriteError(w, http.StatusNotFound, "Setting not found")
			return
		}
		h.logger.Error().Err(err).Str("key", key).Msg("Failed to delete setting")
		WriteError(w, http.StatusInternalServerError, "Failed to delete setting")
		return
	}

	h.logger.Info().Str("key", key).Msg("Setting deleted")
	WriteSuccess(w, "Setting deleted successfully")
}

// settingKey extracts and decodes the setting key from the request path
func (h *SettingsHandler) settingKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	encoded := strings.TrimPrefix(r.URL.Path, "/api/admin/settings/")
	key, err := url.QueryUnescape(encoded)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid key encoding")
		return "", false
	}
	if key == "" || strings.Contains(key, "/") {
		WriteError(w, http.StatusBadRequest, "Missing key parameter")
		return "", false
	}
	return key, true
}
