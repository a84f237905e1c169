package handlers

import (
	"context"
	"net/http"

	"github.com/ternarybob/arbor"
)

// SitemapGenerator builds the sitemap XML from the current venue set
type SitemapGenerator interface {
	Generate(ctx context.Context) ([]byte, error)
	WriteFile(ctx context.Context) error
}

// SitemapHandler serves the sitemap over HTTP and exposes an admin trigger
// for immediate regeneration
type SitemapHandler struct {
	generator SitemapGenerator
	logger    arbor.ILogger
}

// NewSitemapHandler creates a new sitemap handler
func NewSitemapHandler(generator SitemapGenerator, logger arbor.ILogger) *SitemapHandler {
	return &SitemapHandler{
		generator: generator,
		logger:    logger,
	}
}

// ServeHandler handles GET /sitemap.xml - always generated from the live
// venue set so it never lags behind the scheduled file on disk
func (h *SitemapHandler) ServeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	data, err := h.generator.Generate(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to generate sitemap")
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// RegenerateHandler handles POST /api/admin/sitemap/regenerate
func (h *SitemapHandler) RegenerateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := h.generator.WriteFile(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Failed to regenerate sitemap")
		WriteError(w, http.StatusInternalServerError, "Failed to regenerate sitemap")
		return
	}

	WriteSuccess(w, "Sitemap regenerated successfully")
}
