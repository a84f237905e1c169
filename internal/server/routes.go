package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route (import progress stream)
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// Sitemap
	mux.HandleFunc("/sitemap.xml", s.app.SitemapHandler.ServeHandler)

	// Stored venue photos
	photoDir := s.app.Config.Storage.Photos.Dir
	mux.Handle("/photos/", http.StripPrefix("/photos/", http.FileServer(http.Dir(photoDir))))

	// API routes - Provider search
	mux.HandleFunc("/api/places/search", s.app.PlacesHandler.SearchHandler)
	mux.HandleFunc("/api/places/nearby", s.app.PlacesHandler.NearbyHandler)

	// API routes - Venues (public)
	mux.HandleFunc("/api/venues", s.app.VenueHandler.ListHandler)
	mux.HandleFunc("/api/venues/top-10", s.app.VenueHandler.Top10Handler)
	mux.HandleFunc("/api/venues/", s.handleVenueRoutes) // /{province}/{city}/{slug} and /{id}/reviews

	// API routes - Admin (require token when configured)
	mux.HandleFunc("/api/admin/import", s.app.PlacesHandler.ImportHandler)
	mux.HandleFunc("/api/admin/import/all", s.app.PlacesHandler.ImportAllHandler)
	mux.HandleFunc("/api/admin/venues/", s.handleAdminVenueRoutes) // PUT/DELETE /{id}, GET /{id}/reviews
	mux.HandleFunc("/api/admin/reviews/", s.handleAdminReviewRoutes)
	mux.HandleFunc("/api/admin/settings", s.app.SettingsHandler.ListHandler)
	mux.HandleFunc("/api/admin/settings/", s.handleSettingsRoutes)
	mux.HandleFunc("/api/admin/sitemap/regenerate", s.app.SitemapHandler.RegenerateHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleVenueRoutes routes public venue subpaths:
// GET  /api/venues/{province}/{city}/{slug}
// GET  /api/venues/{id}/reviews
// POST /api/venues/{id}/reviews
func (s *Server) handleVenueRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/venues/"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 2 && parts[1] == "reviews":
		if r.Method == http.MethodPost {
			s.app.ReviewHandler.SubmitHandler(w, r)
			return
		}
		s.app.ReviewHandler.ListHandler(w, r)
	case len(parts) == 3:
		s.app.VenueHandler.GetBySlugPathHandler(w, r)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// handleAdminVenueRoutes routes admin venue subpaths:
// PUT    /api/admin/venues/{id}
// DELETE /api/admin/venues/{id}
// GET    /api/admin/venues/{id}/reviews
func (s *Server) handleAdminVenueRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/admin/venues/"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 2 && parts[1] == "reviews":
		s.app.ReviewHandler.ModerationListHandler(w, r)
	case len(parts) == 1 && parts[0] != "":
		if r.Method == http.MethodDelete {
			s.app.VenueHandler.DeleteHandler(w, r)
			return
		}
		s.app.VenueHandler.UpdateHandler(w, r)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// handleAdminReviewRoutes routes review moderation subpaths:
// POST   /api/admin/reviews/{id}/approve
// POST   /api/admin/reviews/{id}/reject
// DELETE /api/admin/reviews/{id}
func (s *Server) handleAdminReviewRoutes(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if strings.HasSuffix(path, "/approve") || strings.HasSuffix(path, "/reject") {
		s.app.ReviewHandler.ApproveHandler(w, r)
		return
	}

	s.app.ReviewHandler.DeleteHandler(w, r)
}

// handleSettingsRoutes routes /api/admin/settings/{key} by method
func (s *Server) handleSettingsRoutes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.app.SettingsHandler.GetHandler(w, r)
	case http.MethodPut:
		s.app.SettingsHandler.SetHandler(w, r)
	case http.MethodDelete:
		s.app.SettingsHandler.DeleteHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
