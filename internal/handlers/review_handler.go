package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/interfaces"
	"github.com/saunagids/saunagids/internal/models"
)

// reviewRequest is the visitor review submission payload
type reviewRequest struct {
	AuthorName string `json:"author_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required,max=2000"`
}

// ReviewHandler serves review submission and moderation HTTP requests
type ReviewHandler struct {
	reviewStorage interfaces.ReviewStorage
	venueStorage  interfaces.VenueStorage
	validate      *validator.Validate
	logger        arbor.ILogger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewStorage interfaces.ReviewStorage, venueStorage interfaces.VenueStorage, logger arbor.ILogger) *ReviewHandler {
	return &ReviewHandler{
		reviewStorage: reviewStorage,
		venueStorage:  venueStorage,
		validate:      validator.New(),
		logger:        logger,
	}
}

// SubmitHandler handles POST /api/venues/{id}/reviews - visitor review
// submission. New reviews are held for moderation.
func (h *ReviewHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	venueID := reviewVenueID(r.URL.Path)
	if venueID == "" {
		WriteError(w, http.StatusBadRequest, "Missing venue ID")
		return
	}

	if _, err := h.venueStorage.GetByID(r.Context(), venueID); err != nil {
		if errors.Is(err, interfaces.ErrVenueNotFound) {
			WriteError(w, http.StatusNotFound, "Venue not found")
			return
		}
		h.logger.Error().Err(err).Str("venue_id", venueID).Msg("Failed to get venue for review")
		WriteError(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid review: "+err.Error())
		return
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		VenueID:    venueID,
		AuthorName: req.AuthorName,
		Email:      req.Email,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Approved:   false,
		CreatedAt:  time.Now(),
	}

	if err := h.reviewStorage.Add(r.Context(), review); err != nil {
		h.logger.Error().Err(err).Str("venue_id", venueID).Msg("Failed to store review")
		WriteError(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	h.logger.Info().Str("venue_id", venueID).Str("review_id", review.ID).Msg("Review submitted for moderation")
	WriteJSON(w, http.StatusCreated, review)
}

// ListHandler handles GET /api/venues/{id}/reviews - approved reviews only
func (h *ReviewHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	venueID := reviewVenueID(r.URL.Path)
	if venueID == "" {
		WriteError(w, http.StatusBadRequest, "Missing venue ID")
		return
	}

	reviews, err := h.reviewStorage.ListForVenue(r.Context(), venueID, true)
	if err != nil {
		h.logger.Error().Err(err).Str("venue_id", venueID).Msg("Failed to list reviews")
		WriteError(w, http.StatusInternalServerError, "Failed to list reviews")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// ModerationListHandler handles GET /api/admin/venues/{id}/reviews - all
// reviews for a venue including pending ones
func (h *ReviewHandler) ModerationListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	venueID := reviewVenueID(r.URL.Path)
	if venueID == "" {
		WriteError(w, http.StatusBadRequest, "Missing venue ID")
		return
	}

	reviews, err := h.reviewStorage.ListForVenue(r.Context(), venueID, false)
	if err != nil {
		h.logger.Error().Err(err).Str("venue_id", venueID).Msg("Failed to list reviews for moderation")
		WriteError(w, http.StatusInternalServerError, "Failed to list reviews")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// ApproveHandler handles POST /api/admin/reviews/{id}/approve and
// POST /api/admin/reviews/{id}/reject
func (h *ReviewHandler) ApproveHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/reviews/")
	var reviewID string
	var approved bool
	switch {
	case strings.HasSuffix(rest, "/approve"):
		reviewID = strings.TrimSuffix(rest, "/approve")
		approved = true
	case strings.HasSuffix(rest, "/reject"):
		reviewID = strings.TrimSuffix(rest, "/reject")
		approved = false
	default:
		WriteError(w, http.StatusBadRequest, "Expected /approve or /reject")
		return
	}
	if reviewID == "" {
		WriteError(w, http.StatusBadRequest, "Missing review ID")
		return
	}

	review, err := h.reviewStorage.SetApproved(r.Context(), reviewID, approved)
	if err != nil {
		if errors.Is(err, interfaces.ErrReviewNotFound) {
			WriteError(w, http.StatusNotFound, "Review not found")
			return
		}
		h.logger.Error().Err(err).Str("review_id", reviewID).Msg("Failed to moderate review")
		WriteError(w, http.StatusInternalServerError, "Failed to moderate review")
		return
	}

	h.refreshVenueReviewCount(r, review.VenueID)

	h.logger.Info().
		Str("review_id", reviewID).
		Bool("approved", approved).
		Msg("Review moderated")
	WriteJSON(w, http.StatusOK, review)
}

// DeleteHandler handles DELETE /api/admin/reviews/{id}
func (h *ReviewHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "DELETE") {
		return
	}

	reviewID := strings.TrimPrefix(r.URL.Path, "/api/admin/reviews/")
	if reviewID == "" || strings.Contains(reviewID, "/") {
		WriteError(w, http.StatusBadRequest, "Missing review ID")
		return
	}

	if err := h.reviewStorage.Delete(r.Context(), reviewID); err != nil {
		if errors.Is(err, interfaces.ErrReviewNotFound) {
			WriteError(w, http.StatusNotFound, "Review not found")
			return
		}
		h.logger.Error().Err(err).Str("review_id", reviewID).Msg("Failed to delete review")
		WriteError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	h.logger.Info().Str("review_id", reviewID).Msg("Review deleted")
	WriteSuccess(w, "Review deleted successfully")
}

// refreshVenueReviewCount recomputes a venue's approved review count after a
// moderation change. Best-effort: the count catches up on the next change if
// this fails.
func (h *ReviewHandler) refreshVenueReviewCount(r *http.Request, venueID string) {
	venue, err := h.venueStorage.GetByID(r.Context(), venueID)
	if err != nil {
		h.logger.Warn().Err(err).Str("venue_id", venueID).Msg("Failed to load venue for review count refresh")
		return
	}

	approved, err := h.reviewStorage.ListForVenue(r.Context(), venueID, true)
	if err != nil {
		h.logger.Warn().Err(err).Str("venue_id", venueID).Msg("Failed to count approved reviews")
		return
	}

	venue.ReviewCount = len(approved)
	venue.UpdatedAt = time.Now()
	if err := h.venueStorage.Update(r.Context(), venue); err != nil {
		h.logger.Warn().Err(err).Str("venue_id", venueID).Msg("Failed to update venue review count")
	}
}

// reviewVenueID extracts the venue ID from a reviews path like
// /api/venues/{id}/reviews or /api/admin/venues/{id}/reviews
func reviewVenueID(path string) string {
	path = strings.TrimPrefix(path, "/api/admin")
	path = strings.TrimPrefix(path, "/api/venues/")
	venueID, ok := strings.CutSuffix(path, "/reviews")
	if !ok {
		return ""
	}
	if venueID == "" || strings.Contains(venueID, "/") {
		return ""
	}
	return venueID
}
