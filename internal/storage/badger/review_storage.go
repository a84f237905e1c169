package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/saunagids/saunagids/internal/interfaces"
	"github.com/saunagids/saunagids/internal/models"
)

// ReviewStorage implements the ReviewStorage interface for Badger
type ReviewStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewReviewStorage creates a new ReviewStorage instance
func NewReviewStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ReviewStorage {
	return &ReviewStorage{
		db:     db,
		logger: logger,
	}
}

// Add stores a new review, unapproved by default
func (s *ReviewStorage) Add(ctx context.Context, review *models.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	if err := s.db.Store().Insert(review.ID, review); err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	s.logger.Debug().
		Str("review_id", review.ID).
		Str("venue_id", review.VenueID).
		Msg("Review stored for moderation")

	return nil
}

// ListForVenue returns reviews for a venue, newest first
func (s *ReviewStorage) ListForVenue(ctx context.Context, venueID string, approvedOnly bool) ([]*models.Review, error) {
	query := badgerhold.Where("VenueID").Eq(venueID)
	if approvedOnly {
		query = query.And("Approved").Eq(true)
	}

	var reviews []models.Review
	if err := s.db.Store().Find(&reviews, query.SortBy("CreatedAt").Reverse()); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	result := make([]*models.Review, len(reviews))
	for i := range reviews {
		result[i] = &reviews[i]
	}
	return result, nil
}

// SetApproved updates the moderation flag and returns the updated review
func (s *ReviewStorage) SetApproved(ctx context.Context, reviewID string, approved bool) (*models.Review, error) {
	var review models.Review
	err := s.db.Store().Get(reviewID, &review)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	review.Approved = approved
	if err := s.db.Store().Update(reviewID, &review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return &review, nil
}

// Delete removes a review
func (s *ReviewStorage) Delete(ctx context.Context, reviewID string) error {
	err := s.db.Store().Delete(reviewID, &models.Review{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrReviewNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
