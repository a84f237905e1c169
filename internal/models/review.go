package models

import "time"

// Review is a visitor review for a venue. Reviews are held for moderation
// and only approved reviews are shown publicly or counted in the rating.
type Review struct {
	ID         string    `json:"id" badgerhold:"key"`
	VenueID    string    `json:"venue_id" badgerholdIndex:"VenueID"`
	AuthorName string    `json:"author_name"`
	Email      string    `json:"email,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
}
