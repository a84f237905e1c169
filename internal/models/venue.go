package models

import "time"

// Venue is a sauna/wellness location stored by the system.
// The combination (ProvinceSlug, CitySlug, Slug) is unique, as is GooglePlaceID.
type Venue struct {
	ID            string    `json:"id" badgerhold:"key"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Address       string    `json:"address"`
	Province      string    `json:"provincie"`
	ProvinceSlug  string    `json:"provincie_slug" badgerholdIndex:"ProvinceSlug"`
	City          string    `json:"plaatsnaam"`
	CitySlug      string    `json:"plaatsnaam_slug" badgerholdIndex:"CitySlug"`
	Phone         string    `json:"phone,omitempty"`
	Website       string    `json:"website,omitempty"`
	Description   string    `json:"description,omitempty"`
	OpeningHours  []string  `json:"opening_hours,omitempty"`
	GooglePlaceID string    `json:"google_place_id,omitempty" badgerholdIndex:"GooglePlaceID"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	PhotoURLs     []string  `json:"photo_urls,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	ReviewCount   int       `json:"review_count"`
	IsTop10       bool      `json:"is_top10"`
	Top10Order    int       `json:"top10_order,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SlugPath returns the unique province/city/venue slug triple used as the
// canonical identifier and URL path of a venue.
func (v *Venue) SlugPath() string {
	return v.ProvinceSlug + "/" + v.CitySlug + "/" + v.Slug
}

// SearchResult is a candidate venue returned by a provider search.
// It lives only for the duration of one request.
type SearchResult struct {
	PlaceID string   `json:"place_id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Rating  *float64 `json:"rating,omitempty"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
}

// VenueDetail is the intermediate shape built from a provider detail
// response before it is turned into a Venue.
type VenueDetail struct {
	PlaceID         string
	Name            string
	Address         string
	Phone           string
	Website         string
	OpeningHours    []string
	Lat             float64
	Lng             float64
	Province        string
	City            string
	Rating          float64
	PhotoReferences []string
}

// ImportStatus is the tri-state outcome of importing one place
type ImportStatus string

const (
	ImportStatusImported  ImportStatus = "imported"
	ImportStatusDuplicate ImportStatus = "duplicate"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportOutcome reports the result of importing a single place
type ImportOutcome struct {
	PlaceID string       `json:"place_id"`
	Status  ImportStatus `json:"status"`
	Venue   *Venue       `json:"venue,omitempty"`
	Message string       `json:"message,omitempty"`
}

// BatchImportResult aggregates a sequential bulk import
type BatchImportResult struct {
	ImportedCount int             `json:"imported_count"`
	Total         int             `json:"total"`
	SkippedIDs    []string        `json:"skipped_ids,omitempty"`
	Outcomes      []ImportOutcome `json:"outcomes"`
}

// ImportProgress is published after each item of a batch import
type ImportProgress struct {
	Current int          `json:"current"`
	Total   int          `json:"total"`
	PlaceID string       `json:"place_id"`
	Status  ImportStatus `json:"status"`
	Name    string       `json:"name,omitempty"`
}
