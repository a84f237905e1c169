package places

// searchResponse represents a Google Places Text Search or Nearby Search
// API response. Both endpoints share the same result shape.
type searchResponse struct {
	HTMLAttributions []string      `json:"html_attributions"`
	Results          []placeResult `json:"results"`
	Status           string        `json:"status"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	NextPageToken    string        `json:"next_page_token,omitempty"`
}

// detailsResponse represents a Google Place Details API response
type detailsResponse struct {
	Result       *placeResult `json:"result"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

// placeResult represents a single place from the Google Places API
type placeResult struct {
	PlaceID              string             `json:"place_id"`
	Name                 string             `json:"name"`
	FormattedAddress     string             `json:"formatted_address,omitempty"`
	FormattedPhoneNumber string             `json:"formatted_phone_number,omitempty"`
	Website              string             `json:"website,omitempty"`
	Vicinity             string             `json:"vicinity,omitempty"`
	Geometry             *geometry          `json:"geometry,omitempty"`
	OpeningHours         *openingHours      `json:"opening_hours,omitempty"`
	Photos               []photo            `json:"photos,omitempty"`
	Rating               *float64           `json:"rating,omitempty"`
	AddressComponents    []addressComponent `json:"address_components,omitempty"`
	Types                []string           `json:"types,omitempty"`
}

// geometry represents the geometry information of a place
type geometry struct {
	Location *latLng `json:"location,omitempty"`
}

// latLng represents a geographic coordinate
type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// openingHours represents the opening hours of a place
type openingHours struct {
	OpenNow     bool     `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// photo represents a place photo reference
type photo struct {
	Height         int    `json:"height"`
	Width          int    `json:"width"`
	PhotoReference string `json:"photo_reference"`
}

// addressComponent represents one component of a place address
type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

const (
	componentProvince = "administrative_area_level_1"
	componentCity     = "locality"
)
