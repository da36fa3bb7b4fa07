package geocode

// Sentinels used when the geocoder cannot supply a field. The resolved
// location is always structurally complete, even when semantically partial.
const (
	UnknownCity         = "Unknown"
	UnknownState        = "Unknown"
	PincodeNotAvailable = "not available"
)

// ReverseRequest represents the query parameters for a reverse lookup.
type ReverseRequest struct {
	Lat float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lng float64 `form:"lng" binding:"required,min=-180,max=180"`
}

// SearchRequest represents the query parameters for a free-text place search.
type SearchRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// ResolvedLocation is the normalized location produced by the resolver.
type ResolvedLocation struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Pincode string  `json:"pincode"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// googleGeocodeResponse mirrors the relevant parts of the Google Geocoding
// API payload.
type googleGeocodeResponse struct {
	Status  string         `json:"status"`
	Results []googleResult `json:"results"`
}

type googleResult struct {
	FormattedAddress  string            `json:"formatted_address"`
	AddressComponents []googleComponent `json:"address_components"`
	Geometry          googleGeometry    `json:"geometry"`
}

type googleComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

type googleGeometry struct {
	Location googleLatLng `json:"location"`
}

type googleLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
