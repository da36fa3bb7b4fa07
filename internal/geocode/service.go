// Package geocode wraps the external geocoding service used by the map-based
// location selector. A coordinate or a free-text place query goes in; a
// structurally complete location comes out, or nothing at all on a soft
// failure.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"colabatr_backend/platform/apperr"
	"colabatr_backend/platform/config"
	"colabatr_backend/platform/logger"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrUnavailable is returned when no maps API key is configured. The feature
// degrades to a labeled disabled state, never a crash.
var ErrUnavailable = apperr.Unavailable("geocoding unavailable: maps API key not configured")

// Resolver turns coordinates or place queries into resolved locations via
// the Google Geocoding API.
type Resolver struct {
	client  *http.Client
	apiKey  string
	baseURL string
	log     *logger.Logger
}

// NewResolver creates a resolver. With an empty API key the resolver is
// disabled and every lookup returns ErrUnavailable.
func NewResolver(cfg config.GeocoderConfig, log *logger.Logger) *Resolver {
	return &Resolver{
		client:  &http.Client{Timeout: 5 * time.Second},
		apiKey:  cfg.GetMapsAPIKey(),
		baseURL: defaultBaseURL,
		log:     log,
	}
}

// Enabled reports whether a maps API key is configured.
func (r *Resolver) Enabled() bool {
	return r.apiKey != ""
}

// ReverseGeocode resolves a coordinate into a location. A lookup that comes
// back without a usable result is a soft failure: (nil, nil), selection state
// untouched, nothing surfaced to the user.
func (r *Resolver) ReverseGeocode(ctx context.Context, lat, lng float64) (*ResolvedLocation, error) {
	params := url.Values{}
	params.Add("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))
	resolved, err := r.lookup(ctx, "reverse", params)
	if err != nil || resolved == nil {
		return nil, err
	}

	// Keep the coordinate the user actually clicked, not the geocoder's
	// snapped geometry.
	resolved.Lat = lat
	resolved.Lng = lng
	return resolved, nil
}

// SearchPlace resolves a free-text place query into a location.
func (r *Resolver) SearchPlace(ctx context.Context, query string) (*ResolvedLocation, error) {
	params := url.Values{}
	params.Add("address", query)
	return r.lookup(ctx, "search", params)
}

func (r *Resolver) lookup(ctx context.Context, kind string, params url.Values) (*ResolvedLocation, error) {
	if !r.Enabled() {
		return nil, ErrUnavailable
	}

	params.Add("key", r.apiKey)
	reqURL := fmt.Sprintf("%s?%s", r.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.GeocodeLookup(kind, false, "transport_error")
		return nil, nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		r.log.GeocodeLookup(kind, false, "decode_error")
		return nil, nil
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		r.log.GeocodeLookup(kind, false, payload.Status)
		return nil, nil
	}

	resolved := extractLocation(payload.Results[0])
	r.log.GeocodeLookup(kind, true, payload.Status)
	return &resolved, nil
}

// extractLocation maps the geocoder's address-component breakdown onto the
// normalized record. locality overrides administrative_area_level_2 for the
// city because it is the more specific component.
func extractLocation(result googleResult) ResolvedLocation {
	var locality, adminArea2, state, pincode string

	for _, component := range result.AddressComponents {
		for _, componentType := range component.Types {
			switch componentType {
			case "locality":
				locality = component.LongName
			case "administrative_area_level_2":
				adminArea2 = component.LongName
			case "administrative_area_level_1":
				state = component.LongName
			case "postal_code":
				pincode = component.LongName
			}
		}
	}

	city := adminArea2
	if locality != "" {
		city = locality
	}

	if city == "" {
		city = UnknownCity
	}
	if state == "" {
		state = UnknownState
	}
	if pincode == "" {
		pincode = PincodeNotAvailable
	}

	return ResolvedLocation{
		Address: result.FormattedAddress,
		City:    city,
		State:   state,
		Pincode: pincode,
		Lat:     result.Geometry.Location.Lat,
		Lng:     result.Geometry.Location.Lng,
	}
}
