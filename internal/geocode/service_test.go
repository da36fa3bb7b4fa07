package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"colabatr_backend/platform/logger"
)

func newTestResolver(baseURL string) *Resolver {
	return &Resolver{
		client:  &http.Client{Timeout: time.Second},
		apiKey:  "test-key",
		baseURL: baseURL,
		log:     logger.New("development"),
	}
}

func geocodeServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)
	return server
}

const bandraPayload = `{
	"status": "OK",
	"results": [{
		"formatted_address": "Bandra West, Mumbai, Maharashtra 400050, India",
		"address_components": [
			{"long_name": "Bandra", "types": ["locality", "political"]},
			{"long_name": "Mumbai Suburban", "types": ["administrative_area_level_2", "political"]},
			{"long_name": "Maharashtra", "types": ["administrative_area_level_1", "political"]},
			{"long_name": "400050", "types": ["postal_code"]}
		],
		"geometry": {"location": {"lat": 19.0596, "lng": 72.8295}}
	}]
}`

func TestReverseGeocodeLocalityOverridesDistrict(t *testing.T) {
	server := geocodeServer(t, bandraPayload)
	resolver := newTestResolver(server.URL)

	resolved, err := resolver.ReverseGeocode(context.Background(), 19.06, 72.83)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if resolved == nil {
		t.Fatal("expected a resolved location")
	}
	if resolved.City != "Bandra" {
		t.Errorf("city = %q, want the locality over the district", resolved.City)
	}
	if resolved.State != "Maharashtra" {
		t.Errorf("state = %q, want Maharashtra", resolved.State)
	}
	if resolved.Pincode != "400050" {
		t.Errorf("pincode = %q, want 400050", resolved.Pincode)
	}
	// The clicked coordinate is kept, not the geocoder's snapped geometry.
	if resolved.Lat != 19.06 || resolved.Lng != 72.83 {
		t.Errorf("coordinates = (%v, %v), want the clicked point", resolved.Lat, resolved.Lng)
	}
}

func TestSearchPlaceKeepsGeometryCoordinates(t *testing.T) {
	server := geocodeServer(t, bandraPayload)
	resolver := newTestResolver(server.URL)

	resolved, err := resolver.SearchPlace(context.Background(), "Bandra West")
	if err != nil {
		t.Fatalf("SearchPlace: %v", err)
	}
	if resolved == nil {
		t.Fatal("expected a resolved location")
	}
	if resolved.Lat != 19.0596 || resolved.Lng != 72.8295 {
		t.Errorf("coordinates = (%v, %v), want the geocoder geometry", resolved.Lat, resolved.Lng)
	}
}

func TestExtractLocationSentinels(t *testing.T) {
	tests := []struct {
		name        string
		components  []googleComponent
		wantCity    string
		wantState   string
		wantPincode string
	}{
		{
			name: "district fallback when no locality",
			components: []googleComponent{
				{LongName: "Mumbai Suburban", Types: []string{"administrative_area_level_2"}},
				{LongName: "Maharashtra", Types: []string{"administrative_area_level_1"}},
			},
			wantCity:    "Mumbai Suburban",
			wantState:   "Maharashtra",
			wantPincode: PincodeNotAvailable,
		},
		{
			name:        "nothing usable",
			components:  []googleComponent{{LongName: "India", Types: []string{"country"}}},
			wantCity:    UnknownCity,
			wantState:   UnknownState,
			wantPincode: PincodeNotAvailable,
		},
	}

	for _, tc := range tests {
		resolved := extractLocation(googleResult{AddressComponents: tc.components})
		if resolved.City != tc.wantCity {
			t.Errorf("%s: city = %q, want %q", tc.name, resolved.City, tc.wantCity)
		}
		if resolved.State != tc.wantState {
			t.Errorf("%s: state = %q, want %q", tc.name, resolved.State, tc.wantState)
		}
		if resolved.Pincode != tc.wantPincode {
			t.Errorf("%s: pincode = %q, want %q", tc.name, resolved.Pincode, tc.wantPincode)
		}
	}
}

func TestLookupSoftFailures(t *testing.T) {
	payloads := map[string]string{
		"zero results": `{"status": "ZERO_RESULTS", "results": []}`,
		"denied":       `{"status": "REQUEST_DENIED", "results": []}`,
		"garbage body": `not json at all`,
	}

	for name, payload := range payloads {
		server := geocodeServer(t, payload)
		resolver := newTestResolver(server.URL)

		resolved, err := resolver.ReverseGeocode(context.Background(), 19.07, 72.87)
		if err != nil {
			t.Errorf("%s: err = %v, soft failures must not surface errors", name, err)
		}
		if resolved != nil {
			t.Errorf("%s: resolved = %+v, want nil", name, resolved)
		}
	}
}

func TestLookupTransportFailureIsSoft(t *testing.T) {
	server := geocodeServer(t, "{}")
	resolver := newTestResolver(server.URL)
	server.Close()

	resolved, err := resolver.ReverseGeocode(context.Background(), 19.07, 72.87)
	if err != nil {
		t.Errorf("transport failure must be soft, got err = %v", err)
	}
	if resolved != nil {
		t.Errorf("resolved = %+v, want nil", resolved)
	}
}

func TestResolverDisabledWithoutAPIKey(t *testing.T) {
	resolver := newTestResolver("http://unused.invalid")
	resolver.apiKey = ""

	if resolver.Enabled() {
		t.Fatal("resolver without an API key must report disabled")
	}

	_, err := resolver.ReverseGeocode(context.Background(), 19.07, 72.87)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
