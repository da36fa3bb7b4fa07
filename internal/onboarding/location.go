// Package onboarding implements the location selection step of the signup
// flow: a searchable city list or a map-backed resolver, selection state,
// and the continue action that hands the confirmed location to the caller.
package onboarding

import (
	"fmt"

	"colabatr_backend/internal/cities"
	"colabatr_backend/internal/geocode"
)

// Coordinates is a geographic point captured by the map selector.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationRecord is the finalized location a user selected or resolved.
// A record is either unset (no selection made) or complete: city and state
// both non-empty. Partial records are never handed to callers.
type LocationRecord struct {
	City        string       `json:"city"`
	State       string       `json:"state"`
	Pincode     string       `json:"pincode"`
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Complete reports whether the record satisfies the completeness invariant.
func (r LocationRecord) Complete() bool {
	return r.City != "" && r.State != ""
}

// DisplayText is the canonical display form of a selection.
func (r LocationRecord) DisplayText() string {
	return fmt.Sprintf("%s, %s", r.City, r.State)
}

// recordFromEntry builds a record from a picked reference dataset entry.
func recordFromEntry(entry cities.Entry) LocationRecord {
	return LocationRecord{
		City:    entry.City,
		State:   entry.State,
		Pincode: entry.Pincode,
	}
}

// recordFromResolved builds a record from a geocoder resolution.
func recordFromResolved(resolved geocode.ResolvedLocation) LocationRecord {
	return LocationRecord{
		City:    resolved.City,
		State:   resolved.State,
		Pincode: resolved.Pincode,
		Address: resolved.Address,
		Coordinates: &Coordinates{
			Lat: resolved.Lat,
			Lng: resolved.Lng,
		},
	}
}
