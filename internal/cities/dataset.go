// Package cities holds the static city/state/pincode reference dataset and
// the substring filter used by the location onboarding step.
package cities

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/cities.json
var rawDataset []byte

// Entry is one record of the reference dataset. Entries are immutable after
// load. City names are not unique across states; identity for selection
// purposes is the full tuple.
type Entry struct {
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	District string `json:"district,omitempty"`
}

// Dataset is the ordered, read-only collection of reference entries.
type Dataset struct {
	entries []Entry
}

// LoadDataset decodes the embedded reference data. Called once at startup.
func LoadDataset() (*Dataset, error) {
	var entries []Entry
	if err := json.Unmarshal(rawDataset, &entries); err != nil {
		return nil, fmt.Errorf("decode cities dataset: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("cities dataset is empty")
	}
	for i, entry := range entries {
		if entry.City == "" || entry.State == "" {
			return nil, fmt.Errorf("cities dataset entry %d is missing city or state", i)
		}
	}
	return &Dataset{entries: entries}, nil
}

// NewDataset wraps an already-validated slice of entries.
func NewDataset(entries []Entry) *Dataset {
	return &Dataset{entries: entries}
}

// Entries returns the full ordered dataset. Callers must not mutate it.
func (d *Dataset) Entries() []Entry {
	return d.entries
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	return len(d.entries)
}
