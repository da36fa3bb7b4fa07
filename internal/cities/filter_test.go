package cities

import (
	"reflect"
	"strings"
	"testing"
)

func testEntries() []Entry {
	return []Entry{
		{City: "Mumbai", State: "Maharashtra", Pincode: "400001"},
		{City: "Pune", State: "Maharashtra", Pincode: "411001"},
		{City: "Delhi", State: "Delhi", Pincode: "110001"},
	}
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	entries := testEntries()

	for _, query := range []string{"", "   ", "\t"} {
		got := Filter(entries, query)
		if !reflect.DeepEqual(got, entries) {
			t.Errorf("Filter(entries, %q) = %v, want unchanged dataset", query, got)
		}
	}
}

func TestFilterMatchesCityOrState(t *testing.T) {
	entries := testEntries()

	tests := []struct {
		query string
		want  []string // city names, in dataset order
	}{
		{"mah", []string{"Mumbai", "Pune"}},        // matches on state
		{"MAH", []string{"Mumbai", "Pune"}},        // case-insensitive
		{"pun", []string{"Pune"}},                  // matches on city
		{"delhi", []string{"Delhi"}},               // city and state both match
		{"  mum ", []string{"Mumbai"}},             // query is trimmed
		{"xyz", []string{}},                        // no matches is a valid state
	}

	for _, tc := range tests {
		got := Filter(entries, tc.query)
		cityNames := make([]string, 0, len(got))
		for _, entry := range got {
			cityNames = append(cityNames, entry.City)
		}
		if !reflect.DeepEqual(cityNames, tc.want) {
			t.Errorf("Filter(entries, %q) cities = %v, want %v", tc.query, cityNames, tc.want)
		}
	}
}

func TestFilterPreservesOrderAndIsSubsequence(t *testing.T) {
	dataset, err := LoadDataset()
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	entries := dataset.Entries()

	for _, query := range []string{"a", "ba", "pradesh", "ai"} {
		got := Filter(entries, query)

		// Every result must appear in the input, in the same relative order.
		cursor := 0
		for _, match := range got {
			found := false
			for ; cursor < len(entries); cursor++ {
				if entries[cursor] == match {
					found = true
					cursor++
					break
				}
			}
			if !found {
				t.Fatalf("Filter(%q): %v is not an order-preserving subsequence member", query, match)
			}
		}
	}
}

func TestFilterMonotonicNarrowing(t *testing.T) {
	dataset, err := LoadDataset()
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	entries := dataset.Entries()

	// Typing a longer query can only shrink the result set.
	prefixes := []string{"m", "ma", "mah", "maha"}
	var previous []Entry
	for i, query := range prefixes {
		got := Filter(entries, query)
		if i > 0 {
			inPrevious := make(map[Entry]bool, len(previous))
			for _, entry := range previous {
				inPrevious[entry] = true
			}
			for _, entry := range got {
				if !inPrevious[entry] {
					t.Errorf("Filter(%q) returned %v which Filter(%q) did not", query, entry, prefixes[i-1])
				}
			}
			if len(got) > len(previous) {
				t.Errorf("Filter(%q) grew the result set: %d > %d", query, len(got), len(previous))
			}
		}
		previous = got
	}
}

func TestLoadDatasetEntriesAreComplete(t *testing.T) {
	dataset, err := LoadDataset()
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	if dataset.Len() < 40 {
		t.Errorf("dataset has %d entries, expected a country-level list", dataset.Len())
	}

	seen := make(map[string]bool)
	duplicateCityNames := false
	for _, entry := range dataset.Entries() {
		if entry.City == "" || entry.State == "" || entry.Pincode == "" {
			t.Errorf("incomplete entry: %+v", entry)
		}
		key := strings.ToLower(entry.City)
		if seen[key] {
			duplicateCityNames = true
		}
		seen[key] = true
	}

	// The same city name under different states is legal; the dataset should
	// exercise that so selection identity stays the full tuple.
	if !duplicateCityNames {
		t.Error("dataset has no duplicate city names across states")
	}
}
