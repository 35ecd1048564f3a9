package kb

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestLookupCategoryOverview(t *testing.T) {
	got, err := Lookup("property_tax", "")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got.PortalURL != CitizenPortalURL {
		t.Errorf("property tax facts missing portal URL, got %q", got.PortalURL)
	}
	if len(got.Steps) == 0 {
		t.Error("property tax facts have no steps")
	}
}

func TestLookupSubcategory(t *testing.T) {
	got, err := Lookup("disaster", "shelters")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(got.Shelters) == 0 {
		t.Fatal("shelters subcategory returned no shelters")
	}
}

func TestLookupUnknownSubcategoryFallsBack(t *testing.T) {
	overview, err := Lookup("disaster", "")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	got, err := Lookup("disaster", "no_such_topic")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got.Description != overview.Description {
		t.Error("unknown subcategory should fall back to the category overview")
	}
}

func TestLookupUnknownCategory(t *testing.T) {
	_, err := Lookup("parking", "")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestCategoriesCoverAllEntries(t *testing.T) {
	cats := Categories()
	if len(cats) != len(facts) {
		t.Fatalf("Categories returned %d keys, want %d", len(cats), len(facts))
	}
	for _, c := range cats {
		if _, err := Lookup(c, ""); err != nil {
			t.Errorf("Lookup(%q) failed: %v", c, err)
		}
	}
}

func TestFactsMarshalToJSON(t *testing.T) {
	f, err := Lookup("disaster", "rainfall_status")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty JSON payload")
	}
}
