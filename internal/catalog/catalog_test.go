package catalog

import "testing"

func TestTripsHaveUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, trip := range Trips() {
		if trip.ID == "" {
			t.Fatalf("catalog trip without id: %+v", trip)
		}
		if seen[trip.ID] {
			t.Fatalf("duplicate catalog id %q", trip.ID)
		}
		seen[trip.ID] = true
	}
	if len(seen) == 0 {
		t.Fatalf("catalog must not be empty")
	}
}

func TestFindReturnsCopy(t *testing.T) {
	found := Find("fjord")
	if found == nil {
		t.Fatalf("fjord must be in the catalog")
	}

	found.Title = "испорчено"
	found.Tags[0] = "испорчено"
	found.Plan[0].Name = "испорчено"

	again := Find("fjord")
	if again.Title == "испорчено" || again.Tags[0] == "испорчено" || again.Plan[0].Name == "испорчено" {
		t.Fatalf("Find must not expose catalog internals: %+v", again)
	}
}

func TestFindMissing(t *testing.T) {
	if found := Find("nope"); found != nil {
		t.Fatalf("unknown id must return nil, got %+v", found)
	}
}

func TestTripsReturnsCopies(t *testing.T) {
	list := Trips()
	list[0].Title = "испорчено"

	if Trips()[0].Title == "испорчено" {
		t.Fatalf("Trips must not expose catalog internals")
	}
}
