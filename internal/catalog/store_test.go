package catalog

import (
	"net/url"
	"testing"
)

func TestStore_ToggleCategory(t *testing.T) {
	st := NewStore(openCodec(), nil)

	st.ToggleCategory("organic")
	st.ToggleCategory("wheat")
	if d := st.Draft(); !d.HasCategory("organic") || !d.HasCategory("wheat") {
		t.Fatalf("expected both categories selected, got %v", d.Categories)
	}

	// Toggling again removes.
	st.ToggleCategory("organic")
	if d := st.Draft(); d.HasCategory("organic") {
		t.Fatalf("organic should be deselected, got %v", d.Categories)
	}

	// Draft edits must not leak into committed state before Apply.
	if c := st.Committed(); len(c.Categories) != 0 {
		t.Fatalf("committed state changed without Apply: %v", c.Categories)
	}
}

func TestStore_SetPriceRange(t *testing.T) {
	st := NewStore(openCodec(), nil)

	tests := []struct {
		name     string
		min, max float64
		wantMin  float64
		wantMax  float64
	}{
		{"normal", 10, 60, 10, 60},
		{"swapped", 70, 30, 30, 70},
		{"clamped low", -5, 50, 0, 50},
		{"clamped high", 20, 300, 20, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st.SetPriceRange(tt.min, tt.max)
			d := st.Draft()
			if d.PriceMin != tt.wantMin || d.PriceMax != tt.wantMax {
				t.Errorf("price range = [%v,%v], want [%v,%v]", d.PriceMin, d.PriceMax, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestStore_SetSortRejectsUnknownKey(t *testing.T) {
	st := NewStore(openCodec(), nil)

	st.SetSort(SortNewest)
	if d := st.Draft(); d.Sort != SortNewest {
		t.Fatalf("sort = %v, want newest", d.Sort)
	}

	// Unknown keys are a no-op, not coerced.
	st.SetSort(SortKey("cheapest"))
	if d := st.Draft(); d.Sort != SortNewest {
		t.Fatalf("invalid sort key should be rejected, got %v", d.Sort)
	}
}

func TestStore_ApplyCommitsDraft(t *testing.T) {
	st := NewStore(openCodec(), nil)

	st.ToggleCategory("organic")
	st.SetPriceRange(25, 30)
	st.SetSort(SortPriceAsc)

	committed, query := st.Apply()
	if !committed.HasCategory("organic") || committed.PriceMin != 25 || committed.Sort != SortPriceAsc {
		t.Fatalf("unexpected committed state: %+v", committed)
	}
	if query == "" {
		t.Fatal("non-default state should produce a non-empty query string")
	}

	// The committed query must round-trip to the committed state.
	decoded := openCodec().DecodeQuery(query)
	if !decoded.Equal(committed) {
		t.Fatalf("query %q decodes to %+v, want %+v", query, decoded, committed)
	}
}

func TestStore_ResetReturnsDefaultsAndBareURL(t *testing.T) {
	st := NewStore(openCodec(), url.Values{
		"category": {"organic"},
		"minPrice": {"20"},
		"sort":     {"newest"},
	})

	if st.Committed().IsDefault() {
		t.Fatal("store should hydrate non-default state from query")
	}

	committed, query := st.Reset()
	if !committed.IsDefault() {
		t.Fatalf("reset should yield default state, got %+v", committed)
	}
	if query != "" {
		t.Fatalf("reset should yield empty query string, got %q", query)
	}
	if !st.Draft().IsDefault() {
		t.Fatalf("reset should clear the draft too, got %+v", st.Draft())
	}
}

func TestStore_HydratesFromQuery(t *testing.T) {
	st := NewStore(vocabCodec(), url.Values{
		"category": {"organic,stale-id"},
		"weight":   {"25kg"},
		"maxPrice": {"40"},
	})

	c := st.Committed()
	if got, want := len(c.Categories), 1; got != want {
		t.Errorf("categories = %v, want just organic", c.Categories)
	}
	if !c.HasWeight("25kg") || c.PriceMax != 40 {
		t.Errorf("unexpected hydrated state: %+v", c)
	}
	// Draft starts as a copy of committed.
	if !st.Draft().Equal(c) {
		t.Errorf("draft should start equal to committed")
	}
}
