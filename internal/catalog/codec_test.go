package catalog

import (
	"net/url"
	"testing"
)

func openCodec() *Codec {
	return NewCodec(nil, nil)
}

func vocabCodec() *Codec {
	return NewCodec(
		[]string{"wheat", "whole-wheat", "specialty", "organic"},
		[]string{"1kg", "5kg", "10kg", "25kg"},
	)
}

func TestCodec_EncodeOmitsDefaults(t *testing.T) {
	c := openCodec()

	if got := c.EncodeQuery(DefaultFilterState()); got != "" {
		t.Fatalf("default state should encode to empty query, got %q", got)
	}

	s := DefaultFilterState()
	s.Categories = []string{"organic"}
	s.PriceMax = 50
	q := c.Encode(s)
	if q.Get("category") != "organic" {
		t.Errorf("category = %q, want organic", q.Get("category"))
	}
	if q.Get("maxPrice") != "50" {
		t.Errorf("maxPrice = %q, want 50", q.Get("maxPrice"))
	}
	if q.Has("minPrice") || q.Has("sort") || q.Has("weight") {
		t.Errorf("default-valued params should be omitted, got %v", q)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := vocabCodec()

	tests := []struct {
		name  string
		state FilterState
	}{
		{"defaults", DefaultFilterState()},
		{"categories only", FilterState{PriceMin: 0, PriceMax: 100, Categories: []string{"organic", "wheat"}, Sort: SortFeatured}},
		{"full", FilterState{PriceMin: 10, PriceMax: 75, Categories: []string{"specialty"}, Weights: []string{"25kg", "5kg"}, Sort: SortPriceDesc}},
		{"price only", FilterState{PriceMin: 25, PriceMax: 30, Sort: SortFeatured}},
		{"sort only", FilterState{PriceMin: 0, PriceMax: 100, Sort: SortNewest}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Decode(c.Encode(tt.state))
			if !got.Equal(tt.state) {
				t.Errorf("decode(encode(s)) = %+v, want %+v", got, tt.state)
			}
		})
	}
}

func TestCodec_DecodeIdempotent(t *testing.T) {
	c := vocabCodec()

	// Arbitrary queries, valid and malformed alike.
	queries := []string{
		"",
		"category=organic,wheat&sort=newest",
		"category=wheat&category=organic",
		"minPrice=abc&maxPrice=200",
		"minPrice=80&maxPrice=20",
		"sort=banana&weight=25kg",
		"category=deleted-category&weight=3kg",
		"%zz&category=organic",
	}

	for _, raw := range queries {
		first := c.DecodeQuery(raw)
		again := c.DecodeQuery(c.EncodeQuery(first))
		if !again.Equal(first) {
			t.Errorf("decode not idempotent for %q: first %+v, again %+v", raw, first, again)
		}
	}
}

func TestCodec_DecodeFailSoft(t *testing.T) {
	c := vocabCodec()

	tests := []struct {
		name  string
		query string
		want  FilterState
	}{
		{
			name:  "empty query yields defaults",
			query: "",
			want:  DefaultFilterState(),
		},
		{
			name:  "non-numeric price falls back",
			query: "minPrice=cheap&maxPrice=60",
			want:  FilterState{PriceMin: 0, PriceMax: 60, Sort: SortFeatured},
		},
		{
			name:  "out-of-range prices clamped",
			query: "minPrice=-10&maxPrice=500",
			want:  DefaultFilterState(),
		},
		{
			name:  "inverted range swapped",
			query: "minPrice=80&maxPrice=20",
			want:  FilterState{PriceMin: 20, PriceMax: 80, Sort: SortFeatured},
		},
		{
			name:  "unknown sort ignored",
			query: "sort=cheapest-first",
			want:  DefaultFilterState(),
		},
		{
			name:  "stale category id dropped",
			query: "category=organic,discontinued",
			want:  FilterState{PriceMin: 0, PriceMax: 100, Categories: []string{"organic"}, Sort: SortFeatured},
		},
		{
			name:  "unknown weight dropped",
			query: "weight=3kg,25kg",
			want:  FilterState{PriceMin: 0, PriceMax: 100, Weights: []string{"25kg"}, Sort: SortFeatured},
		},
		{
			name:  "repeated keys and commas both accepted",
			query: "category=wheat&category=organic,wheat",
			want:  FilterState{PriceMin: 0, PriceMax: 100, Categories: []string{"organic", "wheat"}, Sort: SortFeatured},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.DecodeQuery(tt.query)
			if !got.Equal(tt.want) {
				t.Errorf("DecodeQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestCodec_OpenVocabularyAcceptsAnyID(t *testing.T) {
	c := openCodec()
	got := c.Decode(url.Values{"category": {"anything,goes"}})
	want := []string{"anything", "goes"}
	if len(got.Categories) != 2 || got.Categories[0] != want[0] || got.Categories[1] != want[1] {
		t.Errorf("Categories = %v, want %v", got.Categories, want)
	}
}
