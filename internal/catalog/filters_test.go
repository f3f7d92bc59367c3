package catalog

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFiltersDefaults(t *testing.T) {
	f := ParseFilters(url.Values{})

	if f.Search != "" || f.Category != "" {
		t.Fatalf("expected empty search/category, got %+v", f)
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		t.Fatalf("expected unset price bounds, got %+v", f)
	}
	if f.Featured {
		t.Fatalf("expected featured unset")
	}
	if f.Sort != SortCreatedAt || f.Order != OrderDesc {
		t.Fatalf("unexpected default sort: %s %s", f.Sort, f.Order)
	}
	if f.Page != 1 || f.Limit != DefaultLimit {
		t.Fatalf("unexpected default paging: page=%d limit=%d", f.Page, f.Limit)
	}
}

func TestParseFiltersFullQuery(t *testing.T) {
	q, err := url.ParseQuery("category=books&sort=price&order=asc&page=3")
	if err != nil {
		t.Fatalf("parse query failed: %v", err)
	}

	f := ParseFilters(q)

	if f.Category != "books" {
		t.Fatalf("expected category books, got %q", f.Category)
	}
	if f.Sort != SortPrice || f.Order != OrderAsc {
		t.Fatalf("unexpected sort: %s %s", f.Sort, f.Order)
	}
	if f.Page != 3 || f.Limit != 12 {
		t.Fatalf("unexpected paging: page=%d limit=%d", f.Page, f.Limit)
	}
}

func TestParseFiltersBadValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, f Filters)
	}{
		{
			name:  "non-numeric prices unset",
			query: "min_price=cheap&max_price=",
			check: func(t *testing.T, f Filters) {
				if f.MinPrice != nil || f.MaxPrice != nil {
					t.Fatalf("expected unset bounds, got %+v", f)
				}
			},
		},
		{
			name:  "non-numeric page falls back to 1",
			query: "page=abc",
			check: func(t *testing.T, f Filters) {
				if f.Page != 1 {
					t.Fatalf("expected page 1, got %d", f.Page)
				}
			},
		},
		{
			name:  "negative page clamped to 1",
			query: "page=-4",
			check: func(t *testing.T, f Filters) {
				if f.Page != 1 {
					t.Fatalf("expected page 1, got %d", f.Page)
				}
			},
		},
		{
			name:  "featured only for literal true",
			query: "featured=1",
			check: func(t *testing.T, f Filters) {
				if f.Featured {
					t.Fatalf("expected featured unset for %q", "1")
				}
			},
		},
		{
			name:  "unknown sort falls back to default",
			query: "sort=rating&order=sideways",
			check: func(t *testing.T, f Filters) {
				if f.Sort != SortCreatedAt || f.Order != OrderDesc {
					t.Fatalf("unexpected sort: %s %s", f.Sort, f.Order)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query failed: %v", err)
			}
			tt.check(t, ParseFilters(q))
		})
	}
}

func TestQuerySkipsEmptyFields(t *testing.T) {
	min := 5.5
	f := Filters{
		Category: "books",
		MinPrice: &min,
		Sort:     SortPrice,
		Order:    OrderAsc,
		Page:     2,
		Limit:    DefaultLimit,
	}

	got := f.Query()
	want := url.Values{
		"category":  {"books"},
		"min_price": {"5.5"},
		"sort":      {"price"},
		"order":     {"asc"},
		"page":      {"2"},
		"limit":     {"12"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got["search"]; ok {
		t.Fatalf("empty search must not be serialized")
	}
}

func TestUpdateResetsPage(t *testing.T) {
	q := url.Values{"category": {"books"}, "page": {"7"}}

	got := Update(q, map[string]string{"sort": "price", "order": "asc"})

	if got.Get("page") != "1" {
		t.Fatalf("expected page reset to 1, got %q", got.Get("page"))
	}
	if got.Get("category") != "books" || got.Get("sort") != "price" {
		t.Fatalf("unexpected merged query: %v", got)
	}
	// Original query untouched.
	if q.Get("page") != "7" {
		t.Fatalf("input query mutated: %v", q)
	}
}

func TestUpdatePageExplicit(t *testing.T) {
	q := url.Values{"category": {"books"}}

	got := Update(q, map[string]string{"page": "4"})

	if got.Get("page") != "4" {
		t.Fatalf("expected explicit page kept, got %q", got.Get("page"))
	}
}

func TestUpdateDeletesEmptiedKeys(t *testing.T) {
	q := url.Values{"category": {"books"}, "featured": {"true"}}

	got := Update(q, map[string]string{"category": "", "featured": ""})

	if _, ok := got["category"]; ok {
		t.Fatalf("expected category removed, got %v", got)
	}
	if _, ok := got["featured"]; ok {
		t.Fatalf("expected featured removed, got %v", got)
	}
	if got.Get("page") != "1" {
		t.Fatalf("expected page reset, got %v", got)
	}
}

func TestUpdateNeverWritesEmptyValues(t *testing.T) {
	// A chain of updates without an explicit page always lands on page=1.
	q := url.Values{}
	q = Update(q, map[string]string{"category": "toys"})
	q = Update(q, map[string]string{"min_price": "10"})
	q = Update(q, map[string]string{"min_price": ""})

	if got := q.Get("page"); got != "1" {
		t.Fatalf("expected page=1 after update chain, got %q", got)
	}
	for k, vs := range q {
		for _, v := range vs {
			if v == "" {
				t.Fatalf("key %q serialized with empty value", k)
			}
		}
	}
}

func TestClearKeepsOnlySearch(t *testing.T) {
	q := url.Values{
		"search":   {"x"},
		"category": {"books"},
		"featured": {"true"},
		"page":     {"5"},
	}

	got := Clear(q)
	want := url.Values{"search": {"x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("clear mismatch (-want +got):\n%s", diff)
	}
}

func TestClearThenSearchUpdate(t *testing.T) {
	q := url.Values{"category": {"books"}, "page": {"5"}}

	q = Clear(q)
	q = Update(q, map[string]string{"search": "x"})

	want := url.Values{"search": {"x"}, "page": {"1"}}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestHasActive(t *testing.T) {
	if (Filters{Search: "x"}).HasActive() {
		t.Fatalf("search alone must not count as an active filter")
	}
	if !(Filters{Category: "books"}).HasActive() {
		t.Fatalf("category should count as active")
	}
	min := 1.0
	if !(Filters{MinPrice: &min}).HasActive() {
		t.Fatalf("min price should count as active")
	}
}
