// Package catalog holds the product listing query state: the bidirectional
// mapping between a URL-style query string and the filter set driving the
// listing request, plus the pagination window shown under the grid.
//
// The query string is the single source of truth. Filters are reconstructed
// from it on every render and written back through Update/Clear; they have no
// storage of their own.
package catalog

import (
	"net/url"
	"strconv"
)

// SortField is a listing sort key accepted by the backend.
type SortField string

const (
	SortName      SortField = "name"
	SortPrice     SortField = "price"
	SortCreatedAt SortField = "created_at"
)

// SortOrder is a listing sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// DefaultLimit is the fixed listing page size.
const DefaultLimit = 12

// Filters is the product listing query state.
type Filters struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Featured bool
	Sort     SortField
	Order    SortOrder
	Page     int
	Limit    int
}

// ParseFilters reconstructs the filter set from a query string. Unrecognized
// or non-numeric values fall back to unset; page falls back to 1 and is
// clamped to a minimum of 1; featured is set only by the literal "true".
func ParseFilters(q url.Values) Filters {
	f := Filters{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		MinPrice: parsePrice(q.Get("min_price")),
		MaxPrice: parsePrice(q.Get("max_price")),
		Featured: q.Get("featured") == "true",
		Sort:     SortCreatedAt,
		Order:    OrderDesc,
		Page:     1,
		Limit:    DefaultLimit,
	}

	switch SortField(q.Get("sort")) {
	case SortName, SortPrice, SortCreatedAt:
		f.Sort = SortField(q.Get("sort"))
	}
	switch SortOrder(q.Get("order")) {
	case OrderAsc, OrderDesc:
		f.Order = SortOrder(q.Get("order"))
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		f.Page = page
	}

	return f
}

func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Query encodes the filter set for the listing request. Empty or unset fields
// are absent rather than serialized as empty strings.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.Featured {
		q.Set("featured", "true")
	}
	if f.Sort != "" {
		q.Set("sort", string(f.Sort))
	}
	if f.Order != "" {
		q.Set("order", string(f.Order))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// HasActive reports whether any narrowing filter is set. Search is excluded:
// the header shows it separately and Clear preserves it.
func (f Filters) HasActive() bool {
	return f.Category != "" || f.MinPrice != nil || f.MaxPrice != nil || f.Featured
}

// Update merges a partial change set into an existing query string. A change
// with an empty value deletes its key instead of writing an empty string. Any
// change set that does not itself set "page" resets the page to 1.
func Update(q url.Values, changes map[string]string) url.Values {
	out := url.Values{}
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}

	for k, v := range changes {
		if v == "" {
			out.Del(k)
		} else {
			out.Set(k, v)
		}
	}

	if _, ok := changes["page"]; !ok {
		out.Set("page", "1")
	}
	return out
}

// Clear resets the query string, keeping at most the search term.
func Clear(q url.Values) url.Values {
	out := url.Values{}
	if s := q.Get("search"); s != "" {
		out.Set("search", s)
	}
	return out
}
