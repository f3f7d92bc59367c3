package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		pages   int
		want    []int
	}{
		{"single page", 1, 1, []int{1}},
		{"no pages", 1, 0, nil},
		{"short pager shows everything", 2, 5, []int{1, 2, 3, 4, 5}},
		{"start of long pager", 1, 10, []int{1, 2, 3, Ellipsis, 10}},
		{"middle of long pager", 5, 10, []int{1, Ellipsis, 3, 4, 5, 6, 7, Ellipsis, 10}},
		{"end of long pager", 10, 10, []int{1, Ellipsis, 8, 9, 10}},
		{"left edge of ellipsis threshold", 4, 10, []int{1, 2, 3, 4, 5, 6, Ellipsis, 10}},
		{"right edge of ellipsis threshold", 7, 10, []int{1, Ellipsis, 5, 6, 7, 8, 9, 10}},
		{"current clamped below 1", -3, 6, []int{1, 2, 3, Ellipsis, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageWindow(tt.current, tt.pages)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("window mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortOptionsCoverEveryField(t *testing.T) {
	seen := map[SortField]bool{}
	for _, opt := range SortOptions() {
		seen[opt.Sort] = true
		if opt.Label == "" {
			t.Fatalf("sort option %s/%s has no label", opt.Sort, opt.Order)
		}
	}
	for _, f := range []SortField{SortName, SortPrice, SortCreatedAt} {
		if !seen[f] {
			t.Fatalf("no sort option for %s", f)
		}
	}
}
