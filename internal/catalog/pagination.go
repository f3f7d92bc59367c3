package catalog

// Ellipsis marks a collapsed run of pages in a PageWindow result.
const Ellipsis = -1

// PageWindow returns the page numbers to render for a pager of the given
// total, compressed around the current page: page 1 and the last page always
// appear, as does any page within 2 of the current one. A longer gap on
// either side collapses to a single Ellipsis entry.
func PageWindow(current, pages int) []int {
	if pages <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}

	var window []int
	for page := 1; page <= pages; page++ {
		show := page == 1 || page == pages || abs(page-current) <= 2
		if show {
			window = append(window, page)
			continue
		}
		if page == 2 && current > 4 {
			window = append(window, Ellipsis)
		}
		if page == pages-1 && current < pages-3 {
			window = append(window, Ellipsis)
		}
	}
	return window
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// SortOption pairs a display label with its sort field and direction. The
// products page renders these in the order given.
type SortOption struct {
	Label string
	Sort  SortField
	Order SortOrder
}

// SortOptions lists the sort choices offered by the listing header.
func SortOptions() []SortOption {
	return []SortOption{
		{Label: "Newest First", Sort: SortCreatedAt, Order: OrderDesc},
		{Label: "Oldest First", Sort: SortCreatedAt, Order: OrderAsc},
		{Label: "Name A-Z", Sort: SortName, Order: OrderAsc},
		{Label: "Name Z-A", Sort: SortName, Order: OrderDesc},
		{Label: "Price Low to High", Sort: SortPrice, Order: OrderAsc},
		{Label: "Price High to Low", Sort: SortPrice, Order: OrderDesc},
	}
}
