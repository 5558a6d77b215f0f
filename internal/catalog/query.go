package catalog

import (
	"time"

	"github.com/GustavoCaso/storefront/internal/listing"
)

const DefaultPageSize = 12

// Pagination is the 1-based page requested by the caller.
type Pagination struct {
	CurrentPage int
	PageSize    int
}

// Result is one page of a filtered and sorted listing collection.
type Result struct {
	Page        []listing.Record
	TotalCount  int
	TotalPages  int
	CurrentPage int
	PageSize    int
}

func (r Result) HasPrev() bool {
	return r.CurrentPage > 1
}

func (r Result) HasNext() bool {
	return r.CurrentPage < r.TotalPages
}

func (r Result) PrevPage() int {
	return r.CurrentPage - 1
}

func (r Result) NextPage() int {
	return r.CurrentPage + 1
}

// Pages lists every page number, for rendering pagination links.
func (r Result) Pages() []int {
	pages := make([]int, r.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Query filters, sorts and paginates records. It never fails and never
// modifies records: out of range pages come back empty.
func Query(records []listing.Record, filters Filters, key SortKey, pagination Pagination, now time.Time) Result {
	filtered := Filter(records, filters, now)
	sorted := Sort(filtered, key)
	return Paginate(sorted, pagination)
}

// Paginate slices the requested page out of an already ordered list.
func Paginate(records []listing.Record, pagination Pagination) Result {
	size := pagination.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	current := pagination.CurrentPage
	if current < 1 {
		current = 1
	}

	total := len(records)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	page := []listing.Record{}
	if current <= totalPages && total > 0 {
		start := (current - 1) * size
		end := start + size
		if end > total {
			end = total
		}
		page = append(page, records[start:end]...)
	}

	return Result{
		Page:        page,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: current,
		PageSize:    size,
	}
}
