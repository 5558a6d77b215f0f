package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// State is everything a list page keeps in its query string.
type State struct {
	Descriptor Descriptor
	Filters    Filters
	Sort       SortKey
	Page       int
}

// DefaultState is the unfiltered first page of d.
func DefaultState(d Descriptor) State {
	return State{
		Descriptor: d,
		Sort:       d.DefaultSort,
		Page:       1,
	}
}

// Pagination returns the page request for the engine.
func (s State) Pagination() Pagination {
	return Pagination{CurrentPage: s.Page, PageSize: s.Descriptor.PageSize}
}

// parsePrice converts a price string such as "10.50" into a decimal.
func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("price cannot be empty")
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price format: %w", err)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("price cannot be negative")
	}

	return d, nil
}

func parseSort(d Descriptor, s string) (SortKey, error) {
	key := SortKey(s)
	if !d.allowsSort(key) {
		return "", fmt.Errorf("invalid sort field: %s", s)
	}
	return key, nil
}

func parsePage(s string) (int, error) {
	page, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid page: %w", err)
	}
	if page < 1 {
		return 0, fmt.Errorf("invalid page: %d must be >= 1", page)
	}
	return page, nil
}

func nonEmpty(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseState parses URL query parameters into a page state. Parameters for
// filter groups the page does not expose are ignored.
func ParseState(d Descriptor, params url.Values) (State, error) {
	state := DefaultState(d)
	filters := &state.Filters

	if d.Has(GroupPrice) {
		if minStr := params.Get("min_price"); minStr != "" {
			val, err := parsePrice(minStr)
			if err != nil {
				return DefaultState(d), fmt.Errorf("invalid min_price: %w", err)
			}
			filters.PriceMin = &val
		}

		if maxStr := params.Get("max_price"); maxStr != "" {
			val, err := parsePrice(maxStr)
			if err != nil {
				return DefaultState(d), fmt.Errorf("invalid max_price: %w", err)
			}
			filters.PriceMax = &val
		}

		if filters.PriceMin != nil && filters.PriceMax != nil && filters.PriceMin.GreaterThan(*filters.PriceMax) {
			return DefaultState(d), fmt.Errorf("min_price must not be greater than max_price")
		}
	}

	if d.Has(GroupCategory) {
		filters.Categories = nonEmpty(params["category"])
	}

	if d.Has(GroupSeller) {
		filters.Sellers = nonEmpty(params["seller"])
	}

	if d.Has(GroupStatus) {
		filters.Statuses = nonEmpty(params["status"])
	}

	if d.Has(GroupTimeLeft) {
		if bucket := params.Get("time_left"); bucket != "" {
			filters.TimeLeft = TimeLeft(bucket)
			if !filters.TimeLeft.valid() {
				return DefaultState(d), fmt.Errorf("invalid time_left: %s", bucket)
			}
		}
	}

	if d.Has(GroupFlags) {
		for _, f := range nonEmpty(params["flag"]) {
			flag := Flag(f)
			if !d.allowsFlag(flag) {
				return DefaultState(d), fmt.Errorf("invalid flag: %s", f)
			}
			filters.Flags = append(filters.Flags, flag)
		}
	}

	filters.Search = strings.TrimSpace(params.Get("q"))

	if sortStr := params.Get("sort"); sortStr != "" {
		key, err := parseSort(d, sortStr)
		if err != nil {
			return DefaultState(d), fmt.Errorf("invalid sort: %w", err)
		}
		state.Sort = key
	}

	if pageStr := params.Get("page"); pageStr != "" {
		page, err := parsePage(pageStr)
		if err != nil {
			return DefaultState(d), err
		}
		state.Page = page
	}

	return state, nil
}

func (b TimeLeft) valid() bool {
	return slices.Contains(TimeLeftBuckets, b)
}

// Values encodes the filters and sort. The page is left out, so any link
// built from it starts again at page 1.
func (s State) Values() url.Values {
	v := url.Values{}
	f := s.Filters

	if f.PriceMin != nil {
		v.Set("min_price", f.PriceMin.String())
	}
	if f.PriceMax != nil {
		v.Set("max_price", f.PriceMax.String())
	}
	for _, c := range f.Categories {
		v.Add("category", c)
	}
	for _, seller := range f.Sellers {
		v.Add("seller", seller)
	}
	for _, status := range f.Statuses {
		v.Add("status", status)
	}
	if f.TimeLeft != TimeLeftAny {
		v.Set("time_left", string(f.TimeLeft))
	}
	for _, flag := range f.Flags {
		v.Add("flag", string(flag))
	}
	if f.Search != "" {
		v.Set("q", f.Search)
	}
	if s.Sort != "" && s.Sort != s.Descriptor.DefaultSort {
		v.Set("sort", string(s.Sort))
	}

	return v
}

// URL links to the first page of the current filters.
func (s State) URL() string {
	return s.link(s.Values())
}

// PageURL links to page n keeping filters and sort.
func (s State) PageURL(n int) string {
	v := s.Values()
	if n > 1 {
		v.Set("page", strconv.Itoa(n))
	}
	return s.link(v)
}

// SortURL links to the first page sorted by key.
func (s State) SortURL(key SortKey) string {
	next := s
	next.Sort = key
	return next.URL()
}

func (s State) link(v url.Values) string {
	if len(v) == 0 {
		return s.Descriptor.Path
	}
	return s.Descriptor.Path + "?" + v.Encode()
}

// Selected reports whether value is active in the named filter group, for
// checking boxes when rendering.
func (s State) Selected(group, value string) bool {
	switch Group(group) {
	case GroupCategory:
		return slices.Contains(s.Filters.Categories, value)
	case GroupSeller:
		return slices.Contains(s.Filters.Sellers, value)
	case GroupStatus:
		return slices.Contains(s.Filters.Statuses, value)
	case GroupTimeLeft:
		return string(s.Filters.TimeLeft) == value
	case GroupFlags:
		return slices.Contains(s.Filters.Flags, Flag(value))
	}
	return false
}
