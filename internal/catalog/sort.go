package catalog

import (
	"sort"

	"github.com/GustavoCaso/storefront/internal/listing"
)

// SortKey selects the ordering of a listing page.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortMostBids   SortKey = "most-bids"
	SortEndingSoon SortKey = "ending-soon"
)

var sortLabels = map[SortKey]string{
	SortNewest:     "Newest",
	SortOldest:     "Oldest",
	SortPriceLow:   "Price: low to high",
	SortPriceHigh:  "Price: high to low",
	SortMostBids:   "Most bids",
	SortEndingSoon: "Ending soon",
}

func (k SortKey) Label() string {
	if label, ok := sortLabels[k]; ok {
		return label
	}
	return string(k)
}

type less func(a, b listing.Record) bool

// comparators has no secondary keys: ties keep their filtered order.
// ending-soon sorts on the raw end time, so ended auctions mix with live ones.
var comparators = map[SortKey]less{
	SortNewest:     func(a, b listing.Record) bool { return a.Created().After(b.Created()) },
	SortOldest:     func(a, b listing.Record) bool { return a.Created().Before(b.Created()) },
	SortPriceLow:   func(a, b listing.Record) bool { return a.Price.LessThan(b.Price) },
	SortPriceHigh:  func(a, b listing.Record) bool { return a.Price.GreaterThan(b.Price) },
	SortMostBids:   func(a, b listing.Record) bool { return a.Bids() > b.Bids() },
	SortEndingSoon: func(a, b listing.Record) bool { return a.Ends().Before(b.Ends()) },
}

func (k SortKey) Valid() bool {
	_, ok := comparators[k]
	return ok
}

// Sort returns a new slice ordered by key. The input is left untouched.
// Unknown keys keep the input order.
func Sort(records []listing.Record, key SortKey) []listing.Record {
	sorted := make([]listing.Record, len(records))
	copy(sorted, records)

	cmp, ok := comparators[key]
	if !ok {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return cmp(sorted[i], sorted[j])
	})

	return sorted
}
