package catalog

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/GustavoCaso/storefront/internal/listing"
)

// Facets are the filter options available in a collection.
type Facets struct {
	Categories []string
	Sellers    []string
	Statuses   []string
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
}

func distinct[T constraints.Ordered](values []T) []T {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

// BuildFacets collects the distinct, sorted field values of records. Empty
// values are skipped.
func BuildFacets(records []listing.Record) Facets {
	var categories, sellers, statuses []string
	facets := Facets{}

	for i, r := range records {
		if r.Category != "" {
			categories = append(categories, r.Category)
		}
		if r.Seller != "" {
			sellers = append(sellers, r.Seller)
		}
		if r.Status != "" {
			statuses = append(statuses, r.Status)
		}

		if i == 0 || r.Price.LessThan(facets.MinPrice) {
			facets.MinPrice = r.Price
		}
		if i == 0 || r.Price.GreaterThan(facets.MaxPrice) {
			facets.MaxPrice = r.Price
		}
	}

	facets.Categories = distinct(categories)
	facets.Sellers = distinct(sellers)
	facets.Statuses = distinct(statuses)

	return facets
}
