package catalog

import (
	"golang.org/x/exp/slices"

	"github.com/GustavoCaso/storefront/internal/listing"
)

// Group is a block of filter controls a list page can expose.
type Group string

const (
	GroupPrice    Group = "price"
	GroupCategory Group = "category"
	GroupSeller   Group = "seller"
	GroupStatus   Group = "status"
	GroupTimeLeft Group = "time-left"
	GroupFlags    Group = "flags"
)

// Descriptor describes how one listing kind is browsed.
type Descriptor struct {
	Kind        listing.Kind
	Title       string
	Path        string
	PageSize    int
	DefaultSort SortKey
	Sorts       []SortKey
	Groups      []Group
	Flags       []Flag
	// SellerLabel names the seller facet on the page, e.g. "Brand".
	SellerLabel string
}

var descriptors = map[listing.Kind]Descriptor{
	listing.KindAuction: {
		Kind:        listing.KindAuction,
		Title:       "Auctions",
		Path:        "/auctions",
		PageSize:    DefaultPageSize,
		DefaultSort: SortEndingSoon,
		Sorts:       []SortKey{SortEndingSoon, SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortMostBids},
		Groups:      []Group{GroupPrice, GroupCategory, GroupSeller, GroupStatus, GroupTimeLeft, GroupFlags},
		Flags:       []Flag{FlagFeatured},
		SellerLabel: "Seller",
	},
	listing.KindProduct: {
		Kind:        listing.KindProduct,
		Title:       "Shop",
		Path:        "/shop",
		PageSize:    DefaultPageSize,
		DefaultSort: SortNewest,
		Sorts:       []SortKey{SortNewest, SortOldest, SortPriceLow, SortPriceHigh},
		Groups:      []Group{GroupPrice, GroupCategory, GroupSeller, GroupFlags},
		Flags:       []Flag{FlagFeatured, FlagInStock, FlagTopRated},
		SellerLabel: "Brand",
	},
	listing.KindVehicle: {
		Kind:        listing.KindVehicle,
		Title:       "Vehicles",
		Path:        "/vehicles",
		PageSize:    DefaultPageSize,
		DefaultSort: SortNewest,
		Sorts:       []SortKey{SortNewest, SortOldest, SortPriceLow, SortPriceHigh},
		Groups:      []Group{GroupPrice, GroupCategory, GroupSeller, GroupStatus, GroupFlags},
		Flags:       []Flag{FlagFeatured},
		SellerLabel: "Make",
	},
	listing.KindProperty: {
		Kind:        listing.KindProperty,
		Title:       "Properties",
		Path:        "/properties",
		PageSize:    9,
		DefaultSort: SortNewest,
		Sorts:       []SortKey{SortNewest, SortPriceLow, SortPriceHigh},
		Groups:      []Group{GroupPrice, GroupCategory, GroupStatus, GroupFlags},
		Flags:       []Flag{FlagFeatured},
		SellerLabel: "Agent",
	},
}

// DescriptorFor returns the browsing rules of kind.
func DescriptorFor(kind listing.Kind) Descriptor {
	d, ok := descriptors[kind]
	if !ok {
		return Descriptor{
			Kind:        kind,
			Title:       kind.Collection(),
			Path:        "/" + kind.Collection(),
			PageSize:    DefaultPageSize,
			DefaultSort: SortNewest,
			Sorts:       []SortKey{SortNewest},
		}
	}
	return d
}

func (d Descriptor) Has(g Group) bool {
	return slices.Contains(d.Groups, g)
}

func (d Descriptor) allowsSort(k SortKey) bool {
	return slices.Contains(d.Sorts, k)
}

func (d Descriptor) allowsFlag(f Flag) bool {
	return slices.Contains(d.Flags, f)
}
