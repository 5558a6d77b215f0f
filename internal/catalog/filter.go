package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/GustavoCaso/storefront/internal/listing"
)

// TimeLeft is a bucket over the remaining duration of an auction.
type TimeLeft string

const (
	TimeLeftAny        TimeLeft = ""
	TimeLeftEndingSoon TimeLeft = "ending-soon"
	TimeLeftEndingWeek TimeLeft = "ending-week"
	TimeLeftLive       TimeLeft = "live"
	TimeLeftEnded      TimeLeft = "ended"
)

var TimeLeftBuckets = []TimeLeft{TimeLeftEndingSoon, TimeLeftEndingWeek, TimeLeftLive, TimeLeftEnded}

// Flag is a boolean filter.
type Flag string

const (
	FlagFeatured Flag = "featured"
	FlagInStock  Flag = "in-stock"
	FlagTopRated Flag = "top-rated"
)

var AllFlags = []Flag{FlagFeatured, FlagInStock, FlagTopRated}

const topRatedThreshold = 4.5

// Filters holds the active predicates. Zero values impose no constraint.
type Filters struct {
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal

	Categories []string
	Sellers    []string
	Statuses   []string

	TimeLeft TimeLeft
	Search   string
	Flags    []Flag
}

// predicate is one row of the filter table. Rows run in order and a record must
// pass every active row.
type predicate struct {
	name   string
	active func(f Filters) bool
	match  func(f Filters, r listing.Record, now time.Time) bool
}

var predicates = []predicate{
	{
		name:   "price",
		active: func(f Filters) bool { return f.PriceMin != nil || f.PriceMax != nil },
		match: func(f Filters, r listing.Record, _ time.Time) bool {
			if f.PriceMin != nil && r.Price.LessThan(*f.PriceMin) {
				return false
			}
			if f.PriceMax != nil && r.Price.GreaterThan(*f.PriceMax) {
				return false
			}
			return true
		},
	},
	{
		name:   "category",
		active: func(f Filters) bool { return len(f.Categories) > 0 },
		match:  func(f Filters, r listing.Record, _ time.Time) bool { return slices.Contains(f.Categories, r.Category) },
	},
	{
		name:   "seller",
		active: func(f Filters) bool { return len(f.Sellers) > 0 },
		match:  func(f Filters, r listing.Record, _ time.Time) bool { return slices.Contains(f.Sellers, r.Seller) },
	},
	{
		name:   "status",
		active: func(f Filters) bool { return len(f.Statuses) > 0 },
		match:  func(f Filters, r listing.Record, _ time.Time) bool { return slices.Contains(f.Statuses, r.Status) },
	},
	{
		name:   "time-left",
		active: func(f Filters) bool { return f.TimeLeft != TimeLeftAny },
		match: func(f Filters, r listing.Record, now time.Time) bool {
			return f.TimeLeft.contains(r, now)
		},
	},
	{
		name:   "search",
		active: func(f Filters) bool { return strings.TrimSpace(f.Search) != "" },
		match: func(f Filters, r listing.Record, _ time.Time) bool {
			q := strings.ToLower(strings.TrimSpace(f.Search))
			for _, field := range []string{r.Name, r.Seller, r.Category} {
				if strings.Contains(strings.ToLower(field), q) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "flags",
		active: func(f Filters) bool { return len(f.Flags) > 0 },
		match: func(f Filters, r listing.Record, _ time.Time) bool {
			for _, flag := range f.Flags {
				if !flag.matches(r) {
					return false
				}
			}
			return true
		},
	},
}

// contains reports whether the remaining time of r falls inside the bucket.
// Records without an end time are in no bucket.
func (b TimeLeft) contains(r listing.Record, now time.Time) bool {
	remaining, ok := r.Remaining(now)
	if !ok {
		return false
	}

	switch b {
	case TimeLeftEndingSoon:
		return remaining > 0 && remaining <= 24*time.Hour
	case TimeLeftEndingWeek:
		return remaining > 0 && remaining <= 7*24*time.Hour
	case TimeLeftLive:
		return remaining > 0
	case TimeLeftEnded:
		return remaining <= 0
	}
	return false
}

func (f Flag) matches(r listing.Record) bool {
	switch f {
	case FlagFeatured:
		return r.IsFeatured
	case FlagInStock:
		return r.Stock() > 0
	case FlagTopRated:
		return r.Rating != nil && *r.Rating >= topRatedThreshold
	}
	return true
}

// Filter returns the records passing every active predicate, in input order.
func Filter(records []listing.Record, filters Filters, now time.Time) []listing.Record {
	active := make([]predicate, 0, len(predicates))
	for _, p := range predicates {
		if p.active(filters) {
			active = append(active, p)
		}
	}

	filtered := make([]listing.Record, 0, len(records))
	for _, r := range records {
		if passes(active, filters, r, now) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

func passes(active []predicate, filters Filters, r listing.Record, now time.Time) bool {
	for _, p := range active {
		if !p.match(filters, r, now) {
			return false
		}
	}
	return true
}
