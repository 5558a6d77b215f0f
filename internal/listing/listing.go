package listing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies a listing collection.
type Kind string

const (
	KindAuction  Kind = "auction"
	KindProduct  Kind = "product"
	KindVehicle  Kind = "vehicle"
	KindProperty Kind = "property"
)

// Kinds lists every collection in display order.
var Kinds = []Kind{KindAuction, KindProduct, KindVehicle, KindProperty}

// DefaultCurrency is the source currency of records that do not carry one.
const DefaultCurrency = "USD"

// Collection returns the backend path segment for the kind.
func (k Kind) Collection() string {
	switch k {
	case KindAuction:
		return "auctions"
	case KindProduct:
		return "products"
	case KindVehicle:
		return "vehicles"
	case KindProperty:
		return "properties"
	}
	return string(k) + "s"
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if s == string(k) || s == k.Collection() {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown listing kind %q", s)
}

// Record is a single auction, product, vehicle or property. Records are values:
// nothing mutates one after it is decoded.
type Record struct {
	ID       string
	Slug     string
	Kind     Kind
	Name     string
	ImageURL string

	// Price is current_bid for auctions and price for everything else.
	// It is never negative.
	Price decimal.Decimal
	// SecondaryPrice is reserve_price for auctions and sale/compare price otherwise.
	SecondaryPrice *decimal.Decimal
	Currency       string

	Category string
	Seller   string
	Status   string

	CreatedAt *time.Time
	EndTime   *time.Time

	BidCount      *int
	StockQuantity *int
	IsFeatured    bool
	Rating        *float64
}

// Bids returns the bid count, zero when unknown.
func (r Record) Bids() int {
	if r.BidCount == nil {
		return 0
	}
	return *r.BidCount
}

// Stock returns the stock quantity, zero when unknown.
func (r Record) Stock() int {
	if r.StockQuantity == nil {
		return 0
	}
	return *r.StockQuantity
}

// Created returns CreatedAt, or the epoch when it is missing.
func (r Record) Created() time.Time {
	if r.CreatedAt == nil {
		return time.Unix(0, 0).UTC()
	}
	return *r.CreatedAt
}

// Ends returns EndTime, or the epoch when it is missing.
func (r Record) Ends() time.Time {
	if r.EndTime == nil {
		return time.Unix(0, 0).UTC()
	}
	return *r.EndTime
}

// Remaining is the time left before the auction ends. ok is false when the
// record has no end time.
func (r Record) Remaining(now time.Time) (time.Duration, bool) {
	if r.EndTime == nil {
		return 0, false
	}
	return r.EndTime.Sub(now), true
}
