package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// field names tried in order, per concern
var (
	nameFields      = []string{"name", "title"}
	sellerFields    = []string{"seller", "seller_name", "business_name", "brand", "make"}
	secondaryFields = map[Kind][]string{
		KindAuction:  {"reserve_price"},
		KindProduct:  {"sale_price", "compare_price"},
		KindVehicle:  {"sale_price", "compare_price"},
		KindProperty: {"sale_price", "compare_price"},
	}
	priceFields = map[Kind][]string{
		KindAuction:  {"current_bid", "starting_price", "price"},
		KindProduct:  {"price"},
		KindVehicle:  {"price"},
		KindProperty: {"price"},
	}
)

type rawRecord map[string]json.RawMessage

// DecodeList decodes a JSON array of backend records of the given kind.
func DecodeList(kind Kind, data []byte) ([]Record, error) {
	var raws []rawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("invalid %s list: %w", kind.Collection(), err)
	}

	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, raw.record(kind))
	}

	return records, nil
}

// DecodeOne decodes a single JSON object.
func DecodeOne(kind Kind, data []byte) (Record, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("invalid %s record: %w", kind, err)
	}
	if raw == nil {
		return Record{}, fmt.Errorf("empty %s record", kind)
	}

	return raw.record(kind), nil
}

func (raw rawRecord) record(kind Kind) Record {
	r := Record{
		Kind:       kind,
		ID:         raw.text("id"),
		Name:       raw.text(nameFields...),
		ImageURL:   raw.text("image", "image_url", "thumbnail"),
		Price:      CoercePrice(raw.first(priceFields[kind]...)),
		Currency:   strings.ToUpper(raw.text("currency")),
		Category:   raw.text("category", "category_name", "property_type", "body_type"),
		Seller:     raw.text(sellerFields...),
		Status:     raw.text("status", "condition"),
		CreatedAt:  raw.timestamp("created_at"),
		EndTime:    raw.timestamp("end_time", "ends_at"),
		IsFeatured: raw.flag("is_featured", "featured"),
	}

	r.Slug = raw.text("slug")
	if r.Slug == "" {
		r.Slug = r.ID
	}

	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}

	if secondary := raw.first(secondaryFields[kind]...); secondary != nil {
		p := CoercePrice(secondary)
		r.SecondaryPrice = &p
	}

	r.BidCount = raw.integer("bid_count", "bids_count", "total_bids")
	r.StockQuantity = raw.integer("stock_quantity", "stock")

	if rating, ok := raw.number("rating", "average_rating"); ok {
		r.Rating = &rating
	}

	return r
}

func (raw rawRecord) first(keys ...string) json.RawMessage {
	for _, k := range keys {
		v, ok := raw[k]
		if ok && !isNull(v) {
			return v
		}
	}
	return nil
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// text accepts strings, numbers and objects with a name field.
func (raw rawRecord) text(keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || isNull(v) {
			continue
		}

		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
			continue
		}

		var n json.Number
		if err := json.Unmarshal(v, &n); err == nil {
			return n.String()
		}

		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(v, &obj); err == nil && obj.Name != "" {
			return obj.Name
		}
	}
	return ""
}

func (raw rawRecord) number(keys ...string) (float64, bool) {
	v := raw.first(keys...)
	if v == nil {
		return 0, false
	}

	f, err := parseNumber(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (raw rawRecord) integer(keys ...string) *int {
	f, ok := raw.number(keys...)
	if !ok {
		return nil
	}
	f = math.Min(math.Max(f, 0), math.MaxInt32)
	n := int(f)
	return &n
}

func (raw rawRecord) flag(keys ...string) bool {
	v := raw.first(keys...)
	if v == nil {
		return false
	}

	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b
	}

	f, err := parseNumber(v)
	return err == nil && f != 0
}

func (raw rawRecord) timestamp(keys ...string) *time.Time {
	s := raw.text(keys...)
	if s == "" {
		return nil
	}
	return ParseTime(s)
}

// ParseTime parses the timestamp layouts the backend emits. It returns nil when
// none match.
func ParseTime(s string) *time.Time {
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return &t
		}
	}
	return nil
}

func parseNumber(v json.RawMessage) (float64, error) {
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.Float64()
	}

	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return 0, err
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	return strconv.ParseFloat(s, 64)
}

// CoercePrice turns a raw JSON value into a price. Absent, malformed, negative
// and non finite values become zero.
func CoercePrice(v json.RawMessage) decimal.Decimal {
	if v == nil || isNull(v) {
		return decimal.Zero
	}

	f, err := parseNumber(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return decimal.Zero
	}

	return decimal.NewFromFloat(f)
}
