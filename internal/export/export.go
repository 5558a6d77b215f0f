package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/GustavoCaso/storefront/internal/listing"
)

const ratingDecimals = 1

var header = []string{
	"ID", "Kind", "Slug", "Name", "Price", "SecondaryPrice", "Currency",
	"Category", "Seller", "Status", "CreatedAt", "EndTime", "Bids", "Stock", "Featured", "Rating",
}

// CSV exports listings to CSV format, one row per record after a header row.
// Missing optional values are written as empty cells.
func CSV(writer io.Writer, records []listing.Record) error {
	w := csv.NewWriter(writer)

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, header)
	for _, r := range records {
		rows = append(rows, recordToCSV(r))
	}

	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}

	return nil
}

func recordToCSV(r listing.Record) []string {
	secondary := ""
	if r.SecondaryPrice != nil {
		secondary = r.SecondaryPrice.StringFixed(2)
	}

	bids := ""
	if r.BidCount != nil {
		bids = strconv.Itoa(*r.BidCount)
	}

	stock := ""
	if r.StockQuantity != nil {
		stock = strconv.Itoa(*r.StockQuantity)
	}

	rating := ""
	if r.Rating != nil {
		rating = strconv.FormatFloat(*r.Rating, 'f', ratingDecimals, 64)
	}

	return []string{
		r.ID,
		string(r.Kind),
		r.Slug,
		r.Name,
		r.Price.StringFixed(2),
		secondary,
		r.Currency,
		r.Category,
		r.Seller,
		r.Status,
		formatTime(r.CreatedAt),
		formatTime(r.EndTime),
		bids,
		stock,
		strconv.FormatBool(r.IsFeatured),
		rating,
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

type jsonRecord struct {
	ID             string     `json:"id"`
	Kind           string     `json:"kind"`
	Slug           string     `json:"slug"`
	Name           string     `json:"name"`
	ImageURL       string     `json:"image_url,omitempty"`
	Price          string     `json:"price"`
	SecondaryPrice *string    `json:"secondary_price,omitempty"`
	Currency       string     `json:"currency"`
	Category       string     `json:"category,omitempty"`
	Seller         string     `json:"seller,omitempty"`
	Status         string     `json:"status,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	BidCount       *int       `json:"bid_count,omitempty"`
	StockQuantity  *int       `json:"stock_quantity,omitempty"`
	IsFeatured     bool       `json:"is_featured"`
	Rating         *float64   `json:"rating,omitempty"`
}

// JSON exports listings as an indented JSON array. Prices are strings so no
// precision is lost.
func JSON(writer io.Writer, records []listing.Record) error {
	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		j := jsonRecord{
			ID:            r.ID,
			Kind:          string(r.Kind),
			Slug:          r.Slug,
			Name:          r.Name,
			ImageURL:      r.ImageURL,
			Price:         r.Price.StringFixed(2),
			Currency:      r.Currency,
			Category:      r.Category,
			Seller:        r.Seller,
			Status:        r.Status,
			CreatedAt:     r.CreatedAt,
			EndTime:       r.EndTime,
			BidCount:      r.BidCount,
			StockQuantity: r.StockQuantity,
			IsFeatured:    r.IsFeatured,
			Rating:        r.Rating,
		}
		if r.SecondaryPrice != nil {
			s := r.SecondaryPrice.StringFixed(2)
			j.SecondaryPrice = &s
		}
		out = append(out, j)
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to write JSON records: %w", err)
	}

	return nil
}
