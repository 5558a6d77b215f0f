package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/storefront/internal/listing"
	"github.com/GustavoCaso/storefront/internal/storage"
)

const listingColumns = `listing_id, kind, slug, name, image_url, price, secondary_price, currency,
	category, seller, status, created_at, end_time, bid_count, stock_quantity, is_featured, rating`

type execer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

func (s *sqliteStorage) GetListings(ctx context.Context, kind listing.Kind) ([]listing.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE kind = ? ORDER BY id", string(kind))
	if err != nil {
		return []listing.Record{}, err
	}
	defer rows.Close()

	records := []listing.Record{}
	for rows.Next() {
		record, recordErr := listingFromRow(rows.Scan)
		if recordErr != nil {
			return records, recordErr
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (s *sqliteStorage) GetListingBySlug(ctx context.Context, kind listing.Kind, slug string) (listing.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE kind = ? AND slug = ?", string(kind), slug)
	return listingFromRow(row.Scan)
}

// InsertListings stores records, skipping any whose kind and slug already exist.
// It returns how many were inserted.
func (s *sqliteStorage) InsertListings(ctx context.Context, records []listing.Record) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	inserted, err := insertListings(ctx, tx, records)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	return inserted, tx.Commit()
}

func (s *sqliteStorage) DeleteListings(ctx context.Context, kind listing.Kind) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM listings WHERE kind = ?", string(kind))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *sqliteStorage) CountListings(ctx context.Context) (map[listing.Kind]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT kind, COUNT(*) FROM listings GROUP BY kind")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[listing.Kind]int64{}
	for rows.Next() {
		var kind string
		var count int64
		if err = rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		counts[listing.Kind(kind)] = count
	}

	return counts, rows.Err()
}

func insertListings(ctx context.Context, db execer, records []listing.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	stmt, err := db.PrepareContext(ctx,
		"INSERT INTO listings("+listingColumns+") VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) "+
			"ON CONFLICT(kind, slug) DO NOTHING")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var inserted int64
	for _, r := range records {
		secondary := decimal.NullDecimal{}
		if r.SecondaryPrice != nil {
			secondary = decimal.NewNullDecimal(*r.SecondaryPrice)
		}

		result, execErr := stmt.ExecContext(ctx,
			r.ID,
			string(r.Kind),
			r.Slug,
			r.Name,
			r.ImageURL,
			r.Price,
			secondary,
			r.Currency,
			r.Category,
			r.Seller,
			r.Status,
			unixOrNull(r.CreatedAt),
			unixOrNull(r.EndTime),
			intOrNull(r.BidCount),
			intOrNull(r.StockQuantity),
			r.IsFeatured,
			floatOrNull(r.Rating),
		)
		if execErr != nil {
			return inserted, execErr
		}

		affected, affectedErr := result.RowsAffected()
		if affectedErr != nil {
			return inserted, affectedErr
		}
		inserted += affected
	}

	return inserted, nil
}

func listingFromRow(scan func(dest ...any) error) (listing.Record, error) {
	var record listing.Record
	var kind string
	var secondary decimal.NullDecimal
	var createdAt, endTime, bidCount, stock sql.NullInt64
	var rating sql.NullFloat64

	err := scan(
		&record.ID,
		&kind,
		&record.Slug,
		&record.Name,
		&record.ImageURL,
		&record.Price,
		&secondary,
		&record.Currency,
		&record.Category,
		&record.Seller,
		&record.Status,
		&createdAt,
		&endTime,
		&bidCount,
		&stock,
		&record.IsFeatured,
		&rating,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listing.Record{}, &storage.NotFoundError{}
		}
		return listing.Record{}, err
	}

	record.Kind = listing.Kind(kind)
	if secondary.Valid {
		record.SecondaryPrice = &secondary.Decimal
	}
	record.CreatedAt = timeFromUnix(createdAt)
	record.EndTime = timeFromUnix(endTime)
	record.BidCount = intFromNull(bidCount)
	record.StockQuantity = intFromNull(stock)
	if rating.Valid {
		record.Rating = &rating.Float64
	}

	return record, nil
}

func unixOrNull(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func timeFromUnix(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

func intOrNull(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func floatOrNull(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
