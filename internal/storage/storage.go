package storage

import (
	"context"

	"github.com/GustavoCaso/storefront/internal/listing"
	"github.com/GustavoCaso/storefront/internal/logger"
)

type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "record not found"
}

// Storage is the local listing store. It holds the fixture catalog.
type Storage interface {
	ApplyMigrations(ctx context.Context, logger *logger.Logger) error

	// Listings, in insertion order
	GetListings(ctx context.Context, kind listing.Kind) ([]listing.Record, error)
	GetListingBySlug(ctx context.Context, kind listing.Kind, slug string) (listing.Record, error)
	InsertListings(ctx context.Context, records []listing.Record) (int64, error)
	DeleteListings(ctx context.Context, kind listing.Kind) (int64, error)
	CountListings(ctx context.Context) (map[listing.Kind]int64, error)

	Close() error
}
