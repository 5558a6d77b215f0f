package datasource

import (
	"context"
	"errors"
	"fmt"

	"github.com/GustavoCaso/storefront/internal/listing"
	"github.com/GustavoCaso/storefront/internal/logger"
	"github.com/GustavoCaso/storefront/internal/storage"
)

// Origin tells where a set of listings came from.
type Origin string

const (
	OriginBackend Origin = "backend"
	// OriginFixtures is used when no backend is configured.
	OriginFixtures Origin = "fixtures"
	// OriginFallback is used when the backend failed and fixtures were served.
	OriginFallback Origin = "fallback"
)

type Collection struct {
	Records []listing.Record
	Origin  Origin
}

// FallbackSource reads from the backend and falls back to the fixture store
// whenever the backend cannot answer.
type FallbackSource struct {
	client *Client
	store  storage.Storage
	logger *logger.Logger
}

// NewFallbackSource serves fixtures only when client is nil.
func NewFallbackSource(client *Client, store storage.Storage, logger *logger.Logger) *FallbackSource {
	return &FallbackSource{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Listings never fails. When neither the backend nor the fixture store can
// answer the collection is empty.
func (s *FallbackSource) Listings(ctx context.Context, kind listing.Kind) Collection {
	origin := OriginFixtures
	if s.client != nil {
		records, err := s.client.List(ctx, kind)
		if err == nil {
			return Collection{Records: records, Origin: OriginBackend}
		}
		s.logger.Warn("Backend unavailable, serving fixtures", "collection", kind.Collection(), "error", err)
		origin = OriginFallback
	}

	records, err := s.store.GetListings(ctx, kind)
	if err != nil {
		s.logger.Error("Unable to read fixtures", "collection", kind.Collection(), "error", err)
		return Collection{Records: []listing.Record{}, Origin: origin}
	}

	return Collection{Records: records, Origin: origin}
}

// Listing looks slug up on the backend, then in the fixtures. It returns
// ErrNotFound when neither has it.
func (s *FallbackSource) Listing(ctx context.Context, kind listing.Kind, slug string) (listing.Record, Origin, error) {
	origin := OriginFixtures
	if s.client != nil {
		record, err := s.client.Get(ctx, kind, slug)
		if err == nil {
			return record, OriginBackend, nil
		}
		if !errors.Is(err, errBackendNotFound) {
			s.logger.Warn("Backend unavailable, looking up fixtures", "collection", kind.Collection(), "slug", slug, "error", err)
		}
		origin = OriginFallback
	}

	record, err := s.store.GetListingBySlug(ctx, kind, slug)
	if err != nil {
		var notFound *storage.NotFoundError
		if errors.As(err, &notFound) {
			return listing.Record{}, origin, ErrNotFound
		}
		return listing.Record{}, origin, fmt.Errorf("unable to read fixture %s/%s: %w", kind.Collection(), slug, err)
	}

	return record, origin, nil
}
