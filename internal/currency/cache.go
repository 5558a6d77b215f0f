package currency

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/shopspring/decimal"
)

type cachedConversion struct {
	response  ConvertResponse
	timestamp time.Time
}

// CachedService keeps successful conversions for ttl. Failed and unsuccessful
// responses always reach the wrapped service again.
type CachedService struct {
	service Service
	cache   *lru.Cache
	ttl     time.Duration
	now     func() time.Time
}

func NewCachedService(service Service, size int, ttl time.Duration) (*CachedService, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("unable to create conversion cache: %w", err)
	}

	return &CachedService{
		service: service,
		cache:   cache,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

func cacheKey(amount decimal.Decimal, from, to string) string {
	return from + ":" + to + ":" + amount.String()
}

func (s *CachedService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*ConvertResponse, error) {
	key := cacheKey(amount, from, to)

	if cached, ok := s.cache.Get(key); ok {
		entry := cached.(cachedConversion)
		if s.now().Sub(entry.timestamp) < s.ttl {
			response := entry.response
			return &response, nil
		}
		s.cache.Remove(key)
	}

	resp, err := s.service.Convert(ctx, amount, from, to)
	if err != nil {
		return nil, err
	}

	if resp != nil && resp.Success && resp.Data != nil && resp.Data.ConvertedAmount.Valid {
		s.cache.Add(key, cachedConversion{
			response:  *resp,
			timestamp: s.now(),
		})
	}

	return resp, nil
}

// Len is the number of cached conversions.
func (s *CachedService) Len() int {
	return s.cache.Len()
}
