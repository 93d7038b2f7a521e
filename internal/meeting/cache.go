package meeting

import (
	"context"
	"time"

	"github.com/evida/coach-api/internal/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachingClient memoizes meeting records by id in a size-capped,
// TTL-expiring LRU. Concurrent misses for the same id may fetch twice;
// last write wins on the cache entry.
type CachingClient struct {
	inner Client
	cache *expirable.LRU[string, *domain.Meeting]
}

// NewCachingClient wraps a Client with an expirable LRU cache.
func NewCachingClient(inner Client, size int, ttl time.Duration) *CachingClient {
	return &CachingClient{
		inner: inner,
		cache: expirable.NewLRU[string, *domain.Meeting](size, nil, ttl),
	}
}

// GetMeeting returns the cached record for id, fetching on miss. Errors
// are never cached.
func (c *CachingClient) GetMeeting(ctx context.Context, id string) (*domain.Meeting, error) {
	if record, ok := c.cache.Get(id); ok {
		return record, nil
	}

	record, err := c.inner.GetMeeting(ctx, id)
	if err != nil {
		return nil, err
	}

	c.cache.Add(id, record)
	return record, nil
}
