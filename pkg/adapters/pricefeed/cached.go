package pricefeed

import (
	"context"
	"errors"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/gatehouse/internal/logging"
	"github.com/aretw0/gatehouse/pkg/ports"
)

const (
	defaultCacheTTL    = 15 * time.Second
	defaultCachePrefix = "gatehouse:price:"
)

// CachedSource decorates a PriceSource with a short-lived Redis cache.
// Quotes are stored per symbol; errors from the inner source are never
// cached, and a failing Redis degrades to pass-through rather than taking
// the tool down.
type CachedSource struct {
	inner  ports.PriceSource
	client *backend.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// CacheOption configures the cache decorator.
type CacheOption func(*CachedSource)

// WithTTL sets how long a quote stays fresh.
func WithTTL(ttl time.Duration) CacheOption {
	return func(s *CachedSource) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the Redis key prefix.
func WithKeyPrefix(prefix string) CacheOption {
	return func(s *CachedSource) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithCacheLogger sets the logger used for cache degradation warnings.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(s *CachedSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCached creates a caching decorator connected to the given Redis address.
func NewCached(inner ports.PriceSource, address, password string, db int, opts ...CacheOption) *CachedSource {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewCachedFromClient(inner, client, opts...)
}

// NewCachedFromClient creates a caching decorator from an existing Redis
// client. Useful for sharing a connection pool or injecting a test client.
func NewCachedFromClient(inner ports.PriceSource, client *backend.Client, opts ...CacheOption) *CachedSource {
	s := &CachedSource{
		inner:  inner,
		client: client,
		ttl:    defaultCacheTTL,
		prefix: defaultCachePrefix,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CachedSource) key(symbol string) string {
	return s.prefix + symbol
}

// Quote returns the cached price for symbol when fresh, falling back to the
// inner source otherwise. Successful fetches are written back with the
// configured TTL.
func (s *CachedSource) Quote(ctx context.Context, symbol string) (string, error) {
	key := s.key(symbol)

	cached, err := s.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, backend.Nil):
		// Cache miss; fetch below.
	default:
		s.logger.Warn("price cache read failed, falling through", "err", err, "symbol", symbol)
	}

	price, err := s.inner.Quote(ctx, symbol)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, key, price, s.ttl).Err(); err != nil {
		s.logger.Warn("price cache write failed", "err", err, "symbol", symbol)
	}
	return price, nil
}

// Close releases the underlying Redis connection.
func (s *CachedSource) Close() error {
	return s.client.Close()
}
