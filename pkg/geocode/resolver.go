package geocode

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/tenant-mapper/internal/resilience"
)

// Store persists resolved queries across runs. Writes are best-effort; a
// store failure never fails the batch.
type Store interface {
	Save(ctx context.Context, query string, r Result) error
}

// ProgressFunc observes each resolved query: 1-based index, batch total,
// the query, and its result. Emitting progress is a side effect only.
type ProgressFunc func(index, total int, query string, r Result)

// Resolver answers geocode queries from the cache first and the provider
// second. Provider errors never escape: a query that cannot be resolved
// yields an unmatched Result.
type Resolver struct {
	provider Provider
	cache    *Cache
	store    Store
	retry    resilience.RetryConfig
	progress ProgressFunc
	log      *zap.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithStore adds a write-through persistent cache store.
func WithStore(s Store) ResolverOption {
	return func(r *Resolver) {
		r.store = s
	}
}

// WithRetry overrides the retry policy for provider calls.
func WithRetry(cfg resilience.RetryConfig) ResolverOption {
	return func(r *Resolver) {
		r.retry = cfg
	}
}

// WithProgress registers a progress observer for ResolveAll.
func WithProgress(fn ProgressFunc) ResolverOption {
	return func(r *Resolver) {
		r.progress = fn
	}
}

// NewResolver creates a Resolver over the given provider and cache. The
// cache must be non-nil; it is owned by the run that owns the resolver.
func NewResolver(p Provider, cache *Cache, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		provider: p,
		cache:    cache,
		retry:    resilience.DefaultRetryConfig(),
		log:      zap.L(),
	}
	if r.retry.OnRetry == nil {
		r.retry.OnRetry = resilience.RetryLogger("nominatim")
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve answers a single query. Empty or whitespace-only queries resolve
// immediately to unmatched without touching the cache or the provider.
// Cache hits skip the provider. Misses call the provider under the retry
// policy; exhausted retries or any other error produce an unmatched Result.
// Every miss outcome, matched or not, is written into the cache.
func (r *Resolver) Resolve(ctx context.Context, query string) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}
	}

	if cached, ok := r.cache.Get(query); ok {
		return cached
	}

	result, err := resilience.DoVal(ctx, r.retry, func(ctx context.Context) (Result, error) {
		return r.provider.Geocode(ctx, query)
	})
	if err != nil {
		r.log.Warn("geocode query failed",
			zap.String("query", query),
			zap.Error(err),
		)
		result = Result{}
	}

	r.cache.Put(query, result)

	if r.store != nil {
		if err := r.store.Save(ctx, query, result); err != nil {
			r.log.Warn("geocode cache store write failed",
				zap.String("query", query),
				zap.Error(err),
			)
		}
	}

	return result
}

// ResolveAll resolves a batch sequentially, preserving input order. The
// progress observer fires after every query, cache hits included.
func (r *Resolver) ResolveAll(ctx context.Context, queries []string) []Result {
	results := make([]Result, len(queries))
	for i, q := range queries {
		results[i] = r.Resolve(ctx, q)
		if r.progress != nil {
			r.progress(i+1, len(queries), q, results[i])
		}
	}
	return results
}
