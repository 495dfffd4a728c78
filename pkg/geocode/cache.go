package geocode

// Cache maps query strings to results for one run. It is owned by a single
// run, mutated only by its resolver, and never evicted: repeat queries
// within a batch must never reach the provider twice. The zero value is not
// usable; construct with NewCache.
type Cache struct {
	entries map[string]Result
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Result)}
}

// Get returns the cached result for an exact query string.
func (c *Cache) Get(query string) (Result, bool) {
	r, ok := c.entries[query]
	return r, ok
}

// Put records a result. Failed lookups are cached too, so a query that
// found nothing is not re-sent within the run.
func (c *Cache) Put(query string, r Result) {
	c.entries[query] = r
}

// Seed bulk-loads entries from a prior run's output or a persistent store.
func (c *Cache) Seed(entries map[string]Result) {
	for q, r := range entries {
		c.entries[q] = r
	}
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	return len(c.entries)
}
