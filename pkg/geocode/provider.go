// Package geocode resolves free-text address queries to coordinates through
// an external provider, with an in-memory per-run cache, global rate
// limiting, and retry on transient failures.
package geocode

import "context"

// Result holds the outcome of a geocode query. Matched false means the
// query did not resolve: the provider returned no match, the query was
// empty, or a transient failure exhausted its retries.
type Result struct {
	Latitude  float64
	Longitude float64
	Matched   bool
}

// Provider is the external coordinate-lookup service. It accepts a
// free-text query and returns the single best match, or an unmatched
// Result when the service finds nothing. Transient unavailability and
// timeouts surface as errors satisfying resilience.IsTransient.
type Provider interface {
	Geocode(ctx context.Context, query string) (Result, error)
}
