package geo

import "errors"

// Upstream failures are recovered per-criterion by the scorers: they convert
// to a neutral score with an explanatory rationale and never fail a match.
var (
	// ErrUpstreamTimeout marks a lookup that exceeded its deadline.
	ErrUpstreamTimeout = errors.New("travel-time lookup timed out")

	// ErrUpstreamUnavailable marks a provider that is down or misconfigured.
	ErrUpstreamUnavailable = errors.New("travel-time provider unavailable")

	// ErrNoProvider marks a cache constructed without an upstream provider.
	ErrNoProvider = errors.New("no travel-time provider configured")
)
