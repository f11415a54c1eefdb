// Package geo memoizes geocoding and travel-time lookups behind a TTL cache.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"

	"github.com/damien/match-engine/internal/types"
)

// TravelEstimate is the upstream provider's answer for one route.
type TravelEstimate struct {
	DurationMinutes float64 `json:"duration_minutes"`
	DistanceMeters  float64 `json:"distance_meters"`
}

// Provider performs the external travel-time lookup. Implementations must be
// safe for concurrent use.
type Provider interface {
	Lookup(ctx context.Context, origin, destination types.Location, mode types.TransportMode) (*TravelEstimate, error)
}

// HTTPProvider queries a travel-time HTTP API with bounded timeout and retry.
type HTTPProvider struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	timeout  time.Duration
	attempts uint
	logger   *zap.Logger
}

// NewHTTPProvider builds a provider. logger may be nil.
func NewHTTPProvider(baseURL, apiKey string, timeout time.Duration, attempts uint, logger *zap.Logger) *HTTPProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if attempts == 0 {
		attempts = 1
	}
	return &HTTPProvider{
		baseURL:  baseURL,
		apiKey:   apiKey,
		client:   &http.Client{},
		timeout:  timeout,
		attempts: attempts,
		logger:   logger,
	}
}

// Lookup fetches the travel estimate for a route. Timeouts map to
// ErrUpstreamTimeout, everything else to ErrUpstreamUnavailable.
func (p *HTTPProvider) Lookup(ctx context.Context, origin, destination types.Location, mode types.TransportMode) (*TravelEstimate, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var estimate TravelEstimate
	err := retry.Do(
		func() error {
			req, err := p.buildRequest(ctx, origin, destination, mode)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := p.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close() //nolint:errcheck

			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return retry.Unrecoverable(fmt.Errorf("provider rejected request: status %d", resp.StatusCode))
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("provider returned status %d", resp.StatusCode)
			}
			if err := json.NewDecoder(resp.Body).Decode(&estimate); err != nil {
				return fmt.Errorf("decoding provider response: %w", err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(p.attempts),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Debug("retrying travel-time lookup", zap.Uint("attempt", n), zap.Error(err))
		}),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return &estimate, nil
}

func (p *HTTPProvider) buildRequest(ctx context.Context, origin, destination types.Location, mode types.TransportMode) (*http.Request, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider URL: %w", err)
	}
	q := u.Query()
	q.Set("origin", origin.Key())
	q.Set("destination", destination.Key())
	q.Set("mode", string(mode))
	if origin.Coordinates != nil {
		q.Set("origin_coords", fmt.Sprintf("%f,%f", origin.Coordinates.Latitude, origin.Coordinates.Longitude))
	}
	if destination.Coordinates != nil {
		q.Set("destination_coords", fmt.Sprintf("%f,%f", destination.Coordinates.Latitude, destination.Coordinates.Longitude))
	}
	if p.apiKey != "" {
		q.Set("key", p.apiKey)
	}
	u.RawQuery = q.Encode()

	return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
}
