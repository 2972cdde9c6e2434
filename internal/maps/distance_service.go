// README: Distance-matrix client; wraps the Google Maps API for the resolver.
package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// DistanceService handles interactions with the Google Distance Matrix API.
type DistanceService struct {
	client  *maps.Client
	timeout time.Duration
}

// NewDistanceService creates a new DistanceService with the given API key.
func NewDistanceService(apiKey string, timeout time.Duration) (*DistanceService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("maps api key is not configured")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DistanceService{client: client, timeout: timeout}, nil
}

// Distance returns the driving distance in meters and duration in seconds
// from origin to destination. The element status must be "OK"; anything else
// is an error so the caller can fall through to the next resolution tier.
func (s *DistanceService) Distance(ctx context.Context, origin, destination string) (int, int, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	r := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return 0, 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, 0, fmt.Errorf("no matrix element returned")
	}

	elem := resp.Rows[0].Elements[0]
	if elem.Status != "OK" {
		return 0, 0, fmt.Errorf("matrix element status %q", elem.Status)
	}

	return elem.Distance.Meters, int(elem.Duration.Seconds()), nil
}
