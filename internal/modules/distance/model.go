// README: Distance query/result model and resolution method tags.
package distance

import (
	"context"

	"breadrun/internal/types"
)

// Accuracy tags, from most to least confident input source.
type Accuracy string

const (
	AccuracyExact       Accuracy = "exact"
	AccuracyPrecise     Accuracy = "precise"
	AccuracyApproximate Accuracy = "approximate"
)

// Method records which source satisfied a resolution.
type Method string

const (
	MethodGPS           Method = "gps"
	MethodAPI           Method = "api"
	MethodPincodeLookup Method = "pincode_lookup"
	MethodCached        Method = "cached"
	MethodFallback      Method = "fallback"
)

// Query is the ephemeral input to a resolution. Which fields are populated
// decides the accuracy tier.
type Query struct {
	Coordinates *types.Point
	Address     string
	Pincode     string
	Area        string
}

// Result is a resolved distance. It may be cached keyed by
// (origin, tier-specific destination) within a TTL window.
type Result struct {
	DistanceKm  float64  `json:"distanceKm"`
	DurationMin float64  `json:"durationMin"`
	Accuracy    Accuracy `json:"accuracy"`
	Method      Method   `json:"method"`
	Confidence  float64  `json:"confidence"`
}

// Matrix is the outbound distance-matrix dependency.
type Matrix interface {
	Distance(ctx context.Context, origin, destination string) (meters int, seconds int, err error)
}

// Cache stores resolved distances with a bounded TTL. Expired entries are
// evicted lazily on read; CleanupExpired is the operator-invoked sweep.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, res Result) error
	CleanupExpired(ctx context.Context) (int, error)
}

// Recorder accounts for every resolution (api call vs cache hit, by
// method). Advisory only; it never affects the resolver's decision.
type Recorder interface {
	Record(ctx context.Context, method Method, cacheHit bool)
}
