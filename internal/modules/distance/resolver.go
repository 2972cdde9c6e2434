// README: Distance resolver; strict-priority fallback chain over cache, matrix API, and fixed defaults.
package distance

import (
	"context"
	"fmt"
	"math"
	"strings"

	"breadrun/internal/logger"
)

// Locality completes partial destinations (area/pincode tiers) into a
// geocodable string.
type Locality struct {
	City    string
	State   string
	Country string
}

// Default fallback values used when every tier fails; overridable per
// deployment through NewResolver.
const (
	DefaultFallbackKm      = 15.0
	DefaultFallbackMinutes = 30.0
	fallbackConfidence     = 0.3
)

// tier is one strategy in the fallback chain. A tier applies when its
// trigger fields are present; a failed provider call advances the chain and
// is never retried.
type tier struct {
	method      Method
	accuracy    Accuracy
	confidence  float64
	applies     func(Query) bool
	destination func(Query, Locality) string
}

var tiers = []tier{
	{
		method:     MethodGPS,
		accuracy:   AccuracyExact,
		confidence: 0.95,
		applies:    func(q Query) bool { return q.Coordinates != nil },
		destination: func(q Query, _ Locality) string {
			return fmt.Sprintf("%f,%f", q.Coordinates.Lat, q.Coordinates.Lng)
		},
	},
	{
		method:     MethodAPI,
		accuracy:   AccuracyPrecise,
		confidence: 0.85,
		applies:    func(q Query) bool { return strings.TrimSpace(q.Address) != "" },
		destination: func(q Query, _ Locality) string {
			return strings.TrimSpace(q.Address)
		},
	},
	{
		method:     MethodPincodeLookup,
		accuracy:   AccuracyApproximate,
		confidence: 0.65,
		applies:    func(q Query) bool { return q.Area != "" && q.Pincode != "" },
		destination: func(q Query, l Locality) string {
			return fmt.Sprintf("%s, %s, %s, %s, %s", q.Area, q.Pincode, l.City, l.State, l.Country)
		},
	},
	{
		method:     MethodPincodeLookup,
		accuracy:   AccuracyApproximate,
		confidence: 0.5,
		applies:    func(q Query) bool { return q.Pincode != "" },
		destination: func(q Query, l Locality) string {
			return fmt.Sprintf("%s, %s, %s, %s", q.Pincode, l.City, l.State, l.Country)
		},
	},
}

type Resolver struct {
	matrix   Matrix
	cache    Cache
	recorder Recorder
	log      *logger.Logger
	origin   string
	locality Locality
	fallback Result
}

func NewResolver(matrix Matrix, cache Cache, recorder Recorder, log *logger.Logger, origin string, locality Locality, fallbackKm, fallbackMinutes float64) *Resolver {
	if fallbackKm <= 0 {
		fallbackKm = DefaultFallbackKm
	}
	if fallbackMinutes <= 0 {
		fallbackMinutes = DefaultFallbackMinutes
	}
	return &Resolver{
		matrix:   matrix,
		cache:    cache,
		recorder: recorder,
		log:      log,
		origin:   origin,
		locality: locality,
		fallback: Result{
			DistanceKm:  fallbackKm,
			DurationMin: fallbackMinutes,
			Accuracy:    AccuracyApproximate,
			Method:      MethodFallback,
			Confidence:  fallbackConfidence,
		},
	}
}

// Resolve walks the tier chain in priority order and returns the first
// success. It never returns an error: total failure terminates at the fixed
// fallback values. Cache and recorder failures are logged, never surfaced.
func (r *Resolver) Resolve(ctx context.Context, q Query) Result {
	for _, t := range tiers {
		if !t.applies(q) {
			continue
		}
		dest := t.destination(q, r.locality)
		key := cacheKey(r.origin, dest)

		if cached, ok := r.cacheGet(ctx, key); ok {
			r.record(ctx, cached.Method, true)
			cached.Method = MethodCached
			return cached
		}

		if r.matrix == nil {
			r.log.Warn("distance matrix client not configured, skipping external lookup")
			break
		}

		meters, seconds, err := r.matrix.Distance(ctx, r.origin, dest)
		if err != nil {
			r.log.WithError(err).WithField("method", t.method).Warn("distance tier failed")
			continue
		}

		res := Result{
			DistanceKm:  math.Round(float64(meters)/1000*10) / 10,
			DurationMin: math.Round(float64(seconds) / 60),
			Accuracy:    t.accuracy,
			Method:      t.method,
			Confidence:  t.confidence,
		}
		r.cacheSet(ctx, key, res)
		r.record(ctx, t.method, false)
		return res
	}

	r.record(ctx, MethodFallback, false)
	return r.fallback
}

func (r *Resolver) cacheGet(ctx context.Context, key string) (Result, bool) {
	if r.cache == nil {
		return Result{}, false
	}
	res, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.WithError(err).Warn("distance cache read failed")
		return Result{}, false
	}
	return res, ok
}

func (r *Resolver) cacheSet(ctx context.Context, key string, res Result) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, res); err != nil {
		r.log.WithError(err).Warn("distance cache write failed")
	}
}

func (r *Resolver) record(ctx context.Context, method Method, cacheHit bool) {
	if r.recorder == nil {
		return
	}
	r.recorder.Record(ctx, method, cacheHit)
}

// cacheKey identifies an (origin, destination) pair. Keys are normalised so
// equivalent destinations written with different casing or spacing hit the
// same entry.
func cacheKey(origin, destination string) string {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return fmt.Sprintf("distance:%s|%s", norm(origin), norm(destination))
}
