// README: Usage-accounting model for distance lookups (api calls vs cache hits).
package apiusage

import "breadrun/internal/types"

// MethodStat is the per-method breakdown for one period.
type MethodStat struct {
	Method    string `json:"method"`
	APICalls  int64  `json:"apiCalls"`
	CacheHits int64  `json:"cacheHits"`
}

// Summary aggregates one day or one month of lookups.
type Summary struct {
	Period    string       `json:"period"`
	APICalls  int64        `json:"apiCalls"`
	CacheHits int64        `json:"cacheHits"`
	HitRate   float64      `json:"hitRate"`
	Methods   []MethodStat `json:"methods"`
}

// DayTotal is one point in a trend series.
type DayTotal struct {
	Day       string `json:"day"`
	APICalls  int64  `json:"apiCalls"`
	CacheHits int64  `json:"cacheHits"`
}

// Projection extrapolates month-to-date api calls to a full-month cost.
type Projection struct {
	Month          string      `json:"month"`
	MonthToDate    int64       `json:"monthToDateCalls"`
	ProjectedCalls int64       `json:"projectedCalls"`
	ProjectedCost  types.Money `json:"-"`
	CostRupees     float64     `json:"projectedCost"`
	Currency       string      `json:"currency"`
}

// hitRate is the share of lookups served from cache, as a percentage.
func hitRate(apiCalls, cacheHits int64) float64 {
	total := apiCalls + cacheHits
	if total == 0 {
		return 0
	}
	return float64(cacheHits) / float64(total) * 100
}

// projectCalls extrapolates month-to-date calls across the whole month.
func projectCalls(monthToDate int64, daysElapsed, daysInMonth int) int64 {
	if daysElapsed <= 0 {
		return monthToDate
	}
	return monthToDate * int64(daysInMonth) / int64(daysElapsed)
}
