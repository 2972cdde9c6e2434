// README: Usage-accounting service; implements the resolver's Recorder and the read-only aggregates.
package apiusage

import (
	"context"
	"time"

	"breadrun/internal/logger"
	"breadrun/internal/modules/distance"
	"breadrun/internal/types"
)

// Counters is the storage contract the service needs; implemented by *Store.
type Counters interface {
	Record(ctx context.Context, day time.Time, method string, cacheHit bool) error
	Daily(ctx context.Context, day time.Time) (Summary, error)
	Monthly(ctx context.Context, month string) (Summary, error)
	Trend(ctx context.Context, since time.Time) ([]DayTotal, error)
}

type Service struct {
	store        Counters
	log          *logger.Logger
	perCallPaise int64
	now          func() time.Time
}

func NewService(store Counters, log *logger.Logger, perCallPaise int64) *Service {
	return &Service{store: store, log: log, perCallPaise: perCallPaise, now: time.Now}
}

// Record implements distance.Recorder. Accounting is advisory: a failed
// write is logged and swallowed so it can never affect a resolution.
func (s *Service) Record(ctx context.Context, method distance.Method, cacheHit bool) {
	if err := s.store.Record(ctx, s.now(), string(method), cacheHit); err != nil {
		s.log.WithError(err).Warn("recording distance lookup failed")
	}
}

func (s *Service) Daily(ctx context.Context, day time.Time) (Summary, error) {
	return s.store.Daily(ctx, day)
}

func (s *Service) Monthly(ctx context.Context, month string) (Summary, error) {
	return s.store.Monthly(ctx, month)
}

func (s *Service) Trend(ctx context.Context, days int) ([]DayTotal, error) {
	if days <= 0 {
		days = 7
	}
	since := s.now().AddDate(0, 0, -(days - 1))
	return s.store.Trend(ctx, since)
}

// ProjectedMonthlyCost extrapolates this month's billable api calls to a
// full-month figure and prices it at the configured per-call rate. Fallback
// resolutions never reach the provider, so they are not billable and are
// excluded from the count.
func (s *Service) ProjectedMonthlyCost(ctx context.Context) (Projection, error) {
	now := s.now()
	month := now.Format("2006-01")
	sum, err := s.store.Monthly(ctx, month)
	if err != nil {
		return Projection{}, err
	}

	var calls int64
	for _, m := range sum.Methods {
		if m.Method == string(distance.MethodFallback) {
			continue
		}
		calls += m.APICalls
	}

	daysElapsed := now.Day()
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	projected := projectCalls(calls, daysElapsed, daysInMonth)
	cost := types.Money{Amount: projected * s.perCallPaise, Currency: types.DefaultCurrency}

	return Projection{
		Month:          month,
		MonthToDate:    calls,
		ProjectedCalls: projected,
		ProjectedCost:  cost,
		CostRupees:     cost.Rupees(),
		Currency:       cost.Currency,
	}, nil
}
