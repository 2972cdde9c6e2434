// README: Usage-accounting store backed by PostgreSQL (daily upsert counters).
package apiusage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Record increments the counter row for (today, method). One of api_calls
// or cache_hits grows by one depending on how the lookup was satisfied.
func (s *Store) Record(ctx context.Context, day time.Time, method string, cacheHit bool) error {
	apiInc, hitInc := 1, 0
	if cacheHit {
		apiInc, hitInc = 0, 1
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO api_usage_daily (day, method, api_calls, cache_hits)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day, method) DO UPDATE SET
			api_calls = api_usage_daily.api_calls + EXCLUDED.api_calls,
			cache_hits = api_usage_daily.cache_hits + EXCLUDED.cache_hits
	`, day.Format("2006-01-02"), method, apiInc, hitInc)
	return err
}

// Daily returns the per-method breakdown for one day.
func (s *Store) Daily(ctx context.Context, day time.Time) (Summary, error) {
	return s.summary(ctx, day.Format("2006-01-02"), `
		SELECT method, SUM(api_calls), SUM(cache_hits)
		FROM api_usage_daily
		WHERE day = $1
		GROUP BY method
		ORDER BY method`)
}

// Monthly returns the per-method breakdown for one month ("2006-01").
func (s *Store) Monthly(ctx context.Context, month string) (Summary, error) {
	return s.summary(ctx, month, `
		SELECT method, SUM(api_calls), SUM(cache_hits)
		FROM api_usage_daily
		WHERE to_char(day, 'YYYY-MM') = $1
		GROUP BY method
		ORDER BY method`)
}

func (s *Store) summary(ctx context.Context, period, query string) (Summary, error) {
	rows, err := s.db.Query(ctx, query, period)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	sum := Summary{Period: period}
	for rows.Next() {
		var m MethodStat
		if err := rows.Scan(&m.Method, &m.APICalls, &m.CacheHits); err != nil {
			return Summary{}, err
		}
		sum.Methods = append(sum.Methods, m)
		sum.APICalls += m.APICalls
		sum.CacheHits += m.CacheHits
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}
	sum.HitRate = hitRate(sum.APICalls, sum.CacheHits)
	return sum, nil
}

// Trend returns daily totals for the last n days, oldest first.
func (s *Store) Trend(ctx context.Context, since time.Time) ([]DayTotal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT to_char(day, 'YYYY-MM-DD'), SUM(api_calls), SUM(cache_hits)
		FROM api_usage_daily
		WHERE day >= $1
		GROUP BY day
		ORDER BY day`, since.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayTotal
	for rows.Next() {
		var d DayTotal
		if err := rows.Scan(&d.Day, &d.APICalls, &d.CacheHits); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
