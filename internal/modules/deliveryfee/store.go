// README: Delivery-charge rule store backed by PostgreSQL.
package deliveryfee

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"breadrun/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ActiveSnapshot loads the active rules the engine calculates against:
// at most one order-value rule and the distance tiers sorted by start_km.
func (s *Store) ActiveSnapshot(ctx context.Context) (RuleSnapshot, error) {
	rules, err := s.list(ctx, true)
	if err != nil {
		return RuleSnapshot{}, err
	}

	var snap RuleSnapshot
	for i := range rules {
		r := rules[i]
		switch r.Type {
		case TypeOrderValue:
			if snap.OrderValue == nil {
				snap.OrderValue = &r
			}
		case TypeDistance:
			snap.Distance = append(snap.Distance, r)
		}
	}
	sort.Slice(snap.Distance, func(i, j int) bool {
		return snap.Distance[i].StartKm < snap.Distance[j].StartKm
	})
	return snap, nil
}

func (s *Store) List(ctx context.Context) ([]Rule, error) {
	return s.list(ctx, false)
}

func (s *Store) list(ctx context.Context, activeOnly bool) ([]Rule, error) {
	q := `
		SELECT id, rule_type, threshold_paise, delivery_type, fixed_price_paise,
		       start_km, end_km, price_paise, is_active, created_at, updated_at
		FROM delivery_charge_rules`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY created_at`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id types.ID) (Rule, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, rule_type, threshold_paise, delivery_type, fixed_price_paise,
		       start_km, end_km, price_paise, is_active, created_at, updated_at
		FROM delivery_charge_rules
		WHERE id = $1`, string(id))

	r, err := scanRule(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rule{}, ErrNotFound
	}
	return r, err
}

// Create validates the rule, enforces the no-overlap and single-active-
// order-value invariants against the current active set, and inserts it.
func (s *Store) Create(ctx context.Context, r *Rule) error {
	if err := ValidateRule(*r); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = types.ID(uuid.NewString())
	}
	if r.Active {
		if err := s.checkInvariants(ctx, *r); err != nil {
			return err
		}
	}

	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	_, err := s.db.Exec(ctx, `
		INSERT INTO delivery_charge_rules (
			id, rule_type, threshold_paise, delivery_type, fixed_price_paise,
			start_km, end_km, price_paise, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		string(r.ID), r.Type, r.Threshold.Amount, r.DeliveryType, r.FixedPrice.Amount,
		r.StartKm, r.EndKm, r.Price.Amount, r.Active, r.CreatedAt, r.UpdatedAt,
	)
	return err
}

func (s *Store) Update(ctx context.Context, r *Rule) error {
	if err := ValidateRule(*r); err != nil {
		return err
	}
	if _, err := s.Get(ctx, r.ID); err != nil {
		return err
	}
	if r.Active {
		if err := s.checkInvariants(ctx, *r); err != nil {
			return err
		}
	}

	r.UpdatedAt = time.Now()
	tag, err := s.db.Exec(ctx, `
		UPDATE delivery_charge_rules SET
			rule_type = $2, threshold_paise = $3, delivery_type = $4,
			fixed_price_paise = $5, start_km = $6, end_km = $7,
			price_paise = $8, is_active = $9, updated_at = $10
		WHERE id = $1`,
		string(r.ID), r.Type, r.Threshold.Amount, r.DeliveryType, r.FixedPrice.Amount,
		r.StartKm, r.EndKm, r.Price.Amount, r.Active, r.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM delivery_charge_rules WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// checkInvariants enforces the write-time data invariants so the read path
// can assume they hold.
func (s *Store) checkInvariants(ctx context.Context, candidate Rule) error {
	active, err := s.list(ctx, true)
	if err != nil {
		return err
	}
	switch candidate.Type {
	case TypeDistance:
		return CheckRangeOverlap(active, candidate)
	case TypeOrderValue:
		for _, r := range active {
			if r.Type == TypeOrderValue && r.ID != candidate.ID {
				return ErrDuplicateOrderValueRule
			}
		}
	}
	return nil
}

func scanRule(row pgx.Row) (Rule, error) {
	var r Rule
	var thresholdPaise, fixedPaise, pricePaise int64
	err := row.Scan(
		&r.ID, &r.Type, &thresholdPaise, &r.DeliveryType, &fixedPaise,
		&r.StartKm, &r.EndKm, &pricePaise, &r.Active, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return Rule{}, err
	}
	r.Threshold = types.Money{Amount: thresholdPaise, Currency: types.DefaultCurrency}
	r.FixedPrice = types.Money{Amount: fixedPaise, Currency: types.DefaultCurrency}
	r.Price = types.Money{Amount: pricePaise, Currency: types.DefaultCurrency}
	return r, nil
}
