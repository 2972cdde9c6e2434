// README: Address store backed by PostgreSQL (read-only for fee calculation).
package address

import (
	"context"
	"database/sql"
	"errors"

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

func (s *Store) Get(ctx context.Context, id types.ID) (Address, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, line, area, pincode, city, state, lat, lng
		FROM addresses
		WHERE id = $1`, string(id))

	var a Address
	var area, pincode, city, state sql.NullString
	var lat, lng sql.NullFloat64

	err := row.Scan(&a.ID, &a.Line, &area, &pincode, &city, &state, &lat, &lng)
	if errors.Is(err, pgx.ErrNoRows) {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, err
	}

	a.Area = area.String
	a.Pincode = pincode.String
	a.City = city.String
	a.State = state.String
	if lat.Valid && lng.Valid {
		a.Coordinates = &types.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	return a, nil
}
