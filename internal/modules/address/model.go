// README: Customer address model; feeds the distance query.
package address

import (
	"errors"

	"breadrun/internal/types"
)

var ErrNotFound = errors.New("address not found")

type Address struct {
	ID          types.ID
	Line        string
	Area        string
	Pincode     string
	City        string
	State       string
	Coordinates *types.Point
}

// FullText is the single-line form used for the full-address geocoding tier.
func (a Address) FullText() string {
	out := a.Line
	if a.Area != "" {
		out += ", " + a.Area
	}
	if a.City != "" {
		out += ", " + a.City
	}
	if a.Pincode != "" {
		out += " " + a.Pincode
	}
	return out
}
