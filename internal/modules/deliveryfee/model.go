// README: Delivery-charge rule model and write-time range validation.
package deliveryfee

import (
	"errors"
	"time"

	"breadrun/internal/types"
)

var (
	ErrNotFound                = errors.New("delivery charge rule not found")
	ErrInvalidRule             = errors.New("invalid delivery charge rule")
	ErrInvalidRange            = errors.New("start_km must be less than end_km")
	ErrOverlappingRange        = errors.New("distance range overlaps an active rule")
	ErrDuplicateOrderValueRule = errors.New("an active order-value rule already exists")
)

// Rule kinds.
const (
	TypeOrderValue = "order_value"
	TypeDistance   = "distance"
)

// Delivery types for order-value rules.
const (
	DeliveryFree  = "free"
	DeliveryFixed = "fixed"
)

// Rule is one delivery-charge configuration row. Order-value rules use
// Threshold/DeliveryType/FixedPrice; distance rules use StartKm/EndKm/Price.
type Rule struct {
	ID           types.ID
	Type         string
	Threshold    types.Money
	DeliveryType string
	FixedPrice   types.Money
	StartKm      float64
	EndKm        float64
	Price        types.Money
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RuleSnapshot is the read-only rule set one calculation works against.
// Distance rules are sorted by StartKm ascending.
type RuleSnapshot struct {
	OrderValue *Rule
	Distance   []Rule
}

// ValidateRule checks the fields of a rule before it is written.
func ValidateRule(r Rule) error {
	switch r.Type {
	case TypeOrderValue:
		if r.Threshold.Amount <= 0 {
			return ErrInvalidRule
		}
		if r.DeliveryType != DeliveryFree && r.DeliveryType != DeliveryFixed {
			return ErrInvalidRule
		}
		if r.DeliveryType == DeliveryFixed && r.FixedPrice.Amount < 0 {
			return ErrInvalidRule
		}
	case TypeDistance:
		if r.StartKm < 0 || r.StartKm >= r.EndKm {
			return ErrInvalidRange
		}
		if r.Price.Amount < 0 {
			return ErrInvalidRule
		}
	default:
		return ErrInvalidRule
	}
	return nil
}

// CheckRangeOverlap rejects a candidate distance rule that intersects any
// active distance rule. Ranges are half-open [start, end), so adjacent tiers
// sharing a boundary do not overlap.
func CheckRangeOverlap(existing []Rule, candidate Rule) error {
	for _, r := range existing {
		if !r.Active || r.Type != TypeDistance || r.ID == candidate.ID {
			continue
		}
		if candidate.StartKm < r.EndKm && r.StartKm < candidate.EndKm {
			return ErrOverlappingRange
		}
	}
	return nil
}
