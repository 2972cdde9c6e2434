// README: Pure delivery-charge calculation (order-value precedence, distance tiers, clamp, fallback).
package deliveryfee

import "breadrun/internal/types"

// Calculation methods reported in a Result.
const (
	MethodOrderValue = "order_value"
	MethodDistance   = "distance"
	MethodFallback   = "fallback"
)

// FallbackChargePaise is the charge applied when no distance rules exist.
const FallbackChargePaise = 8000

// Result is the engine's output. It is recomputed per request and never
// persisted.
type Result struct {
	Charge       types.Money
	FreeDelivery bool
	Method       string
	Details      Details
}

// Details is a tagged union; exactly one concrete type accompanies each
// calculation method.
type Details interface {
	isDetails()
}

// OrderValueDetails reports monetary values in rupees, matching every other
// money field on the API surface.
type OrderValueDetails struct {
	OrderValue   float64 `json:"orderValue"`
	Threshold    float64 `json:"orderValueThreshold"`
	DeliveryType string  `json:"deliveryType"`
}

type DistanceDetails struct {
	DistanceKm float64 `json:"distance"`
	StartKm    float64 `json:"startKm"`
	EndKm      float64 `json:"endKm"`
	// Clamp is "low" or "high" when the distance fell outside every
	// configured range and the nearest boundary tier was used.
	Clamp string `json:"clamp,omitempty"`
}

type FallbackDetails struct {
	DistanceKm float64 `json:"distance"`
	Reason     string  `json:"reason"`
}

func (OrderValueDetails) isDetails() {}
func (DistanceDetails) isDetails()   {}
func (FallbackDetails) isDetails()   {}

// CalculateCharge computes the delivery charge for the given rule snapshot,
// distance and order value. It is pure: no I/O, no side effects, and it
// never fails for any numeric input. Precedence is strict: the order-value
// rule is terminal when its threshold is met, distance tiers apply
// otherwise, and a fixed fallback covers an empty rule set. Tier matching
// is half-open (startKm <= d < endKm); distances outside every range are
// priced by the nearest boundary tier.
func CalculateCharge(snap RuleSnapshot, distanceKm float64, orderValue types.Money) Result {
	if r := snap.OrderValue; r != nil && orderValue.Amount >= r.Threshold.Amount {
		d := OrderValueDetails{
			OrderValue:   orderValue.Rupees(),
			Threshold:    r.Threshold.Rupees(),
			DeliveryType: r.DeliveryType,
		}
		if r.DeliveryType == DeliveryFree {
			return Result{
				Charge:       types.Money{Amount: 0, Currency: types.DefaultCurrency},
				FreeDelivery: true,
				Method:       MethodOrderValue,
				Details:      d,
			}
		}
		return Result{
			Charge:  r.FixedPrice,
			Method:  MethodOrderValue,
			Details: d,
		}
	}

	if len(snap.Distance) == 0 {
		return Result{
			Charge:  types.Money{Amount: FallbackChargePaise, Currency: types.DefaultCurrency},
			Method:  MethodFallback,
			Details: FallbackDetails{DistanceKm: distanceKm, Reason: "no distance rules configured"},
		}
	}

	for _, r := range snap.Distance {
		if distanceKm >= r.StartKm && distanceKm < r.EndKm {
			return Result{
				Charge: r.Price,
				Method: MethodDistance,
				Details: DistanceDetails{
					DistanceKm: distanceKm,
					StartKm:    r.StartKm,
					EndKm:      r.EndKm,
				},
			}
		}
	}

	lowest := snap.Distance[0]
	if distanceKm < lowest.StartKm {
		return Result{
			Charge: lowest.Price,
			Method: MethodDistance,
			Details: DistanceDetails{
				DistanceKm: distanceKm,
				StartKm:    lowest.StartKm,
				EndKm:      lowest.EndKm,
				Clamp:      "low",
			},
		}
	}

	highest := snap.Distance[len(snap.Distance)-1]
	return Result{
		Charge: highest.Price,
		Method: MethodDistance,
		Details: DistanceDetails{
			DistanceKm: distanceKm,
			StartKm:    highest.StartKm,
			EndKm:      highest.EndKm,
			Clamp:      "high",
		},
	}
}
