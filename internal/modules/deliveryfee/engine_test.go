// README: Charge engine tests (precedence, tiers, clamps, fallback).
package deliveryfee

import (
	"encoding/json"
	"testing"

	"breadrun/internal/types"
)

func freeAbove(threshold float64) *Rule {
	return &Rule{
		ID:           "ov1",
		Type:         TypeOrderValue,
		Threshold:    types.RupeesToMoney(threshold),
		DeliveryType: DeliveryFree,
		Active:       true,
	}
}

func distanceTier(id string, start, end, price float64) Rule {
	return Rule{
		ID:      types.ID(id),
		Type:    TypeDistance,
		StartKm: start,
		EndKm:   end,
		Price:   types.RupeesToMoney(price),
		Active:  true,
	}
}

// twoTiers is the rule set from the documented scenarios: 0-5km ₹40, 5-10km ₹80.
func twoTiers() []Rule {
	return []Rule{
		distanceTier("d1", 0, 5, 40),
		distanceTier("d2", 5, 10, 80),
	}
}

func TestCalculateCharge(t *testing.T) {
	tests := []struct {
		name       string
		snap       RuleSnapshot
		distanceKm float64
		orderValue float64
		wantCharge float64
		wantFree   bool
		wantMethod string
	}{
		{
			name:       "order value free above threshold ignores distance",
			snap:       RuleSnapshot{OrderValue: freeAbove(500), Distance: twoTiers()},
			distanceKm: 12,
			orderValue: 600,
			wantCharge: 0,
			wantFree:   true,
			wantMethod: MethodOrderValue,
		},
		{
			name:       "below threshold falls through to distance tier",
			snap:       RuleSnapshot{OrderValue: freeAbove(500), Distance: twoTiers()},
			distanceKm: 7,
			orderValue: 300,
			wantCharge: 80,
			wantMethod: MethodDistance,
		},
		{
			name:       "no rules at all uses fixed fallback",
			snap:       RuleSnapshot{},
			distanceKm: 7,
			orderValue: 300,
			wantCharge: 80,
			wantMethod: MethodFallback,
		},
		{
			name:       "free delivery even at absurd distance",
			snap:       RuleSnapshot{OrderValue: freeAbove(500), Distance: twoTiers()},
			distanceKm: 10000,
			orderValue: 500, // exactly at threshold qualifies
			wantCharge: 0,
			wantFree:   true,
			wantMethod: MethodOrderValue,
		},
		{
			name: "fixed-price order value rule is terminal but not free",
			snap: RuleSnapshot{
				OrderValue: &Rule{
					Type:         TypeOrderValue,
					Threshold:    types.RupeesToMoney(500),
					DeliveryType: DeliveryFixed,
					FixedPrice:   types.RupeesToMoney(25),
					Active:       true,
				},
				Distance: twoTiers(),
			},
			distanceKm: 12,
			orderValue: 900,
			wantCharge: 25,
			wantMethod: MethodOrderValue,
		},
		{
			name:       "first tier",
			snap:       RuleSnapshot{Distance: twoTiers()},
			distanceKm: 2.5,
			orderValue: 300,
			wantCharge: 40,
			wantMethod: MethodDistance,
		},
		{
			name:       "clamp low at zero distance with nonzero lowest start",
			snap:       RuleSnapshot{Distance: []Rule{distanceTier("d1", 2, 5, 40), distanceTier("d2", 5, 10, 80)}},
			distanceKm: 0,
			orderValue: 300,
			wantCharge: 40,
			wantMethod: MethodDistance,
		},
		{
			name:       "clamp high beyond last tier",
			snap:       RuleSnapshot{Distance: twoTiers()},
			distanceKm: 999,
			orderValue: 300,
			wantCharge: 80,
			wantMethod: MethodDistance,
		},
		{
			name:       "shared boundary prices in the upper tier",
			snap:       RuleSnapshot{Distance: twoTiers()},
			distanceKm: 5.0,
			orderValue: 300,
			wantCharge: 80,
			wantMethod: MethodDistance,
		},
		{
			name:       "distance equal to top end clamps to top tier price",
			snap:       RuleSnapshot{Distance: twoTiers()},
			distanceKm: 10.0,
			orderValue: 300,
			wantCharge: 80,
			wantMethod: MethodDistance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCharge(tt.snap, tt.distanceKm, types.RupeesToMoney(tt.orderValue))
			if got.Charge.Rupees() != tt.wantCharge {
				t.Errorf("charge = %v, want %v", got.Charge.Rupees(), tt.wantCharge)
			}
			if got.FreeDelivery != tt.wantFree {
				t.Errorf("free = %v, want %v", got.FreeDelivery, tt.wantFree)
			}
			if got.Method != tt.wantMethod {
				t.Errorf("method = %q, want %q", got.Method, tt.wantMethod)
			}
			if got.Charge.Amount < 0 {
				t.Errorf("charge must never be negative, got %d", got.Charge.Amount)
			}
			if got.Details == nil {
				t.Error("details must always be populated")
			}
		})
	}
}

// TestCalculateCharge_Idempotent verifies repeated calls with the same
// snapshot and inputs return identical results.
func TestCalculateCharge_Idempotent(t *testing.T) {
	snap := RuleSnapshot{OrderValue: freeAbove(500), Distance: twoTiers()}
	first := CalculateCharge(snap, 7, types.RupeesToMoney(300))
	for i := 0; i < 10; i++ {
		got := CalculateCharge(snap, 7, types.RupeesToMoney(300))
		if got != first {
			t.Fatalf("call %d differed: %+v vs %+v", i, got, first)
		}
	}
}

// TestCalculateCharge_OrderValueDetailsJSON pins the serialized shape of the
// order-value details: money as rupee floats, like the rest of the response.
func TestCalculateCharge_OrderValueDetailsJSON(t *testing.T) {
	snap := RuleSnapshot{OrderValue: freeAbove(500), Distance: twoTiers()}
	got := CalculateCharge(snap, 12, types.RupeesToMoney(600))

	b, err := json.Marshal(got.Details)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"orderValue":600,"orderValueThreshold":500,"deliveryType":"free"}`
	if string(b) != want {
		t.Errorf("details json = %s, want %s", b, want)
	}
}

// TestCalculateCharge_ClampDetails verifies the clamp direction is reported.
func TestCalculateCharge_ClampDetails(t *testing.T) {
	snap := RuleSnapshot{Distance: []Rule{distanceTier("d1", 2, 5, 40), distanceTier("d2", 5, 10, 80)}}

	low := CalculateCharge(snap, 1, types.RupeesToMoney(100))
	if d, ok := low.Details.(DistanceDetails); !ok || d.Clamp != "low" {
		t.Errorf("expected clamp low, got %+v", low.Details)
	}

	high := CalculateCharge(snap, 50, types.RupeesToMoney(100))
	if d, ok := high.Details.(DistanceDetails); !ok || d.Clamp != "high" {
		t.Errorf("expected clamp high, got %+v", high.Details)
	}
}
