// README: Delivery handler tests (validation boundary, breakdown, resolver wiring).
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"breadrun/internal/http/handlers"
	"breadrun/internal/modules/address"
	"breadrun/internal/modules/deliveryfee"
	"breadrun/internal/modules/distance"
	"breadrun/internal/types"
)

// stubFees is a test double for the fee calculator. It prices every
// delivery at a flat ₹40 and records the inputs it saw.
type stubFees struct {
	lastDistance   float64
	lastOrderValue types.Money
	calls          int
}

func (s *stubFees) Calculate(_ context.Context, distanceKm float64, orderValue types.Money) deliveryfee.Result {
	s.calls++
	s.lastDistance = distanceKm
	s.lastOrderValue = orderValue
	return deliveryfee.Result{
		Charge: types.RupeesToMoney(40),
		Method: deliveryfee.MethodDistance,
		Details: deliveryfee.DistanceDetails{
			DistanceKm: distanceKm,
			StartKm:    0,
			EndKm:      5,
		},
	}
}

// stubResolver returns a fixed resolution and counts invocations.
type stubResolver struct {
	res   distance.Result
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, _ distance.Query) distance.Result {
	s.calls++
	return s.res
}

// stubAddresses serves a single known address.
type stubAddresses struct {
	addr address.Address
}

func (s *stubAddresses) Get(_ context.Context, id types.ID) (address.Address, error) {
	if id != s.addr.ID {
		return address.Address{}, address.ErrNotFound
	}
	return s.addr, nil
}

func buildTestRouter(fees *stubFees, resolver *stubResolver, addrs *stubAddresses) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewDeliveryHandler(fees, resolver, addrs)
	r.POST("/api/delivery/calculate", h.Calculate)
	return r
}

func doCalculate(r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, "/api/delivery/calculate", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func defaultStubs() (*stubFees, *stubResolver, *stubAddresses) {
	return &stubFees{},
		&stubResolver{res: distance.Result{DistanceKm: 7, DurationMin: 18, Accuracy: distance.AccuracyPrecise, Method: distance.MethodAPI, Confidence: 0.85}},
		&stubAddresses{addr: address.Address{ID: "addr1", Line: "4 Brigade Road", Pincode: "560001"}}
}

func TestCalculate_MissingOrderValue(t *testing.T) {
	fees, resolver, addrs := defaultStubs()
	r := buildTestRouter(fees, resolver, addrs)

	w := doCalculate(r, map[string]any{"addressText": "4 Brigade Road"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if fees.calls != 0 {
		t.Error("engine must not run without a valid order value")
	}
}

func TestCalculate_NegativeDistanceRejected(t *testing.T) {
	fees, resolver, addrs := defaultStubs()
	r := buildTestRouter(fees, resolver, addrs)

	w := doCalculate(r, map[string]any{"orderValue": 300, "distance": -1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculate_SuppliedDistanceSkipsResolver(t *testing.T) {
	fees, resolver, addrs := defaultStubs()
	r := buildTestRouter(fees, resolver, addrs)

	w := doCalculate(r, map[string]any{"orderValue": 300, "distance": 3.5})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resolver.calls != 0 {
		t.Error("resolver must not run when distance is supplied")
	}
	if fees.lastDistance != 3.5 {
		t.Errorf("engine saw distance %v, want 3.5", fees.lastDistance)
	}

	var resp struct {
		DeliveryCharge float64 `json:"deliveryCharge"`
		Breakdown      struct {
			Subtotal       float64 `json:"subtotal"`
			DeliveryCharge float64 `json:"deliveryCharge"`
			Total          float64 `json:"total"`
		} `json:"breakdown"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Breakdown.Subtotal != 300 || resp.Breakdown.DeliveryCharge != 40 || resp.Breakdown.Total != 340 {
		t.Errorf("breakdown = %+v", resp.Breakdown)
	}
}

func TestCalculate_ResolvesFromAddressID(t *testing.T) {
	fees, resolver, addrs := defaultStubs()
	r := buildTestRouter(fees, resolver, addrs)

	w := doCalculate(r, map[string]any{"orderValue": 300, "addressId": "addr1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resolver.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", resolver.calls)
	}
	if fees.lastDistance != 7 {
		t.Errorf("engine saw distance %v, want the resolved 7", fees.lastDistance)
	}

	var resp struct {
		CalculationMethod string           `json:"calculationMethod"`
		Distance          *distance.Result `json:"distance"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Distance == nil || resp.Distance.Method != distance.MethodAPI {
		t.Errorf("response distance = %+v", resp.Distance)
	}
}

func TestCalculate_UnknownAddressID(t *testing.T) {
	fees, resolver, addrs := defaultStubs()
	r := buildTestRouter(fees, resolver, addrs)

	w := doCalculate(r, map[string]any{"orderValue": 300, "addressId": "nope"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculate_OrderValueInPaise(t *testing.T) {
	fees, resolver, addrs := defaultStubs()
	r := buildTestRouter(fees, resolver, addrs)

	w := doCalculate(r, map[string]any{"orderValue": 499.5, "distance": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if fees.lastOrderValue.Amount != 49950 {
		t.Errorf("engine saw %d paise, want 49950", fees.lastOrderValue.Amount)
	}
}
