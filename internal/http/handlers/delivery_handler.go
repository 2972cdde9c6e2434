// README: Delivery calculation handler (checkout/cart inbound contract).
package handlers

import (
	"context"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"breadrun/internal/modules/address"
	"breadrun/internal/modules/deliveryfee"
	"breadrun/internal/modules/distance"
	"breadrun/internal/types"
)

// FeeCalculator computes the delivery charge for a distance and order value.
type FeeCalculator interface {
	Calculate(ctx context.Context, distanceKm float64, orderValue types.Money) deliveryfee.Result
}

// Resolver supplies the distance input through the fallback chain.
type Resolver interface {
	Resolve(ctx context.Context, q distance.Query) distance.Result
}

// Addresses resolves a stored address by id.
type Addresses interface {
	Get(ctx context.Context, id types.ID) (address.Address, error)
}

type DeliveryHandler struct {
	fees      FeeCalculator
	distances Resolver
	addresses Addresses
}

func NewDeliveryHandler(fees FeeCalculator, distances Resolver, addresses Addresses) *DeliveryHandler {
	return &DeliveryHandler{fees: fees, distances: distances, addresses: addresses}
}

type calculateRequest struct {
	AddressID   string   `json:"addressId"`
	OrderValue  float64  `json:"orderValue"`
	CheckoutID  string   `json:"checkoutId"`
	AddressText string   `json:"addressText"`
	Distance    *float64 `json:"distance"`
}

type breakdown struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	Total          float64 `json:"total"`
}

type calculateResponse struct {
	DeliveryCharge    float64             `json:"deliveryCharge"`
	IsFreeDelivery    bool                `json:"isFreeDelivery"`
	CalculationMethod string              `json:"calculationMethod"`
	Details           deliveryfee.Details `json:"details"`
	Distance          *distance.Result    `json:"distance,omitempty"`
	Breakdown         breakdown           `json:"breakdown"`
	CheckoutID        string              `json:"checkoutId,omitempty"`
}

// Calculate validates the order value, obtains a distance (supplied by the
// caller or resolved through the fallback chain) and returns the charge
// with a checkout breakdown. Validation failures are the only errors the
// customer ever sees; everything downstream degrades to fallback pricing.
func (h *DeliveryHandler) Calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderValue <= 0 || math.IsNaN(req.OrderValue) || math.IsInf(req.OrderValue, 0) {
		writeError(c, http.StatusBadRequest, "orderValue must be a positive amount")
		return
	}

	var distanceKm float64
	var resolved *distance.Result
	switch {
	case req.Distance != nil:
		d := *req.Distance
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			writeError(c, http.StatusBadRequest, "distance must be a non-negative number")
			return
		}
		distanceKm = d
	default:
		q, ok := h.buildQuery(c, req)
		if !ok {
			return
		}
		res := h.distances.Resolve(c.Request.Context(), q)
		resolved = &res
		distanceKm = res.DistanceKm
	}

	orderValue := types.RupeesToMoney(req.OrderValue)
	result := h.fees.Calculate(c.Request.Context(), distanceKm, orderValue)

	charge := result.Charge.Rupees()
	writeJSON(c, http.StatusOK, calculateResponse{
		DeliveryCharge:    charge,
		IsFreeDelivery:    result.FreeDelivery,
		CalculationMethod: result.Method,
		Details:           result.Details,
		Distance:          resolved,
		Breakdown: breakdown{
			Subtotal:       req.OrderValue,
			DeliveryCharge: charge,
			Total:          req.OrderValue + charge,
		},
		CheckoutID: req.CheckoutID,
	})
}

// buildQuery assembles the distance query from the stored address and/or
// the free-form address text. An unknown addressId is a caller error; an
// empty query is not, the resolver prices it with the fixed default.
func (h *DeliveryHandler) buildQuery(c *gin.Context, req calculateRequest) (distance.Query, bool) {
	var q distance.Query
	if req.AddressID != "" {
		addr, err := h.addresses.Get(c.Request.Context(), types.ID(req.AddressID))
		if err == address.ErrNotFound {
			writeError(c, http.StatusBadRequest, "unknown addressId")
			return q, false
		}
		if err != nil {
			// Storage trouble must not fail checkout; resolve with what we have.
			q = distance.Query{Address: req.AddressText}
			return q, true
		}
		q = distance.Query{
			Coordinates: addr.Coordinates,
			Address:     addr.FullText(),
			Pincode:     addr.Pincode,
			Area:        addr.Area,
		}
	}
	if req.AddressText != "" {
		q.Address = req.AddressText
	}
	return q, true
}
