// README: Admin handlers for delivery-charge rules and cache maintenance.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"breadrun/internal/modules/deliveryfee"
	"breadrun/internal/modules/distance"
	"breadrun/internal/types"
)

// RuleAdmin is the rule management surface; implemented by *deliveryfee.Service.
type RuleAdmin interface {
	ListRules(ctx context.Context) ([]deliveryfee.Rule, error)
	CreateRule(ctx context.Context, r *deliveryfee.Rule) error
	UpdateRule(ctx context.Context, r *deliveryfee.Rule) error
	DeleteRule(ctx context.Context, id types.ID) error
}

type AdminHandler struct {
	rules RuleAdmin
	cache distance.Cache
}

func NewAdminHandler(rules RuleAdmin, cache distance.Cache) *AdminHandler {
	return &AdminHandler{rules: rules, cache: cache}
}

type ruleRequest struct {
	Type         string  `json:"type"`
	Threshold    float64 `json:"threshold"`
	DeliveryType string  `json:"deliveryType"`
	FixedPrice   float64 `json:"fixedPrice"`
	StartKm      float64 `json:"startKm"`
	EndKm        float64 `json:"endKm"`
	Price        float64 `json:"price"`
	Active       bool    `json:"active"`
}

type ruleResponse struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Threshold    float64 `json:"threshold,omitempty"`
	DeliveryType string  `json:"deliveryType,omitempty"`
	FixedPrice   float64 `json:"fixedPrice,omitempty"`
	StartKm      float64 `json:"startKm"`
	EndKm        float64 `json:"endKm"`
	Price        float64 `json:"price,omitempty"`
	Active       bool    `json:"active"`
}

func toRule(req ruleRequest) deliveryfee.Rule {
	return deliveryfee.Rule{
		Type:         req.Type,
		Threshold:    types.RupeesToMoney(req.Threshold),
		DeliveryType: req.DeliveryType,
		FixedPrice:   types.RupeesToMoney(req.FixedPrice),
		StartKm:      req.StartKm,
		EndKm:        req.EndKm,
		Price:        types.RupeesToMoney(req.Price),
		Active:       req.Active,
	}
}

func toRuleResponse(r deliveryfee.Rule) ruleResponse {
	return ruleResponse{
		ID:           string(r.ID),
		Type:         r.Type,
		Threshold:    r.Threshold.Rupees(),
		DeliveryType: r.DeliveryType,
		FixedPrice:   r.FixedPrice.Rupees(),
		StartKm:      r.StartKm,
		EndKm:        r.EndKm,
		Price:        r.Price.Rupees(),
		Active:       r.Active,
	}
}

func (h *AdminHandler) ListRules(c *gin.Context) {
	rules, err := h.rules.ListRules(c.Request.Context())
	if err != nil {
		writeRuleError(c, err)
		return
	}
	out := make([]ruleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, toRuleResponse(r))
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *AdminHandler) CreateRule(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	rule := toRule(req)
	if err := h.rules.CreateRule(c.Request.Context(), &rule); err != nil {
		writeRuleError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toRuleResponse(rule))
}

func (h *AdminHandler) UpdateRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing id")
		return
	}
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	rule := toRule(req)
	rule.ID = types.ID(id)
	if err := h.rules.UpdateRule(c.Request.Context(), &rule); err != nil {
		writeRuleError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toRuleResponse(rule))
}

func (h *AdminHandler) DeleteRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing id")
		return
	}
	if err := h.rules.DeleteRule(c.Request.Context(), types.ID(id)); err != nil {
		writeRuleError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "deleted"})
}

// CleanupDistanceCache removes expired distance entries on demand.
func (h *AdminHandler) CleanupDistanceCache(c *gin.Context) {
	removed, err := h.cache.CleanupExpired(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "cache cleanup failed")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"removed": removed})
}
