package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/personamatch-backend/internal/http/response"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
	"github.com/yungbote/personamatch-backend/internal/services"
)

type PricingHandler struct {
	log     *logger.Logger
	pricing services.PricingService
}

func NewPricingHandler(log *logger.Logger, pricing services.PricingService) *PricingHandler {
	return &PricingHandler{log: log.With("handler", "PricingHandler"), pricing: pricing}
}

type productSimulateRequest struct {
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
	Steps    int      `json:"steps"`
}

// POST /api/products/:id/simulate
func (h *PricingHandler) Simulate(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	var req productSimulateRequest
	if !bindJSON(c, &req, true) {
		return
	}
	sim, err := h.pricing.Simulate(c.Request.Context(), productID, services.SimulateParams{
		Min:   req.MinPrice,
		Max:   req.MaxPrice,
		Steps: req.Steps,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, sim)
}

// GET /api/products/:id/simulations?limit=
func (h *PricingHandler) History(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	limit, ok := limitQuery(c, 20)
	if !ok {
		return
	}
	runs, err := h.pricing.History(c.Request.Context(), productID, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"simulations": runs})
}
