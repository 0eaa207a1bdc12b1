package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/personamatch-backend/internal/engine/insights"
	"github.com/yungbote/personamatch-backend/internal/engine/pricing"
	"github.com/yungbote/personamatch-backend/internal/engine/style"
	"github.com/yungbote/personamatch-backend/internal/http/response"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
	"github.com/yungbote/personamatch-backend/internal/services"
)

// EngineHandler runs the computations over data supplied in the request body.
type EngineHandler struct {
	log    *logger.Logger
	engine services.EngineService
}

func NewEngineHandler(log *logger.Logger, engine services.EngineService) *EngineHandler {
	return &EngineHandler{log: log.With("handler", "EngineHandler"), engine: engine}
}

type simulateRequest struct {
	Product    pricing.Product       `json:"product"`
	Records    []pricing.MatchRecord `json:"records"`
	PriceRange pricing.PriceRange    `json:"price_range"`
	Steps      int                   `json:"steps"`
}

// POST /api/engine/simulate
func (h *EngineHandler) Simulate(c *gin.Context) {
	var req simulateRequest
	if !bindJSON(c, &req, false) {
		return
	}
	sim, err := h.engine.Simulate(c.Request.Context(), req.Product, req.Records, req.PriceRange, req.Steps)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, sim)
}

type classifyRequest struct {
	Products []style.Product `json:"products"`
}

// POST /api/engine/classify
func (h *EngineHandler) Classify(c *gin.Context) {
	var req classifyRequest
	if !bindJSON(c, &req, false) {
		return
	}
	out := h.engine.Classify(c.Request.Context(), req.Products)
	response.RespondOK(c, gin.H{"classifications": out})
}

type aggregateRequest struct {
	Products []style.Product     `json:"products"`
	Records  []style.MatchRecord `json:"records"`
	Sort     string              `json:"sort"`
}

// POST /api/engine/aggregate
func (h *EngineHandler) Aggregate(c *gin.Context) {
	var req aggregateRequest
	if !bindJSON(c, &req, false) {
		return
	}
	out, err := h.engine.Aggregate(c.Request.Context(), req.Products, req.Records, req.Sort)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"clusters": out})
}

type generateRequest struct {
	Products []insights.Product     `json:"products"`
	Personas []insights.Persona     `json:"personas"`
	Records  []insights.MatchRecord `json:"records"`
}

// POST /api/engine/generate
func (h *EngineHandler) Generate(c *gin.Context) {
	var req generateRequest
	if !bindJSON(c, &req, false) {
		return
	}
	report, err := h.engine.Generate(c.Request.Context(), req.Products, req.Personas, req.Records)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, report)
}
