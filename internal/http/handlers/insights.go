package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/personamatch-backend/internal/http/response"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
	"github.com/yungbote/personamatch-backend/internal/services"
)

type InsightsHandler struct {
	log      *logger.Logger
	insights services.InsightsService
}

func NewInsightsHandler(log *logger.Logger, insights services.InsightsService) *InsightsHandler {
	return &InsightsHandler{log: log.With("handler", "InsightsHandler"), insights: insights}
}

// GET /api/insights?refresh=1
func (h *InsightsHandler) Get(c *gin.Context) {
	report, err := h.insights.Get(c.Request.Context(), truthy(c.Query("refresh")))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, report)
}
