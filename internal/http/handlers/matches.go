package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/personamatch-backend/internal/http/response"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
	"github.com/yungbote/personamatch-backend/internal/services"
)

type MatchHandler struct {
	log     *logger.Logger
	matches services.MatchService
}

func NewMatchHandler(log *logger.Logger, matches services.MatchService) *MatchHandler {
	return &MatchHandler{log: log.With("handler", "MatchHandler"), matches: matches}
}

type putMatchesRequest struct {
	Records []services.MatchInput `json:"records"`
}

// PUT /api/products/:id/matches
func (h *MatchHandler) Put(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	var req putMatchesRequest
	if !bindJSON(c, &req, false) {
		return
	}
	n, err := h.matches.Ingest(c.Request.Context(), productID, req.Records)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"upserted": n})
}
