package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/personamatch-backend/internal/http/response"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
	"github.com/yungbote/personamatch-backend/internal/services"
)

type StyleHandler struct {
	log    *logger.Logger
	styles services.StyleService
}

func NewStyleHandler(log *logger.Logger, styles services.StyleService) *StyleHandler {
	return &StyleHandler{log: log.With("handler", "StyleHandler"), styles: styles}
}

// POST /api/products/:id/classify
func (h *StyleHandler) Classify(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	out, err := h.styles.Classify(c.Request.Context(), productID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"classification": out})
}

// POST /api/products/classify?force=1
func (h *StyleHandler) ClassifyAll(c *gin.Context) {
	out, err := h.styles.ClassifyAll(c.Request.Context(), truthy(c.Query("force")))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/clusters?sort=score|declared
func (h *StyleHandler) Clusters(c *gin.Context) {
	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort", services.SortByScore)))
	if sortBy != services.SortByScore && sortBy != services.SortByDeclared {
		response.RespondError(c, http.StatusBadRequest, "invalid_sort", errors.New("sort must be score or declared"))
		return
	}
	out, err := h.styles.Clusters(c.Request.Context(), sortBy)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"config_version": h.styles.Config().Version(),
		"clusters":       out,
	})
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
