package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/personamatch-backend/internal/http/response"
)

// bindJSON decodes the body into dst. An empty body is accepted when optional is set.
func bindJSON(c *gin.Context, dst any, optional bool) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

func productIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return uuid.Nil, false
	}
	return id, true
}

// limitQuery reads ?limit=, falling back to def when absent. Non-integers are rejected.
func limitQuery(c *gin.Context, def int) (int, bool) {
	raw, ok := c.GetQuery("limit")
	if !ok || raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("limit must be an integer, got %q", raw))
		return 0, false
	}
	return n, true
}
