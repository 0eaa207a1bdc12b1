package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/personamatch-backend/internal/http/response"
	"github.com/yungbote/personamatch-backend/internal/platform/ctxutil"
)

const HeaderTenantID = "X-Tenant-Id"

// RequireTenant scopes the request to the brand named by X-Tenant-Id. Tenant switching and
// access control happen upstream; this only parses the header.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderTenantID))
		if raw == "" {
			response.RespondError(c, http.StatusBadRequest, "missing_tenant", errors.New("X-Tenant-Id header is required"))
			c.Abort()
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_tenant", errors.New("X-Tenant-Id must be a UUID"))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithTenant(c.Request.Context(), id))
		c.Set("tenant_id", id)
		c.Next()
	}
}
