package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/personamatch-backend/internal/platform/ctxutil"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

func TestRequireTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tenant := uuid.New()

	r := gin.New()
	r.Use(RequireTenant())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.Tenant(c.Request.Context()).String())
	})

	cases := []struct {
		header string
		status int
	}{
		{header: "", status: http.StatusBadRequest},
		{header: "acme", status: http.StatusBadRequest},
		{header: uuid.Nil.String(), status: http.StatusBadRequest},
		{header: tenant.String(), status: http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if tc.header != "" {
			req.Header.Set(HeaderTenantID, tc.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("header %q: status=%d, want %d", tc.header, rec.Code, tc.status)
		}
		if tc.status == http.StatusOK && rec.Body.String() != tenant.String() {
			t.Fatalf("tenant not attached: %q", rec.Body.String())
		}
	}
}

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.NewNop()))
	r.GET("/x", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		if td == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, td.RequestID)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "req-123" {
		t.Fatalf("request id not propagated: %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(headerTraceID) == "" {
		t.Fatalf("expected a generated trace id header")
	}
}
