package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/personamatch-backend/internal/domain"
	"github.com/yungbote/personamatch-backend/internal/engine/insights"
	"github.com/yungbote/personamatch-backend/internal/engine/pricing"
	"github.com/yungbote/personamatch-backend/internal/engine/style"
	"github.com/yungbote/personamatch-backend/internal/http/response"
	"github.com/yungbote/personamatch-backend/internal/platform/apierr"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
	"github.com/yungbote/personamatch-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				t.Fatalf("encode: %v", err)
			}
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return env.Error.Code
}

func engineRouter() *gin.Engine {
	h := NewEngineHandler(logger.NewNop(), services.NewEngineService(logger.NewNop(), style.DefaultConfig(), 20))
	r := gin.New()
	r.POST("/simulate", h.Simulate)
	r.POST("/classify", h.Classify)
	r.POST("/aggregate", h.Aggregate)
	r.POST("/generate", h.Generate)
	return r
}

func TestEngineHandler(t *testing.T) {
	r := engineRouter()

	t.Run("simulate", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/simulate", simulateRequest{
			Product: pricing.Product{ID: "p1", Price: 1000},
			Records: []pricing.MatchRecord{
				{ProductID: "p1", PersonaID: "a", LikeProbability: 70, PriceElasticity: -1},
				{ProductID: "p1", PersonaID: "b", LikeProbability: 50, PriceElasticity: -0.5},
			},
			PriceRange: pricing.PriceRange{Min: 500, Max: 1500},
			Steps:      5,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var sim pricing.Simulation
		if err := json.Unmarshal(w.Body.Bytes(), &sim); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(sim.Simulations) != 5 || sim.Simulations[0].Price != 500 || sim.Simulations[4].Price != 1500 {
			t.Fatalf("simulations=%+v", sim.Simulations)
		}
	})

	t.Run("simulate_invalid_range", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/simulate", simulateRequest{
			Product:    pricing.Product{ID: "p1", Price: 1000},
			Records:    []pricing.MatchRecord{{ProductID: "p1", PersonaID: "a", LikeProbability: 70}},
			PriceRange: pricing.PriceRange{Min: 900, Max: 100},
			Steps:      5,
		})
		if w.Code != http.StatusBadRequest || errorCode(t, w) != services.CodeInvalidInput {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("simulate_no_records", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/simulate", simulateRequest{
			Product:    pricing.Product{ID: "p1", Price: 1000},
			PriceRange: pricing.PriceRange{Min: 500, Max: 1500},
			Steps:      5,
		})
		if w.Code != http.StatusUnprocessableEntity || errorCode(t, w) != services.CodeProductNotAnalyzed {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("malformed_body", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/simulate", "{not json")
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_request" {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("classify", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/classify", classifyRequest{Products: []style.Product{
			{ID: "1", Category: "joggers"},
			{ID: "2"},
		}})
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var out struct {
			Classifications []style.Classification `json:"classifications"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(out.Classifications) != 2 || out.Classifications[0].Cluster.Name != "Athleisure" || !out.Classifications[1].Fallback {
			t.Fatalf("classifications=%+v", out.Classifications)
		}
	})

	t.Run("aggregate_rejects_unknown_product", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/aggregate", aggregateRequest{
			Products: []style.Product{{ID: "a", Price: 10}},
			Records:  []style.MatchRecord{{ProductID: "zzz", PersonaID: "p1"}},
		})
		if w.Code != http.StatusBadRequest || errorCode(t, w) != services.CodeInvalidRecords {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("aggregate_declared_order", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/aggregate", aggregateRequest{
			Products: []style.Product{{ID: "a", Description: "cargo pants", Price: 100}},
			Records:  []style.MatchRecord{{ProductID: "a", PersonaID: "p1", LikeProbability: 90}},
			Sort:     services.SortByDeclared,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var out struct {
			Clusters []style.ClusterSummary `json:"clusters"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(out.Clusters) != 6 || out.Clusters[0].Cluster != "Minimal" {
			t.Fatalf("clusters=%+v", out.Clusters)
		}
	})

	t.Run("generate_empty", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/generate", generateRequest{})
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var rep insights.Report
		if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if rep.Summary != insights.NotEnoughDataSummary || len(rep.Insights) != 0 {
			t.Fatalf("report=%+v", rep)
		}
	})
}

type fakePricing struct {
	gotID     uuid.UUID
	gotParams services.SimulateParams
	err       error
}

func (f *fakePricing) Simulate(ctx context.Context, productID uuid.UUID, params services.SimulateParams) (*pricing.Simulation, error) {
	f.gotID, f.gotParams = productID, params
	if f.err != nil {
		return nil, f.err
	}
	return &pricing.Simulation{}, nil
}

func (f *fakePricing) History(ctx context.Context, productID uuid.UUID, limit int) ([]*domain.SimulationRun, error) {
	f.gotID, f.gotParams.Steps = productID, limit
	return nil, f.err
}

func TestPricingHandler(t *testing.T) {
	fake := &fakePricing{}
	h := NewPricingHandler(logger.NewNop(), fake)
	r := gin.New()
	r.POST("/products/:id/simulate", h.Simulate)
	r.GET("/products/:id/simulations", h.History)
	id := uuid.New()

	t.Run("empty_body_uses_defaults", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/products/"+id.String()+"/simulate", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		if fake.gotID != id || fake.gotParams.Min != nil || fake.gotParams.Max != nil || fake.gotParams.Steps != 0 {
			t.Fatalf("got id=%v params=%+v", fake.gotID, fake.gotParams)
		}
	})

	t.Run("explicit_range", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/products/"+id.String()+"/simulate", `{"min_price":200,"max_price":400,"steps":3}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		p := fake.gotParams
		if p.Min == nil || *p.Min != 200 || p.Max == nil || *p.Max != 400 || p.Steps != 3 {
			t.Fatalf("params=%+v", p)
		}
	})

	t.Run("bad_id", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/products/nope/simulate", nil)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_product_id" {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("service_error_status", func(t *testing.T) {
		fake.err = apierr.NotFound(services.CodeNotFound, errors.New("product not found"))
		defer func() { fake.err = nil }()
		w := do(t, r, http.MethodPost, "/products/"+id.String()+"/simulate", nil)
		if w.Code != http.StatusNotFound || errorCode(t, w) != services.CodeNotFound {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("internal_error_hides_detail", func(t *testing.T) {
		fake.err = errors.New("pq: connection refused")
		defer func() { fake.err = nil }()
		w := do(t, r, http.MethodGet, "/products/"+id.String()+"/simulations", nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status=%d", w.Code)
		}
		if bytes.Contains(w.Body.Bytes(), []byte("connection refused")) {
			t.Fatalf("internal detail leaked: %s", w.Body.String())
		}
	})

	t.Run("history_limit", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/products/"+id.String()+"/simulations?limit=7", nil)
		if w.Code != http.StatusOK || fake.gotParams.Steps != 7 {
			t.Fatalf("status=%d limit=%d", w.Code, fake.gotParams.Steps)
		}
	})

	t.Run("history_limit_default", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/products/"+id.String()+"/simulations", nil)
		if w.Code != http.StatusOK || fake.gotParams.Steps != 20 {
			t.Fatalf("status=%d limit=%d", w.Code, fake.gotParams.Steps)
		}
	})

	t.Run("history_limit_malformed", func(t *testing.T) {
		fake.gotParams.Steps = -1
		for _, q := range []string{"abc", "1.5", "10x"} {
			w := do(t, r, http.MethodGet, "/products/"+id.String()+"/simulations?limit="+q, nil)
			if w.Code != http.StatusBadRequest || errorCode(t, w) != services.CodeInvalidArgument {
				t.Fatalf("limit=%s: status=%d body=%s", q, w.Code, w.Body.String())
			}
			if fake.gotParams.Steps != -1 {
				t.Fatalf("limit=%s: service called with %d", q, fake.gotParams.Steps)
			}
		}
	})
}

type fakeStyle struct {
	force  bool
	sortBy string
}

func (f *fakeStyle) Classify(ctx context.Context, productID uuid.UUID) (*services.ProductClassification, error) {
	return &services.ProductClassification{ProductID: productID}, nil
}

func (f *fakeStyle) ClassifyAll(ctx context.Context, force bool) (*services.BulkClassification, error) {
	f.force = force
	return &services.BulkClassification{}, nil
}

func (f *fakeStyle) Clusters(ctx context.Context, sortBy string) ([]style.ClusterSummary, error) {
	f.sortBy = sortBy
	return nil, nil
}

func (f *fakeStyle) Config() *style.Config { return style.DefaultConfig() }

func TestStyleHandler(t *testing.T) {
	fake := &fakeStyle{}
	h := NewStyleHandler(logger.NewNop(), fake)
	r := gin.New()
	r.POST("/products/classify", h.ClassifyAll)
	r.GET("/clusters", h.Clusters)

	if w := do(t, r, http.MethodPost, "/products/classify?force=true", nil); w.Code != http.StatusOK || !fake.force {
		t.Fatalf("force not passed: status=%d force=%v", w.Code, fake.force)
	}
	if w := do(t, r, http.MethodPost, "/products/classify", nil); w.Code != http.StatusOK || fake.force {
		t.Fatalf("force should default off")
	}
	if w := do(t, r, http.MethodGet, "/clusters", nil); w.Code != http.StatusOK || fake.sortBy != services.SortByScore {
		t.Fatalf("default sort: status=%d sort=%q", w.Code, fake.sortBy)
	}
	if w := do(t, r, http.MethodGet, "/clusters?sort=Declared", nil); w.Code != http.StatusOK || fake.sortBy != services.SortByDeclared {
		t.Fatalf("declared sort: status=%d sort=%q", w.Code, fake.sortBy)
	}
	if w := do(t, r, http.MethodGet, "/clusters?sort=price", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown sort should be rejected, got %d", w.Code)
	}
}

type fakeInsights struct{ refresh bool }

func (f *fakeInsights) Get(ctx context.Context, refresh bool) (*services.InsightReport, error) {
	f.refresh = refresh
	return &services.InsightReport{Report: &insights.Report{Summary: "ok"}, Source: services.SourceGenerated}, nil
}

func (f *fakeInsights) RefreshTenant(ctx context.Context, tenantID uuid.UUID) (*services.InsightReport, error) {
	return nil, nil
}

func TestInsightsHandler(t *testing.T) {
	fake := &fakeInsights{}
	h := NewInsightsHandler(logger.NewNop(), fake)
	r := gin.New()
	r.GET("/insights", h.Get)

	w := do(t, r, http.MethodGet, "/insights?refresh=1", nil)
	if w.Code != http.StatusOK || !fake.refresh {
		t.Fatalf("status=%d refresh=%v", w.Code, fake.refresh)
	}
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["summary"] != "ok" || out["source"] != services.SourceGenerated {
		t.Fatalf("body=%v", out)
	}
}

type fakeMatches struct{ got []services.MatchInput }

func (f *fakeMatches) Ingest(ctx context.Context, productID uuid.UUID, inputs []services.MatchInput) (int, error) {
	f.got = inputs
	return len(inputs), nil
}

func TestMatchHandler(t *testing.T) {
	fake := &fakeMatches{}
	h := NewMatchHandler(logger.NewNop(), fake)
	r := gin.New()
	r.PUT("/products/:id/matches", h.Put)

	persona := uuid.New()
	body := putMatchesRequest{Records: []services.MatchInput{{PersonaID: persona, LikeProbability: 55, PriceSweetSpot: 900}}}
	w := do(t, r, http.MethodPut, "/products/"+uuid.NewString()+"/matches", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if len(fake.got) != 1 || fake.got[0].PersonaID != persona || fake.got[0].LikeProbability != 55 {
		t.Fatalf("got=%+v", fake.got)
	}

	if w := do(t, r, http.MethodPut, "/products/"+uuid.NewString()+"/matches", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("empty body should be rejected, got %d", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	r := gin.New()
	r.GET("/ok", NewHealthHandler(nil).HealthCheck)
	r.GET("/down", NewHealthHandler(func(context.Context) error { return errors.New("down") }).HealthCheck)

	if w := do(t, r, http.MethodGet, "/ok", nil); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/down", nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
}
