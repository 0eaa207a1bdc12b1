package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/personamatch-backend/internal/http/handlers"
	httpMW "github.com/yungbote/personamatch-backend/internal/http/middleware"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	EngineHandler   *httpH.EngineHandler
	PricingHandler  *httpH.PricingHandler
	StyleHandler    *httpH.StyleHandler
	InsightsHandler *httpH.InsightsHandler
	MatchHandler    *httpH.MatchHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Stateless engine (data in the request body)
	if cfg.EngineHandler != nil {
		engine := api.Group("/engine")
		engine.POST("/simulate", cfg.EngineHandler.Simulate)
		engine.POST("/classify", cfg.EngineHandler.Classify)
		engine.POST("/aggregate", cfg.EngineHandler.Aggregate)
		engine.POST("/generate", cfg.EngineHandler.Generate)
	}

	tenant := api.Group("/")
	tenant.Use(httpMW.RequireTenant())
	{
		// Products
		if cfg.StyleHandler != nil {
			tenant.POST("/products/classify", cfg.StyleHandler.ClassifyAll)
			tenant.POST("/products/:id/classify", cfg.StyleHandler.Classify)
			tenant.GET("/clusters", cfg.StyleHandler.Clusters)
		}
		if cfg.PricingHandler != nil {
			tenant.POST("/products/:id/simulate", cfg.PricingHandler.Simulate)
			tenant.GET("/products/:id/simulations", cfg.PricingHandler.History)
		}
		if cfg.MatchHandler != nil {
			tenant.PUT("/products/:id/matches", cfg.MatchHandler.Put)
		}

		// Insights
		if cfg.InsightsHandler != nil {
			tenant.GET("/insights", cfg.InsightsHandler.Get)
		}
	}

	return r
}
