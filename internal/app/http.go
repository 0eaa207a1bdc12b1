package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/personamatch-backend/internal/http"
	httpH "github.com/yungbote/personamatch-backend/internal/http/handlers"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Engine   *httpH.EngineHandler
	Pricing  *httpH.PricingHandler
	Style    *httpH.StyleHandler
	Insights *httpH.InsightsHandler
	Matches  *httpH.MatchHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(pingDB(db)),
		Engine:   httpH.NewEngineHandler(log, services.Engine),
		Pricing:  httpH.NewPricingHandler(log, services.Pricing),
		Style:    httpH.NewStyleHandler(log, services.Style),
		Insights: httpH.NewInsightsHandler(log, services.Insights),
		Matches:  httpH.NewMatchHandler(log, services.Matches),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:             log,
		ServiceName:     serviceName,
		CORSOrigins:     cfg.CORSOrigins,
		HealthHandler:   handlers.Health,
		EngineHandler:   handlers.Engine,
		PricingHandler:  handlers.Pricing,
		StyleHandler:    handlers.Style,
		InsightsHandler: handlers.Insights,
		MatchHandler:    handlers.Matches,
	})
}

func pingDB(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
