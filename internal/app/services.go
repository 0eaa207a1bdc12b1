package app

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/personamatch-backend/internal/engine/style"
	"github.com/yungbote/personamatch-backend/internal/jobs/worker"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
	"github.com/yungbote/personamatch-backend/internal/services"
)

type Services struct {
	Engine   services.EngineService
	Pricing  services.PricingService
	Style    services.StyleService
	Insights services.InsightsService
	Matches  services.MatchService

	RefreshWorker *worker.Worker
}

func loadStyleConfig(log *logger.Logger, path string) (*style.Config, error) {
	if strings.TrimSpace(path) == "" {
		return style.DefaultConfig(), nil
	}
	cfg, err := style.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load style clusters %q: %w", path, err)
	}
	log.Info("Loaded style cluster override", "path", path, "version", cfg.Version())
	return cfg, nil
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	styleCfg, err := loadStyleConfig(log, cfg.StyleClustersYAML)
	if err != nil {
		return Services{}, err
	}

	insightsSvc := services.NewInsightsService(log, reposet.Product, reposet.Persona, reposet.MatchRecord, reposet.InsightSnapshot, clients.InsightCache)

	return Services{
		Engine:   services.NewEngineService(log, styleCfg, cfg.MaxSimulationSteps),
		Pricing:  services.NewPricingService(log, reposet.Product, reposet.Persona, reposet.MatchRecord, reposet.SimulationRun, cfg.MaxSimulationSteps),
		Style:    services.NewStyleService(log, styleCfg, reposet.Product, reposet.MatchRecord, cfg.ClassifyWorkers),
		Insights: insightsSvc,
		Matches:  services.NewMatchService(db, log, reposet.Product, reposet.Persona, reposet.MatchRecord),

		RefreshWorker: worker.NewWorker(log, reposet.Product, insightsSvc, worker.Config{
			Schedule:      cfg.RefreshCron,
			Concurrency:   cfg.RefreshConcurrency,
			TenantTimeout: cfg.RefreshTenantTimeout,
		}),
	}, nil
}
