package app

import (
	"time"

	"github.com/yungbote/personamatch-backend/internal/data/db"
	"github.com/yungbote/personamatch-backend/internal/observability"
	"github.com/yungbote/personamatch-backend/internal/platform/envutil"
)

type Config struct {
	Port        string
	LogMode     string
	CORSOrigins []string

	DB db.Config

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	InsightCacheTTL time.Duration

	StyleClustersYAML  string
	MaxSimulationSteps int
	ClassifyWorkers    int

	RefreshCron          string
	RefreshConcurrency   int
	RefreshTenantTimeout time.Duration

	Otel observability.OtelConfig
}

func LoadConfig() Config {
	return Config{
		Port:        envutil.String("PORT", "8080"),
		LogMode:     envutil.String("LOG_MODE", "development"),
		CORSOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil),

		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverPostgres),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "personamatch"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:       envutil.String("SQLITE_PATH", "personamatch.db"),
		},

		RedisAddr:       envutil.String("REDIS_ADDR", ""),
		RedisPassword:   envutil.String("REDIS_PASSWORD", ""),
		RedisDB:         envutil.Int("REDIS_DB", 0),
		InsightCacheTTL: envutil.Duration("INSIGHT_CACHE_TTL", 6*time.Hour),

		StyleClustersYAML:  envutil.String("STYLE_CLUSTERS_YAML", ""),
		MaxSimulationSteps: envutil.Int("MAX_SIMULATION_STEPS", 50),
		ClassifyWorkers:    envutil.Int("CLASSIFY_WORKERS", 4),

		RefreshCron:          envutil.String("INSIGHT_REFRESH_CRON", "15 0 * * *"),
		RefreshConcurrency:   envutil.Int("INSIGHT_REFRESH_CONCURRENCY", 2),
		RefreshTenantTimeout: envutil.Duration("INSIGHT_REFRESH_TENANT_TIMEOUT", 2*time.Minute),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "personamatch-backend"),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development"),
			Version:     envutil.String("OTEL_SERVICE_VERSION", "dev"),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_TRACES_SAMPLER_RATIO", 1),
		},
	}
}
