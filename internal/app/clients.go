package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/personamatch-backend/internal/clients/redis"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

type Clients struct {
	InsightCache redis.InsightCache
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	cache := redis.NewNopInsightCache()
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		c, err := redis.NewInsightCache(log, redis.InsightCacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.InsightCacheTTL,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis insight cache: %w", err)
		}
		cache = c
	} else {
		log.Info("REDIS_ADDR not set; insight cache disabled")
	}

	return Clients{InsightCache: cache}, nil
}

func (c Clients) Close() {
	if c.InsightCache != nil {
		_ = c.InsightCache.Close()
	}
}
