package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/personamatch-backend/internal/engine/insights"
	"github.com/yungbote/personamatch-backend/internal/platform/logger"
)

// InsightCache holds the day's insight report per tenant so dashboard reads skip the rule run.
type InsightCache interface {
	Get(ctx context.Context, tenantID uuid.UUID, day string) (*insights.Report, bool, error)
	Set(ctx context.Context, tenantID uuid.UUID, day string, report *insights.Report) error
	Delete(ctx context.Context, tenantID uuid.UUID, day string) error
	Close() error
}

type insightCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

type InsightCacheConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

func NewInsightCache(log *logger.Logger, cfg InsightCacheConfig) (InsightCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "insights"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &insightCache{
		log:    log.With("service", "RedisInsightCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func cacheKey(prefix string, tenantID uuid.UUID, day string) string {
	return prefix + ":" + tenantID.String() + ":" + day
}

func (c *insightCache) Get(ctx context.Context, tenantID uuid.UUID, day string) (*insights.Report, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(c.prefix, tenantID, day)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	report, err := decodeReport(raw)
	if err != nil {
		c.log.Warn("Dropping undecodable cached insight report", "tenant_id", tenantID, "day", day, "error", err)
		_ = c.rdb.Del(ctx, cacheKey(c.prefix, tenantID, day)).Err()
		return nil, false, nil
	}
	return report, true, nil
}

func (c *insightCache) Set(ctx context.Context, tenantID uuid.UUID, day string, report *insights.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(c.prefix, tenantID, day), raw, c.ttl).Err()
}

func (c *insightCache) Delete(ctx context.Context, tenantID uuid.UUID, day string) error {
	return c.rdb.Del(ctx, cacheKey(c.prefix, tenantID, day)).Err()
}

func (c *insightCache) Close() error { return c.rdb.Close() }

func decodeReport(raw []byte) (*insights.Report, error) {
	var r insights.Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	if r.Summary == "" {
		return nil, fmt.Errorf("cached report has no summary")
	}
	if r.Insights == nil {
		r.Insights = []insights.Insight{}
	}
	return &r, nil
}

type nopInsightCache struct{}

// NewNopInsightCache is used when REDIS_ADDR is unset; every read misses.
func NewNopInsightCache() InsightCache { return nopInsightCache{} }

func (nopInsightCache) Get(context.Context, uuid.UUID, string) (*insights.Report, bool, error) {
	return nil, false, nil
}
func (nopInsightCache) Set(context.Context, uuid.UUID, string, *insights.Report) error { return nil }
func (nopInsightCache) Delete(context.Context, uuid.UUID, string) error                { return nil }
func (nopInsightCache) Close() error                                                  { return nil }
