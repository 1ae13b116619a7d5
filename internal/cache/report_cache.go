package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nigelvd10/voorraad-analyse-app/internal/config"
	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

const (
	reportKeyPrefix     = "voorraad:report"
	reportScanBatchSize = 100
)

// ReportCache caches fully computed reconciliation reports per filter. Any
// write to a source dataset must invalidate the whole prefix.
type ReportCache interface {
	GetReport(ctx context.Context, filter domain.ReportFilter) (*domain.Report, bool, error)
	SetReport(ctx context.Context, filter domain.ReportFilter, report *domain.Report) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client      *redis.Client
	ttl         time.Duration
	fingerprint string
}

type noopReportCache struct{}

// NewReportCache builds the cache for the given configuration. The
// fingerprint should identify the active classification configuration so a
// threshold change never serves stale rows.
func NewReportCache(cfg config.CacheConfig, fingerprint string) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client:      client,
		ttl:         ttl,
		fingerprint: fingerprint,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, filter domain.ReportFilter) (*domain.Report, bool, error) {
	key := c.buildReportKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, filter domain.ReportFilter, report *domain.Report) error {
	key := c.buildReportKey(filter)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, reportScanBatchSize)
}

func (n *noopReportCache) GetReport(ctx context.Context, filter domain.ReportFilter) (*domain.Report, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, filter domain.ReportFilter, report *domain.Report) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func (c *redisReportCache) buildReportKey(filter domain.ReportFilter) string {
	return fmt.Sprintf("%s:%s", reportKeyPrefix, reportFilterHash(filter, c.fingerprint))
}

func reportFilterHash(filter domain.ReportFilter, fingerprint string) string {
	parts := []string{}

	if fingerprint != "" {
		parts = append(parts, "config="+fingerprint)
	}
	if filter.Supplier != "" {
		parts = append(parts, "supplier="+strings.ToLower(strings.TrimSpace(filter.Supplier)))
	}
	if filter.Status != "" {
		parts = append(parts, "status="+strings.ToLower(strings.TrimSpace(filter.Status)))
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
