// Package redis tracks site visits in Redis.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dailyKeyPrefix  = "visits:daily:"
	uniqueKeyPrefix = "visits:unique:"

	// Daily counters outlive the month they belong to so a monthly rollup
	// never reads expired keys mid-month.
	dailyTTL  = 35 * 24 * time.Hour
	uniqueTTL = 62 * 24 * time.Hour
)

// VisitorStore counts page visits per day and unique visitors per month.
// Uniqueness uses a HyperLogLog keyed by client IP, so counts are estimates.
type VisitorStore struct {
	rdb *redis.Client
}

func NewVisitorStore(rdb *redis.Client) *VisitorStore {
	return &VisitorStore{rdb: rdb}
}

// MonthlyStats is the rollup served by the visitors endpoint.
type MonthlyStats struct {
	Month          string `json:"month"` // YYYY-MM
	TotalVisits    int64  `json:"total_visits"`
	UniqueVisitors int64  `json:"unique_visitors"`
}

func dailyKey(t time.Time) string {
	return dailyKeyPrefix + t.UTC().Format("2006-01-02")
}

func uniqueKey(t time.Time) string {
	return uniqueKeyPrefix + t.UTC().Format("2006-01")
}

// RecordVisit increments today's counter and folds the client IP into the
// month's unique set. One round trip via pipeline.
func (s *VisitorStore) RecordVisit(ctx context.Context, clientIP string, now time.Time) error {
	day := dailyKey(now)
	month := uniqueKey(now)

	pipe := s.rdb.Pipeline()
	pipe.Incr(ctx, day)
	pipe.Expire(ctx, day, dailyTTL)
	if clientIP != "" {
		pipe.PFAdd(ctx, month, clientIP)
		pipe.Expire(ctx, month, uniqueTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// MonthlyVisitors aggregates the daily counters of the month containing now.
func (s *VisitorStore) MonthlyVisitors(ctx context.Context, now time.Time) (*MonthlyStats, error) {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	keys := make([]string, 0, 31)
	for d := first; d.Month() == now.Month() && !d.After(now); d = d.AddDate(0, 0, 1) {
		keys = append(keys, dailyKey(d))
	}

	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read daily counters: %w", err)
	}

	var total int64
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			continue
		}
		total += n
	}

	unique, err := s.rdb.PFCount(ctx, uniqueKey(now)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count unique visitors: %w", err)
	}

	return &MonthlyStats{
		Month:          now.Format("2006-01"),
		TotalVisits:    total,
		UniqueVisitors: unique,
	}, nil
}
