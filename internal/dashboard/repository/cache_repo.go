package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/admetrics-hub/admetrics-backend/internal/dashboard/domain"
)

const (
	summaryKeyPrefix = "dash:summary:" // Cached report: dash:summary:{customer_id}:{filter}
	summarySetPrefix = "dash:keys:"    // Set of cached keys per customer: dash:keys:{customer_id}
	summaryTTL       = 15 * time.Minute
)

// CacheRepo stores computed dashboard summaries in Redis. Entries expire by
// TTL and are dropped eagerly whenever a metric for the customer is written.
type CacheRepo struct {
	client *redis.Client
}

func NewCacheRepo(client *redis.Client) *CacheRepo {
	return &CacheRepo{client: client}
}

// Get returns the cached report for the customer and filter, or (nil, nil)
// on a miss.
func (r *CacheRepo) Get(ctx context.Context, customerID, filter string) (*domain.SummaryReport, error) {
	data, err := r.client.Get(ctx, r.summaryKey(customerID, filter)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached summary: %w", err)
	}

	var report domain.SummaryReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached summary: %w", err)
	}
	return &report, nil
}

// Set caches the report and indexes its key in the customer's key set so
// InvalidateCustomer can find every filter variant later.
func (r *CacheRepo) Set(ctx context.Context, customerID, filter string, report *domain.SummaryReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	key := r.summaryKey(customerID, filter)
	setKey := r.summarySetKey(customerID)

	pipe := r.client.Pipeline()
	pipe.Set(ctx, key, data, summaryTTL)
	pipe.SAdd(ctx, setKey, key)
	pipe.Expire(ctx, setKey, summaryTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}
	return nil
}

// InvalidateCustomer drops every cached summary for the customer.
func (r *CacheRepo) InvalidateCustomer(ctx context.Context, customerID string) error {
	setKey := r.summarySetKey(customerID)

	keys, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list cached summary keys: %w", err)
	}

	pipe := r.client.Pipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, setKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate summaries: %w", err)
	}
	return nil
}

func (r *CacheRepo) summaryKey(customerID, filter string) string {
	return fmt.Sprintf("%s%s:%s", summaryKeyPrefix, customerID, filter)
}

func (r *CacheRepo) summarySetKey(customerID string) string {
	return fmt.Sprintf("%s%s", summarySetPrefix, customerID)
}
