package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/example/snackmarket/pkg/config"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// unreadCountTTL bounds staleness when an invalidation is missed.
const unreadCountTTL = 30 * time.Second

// RedisCache is a best-effort cache in front of the unread-count query.
// Failures are logged and treated as misses.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCache(cfg *config.RedisConfig, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		logger: logger,
	}
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) GetUnreadCount(ctx context.Context, sellerID string) (int64, bool) {
	val, err := r.client.Get(ctx, unreadKey(sellerID)).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("Redis get failed", zap.String("seller_id", sellerID), zap.Error(err))
		}
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (r *RedisCache) SetUnreadCount(ctx context.Context, sellerID string, count int64) {
	if err := r.client.Set(ctx, unreadKey(sellerID), count, unreadCountTTL).Err(); err != nil {
		r.logger.Warn("Redis set failed", zap.String("seller_id", sellerID), zap.Error(err))
	}
}

func (r *RedisCache) InvalidateUnread(ctx context.Context, sellerIDs ...string) {
	if len(sellerIDs) == 0 {
		return
	}
	keys := make([]string, len(sellerIDs))
	for i, id := range sellerIDs {
		keys[i] = unreadKey(id)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("Redis del failed", zap.Error(err))
	}
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func unreadKey(sellerID string) string {
	return fmt.Sprintf("seller:%s:unread", sellerID)
}
