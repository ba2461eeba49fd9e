package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/domain"
)

const keyPrefix = "order:status:"

// InitRedis connects to Redis. It returns nil when caching is disabled or
// the server does not answer; the service then runs without a cache.
func InitRedis(ctx context.Context, cfg config.Redis) *redis.Client {
	if cfg.Address == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis connection failed, continuing without status cache", zap.Error(err))
		_ = client.Close()
		return nil
	}

	zap.L().Info("redis connection established", zap.String("address", cfg.Address))
	return client
}

// StatusCache keeps orders that reached a terminal status. Errors are logged
// and treated as a miss.
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *StatusCache {
	return &StatusCache{client: client, ttl: ttl}
}

func (c *StatusCache) Get(ctx context.Context, id string) (*domain.Order, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		zap.L().Warn("status cache read failed", zap.String("order_id", id), zap.Error(err))
		return nil, false
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		zap.L().Warn("status cache entry is corrupt", zap.String("order_id", id), zap.Error(err))
		return nil, false
	}
	return &order, true
}

func (c *StatusCache) Set(ctx context.Context, order *domain.Order) {
	if c.client == nil || order == nil || !order.Terminal() {
		return
	}
	data, err := json.Marshal(order)
	if err != nil {
		zap.L().Warn("can't encode order for status cache", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, keyPrefix+order.ID, string(data), c.ttl).Err(); err != nil {
		zap.L().Warn("status cache write failed", zap.String("order_id", order.ID), zap.Error(err))
	}
}
