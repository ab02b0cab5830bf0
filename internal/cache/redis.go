package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"VCPScanner/internal/model"
)

const keyPrefix = "vcp:bars"

// RedisCache implements SeriesCache on top of Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(addr, password string, db int, ttl time.Duration, log zerolog.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl, log: log}, nil
}

func seriesKey(symbol, period string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, symbol, period)
}

func (c *RedisCache) GetSeries(ctx context.Context, symbol, period string) ([]model.Bar, bool) {
	data, err := c.client.Get(ctx, seriesKey(symbol, period)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Str("symbol", symbol).Msg("series cache read failed")
		}
		return nil, false
	}
	var bars []model.Bar
	if err := json.Unmarshal(data, &bars); err != nil {
		c.log.Debug().Err(err).Str("symbol", symbol).Msg("series cache decode failed")
		return nil, false
	}
	if len(bars) == 0 {
		return nil, false
	}
	return bars, true
}

func (c *RedisCache) SetSeries(ctx context.Context, symbol, period string, bars []model.Bar) {
	data, err := json.Marshal(bars)
	if err != nil {
		c.log.Debug().Err(err).Str("symbol", symbol).Msg("series cache encode failed")
		return
	}
	if err := c.client.Set(ctx, seriesKey(symbol, period), data, c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("symbol", symbol).Msg("series cache write failed")
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
