package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/config"
)

// Client redis wrapper. Used for endpoint rate limiting and the teacher
// display-name cache; callers must tolerate a nil *Client and degrade.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects and pings.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Sliding-window rate limit ──

// CheckRateLimit implements a sliding window over a sorted set keyed by
// request timestamps. Returns whether the request is allowed.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now().UnixNano()
	windowStart := now - window.Nanoseconds()

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now), Member: now})
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return countCmd.Val() < int64(limit), nil
}

// ── Teacher display-name cache ──
//
// The cache is owned by whoever holds the Client, and entries expire
// rather than living for the life of the process.

const teacherNamePrefix = "teacher:name:"

// CacheTeacherName stores a display name with a bounded TTL.
func (c *Client) CacheTeacherName(ctx context.Context, teacherID, name string, ttl time.Duration) error {
	return c.rdb.Set(ctx, teacherNamePrefix+teacherID, name, ttl).Err()
}

// GetTeacherName returns the cached display name, or "" on miss.
func (c *Client) GetTeacherName(ctx context.Context, teacherID string) (string, error) {
	name, err := c.rdb.Get(ctx, teacherNamePrefix+teacherID).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
