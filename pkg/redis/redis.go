package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bidwatch/backend/config"
)

const keyNamespace = "bidwatch:"

// Client 封装 go-redis，提供 Token 吊销与限流计数
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 连接 Redis；5 秒内 Ping 不通返回错误
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	c := &Client{rdb: rdb, logger: logger}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("连接 Redis %s 失败: %w", cfg.Addr, err)
	}

	logger.Info("已连接 Redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return c, nil
}

// Ping 健康检查
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close 关闭连接池
func (c *Client) Close() error {
	return c.rdb.Close()
}

func revokedKey(jti string) string {
	return keyNamespace + "revoked:" + jti
}

// BlacklistToken 吊销 jti，键在 Token 过期时一并失效
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := c.rdb.Set(ctx, revokedKey(jti), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("写入吊销记录失败: %w", err)
	}
	return nil
}

// IsBlacklisted jti 已吊销时返回 true
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := c.rdb.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// CheckRateLimit 固定窗口计数：key 在当前窗口内的第 limit 次以内返回 true
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if window <= 0 {
		return true, nil
	}
	slot := time.Now().UnixNano() / int64(window)
	k := keyNamespace + key + ":" + strconv.FormatInt(slot, 10)

	pipe := c.rdb.Pipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}
