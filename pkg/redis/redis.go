package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"course-planner/backend/config"
	pkgerrors "course-planner/backend/pkg/errors"
)

// Client Redis 客户端封装
// 用于 Token 黑名单、限流与一次性提示消息；nil *Client 上的方法均返回 ErrRedisUnavailable
type Client struct {
	rdb       *goredis.Client
	noticeTTL time.Duration
	logger    *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return NewFromClient(rdb, cfg.NoticeTTL, logger), nil
}

// NewFromClient 包装已有连接（测试或自定义连接参数时使用）
func NewFromClient(rdb *goredis.Client, noticeTTL time.Duration, logger *zap.Logger) *Client {
	if noticeTTL <= 0 {
		noticeTTL = time.Hour
	}
	return &Client{rdb: rdb, noticeTTL: noticeTTL, logger: logger}
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if c == nil {
		return pkgerrors.ErrRedisUnavailable
	}
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if c == nil {
		return false, pkgerrors.ErrRedisUnavailable
	}
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 限流 ──

// CheckRateLimit 固定窗口计数：窗口内第 limit+1 次起返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if c == nil {
		return true, pkgerrors.ErrRedisUnavailable
	}

	var incr *goredis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// ── 一次性提示消息 ──

const noticePrefix = "notice:"

// Notice 一次性提示消息，读取后即删除
type Notice struct {
	Level   string `json:"level"` // error | warning | info
	Message string `json:"message"`
}

// PushNotice 追加一条提示消息到用户队列
func (c *Client) PushNotice(ctx context.Context, userID string, n Notice) error {
	if c == nil {
		return pkgerrors.ErrRedisUnavailable
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("序列化提示消息失败: %w", err)
	}

	key := noticePrefix + userID
	_, err = c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, c.noticeTTL)
		return nil
	})
	return err
}

// PopNotices 取出并清空用户的全部提示消息
func (c *Client) PopNotices(ctx context.Context, userID string) ([]Notice, error) {
	if c == nil {
		return nil, pkgerrors.ErrRedisUnavailable
	}

	key := noticePrefix + userID
	var lrange *goredis.StringSliceCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	notices := make([]Notice, 0, len(lrange.Val()))
	for _, raw := range lrange.Val() {
		var n Notice
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			c.logger.Warn("丢弃无法解析的提示消息", zap.String("user_id", userID), zap.Error(err))
			continue
		}
		notices = append(notices, n)
	}
	return notices, nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
