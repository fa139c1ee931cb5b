// Package limiter 固定窗口限流器实现
package limiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// FixedWindowLimiter 固定窗口限流器
type FixedWindowLimiter struct {
	client    RedisClient
	config    *Config
	keyPrefix string
}

// NewFixedWindowLimiter 创建固定窗口限流器
func NewFixedWindowLimiter(client RedisClient, config *Config) (*FixedWindowLimiter, error) {
	if config == nil {
		return nil, errors.New("limiter config required")
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "limiter:fw"
	}

	return &FixedWindowLimiter{
		client:    client,
		config:    config,
		keyPrefix: config.KeyPrefix,
	}, nil
}

// Redis Lua脚本：固定窗口算法
const fixedWindowScript = `
-- KEYS[1]: 计数器key
-- ARGV[1]: 限制数量(rate)
-- ARGV[2]: 时间窗口(window秒)
-- ARGV[3]: 请求数量
-- ARGV[4]: 当前时间戳

local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local requests = tonumber(ARGV[3])
local now = tonumber(ARGV[4])

local window_start = math.floor(now / window) * window
local window_key = key .. ":" .. window_start

local current_requests = tonumber(redis.call('GET', window_key) or 0)

if current_requests + requests > limit then
    local next_window = window_start + window
    return {0, math.max(0, limit - current_requests), next_window - now}
else
    local new_count = redis.call('INCRBY', window_key, requests)
    redis.call('EXPIRE', window_key, window)
    return {1, limit - new_count, 0}
end
`

// getKey 生成Redis key
func (fw *FixedWindowLimiter) getKey(key string) string {
	return fmt.Sprintf("%s:%s", fw.keyPrefix, key)
}

// Allow 检查是否允许请求通过
func (fw *FixedWindowLimiter) Allow(ctx context.Context, key string) (*LimitResult, error) {
	return fw.AllowN(ctx, key, 1)
}

// AllowN 检查是否允许N个请求通过
func (fw *FixedWindowLimiter) AllowN(ctx context.Context, key string, n int64) (*LimitResult, error) {
	if n <= 0 {
		return nil, errors.New("request count must be positive")
	}

	result := fw.client.Eval(ctx, fixedWindowScript,
		[]string{fw.getKey(key)},
		fw.config.Rate,
		int64(fw.config.Window.Seconds()),
		n,
		time.Now().Unix(),
	)
	if result.Err() != nil {
		return nil, fmt.Errorf("execute fixed window script: %w", result.Err())
	}

	values, ok := result.Val().([]interface{})
	if !ok || len(values) != 3 {
		return nil, errors.New("unexpected script result format")
	}

	return &LimitResult{
		Allowed:    values[0].(int64) == 1,
		Remaining:  values[1].(int64),
		RetryAfter: time.Duration(values[2].(int64)) * time.Second,
	}, nil
}

// Reset 重置固定窗口
// 当前窗口的计数key带时间戳后缀，这里只删除当前窗口
func (fw *FixedWindowLimiter) Reset(ctx context.Context, key string) error {
	now := time.Now().Unix()
	windowSeconds := int64(fw.config.Window.Seconds())
	windowStart := (now / windowSeconds) * windowSeconds
	windowKey := fmt.Sprintf("%s:%d", fw.getKey(key), windowStart)

	if err := fw.client.Del(ctx, windowKey).Err(); err != nil {
		return fmt.Errorf("reset fixed window: %w", err)
	}
	return nil
}
