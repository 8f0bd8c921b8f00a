// Package limiter Redis令牌桶限流器实现
package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBucketLimiter 基于Redis的令牌桶限流器，多实例共享配额。
type TokenBucketLimiter struct {
	client redis.Cmdable
	config Config
}

// NewTokenBucketLimiter 创建Redis令牌桶限流器
func NewTokenBucketLimiter(client redis.Cmdable, config *Config) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		client: client,
		config: config.withDefaults(),
	}
}

// Redis Lua脚本：按流逝时间补充令牌后尝试扣减，整个过程原子执行。
const tokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local window = tonumber(ARGV[3])
local now = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(bucket[1]) or capacity
local last_refill = tonumber(bucket[2]) or now

local time_passed = math.max(0, now - last_refill)
local tokens_to_add = math.floor(time_passed * rate / window)
tokens = math.min(capacity, tokens + tokens_to_add)

if tokens >= 1 then
    tokens = tokens - 1
    redis.call('HMSET', key, 'tokens', tokens, 'last_refill', now)
    redis.call('EXPIRE', key, math.ceil(window * 2 / 1000))
    return {1, tokens, 0}
else
    redis.call('HMSET', key, 'tokens', tokens, 'last_refill', now)
    redis.call('EXPIRE', key, math.ceil(window * 2 / 1000))
    local retry_after = math.ceil(window / rate)
    return {0, tokens, retry_after}
end
`

// Allow 检查是否允许请求通过
func (l *TokenBucketLimiter) Allow(ctx context.Context, key string) (*LimitResult, error) {
	fullKey := fmt.Sprintf("%s:%s", l.config.KeyPrefix, key)
	now := time.Now().UnixMilli()

	res, err := l.client.Eval(ctx, tokenBucketScript,
		[]string{fullKey},
		l.config.Burst,
		l.config.Rate,
		l.config.Window.Milliseconds(),
		now,
	).Result()
	if err != nil {
		return nil, fmt.Errorf("token bucket eval: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) != 3 {
		return nil, fmt.Errorf("token bucket eval: unexpected result %v", res)
	}

	allowed, _ := values[0].(int64)
	remaining, _ := values[1].(int64)
	retryMs, _ := values[2].(int64)

	return &LimitResult{
		Allowed:    allowed == 1,
		Remaining:  remaining,
		RetryAfter: time.Duration(retryMs) * time.Millisecond,
	}, nil
}
