package limiter

import (
	"context"
	"sync"
	"time"
)

// MemoryBucketLimiter 进程内令牌桶限流器，单实例部署或未配置Redis时使用。
type MemoryBucketLimiter struct {
	config Config

	mutex   sync.Mutex
	buckets map[string]*bucket

	now func() time.Time
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// NewMemoryBucketLimiter 创建进程内令牌桶限流器
func NewMemoryBucketLimiter(config *Config) *MemoryBucketLimiter {
	return &MemoryBucketLimiter{
		config:  config.withDefaults(),
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow 检查是否允许请求通过
func (l *MemoryBucketLimiter) Allow(ctx context.Context, key string) (*LimitResult, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.config.Burst), lastRefill: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill)
	if elapsed > 0 {
		refill := float64(l.config.Rate) * elapsed.Seconds() / l.config.Window.Seconds()
		b.tokens += refill
		if b.tokens > float64(l.config.Burst) {
			b.tokens = float64(l.config.Burst)
		}
		b.lastRefill = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return &LimitResult{
			Allowed:   true,
			Remaining: int64(b.tokens),
		}, nil
	}

	retry := time.Duration(float64(l.config.Window) / float64(l.config.Rate))
	return &LimitResult{
		Allowed:    false,
		Remaining:  0,
		RetryAfter: retry,
	}, nil
}
