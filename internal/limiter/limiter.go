// Package limiter 提供令牌桶限流实现：
// 配置了Redis时用Lua脚本在Redis侧原子执行，否则退化为进程内令牌桶。
package limiter

import (
	"context"
	"time"
)

// LimitResult 限流结果
type LimitResult struct {
	Allowed    bool          // 是否允许通过
	Remaining  int64         // 剩余配额
	RetryAfter time.Duration // 建议重试时间
}

// Limiter 限流器接口
type Limiter interface {
	Allow(ctx context.Context, key string) (*LimitResult, error)
}

// Config 限流配置
type Config struct {
	Rate      int64         // 每个时间窗口补充的令牌数
	Burst     int64         // 桶容量（突发上限）
	Window    time.Duration // 时间窗口
	KeyPrefix string        // 存储key前缀
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Rate <= 0 {
		out.Rate = 10
	}
	if out.Burst <= 0 {
		out.Burst = out.Rate
	}
	if out.Window <= 0 {
		out.Window = time.Second
	}
	if out.KeyPrefix == "" {
		out.KeyPrefix = "limiter:tb"
	}
	return out
}
