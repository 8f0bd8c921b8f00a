// Package limiter 限流中间件实现
package limiter

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/middleware"
	"github.com/eleganceshop/storefront/internal/resp"
)

// Middleware 按客户端IP限流的HTTP中间件。
// 限流器自身出错时放行（fail-open），限流只应拦住洪峰，不能拦住故障。
func Middleware(l Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := l.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.Warn("rate limit check failed, allowing request", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				if result.RetryAfter > 0 {
					w.Header().Set("Retry-After",
						fmt.Sprintf("%d", int(result.RetryAfter.Seconds()+0.5)))
				}
				resp.Error(w, resp.HTTPStatusFromCode(resp.CodeTooManyReqs), resp.CodeTooManyReqs,
					"too many requests", middleware.RequestIDFromContext(r.Context()), "")
				return
			}

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP 取客户端IP：优先X-Forwarded-For首跳，其次RemoteAddr。
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
