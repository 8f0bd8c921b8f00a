package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/eleganceshop/storefront/internal/resp"
)

// Timeout 限制单个请求的处理时长。
// 超时后客户端收到503与统一的超时包络，后端迟到的写入被丢弃。
// 包络体在构建链时序列化一次，超时路径上无法再取到请求ID。
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	body, _ := json.Marshal(&resp.Body{Code: resp.CodeTimeout, Message: "request timeout"})
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, string(body))
	}
}
