package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID 请求ID透传头
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLen 上游传入的请求ID超过该长度时视为不合规，丢弃重新生成
const maxRequestIDLen = 64

// RequestID 为每个请求分配ID：优先沿用请求头中的 X-Request-ID，
// 缺失或不合规时生成UUID，同时写入响应头与请求上下文。
// 应挂在中间件链最外层，访问日志与panic日志才能带上请求ID。
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if rid == "" || len(rid) > maxRequestIDLen {
			rid = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, rid)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), rid)))
	})
}
