// Package middleware 提供店面API的HTTP中间件：请求ID、访问日志、
// panic恢复、超时与CORS。各中间件彼此独立，由入口按需组合。
package middleware

import (
	"context"
)

// ctxKeyRequestID 私有键类型，避免与其它包写入的上下文值冲突。
type ctxKeyRequestID struct{}

// withRequestID 将请求ID写入上下文。
func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}

// RequestIDFromContext 读取当前请求的ID；链上未挂 RequestID 中间件时为空串。
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}
