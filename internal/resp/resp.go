// Package resp 定义统一的HTTP响应包络与业务错误码。
// 所有API响应都使用 {code, message, data, request_id} 结构，
// code 为 0 表示成功，非 0 表示业务或系统错误。
package resp

import (
	"encoding/json"
	"net/http"
)

// 业务错误码集合
const (
	CodeOK            = 0
	CodeInvalidParam  = 40001
	CodeNotFound      = 40401
	CodeTooManyReqs   = 42901
	CodeInternalError = 50001
	CodeTimeout       = 50401
)

// Body 统一响应包络
type Body struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// HTTPStatusFromCode 将业务错误码映射为HTTP状态码
func HTTPStatusFromCode(code int) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTooManyReqs:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// OK 写入成功响应；message 为空时默认 "ok"。
func OK(w http.ResponseWriter, data interface{}, requestID, message string) {
	if message == "" {
		message = "ok"
	}
	write(w, http.StatusOK, &Body{
		Code:      CodeOK,
		Message:   message,
		Data:      data,
		RequestID: requestID,
	})
}

// Error 写入错误响应。detail 非空时替代 message 中的泛化描述。
func Error(w http.ResponseWriter, status, code int, message, requestID, detail string) {
	if detail != "" {
		message = detail
	}
	write(w, status, &Body{
		Code:      code,
		Message:   message,
		RequestID: requestID,
	})
}

func write(w http.ResponseWriter, status int, body *Body) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// 编码失败时无法再写入响应体，只能忽略
	_ = json.NewEncoder(w).Encode(body)
}
