package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/middleware"
	"github.com/eleganceshop/storefront/internal/resp"
	"github.com/eleganceshop/storefront/internal/service"
)

// CheckoutHandler 结算与订单相关的HTTP处理器
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler 创建结算处理器实例
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, logger: logger}
}

// Submit 提交结算
// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	order, err := h.checkoutService.Submit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "missing required fields", reqID, "")
		case errors.Is(err, service.ErrInvalidShipping):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid shipping method", reqID, "")
		case errors.Is(err, service.ErrInvalidPayment):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid payment method", reqID, "")
		case errors.Is(err, service.ErrTermsNotAccepted):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "terms must be accepted", reqID, "")
		case errors.Is(err, service.ErrEmptyCart):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "cart is empty", reqID, "")
		default:
			h.logger.Error("checkout failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "checkout failed", reqID, "")
		}
		return
	}
	resp.OK(w, order, reqID, "order submitted")
}

// Orders 返回历史订单（最新的在前）
// GET /api/v1/orders
func (h *CheckoutHandler) Orders(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	orders := h.checkoutService.Orders(r.Context())
	resp.OK(w, &orders, reqID, "")
}

// LastOrder 返回最近一笔订单
// GET /api/v1/orders/last
func (h *CheckoutHandler) LastOrder(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	order, ok := h.checkoutService.LastOrder(r.Context())
	if !ok {
		resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "no order submitted yet", reqID, "")
		return
	}
	resp.OK(w, order, reqID, "")
}

// Order 按ID返回历史订单
// GET /api/v1/orders/{id}
func (h *CheckoutHandler) Order(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	id := r.PathValue("id")

	order, ok := h.checkoutService.Order(r.Context(), id)
	if !ok {
		resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "order not found", reqID, "")
		return
	}
	resp.OK(w, order, reqID, "")
}
