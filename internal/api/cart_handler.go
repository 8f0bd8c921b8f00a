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

// CartHandler 购物车相关的HTTP处理器
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler 创建购物车处理器实例
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, logger: logger}
}

// Get 读取购物车视图
// GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	resp.OK(w, h.cartService.View(r.Context()), reqID, "")
}

// AddItem 加入购物车
// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	view, err := h.cartService.AddItem(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidItem):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product id is required", reqID, "")
			return
		case errors.Is(err, service.ErrItemUnavailable):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product is out of stock", reqID, "")
			return
		}
		h.logger.Error("add cart item failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "add cart item failed", reqID, "")
		return
	}
	resp.OK(w, view, reqID, "item added")
}

// UpdateQty 修改行数量
// PATCH /api/v1/cart/items/{key}
func (h *CartHandler) UpdateQty(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	key := r.PathValue("key")

	var req domain.UpdateQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	resp.OK(w, h.cartService.UpdateQty(r.Context(), key, req.Qty), reqID, "")
}

// RemoveItem 删除行项目（幂等）
// DELETE /api/v1/cart/items/{key}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	resp.OK(w, h.cartService.RemoveItem(r.Context(), r.PathValue("key")), reqID, "")
}

// Clear 清空购物车
// DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	resp.OK(w, h.cartService.Clear(r.Context()), reqID, "cart cleared")
}

// ApplyCoupon 应用优惠码（空码表示清除已应用的优惠）
// POST /api/v1/cart/coupon
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.ApplyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	view, err := h.cartService.ApplyCoupon(r.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "cart is empty", reqID, "")
		case errors.Is(err, service.ErrInvalidCoupon):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid coupon code", reqID, "")
		default:
			h.logger.Error("apply coupon failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "apply coupon failed", reqID, "")
		}
		return
	}
	resp.OK(w, view, reqID, "coupon applied")
}
