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

// WishlistHandler 心愿单相关的HTTP处理器
type WishlistHandler struct {
	wishlistService service.WishlistService
	logger          *zap.Logger
}

// NewWishlistHandler 创建心愿单处理器实例
func NewWishlistHandler(wishlistService service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, logger: logger}
}

// List 读取心愿单
// GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	entries := h.wishlistService.List(r.Context())
	result := map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	}
	resp.OK(w, &result, reqID, "")
}

// Toggle 切换条目的成员关系
// POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.ToggleWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	result, err := h.wishlistService.Toggle(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidItem) {
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product id is required", reqID, "")
			return
		}
		h.logger.Error("toggle wishlist failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "toggle wishlist failed", reqID, "")
		return
	}
	resp.OK(w, result, reqID, result.Message)
}

// Remove 移除条目（幂等）
// DELETE /api/v1/wishlist/{id}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	entries := h.wishlistService.Remove(r.Context(), r.PathValue("id"))
	result := map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	}
	resp.OK(w, &result, reqID, "")
}
