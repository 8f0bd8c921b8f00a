// Package api 提供HTTP API处理器实现。
// API层负责处理HTTP请求/响应，进行数据验证和格式转换，业务规则全部在服务层。
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/filter"
	"github.com/eleganceshop/storefront/internal/middleware"
	"github.com/eleganceshop/storefront/internal/resp"
	"github.com/eleganceshop/storefront/internal/service"
)

// ProductHandler 商品目录与评论相关的HTTP处理器
type ProductHandler struct {
	productService service.ProductService
	reviewService  service.ReviewService
	logger         *zap.Logger
}

// NewProductHandler 创建商品处理器实例
func NewProductHandler(productService service.ProductService, reviewService service.ReviewService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		reviewService:  reviewService,
		logger:         logger,
	}
}

// Catalog 返回完整目录（文档顺序）
// GET /api/v1/catalog
func (h *ProductHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	products := h.productService.Catalog()
	resp.OK(w, &products, reqID, "")
}

// List 按筛选排序状态返回商品列表
// GET /api/v1/products?size=m&color=black&price=100-300&sale=true&sort=price-asc
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	state := filter.ParseState(r.URL.Query())
	cards := h.productService.List(state)

	visible := 0
	for _, c := range cards {
		if c.Visible {
			visible++
		}
	}
	// count 为可见卡片数（"X products found" 的展示值），products 含全部卡片
	result := map[string]interface{}{
		"products": cards,
		"count":    visible,
		"sort":     state.Sort,
	}
	resp.OK(w, &result, reqID, "")
}

// Get 返回单件商品详情
// GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	id := r.PathValue("id")

	product, ok := h.productService.Get(id)
	if !ok {
		resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
		return
	}
	resp.OK(w, product, reqID, "")
}

// ListReviews 返回商品的评论列表
// GET /api/v1/products/{id}/reviews
func (h *ProductHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	reviews := h.reviewService.List(r.Context(), r.PathValue("id"))
	if reviews == nil {
		reviews = []domain.Review{}
	}
	resp.OK(w, &reviews, reqID, "")
}

// AddReview 提交商品评论
// POST /api/v1/products/{id}/reviews
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	id := r.PathValue("id")

	var req domain.AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	review, err := h.reviewService.Add(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
		case errors.Is(err, service.ErrEmptyReview):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "review text is required", reqID, "")
		default:
			h.logger.Error("add review failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "add review failed", reqID, "")
		}
		return
	}
	resp.OK(w, review, reqID, "review added")
}
