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

// AccountHandler 账户页相关的HTTP处理器
type AccountHandler struct {
	accountService service.AccountService
	logger         *zap.Logger
}

// NewAccountHandler 创建账户处理器实例
func NewAccountHandler(accountService service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, logger: logger}
}

// Profile 读取账户资料
// GET /api/v1/account/profile
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	resp.OK(w, h.accountService.Profile(r.Context()), reqID, "")
}

// SaveProfile 保存账户资料
// PUT /api/v1/account/profile
func (h *AccountHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	resp.OK(w, h.accountService.SaveProfile(r.Context(), &req), reqID, "profile saved")
}

// Avatar 读取头像
// GET /api/v1/account/avatar
func (h *AccountHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	dataURL, ok := h.accountService.Avatar(r.Context())
	if !ok {
		resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "no avatar saved", reqID, "")
		return
	}
	result := map[string]string{"avatar": dataURL}
	resp.OK(w, &result, reqID, "")
}

// SaveAvatar 保存头像（data-URL）
// PUT /api/v1/account/avatar
func (h *AccountHandler) SaveAvatar(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req struct {
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if err := h.accountService.SaveAvatar(r.Context(), req.Avatar); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "avatar must be an image data url", reqID, "")
		return
	}
	resp.OK(w, nil, reqID, "avatar saved")
}

// Addresses 读取收货地址列表
// GET /api/v1/account/addresses
func (h *AccountHandler) Addresses(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	addrs := h.accountService.Addresses(r.Context())
	if addrs == nil {
		addrs = []domain.SavedAddress{}
	}
	resp.OK(w, &addrs, reqID, "")
}

// CreateAddress 新增收货地址
// POST /api/v1/account/addresses
func (h *AccountHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.SaveAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	addr, err := h.accountService.CreateAddress(r.Context(), &req)
	if err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "label, city and street are required", reqID, "")
		return
	}
	resp.OK(w, addr, reqID, "address saved")
}

// UpdateAddress 编辑收货地址
// PUT /api/v1/account/addresses/{id}
func (h *AccountHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	id := r.PathValue("id")

	var req domain.SaveAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	addr, err := h.accountService.UpdateAddress(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddressNotFound):
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "address not found", reqID, "")
		case errors.Is(err, service.ErrMissingAddressFields):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "label, city and street are required", reqID, "")
		default:
			h.logger.Error("update address failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "update address failed", reqID, "")
		}
		return
	}
	resp.OK(w, addr, reqID, "address updated")
}

// DeleteAddress 删除收货地址（幂等）
// DELETE /api/v1/account/addresses/{id}
func (h *AccountHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	addrs := h.accountService.DeleteAddress(r.Context(), r.PathValue("id"))
	if addrs == nil {
		addrs = []domain.SavedAddress{}
	}
	resp.OK(w, &addrs, reqID, "")
}

// SetDefaultAddress 将地址设为默认
// POST /api/v1/account/addresses/{id}/default
func (h *AccountHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	id := r.PathValue("id")

	addrs, err := h.accountService.SetDefaultAddress(r.Context(), id)
	if err != nil {
		resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "address not found", reqID, "")
		return
	}
	resp.OK(w, &addrs, reqID, "default address updated")
}
