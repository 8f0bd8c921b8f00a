package repo

import (
	"context"

	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/store"
)

// 账户相关的存储键
const (
	KeyProfile   = "accountProfile"
	KeyAvatar    = "accountAvatar"
	KeyAddresses = "accountAddresses"
)

// AccountRepository 定义账户数据访问接口
type AccountRepository interface {
	Profile(ctx context.Context) *domain.Profile
	SaveProfile(ctx context.Context, p *domain.Profile)
	Avatar(ctx context.Context) (string, bool)
	SaveAvatar(ctx context.Context, dataURL string)
	Addresses(ctx context.Context) []domain.SavedAddress
	SaveAddresses(ctx context.Context, addrs []domain.SavedAddress)
}

type accountRepo struct {
	store  store.Store
	logger *zap.Logger
}

// NewAccountRepository 创建账户仓储实例
func NewAccountRepository(s store.Store, logger *zap.Logger) AccountRepository {
	return &accountRepo{store: s, logger: logger}
}

// Profile 读取账户资料；未保存过时返回空资料。
func (r *accountRepo) Profile(ctx context.Context) *domain.Profile {
	var p domain.Profile
	if err := r.store.Get(ctx, KeyProfile, &p); err != nil {
		if err != store.ErrNotFound {
			r.logger.Warn("load profile failed, using empty profile", zap.Error(err))
		}
		return &domain.Profile{}
	}
	return &p
}

// SaveProfile 持久化账户资料
func (r *accountRepo) SaveProfile(ctx context.Context, p *domain.Profile) {
	if err := r.store.Set(ctx, KeyProfile, p); err != nil {
		r.logger.Warn("save profile failed", zap.Error(err))
	}
}

// Avatar 读取头像（data-URL字符串）
func (r *accountRepo) Avatar(ctx context.Context) (string, bool) {
	var dataURL string
	if err := r.store.Get(ctx, KeyAvatar, &dataURL); err != nil {
		if err != store.ErrNotFound {
			r.logger.Warn("load avatar failed", zap.Error(err))
		}
		return "", false
	}
	return dataURL, dataURL != ""
}

// SaveAvatar 持久化头像
func (r *accountRepo) SaveAvatar(ctx context.Context, dataURL string) {
	if err := r.store.Set(ctx, KeyAvatar, dataURL); err != nil {
		r.logger.Warn("save avatar failed", zap.Error(err))
	}
}

// Addresses 读取收货地址列表
func (r *accountRepo) Addresses(ctx context.Context) []domain.SavedAddress {
	var addrs []domain.SavedAddress
	if err := r.store.Get(ctx, KeyAddresses, &addrs); err != nil {
		if err != store.ErrNotFound {
			r.logger.Warn("load addresses failed, using empty list", zap.Error(err))
		}
		return nil
	}
	return addrs
}

// SaveAddresses 持久化收货地址列表（默认地址唯一性由服务层保证）
func (r *accountRepo) SaveAddresses(ctx context.Context, addrs []domain.SavedAddress) {
	if err := r.store.Set(ctx, KeyAddresses, addrs); err != nil {
		r.logger.Warn("save addresses failed", zap.Error(err))
	}
}
