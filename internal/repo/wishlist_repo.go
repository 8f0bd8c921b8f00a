package repo

import (
	"context"

	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/store"
)

// KeyWishlist 心愿单数据块的存储键
const KeyWishlist = "ea_wishlist"

// WishlistRepository 定义心愿单数据访问接口
type WishlistRepository interface {
	Load(ctx context.Context) *domain.Wishlist
	Save(ctx context.Context, w *domain.Wishlist)
}

type wishlistRepo struct {
	store  store.Store
	logger *zap.Logger
}

// NewWishlistRepository 创建心愿单仓储实例
func NewWishlistRepository(s store.Store, logger *zap.Logger) WishlistRepository {
	return &wishlistRepo{store: s, logger: logger}
}

// Load 读取心愿单。历史数据可能是裸ID字符串数组，
// 反序列化时由 domain.Wishlist 统一归一化为对象数组。
func (r *wishlistRepo) Load(ctx context.Context) *domain.Wishlist {
	var w domain.Wishlist
	if err := r.store.Get(ctx, KeyWishlist, &w); err != nil {
		if err != store.ErrNotFound {
			r.logger.Warn("load wishlist failed, using empty wishlist", zap.Error(err))
		}
		return domain.NewWishlist()
	}
	return &w
}

// Save 持久化心愿单（总是写出归一化后的对象数组形态）
func (r *wishlistRepo) Save(ctx context.Context, w *domain.Wishlist) {
	if err := r.store.Set(ctx, KeyWishlist, w); err != nil {
		r.logger.Warn("save wishlist failed", zap.Error(err))
	}
}
