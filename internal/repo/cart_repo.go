// Package repo 实现数据访问层：每个业务实体一个类型化仓储，
// 各自持有自己的存储键，在键值存储之上读写完整的JSON数据块。
//
// 存储故障不向上传播：读失败降级为空值，写失败静默丢弃，
// 只记Warn日志，绝不向调用方上抛。调用方看到的存储永远"可用"。
package repo

import (
	"context"

	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/store"
)

// KeyCart 购物车数据块的存储键（沿用历史数据的键名）
const KeyCart = "ea_cart"

// CartRepository 定义购物车数据访问接口
type CartRepository interface {
	Load(ctx context.Context) *domain.Cart
	Save(ctx context.Context, cart *domain.Cart)
	Clear(ctx context.Context)
}

// cartRepo 实现CartRepository接口
type cartRepo struct {
	store  store.Store
	logger *zap.Logger
}

// NewCartRepository 创建购物车仓储实例
func NewCartRepository(s store.Store, logger *zap.Logger) CartRepository {
	return &cartRepo{store: s, logger: logger}
}

// Load 读取购物车；键不存在或读取失败时返回空购物车。
func (r *cartRepo) Load(ctx context.Context) *domain.Cart {
	var cart domain.Cart
	if err := r.store.Get(ctx, KeyCart, &cart); err != nil {
		if err != store.ErrNotFound {
			r.logger.Warn("load cart failed, using empty cart", zap.Error(err))
		}
		return domain.NewCart()
	}
	return &cart
}

// Save 持久化购物车；写失败只记日志。
func (r *cartRepo) Save(ctx context.Context, cart *domain.Cart) {
	if err := r.store.Set(ctx, KeyCart, cart); err != nil {
		r.logger.Warn("save cart failed", zap.Error(err))
	}
}

// Clear 删除购物车数据块
func (r *cartRepo) Clear(ctx context.Context) {
	if err := r.store.Del(ctx, KeyCart); err != nil {
		r.logger.Warn("clear cart failed", zap.Error(err))
	}
}
