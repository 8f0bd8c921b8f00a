package repo

import (
	"context"

	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/store"
)

// 订单相关的存储键
const (
	KeyOrders      = "orders"        // 历史订单数组，只追加
	KeyLastOrder   = "lastOrderData" // 最近一笔订单的完整快照
	KeyLastOrderID = "lastOrderId"   // 最近一笔订单的ID
)

// OrderRepository 定义订单数据访问接口
type OrderRepository interface {
	History(ctx context.Context) []domain.Order
	Append(ctx context.Context, order *domain.Order)
	SaveLast(ctx context.Context, order *domain.Order)
	LastOrder(ctx context.Context) (*domain.Order, bool)
	LastOrderID(ctx context.Context) (string, bool)
}

type orderRepo struct {
	store  store.Store
	logger *zap.Logger
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(s store.Store, logger *zap.Logger) OrderRepository {
	return &orderRepo{store: s, logger: logger}
}

// History 读取全部历史订单（存储顺序，最早的在前）
func (r *orderRepo) History(ctx context.Context) []domain.Order {
	var orders []domain.Order
	if err := r.store.Get(ctx, KeyOrders, &orders); err != nil {
		if err != store.ErrNotFound {
			r.logger.Warn("load order history failed, using empty history", zap.Error(err))
		}
		return nil
	}
	return orders
}

// Append 将新订单追加到历史数组末尾。历史记录只增不改。
func (r *orderRepo) Append(ctx context.Context, order *domain.Order) {
	orders := r.History(ctx)
	orders = append(orders, *order)
	if err := r.store.Set(ctx, KeyOrders, orders); err != nil {
		r.logger.Warn("append order failed", zap.Error(err), zap.String("order_id", order.ID))
	}
}

// SaveLast 记录最近一笔订单的快照和ID
func (r *orderRepo) SaveLast(ctx context.Context, order *domain.Order) {
	if err := r.store.Set(ctx, KeyLastOrder, order); err != nil {
		r.logger.Warn("save last order failed", zap.Error(err), zap.String("order_id", order.ID))
	}
	if err := r.store.Set(ctx, KeyLastOrderID, order.ID); err != nil {
		r.logger.Warn("save last order id failed", zap.Error(err), zap.String("order_id", order.ID))
	}
}

// LastOrder 读取最近一笔订单；不存在时第二个返回值为 false。
func (r *orderRepo) LastOrder(ctx context.Context) (*domain.Order, bool) {
	var order domain.Order
	if err := r.store.Get(ctx, KeyLastOrder, &order); err != nil {
		if err != store.ErrNotFound {
			r.logger.Warn("load last order failed", zap.Error(err))
		}
		return nil, false
	}
	return &order, true
}

// LastOrderID 读取最近一笔订单的ID
func (r *orderRepo) LastOrderID(ctx context.Context) (string, bool) {
	var id string
	if err := r.store.Get(ctx, KeyLastOrderID, &id); err != nil {
		if err != store.ErrNotFound {
			r.logger.Warn("load last order id failed", zap.Error(err))
		}
		return "", false
	}
	return id, id != ""
}
