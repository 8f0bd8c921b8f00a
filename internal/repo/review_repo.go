package repo

import (
	"context"

	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/store"
)

// reviewKeyPrefix 商品评论键前缀，按商品ID参数化
const reviewKeyPrefix = "productReviews_"

// ReviewRepository 定义商品评论数据访问接口
type ReviewRepository interface {
	List(ctx context.Context, productID string) []domain.Review
	Append(ctx context.Context, productID string, review *domain.Review)
}

type reviewRepo struct {
	store  store.Store
	logger *zap.Logger
}

// NewReviewRepository 创建评论仓储实例
func NewReviewRepository(s store.Store, logger *zap.Logger) ReviewRepository {
	return &reviewRepo{store: s, logger: logger}
}

func reviewKey(productID string) string {
	return reviewKeyPrefix + productID
}

// List 读取某商品的全部评论（追加顺序）
func (r *reviewRepo) List(ctx context.Context, productID string) []domain.Review {
	var reviews []domain.Review
	if err := r.store.Get(ctx, reviewKey(productID), &reviews); err != nil {
		if err != store.ErrNotFound {
			r.logger.Warn("load reviews failed, using empty list",
				zap.Error(err), zap.String("product_id", productID))
		}
		return nil
	}
	return reviews
}

// Append 追加一条评论到商品的评论列表末尾
func (r *reviewRepo) Append(ctx context.Context, productID string, review *domain.Review) {
	reviews := r.List(ctx, productID)
	reviews = append(reviews, *review)
	if err := r.store.Set(ctx, reviewKey(productID), reviews); err != nil {
		r.logger.Warn("append review failed",
			zap.Error(err), zap.String("product_id", productID))
	}
}
