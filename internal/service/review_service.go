package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eleganceshop/storefront/internal/catalog"
	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/repo"
)

// 评论业务错误
var (
	ErrEmptyReview     = errors.New("review text is empty")
	ErrProductNotFound = errors.New("product not found")
)

// ReviewService 定义商品评论业务逻辑接口
type ReviewService interface {
	List(ctx context.Context, productID string) []domain.Review
	Add(ctx context.Context, productID string, req *domain.AddReviewRequest) (*domain.Review, error)
}

// reviewService 实现ReviewService接口
type reviewService struct {
	reviewRepo repo.ReviewRepository
	catalog    *catalog.Catalog

	now func() time.Time
}

// NewReviewService 创建评论服务实例
func NewReviewService(reviewRepo repo.ReviewRepository, c *catalog.Catalog) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		catalog:    c,
		now:        time.Now,
	}
}

// List 读取商品的评论列表
func (s *reviewService) List(ctx context.Context, productID string) []domain.Review {
	return s.reviewRepo.List(ctx, productID)
}

// Add 提交评论。空正文拒绝；评分钳制到 [1,5]；商品必须在目录中。
func (s *reviewService) Add(ctx context.Context, productID string, req *domain.AddReviewRequest) (*domain.Review, error) {
	if _, ok := s.catalog.Get(productID); !ok {
		return nil, ErrProductNotFound
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyReview
	}

	rating := req.Rating
	if rating < 1 {
		rating = 1
	} else if rating > 5 {
		rating = 5
	}

	review := &domain.Review{
		Author: strings.TrimSpace(req.Author),
		Rating: rating,
		Text:   text,
		Date:   s.now(),
	}
	s.reviewRepo.Append(ctx, productID, review)
	return review, nil
}
