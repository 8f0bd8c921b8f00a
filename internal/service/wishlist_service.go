package service

import (
	"context"
	"strings"

	"github.com/eleganceshop/storefront/internal/catalog"
	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/repo"
)

// WishlistService 定义心愿单业务逻辑接口
type WishlistService interface {
	List(ctx context.Context) []domain.WishlistEntry
	Toggle(ctx context.Context, req *domain.ToggleWishlistRequest) (*domain.ToggleWishlistResponse, error)
	Remove(ctx context.Context, id string) []domain.WishlistEntry
}

// wishlistService 实现WishlistService接口
type wishlistService struct {
	wishlistRepo repo.WishlistRepository
	catalog      *catalog.Catalog
}

// NewWishlistService 创建心愿单服务实例
func NewWishlistService(wishlistRepo repo.WishlistRepository, c *catalog.Catalog) WishlistService {
	return &wishlistService{wishlistRepo: wishlistRepo, catalog: c}
}

// List 读取心愿单条目。历史裸ID条目在读出时用目录数据补全展示字段。
func (s *wishlistService) List(ctx context.Context) []domain.WishlistEntry {
	w := s.wishlistRepo.Load(ctx)
	out := make([]domain.WishlistEntry, 0, len(w.Entries))
	for _, e := range w.Entries {
		out = append(out, s.enrich(e))
	}
	return out
}

// Toggle 按ID切换成员关系：在列表中则移除，否则追加。
// 身份仅由ID决定，尺码/颜色只是展示快照。
func (s *wishlistService) Toggle(ctx context.Context, req *domain.ToggleWishlistRequest) (*domain.ToggleWishlistResponse, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, ErrInvalidItem
	}

	w := s.wishlistRepo.Load(ctx)
	var inList bool
	if i := w.IndexOf(id); i >= 0 {
		w.Entries = append(w.Entries[:i], w.Entries[i+1:]...)
	} else {
		w.Entries = append(w.Entries, s.enrich(domain.WishlistEntry{
			ID:    id,
			Name:  req.Name,
			Price: req.Price,
			Image: req.Image,
			Size:  req.Size,
			Color: req.Color,
		}))
		inList = true
	}
	s.wishlistRepo.Save(ctx, w)

	msg := "Removed from wishlist"
	if inList {
		msg = "Added to wishlist"
	}
	return &domain.ToggleWishlistResponse{
		ID:      id,
		InList:  inList,
		Count:   len(w.Entries),
		Message: msg,
	}, nil
}

// Remove 按ID移除条目，不存在时为良性空操作（幂等）。
func (s *wishlistService) Remove(ctx context.Context, id string) []domain.WishlistEntry {
	w := s.wishlistRepo.Load(ctx)
	if i := w.IndexOf(id); i >= 0 {
		w.Entries = append(w.Entries[:i], w.Entries[i+1:]...)
		s.wishlistRepo.Save(ctx, w)
	}
	return s.List(ctx)
}

// enrich 用目录数据补全条目缺失的展示字段
func (s *wishlistService) enrich(e domain.WishlistEntry) domain.WishlistEntry {
	p, ok := s.catalog.Get(e.ID)
	if !ok {
		return e
	}
	if e.Name == "" {
		e.Name = p.Name
	}
	if e.Price == 0 {
		e.Price = p.BasePrice
	}
	if e.Image == "" {
		e.Image = p.Images.Main
	}
	return e
}
