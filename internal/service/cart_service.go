// Package service 实现店面业务逻辑层：购物车、心愿单、商品列表、
// 结算与账户各引擎的业务规则在这里收口，API 层只做协议转换。
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/eleganceshop/storefront/internal/catalog"
	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/repo"
)

// 购物车业务错误
var (
	ErrInvalidItem     = errors.New("invalid cart item")
	ErrItemUnavailable = errors.New("product is out of stock")
	ErrInvalidCoupon   = errors.New("invalid coupon code")
	ErrEmptyCart       = errors.New("cart is empty")
)

// CartService 定义购物车业务逻辑接口
type CartService interface {
	View(ctx context.Context) *domain.CartView
	AddItem(ctx context.Context, req *domain.AddCartItemRequest) (*domain.CartView, error)
	UpdateQty(ctx context.Context, key string, qty int) *domain.CartView
	RemoveItem(ctx context.Context, key string) *domain.CartView
	Clear(ctx context.Context) *domain.CartView
	ApplyCoupon(ctx context.Context, code string) (*domain.CartView, error)
}

// cartService 实现CartService接口
type cartService struct {
	cartRepo repo.CartRepository
	catalog  *catalog.Catalog
}

// NewCartService 创建购物车服务实例
func NewCartService(cartRepo repo.CartRepository, c *catalog.Catalog) CartService {
	return &cartService{cartRepo: cartRepo, catalog: c}
}

// View 读取购物车视图（行项目加派生汇总）
func (s *cartService) View(ctx context.Context) *domain.CartView {
	return viewOf(s.cartRepo.Load(ctx))
}

// AddItem 加入购物车。
// 同身份（id+尺码+颜色）的行合并数量，不同组合各占一行；数量统一钳制。
// 商品在目录中时以目录数据为准（名称、变体价格、主图），
// 不在目录时按请求给出的快照字段原样入车。
func (s *cartService) AddItem(ctx context.Context, req *domain.AddCartItemRequest) (*domain.CartView, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, ErrInvalidItem
	}

	name, price, image := req.Name, req.Price, req.Image
	if p, ok := s.catalog.Get(id); ok {
		// 无货商品拒绝入车（商品页按钮置灰，这里兜底接口直调）
		if !p.IsAvailable() {
			return nil, ErrItemUnavailable
		}
		name = p.Name
		image = p.Images.Main
		price = p.CurrentPrice(map[string]string{
			"size":  req.Size,
			"color": req.Color,
		})
	}
	if name == "" {
		return nil, ErrInvalidItem
	}

	qty := domain.ClampQty(req.Qty)
	key := domain.ItemKey(id, req.Size, req.Color)

	cart := s.cartRepo.Load(ctx)
	if i := cart.FindItem(key); i >= 0 {
		cart.Items[i].Qty = domain.ClampQty(cart.Items[i].Qty + qty)
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			Key:   key,
			ID:    id,
			Name:  name,
			Price: price,
			Image: image,
			Size:  req.Size,
			Color: req.Color,
			Qty:   qty,
		})
	}
	s.cartRepo.Save(ctx, cart)
	return viewOf(cart), nil
}

// UpdateQty 修改行数量。行不存在时为良性空操作；数量统一钳制。
func (s *cartService) UpdateQty(ctx context.Context, key string, qty int) *domain.CartView {
	cart := s.cartRepo.Load(ctx)
	if i := cart.FindItem(key); i >= 0 {
		cart.Items[i].Qty = domain.ClampQty(qty)
		s.cartRepo.Save(ctx, cart)
	}
	return viewOf(cart)
}

// RemoveItem 删除行项目。行不存在时为良性空操作（幂等）。
func (s *cartService) RemoveItem(ctx context.Context, key string) *domain.CartView {
	cart := s.cartRepo.Load(ctx)
	if i := cart.FindItem(key); i >= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		s.cartRepo.Save(ctx, cart)
	}
	return viewOf(cart)
}

// Clear 清空购物车（同时清除已应用的优惠码）
func (s *cartService) Clear(ctx context.Context) *domain.CartView {
	s.cartRepo.Clear(ctx)
	return viewOf(&domain.Cart{})
}

// ApplyCoupon 应用优惠码。
// 码先去首尾空白再不区分大小写比对；空码表示清除已应用的优惠；
// 空购物车上应用任何码都被拒绝；无效码不改变任何状态。
func (s *cartService) ApplyCoupon(ctx context.Context, code string) (*domain.CartView, error) {
	code = strings.TrimSpace(code)
	cart := s.cartRepo.Load(ctx)

	if code == "" {
		if cart.Coupon != "" {
			cart.Coupon = ""
			s.cartRepo.Save(ctx, cart)
		}
		return viewOf(cart), nil
	}

	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !strings.EqualFold(code, domain.CouponCode) {
		return nil, ErrInvalidCoupon
	}

	cart.Coupon = domain.CouponCode
	s.cartRepo.Save(ctx, cart)
	return viewOf(cart), nil
}

func viewOf(cart *domain.Cart) *domain.CartView {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	applied := cart.CouponApplied()
	return &domain.CartView{
		Items:         items,
		Count:         cart.Count(),
		CouponApplied: applied,
		Totals:        cart.ComputeTotals(applied),
	}
}
