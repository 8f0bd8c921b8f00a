package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/repo"
)

// 结算业务错误
var (
	ErrMissingFields    = errors.New("missing required checkout fields")
	ErrInvalidShipping  = errors.New("invalid shipping method")
	ErrInvalidPayment   = errors.New("invalid payment method")
	ErrTermsNotAccepted = errors.New("terms must be accepted")
)

// validPaymentMethods 支付方式固定集合（仅作快照，不做支付处理）
var validPaymentMethods = map[string]bool{
	domain.PaymentMethodCOD:     true,
	domain.PaymentMethodKuraimi: true,
	domain.PaymentMethodJeb:     true,
	domain.PaymentMethodOneCash: true,
	domain.PaymentMethodJawali:  true,
}

// OrderPublisher 订单事件发布接口。发布失败从不影响结算结果。
type OrderPublisher interface {
	PublishOrderSubmitted(ctx context.Context, order *domain.Order) error
}

// CheckoutService 定义结算业务逻辑接口
type CheckoutService interface {
	Submit(ctx context.Context, req *domain.CheckoutRequest) (*domain.Order, error)
	Orders(ctx context.Context) []domain.Order
	Order(ctx context.Context, id string) (*domain.Order, bool)
	LastOrder(ctx context.Context) (*domain.Order, bool)
}

// checkoutService 实现CheckoutService接口
type checkoutService struct {
	cartRepo  repo.CartRepository
	orderRepo repo.OrderRepository
	publisher OrderPublisher
	logger    *zap.Logger
	clearCart bool

	// 测试可替换的时间与随机数来源
	now  func() time.Time
	intn func(n int) int
}

// NewCheckoutService 创建结算服务实例。
// clearCart 控制成功下单后是否清空购物车。
func NewCheckoutService(
	cartRepo repo.CartRepository,
	orderRepo repo.OrderRepository,
	publisher OrderPublisher,
	logger *zap.Logger,
	clearCart bool,
) CheckoutService {
	return &checkoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
		clearCart: clearCart,
		now:       time.Now,
		intn:      rand.Intn,
	}
}

// Submit 提交结算：校验按 必填字段 → 条款勾选 → 空购物车 的固定顺序进行，
// 任何一步失败都不产生任何写入。成功时生成不可变订单快照，
// 记录为最近订单并追加进历史，然后发布订单事件。
func (s *checkoutService) Submit(ctx context.Context, req *domain.CheckoutRequest) (*domain.Order, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}
	if !req.AgreeTerms {
		return nil, ErrTermsNotAccepted
	}

	cart := s.cartRepo.Load(ctx)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	subtotal := cart.Subtotal()
	shipping := domain.ShippingCost(req.ShippingMethod)

	var discount float64
	if couponAt(cart, req.Coupon) {
		discount = subtotal * domain.CouponDiscountRate
	}

	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)

	order := &domain.Order{
		ID: s.newOrderID(ctx),
		Customer: domain.OrderCustomer{
			Name:  strings.TrimSpace(req.FullName),
			Phone: strings.TrimSpace(req.Phone),
			Email: strings.TrimSpace(req.Email),
		},
		Address: domain.OrderAddress{
			City:     strings.TrimSpace(req.City),
			District: strings.TrimSpace(req.District),
			Street:   strings.TrimSpace(req.Street),
		},
		Shipping: domain.OrderShipping{
			Method: req.ShippingMethod,
			Cost:   shipping,
		},
		Payment: domain.OrderPayment{
			Method:    req.PaymentMethod,
			TxID:      strings.TrimSpace(req.WalletTxID),
			FromPhone: strings.TrimSpace(req.WalletPhone),
		},
		Notes: strings.TrimSpace(req.Notes),
		Items: items,
		Totals: domain.OrderTotals{
			Subtotal: subtotal,
			Shipping: shipping,
			Discount: discount,
			Total:    subtotal + shipping - discount,
		},
		Date:   s.now(),
		Status: domain.OrderStatusProcessing,
	}

	s.orderRepo.SaveLast(ctx, order)
	s.orderRepo.Append(ctx, order)

	if s.clearCart {
		s.cartRepo.Clear(ctx)
	}

	if err := s.publisher.PublishOrderSubmitted(ctx, order); err != nil {
		s.logger.Warn("publish order event failed",
			zap.Error(err), zap.String("order_id", order.ID))
	}

	s.logger.Info("order submitted",
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Totals.Total))
	return order, nil
}

// Orders 返回历史订单，最新的在前。
func (s *checkoutService) Orders(ctx context.Context) []domain.Order {
	history := s.orderRepo.History(ctx)
	out := make([]domain.Order, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out
}

// Order 按ID查找历史订单
func (s *checkoutService) Order(ctx context.Context, id string) (*domain.Order, bool) {
	for _, o := range s.orderRepo.History(ctx) {
		if o.ID == id {
			order := o
			return &order, true
		}
	}
	return nil, false
}

// LastOrder 读取最近一笔订单。
// 完整快照缺失（如单键被清掉）时用最近订单ID回退到历史查找。
func (s *checkoutService) LastOrder(ctx context.Context) (*domain.Order, bool) {
	if order, ok := s.orderRepo.LastOrder(ctx); ok {
		return order, true
	}
	if id, ok := s.orderRepo.LastOrderID(ctx); ok {
		return s.Order(ctx, id)
	}
	return nil, false
}

// newOrderID 生成 "<年份>-<四位随机数>" 形式的订单号，
// 与历史订单撞号时重掷，最多五次。
func (s *checkoutService) newOrderID(ctx context.Context) string {
	history := s.orderRepo.History(ctx)
	existing := make(map[string]bool, len(history))
	for _, o := range history {
		existing[o.ID] = true
	}

	var id string
	for attempt := 0; attempt < 5; attempt++ {
		id = fmt.Sprintf("%d-%d", s.now().Year(), 1000+s.intn(9000))
		if !existing[id] {
			return id
		}
	}
	return id
}

func validateCheckout(req *domain.CheckoutRequest) error {
	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.City) == "" ||
		strings.TrimSpace(req.Street) == "" {
		return ErrMissingFields
	}
	if !domain.ValidShippingMethod(req.ShippingMethod) {
		return ErrInvalidShipping
	}
	if !validPaymentMethods[req.PaymentMethod] {
		return ErrInvalidPayment
	}
	return nil
}

// couponAt 结算时的优惠判定：购物车里已应用的码，
// 或请求随单带来的码（去空白、不区分大小写）。
func couponAt(cart *domain.Cart, code string) bool {
	if cart.CouponApplied() {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(code), domain.CouponCode)
}
