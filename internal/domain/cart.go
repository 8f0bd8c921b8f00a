// Package domain 定义购物车相关的业务领域模型和核心业务规则。
package domain

import (
	"fmt"
)

// 购物车定价规则常量
const (
	// FreeShippingThreshold 免运费门槛（小计达到该值免运费）
	FreeShippingThreshold = 300
	// ShippingFeeBelowThreshold 未达门槛时的固定预估运费
	ShippingFeeBelowThreshold = 20
	// CouponCode 唯一有效的优惠码，匹配时按 CouponDiscountRate 抵扣小计
	CouponCode = "SALE10"
	// CouponDiscountRate 优惠码折扣率
	CouponDiscountRate = 0.10
	// MinQty / MaxQty 单行商品数量边界，所有写路径统一钳制
	MinQty = 1
	MaxQty = 99
)

// CartItem 购物车行项目。
// Key 是行的复合身份：同一商品的不同尺码/颜色组合各占一行。
// Price 是加入时的快照价，目录后续调价不影响已在购物车中的行。
type CartItem struct {
	Key   string  `json:"key"`
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
	Size  string  `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
	Qty   int     `json:"qty"`
}

// ItemKey 构造行项目身份：id + "__" + size + "__" + color（size/color 缺省为空串）。
func ItemKey(id, size, color string) string {
	return fmt.Sprintf("%s__%s__%s", id, size, color)
}

// ClampQty 将数量钳制到 [MinQty, MaxQty]。
func ClampQty(qty int) int {
	if qty < MinQty {
		return MinQty
	}
	if qty > MaxQty {
		return MaxQty
	}
	return qty
}

// Cart 购物车实体：每个存储一份，行项目有序。
// Coupon 记录当前已应用的优惠码（空串表示未应用）；
// 该字段带 omitempty，历史数据块（只有 items）可以原样解析。
type Cart struct {
	Items  []CartItem `json:"items"`
	Coupon string     `json:"coupon,omitempty"`
}

// CouponApplied 判断购物车是否已应用有效优惠码
func (c *Cart) CouponApplied() bool {
	return c.Coupon == CouponCode
}

// NewCart 创建空购物车
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// FindItem 按行身份查找行项目，未找到返回 -1。
func (c *Cart) FindItem(key string) int {
	for i := range c.Items {
		if c.Items[i].Key == key {
			return i
		}
	}
	return -1
}

// Count 所有行项目数量之和（购物车角标展示值）。
func (c *Cart) Count() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Qty
	}
	return total
}

// Subtotal 各行 price × qty 之和。
func (c *Cart) Subtotal() float64 {
	var sum float64
	for i := range c.Items {
		sum += c.Items[i].Price * float64(c.Items[i].Qty)
	}
	return sum
}

// IsEmpty 是否为空购物车
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartTotals 购物车金额汇总（派生值，从不持久化）。
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// EstimateShipping 购物车页的预估运费：
// 小计为 0（空车）或达到免运费门槛时为 0，否则收固定运费。
func EstimateShipping(subtotal float64) float64 {
	if subtotal > 0 && subtotal < FreeShippingThreshold {
		return ShippingFeeBelowThreshold
	}
	return 0
}

// ComputeTotals 按购物车定价规则计算汇总。couponApplied 为真时抵扣小计的固定比例。
func (c *Cart) ComputeTotals(couponApplied bool) CartTotals {
	subtotal := c.Subtotal()
	shipping := EstimateShipping(subtotal)
	var discount float64
	if couponApplied {
		discount = subtotal * CouponDiscountRate
	}
	return CartTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal + shipping - discount,
	}
}

// AddCartItemRequest 表示加入购物车请求
type AddCartItemRequest struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Size  string  `json:"size"`
	Color string  `json:"color"`
	Qty   int     `json:"qty"`
}

// UpdateQtyRequest 表示修改行数量请求
type UpdateQtyRequest struct {
	Qty int `json:"qty"`
}

// ApplyCouponRequest 表示应用优惠码请求。Code 为空串表示清除已应用的优惠。
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// CartView 购物车读取响应：实体加派生汇总。
type CartView struct {
	Items         []CartItem `json:"items"`
	Count         int        `json:"count"`
	CouponApplied bool       `json:"couponApplied"`
	Totals        CartTotals `json:"totals"`
}
