// Package domain 定义订单相关的业务领域模型和核心业务规则。
package domain

import (
	"time"
)

// 结算运费方式：固定小集合，互斥单选。
const (
	ShippingMethodSanaa        = "sanaa"        // 市内配送
	ShippingMethodGovernorates = "governorates" // 跨省配送
	ShippingMethodPickup       = "pickup"       // 门店自提（免费）
)

// ShippingCosts 各配送方式的固定费用
var ShippingCosts = map[string]float64{
	ShippingMethodSanaa:        1000,
	ShippingMethodGovernorates: 2500,
	ShippingMethodPickup:       0,
}

// 支付方式标识（电子钱包或货到付款）。仅作为订单快照字段保存，不做任何支付处理。
const (
	PaymentMethodCOD     = "cod"
	PaymentMethodKuraimi = "kuraimi"
	PaymentMethodJeb     = "jeb"
	PaymentMethodOneCash = "onecash"
	PaymentMethodJawali  = "jawali"
)

// OrderStatusProcessing 新订单的默认状态文本。状态为自由文本，
// 本系统从不改写已落盘订单，状态流转需外部介入。
const OrderStatusProcessing = "processing"

// OrderCustomer 订单客户信息
type OrderCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// OrderAddress 订单收货地址
type OrderAddress struct {
	City     string `json:"city"`
	District string `json:"district,omitempty"`
	Street   string `json:"street"`
}

// OrderShipping 订单配送快照
type OrderShipping struct {
	Method string  `json:"method"`
	Cost   float64 `json:"cost"`
}

// OrderPayment 订单支付快照
type OrderPayment struct {
	Method    string `json:"method"`
	TxID      string `json:"txId,omitempty"`
	FromPhone string `json:"fromPhone,omitempty"`
}

// OrderTotals 订单金额汇总快照
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Order 提交结算时创建的不可变订单快照。
// Items 是提交时购物车行项目的深拷贝，与购物车后续变化无关。
type Order struct {
	ID       string        `json:"id"`
	Customer OrderCustomer `json:"customer"`
	Address  OrderAddress  `json:"address"`
	Shipping OrderShipping `json:"shipping"`
	Payment  OrderPayment  `json:"payment"`
	Notes    string        `json:"notes,omitempty"`
	Items    []CartItem    `json:"items"`
	Totals   OrderTotals   `json:"totals"`
	Date     time.Time     `json:"date"`
	Status   string        `json:"status"`
}

// CheckoutRequest 表示结算提交请求
type CheckoutRequest struct {
	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	City           string `json:"city"`
	District       string `json:"district"`
	Street         string `json:"street"`
	Notes          string `json:"notes"`
	ShippingMethod string `json:"shippingMethod"`
	PaymentMethod  string `json:"paymentMethod"`
	WalletTxID     string `json:"walletTxId"`
	WalletPhone    string `json:"walletFromPhone"`
	Coupon         string `json:"coupon"`
	AgreeTerms     bool   `json:"agreeTerms"`
}

// ShippingCost 返回所选配送方式的费用；未知或未选方式按 0 处理。
func ShippingCost(method string) float64 {
	if cost, ok := ShippingCosts[method]; ok {
		return cost
	}
	return 0
}

// ValidShippingMethod 判断配送方式是否属于固定集合
func ValidShippingMethod(method string) bool {
	_, ok := ShippingCosts[method]
	return ok
}
