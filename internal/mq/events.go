// Package mq 提供订单事件的RabbitMQ发布能力。
// 事件发布是尽力而为的旁路：发布失败只记日志，绝不影响业务结果。
package mq

import (
	"time"

	"github.com/eleganceshop/storefront/internal/domain"
)

// RoutingKeyOrderSubmitted 订单提交事件的路由键
const RoutingKeyOrderSubmitted = "order.submitted"

// OrderSubmittedEvent 订单提交事件载荷
type OrderSubmittedEvent struct {
	OrderID    string    `json:"order_id"`
	ItemCount  int       `json:"item_count"`
	Subtotal   float64   `json:"subtotal"`
	Shipping   float64   `json:"shipping"`
	Discount   float64   `json:"discount"`
	Total      float64   `json:"total"`
	Payment    string    `json:"payment"`
	City       string    `json:"city"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOrderSubmittedEvent 从订单快照构建事件载荷
func NewOrderSubmittedEvent(order *domain.Order) *OrderSubmittedEvent {
	return &OrderSubmittedEvent{
		OrderID:    order.ID,
		ItemCount:  len(order.Items),
		Subtotal:   order.Totals.Subtotal,
		Shipping:   order.Totals.Shipping,
		Discount:   order.Totals.Discount,
		Total:      order.Totals.Total,
		Payment:    order.Payment.Method,
		City:       order.Address.City,
		OccurredAt: order.Date,
	}
}
