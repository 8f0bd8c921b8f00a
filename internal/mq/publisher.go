package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/domain"
)

// Publisher 基于RabbitMQ的订单事件发布器。
// 持有单连接单信道，交换机在构造时声明；并发发布由互斥锁串行化。
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger

	mutex  sync.Mutex
	closed bool
}

// NewPublisher 连接RabbitMQ并声明topic交换机
func NewPublisher(url, exchange string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Dial:      amqp.DefaultDial(5 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	logger.Info("order event publisher connected", zap.String("exchange", exchange))
	return &Publisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// PublishOrderSubmitted 发布订单提交事件
func (p *Publisher) PublishOrderSubmitted(ctx context.Context, order *domain.Order) error {
	body, err := json.Marshal(NewOrderSubmittedEvent(order))
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return fmt.Errorf("publisher is closed")
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		RoutingKeyOrderSubmitted,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    order.ID,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish %s: %w", RoutingKeyOrderSubmitted, err)
	}
	return nil
}

// Close 关闭信道与连接
func (p *Publisher) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("close channel: %w", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	return nil
}

// NoopPublisher 空实现：未启用消息队列时使用
type NoopPublisher struct{}

// PublishOrderSubmitted 丢弃事件
func (NoopPublisher) PublishOrderSubmitted(ctx context.Context, order *domain.Order) error {
	return nil
}

// Close 无资源可释放
func (NoopPublisher) Close() error { return nil }
