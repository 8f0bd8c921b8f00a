// Package store 提供按固定键存取JSON数据块的持久化键值存储。
// 这是整个店面系统的唯一持久化边界：每个仓储独占一个键，
// 读取整块、内存中修改、整块写回，后写覆盖先写。
// 支持 memory / redis / mysql 三种后端，数据永不过期。
package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound 表示键不存在。调用方通常将其视为"空值"而非错误。
var ErrNotFound = errors.New("store: key not found")

// Store 定义键值存储操作接口
type Store interface {
	// Get 读取键对应的JSON数据并反序列化到 dest；键不存在返回 ErrNotFound。
	Get(ctx context.Context, key string, dest interface{}) error
	// Set 序列化 value 并整块写入键。
	Set(ctx context.Context, key string, value interface{}) error
	// Del 删除若干键，键不存在不报错。
	Del(ctx context.Context, keys ...string) error
	// Exists 检查键是否存在。
	Exists(ctx context.Context, key string) (bool, error)
	// Ping 检查底层连接可用性。
	Ping(ctx context.Context) error
	// Close 释放底层资源。
	Close() error
}

// MemoryStore 进程内存储实现（用于开发和测试）。
// 与浏览器 localStorage 不同，它不跨进程存活，但接口语义一致。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore 创建内存存储实例
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get 读取键值
func (m *MemoryStore) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return unmarshalValue(raw, dest)
}

// Set 写入键值
func (m *MemoryStore) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := marshalValue(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// Del 删除键
func (m *MemoryStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.data, key)
	}
	m.mu.Unlock()
	return nil
}

// Exists 检查键是否存在
func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	_, ok := m.data[key]
	m.mu.RUnlock()
	return ok, nil
}

// Ping 检查连接（内存实现恒可用）
func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close 清空数据
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.data = make(map[string][]byte)
	m.mu.Unlock()
	return nil
}
