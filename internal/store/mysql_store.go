// Package store 提供MySQL存储实现
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eleganceshop/storefront/internal/database"
)

// MySQLStore 基于单张 kv_entries 表的存储实现。
// 值按JSON整块存取，与其它后端保持完全相同的 read-modify-write 语义，
// 不引入事务或乐观锁，并发写入时后写覆盖先写。
type MySQLStore struct {
	db *database.DB
}

// NewMySQLStore 创建MySQL存储实例
func NewMySQLStore(db *database.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// Get 读取键值
func (s *MySQLStore) Get(ctx context.Context, key string, dest interface{}) error {
	var raw []byte
	err := s.db.QueryRowContext(ctx, "SELECT v FROM kv_entries WHERE k = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return unmarshalValue(raw, dest)
}

// Set 写入键值（upsert）
func (s *MySQLStore) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := marshalValue(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO kv_entries (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)",
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Del 删除键
func (s *MySQLStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE k = ?", key); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", key, err)
		}
	}
	return nil
}

// Exists 检查键是否存在
func (s *MySQLStore) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_entries WHERE k = ?", key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return count > 0, nil
}

// Ping 检查连接
func (s *MySQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close 关闭存储（数据库连接由调用方统一管理）
func (s *MySQLStore) Close() error { return nil }
