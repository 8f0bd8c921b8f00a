package store

import (
	"encoding/json"
	"fmt"
)

// marshalValue 统一序列化入口，保证三种后端写入完全相同的字节。
func marshalValue(value interface{}) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("store: marshal value: %w", err)
	}
	return raw, nil
}

// unmarshalValue 统一反序列化入口。
func unmarshalValue(raw []byte, dest interface{}) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("store: unmarshal value: %w", err)
	}
	return nil
}
