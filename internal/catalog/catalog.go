// Package catalog 负责加载并提供只读的商品目录。
// 目录是一个静态JSON文档：商品ID到商品记录的映射，每次启动加载一次，
// 客户端从不修改。加载失败静默降级为空目录（记日志，不上抛）。
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/eleganceshop/storefront/internal/domain"
)

// CategoryAll 分类查询参数的"不限分类"哨兵值
const CategoryAll = "all"

// Catalog 已加载的商品目录。记录文档中的原始键序，
// 作为筛选排序的稳定平局裁决依据。
type Catalog struct {
	products map[string]*domain.Product
	order    []string
}

// Empty 返回空目录（加载失败时的降级值）
func Empty() *Catalog {
	return &Catalog{products: map[string]*domain.Product{}}
}

// Parse 按文档顺序解析目录JSON。
// 使用逐token解析而非直接 Unmarshal 到 map，以保留对象键的出现顺序。
func Parse(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read catalog document: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("catalog document must be a JSON object, got %v", tok)
	}

	c := &Catalog{products: map[string]*domain.Product{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read catalog key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected catalog key token: %v", keyTok)
		}

		var p domain.Product
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode product %q: %w", key, err)
		}
		if p.ID == "" {
			// 文档以映射键为准
			p.ID = key
		}
		if _, dup := c.products[key]; !dup {
			c.order = append(c.order, key)
		}
		c.products[key] = &p
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read catalog document end: %w", err)
	}
	return c, nil
}

// Get 按商品ID查找；未找到返回 nil, false（调用方按良性缺失处理）。
func (c *Catalog) Get(id string) (*domain.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// Len 目录中的商品数量
func (c *Catalog) Len() int {
	return len(c.order)
}

// List 按文档顺序返回全部商品
func (c *Catalog) List() []*domain.Product {
	out := make([]*domain.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.products[id])
	}
	return out
}
