// Package domain 定义心愿单相关的业务领域模型和核心业务规则。
package domain

import (
	"encoding/json"
)

// WishlistEntry 心愿单条目。身份仅由 ID 决定（与购物车不同，不区分尺码/颜色）。
type WishlistEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Size  string  `json:"size"`
	Color string  `json:"color"`
}

// Wishlist 心愿单：有序条目列表，每个 ID 至多出现一次。
type Wishlist struct {
	Entries []WishlistEntry
}

// NewWishlist 创建空心愿单
func NewWishlist() *Wishlist {
	return &Wishlist{Entries: []WishlistEntry{}}
}

// IndexOf 按 ID 查找条目位置，未找到返回 -1。
func (w *Wishlist) IndexOf(id string) int {
	for i := range w.Entries {
		if w.Entries[i].ID == id {
			return i
		}
	}
	return -1
}

// MarshalJSON 始终以条目对象数组的形式落盘。
func (w *Wishlist) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Entries)
}

// UnmarshalJSON 兼容两种历史落盘形态：
//   - 裸 ID 字符串数组：["prod-1", "prod-2"]
//   - 条目对象数组：[{id, name, price, image, size, color}, ...]
//
// 裸 ID 归一化为空 name/price/image 的完整条目。
func (w *Wishlist) UnmarshalJSON(data []byte) error {
	var entries []WishlistEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		w.Entries = entries
		return nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	w.Entries = make([]WishlistEntry, 0, len(ids))
	for _, id := range ids {
		w.Entries = append(w.Entries, WishlistEntry{ID: id})
	}
	return nil
}

// ToggleWishlistRequest 表示切换心愿单条目请求
type ToggleWishlistRequest struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Size  string  `json:"size"`
	Color string  `json:"color"`
}

// ToggleWishlistResponse 表示切换结果：新成员关系与条目总数，
// 调用方据此更新按钮的视觉开关状态。
type ToggleWishlistResponse struct {
	ID      string `json:"id"`
	InList  bool   `json:"inList"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}
