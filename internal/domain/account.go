// Package domain 定义账户页相关的业务领域模型。
package domain

import (
	"time"
)

// Profile 本地保存的账户基础资料
type Profile struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// SavedAddress 保存的收货地址。IsDefault 全列表至多一个为真。
type SavedAddress struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	City      string `json:"city"`
	District  string `json:"district,omitempty"`
	Street    string `json:"street"`
	Details   string `json:"details,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

// Review 单条商品评价。按商品分键存储。
type Review struct {
	Author string    `json:"author,omitempty"`
	Rating int       `json:"rating"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}

// SaveAddressRequest 表示新增/编辑地址请求
type SaveAddressRequest struct {
	Label     string `json:"label"`
	City      string `json:"city"`
	District  string `json:"district"`
	Street    string `json:"street"`
	Details   string `json:"details"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
}

// AddReviewRequest 表示提交评价请求
type AddReviewRequest struct {
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}
