// Package domain 定义店面系统的业务领域模型和核心业务规则。
// JSON标签沿用既有数据文件与持久化数据块的 camelCase 键名，
// 以保持与线上静态目录文档和历史数据的兼容。
package domain

import (
	"time"
)

// StockStatus 定义商品库存状态类型
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"     // 有货
	StockStatusLimited    StockStatus = "limited"      // 库存有限
	StockStatusOutOfStock StockStatus = "out_of_stock" // 无货
)

// ProductImage 商品图片（主图或图集项）
type ProductImage struct {
	Src       string `json:"src"`
	Thumb     string `json:"thumb,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// ProductImages 商品图片集合
type ProductImages struct {
	Main    string         `json:"main"`
	Gallery []ProductImage `json:"gallery,omitempty"`
}

// ProductSpec 单条规格（有序的 label/value 对）
type ProductSpec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProductOption 可选属性定义（如颜色、存储容量）
type ProductOption struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Type   string   `json:"type"`
	Values []string `json:"values"`
}

// ProductVariant 具体变体：一组属性取值对应的价格与SKU
type ProductVariant struct {
	ID          string            `json:"id,omitempty"`
	SKU         string            `json:"sku,omitempty"`
	Attrs       map[string]string `json:"attrs"`
	Price       float64           `json:"price"`
	OldPrice    float64           `json:"oldPrice,omitempty"`
	StockStatus StockStatus       `json:"stockStatus,omitempty"`
}

// ProductOffer 限时优惠信息
type ProductOffer struct {
	HasOffer        bool      `json:"hasOffer"`
	DiscountPercent int       `json:"discountPercent,omitempty"`
	EndsAt          time.Time `json:"endsAt,omitempty"`
}

// ProductRef 轻量商品引用（配件、相关商品列表使用）
type ProductRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image,omitempty"`
	Price float64 `json:"price,omitempty"`
}

// Product 表示目录中的商品记录。目录为只读参考数据，客户端从不修改。
type Product struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Category         string           `json:"category"`
	CategoryLabel    string           `json:"categoryLabel,omitempty"`
	Brand            string           `json:"brand,omitempty"`
	ShortDescription string           `json:"shortDescription,omitempty"`
	LongDescription  string           `json:"longDescription,omitempty"`
	BasePrice        float64          `json:"basePrice"`
	OldPrice         float64          `json:"oldPrice,omitempty"`
	Currency         string           `json:"currency,omitempty"`
	Material         string           `json:"material,omitempty"`
	Size             string           `json:"size,omitempty"`
	Color            string           `json:"color,omitempty"`
	Images           ProductImages    `json:"images"`
	Specs            []ProductSpec    `json:"specs,omitempty"`
	Options          []ProductOption  `json:"options,omitempty"`
	Variants         []ProductVariant `json:"variants,omitempty"`
	StockStatus      StockStatus      `json:"stockStatus,omitempty"`
	StockMessage     string           `json:"stockMessage,omitempty"`
	Offer            *ProductOffer    `json:"offer,omitempty"`
	Rating           float64          `json:"rating,omitempty"`
	RatingCount      int              `json:"ratingCount,omitempty"`
	Features         []string         `json:"features,omitempty"`
	OnSale           bool             `json:"onSale,omitempty"`
	IsNewArrival     bool             `json:"isNewArrival,omitempty"`
	IsBestSeller     bool             `json:"isBestSeller,omitempty"`
	SortNewest       int              `json:"sortNewest,omitempty"`
	SortBestseller   int              `json:"sortBestseller,omitempty"`
	Accessories      []ProductRef     `json:"accessories,omitempty"`
	RelatedProducts  []ProductRef     `json:"relatedProducts,omitempty"`
}

// IsAvailable 判断商品是否可加入购物车
func (p *Product) IsAvailable() bool {
	return p.StockStatus != StockStatusOutOfStock
}

// IsOnSale 判断商品是否处于促销状态
func (p *Product) IsOnSale() bool {
	if p.OnSale {
		return true
	}
	return p.Offer != nil && p.Offer.HasOffer
}

// FindVariant 按已选属性匹配变体：每个非空已选属性都必须与变体属性一致。
// 未选中的属性不参与匹配。无匹配返回 nil。
func (p *Product) FindVariant(selected map[string]string) *ProductVariant {
	if len(p.Variants) == 0 {
		return nil
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		match := true
		for key, want := range selected {
			if want == "" {
				continue
			}
			if v.Attrs[key] != want {
				match = false
				break
			}
		}
		if match {
			return v
		}
	}
	return nil
}

// CurrentPrice 返回变体价格（若有匹配变体）或基础价格
func (p *Product) CurrentPrice(selected map[string]string) float64 {
	if v := p.FindVariant(selected); v != nil {
		return v.Price
	}
	return p.BasePrice
}
