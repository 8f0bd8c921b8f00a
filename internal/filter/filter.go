// Package filter 实现商品列表的筛选与排序。
// 全部为纯函数：同一目录、同一筛选状态得到同一结果，不依赖任何外部状态。
// 同维度内多选为"或"，跨维度为"与"；排序平局时按目录文档中的原始位次裁决。
package filter

import (
	"sort"

	"github.com/eleganceshop/storefront/internal/catalog"
	"github.com/eleganceshop/storefront/internal/domain"
)

// 排序方式
const (
	SortNewest     = "newest"
	SortBestseller = "bestseller"
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
)

// DefaultBestsellerRank 未标注畅销位次的商品排在所有已标注商品之后
const DefaultBestsellerRank = 9999

// PriceRange 价格区间，任一端为0表示该端开放
type PriceRange struct {
	Min float64
	Max float64
}

// Contains 判断价格是否落入区间
func (r PriceRange) Contains(price float64) bool {
	if r.Min > 0 && price < r.Min {
		return false
	}
	if r.Max > 0 && price > r.Max {
		return false
	}
	return true
}

// State 一次列表查询的完整筛选排序状态
type State struct {
	Sizes       map[string]bool
	Colors      map[string]bool
	Brands      map[string]bool
	Materials   map[string]bool
	Categories  map[string]bool
	Features    map[string]bool
	PriceRanges []PriceRange
	SaleOnly    bool
	Sort        string
}

// NewState 返回清空状态：无任何筛选，排序为 newest。
func NewState() State {
	return State{
		Sizes:      map[string]bool{},
		Colors:     map[string]bool{},
		Brands:     map[string]bool{},
		Materials:  map[string]bool{},
		Categories: map[string]bool{},
		Features:   map[string]bool{},
		Sort:       SortNewest,
	}
}

// IsEmpty 判断是否未施加任何筛选条件
func (s State) IsEmpty() bool {
	return len(s.Sizes) == 0 && len(s.Colors) == 0 && len(s.Brands) == 0 &&
		len(s.Materials) == 0 && len(s.Categories) == 0 && len(s.Features) == 0 &&
		len(s.PriceRanges) == 0 && !s.SaleOnly
}

// Card 参与筛选排序的商品卡片视图。
// Index 是商品在目录文档中的原始位次，初始化时捕获一次，之后不变。
// Visible 由 Apply 按筛选状态标记：被筛掉的卡片不剔除，只置为不可见。
type Card struct {
	Product        *domain.Product
	Index          int
	BestsellerRank int
	Visible        bool
}

// BuildCards 从目录构建卡片序列，按文档顺序编号。
func BuildCards(c *catalog.Catalog) []Card {
	list := c.List()
	cards := make([]Card, 0, len(list))
	for i, p := range list {
		rank := p.SortBestseller
		if rank <= 0 {
			rank = DefaultBestsellerRank
		}
		cards = append(cards, Card{Product: p, Index: i, BestsellerRank: rank})
	}
	return cards
}

// Matches 判断商品是否满足筛选状态的全部维度
func (s State) Matches(card Card) bool {
	p := card.Product
	if len(s.Sizes) > 0 && !s.Sizes[p.Size] {
		return false
	}
	if len(s.Colors) > 0 && !s.Colors[p.Color] {
		return false
	}
	if len(s.Brands) > 0 && !s.Brands[p.Brand] {
		return false
	}
	if len(s.Materials) > 0 && !s.Materials[p.Material] {
		return false
	}
	if len(s.Categories) > 0 && !matchCategory(s.Categories, p.Category) {
		return false
	}
	if len(s.Features) > 0 && !anyFeature(s.Features, p.Features) {
		return false
	}
	if len(s.PriceRanges) > 0 && !anyRange(s.PriceRanges, p.BasePrice) {
		return false
	}
	if s.SaleOnly && !p.IsOnSale() {
		return false
	}
	return true
}

func matchCategory(selected map[string]bool, category string) bool {
	// "all" 与具体分类一起被选中时退化为不限分类
	if selected[catalog.CategoryAll] {
		return true
	}
	return selected[category]
}

func anyFeature(selected map[string]bool, features []string) bool {
	for _, f := range features {
		if selected[f] {
			return true
		}
	}
	return false
}

func anyRange(ranges []PriceRange, price float64) bool {
	for _, r := range ranges {
		if r.Contains(price) {
			return true
		}
	}
	return false
}

// Apply 对全部卡片排序并标记可见性，返回新切片，不修改输入。
// 不满足筛选的卡片保留在结果中，Visible 置 false；排序作用于全部卡片，
// 因此切换筛选只翻转可见性标记，不改变卡片之间的相对次序。
func Apply(cards []Card, s State) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := range out {
		out[i].Visible = s.Matches(out[i])
	}
	sortCards(out, s.Sort)
	return out
}

// sortCards 按指定方式排序；未知方式回退为 newest。
// 所有排序的平局都按原始位次升序裁决，保证结果完全确定。
func sortCards(cards []Card, mode string) {
	var less func(a, b Card) bool
	switch mode {
	case SortBestseller:
		less = func(a, b Card) bool { return a.BestsellerRank < b.BestsellerRank }
	case SortPriceAsc:
		less = func(a, b Card) bool { return a.Product.BasePrice < b.Product.BasePrice }
	case SortPriceDesc:
		less = func(a, b Card) bool { return a.Product.BasePrice > b.Product.BasePrice }
	default: // SortNewest
		less = func(a, b Card) bool { return a.Product.SortNewest > b.Product.SortNewest }
	}
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.Index < b.Index
	})
}
