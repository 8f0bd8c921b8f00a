package service

import (
	"github.com/eleganceshop/storefront/internal/catalog"
	"github.com/eleganceshop/storefront/internal/domain"
	"github.com/eleganceshop/storefront/internal/filter"
)

// ProductCard 列表接口返回的卡片视图。
// 被筛掉的商品不从结果中剔除，以 visible=false 标记，
// 由展示层决定隐藏方式；排序覆盖全部卡片。
type ProductCard struct {
	*domain.Product
	Visible bool `json:"visible"`
}

// ProductService 定义商品列表业务逻辑接口
type ProductService interface {
	List(state filter.State) []ProductCard
	Get(id string) (*domain.Product, bool)
	Catalog() []*domain.Product
}

// productService 实现ProductService接口。
// 卡片序列在构造时捕获一次（含原始位次），之后所有查询都是纯计算。
type productService struct {
	catalog *catalog.Catalog
	cards   []filter.Card
}

// NewProductService 创建商品服务实例
func NewProductService(c *catalog.Catalog) ProductService {
	return &productService{
		catalog: c,
		cards:   filter.BuildCards(c),
	}
}

// List 按筛选排序状态返回全部商品卡片（含不可见卡片）
func (s *productService) List(state filter.State) []ProductCard {
	cards := filter.Apply(s.cards, state)
	out := make([]ProductCard, 0, len(cards))
	for _, card := range cards {
		out = append(out, ProductCard{Product: card.Product, Visible: card.Visible})
	}
	return out
}

// Get 按ID查找商品
func (s *productService) Get(id string) (*domain.Product, bool) {
	return s.catalog.Get(id)
}

// Catalog 按文档顺序返回全部商品
func (s *productService) Catalog() []*domain.Product {
	return s.catalog.List()
}
