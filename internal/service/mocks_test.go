package service

import (
	"context"

	"github.com/eleganceshop/storefront/internal/catalog"
	"github.com/eleganceshop/storefront/internal/domain"
)

// fakeCartRepo 内存实现，记录写入次数便于断言
type fakeCartRepo struct {
	cart       *domain.Cart
	saveCalls  int
	clearCalls int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{cart: &domain.Cart{}}
}

func (f *fakeCartRepo) Load(ctx context.Context) *domain.Cart {
	c := *f.cart
	c.Items = append([]domain.CartItem(nil), f.cart.Items...)
	return &c
}

func (f *fakeCartRepo) Save(ctx context.Context, cart *domain.Cart) {
	f.saveCalls++
	c := *cart
	c.Items = append([]domain.CartItem(nil), cart.Items...)
	f.cart = &c
}

func (f *fakeCartRepo) Clear(ctx context.Context) {
	f.clearCalls++
	f.cart = &domain.Cart{}
}

// fakeWishlistRepo 内存实现
type fakeWishlistRepo struct {
	wishlist  *domain.Wishlist
	saveCalls int
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{wishlist: &domain.Wishlist{}}
}

func (f *fakeWishlistRepo) Load(ctx context.Context) *domain.Wishlist {
	return &domain.Wishlist{Entries: append([]domain.WishlistEntry(nil), f.wishlist.Entries...)}
}

func (f *fakeWishlistRepo) Save(ctx context.Context, w *domain.Wishlist) {
	f.saveCalls++
	f.wishlist = &domain.Wishlist{Entries: append([]domain.WishlistEntry(nil), w.Entries...)}
}

// fakeOrderRepo 内存实现
type fakeOrderRepo struct {
	orders []domain.Order
	last   *domain.Order
	lastID string
}

func (f *fakeOrderRepo) History(ctx context.Context) []domain.Order {
	return append([]domain.Order(nil), f.orders...)
}

func (f *fakeOrderRepo) Append(ctx context.Context, order *domain.Order) {
	f.orders = append(f.orders, *order)
}

func (f *fakeOrderRepo) SaveLast(ctx context.Context, order *domain.Order) {
	o := *order
	f.last = &o
	f.lastID = order.ID
}

func (f *fakeOrderRepo) LastOrder(ctx context.Context) (*domain.Order, bool) {
	if f.last == nil {
		return nil, false
	}
	return f.last, true
}

func (f *fakeOrderRepo) LastOrderID(ctx context.Context) (string, bool) {
	return f.lastID, f.lastID != ""
}

// fakeAccountRepo 内存实现
type fakeAccountRepo struct {
	profile *domain.Profile
	avatar  string
	addrs   []domain.SavedAddress
}

func (f *fakeAccountRepo) Profile(ctx context.Context) *domain.Profile {
	if f.profile == nil {
		return &domain.Profile{}
	}
	p := *f.profile
	return &p
}

func (f *fakeAccountRepo) SaveProfile(ctx context.Context, p *domain.Profile) {
	c := *p
	f.profile = &c
}

func (f *fakeAccountRepo) Avatar(ctx context.Context) (string, bool) {
	return f.avatar, f.avatar != ""
}

func (f *fakeAccountRepo) SaveAvatar(ctx context.Context, dataURL string) {
	f.avatar = dataURL
}

func (f *fakeAccountRepo) Addresses(ctx context.Context) []domain.SavedAddress {
	return append([]domain.SavedAddress(nil), f.addrs...)
}

func (f *fakeAccountRepo) SaveAddresses(ctx context.Context, addrs []domain.SavedAddress) {
	f.addrs = append([]domain.SavedAddress(nil), addrs...)
}

// fakeReviewRepo 内存实现
type fakeReviewRepo struct {
	reviews map[string][]domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string][]domain.Review{}}
}

func (f *fakeReviewRepo) List(ctx context.Context, productID string) []domain.Review {
	return append([]domain.Review(nil), f.reviews[productID]...)
}

func (f *fakeReviewRepo) Append(ctx context.Context, productID string, review *domain.Review) {
	f.reviews[productID] = append(f.reviews[productID], *review)
}

// fakePublisher 记录发布的订单事件，可注入发布错误
type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) PublishOrderSubmitted(ctx context.Context, order *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, order.ID)
	return nil
}

// testCatalog 两件测试商品：p1 基础价100（有变体价120），p2 基础价350。
func testCatalog() *catalog.Catalog {
	doc := `{
		"p1": {"name": "Cotton Shirt", "basePrice": 100, "category": "shirts",
		       "images": {"main": "/img/p1.jpg"},
		       "variants": [{"attrs": {"size": "xl", "color": "black"}, "price": 120}]},
		"p2": {"name": "Wool Coat", "basePrice": 350, "category": "coats",
		       "images": {"main": "/img/p2.jpg"}}
	}`
	c, err := catalog.Parse([]byte(doc))
	if err != nil {
		panic(err)
	}
	return c
}
