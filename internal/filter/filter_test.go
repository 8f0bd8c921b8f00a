package filter

import (
	"net/url"
	"testing"

	"github.com/eleganceshop/storefront/internal/catalog"
	"github.com/eleganceshop/storefront/internal/domain"
)

func testCards() []Card {
	products := []*domain.Product{
		{ID: "a", BasePrice: 100, Size: "m", Color: "black", Brand: "noor", Material: "cotton", Category: "shirts", Features: []string{"breathable"}, OnSale: true, SortNewest: 4, SortBestseller: 2},
		{ID: "b", BasePrice: 250, Size: "l", Color: "white", Brand: "noor", Material: "linen", Category: "shirts", SortNewest: 3, SortBestseller: 1},
		{ID: "c", BasePrice: 250, Size: "m", Color: "black", Brand: "sana", Material: "wool", Category: "coats", Features: []string{"warm", "breathable"}, SortNewest: 2},
		{ID: "d", BasePrice: 400, Size: "s", Color: "blue", Brand: "sana", Material: "silk", Category: "scarves", OnSale: true, SortNewest: 1, SortBestseller: 3},
	}
	cards := make([]Card, len(products))
	for i, p := range products {
		rank := p.SortBestseller
		if rank <= 0 {
			rank = DefaultBestsellerRank
		}
		cards[i] = Card{Product: p, Index: i, BestsellerRank: rank}
	}
	return cards
}

func ids(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Product.ID
	}
	return out
}

func visibleIDs(cards []Card) []string {
	var out []string
	for _, c := range cards {
		if c.Visible {
			out = append(out, c.Product.ID)
		}
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyFiltering(t *testing.T) {
	cards := testCards()

	tests := []struct {
		name  string
		state func() State
		want  []string
	}{
		{
			name:  "empty state keeps everything",
			state: NewState,
			want:  []string{"a", "b", "c", "d"},
		},
		{
			name: "or within a dimension",
			state: func() State {
				s := NewState()
				s.Colors["black"] = true
				s.Colors["white"] = true
				return s
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "and across dimensions",
			state: func() State {
				s := NewState()
				s.Colors["black"] = true
				s.Sizes["m"] = true
				s.Brands["noor"] = true
				return s
			},
			want: []string{"a"},
		},
		{
			name: "price range open upper bound",
			state: func() State {
				s := NewState()
				s.PriceRanges = append(s.PriceRanges, PriceRange{Min: 250})
				return s
			},
			want: []string{"b", "c", "d"},
		},
		{
			name: "feature intersection",
			state: func() State {
				s := NewState()
				s.Features["breathable"] = true
				return s
			},
			want: []string{"a", "c"},
		},
		{
			name: "sale only",
			state: func() State {
				s := NewState()
				s.SaleOnly = true
				return s
			},
			want: []string{"a", "d"},
		},
		{
			name: "all category sentinel overrides specific picks",
			state: func() State {
				s := NewState()
				s.Categories["coats"] = true
				s.Categories["all"] = true
				return s
			},
			want: []string{"a", "b", "c", "d"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(cards, tt.state())
			if len(result) != len(cards) {
				t.Fatalf("Apply() len = %d, want %d (hidden cards stay in the result)", len(result), len(cards))
			}
			got := visibleIDs(result)
			if !equalIDs(got, tt.want) {
				t.Errorf("Apply() visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyFlagsHiddenCards(t *testing.T) {
	cards := testCards()
	s := NewState()
	s.Categories["coats"] = true

	result := Apply(cards, s)
	if len(result) != len(cards) {
		t.Fatalf("Apply() len = %d, want %d", len(result), len(cards))
	}
	for _, c := range result {
		want := c.Product.Category == "coats"
		if c.Visible != want {
			t.Errorf("card %s Visible = %v, want %v", c.Product.ID, c.Visible, want)
		}
	}
	// 排序作用于全部卡片：隐藏卡片保持其排序位次
	if got := ids(result); !equalIDs(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("Apply() order = %v, want full newest order", got)
	}
}

func TestApplySorting(t *testing.T) {
	cards := testCards()

	tests := []struct {
		name string
		sort string
		want []string
	}{
		{"newest rank descending", SortNewest, []string{"a", "b", "c", "d"}},
		{"bestseller rank ascending with default last", SortBestseller, []string{"b", "a", "d", "c"}},
		{"price ascending ties broken by index", SortPriceAsc, []string{"a", "b", "c", "d"}},
		{"price descending ties broken by index", SortPriceDesc, []string{"d", "b", "c", "a"}},
		{"unknown mode falls back to newest", "weird", []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.Sort = tt.sort
			got := ids(Apply(cards, s))
			if !equalIDs(got, tt.want) {
				t.Errorf("Apply(sort=%s) = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	cards := testCards()
	s := NewState()
	s.Categories["shirts"] = true
	s.Sort = SortPriceAsc

	first := visibleIDs(Apply(cards, s))
	for i := 0; i < 5; i++ {
		if got := visibleIDs(Apply(cards, s)); !equalIDs(got, first) {
			t.Fatalf("run %d: Apply() = %v, want %v", i, got, first)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	cards := testCards()
	before := ids(cards)

	s := NewState()
	s.Sort = SortPriceDesc
	Apply(cards, s)

	if got := ids(cards); !equalIDs(got, before) {
		t.Errorf("input mutated: %v, want %v", got, before)
	}
}

func TestClearRestoresFullSet(t *testing.T) {
	cards := testCards()

	s := NewState()
	s.Colors["black"] = true
	s.SaleOnly = true
	s.Sort = SortPriceDesc
	if got := visibleIDs(Apply(cards, s)); len(got) == len(cards) {
		t.Fatal("expected the visible set to be smaller")
	}

	// clearing means a fresh state: no filters, newest sort
	got := visibleIDs(Apply(cards, NewState()))
	if !equalIDs(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("Apply(cleared) = %v, want full newest order", got)
	}
}

func TestBuildCardsCapturesDocumentOrder(t *testing.T) {
	doc := `{"x": {"basePrice": 10}, "y": {"basePrice": 20}}`
	c, err := catalog.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cards := BuildCards(c)
	if len(cards) != 2 {
		t.Fatalf("BuildCards() len = %d, want 2", len(cards))
	}
	if cards[0].Product.ID != "x" || cards[0].Index != 0 {
		t.Errorf("cards[0] = %s/%d, want x/0", cards[0].Product.ID, cards[0].Index)
	}
	if cards[1].BestsellerRank != DefaultBestsellerRank {
		t.Errorf("unranked BestsellerRank = %d, want %d", cards[1].BestsellerRank, DefaultBestsellerRank)
	}
}

func TestParseState(t *testing.T) {
	q := url.Values{
		"size":  {"m", "l"},
		"color": {"black,white"},
		"price": {"100-200", "300-"},
		"sale":  {"true"},
		"sort":  {"price-asc"},
	}
	s := ParseState(q)

	if !s.Sizes["m"] || !s.Sizes["l"] {
		t.Errorf("Sizes = %v, want m and l", s.Sizes)
	}
	if !s.Colors["black"] || !s.Colors["white"] {
		t.Errorf("Colors = %v, want black and white from comma form", s.Colors)
	}
	if len(s.PriceRanges) != 2 {
		t.Fatalf("PriceRanges = %v, want 2 ranges", s.PriceRanges)
	}
	if s.PriceRanges[1].Min != 300 || s.PriceRanges[1].Max != 0 {
		t.Errorf("PriceRanges[1] = %+v, want open upper bound from 300", s.PriceRanges[1])
	}
	if !s.SaleOnly {
		t.Error("SaleOnly = false, want true")
	}
	if s.Sort != SortPriceAsc {
		t.Errorf("Sort = %q, want price-asc", s.Sort)
	}
}

func TestParseStateIgnoresBadInput(t *testing.T) {
	q := url.Values{
		"price": {"abc-def", "-", "", "200-100"},
		"sale":  {"maybe"},
		"sort":  {"oldest"},
	}
	s := ParseState(q)

	if len(s.PriceRanges) != 0 {
		t.Errorf("PriceRanges = %v, want none", s.PriceRanges)
	}
	if s.SaleOnly {
		t.Error("SaleOnly = true, want false for unparseable value")
	}
	if s.Sort != SortNewest {
		t.Errorf("Sort = %q, want newest fallback", s.Sort)
	}
	if !s.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
}
