package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseState 从查询参数解析筛选排序状态。
// 多值参数可重复出现，也可用逗号分隔；非法的价格区间与未知排序方式
// 按良性输入忽略，绝不报错。
func ParseState(q url.Values) State {
	s := NewState()

	collect(s.Sizes, q["size"])
	collect(s.Colors, q["color"])
	collect(s.Brands, q["brand"])
	collect(s.Materials, q["material"])
	collect(s.Categories, q["category"])
	collect(s.Features, q["feature"])

	for _, raw := range q["price"] {
		for _, part := range strings.Split(raw, ",") {
			if r, ok := parseRange(part); ok {
				s.PriceRanges = append(s.PriceRanges, r)
			}
		}
	}

	if v := q.Get("sale"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.SaleOnly = b
		}
	}

	switch q.Get("sort") {
	case SortBestseller:
		s.Sort = SortBestseller
	case SortPriceAsc:
		s.Sort = SortPriceAsc
	case SortPriceDesc:
		s.Sort = SortPriceDesc
	default:
		s.Sort = SortNewest
	}
	return s
}

func collect(set map[string]bool, values []string) {
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				set[part] = true
			}
		}
	}
}

// parseRange 解析 "min-max" 形式的价格区间，任一端可留空表示开放。
func parseRange(raw string) (PriceRange, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PriceRange{}, false
	}
	parts := strings.SplitN(raw, "-", 2)
	var r PriceRange
	if v := strings.TrimSpace(parts[0]); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return PriceRange{}, false
		}
		r.Min = f
	}
	if len(parts) == 2 {
		if v := strings.TrimSpace(parts[1]); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0 {
				return PriceRange{}, false
			}
			r.Max = f
		}
	}
	if r.Min == 0 && r.Max == 0 {
		return PriceRange{}, false
	}
	if r.Max > 0 && r.Min > r.Max {
		return PriceRange{}, false
	}
	return r, true
}
