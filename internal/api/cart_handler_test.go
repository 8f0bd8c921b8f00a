package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/catalog"
	"github.com/eleganceshop/storefront/internal/repo"
	"github.com/eleganceshop/storefront/internal/service"
	"github.com/eleganceshop/storefront/internal/store"
)

// envelope 响应体断言用的统一信封结构
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newCartTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	doc := `{"p1": {"name": "Cotton Shirt", "basePrice": 100, "category": "shirts"}}`
	c, err := catalog.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}

	logger := zap.NewNop()
	cartRepo := repo.NewCartRepository(store.NewMemoryStore(), logger)
	handler := NewCartHandler(service.NewCartService(cartRepo, c), logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/cart", handler.Get)
	mux.HandleFunc("POST /api/v1/cart/items", handler.AddItem)
	mux.HandleFunc("PATCH /api/v1/cart/items/{key}", handler.UpdateQty)
	mux.HandleFunc("DELETE /api/v1/cart/items/{key}", handler.RemoveItem)
	mux.HandleFunc("DELETE /api/v1/cart", handler.Clear)
	mux.HandleFunc("POST /api/v1/cart/coupon", handler.ApplyCoupon)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v, body = %s", err, rec.Body.String())
	}
	return rec, &env
}

func TestCartAddAndGet(t *testing.T) {
	mux := newCartTestMux(t)

	rec, env := doJSON(t, mux, http.MethodPost, "/api/v1/cart/items",
		`{"id": "p1", "size": "m", "qty": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if env.Code != 0 {
		t.Fatalf("add envelope code = %d, want 0", env.Code)
	}

	rec, env = doJSON(t, mux, http.MethodGet, "/api/v1/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	var view struct {
		Count  int `json:"count"`
		Totals struct {
			Subtotal float64 `json:"subtotal"`
			Shipping float64 `json:"shipping"`
			Total    float64 `json:"total"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Count != 2 || view.Totals.Subtotal != 200 || view.Totals.Shipping != 20 {
		t.Errorf("view = %+v, want count 2, subtotal 200, shipping 20", view)
	}
}

func TestCartAddRejectsBadRequests(t *testing.T) {
	mux := newCartTestMux(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"id":`},
		{"missing id", `{"qty": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doJSON(t, mux, http.MethodPost, "/api/v1/cart/items", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if env.Code == 0 {
				t.Error("envelope code = 0, want an error code")
			}
		})
	}
}

func TestCartCouponOnEmptyCartRejected(t *testing.T) {
	mux := newCartTestMux(t)

	rec, _ := doJSON(t, mux, http.MethodPost, "/api/v1/cart/coupon", `{"code": "SALE10"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for coupon on empty cart", rec.Code)
	}
}

func TestCartRemoveIsIdempotentOverHTTP(t *testing.T) {
	mux := newCartTestMux(t)

	doJSON(t, mux, http.MethodPost, "/api/v1/cart/items", `{"id": "p1", "qty": 1}`)

	rec, _ := doJSON(t, mux, http.MethodDelete, "/api/v1/cart/items/p1____", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("first remove status = %d", rec.Code)
	}
	rec, env := doJSON(t, mux, http.MethodDelete, "/api/v1/cart/items/p1____", "")
	if rec.Code != http.StatusOK || env.Code != 0 {
		t.Errorf("repeat remove: status = %d, code = %d, want benign 200", rec.Code, env.Code)
	}
}
