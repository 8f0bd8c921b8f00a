package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eleganceshop/storefront/internal/catalog"
	"github.com/eleganceshop/storefront/internal/config"
	"github.com/eleganceshop/storefront/internal/limiter"
	"github.com/eleganceshop/storefront/internal/mq"
	"github.com/eleganceshop/storefront/internal/resp"
	"github.com/eleganceshop/storefront/internal/store"
)

func TestHealthz_OK(t *testing.T) {
	// Build a minimal mux identical to main's handler for /healthz
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		data := map[string]any{
			"status":  "ok",
			"version": "test",
		}
		resp.OK(w, &data, "test-req", "")
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}
	var body struct {
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Code != 0 || body.Data["status"] != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Version: "test", RequestTimeout: time.Second},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type"},
		},
	}
}

func TestAccessLogCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	lg := zap.New(core)
	cfg := testConfig()
	deps := initDependencies(cfg, store.NewMemoryStore(), catalog.Empty(), mq.NoopPublisher{}, lg)
	h := setupRoutes(cfg, deps, nil, lg)

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	entries := logs.FilterMessage("http_access").All()
	if len(entries) != 1 {
		t.Fatalf("http_access entries = %d, want 1", len(entries))
	}
	if entries[0].ContextMap()["request_id"] == "" {
		t.Error("access log request_id is empty, want the id assigned upstream")
	}
}

func TestInitLimiterSelectsBackend(t *testing.T) {
	lg := zap.NewNop()
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Rate: 5, Burst: 10, Window: time.Second}

	if _, ok := initLimiter(cfg, nil, lg).(*limiter.MemoryBucketLimiter); !ok {
		t.Error("limiter without redis: want *limiter.MemoryBucketLimiter")
	}

	// 构造客户端不会建立连接，首个命令才会
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})
	defer rdb.Close()
	if _, ok := initLimiter(cfg, rdb, lg).(*limiter.TokenBucketLimiter); !ok {
		t.Error("limiter with redis: want *limiter.TokenBucketLimiter")
	}

	cfg.RateLimit.Enabled = false
	if rl := initLimiter(cfg, rdb, lg); rl != nil {
		t.Errorf("limiter disabled: got %T, want nil", rl)
	}
}
