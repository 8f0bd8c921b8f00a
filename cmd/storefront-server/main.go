package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eleganceshop/storefront/internal/api"
	"github.com/eleganceshop/storefront/internal/catalog"
	"github.com/eleganceshop/storefront/internal/config"
	"github.com/eleganceshop/storefront/internal/database"
	"github.com/eleganceshop/storefront/internal/limiter"
	"github.com/eleganceshop/storefront/internal/logger"
	mw "github.com/eleganceshop/storefront/internal/middleware"
	"github.com/eleganceshop/storefront/internal/mq"
	"github.com/eleganceshop/storefront/internal/repo"
	"github.com/eleganceshop/storefront/internal/resp"
	"github.com/eleganceshop/storefront/internal/service"
	"github.com/eleganceshop/storefront/internal/store"
)

// AppDependencies 包含应用的所有处理器
type AppDependencies struct {
	ProductHandler  *api.ProductHandler
	CartHandler     *api.CartHandler
	WishlistHandler *api.WishlistHandler
	CheckoutHandler *api.CheckoutHandler
	AccountHandler  *api.AccountHandler
}

// initConfigAndLogger 初始化配置和日志器
func initConfigAndLogger() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %v", err)
	}

	lg, err := logger.New(cfg.App.Env, cfg.Log.Level, cfg.Log.Encoding, cfg.App.Name, cfg.App.Version)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %v", err)
	}
	return cfg, lg, nil
}

// initStore 按配置选择键值存储后端。
// redis连接失败时回退到内存存储，服务照常可用（数据不再跨重启保留）。
// 第二个返回值是redis连接（仅redis后端生效），限流器共用同一实例。
func initStore(cfg *config.Config, lg *zap.Logger) (store.Store, *redis.Client, func()) {
	switch cfg.Store.Backend {
	case "redis":
		redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		s, err := store.NewRedisStore(redisAddr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			lg.Sugar().Warnw("failed to connect to Redis, falling back to memory store", "error", err)
			return store.NewMemoryStore(), nil, func() {}
		}
		lg.Sugar().Infow("store backend ready", "type", "redis", "addr", redisAddr)
		return s, s.Client(), func() {
			if err := s.Close(); err != nil {
				lg.Sugar().Errorw("failed to close redis store", "error", err)
			}
		}

	case "mysql":
		db, err := database.New(cfg, lg)
		if err != nil {
			lg.Sugar().Fatalw("failed to initialize database", "error", err)
		}
		// 启动时、HTTP服务器就绪前执行迁移，保证表结构可用
		if err := db.RunMigrations(cfg.Migrations.Dir); err != nil {
			lg.Sugar().Fatalw("failed to run database migrations", "error", err)
		}
		lg.Sugar().Infow("store backend ready", "type", "mysql", "host", cfg.Database.Host)
		return store.NewMySQLStore(db), nil, func() {
			if err := db.Close(); err != nil {
				lg.Sugar().Errorw("failed to close database connection", "error", err)
			}
		}

	default:
		lg.Sugar().Infow("store backend ready", "type", "memory")
		return store.NewMemoryStore(), nil, func() {}
	}
}

// initLimiter 构建限流器：有Redis连接时用Redis令牌桶（多实例共享配额），
// 否则退化为进程内令牌桶。未启用限流时返回nil。
func initLimiter(cfg *config.Config, rdb *redis.Client, lg *zap.Logger) limiter.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	lc := &limiter.Config{
		Rate:   cfg.RateLimit.Rate,
		Burst:  cfg.RateLimit.Burst,
		Window: cfg.RateLimit.Window,
	}
	if rdb != nil {
		lg.Sugar().Infow("rate limiter ready", "backend", "redis")
		return limiter.NewTokenBucketLimiter(rdb, lc)
	}
	lg.Sugar().Infow("rate limiter ready", "backend", "memory")
	return limiter.NewMemoryBucketLimiter(lc)
}

// initPublisher 初始化订单事件发布器；未启用或连接失败时使用空实现。
func initPublisher(cfg *config.Config, lg *zap.Logger) (service.OrderPublisher, func()) {
	if !cfg.MQ.Enabled {
		lg.Sugar().Infow("order event publisher disabled")
		return mq.NoopPublisher{}, func() {}
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, lg)
	if err != nil {
		lg.Sugar().Warnw("failed to connect to message broker, order events disabled", "error", err)
		return mq.NoopPublisher{}, func() {}
	}
	return p, func() {
		if err := p.Close(); err != nil {
			lg.Sugar().Errorw("failed to close publisher", "error", err)
		}
	}
}

// initDependencies 初始化依赖注入链：仓储 -> 服务 -> API处理器
func initDependencies(cfg *config.Config, kv store.Store, cat *catalog.Catalog, publisher service.OrderPublisher, lg *zap.Logger) *AppDependencies {
	cartRepo := repo.NewCartRepository(kv, lg)
	wishlistRepo := repo.NewWishlistRepository(kv, lg)
	orderRepo := repo.NewOrderRepository(kv, lg)
	accountRepo := repo.NewAccountRepository(kv, lg)
	reviewRepo := repo.NewReviewRepository(kv, lg)

	productService := service.NewProductService(cat)
	reviewService := service.NewReviewService(reviewRepo, cat)
	cartService := service.NewCartService(cartRepo, cat)
	wishlistService := service.NewWishlistService(wishlistRepo, cat)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, publisher, lg, cfg.Checkout.ClearCartOnSuccess)
	accountService := service.NewAccountService(accountRepo)

	return &AppDependencies{
		ProductHandler:  api.NewProductHandler(productService, reviewService, lg),
		CartHandler:     api.NewCartHandler(cartService, lg),
		WishlistHandler: api.NewWishlistHandler(wishlistService, lg),
		CheckoutHandler: api.NewCheckoutHandler(checkoutService, lg),
		AccountHandler:  api.NewAccountHandler(accountService, lg),
	}
}

// setupRoutes 设置路由和中间件；rl 为 nil 时提交型端点不挂限流
func setupRoutes(cfg *config.Config, deps *AppDependencies, rl limiter.Limiter, lg *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// 健康检查端点
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		reqID := mw.RequestIDFromContext(r.Context())
		data := map[string]any{
			"status":  "ok",
			"version": cfg.App.Version,
		}
		resp.OK(w, &data, reqID, "")
	})

	// 目录与商品（只读，公开）
	mux.HandleFunc("GET /api/v1/catalog", deps.ProductHandler.Catalog)
	mux.HandleFunc("GET /api/v1/products", deps.ProductHandler.List)
	mux.HandleFunc("GET /api/v1/products/{id}", deps.ProductHandler.Get)
	mux.HandleFunc("GET /api/v1/products/{id}/reviews", deps.ProductHandler.ListReviews)

	// 购物车
	mux.HandleFunc("GET /api/v1/cart", deps.CartHandler.Get)
	mux.HandleFunc("DELETE /api/v1/cart", deps.CartHandler.Clear)
	mux.HandleFunc("PATCH /api/v1/cart/items/{key}", deps.CartHandler.UpdateQty)
	mux.HandleFunc("DELETE /api/v1/cart/items/{key}", deps.CartHandler.RemoveItem)

	// 心愿单
	mux.HandleFunc("GET /api/v1/wishlist", deps.WishlistHandler.List)
	mux.HandleFunc("DELETE /api/v1/wishlist/{id}", deps.WishlistHandler.Remove)

	// 订单
	mux.HandleFunc("GET /api/v1/orders", deps.CheckoutHandler.Orders)
	mux.HandleFunc("GET /api/v1/orders/last", deps.CheckoutHandler.LastOrder)
	mux.HandleFunc("GET /api/v1/orders/{id}", deps.CheckoutHandler.Order)

	// 账户
	mux.HandleFunc("GET /api/v1/account/profile", deps.AccountHandler.Profile)
	mux.HandleFunc("PUT /api/v1/account/profile", deps.AccountHandler.SaveProfile)
	mux.HandleFunc("GET /api/v1/account/avatar", deps.AccountHandler.Avatar)
	mux.HandleFunc("PUT /api/v1/account/avatar", deps.AccountHandler.SaveAvatar)
	mux.HandleFunc("GET /api/v1/account/addresses", deps.AccountHandler.Addresses)
	mux.HandleFunc("POST /api/v1/account/addresses", deps.AccountHandler.CreateAddress)
	mux.HandleFunc("PUT /api/v1/account/addresses/{id}", deps.AccountHandler.UpdateAddress)
	mux.HandleFunc("DELETE /api/v1/account/addresses/{id}", deps.AccountHandler.DeleteAddress)
	mux.HandleFunc("POST /api/v1/account/addresses/{id}/default", deps.AccountHandler.SetDefaultAddress)

	// 写入频率较高的提交型端点挂限流
	var submitHandler http.Handler = http.HandlerFunc(deps.CheckoutHandler.Submit)
	var addItemHandler http.Handler = http.HandlerFunc(deps.CartHandler.AddItem)
	var couponHandler http.Handler = http.HandlerFunc(deps.CartHandler.ApplyCoupon)
	var toggleHandler http.Handler = http.HandlerFunc(deps.WishlistHandler.Toggle)
	var reviewHandler http.Handler = http.HandlerFunc(deps.ProductHandler.AddReview)

	if rl != nil {
		limit := limiter.Middleware(rl, lg)
		submitHandler = limit(submitHandler)
		addItemHandler = limit(addItemHandler)
		couponHandler = limit(couponHandler)
		toggleHandler = limit(toggleHandler)
		reviewHandler = limit(reviewHandler)
	}
	mux.Handle("POST /api/v1/checkout", submitHandler)
	mux.Handle("POST /api/v1/cart/items", addItemHandler)
	mux.Handle("POST /api/v1/cart/coupon", couponHandler)
	mux.Handle("POST /api/v1/wishlist/toggle", toggleHandler)
	mux.Handle("POST /api/v1/products/{id}/reviews", reviewHandler)

	// 构建中间件链：请求进入时执行顺序为 request ID → access log → CORS → timeout → recovery。
	// request ID 在最外层，访问日志与panic日志才能带上请求ID。
	handler := mw.Recovery(lg)(mux)
	handler = mw.Timeout(cfg.App.RequestTimeout)(handler)
	handler = mw.CORS(mw.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
	})(handler)
	handler = mw.AccessLog(lg)(handler)
	handler = mw.RequestID(handler)

	return handler
}

// startServer 启动服务器并处理优雅关闭
func startServer(cfg *config.Config, handler http.Handler, lg *zap.Logger) {
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	lg.Sugar().Infow("server starting", "addr", addr)
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	select {
	case err := <-serverErrCh:
		if err != nil && err != http.ErrServerClosed {
			lg.Sugar().Fatalw("server error", "err", err)
		}
	case <-quit:
		lg.Sugar().Infow("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Sugar().Errorw("server shutdown error", "err", err)
	}
	lg.Sugar().Infow("server exited")
}

// main 为应用入口，协调各个组件的初始化和启动
func main() {
	// 1) 加载配置和初始化日志
	cfg, lg, err := initConfigAndLogger()
	if err != nil {
		log.Fatalf("failed to initialize config and logger: %v", err)
	}

	// 2) 初始化键值存储后端
	kv, rdb, closeStore := initStore(cfg, lg)
	defer closeStore()

	// 3) 加载商品目录（失败降级为空目录，服务照常启动）
	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.Timeout)
	cat := catalog.NewLoader(cfg.Catalog.URL, cfg.Catalog.Timeout, lg).LoadOrEmpty(loadCtx)
	cancel()

	// 4) 初始化订单事件发布器
	publisher, closePublisher := initPublisher(cfg, lg)
	defer closePublisher()

	// 5) 初始化应用依赖（仓储、服务、处理器）
	deps := initDependencies(cfg, kv, cat, publisher, lg)

	// 6) 设置路由和中间件
	handler := setupRoutes(cfg, deps, initLimiter(cfg, rdb, lg), lg)

	// 7) 启动 HTTP 服务器
	startServer(cfg, handler, lg)
}
