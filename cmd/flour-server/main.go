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

	"github.com/MorseWayne/flour_shop/internal/api"
	"github.com/MorseWayne/flour_shop/internal/cache"
	"github.com/MorseWayne/flour_shop/internal/catalog"
	"github.com/MorseWayne/flour_shop/internal/config"
	"github.com/MorseWayne/flour_shop/internal/database"
	"github.com/MorseWayne/flour_shop/internal/limiter"
	"github.com/MorseWayne/flour_shop/internal/logger"
	"github.com/MorseWayne/flour_shop/internal/mailer"
	"github.com/MorseWayne/flour_shop/internal/repo"
	"github.com/MorseWayne/flour_shop/internal/router"
	"github.com/MorseWayne/flour_shop/internal/service"
)

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

// initDatabase 初始化数据库连接并执行迁移。
// 迁移在HTTP服务器启动前完成，确保处理请求时库表结构已就绪。
func initDatabase(cfg *config.Config, lg *zap.Logger) (*database.DB, error) {
	db, err := database.New(cfg, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	migrationsDir := cfg.Migrations.Dir
	lg.Sugar().Infow("using migrations directory", "path", migrationsDir)

	if err := db.RunMigrations(migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %v", err)
	}

	return db, nil
}

// initCache 初始化缓存实例，Redis不可用时降级到内存缓存
func initCache(cfg *config.Config, lg *zap.Logger) cache.Cache {
	var cacheInstance cache.Cache
	if cfg.Cache.Enabled {
		switch cfg.Cache.Type {
		case "redis":
			redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
			redisCache, err := cache.NewRedisCache(redisAddr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				lg.Sugar().Warnw("failed to connect to Redis, falling back to memory cache", "error", err)
				cacheInstance = cache.NewMemoryCache()
				lg.Sugar().Infow("cache enabled", "type", "memory (fallback)", "ttl", cfg.Cache.TTL)
			} else {
				cacheInstance = redisCache
				lg.Sugar().Infow("cache enabled", "type", "redis", "addr", redisAddr, "ttl", cfg.Cache.TTL)
			}
		case "memory":
			cacheInstance = cache.NewMemoryCache()
			lg.Sugar().Infow("cache enabled", "type", "memory", "ttl", cfg.Cache.TTL)
		default:
			lg.Sugar().Warnw("unknown cache type, using memory cache", "type", cfg.Cache.Type)
			cacheInstance = cache.NewMemoryCache()
			lg.Sugar().Infow("cache enabled", "type", "memory (default)", "ttl", cfg.Cache.TTL)
		}
	} else {
		cacheInstance = cache.NewNullCache()
		lg.Sugar().Infow("cache disabled")
	}
	return cacheInstance
}

// initLimiters 初始化联系表单和登录接口的限流器。
// Redis不可用或限流未启用时返回nil，对应入口不限流。
func initLimiters(cfg *config.Config, lg *zap.Logger) (contact, login limiter.Limiter) {
	if !cfg.RateLimit.Enabled {
		lg.Sugar().Infow("rate limiting disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	contactLimiter, err := limiter.NewFixedWindowLimiter(client, &limiter.Config{
		Rate:      cfg.RateLimit.ContactRate,
		Window:    cfg.RateLimit.ContactWindow,
		KeyPrefix: "limiter:contact",
	})
	if err != nil {
		lg.Sugar().Warnw("failed to create contact limiter", "err", err)
	} else {
		contact = contactLimiter
	}

	loginLimiter, err := limiter.NewFixedWindowLimiter(client, &limiter.Config{
		Rate:      cfg.RateLimit.LoginRate,
		Window:    cfg.RateLimit.LoginWindow,
		KeyPrefix: "limiter:login",
	})
	if err != nil {
		lg.Sugar().Warnw("failed to create login limiter", "err", err)
	} else {
		login = loginLimiter
	}

	lg.Sugar().Infow("rate limiting enabled",
		"contact_rate", cfg.RateLimit.ContactRate, "contact_window", cfg.RateLimit.ContactWindow,
		"login_rate", cfg.RateLimit.LoginRate, "login_window", cfg.RateLimit.LoginWindow)
	return contact, login
}

// initDependencies 初始化应用依赖（仓储、服务、处理器）
func initDependencies(cfg *config.Config, db *database.DB, cacheInstance cache.Cache, lg *zap.Logger) *router.Dependencies {
	// 依赖注入链：仓储 -> 服务 -> API处理器
	userRepo := repo.NewUserRepository(db)
	userService := service.NewUserService(userRepo, lg)
	jwtService := service.NewJWTService(cfg, lg)
	userHandler := api.NewUserHandler(userService, jwtService, lg)

	baseProductRepo := repo.NewProductRepository(db)

	// 可选缓存装饰器
	var productRepo repo.ProductRepository
	if cfg.Cache.Enabled {
		productRepo = repo.NewCachedProductRepository(baseProductRepo, cacheInstance, cfg.Cache.TTL)
	} else {
		productRepo = baseProductRepo
	}

	executor := catalog.NewExecutor(repo.NewCatalogStrategy(productRepo), cfg.Catalog.QueryTimeout, lg)
	productService := service.NewProductService(productRepo, executor, cfg.Catalog.PageSize, cfg.Catalog.MaxPageSize)

	categoryRepo := repo.NewCategoryRepository(db)
	categoryService := service.NewCategoryService(categoryRepo)

	productHandler := api.NewProductHandler(productService, categoryService, cfg.Catalog.Weights, lg)
	categoryHandler := api.NewCategoryHandler(categoryService, lg)

	postRepo := repo.NewPostRepository(db)
	postService := service.NewPostService(postRepo, lg)
	postHandler := api.NewPostHandler(postService, lg)

	// SMTP未配置时询盘不发通知邮件
	var notifier service.InquiryNotifier
	if cfg.SMTP.Host != "" {
		notifier = mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.NotifyTo, lg)
		lg.Sugar().Infow("inquiry email notification enabled", "host", cfg.SMTP.Host, "to", cfg.SMTP.NotifyTo)
	} else {
		lg.Sugar().Infow("inquiry email notification disabled")
	}

	inquiryRepo := repo.NewInquiryRepository(db)
	inquiryService := service.NewInquiryService(inquiryRepo, notifier, lg)
	inquiryHandler := api.NewInquiryHandler(inquiryService, lg)

	// Cloudinary未配置时上传接口不注册
	var uploadHandler *api.UploadHandler
	if cfg.Cloudinary.CloudName != "" {
		uploadService, err := service.NewUploadService(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder, lg)
		if err != nil {
			lg.Sugar().Warnw("failed to initialize upload service", "err", err)
		} else {
			uploadHandler = api.NewUploadHandler(uploadService, lg)
			lg.Sugar().Infow("image upload enabled", "cloud", cfg.Cloudinary.CloudName, "folder", cfg.Cloudinary.Folder)
		}
	} else {
		lg.Sugar().Infow("image upload disabled")
	}

	dashboardService := service.NewDashboardService(productService, inquiryService, postRepo)
	dashboardHandler := api.NewDashboardHandler(dashboardService, lg)

	contactLimiter, loginLimiter := initLimiters(cfg, lg)

	return &router.Dependencies{
		UserHandler:      userHandler,
		ProductHandler:   productHandler,
		CategoryHandler:  categoryHandler,
		PostHandler:      postHandler,
		InquiryHandler:   inquiryHandler,
		UploadHandler:    uploadHandler,
		DashboardHandler: dashboardHandler,
		JWTService:       jwtService,
		ContactLimiter:   contactLimiter,
		LoginLimiter:     loginLimiter,
		IdempotencyStore: cacheInstance,
	}
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

	// 2) 初始化数据库连接并执行迁移
	db, err := initDatabase(cfg, lg)
	if err != nil {
		lg.Sugar().Fatalw("failed to initialize database", "err", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			lg.Sugar().Errorw("failed to close database connection", "err", err)
		}
	}()

	// 3) 初始化缓存
	cacheInstance := initCache(cfg, lg)

	// 4) 初始化应用依赖（仓储、服务、处理器）
	deps := initDependencies(cfg, db, cacheInstance, lg)

	// 5) 设置路由和中间件
	handler := router.Setup(cfg, deps, lg)

	// 6) 启动 HTTP 服务器
	startServer(cfg, handler, lg)
}
