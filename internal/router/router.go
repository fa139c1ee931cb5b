// Package router 提供HTTP路由设置和中间件配置功能
package router

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/api"
	"github.com/MorseWayne/flour_shop/internal/cache"
	"github.com/MorseWayne/flour_shop/internal/config"
	"github.com/MorseWayne/flour_shop/internal/limiter"
	mw "github.com/MorseWayne/flour_shop/internal/middleware"
	"github.com/MorseWayne/flour_shop/internal/resp"
	"github.com/MorseWayne/flour_shop/internal/service"
)

// Dependencies 包含路由设置所需的所有依赖
type Dependencies struct {
	UserHandler      *api.UserHandler
	ProductHandler   *api.ProductHandler
	CategoryHandler  *api.CategoryHandler
	PostHandler      *api.PostHandler
	InquiryHandler   *api.InquiryHandler
	UploadHandler    *api.UploadHandler
	DashboardHandler *api.DashboardHandler
	JWTService       service.JWTService

	// 限流器可为nil表示对应入口不限流
	ContactLimiter limiter.Limiter
	LoginLimiter   limiter.Limiter

	// 幂等存储，联系表单重复提交防护
	IdempotencyStore cache.Cache
}

// Setup 组装路由和中间件链
func Setup(cfg *config.Config, deps *Dependencies, lg *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// 健康检查端点
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		reqID := mw.RequestIDFromContext(r.Context())
		resp.OK(w, map[string]any{
			"status":  "ok",
			"version": cfg.App.Version,
		}, reqID, "")
	})

	// 认证路由（无需认证）
	login := http.Handler(http.HandlerFunc(deps.UserHandler.Login))
	if deps.LoginLimiter != nil {
		login = limiter.Middleware(deps.LoginLimiter, limiter.IPKeyFunc("login"), lg)(login)
	}
	mux.Handle("POST /api/v1/auth/login", login)
	mux.HandleFunc("POST /api/v1/auth/refresh", deps.UserHandler.RefreshToken)

	auth := mw.AuthMiddleware(deps.JWTService, lg)
	mux.Handle("GET /api/v1/users/profile", auth(http.HandlerFunc(deps.UserHandler.GetProfile)))

	// 商品目录（公开）
	mux.HandleFunc("GET /api/v1/products", deps.ProductHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{slug}", deps.ProductHandler.GetProduct)

	// 分类（公开）
	mux.HandleFunc("GET /api/v1/categories", deps.CategoryHandler.ListCategories)

	// 博客（公开）
	mux.HandleFunc("GET /api/v1/blog", deps.PostHandler.ListPublished)
	mux.HandleFunc("GET /api/v1/blog/{slug}", deps.PostHandler.GetPublished)

	// 联系表单（公开，限流+幂等防护）
	contact := http.Handler(http.HandlerFunc(deps.InquiryHandler.SubmitInquiry))
	if deps.IdempotencyStore != nil {
		contact = mw.Idempotency(deps.IdempotencyStore, cfg.Cache.TTL, lg)(contact)
	}
	if deps.ContactLimiter != nil {
		contact = limiter.Middleware(deps.ContactLimiter, limiter.IPKeyFunc("contact"), lg)(contact)
	}
	mux.Handle("POST /api/v1/contact", contact)

	// 管理员路由（需要认证+管理员权限）
	admin := func(h http.HandlerFunc) http.Handler {
		return auth(mw.RequireAdmin(lg)(h))
	}

	// 账号管理
	mux.Handle("POST /api/v1/admin/users", admin(deps.UserHandler.CreateUser))
	mux.Handle("GET /api/v1/admin/users", admin(deps.UserHandler.ListUsers))

	// 商品管理
	mux.Handle("POST /api/v1/admin/products", admin(deps.ProductHandler.CreateProduct))
	mux.Handle("GET /api/v1/admin/products/stats", admin(deps.ProductHandler.GetProductStats))
	mux.Handle("GET /api/v1/admin/products/{id}", admin(deps.ProductHandler.GetProductByID))
	mux.Handle("PUT /api/v1/admin/products/{id}", admin(deps.ProductHandler.UpdateProduct))
	mux.Handle("DELETE /api/v1/admin/products/{id}", admin(deps.ProductHandler.DeleteProduct))

	// 分类管理
	mux.Handle("POST /api/v1/admin/categories", admin(deps.CategoryHandler.CreateCategory))
	mux.Handle("DELETE /api/v1/admin/categories/{id}", admin(deps.CategoryHandler.DeleteCategory))

	// 文章管理
	mux.Handle("GET /api/v1/admin/posts", admin(deps.PostHandler.ListPosts))
	mux.Handle("POST /api/v1/admin/posts", admin(deps.PostHandler.CreatePost))
	mux.Handle("GET /api/v1/admin/posts/{id}", admin(deps.PostHandler.GetPost))
	mux.Handle("PUT /api/v1/admin/posts/{id}", admin(deps.PostHandler.UpdatePost))
	mux.Handle("DELETE /api/v1/admin/posts/{id}", admin(deps.PostHandler.DeletePost))

	// 询盘管理
	mux.Handle("GET /api/v1/admin/inquiries", admin(deps.InquiryHandler.ListInquiries))
	mux.Handle("GET /api/v1/admin/inquiries/{id}", admin(deps.InquiryHandler.GetInquiry))
	mux.Handle("PUT /api/v1/admin/inquiries/{id}/status", admin(deps.InquiryHandler.UpdateInquiryStatus))
	mux.Handle("DELETE /api/v1/admin/inquiries/{id}", admin(deps.InquiryHandler.DeleteInquiry))

	// 图片上传
	if deps.UploadHandler != nil {
		mux.Handle("POST /api/v1/admin/uploads", admin(deps.UploadHandler.UploadImage))
	}

	// 仪表盘
	mux.Handle("GET /api/v1/admin/dashboard", admin(deps.DashboardHandler.GetStats))

	// 构建中间件链：请求进入时执行顺序为 access log → CORS → timeout → recovery → request ID
	handler := mw.RequestID(mux)
	handler = mw.Recovery(lg)(handler)
	handler = mw.Timeout(cfg.App.RequestTimeout)(handler)
	handler = mw.CORS(mw.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
	})(handler)
	handler = mw.AccessLog(lg)(handler)

	return handler
}
