package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/catalog"
	"github.com/MorseWayne/flour_shop/internal/domain"
	"github.com/MorseWayne/flour_shop/internal/middleware"
	"github.com/MorseWayne/flour_shop/internal/resp"
	"github.com/MorseWayne/flour_shop/internal/service"
)

// ProductHandler 商品相关的HTTP处理器
type ProductHandler struct {
	productService  service.ProductService
	categoryService service.CategoryService
	weights         []string
	logger          *zap.Logger
}

// NewProductHandler 创建商品处理器实例
func NewProductHandler(productService service.ProductService, categoryService service.CategoryService, weights []string, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		categoryService: categoryService,
		weights:         weights,
		logger:          logger,
	}
}

// catalogListResponse 目录查询响应，附带规范化后的筛选状态
type catalogListResponse struct {
	*domain.ProductListResponse
	Filters catalog.FilterState `json:"filters"`
	Query   string              `json:"query"` // 规范化查询串，供前端同步地址栏
}

// ListProducts 目录查询
// GET /api/v1/products?category=...&weight=...&minPrice=...&maxPrice=...&sort=...
// 非法筛选参数逐项回退到默认值，不会导致请求失败
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	codec, err := h.buildCodec()
	if err != nil {
		h.logger.Error("failed to load category vocabulary", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "list products failed", reqID, "")
		return
	}

	state := codec.Decode(r.URL.Query())
	page, pageSize := parsePagination(r, 0)

	result, err := h.productService.ListCatalog(r.Context(), state, page, pageSize)
	if err != nil {
		h.logger.Error("catalog query failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "list products failed", reqID, "")
		return
	}

	resp.OK(w, &catalogListResponse{
		ProductListResponse: result,
		Filters:             state,
		Query:               codec.EncodeQuery(state),
	}, reqID, "")
}

// buildCodec 用当前分类词表构建查询编解码器
func (h *ProductHandler) buildCodec() (*catalog.Codec, error) {
	categories, err := h.categoryService.CategorySlugs()
	if err != nil {
		return nil, err
	}
	return catalog.NewCodec(categories, h.weights), nil
}

// GetProduct 商品详情
// GET /api/v1/products/{slug}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	slug := r.PathValue("slug")
	if slug == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "slug is required", reqID, "")
		return
	}

	product, err := h.productService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("get product failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get product failed", reqID, "")
		return
	}

	resp.OK(w, product, reqID, "")
}

// CreateProduct 创建商品
// POST /api/v1/admin/products
// 需要管理员权限
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.Name == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "name is required", reqID, "")
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugExists):
			resp.Error(w, http.StatusConflict, resp.CodeConflict, "slug already exists", reqID, "")
		case errors.Is(err, service.ErrInvalidPrice):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "price must not be negative", reqID, "")
		default:
			h.logger.Error("create product failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "create product failed", reqID, "")
		}
		return
	}

	resp.OK(w, product, reqID, "")
}

// UpdateProduct 更新商品
// PUT /api/v1/admin/products/{id}
// 需要管理员权限
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product id", reqID, "")
		return
	}

	var req domain.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
		case errors.Is(err, service.ErrSlugExists):
			resp.Error(w, http.StatusConflict, resp.CodeConflict, "slug already exists", reqID, "")
		case errors.Is(err, service.ErrInvalidPrice):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "price must not be negative", reqID, "")
		default:
			h.logger.Error("update product failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "update product failed", reqID, "")
		}
		return
	}

	resp.OK(w, product, reqID, "")
}

// DeleteProduct 删除商品
// DELETE /api/v1/admin/products/{id}
// 需要管理员权限
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product id", reqID, "")
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("delete product failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "delete product failed", reqID, "")
		return
	}

	resp.OK(w, map[string]interface{}{"deleted": true}, reqID, "")
}

// GetProductStats 商品统计
// GET /api/v1/admin/products/stats
// 需要管理员权限
func (h *ProductHandler) GetProductStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	stats, err := h.productService.GetProductStats()
	if err != nil {
		h.logger.Error("get product stats failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get product stats failed", reqID, "")
		return
	}

	resp.OK(w, stats, reqID, "")
}

// GetProductByID 商品详情（后台，按ID）
// GET /api/v1/admin/products/{id}
// 需要管理员权限
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product id", reqID, "")
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("get product failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get product failed", reqID, "")
		return
	}

	resp.OK(w, product, reqID, "")
}
