package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/domain"
	"github.com/MorseWayne/flour_shop/internal/middleware"
	"github.com/MorseWayne/flour_shop/internal/resp"
	"github.com/MorseWayne/flour_shop/internal/service"
)

// CategoryHandler 分类相关的HTTP处理器
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler 创建分类处理器实例
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories 分类列表
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	categories, err := h.categoryService.ListCategories()
	if err != nil {
		h.logger.Error("list categories failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "list categories failed", reqID, "")
		return
	}

	resp.OK(w, categories, reqID, "")
}

// CreateCategory 创建分类
// POST /api/v1/admin/categories
// 需要管理员权限
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.Name == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "name is required", reqID, "")
		return
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			resp.Error(w, http.StatusConflict, resp.CodeConflict, "category already exists", reqID, "")
			return
		}

		h.logger.Error("create category failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "create category failed", reqID, "")
		return
	}

	resp.OK(w, category, reqID, "")
}

// DeleteCategory 删除分类
// DELETE /api/v1/admin/categories/{id}
// 需要管理员权限
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid category id", reqID, "")
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		h.logger.Error("delete category failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "delete category failed", reqID, "")
		return
	}

	resp.OK(w, map[string]interface{}{"deleted": true}, reqID, "")
}
