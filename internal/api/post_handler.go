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

// PostHandler 博客文章相关的HTTP处理器
type PostHandler struct {
	postService service.PostService
	logger      *zap.Logger
}

// NewPostHandler 创建文章处理器实例
func NewPostHandler(postService service.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// ListPublished 前台文章列表
// GET /api/v1/blog?page=...&page_size=...&category=...
func (h *PostHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	page, pageSize := parsePagination(r, 12)
	var category *string
	if v := r.URL.Query().Get("category"); v != "" {
		category = &v
	}

	result, err := h.postService.ListPublished(page, pageSize, category)
	if err != nil {
		h.logger.Error("list posts failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "list posts failed", reqID, "")
		return
	}

	resp.OK(w, result, reqID, "")
}

// GetPublished 前台文章详情，草稿返回404
// GET /api/v1/blog/{slug}
func (h *PostHandler) GetPublished(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	slug := r.PathValue("slug")
	if slug == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "slug is required", reqID, "")
		return
	}

	post, err := h.postService.GetPublishedBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "post not found", reqID, "")
			return
		}

		h.logger.Error("get post failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get post failed", reqID, "")
		return
	}

	resp.OK(w, post, reqID, "")
}

// ListPosts 后台文章列表，支持按状态过滤
// GET /api/v1/admin/posts?status=...&category=...
// 需要管理员权限
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	page, pageSize := parsePagination(r, 12)
	req := &domain.PostListRequest{Page: page, PageSize: pageSize}

	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.PostStatus(v)
		if status != domain.PostStatusDraft && status != domain.PostStatusPublished {
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid status", reqID, "")
			return
		}
		req.Status = &status
	}
	if v := r.URL.Query().Get("category"); v != "" {
		req.Category = &v
	}

	result, err := h.postService.ListPosts(req)
	if err != nil {
		h.logger.Error("list posts failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "list posts failed", reqID, "")
		return
	}

	resp.OK(w, result, reqID, "")
}

// GetPost 后台文章详情（含草稿）
// GET /api/v1/admin/posts/{id}
// 需要管理员权限
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid post id", reqID, "")
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "post not found", reqID, "")
			return
		}

		h.logger.Error("get post failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get post failed", reqID, "")
		return
	}

	resp.OK(w, post, reqID, "")
}

// CreatePost 创建文章
// POST /api/v1/admin/posts
// 需要管理员权限
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	user := middleware.UserFromContext(r.Context())
	if user == nil {
		resp.Error(w, http.StatusUnauthorized, resp.CodeUnauthorized, "authentication required", reqID, "")
		return
	}

	var req domain.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.Title == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "title is required", reqID, "")
		return
	}

	post, err := h.postService.CreatePost(user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostSlugExists):
			resp.Error(w, http.StatusConflict, resp.CodeConflict, "slug already exists", reqID, "")
		case errors.Is(err, service.ErrInvalidPostStatus):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid status", reqID, "")
		default:
			h.logger.Error("create post failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "create post failed", reqID, "")
		}
		return
	}

	resp.OK(w, post, reqID, "")
}

// UpdatePost 更新文章
// PUT /api/v1/admin/posts/{id}
// 需要管理员权限
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid post id", reqID, "")
		return
	}

	var req domain.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	post, err := h.postService.UpdatePost(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "post not found", reqID, "")
		case errors.Is(err, service.ErrPostSlugExists):
			resp.Error(w, http.StatusConflict, resp.CodeConflict, "slug already exists", reqID, "")
		case errors.Is(err, service.ErrInvalidPostStatus):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid status", reqID, "")
		default:
			h.logger.Error("update post failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "update post failed", reqID, "")
		}
		return
	}

	resp.OK(w, post, reqID, "")
}

// DeletePost 删除文章
// DELETE /api/v1/admin/posts/{id}
// 需要管理员权限
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid post id", reqID, "")
		return
	}

	if err := h.postService.DeletePost(id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "post not found", reqID, "")
			return
		}

		h.logger.Error("delete post failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "delete post failed", reqID, "")
		return
	}

	resp.OK(w, map[string]interface{}{"deleted": true}, reqID, "")
}
