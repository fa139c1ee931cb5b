package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/middleware"
	"github.com/MorseWayne/flour_shop/internal/resp"
	"github.com/MorseWayne/flour_shop/internal/service"
)

// UploadHandler 图片上传处理器
type UploadHandler struct {
	uploadService service.UploadService
	logger        *zap.Logger
}

// NewUploadHandler 创建上传处理器实例
func NewUploadHandler(uploadService service.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

// UploadImage 上传图片
// POST /api/v1/admin/uploads (multipart/form-data, 字段名file)
// 需要管理员权限
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	if err := r.ParseMultipartForm(service.MaxImageSize); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid multipart form", reqID, "")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "file field is required", reqID, "")
		return
	}
	defer file.Close()

	url, err := h.uploadService.UploadImage(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedImageType):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "unsupported image type", reqID, "")
		case errors.Is(err, service.ErrImageTooLarge):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "image too large", reqID, "")
		default:
			h.logger.Error("upload image failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "upload image failed", reqID, "")
		}
		return
	}

	resp.OK(w, map[string]interface{}{"url": url}, reqID, "")
}
