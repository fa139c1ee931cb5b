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

// InquiryHandler 询盘相关的HTTP处理器
type InquiryHandler struct {
	inquiryService service.InquiryService
	logger         *zap.Logger
}

// NewInquiryHandler 创建询盘处理器实例
func NewInquiryHandler(inquiryService service.InquiryService, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
		logger:         logger,
	}
}

// SubmitInquiry 处理联系表单提交
// POST /api/v1/contact
func (h *InquiryHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	inquiry, err := h.inquiryService.SubmitInquiry(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInquiry) {
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "name, email and message are required", reqID, "")
			return
		}

		h.logger.Error("submit inquiry failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "submit inquiry failed", reqID, "")
		return
	}

	resp.OK(w, map[string]interface{}{"id": inquiry.ID}, reqID, "")
}

// ListInquiries 后台询盘列表
// GET /api/v1/admin/inquiries?status=...
// 需要管理员权限
func (h *InquiryHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	page, pageSize := parsePagination(r, 20)
	req := &domain.InquiryListRequest{Page: page, PageSize: pageSize}

	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.InquiryStatus(v)
		switch status {
		case domain.InquiryStatusNew, domain.InquiryStatusRead, domain.InquiryStatusReplied:
			req.Status = &status
		default:
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid status", reqID, "")
			return
		}
	}

	result, err := h.inquiryService.ListInquiries(req)
	if err != nil {
		h.logger.Error("list inquiries failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "list inquiries failed", reqID, "")
		return
	}

	resp.OK(w, result, reqID, "")
}

// GetInquiry 询盘详情，未读询盘会被标记为已读
// GET /api/v1/admin/inquiries/{id}
// 需要管理员权限
func (h *InquiryHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid inquiry id", reqID, "")
		return
	}

	inquiry, err := h.inquiryService.GetInquiry(id)
	if err != nil {
		if errors.Is(err, service.ErrInquiryNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "inquiry not found", reqID, "")
			return
		}

		h.logger.Error("get inquiry failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get inquiry failed", reqID, "")
		return
	}

	resp.OK(w, inquiry, reqID, "")
}

// UpdateInquiryStatus 更新询盘状态
// PUT /api/v1/admin/inquiries/{id}/status
// 需要管理员权限
func (h *InquiryHandler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid inquiry id", reqID, "")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if err := h.inquiryService.UpdateStatus(id, domain.InquiryStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, service.ErrInquiryNotFound):
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "inquiry not found", reqID, "")
		case errors.Is(err, service.ErrInvalidInquiryStatus):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid status", reqID, "")
		default:
			h.logger.Error("update inquiry status failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "update inquiry status failed", reqID, "")
		}
		return
	}

	resp.OK(w, map[string]interface{}{"updated": true}, reqID, "")
}

// DeleteInquiry 删除询盘
// DELETE /api/v1/admin/inquiries/{id}
// 需要管理员权限
func (h *InquiryHandler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid inquiry id", reqID, "")
		return
	}

	if err := h.inquiryService.DeleteInquiry(id); err != nil {
		if errors.Is(err, service.ErrInquiryNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "inquiry not found", reqID, "")
			return
		}

		h.logger.Error("delete inquiry failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "delete inquiry failed", reqID, "")
		return
	}

	resp.OK(w, map[string]interface{}{"deleted": true}, reqID, "")
}
