package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/middleware"
	"github.com/MorseWayne/flour_shop/internal/resp"
	"github.com/MorseWayne/flour_shop/internal/service"
)

// DashboardHandler 后台仪表盘处理器
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *zap.Logger
}

// NewDashboardHandler 创建仪表盘处理器实例
func NewDashboardHandler(dashboardService service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetStats 仪表盘统计数据
// GET /api/v1/admin/dashboard
// 需要管理员权限
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	stats, err := h.dashboardService.GetStats()
	if err != nil {
		h.logger.Error("dashboard stats failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "dashboard stats failed", reqID, "")
		return
	}

	resp.OK(w, stats, reqID, "")
}
