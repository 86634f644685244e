package api

import (
	"github.com/lipai-ops/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard 仪表盘统计
func (h *Handler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dashboard, err := h.StatsService.Dashboard(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "统计数据获取失败", err)
		return
	}
	response.Success(c, dashboard)
}
