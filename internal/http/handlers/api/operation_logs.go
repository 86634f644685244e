package api

import (
	"strings"

	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetOperationLogs 操作日志列表
func (h *Handler) GetOperationLogs(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.OperationLogListFilter{
		Action:   strings.TrimSpace(c.Query("action")),
		Page:     page,
		PageSize: pageSize,
	}
	if target, ok := parseUintQuery(c, "userId"); ok {
		filter.UserID = target
	}

	logs, total, err := h.OperationLogService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "操作日志获取失败", err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(total, page, pageSize))
}
