package api

import (
	"strings"
	"time"

	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DailyLogRequest 工作日志提交请求
type DailyLogRequest struct {
	LogDate   string           `json:"logDate"`
	Content   string           `json:"content" binding:"required"`
	WorkHours *decimal.Decimal `json:"workHours"`
}

// UpsertDailyLog 提交工作日志，同一天重复提交覆盖
func (h *Handler) UpsertDailyLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req DailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	log, err := h.DailyLogService.Upsert(userID, req.LogDate, req.Content, req.WorkHours)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, log)
}

// GetDailyLogs 工作日志列表。无全局权限时仅返回本人日志。
func (h *Handler) GetDailyLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	filter := repository.DailyLogListFilter{
		StartDate: strings.TrimSpace(c.Query("startDate")),
		EndDate:   strings.TrimSpace(c.Query("endDate")),
		Page:      page,
		PageSize:  pageSize,
	}
	if hasAnyPermission(c, constants.PermLogViewAll) {
		if target, ok := parseUintQuery(c, "userId"); ok {
			filter.UserID = target
		}
	} else {
		filter.UserID = userID
	}

	logs, total, err := h.DailyLogService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "日志列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(total, page, pageSize))
}

// GetTodayDailyLog 本人今日日志
func (h *Handler) GetTodayDailyLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	log, err := h.DailyLogService.GetByDate(userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, log)
}
