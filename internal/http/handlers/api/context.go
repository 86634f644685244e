package api

import (
	"strconv"
	"strings"

	handlershared "github.com/lipai-ops/internal/http/handlers/shared"
	"github.com/lipai-ops/internal/queue"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) (uint, bool) {
	return handlershared.CurrentUserID(c)
}

func currentUsername(c *gin.Context) string {
	return handlershared.CurrentUsername(c)
}

func hasAnyPermission(c *gin.Context, required ...string) bool {
	return handlershared.HasAnyPermission(c, required...)
}

func parsePagination(c *gin.Context) (int, int) {
	return handlershared.ParsePagination(c)
}

func parseUintQuery(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// recordOperation 记录操作日志，失败只告警不影响主流程
func (h *Handler) recordOperation(c *gin.Context, action, targetType string, targetID uint, detail string) {
	userID, _ := c.Get("user_id")
	uid, _ := userID.(uint)
	payload := queue.OperationLogPayload{
		UserID:     uid,
		Username:   currentUsername(c),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
		IP:         c.ClientIP(),
	}
	if err := h.OperationLogService.Record(payload); err != nil {
		requestLog(c).Warnw("operation_log_record_failed", "action", action, "error", err)
	}
}
