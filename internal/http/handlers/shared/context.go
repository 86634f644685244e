package shared

import (
	"github.com/lipai-ops/internal/authz"
	"github.com/lipai-ops/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CurrentUserID 从上下文读取当前登录用户 ID，缺失时直接返回 401。
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		RespondError(c, response.CodeUnauthorized, "请先登录", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "用户标识无效", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "用户标识无效", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "用户标识类型异常", nil)
		return 0, false
	}
}

// CurrentUsername 从上下文读取当前登录用户名
func CurrentUsername(c *gin.Context) string {
	if value, ok := c.Get("username"); ok {
		if name, ok := value.(string); ok {
			return name
		}
	}
	return ""
}

// CurrentPermissions 从上下文读取当前用户的权限码
func CurrentPermissions(c *gin.Context) []string {
	if value, ok := c.Get("permission_codes"); ok {
		if codes, ok := value.([]string); ok {
			return codes
		}
	}
	return nil
}

// HasAnyPermission 当前用户是否持有任一权限码
func HasAnyPermission(c *gin.Context, required ...string) bool {
	return authz.HasAny(CurrentPermissions(c), required...)
}
