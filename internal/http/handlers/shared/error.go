package shared

import (
	"errors"

	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/logger"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError 将 service 层错误映射为统一错误响应。
// 哨兵错误按语义映射状态码并沿用其消息，未识别错误一律按 500 处理。
func RespondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		response.Error(c, response.CodeBadRequest, stockErr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Error(c, response.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Error(c, response.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountDisabled):
		response.Error(c, response.CodeUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrAlreadyProcessed),
		errors.Is(err, service.ErrNotEligible),
		errors.Is(err, service.ErrSKUExists),
		errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrProductReferenced),
		errors.Is(err, service.ErrCaptchaInvalid),
		errors.Is(err, service.ErrStorageDisabled):
		response.Error(c, response.CodeBadRequest, err.Error())
	default:
		RespondError(c, response.CodeInternal, "服务器内部错误", err)
	}
}
