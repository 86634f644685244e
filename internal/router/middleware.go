package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/lipai-ops/internal/authz"
	"github.com/lipai-ops/internal/cache"
	"github.com/lipai-ops/internal/config"
	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// JWTAuthMiddleware JWT 鉴权中间件。
// 校验通过后将用户 ID、用户名、类型与权限码写入上下文，
// token_version 与缓存/库中不一致的 token 直接拒绝。
func JWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" || userRepo == nil {
			response.Unauthorized(c, "服务端鉴权未配置")
			c.Abort()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			response.Unauthorized(c, "认证格式错误")
			c.Abort()
			return
		}

		tokenString := parts[1]
		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		claims := &service.JWTClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid || claims.UserID == 0 {
			response.Unauthorized(c, "登录已失效，请重新登录")
			c.Abort()
			return
		}

		username := claims.Username
		userType := ""
		verified := false
		if cached, hit, cacheErr := cache.GetUserAuthState(c.Request.Context(), claims.UserID); cacheErr == nil && hit && cached != nil {
			if cached.Status != constants.UserStatusEnabled {
				response.Unauthorized(c, "账号已被禁用")
				c.Abort()
				return
			}
			if claims.TokenVersion != cached.TokenVersion {
				response.Unauthorized(c, "登录已失效，请重新登录")
				c.Abort()
				return
			}
			username = cached.Username
			userType = cached.UserType
			verified = true
		}

		if !verified {
			user, err := userRepo.GetByID(claims.UserID)
			if err != nil || user == nil {
				response.Unauthorized(c, "登录已失效，请重新登录")
				c.Abort()
				return
			}
			if user.Status != constants.UserStatusEnabled {
				response.Unauthorized(c, "账号已被禁用")
				c.Abort()
				return
			}
			if claims.TokenVersion != user.TokenVersion {
				response.Unauthorized(c, "登录已失效，请重新登录")
				c.Abort()
				return
			}
			username = user.Username
			userType = user.UserType
			_ = cache.SetUserAuthState(c.Request.Context(), cache.BuildUserAuthState(user))
		}

		codes, err := userRepo.PermissionCodes(claims.UserID)
		if err != nil {
			response.Error(c, response.CodeInternal, "权限加载失败")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", username)
		c.Set("user_type", userType)
		c.Set("permission_codes", codes)
		c.Next()
	}
}

// RequirePermission 权限中间件，持有任一权限码即放行
func RequirePermission(required ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		held, _ := c.Get("permission_codes")
		codes, _ := held.([]string)
		if !authz.HasAny(codes, required...) {
			response.Forbidden(c, "没有权限执行此操作")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireUserType 用户类型中间件，管理员始终放行
func RequireUserType(types ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, _ := c.Get("user_type")
		userType, _ := value.(string)
		if userType == constants.UserTypeAdmin {
			c.Next()
			return
		}
		for _, t := range types {
			if t == userType {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "没有权限执行此操作")
		c.Abort()
	}
}
