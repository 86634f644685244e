package router

import (
	"fmt"
	"strings"

	"github.com/lipai-ops/internal/cache"
	"github.com/lipai-ops/internal/config"
	"github.com/lipai-ops/internal/constants"
	apihandlers "github.com/lipai-ops/internal/http/handlers/api"
	"github.com/lipai-ops/internal/logger"
	"github.com/lipai-ops/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := apihandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "lp"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		// 登录前接口
		auth := api.Group("/auth")
		{
			auth.GET("/captcha", handler.GetCaptcha)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), handler.Login)
		}

		// 需鉴权的接口
		authorized := api.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			// 当前用户
			authorized.GET("/auth/me", handler.GetProfile)
			authorized.PUT("/auth/password", handler.ChangePassword)

			// 用户与权限
			authorized.GET("/users",
				RequirePermission(constants.PermUserManage, constants.PermUserView), handler.GetUsers)
			authorized.GET("/users/subordinates", handler.GetSubordinates)
			authorized.GET("/users/:id",
				RequirePermission(constants.PermUserManage, constants.PermUserView), handler.GetUser)
			authorized.POST("/users",
				RequirePermission(constants.PermUserManage), handler.CreateUser)
			authorized.PUT("/users/:id",
				RequirePermission(constants.PermUserManage), handler.UpdateUser)
			authorized.DELETE("/users/:id",
				RequirePermission(constants.PermUserManage), handler.DeleteUser)
			authorized.GET("/permissions",
				RequirePermission(constants.PermUserManage, constants.PermUserView), handler.GetPermissionCatalog)

			// 商品目录
			authorized.GET("/products",
				RequirePermission(constants.PermInventoryManage, constants.PermInventoryView, constants.PermStockSubmit),
				handler.GetProducts)
			authorized.GET("/products/:id",
				RequirePermission(constants.PermInventoryManage, constants.PermInventoryView, constants.PermStockSubmit),
				handler.GetProduct)
			authorized.POST("/products",
				RequirePermission(constants.PermInventoryManage), handler.CreateProduct)
			authorized.PUT("/products/:id",
				RequirePermission(constants.PermInventoryManage), handler.UpdateProduct)
			authorized.DELETE("/products/:id",
				RequirePermission(constants.PermInventoryManage), handler.DeleteProduct)

			// 库存申请与审批
			authorized.POST("/stock-requests",
				RequirePermission(constants.PermStockSubmit), handler.CreateStockRequest)
			authorized.GET("/stock-requests", handler.GetStockRequests)
			authorized.GET("/stock-requests/pending",
				RequirePermission(constants.PermStockApprove), handler.GetPendingStockRequests)
			authorized.GET("/stock-requests/approved",
				RequirePermission(constants.PermShippingManage, constants.PermStockViewAll),
				handler.GetApprovedStockRequests)
			authorized.GET("/stock-requests/:id", handler.GetStockRequest)
			authorized.POST("/stock-requests/:id/approve",
				RequirePermission(constants.PermStockApprove), handler.ApproveStockRequest)
			authorized.POST("/stock-requests/:id/reject",
				RequirePermission(constants.PermStockApprove), handler.RejectStockRequest)
			authorized.PUT("/stock-requests/:id/items",
				RequirePermission(constants.PermStockApprove), handler.UpdateStockRequestItems)
			authorized.DELETE("/stock-requests/:id", handler.DeleteStockRequest)

			// 发货信息
			authorized.POST("/stock-requests/:id/shipping",
				RequirePermission(constants.PermShippingManage), handler.UpsertShipping)
			authorized.GET("/stock-requests/:id/shipping",
				RequirePermission(constants.PermShippingManage, constants.PermStockViewAll),
				handler.GetShipping)

			// 素材上传
			authorized.POST("/media/upload",
				RequirePermission(constants.PermMerchantUpload), handler.UploadMedia)
			authorized.GET("/media/upload-url",
				RequirePermission(constants.PermMerchantUpload), handler.GetMediaUploadURL)
			authorized.GET("/media", handler.GetMediaList)
			authorized.GET("/media/stats/today", handler.GetMediaTodayStats)
			authorized.GET("/media/stats/daily", handler.GetMediaDailyCounts)
			authorized.GET("/media/stats/team", handler.GetMediaTeamCount)
			authorized.GET("/media/:id/url", handler.GetMediaViewURL)
			authorized.PUT("/media/:id/copywriting", handler.UpdateMediaCopywriting)
			authorized.DELETE("/media/:id", handler.DeleteMedia)

			// 商家注册
			authorized.POST("/merchants",
				RequirePermission(constants.PermMerchantUpload), handler.CreateMerchant)
			authorized.GET("/merchants", handler.GetMerchants)
			authorized.GET("/merchants/file-url", handler.GetMerchantFileURL)
			authorized.POST("/merchants/:id/review",
				RequirePermission(constants.PermMerchantViewAll), handler.ReviewMerchant)
			authorized.DELETE("/merchants/:id", handler.DeleteMerchant)

			// 工作日志
			authorized.POST("/daily-logs",
				RequirePermission(constants.PermLogWrite), handler.UpsertDailyLog)
			authorized.GET("/daily-logs", handler.GetDailyLogs)
			authorized.GET("/daily-logs/today", handler.GetTodayDailyLog)

			// 仪表盘
			authorized.GET("/stats/dashboard", handler.GetDashboard)

			// 文案模版
			authorized.GET("/copywriting-templates", handler.GetCopywritingTemplates)
			authorized.GET("/copywriting-templates/random", handler.GetRandomCopywritingTemplate)
			authorized.POST("/copywriting-templates",
				RequireUserType(constants.UserTypeEditor), handler.CreateCopywritingTemplate)
			authorized.PUT("/copywriting-templates/:id",
				RequireUserType(constants.UserTypeEditor), handler.UpdateCopywritingTemplate)
			authorized.DELETE("/copywriting-templates/:id",
				RequireUserType(constants.UserTypeEditor), handler.DeleteCopywritingTemplate)

			// 操作日志
			authorized.GET("/operation-logs",
				RequirePermission(constants.PermUserManage), handler.GetOperationLogs)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
