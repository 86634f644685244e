package provider

import (
	"github.com/lipai-ops/internal/cache"
	"github.com/lipai-ops/internal/config"
	"github.com/lipai-ops/internal/logger"
	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/queue"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/service"
	"github.com/lipai-ops/internal/storage"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Storage     storage.Storage

	// Repositories
	UserRepo         repository.UserRepository
	PermissionRepo   repository.PermissionRepository
	ProductRepo      repository.ProductRepository
	StockRequestRepo repository.StockRequestRepository
	ShippingRepo     repository.ShippingRepository
	DailyLogRepo     repository.DailyLogRepository
	MediaRepo        repository.MediaRepository
	MerchantRepo     repository.MerchantRepository
	OperationLogRepo repository.OperationLogRepository
	CopywritingRepo  repository.CopywritingRepository

	// Services
	AuthService         *service.AuthService
	CaptchaService      *service.CaptchaService
	UserService         *service.UserService
	ProductService      *service.ProductService
	StockRequestService *service.StockRequestService
	ShippingService     *service.ShippingService
	MediaService        *service.MediaService
	MerchantService     *service.MerchantService
	DailyLogService     *service.DailyLogService
	CopywritingService  *service.CopywritingService
	StatsService        *service.StatsService
	OperationLogService *service.OperationLogService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	// 初始化对象存储
	var store storage.Storage
	ossStore, err := storage.NewOSSStorage(cfg.OSS)
	if err != nil {
		logger.Errorw("provider_init_oss_failed", "error", err)
	} else if ossStore != nil {
		store = ossStore
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Storage:     store,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.PermissionRepo = repository.NewPermissionRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.StockRequestRepo = repository.NewStockRequestRepository(db)
	c.ShippingRepo = repository.NewShippingRepository(db)
	c.DailyLogRepo = repository.NewDailyLogRepository(db)
	c.MediaRepo = repository.NewMediaRepository(db)
	c.MerchantRepo = repository.NewMerchantRepository(db)
	c.OperationLogRepo = repository.NewOperationLogRepository(db)
	c.CopywritingRepo = repository.NewCopywritingRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserService = service.NewUserService(c.UserRepo, c.PermissionRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.StockRequestService = service.NewStockRequestService(
		c.StockRequestRepo, c.ProductRepo, c.UserRepo, service.NewRequestNoGenerator())
	c.ShippingService = service.NewShippingService(c.ShippingRepo, c.StockRequestRepo)
	c.MediaService = service.NewMediaService(
		c.MediaRepo, c.UserRepo, c.Storage, c.QueueClient, c.Config.Media)
	c.MerchantService = service.NewMerchantService(c.MerchantRepo, c.Storage, c.QueueClient)
	c.DailyLogService = service.NewDailyLogService(c.DailyLogRepo)
	c.CopywritingService = service.NewCopywritingService(c.CopywritingRepo, c.MediaRepo)
	c.StatsService = service.NewStatsService(
		c.StockRequestRepo, c.ProductRepo, c.MediaRepo, c.MerchantRepo, c.DailyLogRepo,
		c.Config.Media.DailyTarget)
	c.OperationLogService = service.NewOperationLogService(c.OperationLogRepo, c.QueueClient)
}
