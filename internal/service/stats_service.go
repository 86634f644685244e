package service

import (
	"time"

	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/repository"

	"github.com/shopspring/decimal"
)

// StatsService 仪表盘统计服务
type StatsService struct {
	requestRepo  repository.StockRequestRepository
	productRepo  repository.ProductRepository
	mediaRepo    repository.MediaRepository
	merchantRepo repository.MerchantRepository
	dailyLogRepo repository.DailyLogRepository
	dailyTarget  int
}

// NewStatsService 创建统计服务
func NewStatsService(
	requestRepo repository.StockRequestRepository,
	productRepo repository.ProductRepository,
	mediaRepo repository.MediaRepository,
	merchantRepo repository.MerchantRepository,
	dailyLogRepo repository.DailyLogRepository,
	dailyTarget int,
) *StatsService {
	if dailyTarget <= 0 {
		dailyTarget = constants.MediaDailyTarget
	}
	return &StatsService{
		requestRepo:  requestRepo,
		productRepo:  productRepo,
		mediaRepo:    mediaRepo,
		merchantRepo: merchantRepo,
		dailyLogRepo: dailyLogRepo,
		dailyTarget:  dailyTarget,
	}
}

// Dashboard 仪表盘数据
type Dashboard struct {
	PendingRequests  int64           `json:"pendingRequests"`
	ApprovedRequests int64           `json:"approvedRequests"`
	RejectedRequests int64           `json:"rejectedRequests"`
	TotalRequests    int64           `json:"totalRequests"`
	LowStockProducts int64           `json:"lowStockProducts"`
	InventoryValue   decimal.Decimal `json:"inventoryValue"`
	PendingMerchants int64           `json:"pendingMerchants"`
	TodayUploads     int64           `json:"todayUploads"`
	UploadTarget     int             `json:"uploadTarget"`
	TodayLogs        int64           `json:"todayLogs"`
}

// Dashboard 汇总各板块计数
func (s *StatsService) Dashboard(userID uint) (*Dashboard, error) {
	dashboard := &Dashboard{UploadTarget: s.dailyTarget}

	var err error
	if dashboard.PendingRequests, err = s.requestRepo.CountByStatus(constants.RequestStatusPending); err != nil {
		return nil, err
	}
	if dashboard.ApprovedRequests, err = s.requestRepo.CountByStatus(constants.RequestStatusApproved); err != nil {
		return nil, err
	}
	if dashboard.RejectedRequests, err = s.requestRepo.CountByStatus(constants.RequestStatusRejected); err != nil {
		return nil, err
	}
	if dashboard.TotalRequests, err = s.requestRepo.CountByStatus(""); err != nil {
		return nil, err
	}
	if dashboard.LowStockProducts, err = s.productRepo.CountLowStock(); err != nil {
		return nil, err
	}

	rawValue, err := s.productRepo.InventoryValue()
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(rawValue)
	if err != nil {
		value = decimal.Zero
	}
	dashboard.InventoryValue = value

	if dashboard.PendingMerchants, err = s.merchantRepo.CountByStatus(constants.MerchantStatusPending); err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	if dashboard.TodayUploads, err = s.mediaRepo.CountByUserAndDate(userID, today); err != nil {
		return nil, err
	}
	if dashboard.TodayLogs, err = s.dailyLogRepo.CountByDateRange(today, today); err != nil {
		return nil, err
	}

	return dashboard, nil
}
