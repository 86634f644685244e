package repository

import (
	"errors"
	"strings"

	"github.com/lipai-ops/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRequestRepository 申请单数据访问接口
type StockRequestRepository interface {
	List(filter StockRequestListFilter) ([]models.StockRequest, int64, error)
	GetByID(id uint) (*models.StockRequest, error)
	GetByIDForUpdate(id uint) (*models.StockRequest, error)
	GetByRequestNo(requestNo string) (*models.StockRequest, error)
	Create(request *models.StockRequest) error
	Update(request *models.StockRequest) error
	Delete(id uint) error
	ListItems(requestID uint) ([]models.StockRequestItem, error)
	CreateItems(items []models.StockRequestItem) error
	ReplaceItems(requestID uint, items []models.StockRequestItem) error
	CountByStatus(status string) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) StockRequestRepository
}

// GormStockRequestRepository GORM 实现
type GormStockRequestRepository struct {
	db *gorm.DB
}

// NewStockRequestRepository 创建申请单仓库
func NewStockRequestRepository(db *gorm.DB) *GormStockRequestRepository {
	return &GormStockRequestRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStockRequestRepository) WithTx(tx *gorm.DB) StockRequestRepository {
	if tx == nil {
		return r
	}
	return &GormStockRequestRepository{db: tx}
}

// Transaction 执行事务
func (r *GormStockRequestRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 申请单列表
func (r *GormStockRequestRepository) List(filter StockRequestListFilter) ([]models.StockRequest, int64, error) {
	var requests []models.StockRequest

	query := r.db.Model(&models.StockRequest{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("stock_requests.status = ?", status)
	}
	if requestType := strings.TrimSpace(filter.Type); requestType != "" {
		query = query.Where("stock_requests.type = ?", requestType)
	}
	if filter.SubmitterID > 0 {
		query = query.Where("stock_requests.submitter_id = ?", filter.SubmitterID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"stock_requests.request_no LIKE ? OR stock_requests.merchant LIKE ? OR stock_requests.items_summary LIKE ?",
			like, like, like)
	}
	if startDate := strings.TrimSpace(filter.StartDate); startDate != "" {
		query = query.Where("DATE(stock_requests.created_at) >= ?", startDate)
	}
	if endDate := strings.TrimSpace(filter.EndDate); endDate != "" {
		query = query.Where("DATE(stock_requests.created_at) <= ?", endDate)
	}
	if shippingStatus := strings.TrimSpace(filter.ShippingStatus); shippingStatus != "" {
		query = query.Joins("LEFT JOIN shipping_info ON shipping_info.request_id = stock_requests.id")
		if shippingStatus == "none" {
			query = query.Where("shipping_info.id IS NULL")
		} else {
			query = query.Where("shipping_info.shipping_status = ?", shippingStatus)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithItems {
		query = query.Preload("Items")
	}
	query = query.Preload("Shipping")
	query = applyPagination(query, filter.Page, filter.PageSize)

	order := "stock_requests.id DESC"
	if filter.OrderByApprovedAt {
		order = "stock_requests.approved_at DESC"
	}
	if err := query.Order(order).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// GetByID 根据 ID 获取申请单（含明细与发货信息）
func (r *GormStockRequestRepository) GetByID(id uint) (*models.StockRequest, error) {
	var request models.StockRequest
	if err := r.db.Preload("Items").Preload("Shipping").
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetByIDForUpdate 加行锁获取申请单，用于审批事务
func (r *GormStockRequestRepository) GetByIDForUpdate(id uint) (*models.StockRequest, error) {
	var request models.StockRequest
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetByRequestNo 根据单号获取申请单
func (r *GormStockRequestRepository) GetByRequestNo(requestNo string) (*models.StockRequest, error) {
	var request models.StockRequest
	if err := r.db.Where("request_no = ?", requestNo).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// Create 创建申请单
func (r *GormStockRequestRepository) Create(request *models.StockRequest) error {
	return r.db.Create(request).Error
}

// Update 更新申请单
func (r *GormStockRequestRepository) Update(request *models.StockRequest) error {
	return r.db.Save(request).Error
}

// Delete 删除申请单及其明细
func (r *GormStockRequestRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&models.StockRequestItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("request_id = ?", id).Delete(&models.ShippingInfo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.StockRequest{}, id).Error
	})
}

// ListItems 获取申请单明细
func (r *GormStockRequestRepository) ListItems(requestID uint) ([]models.StockRequestItem, error) {
	var items []models.StockRequestItem
	if err := r.db.Where("request_id = ?", requestID).
		Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItems 批量创建明细
func (r *GormStockRequestRepository) CreateItems(items []models.StockRequestItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

// ReplaceItems 覆盖申请单明细
func (r *GormStockRequestRepository) ReplaceItems(requestID uint, items []models.StockRequestItem) error {
	if err := r.db.Where("request_id = ?", requestID).
		Delete(&models.StockRequestItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

// CountByStatus 按状态统计申请单数量
func (r *GormStockRequestRepository) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.StockRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
