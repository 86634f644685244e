package repository

import (
	"strings"

	"github.com/lipai-ops/internal/models"

	"gorm.io/gorm"
)

// OperationLogRepository 操作日志数据访问接口
type OperationLogRepository interface {
	List(filter OperationLogListFilter) ([]models.OperationLog, int64, error)
	Create(log *models.OperationLog) error
	WithTx(tx *gorm.DB) OperationLogRepository
}

// GormOperationLogRepository GORM 实现
type GormOperationLogRepository struct {
	db *gorm.DB
}

// NewOperationLogRepository 创建操作日志仓库
func NewOperationLogRepository(db *gorm.DB) *GormOperationLogRepository {
	return &GormOperationLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOperationLogRepository) WithTx(tx *gorm.DB) OperationLogRepository {
	if tx == nil {
		return r
	}
	return &GormOperationLogRepository{db: tx}
}

// List 操作日志列表
func (r *GormOperationLogRepository) List(filter OperationLogListFilter) ([]models.OperationLog, int64, error) {
	var logs []models.OperationLog

	query := r.db.Model(&models.OperationLog{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if action := strings.TrimSpace(filter.Action); action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// Create 创建操作日志
func (r *GormOperationLogRepository) Create(log *models.OperationLog) error {
	return r.db.Create(log).Error
}
