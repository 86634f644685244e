package repository

import (
	"errors"
	"strings"

	"github.com/lipai-ops/internal/models"

	"gorm.io/gorm"
)

// DailyLogRepository 工作日志数据访问接口
type DailyLogRepository interface {
	List(filter DailyLogListFilter) ([]models.DailyLog, int64, error)
	GetByUserAndDate(userID uint, logDate string) (*models.DailyLog, error)
	Create(log *models.DailyLog) error
	Update(log *models.DailyLog) error
	CountByDateRange(startDate, endDate string) (int64, error)
	WithTx(tx *gorm.DB) DailyLogRepository
}

// GormDailyLogRepository GORM 实现
type GormDailyLogRepository struct {
	db *gorm.DB
}

// NewDailyLogRepository 创建工作日志仓库
func NewDailyLogRepository(db *gorm.DB) *GormDailyLogRepository {
	return &GormDailyLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDailyLogRepository) WithTx(tx *gorm.DB) DailyLogRepository {
	if tx == nil {
		return r
	}
	return &GormDailyLogRepository{db: tx}
}

// List 工作日志列表
func (r *GormDailyLogRepository) List(filter DailyLogListFilter) ([]models.DailyLog, int64, error) {
	var logs []models.DailyLog

	query := r.db.Model(&models.DailyLog{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if startDate := strings.TrimSpace(filter.StartDate); startDate != "" {
		query = query.Where("log_date >= ?", startDate)
	}
	if endDate := strings.TrimSpace(filter.EndDate); endDate != "" {
		query = query.Where("log_date <= ?", endDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("log_date DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// GetByUserAndDate 根据用户和日期获取日志
func (r *GormDailyLogRepository) GetByUserAndDate(userID uint, logDate string) (*models.DailyLog, error) {
	var log models.DailyLog
	if err := r.db.Where("user_id = ? AND log_date = ?", userID, logDate).
		First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// Create 创建日志
func (r *GormDailyLogRepository) Create(log *models.DailyLog) error {
	return r.db.Create(log).Error
}

// Update 更新日志
func (r *GormDailyLogRepository) Update(log *models.DailyLog) error {
	return r.db.Save(log).Error
}

// CountByDateRange 统计日期区间内的日志数
func (r *GormDailyLogRepository) CountByDateRange(startDate, endDate string) (int64, error) {
	var count int64
	query := r.db.Model(&models.DailyLog{})
	if startDate != "" {
		query = query.Where("log_date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("log_date <= ?", endDate)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
