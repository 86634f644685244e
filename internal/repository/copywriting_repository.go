package repository

import (
	"errors"
	"strings"

	"github.com/lipai-ops/internal/models"

	"gorm.io/gorm"
)

// CopywritingRepository 文案模版数据访问接口
type CopywritingRepository interface {
	List(filter CopywritingListFilter) ([]models.CopywritingTemplate, int64, error)
	GetByID(id uint) (*models.CopywritingTemplate, error)
	Create(template *models.CopywritingTemplate) error
	Update(template *models.CopywritingTemplate) error
	Delete(id uint) error
	IncrementUseCount(id uint) error
	WithTx(tx *gorm.DB) CopywritingRepository
}

// GormCopywritingRepository GORM 实现
type GormCopywritingRepository struct {
	db *gorm.DB
}

// NewCopywritingRepository 创建文案模版仓库
func NewCopywritingRepository(db *gorm.DB) *GormCopywritingRepository {
	return &GormCopywritingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCopywritingRepository) WithTx(tx *gorm.DB) CopywritingRepository {
	if tx == nil {
		return r
	}
	return &GormCopywritingRepository{db: tx}
}

// List 文案模版列表
func (r *GormCopywritingRepository) List(filter CopywritingListFilter) ([]models.CopywritingTemplate, int64, error) {
	var templates []models.CopywritingTemplate

	query := r.db.Model(&models.CopywritingTemplate{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id DESC").Find(&templates).Error; err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

// GetByID 根据 ID 获取文案模版
func (r *GormCopywritingRepository) GetByID(id uint) (*models.CopywritingTemplate, error) {
	var template models.CopywritingTemplate
	if err := r.db.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// Create 创建文案模版
func (r *GormCopywritingRepository) Create(template *models.CopywritingTemplate) error {
	return r.db.Create(template).Error
}

// Update 更新文案模版
func (r *GormCopywritingRepository) Update(template *models.CopywritingTemplate) error {
	return r.db.Save(template).Error
}

// Delete 删除文案模版
func (r *GormCopywritingRepository) Delete(id uint) error {
	return r.db.Delete(&models.CopywritingTemplate{}, id).Error
}

// IncrementUseCount 模版使用次数自增
func (r *GormCopywritingRepository) IncrementUseCount(id uint) error {
	return r.db.Model(&models.CopywritingTemplate{}).
		Where("id = ?", id).
		Update("use_count", gorm.Expr("use_count + 1")).Error
}
