package repository

import (
	"errors"
	"strings"

	"github.com/lipai-ops/internal/models"

	"gorm.io/gorm"
)

// MerchantRepository 商家注册数据访问接口
type MerchantRepository interface {
	List(filter MerchantListFilter) ([]models.MerchantRegistration, int64, error)
	GetByID(id uint) (*models.MerchantRegistration, error)
	Create(registration *models.MerchantRegistration) error
	Update(registration *models.MerchantRegistration) error
	Delete(id uint) error
	CountByStatus(status int) (int64, error)
	WithTx(tx *gorm.DB) MerchantRepository
}

// GormMerchantRepository GORM 实现
type GormMerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository 创建商家注册仓库
func NewMerchantRepository(db *gorm.DB) *GormMerchantRepository {
	return &GormMerchantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMerchantRepository) WithTx(tx *gorm.DB) MerchantRepository {
	if tx == nil {
		return r
	}
	return &GormMerchantRepository{db: tx}
}

// List 商家注册列表
func (r *GormMerchantRepository) List(filter MerchantListFilter) ([]models.MerchantRegistration, int64, error) {
	var registrations []models.MerchantRegistration

	query := r.db.Model(&models.MerchantRegistration{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"phone LIKE ? OR business_name1 LIKE ? OR contact_name LIKE ? OR user_name LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id DESC").Find(&registrations).Error; err != nil {
		return nil, 0, err
	}

	return registrations, total, nil
}

// GetByID 根据 ID 获取商家注册记录
func (r *GormMerchantRepository) GetByID(id uint) (*models.MerchantRegistration, error) {
	var registration models.MerchantRegistration
	if err := r.db.First(&registration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &registration, nil
}

// Create 创建商家注册记录
func (r *GormMerchantRepository) Create(registration *models.MerchantRegistration) error {
	return r.db.Create(registration).Error
}

// Update 更新商家注册记录
func (r *GormMerchantRepository) Update(registration *models.MerchantRegistration) error {
	return r.db.Save(registration).Error
}

// Delete 删除商家注册记录
func (r *GormMerchantRepository) Delete(id uint) error {
	return r.db.Delete(&models.MerchantRegistration{}, id).Error
}

// CountByStatus 按状态统计商家注册数量
func (r *GormMerchantRepository) CountByStatus(status int) (int64, error) {
	var count int64
	if err := r.db.Model(&models.MerchantRegistration{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
