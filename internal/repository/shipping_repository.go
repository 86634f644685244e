package repository

import (
	"errors"

	"github.com/lipai-ops/internal/models"

	"gorm.io/gorm"
)

// ShippingRepository 发货信息数据访问接口
type ShippingRepository interface {
	GetByRequestID(requestID uint) (*models.ShippingInfo, error)
	Create(info *models.ShippingInfo) error
	Update(info *models.ShippingInfo) error
	WithTx(tx *gorm.DB) ShippingRepository
}

// GormShippingRepository GORM 实现
type GormShippingRepository struct {
	db *gorm.DB
}

// NewShippingRepository 创建发货信息仓库
func NewShippingRepository(db *gorm.DB) *GormShippingRepository {
	return &GormShippingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormShippingRepository) WithTx(tx *gorm.DB) ShippingRepository {
	if tx == nil {
		return r
	}
	return &GormShippingRepository{db: tx}
}

// GetByRequestID 根据申请单 ID 获取发货信息
func (r *GormShippingRepository) GetByRequestID(requestID uint) (*models.ShippingInfo, error) {
	var info models.ShippingInfo
	if err := r.db.Where("request_id = ?", requestID).
		First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// Create 创建发货信息
func (r *GormShippingRepository) Create(info *models.ShippingInfo) error {
	return r.db.Create(info).Error
}

// Update 更新发货信息
func (r *GormShippingRepository) Update(info *models.ShippingInfo) error {
	return r.db.Save(info).Error
}
