package repository

import (
	"errors"

	"github.com/lipai-ops/internal/models"

	"gorm.io/gorm"
)

// PermissionRepository 权限字典数据访问接口
type PermissionRepository interface {
	ListAll() ([]models.Permission, error)
	ListByIDs(ids []uint) ([]models.Permission, error)
	GetByCode(code string) (*models.Permission, error)
	WithTx(tx *gorm.DB) PermissionRepository
}

// GormPermissionRepository GORM 实现
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository 创建权限仓库
func NewPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPermissionRepository) WithTx(tx *gorm.DB) PermissionRepository {
	if tx == nil {
		return r
	}
	return &GormPermissionRepository{db: tx}
}

// ListAll 全部权限
func (r *GormPermissionRepository) ListAll() ([]models.Permission, error) {
	var permissions []models.Permission
	if err := r.db.Order("id ASC").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// ListByIDs 批量获取权限
func (r *GormPermissionRepository) ListByIDs(ids []uint) ([]models.Permission, error) {
	if len(ids) == 0 {
		return []models.Permission{}, nil
	}
	var permissions []models.Permission
	if err := r.db.Where("id IN ?", ids).Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// GetByCode 根据权限代码获取权限
func (r *GormPermissionRepository) GetByCode(code string) (*models.Permission, error) {
	var permission models.Permission
	if err := r.db.Where("code = ?", code).
		First(&permission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}
