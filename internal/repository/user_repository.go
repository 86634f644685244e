package repository

import (
	"errors"
	"strings"

	"github.com/lipai-ops/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	List(filter UserListFilter) ([]models.User, int64, error)
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uint) error
	CountByUsername(username string, excludeID *uint) (int64, error)
	PermissionCodes(userID uint) ([]string, error)
	ReplacePermissions(userID uint, permissionIDs []uint) error
	ListSubordinates(leaderID uint) ([]models.User, error)
	WithTx(tx *gorm.DB) UserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// List 用户列表，按用户类型层级排序
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.Model(&models.User{})
	if userType := strings.TrimSpace(filter.UserType); userType != "" {
		query = query.Where("user_type = ?", userType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("username LIKE ? OR real_name LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Leader")
	query = applyPagination(query, filter.Page, filter.PageSize)

	orderExpr := "CASE user_type " +
		"WHEN 'admin' THEN 0 WHEN 'leader' THEN 1 WHEN 'deliver' THEN 2 " +
		"WHEN 'editor' THEN 3 ELSE 4 END, id ASC"
	if err := query.Order(orderExpr).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Leader").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取用户
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete 删除用户及其权限关联
func (r *GormUserRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// CountByUsername 统计用户名数量（用于唯一性校验）
func (r *GormUserRepository) CountByUsername(username string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.User{}).Where("username = ?", username)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// PermissionCodes 获取用户持有的权限代码列表
func (r *GormUserRepository) PermissionCodes(userID uint) ([]string, error) {
	var codes []string
	if err := r.db.Model(&models.UserPermission{}).
		Select("permissions.code").
		Joins("JOIN permissions ON permissions.id = user_permissions.permission_id").
		Where("user_permissions.user_id = ?", userID).
		Scan(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// ReplacePermissions 覆盖用户权限关联
func (r *GormUserRepository) ReplacePermissions(userID uint, permissionIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}
		if len(permissionIDs) == 0 {
			return nil
		}
		links := make([]models.UserPermission, 0, len(permissionIDs))
		for _, permissionID := range permissionIDs {
			links = append(links, models.UserPermission{
				UserID:       userID,
				PermissionID: permissionID,
			})
		}
		return tx.Create(&links).Error
	})
}

// ListSubordinates 查询组长名下启用的业务员
func (r *GormUserRepository) ListSubordinates(leaderID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("leader_id = ? AND status = ?", leaderID, 1).
		Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
