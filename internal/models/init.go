package models

import (
	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

type permissionSeed struct {
	Code        string
	Name        string
	Description string
	Category    string
}

var defaultPermissions = []permissionSeed{
	{constants.PermUserManage, "用户管理", "创建、编辑、删除用户", "系统管理"},
	{constants.PermUserView, "查看用户", "查看用户列表", "系统管理"},
	{constants.PermInventoryManage, "库存管理", "添加、编辑、删除商品和库存", "库存管理"},
	{constants.PermInventoryView, "查看库存", "查看商品和库存信息", "库存管理"},
	{constants.PermStockSubmit, "提交库存变动", "提交库存变动申请", "库存管理"},
	{constants.PermStockApprove, "审批库存变动", "审批库存变动申请", "库存管理"},
	{constants.PermStockViewAll, "查看所有变动记录", "查看所有库存变动记录", "库存管理"},
	{constants.PermShippingManage, "发货管理", "填写发货信息和快递单号", "物流管理"},
	{constants.PermLogWrite, "写日志", "填写每日工作日志", "日志管理"},
	{constants.PermLogViewAll, "查看所有日志", "查看所有人的工作日志", "日志管理"},
	{constants.PermMerchantUpload, "商家资料上传", "提交商家注册资料", "商家管理"},
	{constants.PermMerchantViewAll, "查看所有商家资料", "查看和处理所有商家注册资料", "商家管理"},
}

// InitDefaultData 初始化权限字典和默认管理员账号
func InitDefaultData(username, password string) error {
	if err := seedPermissions(); err != nil {
		return err
	}
	return initDefaultAdmin(username, password)
}

func seedPermissions() error {
	for _, seed := range defaultPermissions {
		var count int64
		if err := DB.Model(&Permission{}).Where("code = ?", seed.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		permission := Permission{
			Code:        seed.Code,
			Name:        seed.Name,
			Description: seed.Description,
			Category:    seed.Category,
		}
		if err := DB.Create(&permission).Error; err != nil {
			return err
		}
	}
	return nil
}

func initDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)

	// 已有用户时，仅确保 admin 账号持有全部权限
	if count > 0 {
		var admin User
		if err := DB.Where("username = ?", "admin").First(&admin).Error; err == nil {
			if err := grantAllPermissions(admin.ID); err != nil {
				logger.Warnw("ensure_admin_permissions_failed", "error", err)
			}
		}
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Username:     username,
		PasswordHash: string(hash),
		RealName:     "系统管理员",
		UserType:     constants.UserTypeAdmin,
		Status:       constants.UserStatusEnabled,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	if err := grantAllPermissions(admin.ID); err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}

func grantAllPermissions(userID uint) error {
	var permissions []Permission
	if err := DB.Find(&permissions).Error; err != nil {
		return err
	}
	for _, permission := range permissions {
		var count int64
		if err := DB.Model(&UserPermission{}).
			Where("user_id = ? AND permission_id = ?", userID, permission.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		link := UserPermission{UserID: userID, PermissionID: permission.ID}
		if err := DB.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
