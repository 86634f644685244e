package models

import (
	"time"
)

// Permission 权限表
type Permission struct {
	ID          uint      `gorm:"primarykey" json:"id"`                        // 主键
	Code        string    `gorm:"uniqueIndex;size:50;not null" json:"code"`    // 权限代码
	Name        string    `gorm:"size:100;not null" json:"name"`               // 权限名称
	Description string    `gorm:"size:255" json:"description"`                 // 权限描述
	Category    string    `gorm:"size:50" json:"category"`                     // 权限分类
	CreatedAt   time.Time `json:"createdAt"`                                   // 创建时间
}

// TableName 指定表名
func (Permission) TableName() string {
	return "permissions"
}

// UserPermission 用户权限关联表
type UserPermission struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                          // 主键
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_permission,priority:1" json:"userId"`       // 用户ID
	PermissionID uint      `gorm:"not null;uniqueIndex:idx_user_permission,priority:2" json:"permissionId"` // 权限ID
	CreatedAt    time.Time `json:"createdAt"`                                                     // 创建时间
}

// TableName 指定表名
func (UserPermission) TableName() string {
	return "user_permissions"
}
