package models

import (
	"time"
)

// User 用户表
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                      // 主键
	Username     string     `gorm:"uniqueIndex;size:50;not null" json:"username"`              // 用户名
	PasswordHash string     `gorm:"size:255;not null" json:"-"`                                // 密码哈希（不返回给前端）
	RealName     string     `gorm:"size:100" json:"realName"`                                  // 真实姓名
	Email        string     `gorm:"size:100" json:"email"`                                     // 邮箱
	Phone        string     `gorm:"size:20" json:"phone"`                                      // 手机号
	Avatar       string     `gorm:"size:255" json:"avatar"`                                    // 头像
	UserType     string     `gorm:"size:20;not null;default:'salesman'" json:"userType"`       // 用户类型: admin/leader/deliver/editor/salesman
	LeaderID     *uint      `gorm:"index" json:"leaderId"`                                     // 所属组长ID
	Status       int        `gorm:"type:smallint;not null;default:1;index" json:"status"`      // 状态: 0-禁用, 1-启用
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                               // Token 版本（用于全量失效）
	LastLoginAt  *time.Time `json:"lastLoginAt"`                                               // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`                                    // 创建时间
	UpdatedAt    time.Time  `json:"updatedAt"`                                                 // 更新时间

	// 关联
	Leader *User `gorm:"foreignKey:LeaderID" json:"leader,omitempty"` // 所属组长
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
