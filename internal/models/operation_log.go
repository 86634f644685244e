package models

import (
	"time"
)

// OperationLog 操作日志表
type OperationLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`               // 主键
	UserID     uint      `gorm:"index" json:"userId"`                // 操作用户ID
	Username   string    `gorm:"size:50" json:"username"`            // 操作用户名
	Action     string    `gorm:"size:100;not null" json:"action"`    // 操作类型
	TargetType string    `gorm:"size:50" json:"targetType"`          // 目标类型
	TargetID   uint      `json:"targetId"`                           // 目标ID
	Detail     string    `gorm:"type:text" json:"detail"`            // 操作详情
	IP         string    `gorm:"size:50" json:"ip"`                  // IP地址
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`             // 创建时间
}

// TableName 指定表名
func (OperationLog) TableName() string {
	return "operation_logs"
}
