package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyLog 工作日志表，按用户+日期唯一
type DailyLog struct {
	ID        uint            `gorm:"primarykey" json:"id"`                                               // 主键
	UserID    uint            `gorm:"not null;uniqueIndex:idx_user_log_date,priority:1" json:"userId"`    // 用户ID
	LogDate   string          `gorm:"size:10;not null;uniqueIndex:idx_user_log_date,priority:2" json:"logDate"` // 日志日期（YYYY-MM-DD）
	Content   string          `gorm:"type:text;not null" json:"content"`                                  // 日志内容
	WorkHours decimal.Decimal `gorm:"type:decimal(4,1);not null;default:8" json:"workHours"`              // 工作时长
	CreatedAt time.Time       `json:"createdAt"`                                                          // 创建时间
	UpdatedAt time.Time       `json:"updatedAt"`                                                          // 更新时间
}

// TableName 指定表名
func (DailyLog) TableName() string {
	return "daily_logs"
}
