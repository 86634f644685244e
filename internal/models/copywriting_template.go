package models

import (
	"time"
)

// CopywritingTemplate 文案模版表
type CopywritingTemplate struct {
	ID        uint      `gorm:"primarykey" json:"id"`              // 主键
	Title     string    `gorm:"size:200;not null" json:"title"`    // 模版标题
	Category  string    `gorm:"size:50;not null;index" json:"category"` // 模版分类
	Content   string    `gorm:"type:text;not null" json:"content"` // 模版内容
	UseCount  int       `gorm:"not null;default:0" json:"useCount"` // 使用次数
	CreatedBy uint      `json:"createdBy"`                          // 创建人ID
	CreatedAt time.Time `json:"createdAt"`                          // 创建时间
	UpdatedAt time.Time `json:"updatedAt"`                          // 更新时间
}

// TableName 指定表名
func (CopywritingTemplate) TableName() string {
	return "copywriting_templates"
}
