package models

import (
	"time"
)

// MediaUpload 素材上传记录表
type MediaUpload struct {
	ID                   uint       `gorm:"primarykey" json:"id"`                         // 主键
	UserID               uint       `gorm:"not null;index:idx_media_user_date,priority:1" json:"userId"` // 上传人ID
	UserName             string     `gorm:"size:100" json:"userName"`                     // 上传人姓名
	LeaderID             *uint      `gorm:"index:idx_media_leader_date,priority:1" json:"leaderId"` // 上传人所属组长ID
	OSSKey               string     `gorm:"column:oss_key;size:255;not null" json:"ossKey"` // 对象存储键
	FileName             string     `gorm:"size:255" json:"fileName"`                     // 原始文件名
	FileType             string     `gorm:"size:20;index" json:"fileType"`                // 文件类型: image/video
	FileSize             int64      `json:"fileSize"`                                     // 文件大小（字节）
	UploadDate           string     `gorm:"size:10;not null;index:idx_media_user_date,priority:2;index:idx_media_leader_date,priority:2" json:"uploadDate"` // 上传日期（YYYY-MM-DD）
	Copywriting          string     `gorm:"type:text" json:"copywriting"`                 // 配套文案
	CopywritingUpdatedAt *time.Time `json:"copywritingUpdatedAt"`                         // 文案更新时间
	CopywritingUpdatedBy *uint      `json:"copywritingUpdatedBy"`                         // 文案更新人ID
	CreatedAt            time.Time  `gorm:"index" json:"createdAt"`                       // 创建时间
	UpdatedAt            time.Time  `json:"updatedAt"`                                    // 更新时间
}

// TableName 指定表名
func (MediaUpload) TableName() string {
	return "media_uploads"
}
