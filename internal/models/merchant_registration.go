package models

import (
	"time"
)

// MerchantRegistration 商家注册登记表
type MerchantRegistration struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                 // 主键
	UserID         uint      `gorm:"not null;index" json:"userId"`                         // 提交人ID
	UserName       string    `gorm:"size:100" json:"userName"`                             // 提交人姓名
	Phone          string    `gorm:"size:20;not null" json:"phone"`                        // 注册手机号
	BusinessScope  string    `gorm:"size:200;not null" json:"businessScope"`               // 经营范围
	BusinessName1  string    `gorm:"size:200;not null" json:"businessName1"`               // 商家名称（首选）
	BusinessName2  string    `gorm:"size:200" json:"businessName2"`                        // 商家名称（备选二）
	BusinessName3  string    `gorm:"size:200" json:"businessName3"`                        // 商家名称（备选三）
	ContactName    string    `gorm:"size:100;not null" json:"contactName"`                 // 联系人姓名
	ContactPhone   string    `gorm:"size:20;not null" json:"contactPhone"`                 // 联系人电话
	IDCardFrontKey string    `gorm:"size:255" json:"idCardFrontKey"`                       // 身份证正面存储键
	IDCardBackKey  string    `gorm:"size:255" json:"idCardBackKey"`                        // 身份证反面存储键
	Status         int       `gorm:"type:smallint;not null;default:0;index" json:"status"` // 状态: 0-待处理, 1-已通过, 2-已驳回
	Remark         string    `gorm:"size:255" json:"remark"`                               // 处理备注
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`                               // 创建时间
	UpdatedAt      time.Time `json:"updatedAt"`                                            // 更新时间
}

// TableName 指定表名
func (MerchantRegistration) TableName() string {
	return "merchant_registrations"
}
