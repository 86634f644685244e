package models

import (
	"time"
)

// ShippingInfo 发货信息表，与申请单一一对应
type ShippingInfo struct {
	ID              uint       `gorm:"primarykey" json:"id"`                                          // 主键
	RequestID       uint       `gorm:"uniqueIndex;not null" json:"requestId"`                         // 关联的申请单ID
	ShippingStatus  string     `gorm:"size:20;not null;default:'pending'" json:"shippingStatus"`      // 发货状态: pending/shipped/delivered
	TrackingNo      string     `gorm:"size:100" json:"trackingNo"`                                    // 快递单号
	CourierCompany  string     `gorm:"size:100" json:"courierCompany"`                                // 快递公司
	ShippingAddress string     `gorm:"size:255" json:"shippingAddress"`                               // 收货地址
	ReceiverName    string     `gorm:"size:100" json:"receiverName"`                                  // 收货人
	ReceiverPhone   string     `gorm:"size:20" json:"receiverPhone"`                                  // 收货人电话
	ShippedAt       *time.Time `json:"shippedAt"`                                                     // 发货时间（每次写入 shipped 时刷新，不回退清空）
	DeliveredAt     *time.Time `json:"deliveredAt"`                                                   // 签收时间
	Remark          string     `gorm:"type:text" json:"remark"`                                       // 发货备注
	OperatorID      uint       `json:"operatorId"`                                                    // 操作人ID
	CreatedAt       time.Time  `json:"createdAt"`                                                     // 创建时间
	UpdatedAt       time.Time  `json:"updatedAt"`                                                     // 更新时间
}

// TableName 指定表名
func (ShippingInfo) TableName() string {
	return "shipping_info"
}
