package models

import (
	"time"
)

// StockRequest 库存变动申请表
type StockRequest struct {
	ID            uint       `gorm:"primarykey" json:"id"`                                  // 主键
	RequestNo     string     `gorm:"uniqueIndex;size:50;not null" json:"requestNo"`         // 申请单号
	Type          string     `gorm:"size:20;not null;index" json:"type"`                    // 类型: in-入库, out-出库, self_purchase-自购
	Status        string     `gorm:"size:20;not null;default:'pending';index" json:"status"` // 状态: pending/approved/rejected
	Quantity      int        `gorm:"not null;default:0" json:"quantity"`                    // 总数量（明细数量之和）
	ItemsSummary  string     `gorm:"type:text" json:"itemsSummary"`                         // 商品摘要（冗余存储便于列表展示）
	Reason        string     `gorm:"size:255" json:"reason"`                                // 变动原因
	Merchant      string     `gorm:"size:100" json:"merchant"`                              // 商家名称
	Address       string     `gorm:"size:255" json:"address"`                               // 地址
	ReceiverName  string     `gorm:"size:100" json:"receiverName"`                          // 收货人
	ReceiverPhone string     `gorm:"size:20" json:"receiverPhone"`                          // 收货人电话
	ShippingFee   string     `gorm:"size:20" json:"shippingFee"`                            // 运费承担方: receiver/sender
	Remark        string     `gorm:"type:text" json:"remark"`                               // 备注
	SubmitterID   uint       `gorm:"not null;index" json:"submitterId"`                     // 提交人ID
	SubmitterName string     `gorm:"size:100" json:"submitterName"`                         // 提交人姓名
	SalesmanID    *uint      `gorm:"index" json:"salesmanId"`                               // 业务员ID
	SalesmanName  string     `gorm:"size:100" json:"salesmanName"`                          // 业务员姓名
	ApproverID    *uint      `json:"approverId"`                                            // 审批人ID
	ApproverName  string     `gorm:"size:100" json:"approverName"`                          // 审批人姓名
	ApprovedAt    *time.Time `json:"approvedAt"`                                            // 审批时间
	RejectReason  string     `gorm:"size:255" json:"rejectReason"`                          // 拒绝原因
	CreatedAt     time.Time  `gorm:"index" json:"createdAt"`                                // 创建时间
	UpdatedAt     time.Time  `json:"updatedAt"`                                             // 更新时间

	// 关联
	Items    []StockRequestItem `gorm:"foreignKey:RequestID" json:"items,omitempty"`    // 商品明细
	Shipping *ShippingInfo      `gorm:"foreignKey:RequestID" json:"shipping,omitempty"` // 发货信息
}

// TableName 指定表名
func (StockRequest) TableName() string {
	return "stock_requests"
}

// StockRequestItem 申请单商品明细表
type StockRequestItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`               // 主键
	RequestID   uint      `gorm:"not null;index" json:"requestId"`    // 申请单ID
	ProductID   uint      `gorm:"not null;index" json:"productId"`    // 商品ID
	ProductName string    `gorm:"size:200" json:"productName"`        // 商品名称快照
	Unit        string    `gorm:"size:50" json:"unit"`                // 商品单位快照
	Quantity    int       `gorm:"not null" json:"quantity"`           // 数量
	CreatedAt   time.Time `json:"createdAt"`                          // 创建时间
}

// TableName 指定表名
func (StockRequestItem) TableName() string {
	return "stock_request_items"
}
