package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品表
type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`                                     // 主键
	Name        string          `gorm:"size:200;not null" json:"name"`                            // 商品名称
	SKU         string          `gorm:"column:sku;uniqueIndex;size:100" json:"sku"`               // 商品编码
	Category    string          `gorm:"size:100;index" json:"category"`                           // 商品分类
	Unit        string          `gorm:"size:50;default:'个'" json:"unit"`                          // 单位
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`       // 单价
	Stock       int             `gorm:"not null;default:0" json:"stock"`                          // 库存数量（不允许为负）
	MinStock    int             `gorm:"not null;default:0" json:"minStock"`                       // 最低库存预警
	Description string          `gorm:"type:text" json:"description"`                             // 商品描述
	Image       string          `gorm:"size:255" json:"image"`                                    // 商品图片
	Status      int             `gorm:"type:smallint;not null;default:1;index" json:"status"`     // 状态: 0-下架, 1-上架
	CreatedBy   uint            `json:"createdBy"`                                                // 创建人
	CreatedAt   time.Time       `gorm:"index" json:"createdAt"`                                   // 创建时间
	UpdatedAt   time.Time       `json:"updatedAt"`                                                // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
