package repository

import (
	"errors"
	"strings"

	"github.com/lipai-ops/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetByIDForUpdate(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySKU(sku string, excludeID *uint) (int64, error)
	AdjustStock(productID uint, delta int) (int64, error)
	CountRequestItems(productID uint) (int64, error)
	CountLowStock() (int64, error)
	InventoryValue() (string, error)
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDForUpdate 加行锁获取商品，用于审批事务内的库存校验
func (r *GormProductRepository) GetByIDForUpdate(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySKU 统计商品编码数量（用于唯一性校验）
func (r *GormProductRepository) CountBySKU(sku string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("sku = ?", sku)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AdjustStock 按增量调整库存，条件保证库存不会被扣成负数
func (r *GormProductRepository) AdjustStock(productID uint, delta int) (int64, error) {
	if productID == 0 || delta == 0 {
		return 0, errors.New("invalid stock adjust params")
	}
	query := r.db.Model(&models.Product{}).Where("id = ?", productID)
	if delta < 0 {
		query = query.Where("stock >= ?", -delta)
	}
	result := query.Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountLowStock 统计库存低于预警线的在售商品数
func (r *GormProductRepository) CountLowStock() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).
		Where("status = ? AND min_stock > 0 AND stock <= min_stock", 1).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// InventoryValue 在库商品货值合计（单价×库存）
func (r *GormProductRepository) InventoryValue() (string, error) {
	var value *string
	if err := r.db.Model(&models.Product{}).
		Select("CAST(SUM(price * stock) AS TEXT)").
		Scan(&value).Error; err != nil {
		return "0", err
	}
	if value == nil || *value == "" {
		return "0", nil
	}
	return *value, nil
}

// CountRequestItems 统计商品被申请单明细引用的次数
func (r *GormProductRepository) CountRequestItems(productID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.StockRequestItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
