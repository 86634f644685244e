package service

import (
	"strings"

	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name        string
	SKU         string
	Category    string
	Unit        string
	Price       *decimal.Decimal
	Stock       *int
	MinStock    *int
	Description string
	Image       string
	Status      *int
	CreatedBy   uint
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// Get 商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	sku := strings.TrimSpace(input.SKU)
	if sku != "" {
		count, err := s.repo.CountBySKU(sku, nil)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSKUExists
		}
	}

	product := &models.Product{
		Name:        name,
		SKU:         sku,
		Category:    strings.TrimSpace(input.Category),
		Unit:        strings.TrimSpace(input.Unit),
		Description: input.Description,
		Image:       input.Image,
		Status:      1,
		CreatedBy:   input.CreatedBy,
	}
	if product.Unit == "" {
		product.Unit = "个"
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrInvalidInput
		}
		product.Stock = *input.Stock
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	if sku := strings.TrimSpace(input.SKU); sku != "" && sku != product.SKU {
		count, err := s.repo.CountBySKU(sku, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSKUExists
		}
		product.SKU = sku
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		product.Category = category
	}
	if unit := strings.TrimSpace(input.Unit); unit != "" {
		product.Unit = unit
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrInvalidInput
		}
		product.Stock = *input.Stock
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Image != "" {
		product.Image = input.Image
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品。被申请单明细引用的商品不可删除。
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}

	referenced, err := s.repo.CountRequestItems(id)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return ErrProductReferenced
	}
	return s.repo.Delete(id)
}
