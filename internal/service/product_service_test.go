package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.StockRequest{},
		&models.StockRequestItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	return NewProductService(repository.NewProductRepository(db)), db
}

func TestProductServiceCreate(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	price := decimal.RequireFromString("12.50")
	stock := 20
	product, err := svc.Create(ProductInput{
		Name:      "  亚克力立牌  ",
		SKU:       "LP-001",
		Price:     &price,
		Stock:     &stock,
		CreatedBy: 1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Name != "亚克力立牌" {
		t.Fatalf("name should be trimmed, got: %q", product.Name)
	}
	if product.Unit != "个" {
		t.Fatalf("unit should default to 个, got: %s", product.Unit)
	}
	if product.Status != 1 {
		t.Fatalf("status should default to active, got: %d", product.Status)
	}
}

func TestProductServiceCreateValidation(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	if _, err := svc.Create(ProductInput{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name should be rejected, got: %v", err)
	}

	negative := -1
	if _, err := svc.Create(ProductInput{Name: "测试", Stock: &negative}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative stock should be rejected, got: %v", err)
	}
}

func TestProductServiceCreateDuplicateSKU(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	if _, err := svc.Create(ProductInput{Name: "商品A", SKU: "DUP-01"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(ProductInput{Name: "商品B", SKU: "DUP-01"}); !errors.Is(err, ErrSKUExists) {
		t.Fatalf("duplicate sku should be rejected, got: %v", err)
	}
}

func TestProductServiceUpdate(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	created, err := svc.Create(ProductInput{Name: "商品A", SKU: "UP-01"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other, err := svc.Create(ProductInput{Name: "商品B", SKU: "UP-02"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(created.ID, ProductInput{SKU: other.SKU}); !errors.Is(err, ErrSKUExists) {
		t.Fatalf("sku collision on update should be rejected, got: %v", err)
	}

	disabled := 0
	minStock := 5
	updated, err := svc.Update(created.ID, ProductInput{
		Name:     "商品A改",
		MinStock: &minStock,
		Status:   &disabled,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "商品A改" || updated.MinStock != 5 || updated.Status != 0 {
		t.Fatalf("unexpected updated product: %+v", updated)
	}
	// 未提供的字段保持原值
	if updated.SKU != "UP-01" {
		t.Fatalf("sku should be unchanged, got: %s", updated.SKU)
	}

	if _, err := svc.Update(9999, ProductInput{Name: "无"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing product should be not found, got: %v", err)
	}
}

func TestProductServiceDeleteReferenced(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	created, err := svc.Create(ProductInput{Name: "商品A", SKU: "DEL-01"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	item := models.StockRequestItem{
		RequestID:   1,
		ProductID:   created.ID,
		ProductName: created.Name,
		Quantity:    1,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create request item failed: %v", err)
	}

	if err := svc.Delete(created.ID); !errors.Is(err, ErrProductReferenced) {
		t.Fatalf("referenced product should not be deletable, got: %v", err)
	}

	free, err := svc.Create(ProductInput{Name: "商品B", SKU: "DEL-02"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(free.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(free.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted product should be gone, got: %v", err)
	}
}
