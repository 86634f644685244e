package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupShippingServiceTest(t *testing.T) (*ShippingService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:shipping_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.StockRequest{},
		&models.StockRequestItem{},
		&models.ShippingInfo{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewShippingService(
		repository.NewShippingRepository(db),
		repository.NewStockRequestRepository(db),
	)
	return svc, db
}

func seedShippingRequest(t *testing.T, db *gorm.DB, id uint, requestType, status string) {
	t.Helper()
	request := models.StockRequest{
		ID:          id,
		RequestNo:   fmt.Sprintf("SR20260101TEST%02d", id),
		Type:        requestType,
		Status:      status,
		Quantity:    1,
		SubmitterID: 1,
	}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("create request failed: %v", err)
	}
}

func TestShippingServiceUpsertCreates(t *testing.T) {
	svc, db := setupShippingServiceTest(t)
	seedShippingRequest(t, db, 1, constants.RequestTypeOutbound, constants.RequestStatusApproved)

	info, err := svc.Upsert(1, UpsertShippingInput{
		TrackingNo:     "SF123456",
		CourierCompany: "顺丰",
		ReceiverName:   "张三",
		OperatorID:     9,
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if info.ShippingStatus != constants.ShippingStatusPending {
		t.Fatalf("empty status should default to pending, got: %s", info.ShippingStatus)
	}
	if info.ShippedAt != nil {
		t.Fatal("shipped at should not be stamped before shipping")
	}
	if info.OperatorID != 9 {
		t.Fatalf("operator should be recorded, got: %d", info.OperatorID)
	}
}

func TestShippingServiceUpsertUpdatesSameRow(t *testing.T) {
	svc, db := setupShippingServiceTest(t)
	seedShippingRequest(t, db, 1, constants.RequestTypeSelfPurchase, constants.RequestStatusApproved)

	first, err := svc.Upsert(1, UpsertShippingInput{TrackingNo: "A1"})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	second, err := svc.Upsert(1, UpsertShippingInput{TrackingNo: "A2"})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("upsert should reuse the same row, got %d and %d", first.ID, second.ID)
	}
	if second.TrackingNo != "A2" {
		t.Fatalf("tracking no should be updated, got: %s", second.TrackingNo)
	}

	var count int64
	if err := db.Model(&models.ShippingInfo{}).Where("request_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count shipping rows failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("request should have exactly one shipping row, got: %d", count)
	}
}

func TestShippingServiceShippedAtRefreshed(t *testing.T) {
	svc, db := setupShippingServiceTest(t)
	seedShippingRequest(t, db, 1, constants.RequestTypeOutbound, constants.RequestStatusApproved)

	shipped, err := svc.Upsert(1, UpsertShippingInput{Status: constants.ShippingStatusShipped})
	if err != nil {
		t.Fatalf("upsert shipped failed: %v", err)
	}
	if shipped.ShippedAt == nil {
		t.Fatal("shipped at should be stamped on transition to shipped")
	}

	// 状态回退不清空发货时间
	back, err := svc.Upsert(1, UpsertShippingInput{Status: constants.ShippingStatusPending})
	if err != nil {
		t.Fatalf("upsert back to pending failed: %v", err)
	}
	if back.ShippedAt == nil {
		t.Fatal("shipped at should survive status rollback")
	}

	// 把已有发货时间拨回一小时，再次写入 shipped 应刷新盖章
	backdated := time.Now().Add(-time.Hour)
	if err := db.Model(&models.ShippingInfo{}).
		Where("request_id = ?", 1).
		Update("shipped_at", backdated).Error; err != nil {
		t.Fatalf("backdate shipped at failed: %v", err)
	}

	again, err := svc.Upsert(1, UpsertShippingInput{Status: constants.ShippingStatusShipped})
	if err != nil {
		t.Fatalf("upsert shipped again failed: %v", err)
	}
	if again.ShippedAt == nil {
		t.Fatal("shipped at should be present")
	}
	if !again.ShippedAt.After(backdated.Add(time.Minute)) {
		t.Fatalf("writing shipped again should refresh shipped at, got: %v", again.ShippedAt)
	}

	// 已是 shipped 时重复提交同样刷新
	if err := db.Model(&models.ShippingInfo{}).
		Where("request_id = ?", 1).
		Update("shipped_at", backdated).Error; err != nil {
		t.Fatalf("backdate shipped at failed: %v", err)
	}
	repeat, err := svc.Upsert(1, UpsertShippingInput{Status: constants.ShippingStatusShipped})
	if err != nil {
		t.Fatalf("repeat upsert failed: %v", err)
	}
	if repeat.ShippedAt == nil || !repeat.ShippedAt.After(backdated.Add(time.Minute)) {
		t.Fatalf("repeated shipped status should refresh shipped at, got: %v", repeat.ShippedAt)
	}
}

func TestShippingServiceUpsertNotEligible(t *testing.T) {
	svc, db := setupShippingServiceTest(t)
	seedShippingRequest(t, db, 1, constants.RequestTypeOutbound, constants.RequestStatusPending)
	seedShippingRequest(t, db, 2, constants.RequestTypeInbound, constants.RequestStatusApproved)

	if _, err := svc.Upsert(1, UpsertShippingInput{}); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("pending request should not be eligible, got: %v", err)
	}
	if _, err := svc.Upsert(2, UpsertShippingInput{}); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("inbound request should not be eligible, got: %v", err)
	}
	if _, err := svc.Upsert(99, UpsertShippingInput{}); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("missing request should not be eligible, got: %v", err)
	}
}

func TestShippingServiceUpsertInvalidStatus(t *testing.T) {
	svc, db := setupShippingServiceTest(t)
	seedShippingRequest(t, db, 1, constants.RequestTypeOutbound, constants.RequestStatusApproved)

	if _, err := svc.Upsert(1, UpsertShippingInput{Status: "lost"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status should be rejected, got: %v", err)
	}
}

func TestShippingServiceGet(t *testing.T) {
	svc, db := setupShippingServiceTest(t)
	seedShippingRequest(t, db, 1, constants.RequestTypeOutbound, constants.RequestStatusApproved)

	if _, err := svc.Get(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing shipping info should be not found, got: %v", err)
	}

	if _, err := svc.Upsert(1, UpsertShippingInput{TrackingNo: "SF1"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	info, err := svc.Get(1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if info.TrackingNo != "SF1" {
		t.Fatalf("unexpected tracking no: %s", info.TrackingNo)
	}
}
