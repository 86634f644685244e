package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupStockRequestServiceTest(t *testing.T) (*StockRequestService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:stock_request_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.StockRequest{},
		&models.StockRequestItem{},
		&models.ShippingInfo{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewStockRequestService(
		repository.NewStockRequestRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		NewRequestNoGenerator(),
	)
	return svc, db
}

func seedStockUser(t *testing.T, db *gorm.DB, id uint, realName string) {
	t.Helper()
	user := models.User{
		ID:           id,
		Username:     fmt.Sprintf("stock_user_%d", id),
		PasswordHash: "hash",
		RealName:     realName,
		UserType:     constants.UserTypeSalesman,
		Status:       constants.UserStatusEnabled,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func seedStockProduct(t *testing.T, db *gorm.DB, id uint, name string, stock int) {
	t.Helper()
	product := models.Product{
		ID:     id,
		Name:   name,
		SKU:    fmt.Sprintf("SKU-%d", id),
		Unit:   "个",
		Price:  decimal.NewFromInt(10),
		Stock:  stock,
		Status: constants.ProductStatusActive,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	return product.Stock
}

func TestStockRequestServiceSubmitOutboundMultiItem(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockProduct(t, db, 1, "立牌A", 10)
	seedStockProduct(t, db, 2, "立牌B", 5)

	request, err := svc.Submit(SubmitInput{
		Type: constants.RequestTypeOutbound,
		Items: []SubmitItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		Merchant:      "示例商家",
		SubmitterID:   1,
		SubmitterName: "提交人",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if request.Status != constants.RequestStatusPending {
		t.Fatalf("new request should be pending, got: %s", request.Status)
	}
	if !strings.HasPrefix(request.RequestNo, "SR") {
		t.Fatalf("request no should start with SR, got: %s", request.RequestNo)
	}
	if request.Quantity != 3 {
		t.Fatalf("quantity should sum item quantities, got: %d", request.Quantity)
	}
	if request.ItemsSummary != "立牌A x2, 立牌B x1" {
		t.Fatalf("unexpected items summary: %s", request.ItemsSummary)
	}
	if len(request.Items) != 2 {
		t.Fatalf("request should carry two item rows, got: %d", len(request.Items))
	}
	// 明细固化商品名称与单位，后续改商品不影响历史单据
	if request.Items[0].ProductName != "立牌A" || request.Items[0].Unit != "个" {
		t.Fatalf("item should snapshot product name and unit, got: %s / %s",
			request.Items[0].ProductName, request.Items[0].Unit)
	}

	// 提交只落库申请，不动库存
	if got := productStock(t, db, 1); got != 10 {
		t.Fatalf("stock should be untouched on submit, got: %d", got)
	}
}

func TestStockRequestServiceSubmitSelfPurchase(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")

	request, err := svc.Submit(SubmitInput{
		Type:          constants.RequestTypeSelfPurchase,
		Quantity:      3,
		SubmitterID:   1,
		SubmitterName: "提交人",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if request.ItemsSummary != "自购立牌 x3" {
		t.Fatalf("unexpected self purchase summary: %s", request.ItemsSummary)
	}
	if len(request.Items) != 0 {
		t.Fatalf("self purchase should have no item rows, got: %d", len(request.Items))
	}
}

func TestStockRequestServiceSubmitInvalidInput(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")

	if _, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeOutbound,
		SubmitterID: 1,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty items should be rejected, got: %v", err)
	}

	if _, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeSelfPurchase,
		Quantity:    0,
		SubmitterID: 1,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("self purchase quantity < 1 should be rejected, got: %v", err)
	}

	if _, err := svc.Submit(SubmitInput{
		Type:        "unknown",
		SubmitterID: 1,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown type should be rejected, got: %v", err)
	}
}

func TestStockRequestServiceApproveInboundAddsStock(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockUser(t, db, 2, "审批人")
	seedStockProduct(t, db, 1, "立牌A", 10)

	request, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeInbound,
		Items:       []SubmitItemInput{{ProductID: 1, Quantity: 7}},
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approved, err := svc.Approve(request.ID, 2)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != constants.RequestStatusApproved {
		t.Fatalf("status should be approved, got: %s", approved.Status)
	}
	if approved.ApproverName != "审批人" {
		t.Fatalf("approver name should be recorded, got: %s", approved.ApproverName)
	}
	if approved.ApprovedAt == nil {
		t.Fatal("approved at should be stamped")
	}
	if got := productStock(t, db, 1); got != 17 {
		t.Fatalf("inbound should add stock, want 17 got %d", got)
	}
}

func TestStockRequestServiceApproveOutboundDeductsStock(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockUser(t, db, 2, "审批人")
	seedStockProduct(t, db, 1, "立牌A", 10)

	request, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeOutbound,
		Items:       []SubmitItemInput{{ProductID: 1, Quantity: 4}},
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.Approve(request.ID, 2); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if got := productStock(t, db, 1); got != 6 {
		t.Fatalf("outbound should deduct stock, want 6 got %d", got)
	}
}

func TestStockRequestServiceApproveInsufficientStockRollsBack(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockUser(t, db, 2, "审批人")
	seedStockProduct(t, db, 1, "立牌A", 10)
	seedStockProduct(t, db, 2, "立牌B", 1)

	request, err := svc.Submit(SubmitInput{
		Type: constants.RequestTypeOutbound,
		Items: []SubmitItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 5},
		},
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = svc.Approve(request.ID, 2)
	if err == nil {
		t.Fatal("approve should fail on insufficient stock")
	}
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got: %v", err)
	}
	if stockErr.ProductName != "立牌B" {
		t.Fatalf("error should name the failing product, got: %s", stockErr.ProductName)
	}
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("error should match sentinel, got: %v", err)
	}

	// 整单回滚：已扣减的明细也要恢复，申请保持 pending
	if got := productStock(t, db, 1); got != 10 {
		t.Fatalf("stock of first item should be rolled back, want 10 got %d", got)
	}
	if got := productStock(t, db, 2); got != 1 {
		t.Fatalf("stock of failing item should be unchanged, want 1 got %d", got)
	}
	reloaded, err := svc.Get(request.ID)
	if err != nil {
		t.Fatalf("reload request failed: %v", err)
	}
	if reloaded.Status != constants.RequestStatusPending {
		t.Fatalf("request should stay pending after rollback, got: %s", reloaded.Status)
	}
}

func TestStockRequestServiceApproveSelfPurchaseLeavesStock(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockUser(t, db, 2, "审批人")
	seedStockProduct(t, db, 1, "立牌A", 10)

	request, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeSelfPurchase,
		Quantity:    99,
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.Approve(request.ID, 2); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if got := productStock(t, db, 1); got != 10 {
		t.Fatalf("self purchase should never touch stock, got: %d", got)
	}
}

func TestStockRequestServiceApproveTwice(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockUser(t, db, 2, "审批人")
	seedStockProduct(t, db, 1, "立牌A", 10)

	request, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeOutbound,
		Items:       []SubmitItemInput{{ProductID: 1, Quantity: 1}},
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.Approve(request.ID, 2); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if _, err := svc.Approve(request.ID, 2); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("second approve should report already processed, got: %v", err)
	}
	// 重复审批不得再次扣库存
	if got := productStock(t, db, 1); got != 9 {
		t.Fatalf("stock should be deducted exactly once, got: %d", got)
	}
}

func TestStockRequestServiceRejectRequiresReason(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockUser(t, db, 2, "审批人")
	seedStockProduct(t, db, 1, "立牌A", 10)

	request, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeOutbound,
		Items:       []SubmitItemInput{{ProductID: 1, Quantity: 1}},
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.Reject(request.ID, 2, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank reason should be rejected, got: %v", err)
	}

	rejected, err := svc.Reject(request.ID, 2, "信息不全")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != constants.RequestStatusRejected {
		t.Fatalf("status should be rejected, got: %s", rejected.Status)
	}
	if rejected.RejectReason != "信息不全" {
		t.Fatalf("reject reason should be recorded, got: %s", rejected.RejectReason)
	}
	if got := productStock(t, db, 1); got != 10 {
		t.Fatalf("reject should never touch stock, got: %d", got)
	}

	if _, err := svc.Reject(request.ID, 2, "再来一次"); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("rejecting a processed request should fail, got: %v", err)
	}
}

func TestStockRequestServiceEditItemsRecomputesSummary(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockProduct(t, db, 1, "立牌A", 10)
	seedStockProduct(t, db, 2, "立牌B", 10)

	request, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeOutbound,
		Items:       []SubmitItemInput{{ProductID: 1, Quantity: 2}},
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updated, err := svc.EditItems(request.ID, []SubmitItemInput{
		{ProductID: 2, Quantity: 3},
		{ProductID: 1, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("edit items failed: %v", err)
	}
	if updated.Quantity != 4 {
		t.Fatalf("quantity should be recomputed, got: %d", updated.Quantity)
	}
	if updated.ItemsSummary != "立牌B x3, 立牌A x1" {
		t.Fatalf("summary should be recomputed, got: %s", updated.ItemsSummary)
	}

	var count int64
	if err := db.Model(&models.StockRequestItem{}).
		Where("request_id = ?", request.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("items should be replaced, want 2 got %d", count)
	}
}

func TestStockRequestServiceEditItemsSelfPurchase(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockProduct(t, db, 1, "立牌A", 10)

	request, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeSelfPurchase,
		Quantity:    2,
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.EditItems(request.ID, []SubmitItemInput{{ProductID: 1, Quantity: 1}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("self purchase items should not be editable, got: %v", err)
	}
}

func TestStockRequestServiceListApprovedShippingView(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockUser(t, db, 2, "审批人")
	seedStockProduct(t, db, 1, "立牌A", 100)

	submitAndApprove := func(hoursAgo int) uint {
		t.Helper()
		request, err := svc.Submit(SubmitInput{
			Type:        constants.RequestTypeOutbound,
			Items:       []SubmitItemInput{{ProductID: 1, Quantity: 1}},
			SubmitterID: 1,
		})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if _, err := svc.Approve(request.ID, 2); err != nil {
			t.Fatalf("approve failed: %v", err)
		}
		approvedAt := time.Now().Add(-time.Duration(hoursAgo) * time.Hour)
		if err := db.Model(&models.StockRequest{}).
			Where("id = ?", request.ID).
			Update("approved_at", approvedAt).Error; err != nil {
			t.Fatalf("stamp approved at failed: %v", err)
		}
		return request.ID
	}

	oldest := submitAndApprove(3)
	middle := submitAndApprove(2)
	newest := submitAndApprove(1)

	// oldest 已发货，middle 待发货，newest 尚无发货记录
	if err := db.Create(&models.ShippingInfo{
		RequestID:      oldest,
		ShippingStatus: constants.ShippingStatusShipped,
	}).Error; err != nil {
		t.Fatalf("create shipping row failed: %v", err)
	}
	if err := db.Create(&models.ShippingInfo{
		RequestID:      middle,
		ShippingStatus: constants.ShippingStatusPending,
	}).Error; err != nil {
		t.Fatalf("create shipping row failed: %v", err)
	}

	all, total, err := svc.ListApproved(ApprovedListFilter{})
	if err != nil {
		t.Fatalf("list approved failed: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("want all three approved requests, got total=%d len=%d", total, len(all))
	}
	// 按审批时间倒序
	if all[0].ID != newest || all[1].ID != middle || all[2].ID != oldest {
		t.Fatalf("approved list should order by approved at desc, got: %d %d %d",
			all[0].ID, all[1].ID, all[2].ID)
	}

	shipped, _, err := svc.ListApproved(ApprovedListFilter{ShippingStatus: constants.ShippingStatusShipped})
	if err != nil {
		t.Fatalf("list shipped failed: %v", err)
	}
	if len(shipped) != 1 || shipped[0].ID != oldest {
		t.Fatalf("shipped filter should return the shipped request, got: %v", shipped)
	}

	none, _, err := svc.ListApproved(ApprovedListFilter{ShippingStatus: "none"})
	if err != nil {
		t.Fatalf("list unshipped failed: %v", err)
	}
	if len(none) != 1 || none[0].ID != newest {
		t.Fatalf("none filter should return requests without shipping rows, got: %v", none)
	}
}

func TestStockRequestServiceListDateRange(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockProduct(t, db, 1, "立牌A", 100)

	early, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeOutbound,
		Items:       []SubmitItemInput{{ProductID: 1, Quantity: 1}},
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := db.Model(&models.StockRequest{}).
		Where("id = ?", early.ID).
		Update("created_at", "2026-05-01 10:00:00").Error; err != nil {
		t.Fatalf("backdate request failed: %v", err)
	}

	late, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeOutbound,
		Items:       []SubmitItemInput{{ProductID: 1, Quantity: 1}},
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := db.Model(&models.StockRequest{}).
		Where("id = ?", late.ID).
		Update("created_at", "2026-08-15 10:00:00").Error; err != nil {
		t.Fatalf("backdate request failed: %v", err)
	}

	got, _, err := svc.List(repository.StockRequestListFilter{StartDate: "2026-06-01"})
	if err != nil {
		t.Fatalf("list with start date failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != late.ID {
		t.Fatalf("start date should exclude earlier requests, got: %v", got)
	}

	got, _, err = svc.List(repository.StockRequestListFilter{EndDate: "2026-05-31"})
	if err != nil {
		t.Fatalf("list with end date failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != early.ID {
		t.Fatalf("end date should exclude later requests, got: %v", got)
	}

	got, _, err = svc.List(repository.StockRequestListFilter{
		StartDate: "2026-05-01",
		EndDate:   "2026-08-15",
	})
	if err != nil {
		t.Fatalf("list with date range failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("range should be inclusive on both ends, got: %d", len(got))
	}
}

func TestStockRequestServiceDelete(t *testing.T) {
	svc, db := setupStockRequestServiceTest(t)
	seedStockUser(t, db, 1, "提交人")
	seedStockUser(t, db, 2, "其他人")
	seedStockProduct(t, db, 1, "立牌A", 10)

	request, err := svc.Submit(SubmitInput{
		Type:        constants.RequestTypeOutbound,
		Items:       []SubmitItemInput{{ProductID: 1, Quantity: 1}},
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.Delete(request.ID, 2, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-submitter without view-all should be forbidden, got: %v", err)
	}
	if err := svc.Delete(request.ID, 2, true); err != nil {
		t.Fatalf("view-all holder should be able to delete, got: %v", err)
	}
	if _, err := svc.Get(request.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted request should be gone, got: %v", err)
	}
}
