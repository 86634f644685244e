package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/provider"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupStockRequestHandlerTest(t *testing.T) (*gin.Engine, *service.StockRequestService, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:stock_request_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.OperationLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	stockService := service.NewStockRequestService(
		repository.NewStockRequestRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		service.NewRequestNoGenerator(),
	)
	handler := &Handler{Container: &provider.Container{
		StockRequestService: stockService,
		OperationLogService: service.NewOperationLogService(
			repository.NewOperationLogRepository(db), nil),
	}}

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("user_id", uint(2))
		c.Set("username", "approver")
		c.Set("permission_codes", []string{constants.PermStockApprove})
	})
	engine.POST("/api/stock-requests/:id/approve", handler.ApproveStockRequest)
	engine.POST("/api/stock-requests/:id/reject", handler.RejectStockRequest)

	seedUsers := []models.User{
		{ID: 1, Username: "submitter", PasswordHash: "hash", RealName: "提交人",
			UserType: constants.UserTypeSalesman, Status: constants.UserStatusEnabled},
		{ID: 2, Username: "approver", PasswordHash: "hash", RealName: "审批人",
			UserType: constants.UserTypeLeader, Status: constants.UserStatusEnabled},
	}
	for i := range seedUsers {
		if err := db.Create(&seedUsers[i]).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}
	product := models.Product{
		ID: 1, Name: "立牌A", SKU: "LP-001", Unit: "个",
		Price: decimal.NewFromInt(10), Stock: 10,
		Status: constants.ProductStatusActive,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	return engine, stockService, db
}

func submitOutboundRequest(t *testing.T, svc *service.StockRequestService) *models.StockRequest {
	t.Helper()
	request, err := svc.Submit(service.SubmitInput{
		Type:        constants.RequestTypeOutbound,
		Items:       []service.SubmitItemInput{{ProductID: 1, Quantity: 4}},
		SubmitterID: 1,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return request
}

func postJSON(t *testing.T, engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func reloadRequest(t *testing.T, db *gorm.DB, id uint) *models.StockRequest {
	t.Helper()
	var request models.StockRequest
	if err := db.First(&request, id).Error; err != nil {
		t.Fatalf("reload request failed: %v", err)
	}
	return &request
}

func handlerProductStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	return product.Stock
}

func TestApproveStockRequestApprovedTrue(t *testing.T) {
	engine, svc, db := setupStockRequestHandlerTest(t)
	request := submitOutboundRequest(t, svc)

	w := postJSON(t, engine,
		fmt.Sprintf("/api/stock-requests/%d/approve", request.ID),
		`{"approved": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("approve should succeed, got %d: %s", w.Code, w.Body.String())
	}

	reloaded := reloadRequest(t, db, request.ID)
	if reloaded.Status != constants.RequestStatusApproved {
		t.Fatalf("request should be approved, got: %s", reloaded.Status)
	}
	if got := handlerProductStock(t, db, 1); got != 6 {
		t.Fatalf("approval should deduct stock, want 6 got %d", got)
	}
}

// 同一接口 approved=false 时必须走驳回，不得动库存
func TestApproveStockRequestApprovedFalse(t *testing.T) {
	engine, svc, db := setupStockRequestHandlerTest(t)
	request := submitOutboundRequest(t, svc)

	w := postJSON(t, engine,
		fmt.Sprintf("/api/stock-requests/%d/approve", request.ID),
		`{"approved": false, "rejectReason": "信息不全"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("reject via approve endpoint should succeed, got %d: %s", w.Code, w.Body.String())
	}

	reloaded := reloadRequest(t, db, request.ID)
	if reloaded.Status != constants.RequestStatusRejected {
		t.Fatalf("approved=false should reject the request, got: %s", reloaded.Status)
	}
	if reloaded.RejectReason != "信息不全" {
		t.Fatalf("reject reason should be recorded, got: %s", reloaded.RejectReason)
	}
	if got := handlerProductStock(t, db, 1); got != 10 {
		t.Fatalf("rejection must not touch stock, got: %d", got)
	}

	var logCount int64
	if err := db.Model(&models.OperationLog{}).
		Where("action = ?", "stock_request_reject").Count(&logCount).Error; err != nil {
		t.Fatalf("count operation logs failed: %v", err)
	}
	if logCount != 1 {
		t.Fatalf("rejection should be audited once, got: %d", logCount)
	}
}

func TestApproveStockRequestMissingBody(t *testing.T) {
	engine, svc, db := setupStockRequestHandlerTest(t)
	request := submitOutboundRequest(t, svc)

	w := postJSON(t, engine,
		fmt.Sprintf("/api/stock-requests/%d/approve", request.ID), `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing approved field should be a bad request, got: %d", w.Code)
	}
	if reloaded := reloadRequest(t, db, request.ID); reloaded.Status != constants.RequestStatusPending {
		t.Fatalf("request should stay pending, got: %s", reloaded.Status)
	}
}

func TestRejectStockRequestReasonAliases(t *testing.T) {
	engine, svc, db := setupStockRequestHandlerTest(t)

	first := submitOutboundRequest(t, svc)
	w := postJSON(t, engine,
		fmt.Sprintf("/api/stock-requests/%d/reject", first.ID),
		`{"reason": "地址缺失"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("reject with reason field should succeed, got %d: %s", w.Code, w.Body.String())
	}
	if reloaded := reloadRequest(t, db, first.ID); reloaded.RejectReason != "地址缺失" {
		t.Fatalf("unexpected reject reason: %s", reloaded.RejectReason)
	}

	second := submitOutboundRequest(t, svc)
	w = postJSON(t, engine,
		fmt.Sprintf("/api/stock-requests/%d/reject", second.ID),
		`{"rejectReason": "电话无效"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("reject with rejectReason field should succeed, got %d: %s", w.Code, w.Body.String())
	}
	if reloaded := reloadRequest(t, db, second.ID); reloaded.RejectReason != "电话无效" {
		t.Fatalf("unexpected reject reason: %s", reloaded.RejectReason)
	}

	// 两种字段名都缺失时由业务层拦截
	third := submitOutboundRequest(t, svc)
	w = postJSON(t, engine,
		fmt.Sprintf("/api/stock-requests/%d/reject", third.ID), `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank reason should be a bad request, got: %d", w.Code)
	}
}
