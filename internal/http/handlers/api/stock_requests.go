package api

import (
	"strings"

	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
)

// StockRequestItemRequest 申请单明细请求
type StockRequestItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateStockRequestRequest 提交申请单请求
type CreateStockRequestRequest struct {
	Type          string                    `json:"type" binding:"required"`
	Items         []StockRequestItemRequest `json:"items"`
	Quantity      int                       `json:"quantity"`
	Merchant      string                    `json:"merchant"`
	Address       string                    `json:"address"`
	ReceiverName  string                    `json:"receiverName"`
	ReceiverPhone string                    `json:"receiverPhone"`
	ShippingFee   string                    `json:"shippingFee"`
	Reason        string                    `json:"reason"`
	Remark        string                    `json:"remark"`
	SalesmanID    *uint                     `json:"salesmanId"`
}

// ApproveStockRequestRequest 审批请求体，approved=false 时按驳回处理
type ApproveStockRequestRequest struct {
	Approved     *bool  `json:"approved" binding:"required"`
	RejectReason string `json:"rejectReason"`
	Reason       string `json:"reason"`
}

// RejectStockRequestRequest 驳回申请请求
type RejectStockRequestRequest struct {
	Reason       string `json:"reason"`
	RejectReason string `json:"rejectReason"`
}

// UpdateStockRequestItemsRequest 调整申请单明细请求
type UpdateStockRequestItemsRequest struct {
	Items []StockRequestItemRequest `json:"items" binding:"required"`
}

func toSubmitItems(items []StockRequestItemRequest) []service.SubmitItemInput {
	out := make([]service.SubmitItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, service.SubmitItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return out
}

// CreateStockRequest 提交库存变动申请
func (h *Handler) CreateStockRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req CreateStockRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	request, err := h.StockRequestService.Submit(service.SubmitInput{
		Type:          req.Type,
		Items:         toSubmitItems(req.Items),
		Quantity:      req.Quantity,
		Merchant:      req.Merchant,
		Address:       req.Address,
		ReceiverName:  req.ReceiverName,
		ReceiverPhone: req.ReceiverPhone,
		ShippingFee:   req.ShippingFee,
		Reason:        req.Reason,
		Remark:        req.Remark,
		SalesmanID:    req.SalesmanID,
		SubmitterID:   userID,
		SubmitterName: currentUsername(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recordOperation(c, "stock_request_submit", "stock_request", request.ID, request.RequestNo)
	response.Created(c, "申请提交成功", request)
}

// GetStockRequests 申请单列表。无全局查看权限时只返回本人提交的申请。
func (h *Handler) GetStockRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	filter := repository.StockRequestListFilter{
		Status:    strings.TrimSpace(c.Query("status")),
		Type:      strings.TrimSpace(c.Query("type")),
		Search:    strings.TrimSpace(c.Query("search")),
		StartDate: strings.TrimSpace(c.Query("startDate")),
		EndDate:   strings.TrimSpace(c.Query("endDate")),
		WithItems: true,
		Page:      page,
		PageSize:  pageSize,
	}
	if c.Query("my") == "1" || !hasAnyPermission(c, constants.PermStockViewAll) {
		filter.SubmitterID = userID
	}

	requests, total, err := h.StockRequestService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "申请单列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, requests, response.NewPagination(total, page, pageSize))
}

// GetPendingStockRequests 待审批申请单列表
func (h *Handler) GetPendingStockRequests(c *gin.Context) {
	page, pageSize := parsePagination(c)
	requests, total, err := h.StockRequestService.ListPending(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "待审批列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, requests, response.NewPagination(total, page, pageSize))
}

// GetApprovedStockRequests 已通过的出库/自购申请（发货视角）
func (h *Handler) GetApprovedStockRequests(c *gin.Context) {
	page, pageSize := parsePagination(c)
	requests, total, err := h.StockRequestService.ListApproved(service.ApprovedListFilter{
		Type:           strings.TrimSpace(c.Query("type")),
		ShippingStatus: strings.TrimSpace(c.Query("shippingStatus")),
		Search:         strings.TrimSpace(c.Query("search")),
		Page:           page,
		PageSize:       pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "已审批列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, requests, response.NewPagination(total, page, pageSize))
}

// GetStockRequest 申请单详情
func (h *Handler) GetStockRequest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	request, err := h.StockRequestService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if request.SubmitterID != userID &&
		!hasAnyPermission(c, constants.PermStockViewAll, constants.PermStockApprove, constants.PermShippingManage) {
		respondError(c, response.CodeForbidden, "没有权限查看该申请", nil)
		return
	}
	response.Success(c, request)
}

// ApproveStockRequest 审批申请。approved=true 通过并变动库存，
// approved=false 按驳回处理（需给出拒绝原因）。
func (h *Handler) ApproveStockRequest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	approverID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ApproveStockRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if !*req.Approved {
		h.rejectStockRequest(c, id, approverID, rejectReasonOf(req.RejectReason, req.Reason))
		return
	}

	request, err := h.StockRequestService.Approve(id, approverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "stock_request_approve", "stock_request", request.ID, request.RequestNo)
	response.SuccessWithMsg(c, "审批通过", request)
}

// RejectStockRequest 驳回申请
func (h *Handler) RejectStockRequest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	approverID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req RejectStockRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请填写拒绝原因", err)
		return
	}
	h.rejectStockRequest(c, id, approverID, rejectReasonOf(req.RejectReason, req.Reason))
}

// rejectReasonOf 兼容 rejectReason 与 reason 两种字段名
func rejectReasonOf(rejectReason, reason string) string {
	if strings.TrimSpace(rejectReason) != "" {
		return rejectReason
	}
	return reason
}

func (h *Handler) rejectStockRequest(c *gin.Context, id, approverID uint, reason string) {
	request, err := h.StockRequestService.Reject(id, approverID, reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "stock_request_reject", "stock_request", request.ID, request.RequestNo)
	response.SuccessWithMsg(c, "已驳回", request)
}

// UpdateStockRequestItems 审批前调整申请单明细
func (h *Handler) UpdateStockRequestItems(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateStockRequestItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	request, err := h.StockRequestService.EditItems(id, toSubmitItems(req.Items))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "stock_request_edit_items", "stock_request", request.ID, request.RequestNo)
	response.Success(c, request)
}

// DeleteStockRequest 删除待审批申请
func (h *Handler) DeleteStockRequest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	viewAll := hasAnyPermission(c, constants.PermStockViewAll)
	if err := h.StockRequestService.Delete(id, userID, viewAll); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "stock_request_delete", "stock_request", id, "")
	response.Success(c, nil)
}
