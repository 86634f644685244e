package api

import (
	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
)

// ShippingRequest 发货信息写入请求
type ShippingRequest struct {
	Status          string `json:"status"`
	TrackingNo      string `json:"trackingNo"`
	CourierCompany  string `json:"courierCompany"`
	ShippingAddress string `json:"shippingAddress"`
	ReceiverName    string `json:"receiverName"`
	ReceiverPhone   string `json:"receiverPhone"`
	Remark          string `json:"remark"`
}

// UpsertShipping 写入申请单发货信息（首次创建、后续更新）
func (h *Handler) UpsertShipping(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	operatorID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	info, err := h.ShippingService.Upsert(id, service.UpsertShippingInput{
		Status:          req.Status,
		TrackingNo:      req.TrackingNo,
		CourierCompany:  req.CourierCompany,
		ShippingAddress: req.ShippingAddress,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		Remark:          req.Remark,
		OperatorID:      operatorID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "shipping_upsert", "stock_request", id, info.ShippingStatus)
	response.Success(c, info)
}

// GetShipping 查询申请单的发货信息
func (h *Handler) GetShipping(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	info, err := h.ShippingService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, info)
}
