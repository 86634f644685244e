package api

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
)

// MerchantReviewRequest 商家注册审核请求
type MerchantReviewRequest struct {
	Status int    `json:"status"`
	Remark string `json:"remark"`
}

func idCardFileFromForm(c *gin.Context, field string) (*service.IDCardFile, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// 照片可选，缺失不视为错误
		return nil, nil
	}
	return openIDCardFile(fileHeader)
}

func openIDCardFile(fileHeader *multipart.FileHeader) (*service.IDCardFile, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	return &service.IDCardFile{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Reader:      file,
	}, nil
}

// CreateMerchant 提交商家注册资料（multipart 表单，含身份证照片）
func (h *Handler) CreateMerchant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	front, err := idCardFileFromForm(c, "idCardFront")
	if err != nil {
		respondError(c, response.CodeBadRequest, "身份证正面读取失败", err)
		return
	}
	back, err := idCardFileFromForm(c, "idCardBack")
	if err != nil {
		respondError(c, response.CodeBadRequest, "身份证背面读取失败", err)
		return
	}

	registration, err := h.MerchantService.Register(c.Request.Context(), service.RegisterInput{
		UserID:        userID,
		UserName:      currentUsername(c),
		Phone:         c.PostForm("phone"),
		BusinessScope: c.PostForm("businessScope"),
		BusinessName1: c.PostForm("businessName1"),
		BusinessName2: c.PostForm("businessName2"),
		BusinessName3: c.PostForm("businessName3"),
		ContactName:   c.PostForm("contactName"),
		ContactPhone:  c.PostForm("contactPhone"),
		IDCardFront:   front,
		IDCardBack:    back,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "merchant_register", "merchant", registration.ID, registration.Phone)
	response.Created(c, "提交成功", registration)
}

// GetMerchants 商家注册列表。无全局权限时仅返回本人提交的记录。
func (h *Handler) GetMerchants(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	filter := repository.MerchantListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     page,
		PageSize: pageSize,
	}
	if statusRaw := strings.TrimSpace(c.Query("status")); statusRaw != "" {
		if status, err := strconv.Atoi(statusRaw); err == nil {
			filter.Status = &status
		}
	}
	if hasAnyPermission(c, constants.PermMerchantViewAll) {
		if target, ok := parseUintQuery(c, "userId"); ok {
			filter.UserID = target
		}
	} else {
		filter.UserID = userID
	}

	registrations, total, err := h.MerchantService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "商家列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, registrations, response.NewPagination(total, page, pageSize))
}

// GetMerchantFileURL 生成资料照片限时访问链接
func (h *Handler) GetMerchantFileURL(c *gin.Context) {
	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "缺少文件标识", nil)
		return
	}
	url, err := h.MerchantService.ViewURL(c.Request.Context(), key)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"url": url})
}

// ReviewMerchant 审核商家注册
func (h *Handler) ReviewMerchant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req MerchantReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	registration, err := h.MerchantService.Review(id, req.Status, req.Remark)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "merchant_review", "merchant", registration.ID, strconv.Itoa(registration.Status))
	response.Success(c, registration)
}

// DeleteMerchant 删除商家注册记录
func (h *Handler) DeleteMerchant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	operatorID, ok := currentUserID(c)
	if !ok {
		return
	}
	viewAll := hasAnyPermission(c, constants.PermMerchantViewAll)
	if err := h.MerchantService.Delete(id, operatorID, viewAll); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "merchant_delete", "merchant", id, "")
	response.Success(c, nil)
}
