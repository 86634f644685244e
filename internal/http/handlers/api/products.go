package api

import (
	"strconv"
	"strings"

	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name        string           `json:"name"`
	SKU         string           `json:"sku"`
	Category    string           `json:"category"`
	Unit        string           `json:"unit"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"minStock"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Status      *int             `json:"status"`
}

func (r ProductRequest) toInput(createdBy uint) service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		SKU:         r.SKU,
		Category:    r.Category,
		Unit:        r.Unit,
		Price:       r.Price,
		Stock:       r.Stock,
		MinStock:    r.MinStock,
		Description: r.Description,
		Image:       r.Image,
		Status:      r.Status,
		CreatedBy:   createdBy,
	}
}

// GetProducts 商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.ProductListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		Page:     page,
		PageSize: pageSize,
	}
	if statusRaw := strings.TrimSpace(c.Query("status")); statusRaw != "" {
		if status, err := strconv.Atoi(statusRaw); err == nil {
			filter.Status = &status
		}
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "商品列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(total, page, pageSize))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput(userID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "product_create", "product", product.ID, product.Name)
	response.Created(c, "商品创建成功", product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput(0))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "product_update", "product", product.ID, product.Name)
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "product_delete", "product", id, "")
	response.Success(c, nil)
}
