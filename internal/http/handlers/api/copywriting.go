package api

import (
	"strings"

	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
)

// CopywritingTemplateRequest 文案模版请求
type CopywritingTemplateRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// GetCopywritingTemplates 文案模版列表
func (h *Handler) GetCopywritingTemplates(c *gin.Context) {
	page, pageSize := parsePagination(c)
	templates, total, err := h.CopywritingService.List(repository.CopywritingListFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "模版列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, templates, response.NewPagination(total, page, pageSize))
}

// CreateCopywritingTemplate 创建文案模版
func (h *Handler) CreateCopywritingTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req CopywritingTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	template, err := h.CopywritingService.Create(service.TemplateInput{
		Title:     req.Title,
		Category:  req.Category,
		Content:   req.Content,
		CreatedBy: userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, "模版创建成功", template)
}

// UpdateCopywritingTemplate 更新文案模版
func (h *Handler) UpdateCopywritingTemplate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CopywritingTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	template, err := h.CopywritingService.Update(id, service.TemplateInput{
		Title:    req.Title,
		Category: req.Category,
		Content:  req.Content,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, template)
}

// DeleteCopywritingTemplate 删除文案模版
func (h *Handler) DeleteCopywritingTemplate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CopywritingService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetRandomCopywritingTemplate 随机取一条模版并计一次使用
func (h *Handler) GetRandomCopywritingTemplate(c *gin.Context) {
	template, err := h.CopywritingService.Random(strings.TrimSpace(c.Query("category")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := h.CopywritingService.MarkTemplateUsed(template.ID); err != nil {
		requestLog(c).Warnw("copywriting_mark_used_failed", "template_id", template.ID, "error", err)
	}
	response.Success(c, template)
}
