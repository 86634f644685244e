package api

import (
	"strings"

	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
)

// MediaCopywritingRequest 素材文案编辑请求
type MediaCopywritingRequest struct {
	Copywriting string `json:"copywriting" binding:"required"`
}

// UploadMedia 上传素材文件
func (h *Handler) UploadMedia(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "请选择要上传的文件", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "文件读取失败", err)
		return
	}
	defer file.Close()

	upload, err := h.MediaService.Upload(c.Request.Context(), service.UploadInput{
		UserID:      userID,
		UserName:    currentUsername(c),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		FileSize:    fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, "上传成功", upload)
}

// GetMediaUploadURL 获取素材直传链接
func (h *Handler) GetMediaUploadURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	fileName := strings.TrimSpace(c.Query("fileName"))
	contentType := strings.TrimSpace(c.Query("contentType"))
	key, url, err := h.MediaService.SignedUploadURL(c.Request.Context(), userID, fileName, contentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"key":       key,
		"uploadUrl": url,
	})
}

// GetMediaList 素材列表。默认仅本人，组长可看名下团队，
// 持有 merchant_view_all 时可按任意用户过滤。
func (h *Handler) GetMediaList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	filter := repository.MediaListFilter{
		UploadDate:        strings.TrimSpace(c.Query("date")),
		FileType:          strings.TrimSpace(c.Query("fileType")),
		CopywritingFilter: strings.TrimSpace(c.Query("copywriting")),
		Page:              page,
		PageSize:          pageSize,
	}

	switch {
	case c.Query("team") == "1":
		filter.LeaderID = userID
	case hasAnyPermission(c, constants.PermMerchantViewAll):
		if target, ok := parseUintQuery(c, "userId"); ok {
			filter.UserID = target
		}
	default:
		filter.UserID = userID
	}

	uploads, total, err := h.MediaService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "素材列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, uploads, response.NewPagination(total, page, pageSize))
}

// GetMediaViewURL 生成素材限时访问链接
func (h *Handler) GetMediaViewURL(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	upload, err := h.MediaRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "素材获取失败", err)
		return
	}
	if upload == nil {
		respondError(c, response.CodeNotFound, "素材不存在", nil)
		return
	}
	url, err := h.MediaService.ViewURL(c.Request.Context(), upload.OSSKey)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"url": url})
}

// GetMediaTodayStats 今日上传量与达标情况
func (h *Handler) GetMediaTodayStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stats, err := h.MediaService.TodayStatsFor(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "上传统计获取失败", err)
		return
	}
	response.Success(c, stats)
}

// GetMediaDailyCounts 按日期的上传量分布
func (h *Handler) GetMediaDailyCounts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if target, ok := parseUintQuery(c, "userId"); ok && hasAnyPermission(c, constants.PermMerchantViewAll) {
		userID = target
	}
	counts, err := h.MediaService.DailyCounts(userID,
		strings.TrimSpace(c.Query("startDate")),
		strings.TrimSpace(c.Query("endDate")))
	if err != nil {
		respondError(c, response.CodeInternal, "上传分布获取失败", err)
		return
	}
	response.Success(c, counts)
}

// GetMediaTeamCount 组长名下团队某日上传量
func (h *Handler) GetMediaTeamCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	count, err := h.MediaService.TeamCount(userID, strings.TrimSpace(c.Query("date")))
	if err != nil {
		respondError(c, response.CodeInternal, "团队统计获取失败", err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// UpdateMediaCopywriting 组长为名下素材编辑文案
func (h *Handler) UpdateMediaCopywriting(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	operatorID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req MediaCopywritingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	upload, err := h.MediaService.UpdateCopywriting(id, operatorID, req.Copywriting)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, upload)
}

// DeleteMedia 删除素材
func (h *Handler) DeleteMedia(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	operatorID, ok := currentUserID(c)
	if !ok {
		return
	}
	viewAll := hasAnyPermission(c, constants.PermMerchantViewAll)
	if err := h.MediaService.Delete(id, operatorID, viewAll); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
