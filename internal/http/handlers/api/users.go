package api

import (
	"strconv"
	"strings"

	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRequest 创建/更新用户请求
type UserRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	RealName      string `json:"realName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Avatar        string `json:"avatar"`
	UserType      string `json:"userType"`
	LeaderID      *uint  `json:"leaderId"`
	Status        *int   `json:"status"`
	PermissionIDs []uint `json:"permissionIds"`
}

func (r UserRequest) toInput() service.UserInput {
	return service.UserInput{
		Username:      r.Username,
		Password:      r.Password,
		RealName:      r.RealName,
		Email:         r.Email,
		Phone:         r.Phone,
		Avatar:        r.Avatar,
		UserType:      r.UserType,
		LeaderID:      r.LeaderID,
		Status:        r.Status,
		PermissionIDs: r.PermissionIDs,
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		respondError(c, response.CodeBadRequest, "ID 参数无效", nil)
		return 0, false
	}
	return uint(rawID), true
}

// GetUsers 用户列表
func (h *Handler) GetUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.UserListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		UserType: strings.TrimSpace(c.Query("userType")),
		Page:     page,
		PageSize: pageSize,
	}
	if statusRaw := strings.TrimSpace(c.Query("status")); statusRaw != "" {
		if status, err := strconv.Atoi(statusRaw); err == nil {
			filter.Status = &status
		}
	}

	users, total, err := h.UserService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "用户列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, users, response.NewPagination(total, page, pageSize))
}

// GetUser 用户详情及权限
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, codes, err := h.UserService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"user":         user,
		"userTypeName": service.UserTypeName(user.UserType),
		"permissions":  codes,
	})
}

// CreateUser 创建用户
func (h *Handler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	user, err := h.UserService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "user_create", "user", user.ID, user.Username)
	response.Created(c, "用户创建成功", user)
}

// UpdateUser 更新用户
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	user, err := h.UserService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "user_update", "user", user.ID, user.Username)
	response.Success(c, user)
}

// DeleteUser 删除用户
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	operatorID, ok := currentUserID(c)
	if !ok {
		return
	}
	if id == operatorID {
		respondError(c, response.CodeBadRequest, "不能删除当前登录账号", nil)
		return
	}
	if err := h.UserService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recordOperation(c, "user_delete", "user", id, "")
	response.Success(c, nil)
}

// GetPermissionCatalog 权限字典
func (h *Handler) GetPermissionCatalog(c *gin.Context) {
	permissions, err := h.UserService.ListPermissions()
	if err != nil {
		respondError(c, response.CodeInternal, "权限字典获取失败", err)
		return
	}
	response.Success(c, permissions)
}

// GetSubordinates 组长名下的业务员列表
func (h *Handler) GetSubordinates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	users, err := h.UserService.ListSubordinates(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "下属列表获取失败", err)
		return
	}
	response.Success(c, users)
}
