package api

import (
	"strings"

	"github.com/lipai-ops/internal/http/response"
	"github.com/lipai-ops/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captchaId"`
	CaptchaCode string `json:"captchaCode"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// GetCaptcha 获取登录图片验证码
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.LoginEnabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "验证码生成失败", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":     true,
		"captchaId":   challenge.CaptchaID,
		"imageBase64": challenge.ImageBase64,
	})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.CaptchaService.VerifyLogin(req.CaptchaID, req.CaptchaCode); err != nil {
		respondServiceError(c, err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	codes, err := h.UserService.PermissionCodes(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "权限加载失败", err)
		return
	}

	response.Success(c, gin.H{
		"token":       token,
		"expiresAt":   expiresAt,
		"user":        user,
		"permissions": codes,
	})
}

// GetProfile 当前登录用户信息
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, codes, err := h.AuthService.Profile(userID)
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

// ChangePassword 修改当前用户密码
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if err := h.AuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "密码修改成功，请重新登录", nil)
}
