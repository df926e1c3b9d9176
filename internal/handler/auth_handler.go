package handler

import (
	"cna-archives/internal/dto"
	"cna-archives/internal/middleware"
	"cna-archives/internal/service"
	"cna-archives/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login 用户登录
// @Summary 用户登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Connexion réussie", resp)
}

// GetMe 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Router /api/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}

	userInfo, err := h.authService.GetMe(me)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, userInfo)
}

// Logout 用户登出，Token在过期前都会被拒绝
// @Summary 用户登出
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID, expiresAt := middleware.GetToken(c)
	if err := h.authService.Logout(c.Request.Context(), tokenID, expiresAt); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Déconnexion réussie", nil)
}

// ChangePassword 修改本人密码
// @Summary 修改本人密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "密码"
// @Success 200 {object} utils.Response
// @Router /api/me/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.authService.ChangeOwnPassword(me, &req); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Mot de passe modifié", nil)
}
