package handler

import (
	"cna-archives/internal/dto"
	"cna-archives/internal/service"
	"cna-archives/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理员处理器
type AdminHandler struct {
	userService     *service.UserService
	objectifService *service.ObjectifService
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(userService *service.UserService, objectifService *service.ObjectifService) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		objectifService: objectifService,
	}
}

// ListUsers 获取所有用户
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, users)
}

// CreateUser 新建用户
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "Utilisateur créé", user)
}

// DeleteUser 删除用户
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(me, id); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Utilisateur supprimé", nil)
}

// ResetPassword 重置用户密码
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.userService.ResetPassword(id, &req); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Mot de passe réinitialisé", nil)
}

// GetObjectif 当前每日目标
func (h *AdminHandler) GetObjectif(c *gin.Context) {
	info, err := h.objectifService.Current()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, info)
}

// SetObjectif 设置每日目标
func (h *AdminHandler) SetObjectif(c *gin.Context) {
	var req dto.SetObjectifRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.objectifService.SetGoal(req.ObjectifQuotidien)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Objectif mis à jour", info)
}

// ObjectifHistory 目标变更历史
func (h *AdminHandler) ObjectifHistory(c *gin.Context) {
	items, err := h.objectifService.History()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, items)
}
