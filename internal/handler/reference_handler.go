package handler

import (
	"cna-archives/internal/dto"
	"cna-archives/internal/service"
	"cna-archives/internal/utils"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler 全宗、档案类型与档案员列表
type ReferenceHandler struct {
	referenceService *service.ReferenceService
	userService      *service.UserService
}

// NewReferenceHandler 创建参考数据处理器
func NewReferenceHandler(referenceService *service.ReferenceService, userService *service.UserService) *ReferenceHandler {
	return &ReferenceHandler{
		referenceService: referenceService,
		userService:      userService,
	}
}

// ListFonds 全宗列表
func (h *ReferenceHandler) ListFonds(c *gin.Context) {
	items, err := h.referenceService.ListFonds()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, items)
}

// CreateFonds 新增全宗
func (h *ReferenceHandler) CreateFonds(c *gin.Context) {
	var req dto.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, err := h.referenceService.CreateFonds(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "Fonds ajouté", item)
}

// ListObjets 档案类型列表
func (h *ReferenceHandler) ListObjets(c *gin.Context) {
	items, err := h.referenceService.ListObjets()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, items)
}

// CreateObjet 新增档案类型
func (h *ReferenceHandler) CreateObjet(c *gin.Context) {
	var req dto.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, err := h.referenceService.CreateObjet(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "Objet ajouté", item)
}

// ListArchivistes 档案员列表，用于检索条件
func (h *ReferenceHandler) ListArchivistes(c *gin.Context) {
	users, err := h.userService.ListArchivistes()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, users)
}
