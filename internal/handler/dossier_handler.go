package handler

import (
	"cna-archives/internal/dto"
	"cna-archives/internal/service"
	"cna-archives/internal/utils"

	"github.com/gin-gonic/gin"
)

const csvContentType = "text/csv; charset=utf-8"

// DossierHandler 档案录入、检索与导出
type DossierHandler struct {
	intakeService  *service.IntakeService
	dossierService *service.DossierService
}

// NewDossierHandler 创建录入记录处理器
func NewDossierHandler(intakeService *service.IntakeService, dossierService *service.DossierService) *DossierHandler {
	return &DossierHandler{
		intakeService:  intakeService,
		dossierService: dossierService,
	}
}

// StartIntake 打开录入表单
// @Summary 开始录入计时
// @Tags 录入
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=dto.IntakeStartResponse}
// @Router /api/dossiers/intake [post]
func (h *DossierHandler) StartIntake(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}
	resp, err := h.intakeService.StartIntake(c.Request.Context(), me)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, resp)
}

// Submit 提交录入记录
// @Summary 提交录入记录
// @Tags 录入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitDossierRequest true "录入内容"
// @Success 201 {object} utils.Response{data=dto.SubmitDossierResponse}
// @Router /api/dossiers [post]
func (h *DossierHandler) Submit(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}

	var req dto.SubmitDossierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.intakeService.Submit(c.Request.Context(), me, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "Dossier enregistré", resp)
}

// Get 获取一条录入记录
func (h *DossierHandler) Get(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	row, err := h.intakeService.Get(me, id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, row)
}

func bindQuery(c *gin.Context) (*dto.DossierQuery, bool) {
	var q dto.DossierQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return nil, false
	}
	return &q, true
}

// Search 检索页，每页 10 条
// @Summary 检索录入记录
// @Tags 检索
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.PaginationResponse
// @Router /api/dossiers/search [get]
func (h *DossierHandler) Search(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	res, err := h.dossierService.Search(me, service.CriteriaFromQuery(q), q.Sort, q.Page)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.PaginatedResponse(c, res.Items, res.Total, res.Page, res.PerPage, res.Pages)
}

// ExportSearch 导出检索结果
func (h *DossierHandler) ExportSearch(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	content, filename, err := h.dossierService.ExportSearch(me, service.CriteriaFromQuery(q), q.Sort)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Attachment(c, filename, csvContentType, content)
}

// List 列表页
// @Summary 录入记录列表
// @Tags 检索
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=dto.DossierListing}
// @Router /api/dossiers [get]
func (h *DossierHandler) List(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	listing, err := h.dossierService.List(me, service.CriteriaFromQuery(q), q.Sort, q.Page, q.PerPage, q.Columns)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, listing)
}

// ExportListing 按所选列导出列表
func (h *DossierHandler) ExportListing(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	content, filename, err := h.dossierService.ExportListing(me, service.CriteriaFromQuery(q), q.Sort, q.Columns)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Attachment(c, filename, csvContentType, content)
}

// Analyze 所选记录的详细分析
func (h *DossierHandler) Analyze(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	analysis, err := h.dossierService.Analyze(me, service.CriteriaFromQuery(q))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, analysis)
}
