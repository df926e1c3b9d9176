package handler

import (
	"cna-archives/internal/service"
	"cna-archives/internal/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler 仪表盘、统计与报告
type ReportHandler struct {
	statsService   *service.StatsService
	dossierService *service.DossierService
}

// NewReportHandler 创建报告处理器
func NewReportHandler(statsService *service.StatsService, dossierService *service.DossierService) *ReportHandler {
	return &ReportHandler{
		statsService:   statsService,
		dossierService: dossierService,
	}
}

// Dashboard 仪表盘
// @Summary 仪表盘
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=dto.DashboardResponse}
// @Router /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	me, ok := identity(c)
	if !ok {
		return
	}
	resp, err := h.statsService.Dashboard(me)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, resp)
}

// Statistics 统计页，period 取 all|today|week|month|year|custom
// @Summary 统计与分析
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param period query string false "时间段"
// @Success 200 {object} utils.Response{data=dto.StatisticsResponse}
// @Router /api/admin/statistics [get]
func (h *ReportHandler) Statistics(c *gin.Context) {
	resp, err := h.statsService.Statistics(c.Query("period"), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, resp)
}

// Narrative 文字分析报告
func (h *ReportHandler) Narrative(c *gin.Context) {
	resp, err := h.statsService.Narrative()
	if err != nil {
		respondReportError(c, err)
		return
	}
	utils.SuccessResponse(c, resp)
}

// ReportPDF 下载PDF报告
func (h *ReportHandler) ReportPDF(c *gin.Context) {
	content, filename, err := h.statsService.ReportPDF()
	if err != nil {
		respondReportError(c, err)
		return
	}
	utils.Attachment(c, filename, "application/pdf", content)
}

// Overview 系统概况
func (h *ReportHandler) Overview(c *gin.Context) {
	resp, err := h.statsService.Overview()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, resp)
}

// ExportAll 导出全部录入记录
func (h *ReportHandler) ExportAll(c *gin.Context) {
	content, filename, err := h.dossierService.ExportAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Attachment(c, filename, csvContentType, content)
}
