package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cna-archives/internal/middleware"
	"cna-archives/internal/service"
	"cna-archives/internal/session"
	"cna-archives/internal/utils"

	"github.com/gin-gonic/gin"
)

// 报告生成失败时的统一提示
const (
	reportErrorMessage = "Erreur lors de la génération du rapport"
	reportErrorHint    = "Vérifiez qu'il y a des données dans le système ou contactez l'administrateur."
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrDuplicateName, http.StatusConflict},
	{service.ErrUserHasDossiers, http.StatusConflict},
	{service.ErrEmptyAnalysis, http.StatusBadRequest},
	{service.ErrInvalidDateRange, http.StatusBadRequest},
	{service.ErrPasswordMismatch, http.StatusBadRequest},
	{service.ErrPasswordTooShort, http.StatusBadRequest},
	{service.ErrPasswordRequired, http.StatusBadRequest},
	{service.ErrNameRequired, http.StatusBadRequest},
	{service.ErrInvalidRole, http.StatusBadRequest},
	{service.ErrInvalidGoal, http.StatusBadRequest},
	{service.ErrInvalidFilter, http.StatusBadRequest},
}

// respondError 把业务错误映射为HTTP状态，其余错误记录后返回 500
func respondError(c *gin.Context, err error) {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			utils.ErrorResponse(c, s.status, err.Error())
			return
		}
	}
	_ = c.Error(err)
	utils.InternalError(c, "Erreur interne du serveur")
}

// respondReportError 报告生成失败
func respondReportError(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.ErrorWithHint(c, http.StatusInternalServerError, reportErrorMessage, reportErrorHint)
}

// bindError 请求参数校验失败
func bindError(c *gin.Context, err error) {
	utils.BadRequest(c, utils.FormatValidationError(err).Error())
}

func identity(c *gin.Context) (session.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		utils.Unauthorized(c, "Authentification requise")
	}
	return id, ok
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.BadRequest(c, "Identifiant invalide")
		return 0, false
	}
	return uint(id), true
}
