package dto

import (
	"time"

	"cna-archives/internal/repository"
	"cna-archives/internal/stats"
)

// IntakeStartResponse 录入表单打开时间
type IntakeStartResponse struct {
	StartedAt time.Time `json:"started_at"`
}

// SubmitDossierRequest 提交录入记录
// analyse 的非空校验放在服务层，以保证错误顺序
type SubmitDossierRequest struct {
	FondsID   uint   `json:"fonds_id" binding:"required"`
	ObjetID   uint   `json:"objet_id" binding:"required"`
	Analyse   string `json:"analyse"`
	MotsCles  string `json:"mots_cles"`
	DateDebut string `json:"date_debut" binding:"required,isodate"`
	DateFin   string `json:"date_fin" binding:"required,isodate"`
}

// SubmitDossierResponse 提交结果
type SubmitDossierResponse struct {
	ID          uint `json:"id"`
	TempsSaisie int  `json:"temps_saisie"`
}

// DossierQuery 查询参数
type DossierQuery struct {
	Q           string   `form:"q"`
	Fonds       []string `form:"fonds"`
	Objets      []string `form:"objets"`
	Archivistes []string `form:"archivistes"`
	DateDebut   string   `form:"date_debut" binding:"omitempty,isodate"`
	DateFin     string   `form:"date_fin" binding:"omitempty,isodate"`
	Period      string   `form:"period"`
	From        string   `form:"from" binding:"omitempty,isodate"`
	To          string   `form:"to" binding:"omitempty,isodate"`
	Sort        string   `form:"sort"`
	Page        int      `form:"page"`
	PerPage     int      `form:"per_page"`
	Columns     []string `form:"columns"`
}

// DossierPage 分页结果
type DossierPage struct {
	Items   []repository.DossierRow `json:"items"`
	Total   int64                   `json:"total"`
	Page    int                     `json:"page"`
	PerPage int                     `json:"per_page"`
	Pages   int                     `json:"pages"`
}

// ColumnInfo 列定义
type ColumnInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// DossierListing 列表页：所选列的分页数据与快速统计
type DossierListing struct {
	Columns []ColumnInfo             `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
	Total   int64                    `json:"total"`
	Page    int                      `json:"page"`
	PerPage int                      `json:"per_page"`
	Pages   int                      `json:"pages"`
	Stats   stats.Quick              `json:"stats"`
}

// DossierAnalysis 所选记录的详细分析
type DossierAnalysis struct {
	Stats            stats.Quick        `json:"stats"`
	Temps            stats.Summary      `json:"temps"`
	Efficacite       string             `json:"efficacite"`
	RepartitionFonds []stats.FondsShare `json:"repartition_fonds"`
	ParJour          []stats.DayPoint   `json:"par_jour"`
}
