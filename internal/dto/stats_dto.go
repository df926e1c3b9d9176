package dto

import (
	"time"

	"cna-archives/internal/stats"
)

// DashboardResponse 仪表盘
type DashboardResponse struct {
	TotalDossiers         int64              `json:"total_dossiers"`
	DossiersAujourdhui    int64              `json:"dossiers_aujourdhui"`
	MesDossiersAujourdhui int64              `json:"mes_dossiers_aujourdhui"`
	ObjectifQuotidien     int                `json:"objectif_quotidien"`
	TauxObjectif          float64            `json:"taux_objectif"`
	Evolution7Jours       []stats.DayPoint   `json:"evolution_7_jours"`
	RepartitionFonds      []stats.FondsShare `json:"repartition_fonds"`
}

// GoalTracking 目标跟踪
type GoalTracking struct {
	DossiersAujourdhui int        `json:"dossiers_aujourdhui"`
	ObjectifQuotidien  int        `json:"objectif_quotidien"`
	TauxObjectif       float64    `json:"taux_objectif"`
	Couleur            stats.Band `json:"couleur"`
	Moyenne7Jours      float64    `json:"moyenne_7_jours"`
	MoyenneVsObjectif  float64    `json:"moyenne_vs_objectif"`
	ProjectionAnnuelle int        `json:"projection_annuelle"`
}

// StatisticsResponse 管理员统计页
type StatisticsResponse struct {
	Periode          string                  `json:"periode"`
	PeriodeLabel     string                  `json:"periode_label"`
	Archivistes      []stats.ArchivisteStats `json:"archivistes"`
	ParJour          []stats.DayPoint        `json:"par_jour"`
	RepartitionFonds []stats.FondsShare      `json:"repartition_fonds"`
	Objectifs        GoalTracking            `json:"objectifs"`
}

// ReportData 文字报告与PDF报告共用的数据
type ReportData struct {
	GeneratedAt        time.Time               `json:"generated_at"`
	TotalDossiers      int64                   `json:"total_dossiers"`
	ObjectifQuotidien  int                     `json:"objectif_quotidien"`
	DossiersSemaine    int                     `json:"dossiers_semaine"`
	TempsMoyenSemaine  float64                 `json:"temps_moyen_semaine"`
	DossiersMois       int                     `json:"dossiers_mois"`
	TempsMoyenMois     float64                 `json:"temps_moyen_mois"`
	Archivistes        []stats.ArchivisteStats `json:"archivistes"`
	RepartitionFonds   []stats.FondsShare      `json:"repartition_fonds"`
	Recommandation     string                  `json:"recommandation"`
	MoyenneJour        float64                 `json:"moyenne_jour"`
	ProjectionAnnuelle int                     `json:"projection_annuelle"`
}

// NarrativeResponse 文字报告
type NarrativeResponse struct {
	Markdown string     `json:"markdown"`
	Data     ReportData `json:"data"`
}
