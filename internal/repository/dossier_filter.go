package repository

import (
	"strings"
	"time"

	"cna-archives/internal/models"

	"gorm.io/gorm"
)

// DossierFilter 录入记录的结构化过滤条件，各字段可选，彼此之间为 AND 关系
type DossierFilter struct {
	// Text 在 analyse 或 mots_cles 中做不区分大小写（含重音字母）的子串匹配
	Text        string
	Fonds       []string
	Objets      []string
	Archivistes []string
	// DateDebutFrom date_debut 下限（含），DateFinTo date_fin 上限（含），格式 AAAA-MM-JJ
	DateDebutFrom string
	DateFinTo     string
	// date_traitement ∈ [TraitementFrom, TraitementTo)
	TraitementFrom *time.Time
	TraitementTo   *time.Time
	// ArchivisteID 非空时只返回该档案员的记录，优先于 Archivistes
	ArchivisteID *uint
}

// Apply 把过滤条件转换为参数化查询，查询须已连接 fonds/objets/users
func (f DossierFilter) Apply(q *gorm.DB) *gorm.DB {
	if text := strings.TrimSpace(f.Text); text != "" {
		pattern := "%" + escapeLike(models.FoldSearch(text)) + "%"
		q = q.Where(
			"(dossiers.analyse_recherche LIKE ? ESCAPE '\\' OR dossiers.mots_cles_recherche LIKE ? ESCAPE '\\')",
			pattern, pattern,
		)
	}
	if names := compact(f.Fonds); len(names) > 0 {
		q = q.Where("fonds.nom IN ?", names)
	}
	if names := compact(f.Objets); len(names) > 0 {
		q = q.Where("objets.nom IN ?", names)
	}
	if f.ArchivisteID != nil {
		q = q.Where("dossiers.archiviste_id = ?", *f.ArchivisteID)
	} else if names := compact(f.Archivistes); len(names) > 0 {
		q = q.Where("users.username IN ?", names)
	}
	if f.DateDebutFrom != "" {
		q = q.Where("dossiers.date_debut >= ?", f.DateDebutFrom)
	}
	if f.DateFinTo != "" {
		q = q.Where("dossiers.date_fin <= ?", f.DateFinTo)
	}
	if f.TraitementFrom != nil {
		q = q.Where("dossiers.date_traitement >= ?", f.TraitementFrom.UTC())
	}
	if f.TraitementTo != nil {
		q = q.Where("dossiers.date_traitement < ?", f.TraitementTo.UTC())
	}
	return q
}

// DossierSort 排序方式
type DossierSort string

const (
	SortDateDesc   DossierSort = "date_desc"
	SortDateAsc    DossierSort = "date_asc"
	SortTempsDesc  DossierSort = "temps_desc"
	SortAnalyseAsc DossierSort = "analyse_asc"
)

// id 作为最后的排序键，保证分页稳定
var sortClauses = map[DossierSort]string{
	SortDateDesc:   "dossiers.date_traitement DESC, dossiers.id DESC",
	SortDateAsc:    "dossiers.date_traitement ASC, dossiers.id ASC",
	SortTempsDesc:  "dossiers.temps_saisie DESC, dossiers.id DESC",
	SortAnalyseAsc: "dossiers.analyse ASC, dossiers.id ASC",
}

// ParseSort 解析排序方式，空字符串为默认的 date_desc
func ParseSort(s string) (DossierSort, bool) {
	if s == "" {
		return SortDateDesc, true
	}
	sort := DossierSort(s)
	_, ok := sortClauses[sort]
	return sort, ok
}

func (s DossierSort) clause() string {
	if c, ok := sortClauses[s]; ok {
		return c
	}
	return sortClauses[SortDateDesc]
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
