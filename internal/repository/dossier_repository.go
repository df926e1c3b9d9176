package repository

import (
	"time"

	"cna-archives/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DossierRow 录入记录与全宗、档案类型、档案员的连接结果
type DossierRow struct {
	ID             uint      `json:"id"`
	FondsID        uint      `json:"fonds_id"`
	Fonds          string    `json:"fonds"`
	ObjetID        uint      `json:"objet_id"`
	Objet          string    `json:"objet"`
	Analyse        string    `json:"analyse"`
	MotsCles       string    `json:"mots_cles"`
	DateDebut      string    `json:"date_debut"`
	DateFin        string    `json:"date_fin"`
	ArchivisteID   uint      `json:"archiviste_id"`
	Archiviste     string    `json:"archiviste"`
	DateTraitement time.Time `json:"date_traitement"`
	TempsSaisie    int       `json:"temps_saisie"`
}

const dossierRowColumns = `dossiers.id, dossiers.fonds_id, fonds.nom AS fonds, dossiers.objet_id, objets.nom AS objet,
dossiers.analyse, dossiers.mots_cles, dossiers.date_debut, dossiers.date_fin,
dossiers.archiviste_id, users.username AS archiviste, dossiers.date_traitement, dossiers.temps_saisie`

// DossierRepository 录入记录数据访问层，只提供新增与查询
type DossierRepository struct {
	db *gorm.DB
}

// NewDossierRepository 创建录入记录Repository
func NewDossierRepository(db *gorm.DB) *DossierRepository {
	return &DossierRepository{db: db}
}

// Create 新增录入记录
func (r *DossierRepository) Create(d *models.Dossier) error {
	return r.db.Omit(clause.Associations).Create(d).Error
}

// joined 每次返回新的连接查询
func (r *DossierRepository) joined(filter DossierFilter) *gorm.DB {
	q := r.db.Table("dossiers").
		Joins("JOIN fonds ON fonds.id = dossiers.fonds_id").
		Joins("JOIN objets ON objets.id = dossiers.objet_id").
		Joins("JOIN users ON users.id = dossiers.archiviste_id")
	return filter.Apply(q)
}

// GetRow 根据ID获取连接后的记录
func (r *DossierRepository) GetRow(id uint) (*DossierRow, error) {
	var row DossierRow
	err := r.joined(DossierFilter{}).
		Select(dossierRowColumns).
		Where("dossiers.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Count 统计满足条件的记录数
func (r *DossierRepository) Count(filter DossierFilter) (int64, error) {
	var total int64
	err := r.joined(filter).Count(&total).Error
	return total, err
}

// ListRows 按条件分页查询，limit <= 0 表示不分页
func (r *DossierRepository) ListRows(filter DossierFilter, sort DossierSort, offset, limit int) ([]DossierRow, error) {
	rows := make([]DossierRow, 0)
	q := r.joined(filter).Select(dossierRowColumns).Order(sort.clause())
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	err := q.Scan(&rows).Error
	return rows, err
}

// List 分页查询并返回总数
func (r *DossierRepository) List(filter DossierFilter, sort DossierSort, offset, limit int) ([]DossierRow, int64, error) {
	total, err := r.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.ListRows(filter, sort, offset, limit)
	return rows, total, err
}

// CountAll 记录总数
func (r *DossierRepository) CountAll() (int64, error) {
	var total int64
	err := r.db.Model(&models.Dossier{}).Count(&total).Error
	return total, err
}

// ExistsForArchiviste 档案员名下是否有记录
func (r *DossierRepository) ExistsForArchiviste(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Dossier{}).Where("archiviste_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// DossierTotals 满足条件的记录汇总
type DossierTotals struct {
	Total         int64
	TotalMinutes  int64
	DistinctFonds int64
}

// Totals 统计记录数、总时长和涉及的全宗数
func (r *DossierRepository) Totals(filter DossierFilter) (DossierTotals, error) {
	var t DossierTotals
	err := r.joined(filter).
		Select("COUNT(*) AS total, COALESCE(SUM(dossiers.temps_saisie), 0) AS total_minutes, COUNT(DISTINCT dossiers.fonds_id) AS distinct_fonds").
		Scan(&t).Error
	return t, err
}
