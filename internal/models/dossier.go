package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DateLayout date_debut / date_fin 的存储格式
const DateLayout = "2006-01-02"

// Dossier 档案录入记录，创建后不再修改或删除
type Dossier struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	FondsID        uint      `gorm:"not null;index" json:"fonds_id"`
	ObjetID        uint      `gorm:"not null;index" json:"objet_id"`
	Analyse        string    `gorm:"type:text;not null" json:"analyse"`
	MotsCles       string    `gorm:"type:text;not null;default:''" json:"mots_cles"`
	DateDebut      string    `gorm:"size:10;not null" json:"date_debut"`
	DateFin        string    `gorm:"size:10;not null" json:"date_fin"`
	ArchivisteID   uint      `gorm:"not null;index" json:"archiviste_id"`
	DateTraitement time.Time `gorm:"not null;index" json:"date_traitement"`
	TempsSaisie    int       `gorm:"not null;default:0" json:"temps_saisie"`

	// 全文搜索用的小写副本，sqlite 的 LOWER 只处理 ASCII
	AnalyseRecherche  string `gorm:"type:text;not null;default:''" json:"-"`
	MotsClesRecherche string `gorm:"type:text;not null;default:''" json:"-"`

	// 关联
	Fonds      Fonds `gorm:"foreignKey:FondsID;constraint:OnDelete:RESTRICT" json:"-"`
	Objet      Objet `gorm:"foreignKey:ObjetID;constraint:OnDelete:RESTRICT" json:"-"`
	Archiviste User  `gorm:"foreignKey:ArchivisteID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName 指定表名
func (Dossier) TableName() string {
	return "dossiers"
}

// FoldSearch 搜索比较用的大小写折叠，支持重音字母
func FoldSearch(s string) string {
	return strings.ToLower(s)
}

// BeforeCreate 写入搜索副本
func (d *Dossier) BeforeCreate(tx *gorm.DB) error {
	d.AnalyseRecherche = FoldSearch(d.Analyse)
	d.MotsClesRecherche = FoldSearch(d.MotsCles)
	return nil
}

// backfillSearchKeys 为旧数据补齐搜索副本
func backfillSearchKeys(db *gorm.DB) error {
	var pending []Dossier
	return db.Select("id", "analyse", "mots_cles").
		Where("analyse_recherche = '' AND (analyse <> '' OR mots_cles <> '')").
		FindInBatches(&pending, 200, func(tx *gorm.DB, _ int) error {
			for _, d := range pending {
				err := tx.Model(&Dossier{}).Where("id = ?", d.ID).UpdateColumns(map[string]interface{}{
					"analyse_recherche":   FoldSearch(d.Analyse),
					"mots_cles_recherche": FoldSearch(d.MotsCles),
				}).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
}
