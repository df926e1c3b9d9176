package repository

import (
	"cna-archives/internal/models"

	"gorm.io/gorm"
)

// FondsRepository 全宗数据访问层
type FondsRepository struct {
	db *gorm.DB
}

// NewFondsRepository 创建全宗Repository
func NewFondsRepository(db *gorm.DB) *FondsRepository {
	return &FondsRepository{db: db}
}

// Create 创建全宗
func (r *FondsRepository) Create(f *models.Fonds) error {
	return r.db.Create(f).Error
}

// GetByID 根据ID获取全宗
func (r *FondsRepository) GetByID(id uint) (*models.Fonds, error) {
	var f models.Fonds
	if err := r.db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// ExistsByNom 名称是否已存在（区分大小写）
func (r *FondsRepository) ExistsByNom(nom string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Fonds{}).Where("nom = ?", nom).Count(&count).Error
	return count > 0, err
}

// List 按名称升序列出
func (r *FondsRepository) List() ([]models.Fonds, error) {
	var items []models.Fonds
	err := r.db.Order("nom ASC").Find(&items).Error
	return items, err
}

// ObjetRepository 档案类型数据访问层
type ObjetRepository struct {
	db *gorm.DB
}

// NewObjetRepository 创建档案类型Repository
func NewObjetRepository(db *gorm.DB) *ObjetRepository {
	return &ObjetRepository{db: db}
}

// Create 创建档案类型
func (r *ObjetRepository) Create(o *models.Objet) error {
	return r.db.Create(o).Error
}

// GetByID 根据ID获取档案类型
func (r *ObjetRepository) GetByID(id uint) (*models.Objet, error) {
	var o models.Objet
	if err := r.db.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ExistsByNom 名称是否已存在（区分大小写）
func (r *ObjetRepository) ExistsByNom(nom string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Objet{}).Where("nom = ?", nom).Count(&count).Error
	return count > 0, err
}

// List 按名称升序列出
func (r *ObjetRepository) List() ([]models.Objet, error) {
	var items []models.Objet
	err := r.db.Order("nom ASC").Find(&items).Error
	return items, err
}
