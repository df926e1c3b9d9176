package repository

import (
	"cna-archives/internal/models"

	"gorm.io/gorm"
)

// ObjectifRepository 每日目标数据访问层，只追加
type ObjectifRepository struct {
	db *gorm.DB
}

// NewObjectifRepository 创建每日目标Repository
func NewObjectifRepository(db *gorm.DB) *ObjectifRepository {
	return &ObjectifRepository{db: db}
}

// Append 追加一条目标记录
func (r *ObjectifRepository) Append(o *models.Objectif) error {
	return r.db.Create(o).Error
}

// Latest 最近写入的目标，表为空时返回 gorm.ErrRecordNotFound
func (r *ObjectifRepository) Latest() (*models.Objectif, error) {
	var o models.Objectif
	err := r.db.Order("updated_at DESC").Order("id DESC").First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// History 目标变更历史，最新在前
func (r *ObjectifRepository) History(limit int) ([]models.Objectif, error) {
	var items []models.Objectif
	q := r.db.Order("updated_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&items).Error
	return items, err
}
