package models

import (
	"time"
)

// Fonds 文献全宗（档案集合）
type Fonds struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Nom         string    `gorm:"uniqueIndex;size:100;not null" json:"nom"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 指定表名
func (Fonds) TableName() string {
	return "fonds"
}

// Objet 档案类型
type Objet struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Nom         string    `gorm:"uniqueIndex;size:100;not null" json:"nom"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 指定表名
func (Objet) TableName() string {
	return "objets"
}

// Objectif 每日目标，只追加不修改，最新一行为当前值
type Objectif struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	ObjectifQuotidien int       `gorm:"not null" json:"objectif_quotidien"`
	UpdatedAt         time.Time `gorm:"index" json:"updated_at"`
}

// TableName 指定表名
func (Objectif) TableName() string {
	return "objectifs"
}
