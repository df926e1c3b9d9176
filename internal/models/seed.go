package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// DefaultFonds 初始全宗
var DefaultFonds = []Fonds{
	{Nom: "RESSOURCES HUMAINES", Description: "Gestion du personnel"},
	{Nom: "COMPTABILITÉ", Description: "Documents comptables et financiers"},
	{Nom: "TECHNIQUE", Description: "Documentation technique"},
	{Nom: "COMMERCIAL", Description: "Documents commerciaux"},
	{Nom: "JURIDIQUE", Description: "Documents juridiques et contrats"},
}

// DefaultObjets 初始档案类型
var DefaultObjets = []Objet{
	{Nom: "Dossier individuel", Description: "Dossier personnel d'un agent"},
	{Nom: "Contrat", Description: "Documents contractuels"},
	{Nom: "Facture", Description: "Documents de facturation"},
	{Nom: "Procès-verbal", Description: "Comptes-rendus de réunions"},
	{Nom: "Correspondance", Description: "Échanges de courrier"},
}

// Seed 写入初始数据，可重复执行
func Seed(db *gorm.DB, defaultGoal int) error {
	for _, f := range DefaultFonds {
		f := f
		if err := firstOrCreate(db, &Fonds{}, &f, f.Nom); err != nil {
			return fmt.Errorf("初始化全宗 %s 失败: %w", f.Nom, err)
		}
	}

	for _, o := range DefaultObjets {
		o := o
		if err := firstOrCreate(db, &Objet{}, &o, o.Nom); err != nil {
			return fmt.Errorf("初始化档案类型 %s 失败: %w", o.Nom, err)
		}
	}

	var count int64
	if err := db.Model(&Objectif{}).Count(&count).Error; err != nil {
		return fmt.Errorf("统计每日目标失败: %w", err)
	}
	if count == 0 {
		if err := db.Create(&Objectif{ObjectifQuotidien: defaultGoal}).Error; err != nil {
			return fmt.Errorf("初始化每日目标失败: %w", err)
		}
	}

	return nil
}

func firstOrCreate(db *gorm.DB, existing interface{}, value interface{}, nom string) error {
	err := db.Where("nom = ?", nom).First(existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(value).Error
}
