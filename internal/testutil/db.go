// Package testutil 为各包测试提供内存数据库与测试数据
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"cna-archives/internal/models"
	"cna-archives/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq int64

// NewDB 创建独立的内存 sqlite 数据库并完成建表
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, atomic.AddInt64(&dbSeq, 1))

	db, err := models.Open(sqlite.Open(dsn), false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// NewSeededDB 创建内存数据库并写入初始全宗、档案类型和每日目标
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	require.NoError(t, models.Seed(db, 10))
	return db
}

// CreateUser 写入一个用户
func CreateUser(t *testing.T, db *gorm.DB, username, password, role string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Username: username, PasswordHash: hash, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

// FondsID 按名称查找全宗ID
func FondsID(t *testing.T, db *gorm.DB, nom string) uint {
	t.Helper()
	var f models.Fonds
	require.NoError(t, db.Where("nom = ?", nom).First(&f).Error)
	return f.ID
}

// ObjetID 按名称查找档案类型ID
func ObjetID(t *testing.T, db *gorm.DB, nom string) uint {
	t.Helper()
	var o models.Objet
	require.NoError(t, db.Where("nom = ?", nom).First(&o).Error)
	return o.ID
}

// DossierSpec 直接写入数据库的录入记录
type DossierSpec struct {
	Fonds      string
	Objet      string
	Analyse    string
	MotsCles   string
	DateDebut  string
	DateFin    string
	Archiviste *models.User
	Traitement string // RFC3339
	Temps      int
}

// CreateDossier 绕过服务层直接写入一条录入记录
func CreateDossier(t *testing.T, db *gorm.DB, spec DossierSpec) *models.Dossier {
	t.Helper()
	ts, err := parseRFC3339(spec.Traitement)
	require.NoError(t, err)

	if spec.DateDebut == "" {
		spec.DateDebut = "2024-01-01"
	}
	if spec.DateFin == "" {
		spec.DateFin = "2024-12-31"
	}

	d := &models.Dossier{
		FondsID:        FondsID(t, db, spec.Fonds),
		ObjetID:        ObjetID(t, db, spec.Objet),
		Analyse:        spec.Analyse,
		MotsCles:       spec.MotsCles,
		DateDebut:      spec.DateDebut,
		DateFin:        spec.DateFin,
		ArchivisteID:   spec.Archiviste.ID,
		DateTraitement: ts.UTC(),
		TempsSaisie:    spec.Temps,
	}
	require.NoError(t, db.Omit("Fonds", "Objet", "Archiviste").Create(d).Error)
	return d
}
