package service

import (
	"io"
	"testing"
	"time"

	"cna-archives/internal/config"
	"cna-archives/internal/models"
	"cna-archives/internal/repository"
	"cna-archives/internal/session"
	"cna-archives/internal/testutil"
	"cna-archives/internal/utils"
	"cna-archives/pkg/sessionstore"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type harness struct {
	db    *gorm.DB
	store *sessionstore.MemoryStore
	cfg   *config.Config
	jwt   *utils.JWTManager

	dossierRepo *repository.DossierRepository

	auth      *AuthService
	refs      *ReferenceService
	users     *UserService
	objectifs *ObjectifService
	intake    *IntakeService
	dossiers  *DossierService
	stats     *StatsService

	admin session.Identity
	marie session.Identity
	paul  session.Identity
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewSeededDB(t)

	cfg := &config.Config{
		Admin: config.AdminConfig{Username: "admin", Password: config.DefaultAdminPassword},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	userRepo := repository.NewUserRepository(db, cfg.Admin.Username)
	dossierRepo := repository.NewDossierRepository(db)
	fondsRepo := repository.NewFondsRepository(db)
	objetRepo := repository.NewObjetRepository(db)
	store := sessionstore.NewMemoryStore()
	jwtManager := utils.NewJWTManager("test-secret", "HS256", time.Hour)
	loc := testutil.Paris()

	h := &harness{
		db:          db,
		store:       store,
		cfg:         cfg,
		jwt:         jwtManager,
		dossierRepo: dossierRepo,
	}
	h.auth = NewAuthService(userRepo, jwtManager, store, cfg)
	h.refs = NewReferenceService(fondsRepo, objetRepo)
	h.users = NewUserService(userRepo, dossierRepo)
	h.objectifs = NewObjectifService(repository.NewObjectifRepository(db), 10)
	h.intake = NewIntakeService(dossierRepo, fondsRepo, objetRepo, userRepo, store, logger)
	h.dossiers = NewDossierService(dossierRepo, loc)
	h.stats = NewStatsService(dossierRepo, userRepo, fondsRepo, objetRepo, h.objectifs, loc)

	h.admin = session.FromUser(testutil.CreateUser(t, db, "admin", "admin123", models.RoleAdministrateur))
	h.marie = session.FromUser(testutil.CreateUser(t, db, "marie", "secret1", models.RoleArchiviste))
	h.paul = session.FromUser(testutil.CreateUser(t, db, "paul", "secret2", models.RoleArchiviste))
	return h
}

// at 让依赖时钟的服务停在同一时刻
func (h *harness) at(rfc3339 string) {
	clock := testutil.FixedClock(rfc3339)
	h.intake.now = clock
	h.dossiers.now = clock
	h.stats.now = clock
	h.auth.now = clock
}

func (h *harness) user(t *testing.T, id session.Identity) *models.User {
	t.Helper()
	var u models.User
	if err := h.db.First(&u, id.ID).Error; err != nil {
		t.Fatalf("utilisateur %d: %v", id.ID, err)
	}
	return &u
}

// dossier 直接写入一条记录
func (h *harness) dossier(t *testing.T, owner session.Identity, fonds, traitement string, temps int) {
	t.Helper()
	testutil.CreateDossier(t, h.db, testutil.DossierSpec{
		Fonds:      fonds,
		Objet:      "Contrat",
		Analyse:    "Dossier " + fonds,
		Archiviste: h.user(t, owner),
		Traitement: traitement,
		Temps:      temps,
	})
}
