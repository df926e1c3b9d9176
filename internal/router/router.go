package router

import (
	"net/http"

	"cna-archives/internal/config"
	"cna-archives/internal/handler"
	"cna-archives/internal/middleware"
	"cna-archives/internal/repository"
	"cna-archives/internal/service"
	"cna-archives/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SessionStore Token注销与录入计时的存储
type SessionStore interface {
	middleware.RevocationChecker
	service.TokenRevoker
	service.IntakeTimer
}

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	db *gorm.DB,
	store SessionStore,
) *gin.Engine {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.InitValidator()

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(&cfg.CORS))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Centre National des Archives - API de saisie",
			"version": "1.0.0",
		})
	})

	loc := cfg.App.Location()

	// 初始化Repository
	userRepo := repository.NewUserRepository(db, cfg.Admin.Username)
	dossierRepo := repository.NewDossierRepository(db)
	fondsRepo := repository.NewFondsRepository(db)
	objetRepo := repository.NewObjetRepository(db)
	objectifRepo := repository.NewObjectifRepository(db)

	// 初始化Service
	authService := service.NewAuthService(userRepo, jwtManager, store, cfg)
	referenceService := service.NewReferenceService(fondsRepo, objetRepo)
	userService := service.NewUserService(userRepo, dossierRepo)
	objectifService := service.NewObjectifService(objectifRepo, cfg.App.DefaultDailyGoal)
	intakeService := service.NewIntakeService(dossierRepo, fondsRepo, objetRepo, userRepo, store, logger)
	dossierService := service.NewDossierService(dossierRepo, loc)
	statsService := service.NewStatsService(dossierRepo, userRepo, fondsRepo, objetRepo, objectifService, loc)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	referenceHandler := handler.NewReferenceHandler(referenceService, userService)
	dossierHandler := handler.NewDossierHandler(intakeService, dossierService)
	reportHandler := handler.NewReportHandler(statsService, dossierService)
	adminHandler := handler.NewAdminHandler(userService, objectifService)

	api := r.Group("/api")
	{
		// 公开路由
		api.POST("/login", authHandler.Login)

		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(jwtManager, store))
		{
			authorized.GET("/me", authHandler.GetMe)
			authorized.POST("/logout", authHandler.Logout)
			authorized.PUT("/me/password", authHandler.ChangePassword)

			// 参考数据
			authorized.GET("/fonds", referenceHandler.ListFonds)
			authorized.GET("/objets", referenceHandler.ListObjets)
			authorized.GET("/archivistes", referenceHandler.ListArchivistes)

			authorized.GET("/dashboard", reportHandler.Dashboard)

			// 录入与检索
			authorized.POST("/dossiers/intake", dossierHandler.StartIntake)
			authorized.POST("/dossiers", dossierHandler.Submit)
			authorized.GET("/dossiers", dossierHandler.List)
			authorized.GET("/dossiers/export", dossierHandler.ExportListing)
			authorized.GET("/dossiers/analysis", dossierHandler.Analyze)
			authorized.GET("/dossiers/search", dossierHandler.Search)
			authorized.GET("/dossiers/search/export", dossierHandler.ExportSearch)
			authorized.GET("/dossiers/:id", dossierHandler.Get)

			// 管理员接口
			adminGroup := authorized.Group("/admin")
			adminGroup.Use(middleware.AdminMiddleware())
			{
				adminGroup.GET("/users", adminHandler.ListUsers)
				adminGroup.POST("/users", adminHandler.CreateUser)
				adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
				adminGroup.PUT("/users/:id/password", adminHandler.ResetPassword)

				adminGroup.POST("/fonds", referenceHandler.CreateFonds)
				adminGroup.POST("/objets", referenceHandler.CreateObjet)

				adminGroup.GET("/objectif", adminHandler.GetObjectif)
				adminGroup.PUT("/objectif", adminHandler.SetObjectif)
				adminGroup.GET("/objectif/history", adminHandler.ObjectifHistory)

				adminGroup.GET("/overview", reportHandler.Overview)
				adminGroup.GET("/export", reportHandler.ExportAll)
				adminGroup.GET("/statistics", reportHandler.Statistics)
				adminGroup.GET("/report", reportHandler.Narrative)
				adminGroup.GET("/report/pdf", reportHandler.ReportPDF)
			}
		}
	}

	return r
}
