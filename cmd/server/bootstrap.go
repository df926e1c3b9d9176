package main

import (
	"cna-archives/internal/repository"
	"cna-archives/internal/service"
	"cna-archives/internal/utils"
	"cna-archives/pkg/sessionstore"

	"github.com/spf13/cobra"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Créer le schéma, les données initiales et le compte administrateur",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}

		jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Algorithm, cfg.JWT.GetExpireDuration())
		// 初始化不涉及会话，使用进程内存储即可
		authService := service.NewAuthService(repository.NewUserRepository(db, cfg.Admin.Username), jwtManager, sessionstore.NewMemoryStore(), cfg)
		created, err := authService.InitAdmin()
		if err != nil {
			return err
		}

		logger.WithField("admin_created", created).Info("初始化完成")
		if cfg.Admin.UsesDefaultPassword() {
			logger.Warn("Le compte administrateur utilise le mot de passe par défaut, changez-le immédiatement")
		}
		return nil
	},
}
