package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cna-archives/internal/models"
	"cna-archives/internal/repository"
	"cna-archives/internal/router"
	"cna-archives/internal/service"
	"cna-archives/internal/utils"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Démarrer le serveur HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddress(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
	store := router.NewSessionStore(pingCtx, redisClient, cfg.Redis.KeyPrefix, cfg.Redis.GetIntakeTTL(), logger)
	cancel()

	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetExpireDuration(),
	)

	authService := service.NewAuthService(repository.NewUserRepository(db, cfg.Admin.Username), jwtManager, store, cfg)
	created, err := authService.InitAdmin()
	if err != nil {
		return err
	}
	if created {
		logger.WithField("username", cfg.Admin.Username).Info("管理员账户已创建")
	}
	if cfg.Admin.UsesDefaultPassword() {
		logger.Warn("Le compte administrateur utilise le mot de passe par défaut, changez-le immédiatement")
	}

	r := router.SetupRouter(cfg, jwtManager, logger, db, store)
	srv := &http.Server{
		Addr:              cfg.Server.GetAddress(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("服务器启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("启动服务器失败: %w", err)
	case <-ctx.Done():
	}

	logger.Info("服务器关闭中")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// openDatabase 建表并写入初始数据
func openDatabase() (*gorm.DB, error) {
	if err := models.InitDB(cfg); err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}
	db := models.GetDB()
	if err := models.Seed(db, cfg.App.DefaultDailyGoal); err != nil {
		return nil, fmt.Errorf("初始化数据失败: %w", err)
	}
	return db, nil
}
