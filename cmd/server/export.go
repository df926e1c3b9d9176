package main

import (
	"fmt"
	"os"

	"cna-archives/internal/repository"
	"cna-archives/internal/service"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporter tous les dossiers au format CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}

		svc := service.NewDossierService(repository.NewDossierRepository(db), cfg.App.Location())
		content, filename, err := svc.ExportAll()
		if err != nil {
			return err
		}

		path := exportOutput
		if path == "" {
			path = filename
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("写入导出文件失败: %w", err)
		}
		logger.WithField("path", path).Info("导出完成")
		return nil
	},
}
