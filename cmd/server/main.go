package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"cna-archives/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string

	cfg    *config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cna-archives",
	Short: "Centre National des Archives - service de saisie et de suivi",
	Long: `Service de saisie des dossiers d'archives du Centre National des Archives.

Sans sous-commande, le serveur HTTP démarre (équivalent à "serve").`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		logger, err = newLogger(cfg)
		return err
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "fichier de configuration")

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "fichier CSV de destination (nom horodaté par défaut)")

	rootCmd.AddCommand(serveCmd, bootstrapCmd, exportCmd)
}

// newLogger 生产环境始终输出JSON
func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	c := cfg.Log
	l := logrus.New()
	l.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("日志级别无效 %q: %w", c.Level, err)
	}
	l.SetLevel(level)

	if c.Format == "text" && !cfg.Server.ProductionMode {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
