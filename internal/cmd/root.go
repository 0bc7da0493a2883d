package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"logsummary/internal/config"
)

// NewRootCmd собирает дерево команд
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "logsummary",
		Short: "logsummary: сводки по журналу доступа HTTP",
		Long: `logsummary забирает сжатый журнал доступа с удалённого хоста по SFTP
(или читает локальный файл) и строит два отчёта: число запросов по модулям
и по браузерам.

Примеры:
  logsummary serve -c config.yaml
  logsummary report module
  logsummary report browser --file access_log.gz --output json`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "путь к config.yaml")

	root.AddCommand(newServeCmd(&cfgFile), newReportCmd(&cfgFile))
	return root
}

// Execute запускает CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig читает конфиг. При allowMissing отсутствующий файл заменяется
// значениями по умолчанию и окружением.
func loadConfig(path string, allowMissing bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if allowMissing && errors.Is(err, os.ErrNotExist) {
		return config.Default()
	}
	return nil, fmt.Errorf("загрузка %s: %w", path, err)
}
